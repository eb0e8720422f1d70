// Package auth verifies bearer JWTs issued by the identity provider and
// turns them into a caller id.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/codewithrabha/eventbooking/internal/domain"
	"github.com/golang-jwt/jwt/v4"
)

const (
	ModeHS256 = "hs256"
	ModeJWKS  = "jwks"

	defaultLeeway = time.Minute
)

var (
	errMissingAuthorization = errors.New("missing authorization header")
	errBadAuthorization     = errors.New("bad auth header")
)

type Options struct {
	Mode     string
	Secret   string
	JWKSURL  string
	Audience string
	Issuer   string
	// JWKSRefresh is how often the key set is refetched in jwks mode.
	JWKSRefresh time.Duration
	Leeway      time.Duration
}

// Verifier validates incoming JWT tokens.
type Verifier struct {
	parser   *jwt.Parser
	keyFunc  jwt.Keyfunc
	jwks     *keyfunc.JWKS
	audience string
	issuer   string
	leeway   time.Duration
	now      func() time.Time
}

func New(opts Options) (*Verifier, error) {
	v := &Verifier{
		audience: opts.Audience,
		issuer:   opts.Issuer,
		leeway:   opts.Leeway,
		now:      time.Now,
	}
	if v.leeway <= 0 {
		v.leeway = defaultLeeway
	}

	switch strings.ToLower(opts.Mode) {
	case ModeHS256:
		if opts.Secret == "" {
			return nil, errors.New("auth: secret must be set in hs256 mode")
		}
		secret := []byte(opts.Secret)
		v.parser = jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}), jwt.WithoutClaimsValidation())
		v.keyFunc = func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("invalid signing method")
			}
			return secret, nil
		}
	case ModeJWKS:
		if opts.JWKSURL == "" {
			return nil, errors.New("auth: jwks_url must be set in jwks mode")
		}
		jwks, err := keyfunc.Get(opts.JWKSURL, keyfunc.Options{
			RefreshInterval:   opts.JWKSRefresh,
			RefreshUnknownKID: true,
		})
		if err != nil {
			return nil, fmt.Errorf("auth: load jwks: %w", err)
		}
		v.jwks = jwks
		v.parser = jwt.NewParser(jwt.WithValidMethods([]string{"RS256", "ES256"}), jwt.WithoutClaimsValidation())
		v.keyFunc = jwks.Keyfunc
	default:
		return nil, fmt.Errorf("auth: unsupported mode %q", opts.Mode)
	}

	return v, nil
}

// Close stops the background JWKS refresh, if any.
func (v *Verifier) Close() {
	if v.jwks != nil {
		v.jwks.EndBackground()
	}
}

// Verify returns the caller id carried by an Authorization header value.
// Every failure wraps domain.ErrUnauthenticated.
func (v *Verifier) Verify(ctx context.Context, header string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}

	raw, err := bearerToken(header)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}

	sub, err := v.subject(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}
	return sub, nil
}

func (v *Verifier) subject(raw string) (string, error) {
	token, err := v.parser.Parse(raw, v.keyFunc)
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}

	now := v.now()
	if !claims.VerifyExpiresAt(now.Add(-v.leeway).Unix(), true) {
		return "", errors.New("token expired")
	}
	if !claims.VerifyNotBefore(now.Add(v.leeway).Unix(), false) {
		return "", errors.New("token not valid yet")
	}
	if !claims.VerifyIssuedAt(now.Add(v.leeway).Unix(), false) {
		return "", errors.New("token used before issued")
	}
	if v.audience != "" && !claims.VerifyAudience(v.audience, true) {
		return "", errors.New("invalid audience")
	}
	if v.issuer != "" && !claims.VerifyIssuer(v.issuer, true) {
		return "", errors.New("invalid issuer")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("missing sub")
	}
	return sub, nil
}

func bearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errMissingAuthorization
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", errBadAuthorization
	}
	token = strings.TrimSpace(token)
	if strings.Count(token, ".") != 2 {
		return "", errBadAuthorization
	}
	return token, nil
}
