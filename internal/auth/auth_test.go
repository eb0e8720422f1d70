package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/codewithrabha/eventbooking/internal/domain"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func sign(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub": "user-123",
		"aud": "authenticated",
		"iss": "https://issuer/auth/v1",
		"exp": now.Add(5 * time.Minute).Unix(),
		"nbf": now.Add(-time.Minute).Unix(),
		"iat": now.Add(-time.Minute).Unix(),
	}
}

func newHS256(t *testing.T) *Verifier {
	t.Helper()
	v, err := New(Options{
		Mode:     ModeHS256,
		Secret:   testSecret,
		Audience: "authenticated",
		Issuer:   "https://issuer/auth/v1",
	})
	require.NoError(t, err)
	return v
}

func TestVerify_HS256(t *testing.T) {
	v := newHS256(t)

	sub, err := v.Verify(context.Background(), "Bearer "+sign(t, testSecret, validClaims()))

	require.NoError(t, err)
	assert.Equal(t, "user-123", sub)
}

func TestVerify_Failures(t *testing.T) {
	v := newHS256(t)

	expired := validClaims()
	expired["exp"] = time.Now().Add(-2 * time.Hour).Unix()

	wrongAud := validClaims()
	wrongAud["aud"] = "someone-else"

	noSub := validClaims()
	delete(noSub, "sub")

	future := validClaims()
	future["nbf"] = time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"too many periods", "Bearer " + strings.Repeat(".", 10)},
		{"wrong secret", "Bearer " + sign(t, "other-secret", validClaims())},
		{"expired", "Bearer " + sign(t, testSecret, expired)},
		{"wrong audience", "Bearer " + sign(t, testSecret, wrongAud)},
		{"missing sub", "Bearer " + sign(t, testSecret, noSub)},
		{"not yet valid", "Bearer " + sign(t, testSecret, future)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), tt.header)
			assert.ErrorIs(t, err, domain.ErrUnauthenticated)
		})
	}
}

func TestVerify_LeewayAcceptsJustExpired(t *testing.T) {
	v := newHS256(t)

	claims := validClaims()
	claims["exp"] = time.Now().Add(-10 * time.Second).Unix()

	sub, err := v.Verify(context.Background(), "Bearer "+sign(t, testSecret, claims))

	require.NoError(t, err)
	assert.Equal(t, "user-123", sub)
}

func TestVerify_RejectsNoneAlgorithm(t *testing.T) {
	v := newHS256(t)

	token := jwt.NewWithClaims(jwt.SigningMethodNone, validClaims())
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), "Bearer "+signed)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestNew_InvalidOptions(t *testing.T) {
	_, err := New(Options{Mode: ModeHS256})
	assert.Error(t, err)

	_, err = New(Options{Mode: ModeJWKS})
	assert.Error(t, err)

	_, err = New(Options{Mode: "basic"})
	assert.Error(t, err)
}

func TestBearerToken(t *testing.T) {
	for _, header := range []string{
		"  Bearer header.payload.signature ",
		"bearer header.payload.signature",
		"BEARER   header.payload.signature",
	} {
		token, err := bearerToken(header)
		require.NoError(t, err, header)
		assert.Equal(t, "header.payload.signature", token, header)
	}

	for _, header := range []string{"Bearer ", "Bearer", "Bearerx header.payload.signature", "Token header.payload.signature"} {
		_, err := bearerToken(header)
		assert.ErrorIs(t, err, errBadAuthorization, header)
	}
}

func TestVerify_LowercaseScheme(t *testing.T) {
	v := newHS256(t)

	sub, err := v.Verify(context.Background(), "bearer "+sign(t, testSecret, validClaims()))

	require.NoError(t, err)
	assert.Equal(t, "user-123", sub)
}
