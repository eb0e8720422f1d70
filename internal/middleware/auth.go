package middleware

import (
	"context"
	"net/http"

	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/logger"
)

const callerIDKey = "caller_id"

type TokenVerifier interface {
	Verify(ctx context.Context, header string) (string, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// verified caller id for handlers.
func RequireAuth(verifier TokenVerifier, log logger.Logger) ginext.HandlerFunc {
	return func(c *ginext.Context) {
		callerID, err := verifier.Verify(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			log.LogAttrs(c.Request.Context(), logger.DebugLevel, "authentication failed",
				logger.String("request_id", GetRequestID(c)),
				logger.String("reason", err.Error()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, ginext.H{"error": "unauthenticated"})
			return
		}

		c.Set(callerIDKey, callerID)
		c.Next()
	}
}

// CallerID returns the id stored by RequireAuth, or "" on public routes.
func CallerID(c *ginext.Context) string {
	return c.GetString(callerIDKey)
}
