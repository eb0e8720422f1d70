package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/wb-go/wbf/ginext"
)

// CORS builds the cors middleware for an allow-list of origins. "*" or an
// empty list allows any origin.
func CORS(allowedOrigins []string) (ginext.HandlerFunc, error) {
	cfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"Authorization", "Content-Type", HeaderRequestID},
		MaxAge:       10 * time.Minute,
	}

	for _, origin := range allowedOrigins {
		origin = strings.TrimSpace(origin)
		switch origin {
		case "":
		case "*":
			cfg.AllowAllOrigins = true
		default:
			cfg.AllowOrigins = append(cfg.AllowOrigins, origin)
		}
	}
	if cfg.AllowAllOrigins || len(cfg.AllowOrigins) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowOrigins = nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("cors: %w", err)
	}

	return ginext.HandlerFunc(cors.New(cfg)), nil
}
