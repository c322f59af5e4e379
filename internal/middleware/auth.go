package middleware

import (
	"context"
	"net/http"

	"paytm-mcp/internal/auth"
	"paytm-mcp/internal/logger"

	"go.uber.org/zap"
)

type contextKey string

const ClientKey contextKey = "mcpClient"

// ClientFrom returns the authenticated client name, if any.
func ClientFrom(ctx context.Context) (string, bool) {
	c, ok := ctx.Value(ClientKey).(string)
	return c, ok && c != ""
}

// Auth admits requests carrying a valid bearer JWT signed with jwtSecret or an
// X-API-Key matching apiKeyHash. With neither configured every request passes.
func Auth(jwtSecret, apiKeyHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if jwtSecret == "" && apiKeyHash == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromCtx(r.Context()).With(zap.String("layer", "middleware"))

			if tok := auth.ExtractBearerToken(r); tok != "" && jwtSecret != "" {
				claims, err := auth.ParseToken(jwtSecret, tok)
				if err == nil {
					ctx := context.WithValue(r.Context(), ClientKey, claims.Client)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
				log.Warn("rejected bearer token", zap.Error(err))
			}

			if key := auth.ExtractAPIKey(r); key != "" && auth.CheckAPIKey(key, apiKeyHash) {
				ctx := context.WithValue(r.Context(), ClientKey, "api-key")
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		})
	}
}
