package middleware

import (
	"log/slog"
	"net/http"

	"github.com/Thamizhjaisankar-git/amazon-clone/pkg/logger"
)

// ProfileIDHeader names the storefront profile a request acts on.
const ProfileIDHeader = "X-Profile-ID"

// RequestLogger stores a logger enriched with correlation_id, profile_id,
// trace_id and span_id in the request context. Mount it after RequestLogging
// and Tracing.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if logger.ProfileIDFromContext(ctx) == "" {
				if id := r.Header.Get(ProfileIDHeader); id != "" {
					ctx = logger.WithProfileID(ctx, id)
				}
			}

			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
