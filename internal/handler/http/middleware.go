package http

import (
	"net/http"
	"strings"

	"github.com/Thamizhjaisankar-git/amazon-clone/pkg/httputil"
	"github.com/Thamizhjaisankar-git/amazon-clone/pkg/logger"
	"github.com/Thamizhjaisankar-git/amazon-clone/pkg/middleware"
	"github.com/Thamizhjaisankar-git/amazon-clone/pkg/validator"
)

// profileIDRule keeps IDs usable as a storage key segment.
const profileIDRule = "required,max=64,excludesall=: "

// ProfileIDFromHeader requires the X-Profile-ID header and stores the
// profile in the request context.
func ProfileIDFromHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(middleware.ProfileIDHeader))
		if id == "" {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "X-Profile-ID header is required"},
			})
			return
		}
		if err := validator.Var(id, profileIDRule); err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "X-Profile-ID must be at most 64 characters without ':' or spaces"},
			})
			return
		}
		ctx := logger.WithProfileID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func profileID(r *http.Request) string {
	return logger.ProfileIDFromContext(r.Context())
}

// ContentTypeJSON rejects request bodies that are not application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				httputil.WriteJSON(w, http.StatusUnsupportedMediaType, httputil.Response{
					Error: &httputil.ErrorResponse{Code: "UNSUPPORTED_MEDIA_TYPE", Message: "Content-Type must be application/json"},
				})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
