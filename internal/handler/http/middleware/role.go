package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/haergo/workforce-backend-go/internal/domain/user"
	"github.com/haergo/workforce-backend-go/internal/handler/http/response"
)

// RequireApprover requires manager, hr or super_admin role
func RequireApprover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrApproverAccessRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrApproverAccessRequired)
			return
		}

		if !user.Role(roleStr).IsApprover() {
			response.HandleError(w, user.ErrApproverAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireHR requires hr or super_admin role
func RequireHR(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrHRAccessRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrHRAccessRequired)
			return
		}

		if !user.Role(roleStr).IsHRLevel() {
			response.HandleError(w, user.ErrHRAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
