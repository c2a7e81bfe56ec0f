package middleware

import (
	"net/http"

	"github.com/employeehub/payroll-backend-go/internal/domain/auth"
	"github.com/employeehub/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// AdminOnly allows only users carrying the admin role through. It expects
// AuthRequired to have run first.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		role, _ := claims["role"].(string)
		if role != string(auth.RoleAdmin) {
			response.HandleError(w, auth.ErrForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
