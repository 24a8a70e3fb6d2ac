package middleware

import (
	"net/http"
	"slices"

	"skilltrack/internal/progression"
)

// RequireAnyRole checks if the authenticated user holds one of roles.
// It must run after Authenticate.
func RequireAnyRole(roles ...progression.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUser(r)
			if !ok {
				respondWithError(w, http.StatusUnauthorized, "User not authenticated")
				return
			}

			if !slices.Contains(roles, user.Role) {
				respondWithError(w, http.StatusForbidden, "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireReviewer allows tech leads, managers and admins
func RequireReviewer(next http.Handler) http.Handler {
	return RequireAnyRole(progression.ReviewerRoles...)(next)
}
