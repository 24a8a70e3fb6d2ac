package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"skilltrack/internal/models"
)

// AuditStore persists audit entries
type AuditStore interface {
	Create(ctx context.Context, log *models.AuditLog) error
}

// AuditMiddleware records who called privileged endpoints, from where
type AuditMiddleware struct {
	auditRepo AuditStore
}

// NewAuditMiddleware creates a new audit middleware
func NewAuditMiddleware(auditRepo AuditStore) *AuditMiddleware {
	return &AuditMiddleware{
		auditRepo: auditRepo,
	}
}

// Log records action on resource for every successful request. It must run
// after Authenticate.
func (m *AuditMiddleware) Log(action, resource string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := wrapResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			if wrapped.statusCode >= 400 {
				return
			}

			var userID *uint
			if id, ok := GetUserID(r); ok {
				userID = &id
			}

			entry := &models.AuditLog{
				UserID:    userID,
				Action:    action,
				Resource:  resource,
				Details:   r.Method + " " + r.URL.Path,
				IPAddress: getIP(r),
				UserAgent: r.UserAgent(),
			}
			// the response is already written; a failed audit write is only logged
			if err := m.auditRepo.Create(r.Context(), entry); err != nil {
				slog.Warn("Failed to write audit log", "action", action, "error", err, "request_id", GetRequestID(r.Context()))
			}
		})
	}
}
