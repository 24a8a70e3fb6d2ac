package service

import (
	"context"
	"log/slog"

	"skilltrack/internal/models"
)

// Audit actions
const (
	AuditRate             = "rate"
	AuditSubmit           = "submit"
	AuditApprove          = "approve"
	AuditReject           = "reject"
	AuditSetNotApplicable = "set_not_applicable"
)

// AuditService handles audit logging
type AuditService struct {
	auditRepo auditStore
}

// NewAuditService creates a new audit service
func NewAuditService(auditRepo auditStore) *AuditService {
	return &AuditService{
		auditRepo: auditRepo,
	}
}

// Log creates an audit log entry. Failures are logged and otherwise ignored
// so they never fail the operation being audited.
func (s *AuditService) Log(ctx context.Context, userID uint, action, resource, details string) {
	if s == nil {
		return
	}
	err := s.auditRepo.Create(ctx, &models.AuditLog{
		UserID:   &userID,
		Action:   action,
		Resource: resource,
		Details:  details,
	})
	if err != nil {
		slog.Warn("Failed to write audit log", "action", action, "resource", resource, "error", err)
	}
}
