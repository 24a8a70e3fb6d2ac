package progression

import (
	"errors"
	"fmt"
	"strings"
)

// ErrReviewerRequired is returned when a user without a reviewing role tries to decide a rating.
var ErrReviewerRequired = errors.New("only tech leads, managers and admins can review ratings")

// Role is the single role a user holds.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleTechLead Role = "tech_lead"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// ReviewerRoles lists the roles allowed to approve or reject ratings.
var ReviewerRoles = []Role{RoleTechLead, RoleManager, RoleAdmin}

func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RoleEmployee, RoleTechLead, RoleManager, RoleAdmin:
		return r, nil
	}
	return "", fmt.Errorf("invalid role: %q", s)
}

func (r Role) IsReviewer() bool {
	for _, rr := range ReviewerRoles {
		if r == rr {
			return true
		}
	}
	return false
}

// Reviewer is the user deciding on a rating.
type Reviewer struct {
	ID   uint
	Role Role
}

// ReviewAction is a reviewer decision.
type ReviewAction string

const (
	ActionApprove ReviewAction = "approve"
	ActionReject  ReviewAction = "reject"
)

// ResultStatus is the status a rating ends up in after the action.
func (a ReviewAction) ResultStatus() Status {
	if a == ActionApprove {
		return StatusApproved
	}
	return StatusRejected
}

// editTransitions are the status changes an owner may make while editing.
var editTransitions = map[Status][]Status{
	StatusDraft:     {StatusDraft, StatusSubmitted},
	StatusSubmitted: {StatusDraft, StatusSubmitted},
	StatusApproved:  {StatusDraft, StatusSubmitted},
	StatusRejected:  {StatusDraft, StatusSubmitted},
}

// CheckEdit validates an owner moving a rating from one status to another.
// Owners can only produce drafts and submissions; decisions belong to reviewers.
func CheckEdit(from, to Status) error {
	allowed, ok := editTransitions[from]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, string(from))
	}
	for _, s := range allowed {
		if s == to {
			return nil
		}
	}
	return fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidTransition, from, to)
}

// CheckReview validates a reviewer decision on a rating owned by ownerID and
// currently in status. It returns the trimmed comment to store.
//
// Rejections need a comment. A tech lead may not decide their own rating.
// Only submitted ratings can be decided.
func CheckReview(action ReviewAction, status Status, ownerID uint, reviewer Reviewer, comment string) (string, error) {
	comment = strings.TrimSpace(comment)
	if action != ActionApprove && action != ActionReject {
		return "", fmt.Errorf("%w: unknown action %q", ErrInvalidTransition, string(action))
	}
	if action == ActionReject && comment == "" {
		return "", ErrCommentRequired
	}
	if !reviewer.Role.IsReviewer() {
		return "", ErrReviewerRequired
	}
	if reviewer.Role == RoleTechLead && reviewer.ID == ownerID {
		return "", ErrSelfApprovalForbidden
	}
	if status != StatusSubmitted {
		return "", fmt.Errorf("%w: cannot %s a %s rating", ErrInvalidTransition, action, status)
	}
	return comment, nil
}
