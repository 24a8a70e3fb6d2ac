package service

import (
	"errors"

	"skilltrack/internal/progression"
)

var (
	ErrRatingNotFound       = errors.New("rating not found")
	ErrItemNotFound         = errors.New("skill or subskill not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrForbidden            = errors.New("forbidden")
	ErrUpgradeDenied        = errors.New("upgrade denied")
	ErrNotApplicable        = errors.New("skill is marked as not applicable")
	// ErrRateSubskills is returned when a skill that has subskills is rated directly.
	ErrRateSubskills = errors.New("skill has subskills, rate those instead")
)

// UpgradeDeniedError carries the decision that blocked a rating change.
// It matches ErrUpgradeDenied with errors.Is.
type UpgradeDeniedError struct {
	Decision progression.Decision
}

func (e *UpgradeDeniedError) Error() string {
	return "upgrade denied: " + e.Decision.Reason
}

func (e *UpgradeDeniedError) Unwrap() error {
	return ErrUpgradeDenied
}
