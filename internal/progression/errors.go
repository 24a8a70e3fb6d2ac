package progression

import "errors"

var (
	// ErrInvalidRatingLevel is returned for a rating value outside low, medium and high.
	ErrInvalidRatingLevel = errors.New("invalid rating level")
	// ErrInvalidStatus is returned for an unknown rating status.
	ErrInvalidStatus = errors.New("invalid rating status")
	// ErrInvalidTransition is returned when a rating is not in a state that allows the requested change.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrCommentRequired is returned when a rejection has no comment.
	ErrCommentRequired = errors.New("comment is required when rejecting a rating")
	// ErrSelfApprovalForbidden is returned when a tech lead decides their own rating.
	ErrSelfApprovalForbidden = errors.New("tech leads cannot approve or reject their own ratings")
)
