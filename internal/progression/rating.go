// Package progression holds the rating scale, upgrade rules and category
// progress scoring. Nothing in here performs I/O.
package progression

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Level is a proficiency rating for a skill or subskill.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Levels lists every rating in ascending order.
var Levels = []Level{LevelLow, LevelMedium, LevelHigh}

// ParseLevel converts a raw value into a Level.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRatingLevel, s)
	}
	return l, nil
}

// Valid reports whether l is one of the three known levels.
func (l Level) Valid() bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh:
		return true
	}
	return false
}

// OrdinalWeight is used for upgrade comparisons: low=1, medium=2, high=3.
func (l Level) OrdinalWeight() (int, error) {
	switch l {
	case LevelLow:
		return 1, nil
	case LevelMedium:
		return 2, nil
	case LevelHigh:
		return 3, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidRatingLevel, string(l))
}

// PointWeight is used for progress scoring: low=1, medium=3, high=5.
func (l Level) PointWeight() (int, error) {
	switch l {
	case LevelLow:
		return 1, nil
	case LevelMedium:
		return 3, nil
	case LevelHigh:
		return 5, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidRatingLevel, string(l))
}

// MaxPointWeight is the point weight of the highest level.
const MaxPointWeight = 5

func (l Level) String() string { return string(l) }

// UnmarshalText rejects unknown levels when decoding JSON or query values.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Scan implements sql.Scanner.
func (l *Level) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return l.UnmarshalText([]byte(v))
	case []byte:
		return l.UnmarshalText(v)
	}
	return fmt.Errorf("%w: unsupported type %T", ErrInvalidRatingLevel, src)
}

// Value implements driver.Valuer.
func (l Level) Value() (driver.Value, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRatingLevel, string(l))
	}
	return string(l), nil
}

// Status is the lifecycle state of a rating record.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

// ParseStatus converts a raw value into a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusApproved, StatusRejected:
		return true
	}
	return false
}

func (s Status) String() string { return string(s) }

func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Scan implements sql.Scanner.
func (s *Status) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return s.UnmarshalText([]byte(v))
	case []byte:
		return s.UnmarshalText(v)
	}
	return fmt.Errorf("%w: unsupported type %T", ErrInvalidStatus, src)
}

// Value implements driver.Valuer.
func (s Status) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, string(s))
	}
	return string(s), nil
}
