package models

import (
	"time"

	"skilltrack/internal/progression"
)

// User represents an employee profile
type User struct {
	ID        uint             `json:"id" db:"id"`
	Email     string           `json:"email" db:"email"`
	FullName  string           `json:"full_name" db:"full_name"`
	Role      progression.Role `json:"role" db:"role"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt time.Time        `json:"updated_at" db:"updated_at"`
}

// SkillCategory groups related skills
type SkillCategory struct {
	ID          uint      `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	Color       *string   `json:"color,omitempty" db:"color"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Skill belongs to a category and may own subskills
type Skill struct {
	ID          uint      `json:"id" db:"id"`
	CategoryID  uint      `json:"category_id" db:"category_id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Subskill is a finer-grained ratable item under a skill
type Subskill struct {
	ID          uint      `json:"id" db:"id"`
	SkillID     uint      `json:"skill_id" db:"skill_id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// SkillWithSubskills extends Skill with its subskills
type SkillWithSubskills struct {
	Skill
	Subskills []Subskill `json:"subskills"`
}

// EmployeeRating is the current rating of one user for one skill or subskill
type EmployeeRating struct {
	ID              uint               `json:"id" db:"id"`
	UserID          uint               `json:"user_id" db:"user_id"`
	SkillID         uint               `json:"skill_id" db:"skill_id"`
	SubskillID      *uint              `json:"subskill_id,omitempty" db:"subskill_id"`
	Rating          progression.Level  `json:"rating" db:"rating"`
	Status          progression.Status `json:"status" db:"status"`
	SelfComment     *string            `json:"self_comment,omitempty" db:"self_comment"`
	ApproverComment *string            `json:"approver_comment,omitempty" db:"approver_comment"`
	NAStatus        bool               `json:"na_status" db:"na_status"`
	NextUpgradeDate *time.Time         `json:"next_upgrade_date,omitempty" db:"next_upgrade_date"`
	SubmittedAt     *time.Time         `json:"submitted_at,omitempty" db:"submitted_at"`
	ApprovedAt      *time.Time         `json:"approved_at,omitempty" db:"approved_at"`
	ApprovedBy      *uint              `json:"approved_by,omitempty" db:"approved_by"`
	CreatedAt       time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" db:"updated_at"`
}

// Target returns the item the rating is about
func (r *EmployeeRating) Target() progression.Target {
	return progression.TargetFromIDs(r.SkillID, r.SubskillID)
}

// Record converts the rating into the shape used for scoring
func (r *EmployeeRating) Record() progression.Record {
	return progression.Record{
		ID:            r.ID,
		Target:        r.Target(),
		Level:         r.Rating,
		Status:        r.Status,
		NotApplicable: r.NAStatus,
		NextUpgrade:   r.NextUpgradeDate,
		CreatedAt:     r.CreatedAt,
	}
}

// EmployeeRatingWithDetails includes names for reviewer listings
type EmployeeRatingWithDetails struct {
	EmployeeRating
	UserName     string  `json:"user_name"`
	UserEmail    string  `json:"user_email"`
	UserRole     string  `json:"user_role"`
	SkillName    string  `json:"skill_name"`
	SubskillName *string `json:"subskill_name,omitempty"`
	CategoryID   uint    `json:"category_id"`
}

// ItemTitle is the display name used in notifications, e.g. "Go - Concurrency"
func (r *EmployeeRatingWithDetails) ItemTitle() string {
	if r.SubskillName != nil && *r.SubskillName != "" {
		return r.SkillName + " - " + *r.SubskillName
	}
	return r.SkillName
}

// SkillRatingHistory is an immutable snapshot written on every approval
type SkillRatingHistory struct {
	ID         uint              `json:"id" db:"id"`
	RatingID   uint              `json:"rating_id" db:"rating_id"`
	UserID     uint              `json:"user_id" db:"user_id"`
	SkillID    uint              `json:"skill_id" db:"skill_id"`
	SubskillID *uint             `json:"subskill_id,omitempty" db:"subskill_id"`
	Rating     progression.Level `json:"rating" db:"rating"`
	ApprovedAt time.Time         `json:"approved_at" db:"approved_at"`
	ApprovedBy uint              `json:"approved_by" db:"approved_by"`
	Comment    *string           `json:"comment,omitempty" db:"comment"`
}

// NotificationType controls how a notification is presented
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
)

// Notification is a persisted message for a user. Delivery happens elsewhere.
type Notification struct {
	ID        uint             `json:"id" db:"id"`
	UserID    uint             `json:"user_id" db:"user_id"`
	Title     string           `json:"title" db:"title"`
	Message   string           `json:"message" db:"message"`
	Type      NotificationType `json:"type" db:"type"`
	Read      bool             `json:"read" db:"read"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

// AuditLog represents an audit log entry
type AuditLog struct {
	ID        uint      `json:"id" db:"id"`
	UserID    *uint     `json:"user_id,omitempty" db:"user_id"`
	UserEmail *string   `json:"user_email,omitempty" db:"user_email"`
	Action    string    `json:"action" db:"action"`
	Resource  string    `json:"resource" db:"resource"`
	Details   string    `json:"details,omitempty" db:"details"`
	IPAddress string    `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent string    `json:"user_agent,omitempty" db:"user_agent"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
