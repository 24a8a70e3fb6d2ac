package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"skilltrack/internal/models"
	"skilltrack/internal/progression"
)

// RatingRepository handles database operations for employee ratings and their history
type RatingRepository struct {
	db *sql.DB
}

// NewRatingRepository creates a new rating repository
func NewRatingRepository(db *sql.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

const ratingColumns = `
	er.id, er.user_id, er.skill_id, er.subskill_id, er.rating, er.status,
	er.self_comment, er.approver_comment, er.na_status, er.next_upgrade_date,
	er.submitted_at, er.approved_at, er.approved_by, er.created_at, er.updated_at`

func ratingDest(r *models.EmployeeRating) []any {
	return []any{
		&r.ID, &r.UserID, &r.SkillID, &r.SubskillID, &r.Rating, &r.Status,
		&r.SelfComment, &r.ApproverComment, &r.NAStatus, &r.NextUpgradeDate,
		&r.SubmittedAt, &r.ApprovedAt, &r.ApprovedBy, &r.CreatedAt, &r.UpdatedAt,
	}
}

func scanRating(row rowScanner) (*models.EmployeeRating, error) {
	var r models.EmployeeRating
	if err := row.Scan(ratingDest(&r)...); err != nil {
		return nil, err
	}
	return &r, nil
}

// GetByID retrieves a rating by ID
func (r *RatingRepository) GetByID(ctx context.Context, id uint) (*models.EmployeeRating, error) {
	query := `SELECT ` + ratingColumns + ` FROM employee_ratings er WHERE er.id = $1`

	rating, err := scanRating(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rating: %w", err)
	}
	return rating, nil
}

const detailColumns = `,
	u.full_name, u.email, u.role, s.name, ss.name, s.category_id`

const detailJoins = `
	INNER JOIN users u ON er.user_id = u.id
	INNER JOIN skills s ON er.skill_id = s.id
	LEFT JOIN subskills ss ON er.subskill_id = ss.id`

func scanRatingDetails(row rowScanner) (*models.EmployeeRatingWithDetails, error) {
	var d models.EmployeeRatingWithDetails
	dest := append(ratingDest(&d.EmployeeRating),
		&d.UserName, &d.UserEmail, &d.UserRole, &d.SkillName, &d.SubskillName, &d.CategoryID)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &d, nil
}

// GetWithDetails retrieves a rating with user and skill names
func (r *RatingRepository) GetWithDetails(ctx context.Context, id uint) (*models.EmployeeRatingWithDetails, error) {
	query := `SELECT ` + ratingColumns + detailColumns + ` FROM employee_ratings er` + detailJoins + ` WHERE er.id = $1`

	d, err := scanRatingDetails(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rating: %w", err)
	}
	return d, nil
}

// GetByUserAndTarget retrieves the rating a user holds for one skill or subskill
func (r *RatingRepository) GetByUserAndTarget(ctx context.Context, userID, skillID uint, subskillID *uint) (*models.EmployeeRating, error) {
	query := `
		SELECT ` + ratingColumns + `
		FROM employee_ratings er
		WHERE er.user_id = $1 AND er.skill_id = $2 AND er.subskill_id IS NOT DISTINCT FROM $3
	`

	rating, err := scanRating(r.db.QueryRowContext(ctx, query, userID, skillID, subskillID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rating: %w", err)
	}
	return rating, nil
}

// ListByUser retrieves a user's ratings, limited to one category unless categoryID is 0
func (r *RatingRepository) ListByUser(ctx context.Context, userID, categoryID uint) ([]models.EmployeeRating, error) {
	query := `
		SELECT ` + ratingColumns + `
		FROM employee_ratings er
		INNER JOIN skills s ON er.skill_id = s.id
		WHERE er.user_id = $1 AND ($2 = 0 OR s.category_id = $2)
		ORDER BY er.id
	`

	rows, err := r.db.QueryContext(ctx, query, userID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	defer rows.Close()

	var ratings []models.EmployeeRating
	for rows.Next() {
		rating, err := scanRating(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, *rating)
	}
	return ratings, rows.Err()
}

// ListSubmitted retrieves every rating waiting for a decision, oldest first
func (r *RatingRepository) ListSubmitted(ctx context.Context) ([]models.EmployeeRatingWithDetails, error) {
	query := `SELECT ` + ratingColumns + detailColumns + ` FROM employee_ratings er` + detailJoins + `
		WHERE er.status = 'submitted'
		ORDER BY er.submitted_at ASC NULLS LAST, er.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list submitted ratings: %w", err)
	}
	defer rows.Close()

	var ratings []models.EmployeeRatingWithDetails
	for rows.Next() {
		d, err := scanRatingDetails(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, *d)
	}
	return ratings, rows.Err()
}

// Create inserts a new rating and its notifications in one transaction.
// A concurrent insert for the same item yields progression.ErrInvalidTransition.
func (r *RatingRepository) Create(ctx context.Context, rating *models.EmployeeRating, notifications []models.Notification) error {
	query := `
		INSERT INTO employee_ratings (user_id, skill_id, subskill_id, rating, status, self_comment, submitted_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		ON CONFLICT ON CONSTRAINT employee_ratings_one_per_item DO NOTHING
		RETURNING id
	`

	now := time.Now()
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, query,
			rating.UserID, rating.SkillID, rating.SubskillID, rating.Rating, rating.Status,
			rating.SelfComment, rating.SubmittedAt, now,
		).Scan(&rating.ID)
		if err == sql.ErrNoRows {
			return fmt.Errorf("%w: item was rated concurrently", progression.ErrInvalidTransition)
		}
		if err != nil {
			return fmt.Errorf("failed to create rating: %w", err)
		}
		rating.CreatedAt = now
		rating.UpdatedAt = now

		return insertNotifications(ctx, tx, notifications)
	})
}

// UpdateByOwner stores an owner's edit, but only if the rating is still in
// expected. Otherwise progression.ErrInvalidTransition is returned and
// nothing is written. Notifications are inserted in the same transaction.
func (r *RatingRepository) UpdateByOwner(ctx context.Context, rating *models.EmployeeRating, expected progression.Status, notifications []models.Notification) error {
	query := `
		UPDATE employee_ratings
		SET rating = $1, status = $2, self_comment = $3, submitted_at = $4,
		    approver_comment = NULL, updated_at = $5
		WHERE id = $6 AND status = $7
	`

	now := time.Now()
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, query,
			rating.Rating, rating.Status, rating.SelfComment, rating.SubmittedAt, now,
			rating.ID, expected,
		)
		if err != nil {
			return fmt.Errorf("failed to update rating: %w", err)
		}
		if n, err := result.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return fmt.Errorf("%w: rating %d is no longer %s", progression.ErrInvalidTransition, rating.ID, expected)
		}
		rating.ApproverComment = nil
		rating.UpdatedAt = now

		return insertNotifications(ctx, tx, notifications)
	})
}

// ReviewUpdate describes a reviewer decision to persist
type ReviewUpdate struct {
	RatingID    uint
	Status      progression.Status // approved or rejected
	ReviewerID  uint
	Comment     *string
	DecidedAt   time.Time
	NextUpgrade *time.Time // only used for approvals
}

// ApplyReview moves a submitted rating to its decided status. The status
// check and the write are one statement, so of two concurrent decisions
// only one succeeds; the other gets progression.ErrInvalidTransition.
// Approvals also append to skill_rating_history. The notification is
// written in the same transaction.
func (r *RatingRepository) ApplyReview(ctx context.Context, update ReviewUpdate, notification *models.Notification) (*models.EmployeeRating, error) {
	var query string
	var args []any
	if update.Status == progression.StatusApproved {
		query = `
			UPDATE employee_ratings er
			SET status = 'approved', approver_comment = $1, approved_at = $2, approved_by = $3,
			    next_upgrade_date = $4, updated_at = $2
			WHERE er.id = $5 AND er.status = 'submitted'
			RETURNING ` + ratingColumns
		args = []any{update.Comment, update.DecidedAt, update.ReviewerID, update.NextUpgrade, update.RatingID}
	} else {
		query = `
			UPDATE employee_ratings er
			SET status = 'rejected', approver_comment = $1, updated_at = $2
			WHERE er.id = $3 AND er.status = 'submitted'
			RETURNING ` + ratingColumns
		args = []any{update.Comment, update.DecidedAt, update.RatingID}
	}

	var rating *models.EmployeeRating
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		rating, err = scanRating(tx.QueryRowContext(ctx, query, args...))
		if err == sql.ErrNoRows {
			return fmt.Errorf("%w: rating %d is not submitted", progression.ErrInvalidTransition, update.RatingID)
		}
		if err != nil {
			return fmt.Errorf("failed to apply review: %w", err)
		}

		if update.Status == progression.StatusApproved {
			history := `
				INSERT INTO skill_rating_history (rating_id, user_id, skill_id, subskill_id, rating, approved_at, approved_by, comment)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			`
			if _, err := tx.ExecContext(ctx, history,
				rating.ID, rating.UserID, rating.SkillID, rating.SubskillID, rating.Rating,
				update.DecidedAt, update.ReviewerID, update.Comment,
			); err != nil {
				return fmt.Errorf("failed to record rating history: %w", err)
			}
		}

		if notification != nil {
			notification.UserID = rating.UserID
			return insertNotifications(ctx, tx, []models.Notification{*notification})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rating, nil
}

// SetNotApplicable flags or unflags a whole skill as not applicable for a
// user. When the user never rated the skill itself a placeholder draft is
// created to carry the flag.
func (r *RatingRepository) SetNotApplicable(ctx context.Context, userID, skillID uint, na bool) (*models.EmployeeRating, error) {
	query := `
		INSERT INTO employee_ratings AS er (user_id, skill_id, subskill_id, rating, status, na_status)
		VALUES ($1, $2, NULL, 'low', 'draft', $3)
		ON CONFLICT ON CONSTRAINT employee_ratings_one_per_item
		DO UPDATE SET na_status = EXCLUDED.na_status, updated_at = CURRENT_TIMESTAMP
		RETURNING ` + ratingColumns

	rating, err := scanRating(r.db.QueryRowContext(ctx, query, userID, skillID, na))
	if err != nil {
		return nil, fmt.Errorf("failed to set not applicable: %w", err)
	}
	return rating, nil
}

// ListHistory retrieves the approvals recorded for a rating, newest first
func (r *RatingRepository) ListHistory(ctx context.Context, ratingID uint) ([]models.SkillRatingHistory, error) {
	query := `
		SELECT id, rating_id, user_id, skill_id, subskill_id, rating, approved_at, approved_by, comment
		FROM skill_rating_history
		WHERE rating_id = $1
		ORDER BY approved_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, ratingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rating history: %w", err)
	}
	defer rows.Close()

	var history []models.SkillRatingHistory
	for rows.Next() {
		var h models.SkillRatingHistory
		if err := rows.Scan(&h.ID, &h.RatingID, &h.UserID, &h.SkillID, &h.SubskillID,
			&h.Rating, &h.ApprovedAt, &h.ApprovedBy, &h.Comment); err != nil {
			return nil, fmt.Errorf("failed to scan rating history: %w", err)
		}
		history = append(history, h)
	}
	return history, rows.Err()
}
