package repository

import (
	"context"
	"database/sql"
	"fmt"

	"skilltrack/internal/models"
)

// CatalogRepository handles database operations for skill categories, skills and subskills
type CatalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// CreateCategory creates a new skill category
func (r *CatalogRepository) CreateCategory(ctx context.Context, category *models.SkillCategory) error {
	query := `
		INSERT INTO skill_categories (name, description, color)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query, category.Name, category.Description, category.Color).
		Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
}

// CreateSkill creates a new skill
func (r *CatalogRepository) CreateSkill(ctx context.Context, skill *models.Skill) error {
	query := `
		INSERT INTO skills (category_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query, skill.CategoryID, skill.Name, skill.Description).
		Scan(&skill.ID, &skill.CreatedAt, &skill.UpdatedAt)
}

// CreateSubskill creates a new subskill
func (r *CatalogRepository) CreateSubskill(ctx context.Context, subskill *models.Subskill) error {
	query := `
		INSERT INTO subskills (skill_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query, subskill.SkillID, subskill.Name, subskill.Description).
		Scan(&subskill.ID, &subskill.CreatedAt, &subskill.UpdatedAt)
}

// ListCategories retrieves all skill categories ordered by name
func (r *CatalogRepository) ListCategories(ctx context.Context) ([]models.SkillCategory, error) {
	query := `
		SELECT id, name, description, color, created_at, updated_at
		FROM skill_categories
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.SkillCategory
	for rows.Next() {
		var c models.SkillCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Color, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// GetCategoryByID retrieves a category by ID
func (r *CatalogRepository) GetCategoryByID(ctx context.Context, id uint) (*models.SkillCategory, error) {
	query := `
		SELECT id, name, description, color, created_at, updated_at
		FROM skill_categories
		WHERE id = $1
	`

	var c models.SkillCategory
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.Name, &c.Description, &c.Color, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &c, nil
}

// ListSkills retrieves the skills of a category, or of all categories when categoryID is 0
func (r *CatalogRepository) ListSkills(ctx context.Context, categoryID uint) ([]models.Skill, error) {
	query := `
		SELECT id, category_id, name, description, created_at, updated_at
		FROM skills
		WHERE $1 = 0 OR category_id = $1
		ORDER BY category_id, name
	`

	rows, err := r.db.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	defer rows.Close()

	var skills []models.Skill
	for rows.Next() {
		var s models.Skill
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.Name, &s.Description, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}

// ListSubskills retrieves the subskills of a category's skills, or all subskills when categoryID is 0
func (r *CatalogRepository) ListSubskills(ctx context.Context, categoryID uint) ([]models.Subskill, error) {
	query := `
		SELECT ss.id, ss.skill_id, ss.name, ss.description, ss.created_at, ss.updated_at
		FROM subskills ss
		INNER JOIN skills s ON ss.skill_id = s.id
		WHERE $1 = 0 OR s.category_id = $1
		ORDER BY ss.skill_id, ss.name
	`

	rows, err := r.db.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subskills: %w", err)
	}
	defer rows.Close()

	var subskills []models.Subskill
	for rows.Next() {
		var ss models.Subskill
		if err := rows.Scan(&ss.ID, &ss.SkillID, &ss.Name, &ss.Description, &ss.CreatedAt, &ss.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subskill: %w", err)
		}
		subskills = append(subskills, ss)
	}
	return subskills, rows.Err()
}

// GetSkillByID retrieves a skill by ID
func (r *CatalogRepository) GetSkillByID(ctx context.Context, id uint) (*models.Skill, error) {
	query := `
		SELECT id, category_id, name, description, created_at, updated_at
		FROM skills
		WHERE id = $1
	`

	var s models.Skill
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&s.ID, &s.CategoryID, &s.Name, &s.Description, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get skill: %w", err)
	}
	return &s, nil
}

// GetSubskillByID retrieves a subskill by ID
func (r *CatalogRepository) GetSubskillByID(ctx context.Context, id uint) (*models.Subskill, error) {
	query := `
		SELECT id, skill_id, name, description, created_at, updated_at
		FROM subskills
		WHERE id = $1
	`

	var ss models.Subskill
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&ss.ID, &ss.SkillID, &ss.Name, &ss.Description, &ss.CreatedAt, &ss.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subskill: %w", err)
	}
	return &ss, nil
}

// CountSubskills returns how many subskills a skill owns
func (r *CatalogRepository) CountSubskills(ctx context.Context, skillID uint) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM subskills WHERE skill_id = $1`, skillID).Scan(&count)
	return count, err
}

// ListSkillsWithSubskills retrieves a category's skills with their subskills attached
func (r *CatalogRepository) ListSkillsWithSubskills(ctx context.Context, categoryID uint) ([]models.SkillWithSubskills, error) {
	skills, err := r.ListSkills(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	subskills, err := r.ListSubskills(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	bySkill := make(map[uint][]models.Subskill)
	for _, ss := range subskills {
		bySkill[ss.SkillID] = append(bySkill[ss.SkillID], ss)
	}

	result := make([]models.SkillWithSubskills, 0, len(skills))
	for _, s := range skills {
		children := bySkill[s.ID]
		if children == nil {
			children = []models.Subskill{}
		}
		result = append(result, models.SkillWithSubskills{Skill: s, Subskills: children})
	}
	return result, nil
}
