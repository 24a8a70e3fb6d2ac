package testutil

import (
	"context"
	"database/sql"
	"testing"

	"skilltrack/internal/models"
	"skilltrack/internal/progression"
	"skilltrack/internal/repository"
)

// Fixtures holds test data
type Fixtures struct {
	DB *sql.DB

	Employee *models.User
	TechLead *models.User
	Manager  *models.User
	Admin    *models.User

	Category *models.SkillCategory
	// Go has the subskills Concurrency and Testing; SQL has none
	GoSkill     *models.Skill
	SQLSkill    *models.Skill
	Concurrency *models.Subskill
	Testing     *models.Subskill
}

// SetupFixtures creates one user per role and a small catalog
func SetupFixtures(t *testing.T, db *sql.DB) *Fixtures {
	t.Helper()
	ctx := context.Background()

	users := repository.NewUserRepository(db)
	catalog := repository.NewCatalogRepository(db)

	f := &Fixtures{DB: db}
	f.Employee = createUser(t, ctx, users, "employee@test.com", "Erin Employee", progression.RoleEmployee)
	f.TechLead = createUser(t, ctx, users, "lead@test.com", "Terry Lead", progression.RoleTechLead)
	f.Manager = createUser(t, ctx, users, "manager@test.com", "Morgan Manager", progression.RoleManager)
	f.Admin = createUser(t, ctx, users, "admin@test.com", "Alex Admin", progression.RoleAdmin)

	f.Category = &models.SkillCategory{Name: "Backend"}
	if err := catalog.CreateCategory(ctx, f.Category); err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}

	f.GoSkill = createSkill(t, ctx, catalog, f.Category.ID, "Go")
	f.SQLSkill = createSkill(t, ctx, catalog, f.Category.ID, "SQL")
	f.Concurrency = createSubskill(t, ctx, catalog, f.GoSkill.ID, "Concurrency")
	f.Testing = createSubskill(t, ctx, catalog, f.GoSkill.ID, "Testing")

	return f
}

func createUser(t *testing.T, ctx context.Context, repo *repository.UserRepository, email, name string, role progression.Role) *models.User {
	t.Helper()

	user := &models.User{Email: email, FullName: name, Role: role}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Failed to create user %s: %v", email, err)
	}
	return user
}

func createSkill(t *testing.T, ctx context.Context, repo *repository.CatalogRepository, categoryID uint, name string) *models.Skill {
	t.Helper()

	skill := &models.Skill{CategoryID: categoryID, Name: name}
	if err := repo.CreateSkill(ctx, skill); err != nil {
		t.Fatalf("Failed to create skill %s: %v", name, err)
	}
	return skill
}

func createSubskill(t *testing.T, ctx context.Context, repo *repository.CatalogRepository, skillID uint, name string) *models.Subskill {
	t.Helper()

	sub := &models.Subskill{SkillID: skillID, Name: name}
	if err := repo.CreateSubskill(ctx, sub); err != nil {
		t.Fatalf("Failed to create subskill %s: %v", name, err)
	}
	return sub
}
