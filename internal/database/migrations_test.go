package database

import (
	"context"
	"regexp"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skilltrack/migrations"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"002_add_skills.up.sql":   {Data: []byte("CREATE TABLE skills (id SERIAL);")},
		"002_add_skills.down.sql": {Data: []byte("DROP TABLE skills;")},
		"001_init.up.sql":         {Data: []byte("CREATE TABLE users (id SERIAL);")},
		"README.md":               {Data: []byte("ignored")},
		"003_notes.sql":           {Data: []byte("-- neither up nor down")},
	}
}

func TestReadMigrations(t *testing.T) {
	migs, err := ReadMigrations(testFS())
	require.NoError(t, err)
	require.Len(t, migs, 2)

	assert.Equal(t, "001", migs[0].Version)
	assert.Equal(t, "init", migs[0].Title)
	assert.Equal(t, "002", migs[1].Version)
	assert.Equal(t, "add skills", migs[1].Title)
	assert.Equal(t, "DROP TABLE skills;", migs[1].DownSQL)
	assert.Equal(t, calculateChecksum("CREATE TABLE skills (id SERIAL);"), migs[1].Checksum)
}

func TestEmbeddedMigrationsAreOrdered(t *testing.T) {
	migs, err := ReadMigrations(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, migs)
	for i, m := range migs {
		assert.NotEmpty(t, m.UpSQL, m.Version)
		assert.NotEmpty(t, m.DownSQL, m.Version)
		if i > 0 {
			assert.Less(t, migs[i-1].Version, m.Version)
		}
	}
}

func TestRunMigrationsAppliesPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS schema_migrations")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT version, COALESCE(checksum, '') FROM schema_migrations")).
		WillReturnRows(sqlmock.NewRows([]string{"version", "checksum"}).
			AddRow("001", calculateChecksum("CREATE TABLE users (id SERIAL);")))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE skills (id SERIAL);")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schema_migrations (version, title, checksum)")).
		WithArgs("002", "add skills", calculateChecksum("CREATE TABLE skills (id SERIAL);")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	applied, err := NewMigrationExecutor(db).RunMigrations(context.Background(), testFS())
	require.NoError(t, err)
	require.Len(t, applied, 1)
	assert.Equal(t, "002", applied[0].Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrationsDetectsModifiedFile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS schema_migrations")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT version")).
		WillReturnRows(sqlmock.NewRows([]string{"version", "checksum"}).AddRow("001", "deadbeef"))

	_, err = NewMigrationExecutor(db).RunMigrations(context.Background(), testFS())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "have been modified")
	assert.NoError(t, mock.ExpectationsWereMet())
}
