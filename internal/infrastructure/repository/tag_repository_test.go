package repository

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagRepositoryGetOrCreateReturnsExisting(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// The upsert returns the pre-existing row, not the candidate id.
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tags")).
		WithArgs(sqlmock.AnyArg(), "landscape").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("t1", "landscape"))

	repo := NewTagRepository(db)
	tag, err := repo.GetOrCreate("landscape")
	require.NoError(t, err)
	assert.Equal(t, "t1", tag.ID)
	assert.Equal(t, "landscape", tag.Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagRepositoryDeleteNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tags WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewTagRepository(db)
	assert.EqualError(t, repo.Delete("missing"), "tag not found")

	assert.NoError(t, mock.ExpectationsWereMet())
}
