package repository

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcostin/pic-gallery-sub004/internal/domain"
)

var testTime = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func entryRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "image_id", "description", "sort_order",
		"i_id", "i_user_id", "i_title", "i_description", "i_url", "i_created_at", "i_updated_at",
	})
}

func tagRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"image_id", "id", "name"})
}

func TestGalleryRepositoryGetImages(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM gallery_images gi")).
		WithArgs("gal-1").
		WillReturnRows(entryRows().
			AddRow("g1", "i1", nil, 0, "i1", "u1", "Sunset", nil, "https://cdn.test/i1.jpg", testTime, testTime).
			AddRow("g2", "i2", "close up", 1, "i2", "u1", "Harbor", nil, "https://cdn.test/i2.jpg", testTime, testTime))

	mock.ExpectQuery(regexp.QuoteMeta("FROM image_tags it")).
		WithArgs(pq.Array([]string{"i1", "i2"})).
		WillReturnRows(tagRows().
			AddRow("i1", "t1", "landscape"))

	repo := NewGalleryRepository(db)
	entries, err := repo.GetImages("gal-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "g1", entries[0].ID)
	assert.Equal(t, "i1", entries[0].ImageID)
	assert.Nil(t, entries[0].Description)
	assert.Equal(t, 0, entries[0].Order)
	assert.Equal(t, "Sunset", entries[0].Image.Title)
	require.Len(t, entries[0].Image.Tags, 1)
	assert.Equal(t, "landscape", entries[0].Image.Tags[0].Name)

	require.NotNil(t, entries[1].Description)
	assert.Equal(t, "close up", *entries[1].Description)
	assert.Empty(t, entries[1].Image.Tags)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGalleryRepositorySaveImages(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	caption := "close up"
	payload := []domain.GalleryImageSave{
		{ID: "g1", ImageID: "i1", Description: &caption, Order: 0},
		{ImageID: "i2", Order: 1}, // staged entry, no join id yet
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("NOT (id = ANY($2))")).
		WithArgs("gal-1", pq.Array([]string{"g1"})).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE gallery_images SET description = $1, sort_order = $2")).
		WithArgs(caption, 0, "g1", "gal-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO gallery_images")).
		WithArgs(sqlmock.AnyArg(), "gal-1", "i2", nil, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE galleries SET updated_at = NOW()")).
		WithArgs("gal-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery(regexp.QuoteMeta("FROM gallery_images gi")).
		WithArgs("gal-1").
		WillReturnRows(entryRows().
			AddRow("g1", "i1", "close up", 0, "i1", "u1", "Sunset", nil, "https://cdn.test/i1.jpg", testTime, testTime).
			AddRow("g2", "i2", nil, 1, "i2", "u1", "Harbor", nil, "https://cdn.test/i2.jpg", testTime, testTime))
	mock.ExpectQuery(regexp.QuoteMeta("FROM image_tags it")).
		WithArgs(pq.Array([]string{"i1", "i2"})).
		WillReturnRows(tagRows())

	repo := NewGalleryRepository(db)
	entries, err := repo.SaveImages("gal-1", payload)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// The staged entry comes back under its permanent join id.
	assert.Equal(t, "g2", entries[1].ID)
	assert.False(t, entries[1].IsTemp())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGalleryRepositorySaveImagesEmptyPayload(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM gallery_images WHERE gallery_id = $1")).
		WithArgs("gal-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE galleries SET updated_at = NOW()")).
		WithArgs("gal-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery(regexp.QuoteMeta("FROM gallery_images gi")).
		WithArgs("gal-1").
		WillReturnRows(entryRows())

	repo := NewGalleryRepository(db)
	entries, err := repo.SaveImages("gal-1", nil)
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGalleryRepositorySaveImagesRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM gallery_images")).
		WithArgs("gal-1").
		WillReturnError(fmt.Errorf("connection reset"))
	mock.ExpectRollback()

	repo := NewGalleryRepository(db)
	_, err = repo.SaveImages("gal-1", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error pruning gallery_images")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGalleryRepositoryGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM galleries")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "title", "description", "is_public", "cover_image_id", "created_at", "updated_at",
		}))

	repo := NewGalleryRepository(db)
	_, err = repo.GetByID("missing")
	assert.EqualError(t, err, "gallery not found")

	assert.NoError(t, mock.ExpectationsWereMet())
}
