package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/vcostin/pic-gallery-sub004/internal/domain"
)

type TagRepository struct {
	db *sql.DB
}

func NewTagRepository(db *sql.DB) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) GetAll() ([]domain.Tag, error) {
	rows, err := r.db.Query(`SELECT id, name FROM tags ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []domain.Tag
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (r *TagRepository) GetByID(id string) (*domain.Tag, error) {
	var t domain.Tag
	err := r.db.QueryRow(`SELECT id, name FROM tags WHERE id = $1`, id).Scan(&t.ID, &t.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("tag not found")
		}
		return nil, err
	}
	return &t, nil
}

// GetOrCreate resolves a tag by name. Concurrent creates race on the
// unique name constraint, so the insert falls back to a re-select.
func (r *TagRepository) GetOrCreate(name string) (*domain.Tag, error) {
	var t domain.Tag
	query := `
		INSERT INTO tags (id, name)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name
	`
	if err := r.db.QueryRow(query, uuid.New().String(), name).Scan(&t.ID, &t.Name); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TagRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("tag not found")
	}
	return nil
}
