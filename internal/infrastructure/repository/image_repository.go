package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/vcostin/pic-gallery-sub004/internal/domain"
)

type ImageRepository struct {
	db *sql.DB
}

func NewImageRepository(db *sql.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

func (r *ImageRepository) Create(image *domain.Image) error {
	image.ID = uuid.New().String()
	query := `
		INSERT INTO images (id, user_id, title, description, url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRow(query,
		image.ID, image.UserID, image.Title, image.Description, image.URL,
	).Scan(&image.CreatedAt, &image.UpdatedAt)
}

func (r *ImageRepository) GetByID(id string) (*domain.Image, error) {
	query := `
		SELECT id, user_id, title, description, url, created_at, updated_at
		FROM images
		WHERE id = $1
	`
	var img domain.Image
	err := r.db.QueryRow(query, id).Scan(
		&img.ID, &img.UserID, &img.Title, &img.Description, &img.URL, &img.CreatedAt, &img.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("image not found")
		}
		return nil, err
	}

	images := []domain.Image{img}
	if err := r.attachTags(images); err != nil {
		return nil, err
	}
	return &images[0], nil
}

func (r *ImageRepository) GetByIDs(ids []string) ([]domain.Image, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
		SELECT id, user_id, title, description, url, created_at, updated_at
		FROM images
		WHERE id = ANY($1)
	`
	rows, err := r.db.Query(query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images, err := scanImages(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachTags(images); err != nil {
		return nil, err
	}
	return images, nil
}

func (r *ImageRepository) ListByUser(userID string, tagName string) ([]domain.Image, error) {
	query := `
		SELECT i.id, i.user_id, i.title, i.description, i.url, i.created_at, i.updated_at
		FROM images i
		WHERE i.user_id = $1
	`
	args := []interface{}{userID}
	if tagName != "" {
		query += `
		AND EXISTS (
			SELECT 1 FROM image_tags it
			JOIN tags t ON t.id = it.tag_id
			WHERE it.image_id = i.id AND t.name = $2
		)`
		args = append(args, tagName)
	}
	query += `
		ORDER BY i.created_at DESC
	`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images, err := scanImages(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachTags(images); err != nil {
		return nil, err
	}
	return images, nil
}

func (r *ImageRepository) Update(image *domain.Image) error {
	query := `
		UPDATE images
		SET title = $1, description = $2, updated_at = NOW()
		WHERE id = $3
	`
	result, err := r.db.Exec(query, image.Title, image.Description, image.ID)
	if err != nil {
		return err
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("image not found")
	}
	return nil
}

func (r *ImageRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM images WHERE id = $1", id)
	if err != nil {
		return err
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("image not found")
	}
	return nil
}

// SetTags replaces the image's tag assignments inside one transaction.
func (r *ImageRepository) SetTags(imageID string, tagIDs []string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("error starting tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.Exec(`DELETE FROM image_tags WHERE image_id = $1`, imageID); err != nil {
		return fmt.Errorf("error clearing image_tags: %w", err)
	}

	if len(tagIDs) > 0 {
		var vals []string
		var args []interface{}
		for i, tagID := range tagIDs {
			vals = append(vals, fmt.Sprintf("($%d,$%d)", i*2+1, i*2+2))
			args = append(args, imageID, tagID)
		}
		q := fmt.Sprintf("INSERT INTO image_tags (image_id, tag_id) VALUES %s", strings.Join(vals, ","))
		if _, err = tx.Exec(q, args...); err != nil {
			return fmt.Errorf("error inserting image_tags: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing tx: %w", err)
	}
	return nil
}

func scanImages(rows *sql.Rows) ([]domain.Image, error) {
	var images []domain.Image
	for rows.Next() {
		var img domain.Image
		if err := rows.Scan(&img.ID, &img.UserID, &img.Title, &img.Description, &img.URL, &img.CreatedAt, &img.UpdatedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (r *ImageRepository) attachTags(images []domain.Image) error {
	if len(images) == 0 {
		return nil
	}
	ids := make([]string, len(images))
	for i, img := range images {
		ids[i] = img.ID
	}

	tagsByImage, err := loadTagsFor(r.db, ids)
	if err != nil {
		return err
	}
	for i := range images {
		images[i].Tags = tagsByImage[images[i].ID]
	}
	return nil
}

// attachEntryTags fills tag lists into the image snapshots of gallery
// entries.
func attachEntryTags(db *sql.DB, entries []domain.GalleryImageEntry) error {
	if len(entries) == 0 {
		return nil
	}
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ImageID
	}

	tagsByImage, err := loadTagsFor(db, ids)
	if err != nil {
		return err
	}
	for i := range entries {
		entries[i].Image.Tags = tagsByImage[entries[i].ImageID]
	}
	return nil
}

func loadTagsFor(db *sql.DB, imageIDs []string) (map[string][]domain.Tag, error) {
	query := `
		SELECT it.image_id, t.id, t.name
		FROM image_tags it
		JOIN tags t ON t.id = it.tag_id
		WHERE it.image_id = ANY($1)
		ORDER BY t.name ASC
	`
	rows, err := db.Query(query, pq.Array(imageIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tagsByImage := make(map[string][]domain.Tag)
	for rows.Next() {
		var imageID string
		var tag domain.Tag
		if err := rows.Scan(&imageID, &tag.ID, &tag.Name); err != nil {
			return nil, err
		}
		tagsByImage[imageID] = append(tagsByImage[imageID], tag)
	}
	return tagsByImage, rows.Err()
}
