package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/vcostin/pic-gallery-sub004/internal/domain"
)

type GalleryRepository struct {
	db *sql.DB
}

func NewGalleryRepository(db *sql.DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

func (r *GalleryRepository) Create(gallery *domain.Gallery) error {
	gallery.ID = uuid.New().String()
	query := `
		INSERT INTO galleries (id, user_id, title, description, is_public, cover_image_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRow(query,
		gallery.ID, gallery.UserID, gallery.Title, gallery.Description, gallery.IsPublic, gallery.CoverImageID,
	).Scan(&gallery.CreatedAt, &gallery.UpdatedAt)
}

func (r *GalleryRepository) GetByID(id string) (*domain.Gallery, error) {
	query := `
		SELECT id, user_id, title, description, is_public, cover_image_id, created_at, updated_at
		FROM galleries
		WHERE id = $1
	`
	var g domain.Gallery
	err := r.db.QueryRow(query, id).Scan(
		&g.ID, &g.UserID, &g.Title, &g.Description, &g.IsPublic, &g.CoverImageID, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("gallery not found")
		}
		return nil, err
	}
	return &g, nil
}

func (r *GalleryRepository) ListByUser(userID string) ([]domain.Gallery, error) {
	query := `
		SELECT id, user_id, title, description, is_public, cover_image_id, created_at, updated_at
		FROM galleries
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`
	return r.list(query, userID)
}

func (r *GalleryRepository) ListPublic() ([]domain.Gallery, error) {
	query := `
		SELECT id, user_id, title, description, is_public, cover_image_id, created_at, updated_at
		FROM galleries
		WHERE is_public = true
		ORDER BY updated_at DESC
	`
	return r.list(query)
}

func (r *GalleryRepository) list(query string, args ...interface{}) ([]domain.Gallery, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var galleries []domain.Gallery
	for rows.Next() {
		var g domain.Gallery
		if err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.IsPublic, &g.CoverImageID, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		galleries = append(galleries, g)
	}
	return galleries, rows.Err()
}

func (r *GalleryRepository) Update(gallery *domain.Gallery) error {
	query := `
		UPDATE galleries
		SET title = $1, description = $2, is_public = $3, cover_image_id = $4, updated_at = NOW()
		WHERE id = $5
	`
	result, err := r.db.Exec(query, gallery.Title, gallery.Description, gallery.IsPublic, gallery.CoverImageID, gallery.ID)
	if err != nil {
		return err
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("gallery not found")
	}
	return nil
}

func (r *GalleryRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM galleries WHERE id = $1", id)
	if err != nil {
		return err
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("gallery not found")
	}
	return nil
}

func (r *GalleryRepository) GetImages(galleryID string) ([]domain.GalleryImageEntry, error) {
	query := `
		SELECT gi.id, gi.image_id, gi.description, gi.sort_order,
		       i.id, i.user_id, i.title, i.description, i.url, i.created_at, i.updated_at
		FROM gallery_images gi
		JOIN images i ON i.id = gi.image_id
		WHERE gi.gallery_id = $1
		ORDER BY gi.sort_order ASC
	`
	rows, err := r.db.Query(query, galleryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.GalleryImageEntry
	for rows.Next() {
		var e domain.GalleryImageEntry
		if err := rows.Scan(
			&e.ID, &e.ImageID, &e.Description, &e.Order,
			&e.Image.ID, &e.Image.UserID, &e.Image.Title, &e.Image.Description, &e.Image.URL,
			&e.Image.CreatedAt, &e.Image.UpdatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := attachEntryTags(r.db, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// SaveImages replaces the gallery's image set in one transaction: rows
// absent from the payload are deleted, retained rows are updated in
// place, entries without an id get a fresh join record. The caller sends
// sort_order equal to the entry's position, so the stored numbering is
// contiguous after every save.
func (r *GalleryRepository) SaveImages(galleryID string, images []domain.GalleryImageSave) ([]domain.GalleryImageEntry, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("error starting tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	keepIDs := make([]string, 0, len(images))
	for _, img := range images {
		if img.ID != "" {
			keepIDs = append(keepIDs, img.ID)
		}
	}

	if len(keepIDs) > 0 {
		_, err = tx.Exec(
			`DELETE FROM gallery_images WHERE gallery_id = $1 AND NOT (id = ANY($2))`,
			galleryID, pq.Array(keepIDs),
		)
	} else {
		_, err = tx.Exec(`DELETE FROM gallery_images WHERE gallery_id = $1`, galleryID)
	}
	if err != nil {
		return nil, fmt.Errorf("error pruning gallery_images: %w", err)
	}

	for _, img := range images {
		if img.ID != "" {
			_, err = tx.Exec(
				`UPDATE gallery_images SET description = $1, sort_order = $2 WHERE id = $3 AND gallery_id = $4`,
				img.Description, img.Order, img.ID, galleryID,
			)
			if err != nil {
				return nil, fmt.Errorf("error updating gallery image: %w", err)
			}
			continue
		}
		_, err = tx.Exec(
			`INSERT INTO gallery_images (id, gallery_id, image_id, description, sort_order)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (gallery_id, image_id) DO UPDATE SET description = $4, sort_order = $5`,
			uuid.New().String(), galleryID, img.ImageID, img.Description, img.Order,
		)
		if err != nil {
			return nil, fmt.Errorf("error inserting gallery image: %w", err)
		}
	}

	_, err = tx.Exec(`UPDATE galleries SET updated_at = NOW() WHERE id = $1`, galleryID)
	if err != nil {
		return nil, fmt.Errorf("error touching gallery: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing tx: %w", err)
	}

	return r.GetImages(galleryID)
}
