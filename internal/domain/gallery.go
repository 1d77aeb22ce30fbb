package domain

import (
	"strings"
	"time"
)

type Gallery struct {
	ID           string              `json:"id"`
	UserID       string              `json:"user_id"`
	Title        string              `json:"title"`
	Description  *string             `json:"description"`
	IsPublic     bool                `json:"is_public"`
	CoverImageID *string             `json:"cover_image_id"`
	Images       []GalleryImageEntry `json:"images,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// TempIDPrefix marks gallery-image entries that only exist client side.
// The server assigns a permanent id when the collection is saved.
const TempIDPrefix = "temp-"

// GalleryImageEntry is one row of a gallery's ordered image list: the join
// record between gallery and image plus per-gallery metadata, with the
// image snapshot embedded so callers render without a second fetch.
type GalleryImageEntry struct {
	ID          string  `json:"id"`
	ImageID     string  `json:"imageId"`
	Description *string `json:"description"`
	Order       int     `json:"order"`
	Image       Image   `json:"image"`
}

// IsTemp reports whether the entry has not been persisted yet.
func (e GalleryImageEntry) IsTemp() bool {
	return strings.HasPrefix(e.ID, TempIDPrefix)
}

// GalleryImageSave is the persistence payload for one entry. Temporary
// entries leave ID empty and submit ImageID so the join record gets
// created; permanent entries submit ID for an in-place update.
type GalleryImageSave struct {
	ID          string  `json:"id,omitempty"`
	ImageID     string  `json:"imageId"`
	Description *string `json:"description"`
	Order       int     `json:"order"`
}

type GalleryRepository interface {
	Create(gallery *Gallery) error
	GetByID(id string) (*Gallery, error)
	ListByUser(userID string) ([]Gallery, error)
	ListPublic() ([]Gallery, error)
	Update(gallery *Gallery) error
	Delete(id string) error
	// GetImages returns the gallery's entries ordered by sort_order.
	GetImages(galleryID string) ([]GalleryImageEntry, error)
	// SaveImages replaces the gallery's image set in one transaction:
	// join rows absent from the payload are deleted, retained rows are
	// updated, rows without an id are inserted. Returns the fresh
	// ordered list with permanent ids.
	SaveImages(galleryID string, images []GalleryImageSave) ([]GalleryImageEntry, error)
}
