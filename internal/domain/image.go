package domain

import "time"

type Image struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	URL         string    `json:"url"`
	Tags        []Tag     `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ImageRepository interface {
	Create(image *Image) error
	GetByID(id string) (*Image, error)
	// GetByIDs returns the images that exist among ids; missing ids are
	// simply absent from the result, never an error.
	GetByIDs(ids []string) ([]Image, error)
	ListByUser(userID string, tagName string) ([]Image, error)
	Update(image *Image) error
	Delete(id string) error
	// SetTags replaces the image's tag assignments.
	SetTags(imageID string, tagIDs []string) error
}
