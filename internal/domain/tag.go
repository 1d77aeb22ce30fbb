package domain

// Tag is a flat label attached to images. Tags are shared across users;
// assignment happens per image.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type TagRepository interface {
	GetAll() ([]Tag, error)
	GetByID(id string) (*Tag, error)
	// GetOrCreate resolves a tag by name, creating it when missing.
	GetOrCreate(name string) (*Tag, error)
	Delete(id string) error
}
