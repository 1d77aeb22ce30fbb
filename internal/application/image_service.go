package application

import (
	"fmt"

	"github.com/vcostin/pic-gallery-sub004/internal/domain"
)

type ImageService struct {
	repo domain.ImageRepository
	tags domain.TagRepository
}

func NewImageService(repo domain.ImageRepository, tags domain.TagRepository) *ImageService {
	return &ImageService{repo: repo, tags: tags}
}

func (s *ImageService) CreateImage(userID, title string, description *string, url string, tagNames []string) (*domain.Image, error) {
	image := &domain.Image{
		UserID:      userID,
		Title:       title,
		Description: description,
		URL:         url,
	}
	if err := s.repo.Create(image); err != nil {
		return nil, err
	}
	if err := s.assignTags(image, tagNames); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *ImageService) GetImage(id string) (*domain.Image, error) {
	return s.repo.GetByID(id)
}

func (s *ImageService) ListImages(userID string, tagName string) ([]domain.Image, error) {
	return s.repo.ListByUser(userID, tagName)
}

func (s *ImageService) UpdateImage(id, userID, title string, description *string, tagNames []string) (*domain.Image, error) {
	image, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if image.UserID != userID {
		return nil, fmt.Errorf("image does not belong to user")
	}

	image.Title = title
	image.Description = description
	if err := s.repo.Update(image); err != nil {
		return nil, err
	}
	if err := s.assignTags(image, tagNames); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *ImageService) DeleteImage(id, userID string) error {
	image, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if image.UserID != userID {
		return fmt.Errorf("image does not belong to user")
	}
	return s.repo.Delete(id)
}

// assignTags resolves tag names to rows (creating missing ones) and
// replaces the image's assignments.
func (s *ImageService) assignTags(image *domain.Image, tagNames []string) error {
	tagIDs := make([]string, 0, len(tagNames))
	resolved := make([]domain.Tag, 0, len(tagNames))
	seen := make(map[string]bool, len(tagNames))
	for _, name := range tagNames {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		tag, err := s.tags.GetOrCreate(name)
		if err != nil {
			return fmt.Errorf("error resolving tag %q: %w", name, err)
		}
		tagIDs = append(tagIDs, tag.ID)
		resolved = append(resolved, *tag)
	}
	if err := s.repo.SetTags(image.ID, tagIDs); err != nil {
		return err
	}
	image.Tags = resolved
	return nil
}
