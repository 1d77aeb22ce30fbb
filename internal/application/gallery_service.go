package application

import (
	"fmt"

	"github.com/vcostin/pic-gallery-sub004/internal/domain"
)

type GalleryService struct {
	repo   domain.GalleryRepository
	images domain.ImageRepository
}

func NewGalleryService(repo domain.GalleryRepository, images domain.ImageRepository) *GalleryService {
	return &GalleryService{repo: repo, images: images}
}

func (s *GalleryService) CreateGallery(userID, title string, description *string, isPublic bool) (*domain.Gallery, error) {
	gallery := &domain.Gallery{
		UserID:      userID,
		Title:       title,
		Description: description,
		IsPublic:    isPublic,
	}
	if err := s.repo.Create(gallery); err != nil {
		return nil, err
	}
	return gallery, nil
}

func (s *GalleryService) GetGallery(id string) (*domain.Gallery, error) {
	gallery, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	images, err := s.repo.GetImages(id)
	if err != nil {
		return nil, err
	}
	gallery.Images = images
	return gallery, nil
}

func (s *GalleryService) ListGalleries(userID string) ([]domain.Gallery, error) {
	return s.repo.ListByUser(userID)
}

func (s *GalleryService) ListPublicGalleries() ([]domain.Gallery, error) {
	return s.repo.ListPublic()
}

func (s *GalleryService) UpdateGallery(id, userID, title string, description *string, isPublic bool, coverImageID *string) (*domain.Gallery, error) {
	gallery, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if gallery.UserID != userID {
		return nil, fmt.Errorf("gallery does not belong to user")
	}

	gallery.Title = title
	gallery.Description = description
	gallery.IsPublic = isPublic
	gallery.CoverImageID = coverImageID
	if err := s.repo.Update(gallery); err != nil {
		return nil, err
	}
	return gallery, nil
}

func (s *GalleryService) DeleteGallery(id, userID string) error {
	gallery, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if gallery.UserID != userID {
		return fmt.Errorf("gallery does not belong to user")
	}
	return s.repo.Delete(id)
}

// GetImages loads the gallery's saved ordered entries, used to seed an
// editing session.
func (s *GalleryService) GetImages(galleryID string) ([]domain.GalleryImageEntry, error) {
	return s.repo.GetImages(galleryID)
}

// SaveImages commits a session's full image set in one batch and returns
// the fresh server rows, with permanent ids assigned to entries that were
// temporary on the client.
func (s *GalleryService) SaveImages(galleryID string, images []domain.GalleryImageSave) ([]domain.GalleryImageEntry, error) {
	return s.repo.SaveImages(galleryID, images)
}

// ImageResolver exposes the image lookup a session's StageImages needs.
func (s *GalleryService) ImageResolver() ImageResolver {
	return s.images
}
