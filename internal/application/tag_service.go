package application

import "github.com/vcostin/pic-gallery-sub004/internal/domain"

type TagService struct {
	repo domain.TagRepository
}

func NewTagService(repo domain.TagRepository) *TagService {
	return &TagService{repo: repo}
}

func (s *TagService) GetAllTags() ([]domain.Tag, error) {
	return s.repo.GetAll()
}

func (s *TagService) CreateTag(name string) (*domain.Tag, error) {
	return s.repo.GetOrCreate(name)
}

func (s *TagService) DeleteTag(id string) error {
	return s.repo.Delete(id)
}
