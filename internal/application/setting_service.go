package application

import (
	"github.com/vcostin/pic-gallery-sub004/internal/domain"
)

type SettingService struct {
	repo domain.SettingRepository
}

func NewSettingService(repo domain.SettingRepository) *SettingService {
	return &SettingService{repo: repo}
}

func (s *SettingService) GetSetting(key string) (*domain.Setting, error) {
	return s.repo.GetByKey(key)
}

func (s *SettingService) GetAllSettings() ([]*domain.Setting, error) {
	return s.repo.GetAll()
}

func (s *SettingService) UpdateSetting(key string, value string) error {
	return s.repo.Update(key, value)
}
