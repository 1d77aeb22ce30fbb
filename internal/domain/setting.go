package domain

import "time"

// Setting is one site-wide key/value configuration row (site title,
// images per page, default gallery visibility and the like).
type Setting struct {
	ID          int       `json:"id"`
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	Description string    `json:"description"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type SettingRepository interface {
	GetByKey(key string) (*Setting, error)
	Update(key string, value string) error
	GetAll() ([]*Setting, error)
}
