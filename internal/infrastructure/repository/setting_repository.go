package repository

import (
	"database/sql"
	"fmt"

	"github.com/vcostin/pic-gallery-sub004/internal/domain"
)

type settingRepository struct {
	db *sql.DB
}

func NewSettingRepository(db *sql.DB) domain.SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) GetByKey(key string) (*domain.Setting, error) {
	query := `SELECT id, setting_key, setting_value, description, updated_at
			  FROM site_settings
			  WHERE setting_key = $1`

	var setting domain.Setting
	err := r.db.QueryRow(query, key).Scan(
		&setting.ID,
		&setting.Key,
		&setting.Value,
		&setting.Description,
		&setting.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("setting key not found: %s", key)
		}
		return nil, err
	}

	return &setting, nil
}

func (r *settingRepository) Update(key string, value string) error {
	query := `UPDATE site_settings
			  SET setting_value = $1, updated_at = NOW()
			  WHERE setting_key = $2`

	result, err := r.db.Exec(query, value, key)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return fmt.Errorf("no setting found with key: %s", key)
	}

	return nil
}

func (r *settingRepository) GetAll() ([]*domain.Setting, error) {
	query := `SELECT id, setting_key, setting_value, description, updated_at
	          FROM site_settings
	          ORDER BY id ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []*domain.Setting
	for rows.Next() {
		var s domain.Setting
		if err := rows.Scan(&s.ID, &s.Key, &s.Value, &s.Description, &s.UpdatedAt); err != nil {
			return nil, err
		}
		settings = append(settings, &s)
	}

	return settings, rows.Err()
}
