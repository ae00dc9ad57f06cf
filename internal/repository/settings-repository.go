package repository

import (
	"github.com/CrossCheckCME/case_service/internal/domain"
	"gorm.io/gorm"
)

type SettingsRepository interface {
	Get() (*domain.AdminSettings, error)
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get() (*domain.AdminSettings, error) {
	var s domain.AdminSettings
	if err := r.db.Where("singleton_id = ?", true).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
