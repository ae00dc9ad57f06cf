package repository

import (
	"github.com/CrossCheckCME/case_service/internal/domain"
	"gorm.io/gorm"
)

type TermsRepository interface {
	FindAgreement(userID, termsID string) (*domain.UserTermsAgreement, error)
	CreateAgreement(a *domain.UserTermsAgreement) error
	LatestTerms() (*domain.TermsOfService, error)
}

type termsRepository struct {
	db *gorm.DB
}

func NewTermsRepository(db *gorm.DB) TermsRepository {
	return &termsRepository{db: db}
}

func (r *termsRepository) FindAgreement(userID, termsID string) (*domain.UserTermsAgreement, error) {
	var a domain.UserTermsAgreement
	err := r.db.
		Where("user_id = ? AND terms_id = ?", userID, termsID).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *termsRepository) CreateAgreement(a *domain.UserTermsAgreement) error {
	return r.db.Create(a).Error
}

func (r *termsRepository) LatestTerms() (*domain.TermsOfService, error) {
	var t domain.TermsOfService
	if err := r.db.Where("is_latest = ?", true).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}
