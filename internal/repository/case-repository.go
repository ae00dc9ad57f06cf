package repository

import (
	"github.com/CrossCheckCME/case_service/internal/domain"
	"gorm.io/gorm"
)

type CaseRepository interface {
	Create(c *domain.Case) error

	// FindOwned is the ownership-scoped fetch: a case that exists but
	// belongs to someone else reads exactly like a missing one
	// (gorm.ErrRecordNotFound).
	FindOwned(id, userID string) (*domain.Case, error)
	FindOwnedDraft(id, userID string) (*domain.Case, error)
	FindByID(id string) (*domain.Case, error)
	ListByUser(userID string) ([]domain.Case, error)

	UpdateFields(id string, fields map[string]any) error
	Delete(id string) error
}

type caseRepository struct {
	db *gorm.DB
}

func NewCaseRepository(db *gorm.DB) CaseRepository {
	return &caseRepository{db: db}
}

func (r *caseRepository) Create(c *domain.Case) error {
	return r.db.Create(c).Error
}

func (r *caseRepository) FindOwned(id, userID string) (*domain.Case, error) {
	var c domain.Case
	err := r.db.
		Where("id = ? AND user_id = ?", id, userID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *caseRepository) FindOwnedDraft(id, userID string) (*domain.Case, error) {
	var c domain.Case
	err := r.db.
		Where("id = ? AND user_id = ? AND status = ?", id, userID, domain.CaseStatusDraft).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *caseRepository) FindByID(id string) (*domain.Case, error) {
	var c domain.Case
	if err := r.db.Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *caseRepository) ListByUser(userID string) ([]domain.Case, error) {
	var cases []domain.Case
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&cases).Error
	if err != nil {
		return nil, err
	}
	return cases, nil
}

// UpdateFields applies exactly one UPDATE with the given column map.
// updated_at is maintained by GORM, never passed in.
func (r *caseRepository) UpdateFields(id string, fields map[string]any) error {
	return r.db.Model(&domain.Case{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *caseRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&domain.Case{}).Error
}
