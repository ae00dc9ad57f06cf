package repository

import (
	"github.com/CrossCheckCME/case_service/internal/domain"
	"gorm.io/gorm"
)

type DocumentRepository interface {
	Create(doc *domain.CaseDocument) error
	ListByCase(caseID string) ([]domain.CaseDocument, error)

	// FindInCase scopes the lookup by both document id and case id so a
	// document id from another case reads as not found.
	FindInCase(id, caseID string) (*domain.CaseDocument, error)
	Delete(id string) error
	DeleteByCase(caseID string) error
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(doc *domain.CaseDocument) error {
	return r.db.Create(doc).Error
}

func (r *documentRepository) ListByCase(caseID string) ([]domain.CaseDocument, error) {
	var docs []domain.CaseDocument
	err := r.db.
		Where("case_id = ?", caseID).
		Order("uploaded_at DESC").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *documentRepository) FindInCase(id, caseID string) (*domain.CaseDocument, error) {
	var doc domain.CaseDocument
	err := r.db.
		Where("id = ? AND case_id = ?", id, caseID).
		First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&domain.CaseDocument{}).Error
}

func (r *documentRepository) DeleteByCase(caseID string) error {
	return r.db.Where("case_id = ?", caseID).Delete(&domain.CaseDocument{}).Error
}
