package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/CrossCheckCME/case_service/internal/apperr"
	"github.com/CrossCheckCME/case_service/internal/domain"
	"github.com/CrossCheckCME/case_service/internal/dto"
	"github.com/CrossCheckCME/case_service/internal/helper"
	"github.com/CrossCheckCME/case_service/internal/interfaces"
	"github.com/CrossCheckCME/case_service/internal/repository"
	"github.com/google/uuid"
)

const (
	MaxFileSizeMB    = 20
	MaxFileSizeBytes = MaxFileSizeMB * 1024 * 1024
)

// AllowedMimeTypes is the upload allow-set: pdf, doc, docx, jpeg, png.
var AllowedMimeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"image/jpeg": true,
	"image/png":  true,
}

// DocumentService is subordinate to the case status gate: inserts and
// deletes only happen while the parent case is draft. Unlike the case
// mutation family, this family distinguishes Forbidden from NotFound.
type DocumentService interface {
	ListDocuments(userID, caseID string) ([]dto.DocumentResponse, error)
	UploadDocuments(ctx context.Context, userID, caseID string, files []dto.DocumentUpload) ([]dto.DocumentResponse, error)
	DeleteDocument(userID, caseID, documentID string) error
}

type documentService struct {
	caseRepo repository.CaseRepository
	docRepo  repository.DocumentRepository
	uploader interfaces.Uploader
	producer interfaces.ProducerHandler
}

func NewDocumentService(
	caseRepo repository.CaseRepository,
	docRepo repository.DocumentRepository,
	uploader interfaces.Uploader,
	producer interfaces.ProducerHandler,
) DocumentService {
	return &documentService{
		caseRepo: caseRepo,
		docRepo:  docRepo,
		uploader: uploader,
		producer: producer,
	}
}

// accessibleCase fetches the case unscoped, then checks ownership so the
// caller can be told Forbidden rather than NotFound when the case exists.
func (s *documentService) accessibleCase(userID, caseID, forbiddenMsg string) (*domain.Case, error) {
	c, err := s.caseRepo.FindByID(caseID)
	if err != nil {
		if helper.IsNotFound(err) {
			return nil, apperr.NotFound("Case not found")
		}
		return nil, apperr.Internal("Error verifying case access", err)
	}
	if c.UserID != userID {
		return nil, apperr.Forbidden(forbiddenMsg)
	}
	return c, nil
}

func (s *documentService) ListDocuments(userID, caseID string) ([]dto.DocumentResponse, error) {
	_, err := s.accessibleCase(userID, caseID, "You do not have access to this case's documents")
	if err != nil {
		return nil, err
	}

	docs, err := s.docRepo.ListByCase(caseID)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch documents", err)
	}

	out := make([]dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, toDocumentResponse(&d))
	}
	return out, nil
}

// UploadDocuments validates and records a multipart batch, one file at a
// time in order. The first rejected file aborts the remainder of the batch;
// rows already written stay committed (no compensating delete).
func (s *documentService) UploadDocuments(ctx context.Context, userID, caseID string, files []dto.DocumentUpload) ([]dto.DocumentResponse, error) {
	c, err := s.accessibleCase(userID, caseID, "You cannot upload documents to this case")
	if err != nil {
		return nil, err
	}
	if c.Status != domain.CaseStatusDraft {
		return nil, apperr.Forbidden(fmt.Sprintf(
			"Documents can only be uploaded to draft cases. Current status: %s", c.Status))
	}
	if len(files) == 0 {
		return nil, apperr.BadRequest("No files provided")
	}

	created := make([]dto.DocumentResponse, 0, len(files))
	for _, f := range files {
		if f.FileName == "" || f.Size == 0 {
			log.Printf("skipping invalid or empty file entry: %q", f.FileName)
			continue
		}
		if !AllowedMimeTypes[f.ContentType] {
			return nil, apperr.BadRequest(fmt.Sprintf(
				"Invalid file type: %s (%s)", f.FileName, f.ContentType))
		}
		if f.Size > MaxFileSizeBytes {
			return nil, apperr.BadRequest(fmt.Sprintf(
				"File too large: %s (%.2f MB). Max: %d MB.",
				f.FileName, float64(f.Size)/1024/1024, MaxFileSizeMB))
		}

		folder := fmt.Sprintf("user_uploads/%s/%s", userID, caseID)
		objectName := fmt.Sprintf("%s-%s", uuid.NewString(), f.FileName)
		storagePath := folder + "/" + objectName

		// byte transfer is the storage collaborator's job; its failure
		// never invalidates the metadata row
		if s.uploader != nil && len(f.Content) > 0 {
			if _, err := s.uploader.UploadBytes(ctx, folder, objectName, f.Content); err != nil {
				log.Printf("upload bytes for %s: %v", storagePath, err)
			}
		}

		doc := &domain.CaseDocument{
			CaseID:      caseID,
			UserID:      userID,
			FileName:    f.FileName,
			FileType:    f.ContentType,
			FileSize:    f.Size,
			StoragePath: storagePath,
		}
		if err := s.docRepo.Create(doc); err != nil {
			return nil, apperr.Internal(fmt.Sprintf(
				"Failed to save document metadata for %s", f.FileName), err)
		}
		created = append(created, toDocumentResponse(doc))
	}

	s.publishUploaded(caseID, userID, len(created))
	return created, nil
}

func (s *documentService) DeleteDocument(userID, caseID, documentID string) error {
	doc, err := s.docRepo.FindInCase(documentID, caseID)
	if err != nil {
		if helper.IsNotFound(err) {
			return apperr.NotFound("Document not found")
		}
		return apperr.Internal("Error verifying document", err)
	}

	c, err := s.caseRepo.FindByID(doc.CaseID)
	if err != nil {
		return apperr.Internal("Case details missing for document", err)
	}
	if c.UserID != userID {
		return apperr.Forbidden("You do not own this document's case")
	}
	if c.Status != domain.CaseStatusDraft {
		return apperr.Forbidden("Documents can only be deleted from draft cases")
	}

	if err := s.docRepo.Delete(documentID); err != nil {
		return apperr.Internal("Failed to delete document record", err)
	}
	return nil
}

func (s *documentService) publishUploaded(caseID, userID string, count int) {
	if s.producer == nil || count == 0 {
		return
	}
	payload, err := json.Marshal(dto.CaseEvent{
		Type:          dto.EventDocumentsUploaded,
		CaseID:        caseID,
		UserID:        userID,
		DocumentCount: count,
	})
	if err != nil {
		return
	}
	if err := s.producer.PublishMessage([]byte(caseID), payload); err != nil {
		log.Printf("publish %s for case %s: %v", dto.EventDocumentsUploaded, caseID, err)
	}
}

func toDocumentResponse(d *domain.CaseDocument) dto.DocumentResponse {
	return dto.DocumentResponse{
		ID:         d.ID,
		FileName:   d.FileName,
		FileType:   d.FileType,
		FileSize:   d.FileSize,
		UploadedAt: d.UploadedAt,
	}
}
