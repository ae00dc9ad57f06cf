package services

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/CrossCheckCME/case_service/internal/apperr"
	"github.com/CrossCheckCME/case_service/internal/domain"
	"github.com/CrossCheckCME/case_service/internal/dto"
	"github.com/CrossCheckCME/case_service/internal/helper"
	"github.com/CrossCheckCME/case_service/internal/interfaces"
	"github.com/CrossCheckCME/case_service/internal/repository"
)

const maxInstructionsLen = 5000

// CaseService owns the guarded mutation pipeline: every mutation verifies
// ownership with a scoped fetch, applies exactly one write, then refetches
// the canonical row. Absent and not-owned cases are indistinguishable to the
// caller.
type CaseService interface {
	ListCases(userID string) ([]domain.Case, error)
	GetCase(userID, caseID string) (*domain.Case, error)
	CreateCase(userID string, input dto.CreateCaseRequest) (*domain.Case, error)
	DeleteCase(userID, caseID string) error
	UpdateInstructions(userID, caseID, instructions string) (*domain.Case, error)
	SetCurrentStep(userID, caseID, stepID string) (*domain.Case, error)
	AgreeToTerms(userID, caseID, termsID string, agreed bool) (*domain.Case, error)

	LatestTerms() (*domain.TermsOfService, error)
	Availability() (*domain.AdminSettings, error)
}

type caseService struct {
	caseRepo     repository.CaseRepository
	docRepo      repository.DocumentRepository
	termsRepo    repository.TermsRepository
	settingsRepo repository.SettingsRepository
	producer     interfaces.ProducerHandler
}

func NewCaseService(
	caseRepo repository.CaseRepository,
	docRepo repository.DocumentRepository,
	termsRepo repository.TermsRepository,
	settingsRepo repository.SettingsRepository,
	producer interfaces.ProducerHandler,
) CaseService {
	return &caseService{
		caseRepo:     caseRepo,
		docRepo:      docRepo,
		termsRepo:    termsRepo,
		settingsRepo: settingsRepo,
		producer:     producer,
	}
}

// ownedCase is the ownership-scoped fetch every mutation starts from.
func (s *caseService) ownedCase(userID, caseID string) (*domain.Case, error) {
	c, err := s.caseRepo.FindOwned(caseID, userID)
	if err != nil {
		if helper.IsNotFound(err) {
			return nil, apperr.NotFound("Case not found or access denied.")
		}
		return nil, apperr.Internal("Error verifying case details.", err)
	}
	return c, nil
}

// refetch returns the canonical post-mutation row. The mutation itself
// already succeeded, so a failed confirm read degrades to Partial instead
// of failing the call.
func (s *caseService) refetch(caseID, partialMsg string) (*domain.Case, error) {
	updated, err := s.caseRepo.FindByID(caseID)
	if err != nil {
		log.Printf("refetch case %s after update failed: %v", caseID, err)
		return nil, apperr.Partial(partialMsg)
	}
	return updated, nil
}

func (s *caseService) publish(ev dto.CaseEvent) {
	if s.producer == nil {
		return
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if err := s.producer.PublishMessage([]byte(ev.CaseID), payload); err != nil {
		log.Printf("publish %s for case %s: %v", ev.Type, ev.CaseID, err)
	}
}

func (s *caseService) ListCases(userID string) ([]domain.Case, error) {
	cases, err := s.caseRepo.ListByUser(userID)
	if err != nil {
		return nil, apperr.Internal("Failed to load cases.", err)
	}
	if cases == nil {
		cases = []domain.Case{}
	}
	return cases, nil
}

func (s *caseService) GetCase(userID, caseID string) (*domain.Case, error) {
	return s.ownedCase(userID, caseID)
}

func (s *caseService) CreateCase(userID string, input dto.CreateCaseRequest) (*domain.Case, error) {
	c := &domain.Case{
		UserID: userID,
		Status: domain.CaseStatusDraft,
	}
	if instructions := strings.TrimSpace(input.CustomInstructions); instructions != "" {
		if len(instructions) > maxInstructionsLen {
			return nil, apperr.BadRequest("Instructions cannot exceed 5000 characters")
		}
		c.CustomInstructions = &instructions
	}

	if err := s.caseRepo.Create(c); err != nil {
		return nil, apperr.Internal("Failed to create case.", err)
	}

	s.publish(dto.CaseEvent{Type: dto.EventCaseCreated, CaseID: c.ID, UserID: userID})
	return c, nil
}

func (s *caseService) DeleteCase(userID, caseID string) error {
	// scoped by id+owner+draft: anything else reads as not found
	if _, err := s.caseRepo.FindOwnedDraft(caseID, userID); err != nil {
		if helper.IsNotFound(err) {
			return apperr.NotFound("Case not found, or not in draft status. Only draft cases can be deleted.")
		}
		return apperr.Internal("Error verifying case details.", err)
	}

	// best-effort: an orphaned document row never blocks the deletion
	if err := s.docRepo.DeleteByCase(caseID); err != nil {
		log.Printf("delete documents for case %s: %v", caseID, err)
	}

	if err := s.caseRepo.Delete(caseID); err != nil {
		return apperr.Internal("Failed to delete case.", err)
	}

	s.publish(dto.CaseEvent{Type: dto.EventCaseDeleted, CaseID: caseID, UserID: userID})
	return nil
}

func (s *caseService) UpdateInstructions(userID, caseID, instructions string) (*domain.Case, error) {
	trimmed := strings.TrimSpace(instructions)
	if trimmed == "" {
		return nil, apperr.BadRequest("Instructions cannot be empty")
	}
	if len(trimmed) > maxInstructionsLen {
		return nil, apperr.BadRequest("Instructions cannot exceed 5000 characters")
	}

	if _, err := s.ownedCase(userID, caseID); err != nil {
		return nil, err
	}

	err := s.caseRepo.UpdateFields(caseID, map[string]any{
		"custom_instructions": trimmed,
	})
	if err != nil {
		return nil, apperr.Internal("Failed to update case instructions.", err)
	}

	return s.refetch(caseID, "Instructions updated, but failed to return updated case data.")
}

func (s *caseService) SetCurrentStep(userID, caseID, stepID string) (*domain.Case, error) {
	if strings.TrimSpace(stepID) == "" {
		return nil, apperr.BadRequest("stepId is required in the request body.")
	}

	if _, err := s.ownedCase(userID, caseID); err != nil {
		return nil, err
	}

	err := s.caseRepo.UpdateFields(caseID, map[string]any{
		"case_initiation_step_id": stepID,
	})
	if err != nil {
		return nil, apperr.Internal("Failed to update case current step.", err)
	}

	return s.refetch(caseID, "Step updated, but failed to return updated case data.")
}

// AgreeToTerms links (or unlinks, when agreed=false) the caller's agreement
// record to the case. The agreement row itself is create-once and never
// deleted; retracting only clears the case's pointer. The sequence is not
// one transaction: an agreement row surviving a failed case update is
// harmless and reused on retry.
func (s *caseService) AgreeToTerms(userID, caseID, termsID string, agreed bool) (*domain.Case, error) {
	if agreed && termsID == "" {
		return nil, apperr.BadRequest("termsId is required when agreeing to terms")
	}

	if _, err := s.ownedCase(userID, caseID); err != nil {
		return nil, err
	}

	var agreementID *string
	if agreed {
		id, err := s.resolveAgreement(userID, termsID)
		if err != nil {
			return nil, err
		}
		agreementID = &id
	}

	var linked any
	if agreementID != nil {
		linked = *agreementID
	}
	err := s.caseRepo.UpdateFields(caseID, map[string]any{
		"client_agreed_to_terms_id": linked,
	})
	if err != nil {
		return nil, apperr.Internal("Failed to update terms agreement.", err)
	}

	ev := dto.CaseEvent{Type: dto.EventTermsAgreed, CaseID: caseID, UserID: userID}
	if agreementID != nil {
		ev.TermsAgreementID = *agreementID
	}
	s.publish(ev)

	updated, err := s.caseRepo.FindByID(caseID)
	if err != nil {
		if helper.IsNotFound(err) {
			return nil, apperr.NotFound("Case not found after update and refetch.")
		}
		return nil, apperr.Internal("Failed to confirm case update after refetch.", err)
	}
	return updated, nil
}

// resolveAgreement reuses the existing (user, terms) agreement or creates
// one. A unique-violation on insert means a concurrent request won the
// race; the surviving row is looked up and reused.
func (s *caseService) resolveAgreement(userID, termsID string) (string, error) {
	existing, err := s.termsRepo.FindAgreement(userID, termsID)
	if err == nil {
		return existing.ID, nil
	}
	if !helper.IsNotFound(err) {
		return "", apperr.Internal("Error checking existing terms agreement.", err)
	}

	agreement := &domain.UserTermsAgreement{
		UserID:  userID,
		TermsID: termsID,
	}
	if err := s.termsRepo.CreateAgreement(agreement); err != nil {
		if helper.IsDuplicateAgreement(err) {
			winner, lookupErr := s.termsRepo.FindAgreement(userID, termsID)
			if lookupErr != nil {
				return "", apperr.Internal("Error checking existing terms agreement.", lookupErr)
			}
			return winner.ID, nil
		}
		return "", apperr.Internal("Failed to create terms agreement record.", err)
	}
	return agreement.ID, nil
}

func (s *caseService) LatestTerms() (*domain.TermsOfService, error) {
	t, err := s.termsRepo.LatestTerms()
	if err != nil {
		if helper.IsNotFound(err) {
			return nil, apperr.NotFound("No latest Terms of Service found.")
		}
		return nil, apperr.Internal("Failed to fetch latest Terms of Service.", err)
	}
	return t, nil
}

func (s *caseService) Availability() (*domain.AdminSettings, error) {
	settings, err := s.settingsRepo.Get()
	if err != nil {
		if helper.IsNotFound(err) {
			return nil, apperr.NotFound("Availability settings not found.")
		}
		return nil, apperr.Internal("Failed to fetch availability settings.", err)
	}
	return settings, nil
}
