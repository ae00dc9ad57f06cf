package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CaseStatus string

const (
	CaseStatusDraft       CaseStatus = "draft"
	CaseStatusSubmitted   CaseStatus = "submitted"
	CaseStatusUnderReview CaseStatus = "under_review"
	CaseStatusInProgress  CaseStatus = "in_progress"
	CaseStatusDeclined    CaseStatus = "declined"
	CaseStatusCompleted   CaseStatus = "completed"
)

// Case is a unit of client work. Everything a non-admin caller does to a
// case is scoped by (id, user_id); status moves forward through admin or
// system action, never by the owning client directly.
type Case struct {
	ID     string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string     `gorm:"type:uuid;not null;index" json:"user_id"`
	Status CaseStatus `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`

	CustomInstructions    *string `gorm:"type:text" json:"custom_instructions"`
	CaseInitiationStepID  *string `gorm:"type:varchar(100)" json:"case_initiation_step_id"`
	ClientAgreedToTermsID *string `gorm:"type:uuid" json:"client_agreed_to_terms_id"`

	// admin-authored, opaque to the client workflow
	AdminFeedback           *string `gorm:"type:text" json:"admin_feedback"`
	ConsultantProgressNotes *string `gorm:"type:text" json:"consultant_progress_notes"`

	PaymentDepositID *string `gorm:"type:varchar(100)" json:"payment_deposit_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Case) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
