package dto

const (
	EventCaseCreated       = "case.created"
	EventCaseDeleted       = "case.deleted"
	EventTermsAgreed       = "case.terms_agreed"
	EventDocumentsUploaded = "case.documents_uploaded"
)

type CaseEvent struct {
	Type   string `json:"type"`
	CaseID string `json:"case_id"`
	UserID string `json:"user_id"`

	// set on case.terms_agreed; empty when agreement was retracted
	TermsAgreementID string `json:"terms_agreement_id,omitempty"`
	// set on case.documents_uploaded
	DocumentCount int `json:"document_count,omitempty"`
}

// PaymentDepositEvent arrives on the payments topic once billing confirms a
// deposit for a case.
type PaymentDepositEvent struct {
	CaseID    string `json:"case_id"`
	UserID    string `json:"user_id"`
	DepositID string `json:"deposit_id"`
}
