package dto

type CreateCaseRequest struct {
	CustomInstructions string `json:"custom_instructions,omitempty" validate:"omitempty,max=5000"`
}

type UpdateInstructionsRequest struct {
	Instructions string `json:"instructions"`
}

type SetCurrentStepRequest struct {
	StepID string `json:"stepId" validate:"required"`
}

// AgreeTermsRequest uses a pointer for Agreed so "missing" and "false" stay
// distinguishable after JSON decoding.
type AgreeTermsRequest struct {
	TermsID string `json:"termsId,omitempty"`
	Agreed  *bool  `json:"agreed"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
