package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/CrossCheckCME/case_service/internal/dto"
	"github.com/CrossCheckCME/case_service/internal/helper"
	"github.com/CrossCheckCME/case_service/internal/repository"
)

// PaymentEventsHandler consumes deposit confirmations from the payments
// topic and records the deposit id on the case. Same ownership rule as the
// HTTP paths: the event's user must own the case.
type PaymentEventsHandler struct {
	caseRepo repository.CaseRepository
}

func NewPaymentEventsHandler(caseRepo repository.CaseRepository) *PaymentEventsHandler {
	return &PaymentEventsHandler{caseRepo: caseRepo}
}

func (h *PaymentEventsHandler) HandleMessage(message string) error {
	var ev dto.PaymentDepositEvent
	if err := json.Unmarshal([]byte(message), &ev); err != nil {
		return fmt.Errorf("decode payment event: %w", err)
	}
	if ev.CaseID == "" || ev.UserID == "" || ev.DepositID == "" {
		return errors.New("payment event missing case_id, user_id or deposit_id")
	}

	if _, err := h.caseRepo.FindOwned(ev.CaseID, ev.UserID); err != nil {
		if helper.IsNotFound(err) {
			// stale or misrouted event; log and drop, a retry cannot fix it
			log.Printf("payment event for unknown case %s (user %s)", ev.CaseID, ev.UserID)
			return nil
		}
		return fmt.Errorf("verify case %s: %w", ev.CaseID, err)
	}

	return h.caseRepo.UpdateFields(ev.CaseID, map[string]any{
		"payment_deposit_id": ev.DepositID,
	})
}
