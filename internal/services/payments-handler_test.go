package services

import (
	"testing"

	"github.com/CrossCheckCME/case_service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentEvents_RecordsDeposit(t *testing.T) {
	repo := newFakeCaseRepo()
	c := &domain.Case{UserID: "u1", Status: domain.CaseStatusSubmitted}
	require.NoError(t, repo.Create(c))

	h := NewPaymentEventsHandler(repo)
	msg := `{"case_id":"` + c.ID + `","user_id":"u1","deposit_id":"pi_123"}`
	require.NoError(t, h.HandleMessage(msg))

	stored := repo.cases[c.ID]
	require.NotNil(t, stored.PaymentDepositID)
	assert.Equal(t, "pi_123", *stored.PaymentDepositID)
}

func TestPaymentEvents_BadPayload(t *testing.T) {
	h := NewPaymentEventsHandler(newFakeCaseRepo())

	assert.Error(t, h.HandleMessage("not json"))
	assert.Error(t, h.HandleMessage(`{"case_id":"c1"}`))
}

func TestPaymentEvents_UnknownCaseIsDropped(t *testing.T) {
	repo := newFakeCaseRepo()
	c := &domain.Case{UserID: "u1", Status: domain.CaseStatusSubmitted}
	require.NoError(t, repo.Create(c))

	h := NewPaymentEventsHandler(repo)

	// wrong owner reads like a missing case; the event is dropped, not retried
	msg := `{"case_id":"` + c.ID + `","user_id":"u2","deposit_id":"pi_999"}`
	require.NoError(t, h.HandleMessage(msg))
	assert.Nil(t, repo.cases[c.ID].PaymentDepositID)
}
