package services

import (
	"github.com/CrossCheckCME/case_service/internal/apperr"
	"github.com/CrossCheckCME/case_service/internal/dto"
	"github.com/CrossCheckCME/case_service/internal/helper"
	"github.com/CrossCheckCME/case_service/internal/interfaces"
	"github.com/CrossCheckCME/case_service/internal/repository"
	"github.com/stripe/stripe-go/v78"
)

// BillingService bridges to the payment provider. Read-mostly: the customer
// mapping is written elsewhere, this side only looks it up.
type BillingService interface {
	ListSubscriptions(userID string) ([]dto.SubscriptionResponse, error)
	CreatePortalSession(userID string) (string, error)
}

type billingService struct {
	billingRepo repository.BillingRepository
	client      interfaces.BillingClient
	returnURL   string
}

func NewBillingService(billingRepo repository.BillingRepository, client interfaces.BillingClient, returnURL string) BillingService {
	return &billingService{
		billingRepo: billingRepo,
		client:      client,
		returnURL:   returnURL,
	}
}

func (s *billingService) ListSubscriptions(userID string) ([]dto.SubscriptionResponse, error) {
	customer, err := s.billingRepo.FindCustomerByUser(userID)
	if err != nil {
		if helper.IsNotFound(err) {
			// never billed: no subscriptions, not an error
			return []dto.SubscriptionResponse{}, nil
		}
		return nil, apperr.Internal("Error fetching billing profile.", err)
	}

	subs, err := s.client.ListSubscriptions(customer.StripeCustomerID)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch subscriptions.", err)
	}

	out := make([]dto.SubscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		out = append(out, toSubscriptionResponse(sub))
	}
	return out, nil
}

func (s *billingService) CreatePortalSession(userID string) (string, error) {
	customer, err := s.billingRepo.FindCustomerByUser(userID)
	if err != nil {
		if helper.IsNotFound(err) {
			return "", apperr.NotFound("No billing profile found for this account.")
		}
		return "", apperr.Internal("Error fetching billing profile.", err)
	}

	url, err := s.client.CreatePortalSession(customer.StripeCustomerID, s.returnURL)
	if err != nil {
		return "", apperr.Internal("Failed to create billing portal session.", err)
	}
	return url, nil
}

func toSubscriptionResponse(sub *stripe.Subscription) dto.SubscriptionResponse {
	out := dto.SubscriptionResponse{
		ID:               sub.ID,
		Status:           string(sub.Status),
		CurrentPeriodEnd: sub.CurrentPeriodEnd,
		CancelAtEnd:      sub.CancelAtPeriodEnd,
	}
	if sub.Items != nil && len(sub.Items.Data) > 0 {
		item := sub.Items.Data[0]
		if item.Price != nil {
			out.PriceID = item.Price.ID
			if item.Price.Product != nil {
				out.ProductID = item.Price.Product.ID
			}
		}
	}
	return out
}
