package interfaces

import "github.com/stripe/stripe-go/v78"

// BillingClient is the payment-provider seam: customer subscription state
// and self-serve portal sessions. Implemented by clients/stripeclient.
type BillingClient interface {
	ListSubscriptions(customerID string) ([]*stripe.Subscription, error)
	CreatePortalSession(customerID, returnURL string) (string, error)
}
