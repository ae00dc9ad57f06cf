package stripeclient

import (
	"errors"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
)

// Client wraps the Stripe SDK behind the interfaces.BillingClient seam.
// The service never touches Stripe types outside subscription rows returned
// from here.
type Client struct {
	api *client.API
}

func New(apiKey string) *Client {
	api := &client.API{}
	api.Init(apiKey, nil)
	return &Client{api: api}
}

func (c *Client) ListSubscriptions(customerID string) ([]*stripe.Subscription, error) {
	if customerID == "" {
		return nil, errors.New("missing stripe customer id")
	}

	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(customerID),
	}
	params.Limit = stripe.Int64(100)

	var subs []*stripe.Subscription
	it := c.api.Subscriptions.List(params)
	for it.Next() {
		subs = append(subs, it.Subscription())
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return subs, nil
}

func (c *Client) CreatePortalSession(customerID, returnURL string) (string, error) {
	if customerID == "" {
		return "", errors.New("missing stripe customer id")
	}

	params := &stripe.BillingPortalSessionParams{
		Customer: stripe.String(customerID),
	}
	if returnURL != "" {
		params.ReturnURL = stripe.String(returnURL)
	}

	s, err := c.api.BillingPortalSessions.New(params)
	if err != nil {
		return "", err
	}
	return s.URL, nil
}
