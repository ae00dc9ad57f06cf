package dto

type SubscriptionResponse struct {
	ID               string `json:"id"`
	Status           string `json:"status"`
	ProductID        string `json:"product_id,omitempty"`
	PriceID          string `json:"price_id,omitempty"`
	CurrentPeriodEnd int64  `json:"current_period_end"`
	CancelAtEnd      bool   `json:"cancel_at_period_end"`
}

type PortalSessionResponse struct {
	URL string `json:"url"`
}
