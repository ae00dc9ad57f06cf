package domain

import "time"

// StripeCustomer maps a user to their payment-provider customer. Read-mostly;
// written when billing onboards a user, read by the billing endpoints and the
// payments consumer.
type StripeCustomer struct {
	UserID           string `gorm:"type:uuid;primaryKey" json:"user_id"`
	StripeCustomerID string `gorm:"type:varchar(100);not null" json:"stripe_customer_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
