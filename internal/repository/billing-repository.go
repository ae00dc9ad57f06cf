package repository

import (
	"github.com/CrossCheckCME/case_service/internal/domain"
	"gorm.io/gorm"
)

type BillingRepository interface {
	FindCustomerByUser(userID string) (*domain.StripeCustomer, error)
	SaveCustomer(c *domain.StripeCustomer) error
}

type billingRepository struct {
	db *gorm.DB
}

func NewBillingRepository(db *gorm.DB) BillingRepository {
	return &billingRepository{db: db}
}

func (r *billingRepository) FindCustomerByUser(userID string) (*domain.StripeCustomer, error) {
	var c domain.StripeCustomer
	if err := r.db.Where("user_id = ?", userID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *billingRepository) SaveCustomer(c *domain.StripeCustomer) error {
	return r.db.Save(c).Error
}
