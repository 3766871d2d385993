package model

import "time"

// QuoteRequest asks a provider to price a product for a consumer.
type QuoteRequest struct {
	ProductID      string            `json:"product_id"`
	ConsumerID     string            `json:"consumer_id"`
	CoverageAmount float64           `json:"coverage_amount,omitempty"`
	Dependents     int               `json:"dependents"`
	EffectiveDate  time.Time         `json:"effective_date,omitzero"`
	Options        map[string]string `json:"options,omitempty"`
}

// Quote is a priced offer for a product. ExpirationDate is always strictly
// after EffectiveDate.
type Quote struct {
	QuoteID        string            `json:"quote_id"`
	ProductID      string            `json:"product_id"`
	ConsumerID     string            `json:"consumer_id"`
	MonthlyPremium float64           `json:"monthly_premium"`
	Deductible     float64           `json:"deductible"`
	CoverageAmount float64           `json:"coverage_amount"`
	EffectiveDate  time.Time         `json:"effective_date"`
	ExpirationDate time.Time         `json:"expiration_date"`
	Details        map[string]string `json:"details,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}
