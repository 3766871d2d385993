package provider

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	modelx "github.com/narinth/insurepath/insurance/model"
)

const (
	basePremium       = 100.00
	tobaccoMultiplier = 1.5
	dependentCost     = 50.00
	fixedDeductible   = 1000.00
	defaultCoverage   = 50000.00
	quoteValidity     = 30 * 24 * time.Hour
	minimumAge        = 18
)

// Reference is the in-process carrier used for tests and examples. Its
// pricing formula is deterministic so downstream systems can assert exact
// premiums.
type Reference struct {
	providerID string
	now        func() time.Time
}

// ReferenceOption customizes a Reference provider.
type ReferenceOption func(*Reference)

// WithClock overrides the time source. Useful for tests.
func WithClock(now func() time.Time) ReferenceOption {
	return func(p *Reference) {
		if now != nil {
			p.now = now
		}
	}
}

func NewReference(providerID string, opts ...ReferenceOption) *Reference {
	p := &Reference{
		providerID: providerID,
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

func (p *Reference) ID() string {
	return p.providerID
}

// CheckEligibility delegates to the product rules, then applies the carrier
// age floor. On success the per-rule reasons are replaced by a single
// confirmation line.
func (p *Reference) CheckEligibility(ctx context.Context, product modelx.Product, consumer modelx.Consumer) (bool, []string, error) {
	if err := ctx.Err(); err != nil {
		return false, nil, err
	}

	eligible, reasons := product.CheckEligibility(consumer.Profile.Attributes())

	if consumer.Profile.Age < minimumAge {
		eligible = false
		reasons = append(reasons, "Consumer must be 18 or older")
	}

	if !eligible {
		return false, reasons, nil
	}
	return true, []string{"All eligibility requirements met"}, nil
}

// GetQuote prices a product as
// round2(base * age/50 * tobacco) + dependents*50 per month, with a fixed
// deductible and a 30-day quote validity window.
func (p *Reference) GetQuote(ctx context.Context, req modelx.QuoteRequest, consumer modelx.Consumer) (modelx.Quote, error) {
	if err := ctx.Err(); err != nil {
		return modelx.Quote{}, err
	}

	tobacco := 1.0
	if consumer.Profile.TobaccoUser {
		tobacco = tobaccoMultiplier
	}

	monthlyPremium := round2(basePremium * float64(consumer.Profile.Age) / 50 * tobacco)
	if req.Dependents > 0 {
		monthlyPremium += float64(req.Dependents) * dependentCost
	}

	coverage := req.CoverageAmount
	if coverage <= 0 {
		coverage = defaultCoverage
	}

	effective := req.EffectiveDate
	if effective.IsZero() {
		effective = p.now()
	}

	coverageType := "individual"
	if req.Dependents > 0 {
		coverageType = "family"
	}

	return modelx.Quote{
		QuoteID:        uuid.NewString(),
		ProductID:      req.ProductID,
		ConsumerID:     req.ConsumerID,
		MonthlyPremium: monthlyPremium,
		Deductible:     fixedDeductible,
		CoverageAmount: coverage,
		EffectiveDate:  effective,
		ExpirationDate: effective.Add(quoteValidity),
		Details: map[string]string{
			"provider":      p.providerID,
			"coverage_type": coverageType,
			"network":       "PPO",
		},
		CreatedAt: p.now(),
	}, nil
}

func (p *Reference) InitiateEnrollment(ctx context.Context, quote modelx.Quote, consumer modelx.Consumer, data map[string]any) (EnrollmentResult, error) {
	if err := ctx.Err(); err != nil {
		return EnrollmentResult{}, err
	}

	return EnrollmentResult{
		Success:      true,
		EnrollmentID: uuid.NewString(),
		Status:       "pending",
		NextSteps: []string{
			"Submit payment information",
			"Upload required documents",
			"E-signature required",
		},
		EstimatedCompletion: p.now().Add(3 * 24 * time.Hour),
	}, nil
}

func (p *Reference) EnrollmentStatus(ctx context.Context, enrollmentID string) (EnrollmentStatusInfo, error) {
	if err := ctx.Err(); err != nil {
		return EnrollmentStatusInfo{}, err
	}
	if enrollmentID == "" {
		return EnrollmentStatusInfo{}, fmt.Errorf("%w: enrollment id is empty", ErrEnrollmentFailed)
	}

	return EnrollmentStatusInfo{
		EnrollmentID: enrollmentID,
		Status:       "pending",
		Progress:     0.33,
		CurrentStep:  "awaiting_payment",
		UpdatedAt:    p.now(),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
