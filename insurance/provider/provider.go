// Package provider defines the carrier integration contract. A carrier
// implements Provider and registers under the provider id its products
// reference; product-level policy stays in the model package, everything
// carrier-specific (pricing, enrollment) lives behind this interface.
package provider

import (
	"context"
	"errors"
	"time"

	modelx "github.com/narinth/insurepath/insurance/model"
)

var (
	ErrQuoteFailed      = errors.New("quote generation failed")
	ErrEnrollmentFailed = errors.New("enrollment failed")
)

// EnrollmentResult is the outcome of initiating enrollment with a carrier.
type EnrollmentResult struct {
	Success             bool      `json:"success"`
	EnrollmentID        string    `json:"enrollment_id,omitempty"`
	Status              string    `json:"status,omitempty"`
	NextSteps           []string  `json:"next_steps,omitempty"`
	EstimatedCompletion time.Time `json:"estimated_completion,omitzero"`
	Error               string    `json:"error,omitempty"`
}

// EnrollmentStatusInfo reports progress of an in-flight enrollment.
type EnrollmentStatusInfo struct {
	EnrollmentID string    `json:"enrollment_id"`
	Status       string    `json:"status"`
	Progress     float64   `json:"progress"`
	CurrentStep  string    `json:"current_step"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Provider is implemented once per carrier. Calls may perform network I/O
// and must honor context cancellation.
type Provider interface {
	ID() string

	// CheckEligibility layers carrier-specific checks on top of the
	// product-level rules and may add its own failure reasons.
	CheckEligibility(ctx context.Context, product modelx.Product, consumer modelx.Consumer) (bool, []string, error)

	// GetQuote prices the product. The returned quote's expiration date is
	// always strictly after its effective date.
	GetQuote(ctx context.Context, req modelx.QuoteRequest, consumer modelx.Consumer) (modelx.Quote, error)

	InitiateEnrollment(ctx context.Context, quote modelx.Quote, consumer modelx.Consumer, data map[string]any) (EnrollmentResult, error)

	EnrollmentStatus(ctx context.Context, enrollmentID string) (EnrollmentStatusInfo, error)
}
