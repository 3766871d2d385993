// Package tool composes the registries and the provider abstraction into the
// stateless operations an external dispatcher invokes by name. Provider
// faults never escape this package as raw errors; every user-visible failure
// is a structured result with human-readable reasons.
package tool

import (
	"context"
	"errors"
	"fmt"
	"sort"

	modelx "github.com/narinth/insurepath/insurance/model"
	providerx "github.com/narinth/insurepath/insurance/provider"
	registryx "github.com/narinth/insurepath/insurance/registry"
)

// ProductSummary is the listing view of a product.
type ProductSummary struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    modelx.Category `json:"category"`
	ProviderID  string          `json:"provider_id"`
	Description string          `json:"description"`
	Active      bool            `json:"active"`
}

// DisclaimerView is the disclaimer shape returned to the dispatcher.
type DisclaimerView struct {
	Type                   string `json:"type"`
	Title                  string `json:"title"`
	Content                string `json:"content"`
	RequiredAcknowledgment bool   `json:"required_acknowledgment"`
}

// EnrollmentStepView is the enrollment step shape returned to the dispatcher.
type EnrollmentStepView struct {
	StepID      string `json:"step_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// EligibilityResult is the outcome of an eligibility check. Disclaimers are
// ordered by display order and only present when eligible.
type EligibilityResult struct {
	Eligible        bool                 `json:"eligible"`
	Reasons         []string             `json:"reasons"`
	Disclaimers     []DisclaimerView     `json:"disclaimers"`
	EnrollmentSteps []EnrollmentStepView `json:"enrollment_steps,omitempty"`
}

// QuoteResult wraps a provider quote or the failure that prevented it.
type QuoteResult struct {
	Success bool          `json:"success"`
	Quote   *modelx.Quote `json:"quote,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// CrossSellItem is a cross-sell recommendation.
type CrossSellItem struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Category       modelx.Category `json:"category"`
	ProviderID     string          `json:"provider_id"`
	Description    string          `json:"description"`
	WhyRecommended string          `json:"why_recommended"`
}

// EnrollmentStatusResult wraps a provider status lookup.
type EnrollmentStatusResult struct {
	Success bool                            `json:"success"`
	Status  *providerx.EnrollmentStatusInfo `json:"status,omitempty"`
	Error   string                          `json:"error,omitempty"`
}

// Operations exposes the boundary-facing composition over both registries.
type Operations struct {
	products  *registryx.ProductRegistry
	providers *registryx.ProviderRegistry
}

func NewOperations(products *registryx.ProductRegistry, providers *registryx.ProviderRegistry) (*Operations, error) {
	if products == nil {
		return nil, errors.New("product registry is required")
	}
	if providers == nil {
		return nil, errors.New("provider registry is required")
	}
	return &Operations{products: products, providers: providers}, nil
}

// SearchProducts lists products matching the conjunctive filters, sorted by
// id for stable output.
func (o *Operations) SearchProducts(category modelx.Category, providerID string, activeOnly bool) []ProductSummary {
	products := o.products.List(registryx.ListFilter{
		Category:   category,
		ProviderID: providerID,
		ActiveOnly: activeOnly,
	})
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })

	summaries := make([]ProductSummary, len(products))
	for i, p := range products {
		summaries[i] = ProductSummary{
			ID:          p.ID,
			Name:        p.Name,
			Category:    p.Category,
			ProviderID:  p.ProviderID,
			Description: p.Description,
			Active:      p.Active,
		}
	}
	return summaries
}

// CheckEligibility runs the product-level rules, then the provider-level
// checks, short-circuiting on the first failure. Not-found products and
// providers are business ineligibility, not errors.
func (o *Operations) CheckEligibility(ctx context.Context, productID string, consumer modelx.Consumer) EligibilityResult {
	product, ok := o.products.Get(productID)
	if !ok {
		return EligibilityResult{
			Eligible: false,
			Reasons:  []string{fmt.Sprintf("Product %s not found", productID)},
		}
	}

	productEligible, productReasons := product.CheckEligibility(consumer.Profile.Attributes())
	if !productEligible {
		return EligibilityResult{Eligible: false, Reasons: productReasons, Disclaimers: []DisclaimerView{}}
	}

	carrier, ok := o.providers.Get(product.ProviderID)
	if !ok {
		return EligibilityResult{
			Eligible:    false,
			Reasons:     []string{fmt.Sprintf("Provider %s not available", product.ProviderID)},
			Disclaimers: []DisclaimerView{},
		}
	}

	providerEligible, providerReasons, err := carrier.CheckEligibility(ctx, product, consumer)
	if err != nil {
		return EligibilityResult{
			Eligible:    false,
			Reasons:     []string{fmt.Sprintf("Eligibility check failed: %v", err)},
			Disclaimers: []DisclaimerView{},
		}
	}
	if !providerEligible {
		return EligibilityResult{Eligible: false, Reasons: providerReasons, Disclaimers: []DisclaimerView{}}
	}

	disclaimers := make([]DisclaimerView, 0, len(product.Disclaimers))
	for _, d := range product.OrderedDisclaimers() {
		disclaimers = append(disclaimers, DisclaimerView{
			Type:                   d.Type,
			Title:                  d.Title,
			Content:                d.Content,
			RequiredAcknowledgment: d.RequiredAcknowledgment,
		})
	}

	steps := make([]EnrollmentStepView, 0, len(product.EnrollmentFlow))
	for _, step := range product.EnrollmentFlow {
		steps = append(steps, EnrollmentStepView{
			StepID:      step.StepID,
			Name:        step.Name,
			Description: step.Description,
		})
	}

	return EligibilityResult{
		Eligible:        true,
		Reasons:         []string{"All eligibility requirements met"},
		Disclaimers:     disclaimers,
		EnrollmentSteps: steps,
	}
}

// GenerateQuote delegates to the product's provider and wraps any provider
// failure into a structured result.
func (o *Operations) GenerateQuote(ctx context.Context, req modelx.QuoteRequest, consumer modelx.Consumer) QuoteResult {
	product, ok := o.products.Get(req.ProductID)
	if !ok {
		return QuoteResult{Success: false, Error: fmt.Sprintf("Product %s not found", req.ProductID)}
	}

	carrier, ok := o.providers.Get(product.ProviderID)
	if !ok {
		return QuoteResult{Success: false, Error: fmt.Sprintf("Provider %s not available", product.ProviderID)}
	}

	quote, err := carrier.GetQuote(ctx, req, consumer)
	if err != nil {
		return QuoteResult{Success: false, Error: err.Error()}
	}
	return QuoteResult{Success: true, Quote: &quote}
}

// CrossSellProducts returns the registry cross-sell lookup annotated with a
// static recommendation note, sorted by id.
func (o *Operations) CrossSellProducts(productID string) []CrossSellItem {
	products := o.products.CrossSell(productID)
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })

	items := make([]CrossSellItem, len(products))
	for i, p := range products {
		items[i] = CrossSellItem{
			ID:             p.ID,
			Name:           p.Name,
			Category:       p.Category,
			ProviderID:     p.ProviderID,
			Description:    p.Description,
			WhyRecommended: fmt.Sprintf("Commonly paired with %s", productID),
		}
	}
	return items
}

// InitiateEnrollment resolves the quote's product to its provider and
// delegates; provider failures come back as unsuccessful results.
func (o *Operations) InitiateEnrollment(ctx context.Context, quote modelx.Quote, consumer modelx.Consumer, data map[string]any) providerx.EnrollmentResult {
	product, ok := o.products.Get(quote.ProductID)
	if !ok {
		return providerx.EnrollmentResult{Success: false, Error: fmt.Sprintf("Product %s not found", quote.ProductID)}
	}

	carrier, ok := o.providers.Get(product.ProviderID)
	if !ok {
		return providerx.EnrollmentResult{Success: false, Error: fmt.Sprintf("Provider %s not available", product.ProviderID)}
	}

	result, err := carrier.InitiateEnrollment(ctx, quote, consumer, data)
	if err != nil {
		return providerx.EnrollmentResult{Success: false, Error: err.Error()}
	}
	return result
}

// EnrollmentStatus looks up enrollment progress through the product's
// provider.
func (o *Operations) EnrollmentStatus(ctx context.Context, productID, enrollmentID string) EnrollmentStatusResult {
	product, ok := o.products.Get(productID)
	if !ok {
		return EnrollmentStatusResult{Success: false, Error: fmt.Sprintf("Product %s not found", productID)}
	}

	carrier, ok := o.providers.Get(product.ProviderID)
	if !ok {
		return EnrollmentStatusResult{Success: false, Error: fmt.Sprintf("Provider %s not available", product.ProviderID)}
	}

	status, err := carrier.EnrollmentStatus(ctx, enrollmentID)
	if err != nil {
		return EnrollmentStatusResult{Success: false, Error: err.Error()}
	}
	return EnrollmentStatusResult{Success: true, Status: &status}
}
