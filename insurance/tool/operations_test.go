package tool

import (
	"context"
	"strings"
	"testing"

	modelx "github.com/narinth/insurepath/insurance/model"
	providerx "github.com/narinth/insurepath/insurance/provider"
	registryx "github.com/narinth/insurepath/insurance/registry"
)

func testConsumer(age int) modelx.Consumer {
	return modelx.Consumer{
		ID:        "consumer-1",
		FirstName: "Jordan",
		LastName:  "Reyes",
		Email:     "jordan@example.com",
		Profile: modelx.ConsumerProfile{
			Age:     age,
			State:   "CA",
			ZipCode: "94105",
		},
	}
}

func testRegistries(t *testing.T) (*registryx.ProductRegistry, *registryx.ProviderRegistry) {
	t.Helper()

	products := registryx.NewProductRegistry()
	products.Register(modelx.Product{
		ID:         "health-001",
		Name:       "Essential Health Plan",
		Category:   modelx.CategoryHealth,
		ProviderID: "mock-insurance",
		Active:     true,
		EligibilityRules: []modelx.EligibilityRule{{
			Name:        "adult_applicant",
			Description: "Applicant must be an adult",
			Logic:       modelx.LogicAll,
			Qualifiers: []modelx.Qualifier{
				{Name: "minimum_age", Description: "Must be 18 or older", Field: "age", Operator: modelx.OpGte, Value: 18},
			},
		}},
		Disclaimers: []modelx.Disclaimer{
			{Type: "warning", Title: "Rates", Content: "Rates may change.", DisplayOrder: 2},
			{Type: "compliance", Title: "Network", Content: "In-network only.", RequiredAcknowledgment: true, DisplayOrder: 1},
		},
		EnrollmentFlow: []modelx.EnrollmentStep{
			{StepID: "personal_info", Name: "Personal Information", Description: "Identity details."},
			{StepID: "payment", Name: "Payment Setup", Description: "Billing details."},
		},
		CrossSellProducts: []string{"dental-001"},
	})
	products.Register(modelx.Product{
		ID:         "dental-001",
		Name:       "Preventive Dental Plan",
		Category:   modelx.CategoryDental,
		ProviderID: "mock-insurance",
		Active:     true,
	})
	products.Register(modelx.Product{
		ID:         "orphan-001",
		Name:       "Orphan Plan",
		Category:   modelx.CategoryLife,
		ProviderID: "gone-carrier",
		Active:     true,
	})

	providers := registryx.NewProviderRegistry()
	providers.Register(providerx.NewReference("mock-insurance"))
	return products, providers
}

func newOps(t *testing.T) *Operations {
	t.Helper()

	products, providers := testRegistries(t)
	ops, err := NewOperations(products, providers)
	if err != nil {
		t.Fatalf("NewOperations() error = %v", err)
	}
	return ops
}

func TestNewOperationsRequiresRegistries(t *testing.T) {
	t.Parallel()

	if _, err := NewOperations(nil, registryx.NewProviderRegistry()); err == nil {
		t.Fatal("nil product registry must be rejected")
	}
	if _, err := NewOperations(registryx.NewProductRegistry(), nil); err == nil {
		t.Fatal("nil provider registry must be rejected")
	}
}

func TestSearchProducts(t *testing.T) {
	t.Parallel()

	ops := newOps(t)

	all := ops.SearchProducts("", "", true)
	if len(all) != 3 {
		t.Fatalf("products = %d, want 3", len(all))
	}
	// Sorted by id.
	if all[0].ID != "dental-001" || all[1].ID != "health-001" {
		t.Fatalf("unexpected order: %v", all)
	}

	dental := ops.SearchProducts(modelx.CategoryDental, "", true)
	if len(dental) != 1 || dental[0].ID != "dental-001" {
		t.Fatalf("category filter failed: %v", dental)
	}

	none := ops.SearchProducts(modelx.CategoryDental, "gone-carrier", true)
	if len(none) != 0 {
		t.Fatalf("conjunctive filters must intersect, got %v", none)
	}
}

func TestCheckEligibilityEligible(t *testing.T) {
	t.Parallel()

	ops := newOps(t)
	result := ops.CheckEligibility(context.Background(), "health-001", testConsumer(25))

	if !result.Eligible {
		t.Fatalf("25 year old must be eligible, reasons=%v", result.Reasons)
	}
	if len(result.Reasons) != 1 || result.Reasons[0] != "All eligibility requirements met" {
		t.Fatalf("reasons = %v", result.Reasons)
	}
	// Disclaimers come back ordered by display order.
	if len(result.Disclaimers) != 2 || result.Disclaimers[0].Title != "Network" {
		t.Fatalf("disclaimers = %v, want Network first", result.Disclaimers)
	}
	if len(result.EnrollmentSteps) != 2 || result.EnrollmentSteps[0].StepID != "personal_info" {
		t.Fatalf("enrollment steps = %v", result.EnrollmentSteps)
	}
}

func TestCheckEligibilityProductRulesShortCircuit(t *testing.T) {
	t.Parallel()

	ops := newOps(t)
	result := ops.CheckEligibility(context.Background(), "health-001", testConsumer(16))

	if result.Eligible {
		t.Fatal("16 year old must be ineligible")
	}
	if len(result.Reasons) != 1 || result.Reasons[0] != "minimum_age: Must be 18 or older" {
		t.Fatalf("reasons = %v, want only the product-level reason", result.Reasons)
	}
	if len(result.EnrollmentSteps) != 0 {
		t.Fatal("ineligible results carry no enrollment steps")
	}
}

func TestCheckEligibilityNotFound(t *testing.T) {
	t.Parallel()

	ops := newOps(t)

	result := ops.CheckEligibility(context.Background(), "nope-001", testConsumer(25))
	if result.Eligible {
		t.Fatal("unknown product must be ineligible")
	}
	if len(result.Reasons) != 1 || result.Reasons[0] != "Product nope-001 not found" {
		t.Fatalf("reasons = %v", result.Reasons)
	}

	result = ops.CheckEligibility(context.Background(), "orphan-001", testConsumer(25))
	if result.Eligible {
		t.Fatal("product without a registered provider must be ineligible")
	}
	if len(result.Reasons) != 1 || result.Reasons[0] != "Provider gone-carrier not available" {
		t.Fatalf("reasons = %v", result.Reasons)
	}
}

func TestGenerateQuoteEndToEnd(t *testing.T) {
	t.Parallel()

	ops := newOps(t)
	req := modelx.QuoteRequest{ProductID: "health-001", ConsumerID: "consumer-1"}

	result := ops.GenerateQuote(context.Background(), req, testConsumer(25))
	if !result.Success {
		t.Fatalf("quote must succeed, error=%s", result.Error)
	}
	if result.Quote.CoverageAmount != 50000.00 {
		t.Fatalf("coverage = %.2f, want the 50000.00 default", result.Quote.CoverageAmount)
	}
	if result.Quote.MonthlyPremium != 50.00 {
		t.Fatalf("premium = %.2f, want 50.00 for age 25", result.Quote.MonthlyPremium)
	}
	if !result.Quote.ExpirationDate.After(result.Quote.EffectiveDate) {
		t.Fatal("expiration must be strictly after effective")
	}
}

func TestGenerateQuoteNotFound(t *testing.T) {
	t.Parallel()

	ops := newOps(t)

	result := ops.GenerateQuote(context.Background(), modelx.QuoteRequest{ProductID: "nope-001"}, testConsumer(25))
	if result.Success {
		t.Fatal("unknown product must fail")
	}
	if result.Error != "Product nope-001 not found" {
		t.Fatalf("error = %q", result.Error)
	}

	result = ops.GenerateQuote(context.Background(), modelx.QuoteRequest{ProductID: "orphan-001"}, testConsumer(25))
	if result.Success || result.Error != "Provider gone-carrier not available" {
		t.Fatalf("result = %+v", result)
	}
}

func TestGenerateQuoteWrapsProviderFailure(t *testing.T) {
	t.Parallel()

	ops := newOps(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := ops.GenerateQuote(ctx, modelx.QuoteRequest{ProductID: "health-001"}, testConsumer(25))
	if result.Success {
		t.Fatal("cancelled provider call must fail")
	}
	if !strings.Contains(result.Error, context.Canceled.Error()) {
		t.Fatalf("error = %q, want the provider failure wrapped", result.Error)
	}
}

func TestCrossSellProducts(t *testing.T) {
	t.Parallel()

	ops := newOps(t)
	items := ops.CrossSellProducts("health-001")

	if len(items) != 1 || items[0].ID != "dental-001" {
		t.Fatalf("items = %v, want dental-001", items)
	}
	if items[0].WhyRecommended != "Commonly paired with health-001" {
		t.Fatalf("why_recommended = %q", items[0].WhyRecommended)
	}

	if got := ops.CrossSellProducts("nope-001"); len(got) != 0 {
		t.Fatalf("unknown product must have no recommendations, got %v", got)
	}
}

func TestInitiateEnrollment(t *testing.T) {
	t.Parallel()

	ops := newOps(t)
	quote := modelx.Quote{QuoteID: "q-1", ProductID: "health-001", ConsumerID: "consumer-1"}

	result := ops.InitiateEnrollment(context.Background(), quote, testConsumer(25), map[string]any{"payment_method": "card"})
	if !result.Success {
		t.Fatalf("enrollment must succeed, error=%s", result.Error)
	}
	if result.EnrollmentID == "" || result.Status != "pending" {
		t.Fatalf("result = %+v", result)
	}

	missing := ops.InitiateEnrollment(context.Background(), modelx.Quote{ProductID: "nope-001"}, testConsumer(25), nil)
	if missing.Success || missing.Error != "Product nope-001 not found" {
		t.Fatalf("result = %+v", missing)
	}
}

func TestEnrollmentStatus(t *testing.T) {
	t.Parallel()

	ops := newOps(t)

	result := ops.EnrollmentStatus(context.Background(), "health-001", "e-1")
	if !result.Success {
		t.Fatalf("status lookup must succeed, error=%s", result.Error)
	}
	if result.Status.CurrentStep != "awaiting_payment" {
		t.Fatalf("status = %+v", result.Status)
	}

	missing := ops.EnrollmentStatus(context.Background(), "nope-001", "e-1")
	if missing.Success || missing.Error != "Product nope-001 not found" {
		t.Fatalf("result = %+v", missing)
	}
}

func TestProviderErrorsNeverPropagate(t *testing.T) {
	t.Parallel()

	ops := newOps(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Every operation converts provider faults into structured results.
	if result := ops.CheckEligibility(ctx, "health-001", testConsumer(25)); result.Eligible {
		t.Fatal("cancelled eligibility check must come back ineligible")
	}
	if result := ops.InitiateEnrollment(ctx, modelx.Quote{ProductID: "health-001"}, testConsumer(25), nil); result.Success {
		t.Fatal("cancelled enrollment must come back unsuccessful")
	}
	if result := ops.EnrollmentStatus(ctx, "health-001", "e-1"); result.Success {
		t.Fatal("cancelled status lookup must come back unsuccessful")
	}
}
