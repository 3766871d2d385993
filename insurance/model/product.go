package model

import (
	"fmt"
	"sort"
)

// Category groups products by line of coverage.
type Category string

const (
	CategoryHealth     Category = "health"
	CategoryDental     Category = "dental"
	CategoryVision     Category = "vision"
	CategoryLife       Category = "life"
	CategoryDisability Category = "disability"
	CategoryMedicare   Category = "medicare"
	CategoryAncillary  Category = "ancillary"
)

// RuleLogic selects how a rule combines its qualifiers.
type RuleLogic string

const (
	LogicAll RuleLogic = "all"
	LogicAny RuleLogic = "any"
)

// EligibilityRule is a named, logically-combined set of qualifiers.
type EligibilityRule struct {
	Name        string      `json:"name" mapstructure:"name"`
	Description string      `json:"description" mapstructure:"description"`
	Qualifiers  []Qualifier `json:"qualifiers" mapstructure:"qualifiers"`
	Logic       RuleLogic   `json:"logic" mapstructure:"logic"`
}

func (r EligibilityRule) Validate() error {
	logic := r.Logic
	if logic == "" {
		logic = LogicAll
	}
	if logic != LogicAll && logic != LogicAny {
		return fmt.Errorf("%w, got %q (rule %q)", ErrUnknownLogic, r.Logic, r.Name)
	}
	for _, q := range r.Qualifiers {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("rule %q: %w", r.Name, err)
		}
	}
	return nil
}

// Evaluate runs every qualifier and combines the results according to the
// rule's logic. Reasons explain each failure in qualifier order.
func (r EligibilityRule) Evaluate(attrs map[string]any) (bool, []string) {
	results := make([]bool, len(r.Qualifiers))
	for i, q := range r.Qualifiers {
		results[i] = q.Evaluate(attrs)
	}

	if r.Logic == LogicAny {
		for _, ok := range results {
			if ok {
				return true, nil
			}
		}
		return false, []string{fmt.Sprintf("None of the qualifiers met for rule: %s", r.Name)}
	}

	var reasons []string
	for i, ok := range results {
		if !ok {
			reasons = append(reasons, fmt.Sprintf("%s: %s", r.Qualifiers[i].Name, r.Qualifiers[i].Description))
		}
	}
	return len(reasons) == 0, reasons
}

// Disclaimer is compliance text attached to a product. Immutable once
// attached; ordered by DisplayOrder for display.
type Disclaimer struct {
	Type                   string `json:"type" mapstructure:"type"`
	Title                  string `json:"title" mapstructure:"title"`
	Content                string `json:"content" mapstructure:"content"`
	RequiredAcknowledgment bool   `json:"required_acknowledgment" mapstructure:"required_acknowledgment"`
	DisplayOrder           int    `json:"display_order" mapstructure:"display_order"`
}

// EnrollmentStep is one stage of a product's enrollment sequence. NextStep
// links to the following step id; Condition optionally branches the flow.
type EnrollmentStep struct {
	StepID         string         `json:"step_id" mapstructure:"step_id"`
	Name           string         `json:"name" mapstructure:"name"`
	Description    string         `json:"description" mapstructure:"description"`
	RequiredFields []string       `json:"required_fields" mapstructure:"required_fields"`
	OptionalFields []string       `json:"optional_fields" mapstructure:"optional_fields"`
	NextStep       string         `json:"next_step,omitempty" mapstructure:"next_step"`
	Condition      map[string]any `json:"condition,omitempty" mapstructure:"condition"`
}

// Product is an insurance product definition. Products are created at load
// time and never mutated in place; re-registering the same id replaces the
// whole record.
type Product struct {
	ID                string            `json:"id" mapstructure:"id"`
	Name              string            `json:"name" mapstructure:"name"`
	Category          Category          `json:"category" mapstructure:"category"`
	ProviderID        string            `json:"provider_id" mapstructure:"provider_id"`
	Description       string            `json:"description" mapstructure:"description"`
	EligibilityRules  []EligibilityRule `json:"eligibility_rules" mapstructure:"eligibility_rules"`
	Disclaimers       []Disclaimer      `json:"disclaimers" mapstructure:"disclaimers"`
	EnrollmentFlow    []EnrollmentStep  `json:"enrollment_flow" mapstructure:"enrollment_flow"`
	CrossSellProducts []string          `json:"cross_sell_products" mapstructure:"cross_sell_products"`
	Metadata          map[string]any    `json:"metadata" mapstructure:"metadata"`
	Active            bool              `json:"active" mapstructure:"active"`
}

func (p Product) Validate() error {
	if p.ID == "" {
		return ErrMissingProductID
	}
	for _, rule := range p.EligibilityRules {
		if err := rule.Validate(); err != nil {
			return fmt.Errorf("product %q: %w", p.ID, err)
		}
	}
	return nil
}

// CheckEligibility runs every rule in declaration order. A product is
// eligible iff every rule passes; reasons from all failing rules are
// concatenated in rule order.
func (p Product) CheckEligibility(attrs map[string]any) (bool, []string) {
	var reasons []string
	for _, rule := range p.EligibilityRules {
		if ok, ruleReasons := rule.Evaluate(attrs); !ok {
			reasons = append(reasons, ruleReasons...)
		}
	}
	return len(reasons) == 0, reasons
}

// OrderedDisclaimers returns the product's disclaimers sorted by display
// order without mutating the product.
func (p Product) OrderedDisclaimers() []Disclaimer {
	ordered := make([]Disclaimer, len(p.Disclaimers))
	copy(ordered, p.Disclaimers)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].DisplayOrder < ordered[j].DisplayOrder
	})
	return ordered
}
