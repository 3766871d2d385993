package tool

import (
	"context"
	"strings"
	"testing"
)

func TestInfosDeclaresEveryTool(t *testing.T) {
	t.Parallel()

	infos := Infos()
	if len(infos) != 7 {
		t.Fatalf("tool count = %d, want 7", len(infos))
	}

	want := map[string]bool{
		ToolSearchProducts:     false,
		ToolCheckEligibility:   false,
		ToolGenerateQuote:      false,
		ToolCrossSellProducts:  false,
		ToolInitiateEnrollment: false,
		ToolEnrollmentStatus:   false,
		ToolCalculate:          false,
	}
	for _, info := range infos {
		seen, ok := want[info.Name]
		if !ok {
			t.Fatalf("unexpected tool %q", info.Name)
		}
		if seen {
			t.Fatalf("duplicate tool %q", info.Name)
		}
		if info.Desc == "" {
			t.Fatalf("tool %q has no description", info.Name)
		}
		want[info.Name] = true
	}
}

func TestExecutorDispatchesSearch(t *testing.T) {
	t.Parallel()

	_, execute := BuildCatalog(newOps(t))

	result, err := execute(context.Background(), ToolSearchProducts, map[string]any{
		"category": "dental",
	})
	if err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	if result.Error != "" {
		t.Fatalf("result.Error = %q", result.Error)
	}
	summaries, ok := result.Result.([]ProductSummary)
	if !ok {
		t.Fatalf("result type = %T", result.Result)
	}
	if len(summaries) != 1 || summaries[0].ID != "dental-001" {
		t.Fatalf("summaries = %v", summaries)
	}
}

func TestExecutorDispatchesEligibility(t *testing.T) {
	t.Parallel()

	execute := NewExecutor(newOps(t))

	result, err := execute(context.Background(), ToolCheckEligibility, map[string]any{
		"product_id": "health-001",
		"consumer": map[string]any{
			"id":      "consumer-1",
			"profile": map[string]any{"age": 30, "state": "CA"},
		},
	})
	if err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	eligibility, ok := result.Result.(EligibilityResult)
	if !ok {
		t.Fatalf("result type = %T", result.Result)
	}
	if !eligibility.Eligible {
		t.Fatalf("expected eligible, reasons=%v", eligibility.Reasons)
	}
}

func TestExecutorValidatesRequiredArgs(t *testing.T) {
	t.Parallel()

	execute := NewExecutor(newOps(t))

	cases := []struct {
		tool string
		args map[string]any
		want string
	}{
		{ToolCheckEligibility, map[string]any{}, "product_id is required"},
		{ToolGenerateQuote, map[string]any{}, "request.product_id is required"},
		{ToolCrossSellProducts, map[string]any{}, "product_id is required"},
		{ToolInitiateEnrollment, map[string]any{}, "quote.product_id is required"},
		{ToolEnrollmentStatus, map[string]any{"product_id": "health-001"}, "product_id and enrollment_id are required"},
		{ToolCalculate, map[string]any{}, "expression is required"},
	}
	for _, tc := range cases {
		result, err := execute(context.Background(), tc.tool, tc.args)
		if err != nil {
			t.Fatalf("execute(%s) error = %v", tc.tool, err)
		}
		if result.Error != tc.want {
			t.Fatalf("execute(%s) error message = %q, want %q", tc.tool, result.Error, tc.want)
		}
	}
}

func TestExecutorUnknownTool(t *testing.T) {
	t.Parallel()

	execute := NewExecutor(newOps(t))

	result, err := execute(context.Background(), "send_fax", nil)
	if err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	if !strings.Contains(result.Error, "not available") {
		t.Fatalf("result.Error = %q, want an unavailable message", result.Error)
	}
	if result.Tool != "send_fax" {
		t.Fatalf("result.Tool = %q", result.Tool)
	}
}

func TestExecutorRejectsMalformedArgs(t *testing.T) {
	t.Parallel()

	execute := NewExecutor(newOps(t))

	result, err := execute(context.Background(), ToolCheckEligibility, map[string]any{
		"product_id": 42,
	})
	if err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	if result.Error == "" {
		t.Fatal("numeric product_id must be a decode failure")
	}
}

func TestCalculate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		expression string
		want       float64
	}{
		{"2 + 3 * (4 - 1)", 11},
		{"10 / 4", 2.5},
		{"10 % 3", 1},
		{"-2 * -3", 6},
		{"1.5 + 2.25", 3.75},
		{"((2))", 2},
	}
	for _, tc := range cases {
		out, err := Calculate(tc.expression)
		if err != nil {
			t.Fatalf("Calculate(%q) error = %v", tc.expression, err)
		}
		if out.Result != tc.want {
			t.Fatalf("Calculate(%q) = %v, want %v", tc.expression, out.Result, tc.want)
		}
	}
}

func TestCalculateRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		expression string
	}{
		{"empty", "   "},
		{"letters", "2 + x"},
		{"power operator", "2 ^ 3"},
		{"unbalanced", "(1 + 2"},
		{"division by zero", "1 / 0"},
		{"modulo by zero", "1 % 0"},
		{"trailing token", "1 2"},
		{"double dot", "1..2"},
	}
	for _, tc := range cases {
		if _, err := Calculate(tc.expression); err == nil {
			t.Fatalf("Calculate(%s) must fail", tc.name)
		}
	}
}

func TestCalculateThroughExecutor(t *testing.T) {
	t.Parallel()

	execute := NewExecutor(newOps(t))

	result, err := execute(context.Background(), ToolCalculate, map[string]any{
		"expression": "100 * 25 / 50",
	})
	if err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	out, ok := result.Result.(CalculateOutput)
	if !ok {
		t.Fatalf("result type = %T", result.Result)
	}
	if out.Result != 50 {
		t.Fatalf("result = %v, want 50", out.Result)
	}
}
