package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/eino/schema"
	modelx "github.com/narinth/insurepath/insurance/model"
)

// Tool names the dispatcher invokes operations by.
const (
	ToolSearchProducts     = "search_products"
	ToolCheckEligibility   = "check_eligibility"
	ToolGenerateQuote      = "generate_quote"
	ToolCrossSellProducts  = "get_cross_sell_products"
	ToolInitiateEnrollment = "initiate_enrollment"
	ToolEnrollmentStatus   = "get_enrollment_status"
	ToolCalculate          = "calculate"
)

// Result is what an executor hands back to the dispatcher for one tool call.
type Result struct {
	Tool   string `json:"tool"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Executor dispatches a named tool call with structured arguments.
type Executor func(ctx context.Context, tool string, args map[string]any) (Result, error)

// BuildCatalog returns the tool declarations and an executor bound to ops.
func BuildCatalog(ops *Operations) ([]*schema.ToolInfo, Executor) {
	return Infos(), NewExecutor(ops)
}

// NewExecutor routes tool calls by name onto ops. Unknown tools come back as
// structured unavailable results, never errors.
func NewExecutor(ops *Operations) Executor {
	return func(ctx context.Context, tool string, args map[string]any) (Result, error) {
		switch tool {
		case ToolSearchProducts:
			return executeSearchProducts(ops, args), nil
		case ToolCheckEligibility:
			return executeCheckEligibility(ctx, ops, args), nil
		case ToolGenerateQuote:
			return executeGenerateQuote(ctx, ops, args), nil
		case ToolCrossSellProducts:
			return executeCrossSell(ops, args), nil
		case ToolInitiateEnrollment:
			return executeInitiateEnrollment(ctx, ops, args), nil
		case ToolEnrollmentStatus:
			return executeEnrollmentStatus(ctx, ops, args), nil
		case ToolCalculate:
			return executeCalculate(args), nil
		default:
			return Result{
				Tool:  tool,
				Error: fmt.Sprintf("tool=%s is not available", tool),
			}, nil
		}
	}
}

func executeSearchProducts(ops *Operations, args map[string]any) Result {
	var in struct {
		Category   modelx.Category `json:"category"`
		ProviderID string          `json:"provider_id"`
		ActiveOnly *bool           `json:"active_only"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return Result{Tool: ToolSearchProducts, Error: err.Error()}
	}
	activeOnly := true
	if in.ActiveOnly != nil {
		activeOnly = *in.ActiveOnly
	}
	return Result{
		Tool:   ToolSearchProducts,
		Result: ops.SearchProducts(in.Category, in.ProviderID, activeOnly),
	}
}

func executeCheckEligibility(ctx context.Context, ops *Operations, args map[string]any) Result {
	var in struct {
		ProductID string          `json:"product_id"`
		Consumer  modelx.Consumer `json:"consumer"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return Result{Tool: ToolCheckEligibility, Error: err.Error()}
	}
	if in.ProductID == "" {
		return Result{Tool: ToolCheckEligibility, Error: "product_id is required"}
	}
	return Result{Tool: ToolCheckEligibility, Result: ops.CheckEligibility(ctx, in.ProductID, in.Consumer)}
}

func executeGenerateQuote(ctx context.Context, ops *Operations, args map[string]any) Result {
	var in struct {
		Request  modelx.QuoteRequest `json:"request"`
		Consumer modelx.Consumer     `json:"consumer"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return Result{Tool: ToolGenerateQuote, Error: err.Error()}
	}
	if in.Request.ProductID == "" {
		return Result{Tool: ToolGenerateQuote, Error: "request.product_id is required"}
	}
	return Result{Tool: ToolGenerateQuote, Result: ops.GenerateQuote(ctx, in.Request, in.Consumer)}
}

func executeCrossSell(ops *Operations, args map[string]any) Result {
	var in struct {
		ProductID string `json:"product_id"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return Result{Tool: ToolCrossSellProducts, Error: err.Error()}
	}
	if in.ProductID == "" {
		return Result{Tool: ToolCrossSellProducts, Error: "product_id is required"}
	}
	return Result{Tool: ToolCrossSellProducts, Result: ops.CrossSellProducts(in.ProductID)}
}

func executeInitiateEnrollment(ctx context.Context, ops *Operations, args map[string]any) Result {
	var in struct {
		Quote          modelx.Quote    `json:"quote"`
		Consumer       modelx.Consumer `json:"consumer"`
		EnrollmentData map[string]any  `json:"enrollment_data"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return Result{Tool: ToolInitiateEnrollment, Error: err.Error()}
	}
	if in.Quote.ProductID == "" {
		return Result{Tool: ToolInitiateEnrollment, Error: "quote.product_id is required"}
	}
	return Result{Tool: ToolInitiateEnrollment, Result: ops.InitiateEnrollment(ctx, in.Quote, in.Consumer, in.EnrollmentData)}
}

func executeEnrollmentStatus(ctx context.Context, ops *Operations, args map[string]any) Result {
	var in struct {
		ProductID    string `json:"product_id"`
		EnrollmentID string `json:"enrollment_id"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return Result{Tool: ToolEnrollmentStatus, Error: err.Error()}
	}
	if in.ProductID == "" || in.EnrollmentID == "" {
		return Result{Tool: ToolEnrollmentStatus, Error: "product_id and enrollment_id are required"}
	}
	return Result{Tool: ToolEnrollmentStatus, Result: ops.EnrollmentStatus(ctx, in.ProductID, in.EnrollmentID)}
}

func decodeArgs(args map[string]any, out any) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode tool args: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode tool args: %w", err)
	}
	return nil
}

// Infos declares the catalog the dispatcher advertises.
func Infos() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: ToolSearchProducts,
			Desc: "Search insurance products by category and provider.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"category":    {Type: schema.String, Desc: "Product category (health, dental, vision, life, disability, medicare, ancillary)"},
				"provider_id": {Type: schema.String, Desc: "Carrier identifier"},
				"active_only": {Type: schema.Boolean, Desc: "Only list active products (default true)"},
			}),
		},
		{
			Name: ToolCheckEligibility,
			Desc: "Check whether a consumer is eligible for a product.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"product_id": {Type: schema.String, Desc: "Product identifier", Required: true},
				"consumer":   {Type: schema.Object, Desc: "Consumer identity and profile", Required: true},
			}),
		},
		{
			Name: ToolGenerateQuote,
			Desc: "Generate a premium quote for a product.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"request":  {Type: schema.Object, Desc: "Quote request (product id, coverage, dependents)", Required: true},
				"consumer": {Type: schema.Object, Desc: "Consumer identity and profile", Required: true},
			}),
		},
		{
			Name: ToolCrossSellProducts,
			Desc: "List products commonly paired with a product.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"product_id": {Type: schema.String, Desc: "Product identifier", Required: true},
			}),
		},
		{
			Name: ToolInitiateEnrollment,
			Desc: "Start enrollment for an approved quote.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"quote":           {Type: schema.Object, Desc: "Approved quote", Required: true},
				"consumer":        {Type: schema.Object, Desc: "Consumer identity and profile", Required: true},
				"enrollment_data": {Type: schema.Object, Desc: "Additional enrollment fields"},
			}),
		},
		{
			Name: ToolEnrollmentStatus,
			Desc: "Look up the status of an in-flight enrollment.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"product_id":    {Type: schema.String, Desc: "Product identifier", Required: true},
				"enrollment_id": {Type: schema.String, Desc: "Enrollment identifier", Required: true},
			}),
		},
		{
			Name: ToolCalculate,
			Desc: "Evaluate an arithmetic expression.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"expression": {Type: schema.String, Desc: "Expression to evaluate", Required: true},
			}),
		},
	}
}
