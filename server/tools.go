package server

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	modelx "github.com/narinth/insurepath/insurance/model"
	providerx "github.com/narinth/insurepath/insurance/provider"
	toolx "github.com/narinth/insurepath/insurance/tool"
)

// SearchProductsInput filters the product listing. Filters are conjunctive.
type SearchProductsInput struct {
	Category        string `json:"category,omitempty" jsonschema:"product category (health, dental, vision, life, disability, medicare, ancillary)"`
	ProviderID      string `json:"provider_id,omitempty" jsonschema:"carrier identifier"`
	IncludeInactive bool   `json:"include_inactive,omitempty" jsonschema:"include inactive products"`
}

// SearchProductsOutput lists matching products.
type SearchProductsOutput struct {
	Products []toolx.ProductSummary `json:"products"`
	Count    int                    `json:"count"`
}

// CheckEligibilityInput identifies the product and the consumer to check.
type CheckEligibilityInput struct {
	ProductID string          `json:"product_id" jsonschema:"product identifier"`
	Consumer  modelx.Consumer `json:"consumer" jsonschema:"consumer identity and profile"`
}

// GenerateQuoteInput carries the quote request and the consumer.
type GenerateQuoteInput struct {
	Request  modelx.QuoteRequest `json:"request" jsonschema:"quote request"`
	Consumer modelx.Consumer     `json:"consumer" jsonschema:"consumer identity and profile"`
}

// CrossSellInput identifies the source product.
type CrossSellInput struct {
	ProductID string `json:"product_id" jsonschema:"product identifier"`
}

// CrossSellOutput lists recommended companions for the product.
type CrossSellOutput struct {
	Products []toolx.CrossSellItem `json:"products"`
	Count    int                   `json:"count"`
}

// InitiateEnrollmentInput starts enrollment for an approved quote.
type InitiateEnrollmentInput struct {
	Quote          modelx.Quote    `json:"quote" jsonschema:"approved quote"`
	Consumer       modelx.Consumer `json:"consumer" jsonschema:"consumer identity and profile"`
	EnrollmentData map[string]any  `json:"enrollment_data,omitempty" jsonschema:"additional enrollment fields"`
}

// EnrollmentStatusInput identifies an in-flight enrollment.
type EnrollmentStatusInput struct {
	ProductID    string `json:"product_id" jsonschema:"product identifier"`
	EnrollmentID string `json:"enrollment_id" jsonschema:"enrollment identifier"`
}

// CalculateInput is an arithmetic expression to evaluate.
type CalculateInput struct {
	Expression string `json:"expression" jsonschema:"expression to evaluate"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        toolx.ToolSearchProducts,
		Description: "Search insurance products by category and provider",
	}, s.handleSearchProducts)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        toolx.ToolCheckEligibility,
		Description: "Check whether a consumer is eligible for a product",
	}, s.handleCheckEligibility)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        toolx.ToolGenerateQuote,
		Description: "Generate a premium quote for a product",
	}, s.handleGenerateQuote)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        toolx.ToolCrossSellProducts,
		Description: "List products commonly paired with a product",
	}, s.handleCrossSell)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        toolx.ToolInitiateEnrollment,
		Description: "Start enrollment for an approved quote",
	}, s.handleInitiateEnrollment)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        toolx.ToolEnrollmentStatus,
		Description: "Look up the status of an in-flight enrollment",
	}, s.handleEnrollmentStatus)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        toolx.ToolCalculate,
		Description: "Evaluate an arithmetic expression",
	}, s.handleCalculate)
}

func (s *Server) handleSearchProducts(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SearchProductsInput,
) (*mcp.CallToolResult, SearchProductsOutput, error) {
	products := s.ops.SearchProducts(modelx.Category(input.Category), input.ProviderID, !input.IncludeInactive)
	return nil, SearchProductsOutput{Products: products, Count: len(products)}, nil
}

func (s *Server) handleCheckEligibility(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CheckEligibilityInput,
) (*mcp.CallToolResult, toolx.EligibilityResult, error) {
	return nil, s.ops.CheckEligibility(ctx, input.ProductID, input.Consumer), nil
}

func (s *Server) handleGenerateQuote(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateQuoteInput,
) (*mcp.CallToolResult, toolx.QuoteResult, error) {
	return nil, s.ops.GenerateQuote(ctx, input.Request, input.Consumer), nil
}

func (s *Server) handleCrossSell(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input CrossSellInput,
) (*mcp.CallToolResult, CrossSellOutput, error) {
	products := s.ops.CrossSellProducts(input.ProductID)
	return nil, CrossSellOutput{Products: products, Count: len(products)}, nil
}

func (s *Server) handleInitiateEnrollment(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input InitiateEnrollmentInput,
) (*mcp.CallToolResult, providerx.EnrollmentResult, error) {
	return nil, s.ops.InitiateEnrollment(ctx, input.Quote, input.Consumer, input.EnrollmentData), nil
}

func (s *Server) handleEnrollmentStatus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input EnrollmentStatusInput,
) (*mcp.CallToolResult, toolx.EnrollmentStatusResult, error) {
	return nil, s.ops.EnrollmentStatus(ctx, input.ProductID, input.EnrollmentID), nil
}

func (s *Server) handleCalculate(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input CalculateInput,
) (*mcp.CallToolResult, toolx.CalculateOutput, error) {
	out, err := toolx.Calculate(input.Expression)
	if err != nil {
		return nil, toolx.CalculateOutput{}, err
	}
	return nil, out, nil
}
