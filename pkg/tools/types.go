// Package tools exposes Pylon capabilities as agent tools over the Model
// Context Protocol. Every tool wraps one capability call; failures are always
// converted into structured error results so an orchestrating agent can react
// to them instead of handling faults.
package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool pairs an MCP tool declaration with its execution logic.
type Tool struct {
	mcp.Tool               // Name, Description, InputSchema
	CapabilityID string    // empty for the generic gateway tool
	Price        string    // per-call price, also embedded in the description
	Execute      func(ctx context.Context, args map[string]any) (*Result, error)
}

// ResultStatus indicates the outcome of a tool invocation.
type ResultStatus string

const (
	// ResultSuccess indicates a normalized upstream payload.
	ResultSuccess ResultStatus = "success"
	// ResultPaymentRequired indicates the upstream answered 402; the caller
	// must complete the x402 payment flow out of band. Not a failure.
	ResultPaymentRequired ResultStatus = "payment_required"
	// ResultError indicates the invocation failed.
	ResultError ResultStatus = "error"
)

// Result standardizes tool output.
type Result struct {
	Status  ResultStatus   `json:"status"`
	Content []ContentBlock `json:"content,omitempty"`
	Details map[string]any `json:"details,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// ContentBlock supports multi-modal results (text, images).
type ContentBlock struct {
	Type     string `json:"type"`               // "text", "image"
	Text     string `json:"text,omitempty"`     // for text blocks
	Data     string `json:"data,omitempty"`     // base64 for images
	MimeType string `json:"mimeType,omitempty"` // for images
}

// Text returns the text content from the result, or the error message when
// the status is error.
func (r *Result) Text() string {
	if r.Status == ResultError && r.Error != "" {
		return r.Error
	}
	for _, block := range r.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text
		}
	}
	return ""
}
