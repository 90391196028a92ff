package tools

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pylon-apis/pylon-go/pkg/capabilities"
	"github.com/pylon-apis/pylon-go/pkg/pylon"
)

// Runner executes a validated capability call. The concrete runner lives in
// the application layer so it can record spend and emit invocation events
// around the raw API call.
type Runner interface {
	// Run invokes a cataloged capability with typed, validated params.
	Run(ctx context.Context, cap capabilities.Capability, params capabilities.Params) (pylon.Result, error)
	// RunGateway invokes an arbitrary capability by wire name through the
	// unified gateway /do endpoint.
	RunGateway(ctx context.Context, capability string, params map[string]any) (pylon.Result, error)
}

// ForCapability builds the tool exposing one cataloged capability.
func ForCapability(cap capabilities.Capability, runner Runner) *Tool {
	t := &Tool{
		Tool: mcp.Tool{
			Name:        cap.Name,
			Description: cap.Description,
			Annotations: &mcp.ToolAnnotations{Title: humanTitle(cap.ID)},
			InputSchema: cap.InputSchema,
		},
		CapabilityID: cap.ID,
		Price:        cap.Price,
	}

	t.Execute = func(ctx context.Context, args map[string]any) (*Result, error) {
		params, err := capabilities.ParseParams(cap.ID, args)
		if err != nil {
			return ErrorResultf(cap.Name, "invalid arguments: %v", err), nil
		}

		res, err := runner.Run(ctx, cap, params)
		if err != nil {
			return ErrorResult(cap.Name, err.Error()), nil
		}

		out := FromPayload(cap.Name, res)
		if cap.ID == capabilities.IDWebScrape {
			flattenHTMLText(out)
		}
		return out, nil
	}

	return t
}

// DoTool builds the generic gateway tool: invoke any capability by name with
// a free-form params object.
func DoTool(runner Runner) *Tool {
	t := &Tool{
		Tool: mcp.Tool{
			Name: "pylon",
			Description: "Access 20+ AI capabilities via Pylon API Gateway including: " +
				"screenshot (capture web pages), search (web search), " +
				"web-scrape (extract web content), pdf-extract (extract text from PDFs), " +
				"ocr (optical character recognition), translate (language translation), " +
				"and many more. Uses x402 payment protocol - no API keys needed.",
			Annotations: &mcp.ToolAnnotations{Title: "Pylon API Gateway"},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"capability": map[string]any{
						"type":        "string",
						"description": "The capability to execute (e.g., 'screenshot', 'search', 'pdf-extract')",
					},
					"params": map[string]any{
						"type":        "object",
						"description": "Parameters for the capability",
					},
				},
				"required": []string{"capability"},
			},
		},
	}

	t.Execute = func(ctx context.Context, args map[string]any) (*Result, error) {
		capability, _ := args["capability"].(string)
		if strings.TrimSpace(capability) == "" {
			return ErrorResult(t.Name, "missing required argument \"capability\""), nil
		}

		params, _ := args["params"].(map[string]any)
		res, err := runner.RunGateway(ctx, capability, params)
		if err != nil {
			return ErrorResult(t.Name, err.Error()), nil
		}
		return FromPayload(t.Name, res), nil
	}

	return t
}

// All builds the full tool set: one tool per cataloged capability plus the
// generic gateway tool.
func All(reg *capabilities.Registry, runner Runner) []*Tool {
	caps := reg.All()
	out := make([]*Tool, 0, len(caps)+1)
	for _, cap := range caps {
		out = append(out, ForCapability(cap, runner))
	}
	out = append(out, DoTool(runner))
	return out
}

// flattenHTMLText replaces HTML text payloads with extracted plain text so
// agents receive readable content; the raw markup stays in the details.
func flattenHTMLText(res *Result) {
	if res.Status != ResultSuccess {
		return
	}
	for i, block := range res.Content {
		if block.Type != "text" || !LooksLikeHTML(block.Text) {
			continue
		}
		text, ok := HTMLToText(block.Text)
		if !ok {
			continue
		}
		if res.Details == nil {
			res.Details = map[string]any{}
		}
		res.Details["raw_html"] = block.Text
		res.Content[i].Text = text
	}
}

func humanTitle(id string) string {
	words := strings.Split(id, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		if w == "ocr" || w == "pdf" || w == "md" || w == "html" || w == "qr" {
			words[i] = strings.ToUpper(w)
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return "Pylon " + strings.Join(words, " ")
}
