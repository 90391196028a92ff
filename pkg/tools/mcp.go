package tools

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewMCPServer assembles an MCP server exposing the given tools.
func NewMCPServer(toolset []*Tool, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "pylon", Version: version}, nil)
	for _, t := range toolset {
		server.AddTool(&t.Tool, mcpHandler(t))
	}
	return server
}

// ServeStdio runs the MCP server over stdio until the context is cancelled.
func ServeStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

// mcpHandler adapts a Tool to the MCP tool handler signature. Execution
// failures come back as error-flagged results, never as protocol errors.
func mcpHandler(t *Tool) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := decodeArgs(req)
		if err != nil {
			return errorCallResult(fmt.Sprintf("decode arguments: %v", err)), nil
		}

		res, err := t.Execute(ctx, args)
		if err != nil {
			return errorCallResult(err.Error()), nil
		}
		return toCallResult(res), nil
	}
}

// decodeArgs normalizes the request arguments into a map. A JSON round-trip
// covers both raw and pre-decoded argument representations.
func decodeArgs(req *mcp.CallToolRequest) (map[string]any, error) {
	if req == nil || req.Params == nil || req.Params.Arguments == nil {
		return map[string]any{}, nil
	}

	raw, err := json.Marshal(req.Params.Arguments)
	if err != nil {
		return nil, err
	}

	args := map[string]any{}
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, err
	}
	return args, nil
}

// toCallResult converts a tool result into MCP content blocks.
func toCallResult(res *Result) *mcp.CallToolResult {
	out := &mcp.CallToolResult{
		IsError:           res.Status == ResultError,
		StructuredContent: res.Details,
	}

	for _, block := range res.Content {
		switch block.Type {
		case "image":
			data, err := base64.StdEncoding.DecodeString(block.Data)
			if err != nil {
				out.Content = append(out.Content, &mcp.TextContent{
					Text: fmt.Sprintf("invalid image payload: %v", err),
				})
				continue
			}
			out.Content = append(out.Content, &mcp.ImageContent{
				MIMEType: block.MimeType,
				Data:     data,
			})
		default:
			out.Content = append(out.Content, &mcp.TextContent{Text: block.Text})
		}
	}

	if len(out.Content) == 0 {
		out.Content = append(out.Content, &mcp.TextContent{Text: res.Text()})
	}
	return out
}

func errorCallResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: message}},
	}
}
