package pylon

import (
	"context"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultGatewayURL is the unified gateway exposing POST /do.
	DefaultGatewayURL = "https://pylon-gateway-api.fly.dev"

	// DefaultGatewayTimeout applies to gateway calls, which may fan out to
	// slower capabilities upstream.
	DefaultGatewayTimeout = 60 * time.Second
)

// Gateway calls the unified Pylon gateway: any capability is invoked by name
// with a free-form params object.
type Gateway struct {
	client  *Client
	baseURL string
	timeout time.Duration
}

// NewGateway builds a gateway client. An empty baseURL selects the default
// gateway; a non-positive timeout selects the default gateway budget.
func NewGateway(client *Client, baseURL string, timeout time.Duration) *Gateway {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultGatewayURL
	}
	if timeout <= 0 {
		timeout = DefaultGatewayTimeout
	}
	return &Gateway{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
	}
}

// BaseURL returns the configured gateway base URL.
func (g *Gateway) BaseURL() string { return g.baseURL }

// Do invokes the named capability through POST /do and normalizes the
// response exactly like a direct capability call.
func (g *Gateway) Do(ctx context.Context, capability string, params map[string]any) (Result, error) {
	capability = strings.TrimSpace(capability)
	if capability == "" {
		return nil, validationError("gateway capability name is empty")
	}
	if params == nil {
		params = map[string]any{}
	}

	return g.client.Call(ctx, Request{
		BaseURL: g.baseURL,
		Path:    "/do",
		Method:  http.MethodPost,
		Body: map[string]any{
			"capability": capability,
			"params":     params,
		},
		Timeout: g.timeout,
	})
}
