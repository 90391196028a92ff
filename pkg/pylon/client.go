package pylon

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pylon-apis/pylon-go/pkg/httpclient"
)

const (
	// DefaultTimeout applies to direct capability calls.
	DefaultTimeout = 30 * time.Second

	paymentRequiredMessage = "This API requires x402 micropayment. See https://pylonapi.com for details."
)

// Request describes a single capability call. Exactly one of Query or Body is
// populated, chosen by the calling tool.
type Request struct {
	BaseURL string
	Path    string
	Method  string // GET or POST
	Query   map[string]string
	Body    map[string]any
	Timeout time.Duration
}

func (r Request) validate() error {
	if strings.TrimSpace(r.BaseURL) == "" {
		return validationError("request base URL is empty")
	}
	switch r.Method {
	case http.MethodGet, http.MethodPost:
	default:
		return validationError("unsupported method %q (want GET or POST)", r.Method)
	}
	if len(r.Query) > 0 && len(r.Body) > 0 {
		return validationError("request must carry query params or a JSON body, not both")
	}
	// Zero selects the client's default budget.
	if r.Timeout < 0 {
		return validationError("request timeout must not be negative")
	}
	return nil
}

func (r Request) url() string {
	return strings.TrimRight(r.BaseURL, "/") + r.Path
}

// Client performs Pylon API calls and normalizes responses. It holds no
// per-call state; concurrent use is safe.
type Client struct {
	http           httpclient.Client
	defaultTimeout time.Duration
}

// NewClient builds a Client on the shared resty-backed HTTP client. The
// timeout is the default per-request budget for requests that carry none;
// deadlines are always applied via context in Call, never on the transport,
// so a request may exceed the default with an explicit Timeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http:           httpclient.NewRestyClient(0),
		defaultTimeout: timeout,
	}
}

// NewClientWith builds a Client around an injected HTTP client.
func NewClientWith(hc httpclient.Client) *Client {
	return &Client{http: hc, defaultTimeout: DefaultTimeout}
}

func (c *Client) requestTimeout(req Request) time.Duration {
	if req.Timeout > 0 {
		return req.Timeout
	}
	if c.defaultTimeout > 0 {
		return c.defaultTimeout
	}
	return DefaultTimeout
}

// Call issues one synchronous request and maps the response into a normalized
// Result. There are no retries: a 402 is reported as PaymentRequired and
// transport failures surface as a single transport error.
func (c *Client) Call(ctx context.Context, req Request) (Result, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	callCtx, cancel := context.WithTimeout(ctx, c.requestTimeout(req))
	defer cancel()

	var (
		resp httpclient.Response
		err  error
	)
	if req.Method == http.MethodGet {
		resp, err = c.http.Get(callCtx, req.url(), req.Query, nil)
	} else {
		resp, err = c.http.PostJSON(callCtx, req.url(), req.Body, nil)
	}
	if err != nil {
		return nil, transportError(fmt.Sprintf("request to %s failed", req.url()), err)
	}

	return normalize(resp)
}

// normalize maps a raw HTTP response onto the result union. 402 takes
// precedence over content-type routing.
func normalize(resp httpclient.Response) (Result, error) {
	contentType := resp.ContentType()
	body := resp.Body()

	if resp.StatusCode() == http.StatusPaymentRequired {
		details, err := paymentDetails(contentType, body)
		if err != nil {
			return nil, err
		}
		return &PaymentRequired{
			Message:        paymentRequiredMessage,
			PaymentDetails: details,
		}, nil
	}

	switch {
	case strings.Contains(contentType, "application/json"):
		var value any
		if err := json.Unmarshal(body, &value); err != nil {
			return nil, decodeError("decode JSON response body", err)
		}
		return &JSONPayload{Value: value}, nil

	case strings.HasPrefix(contentType, "image/") || strings.Contains(contentType, "application/pdf"):
		return &BinaryPayload{
			ContentType: contentType,
			Base64Data:  base64.StdEncoding.EncodeToString(body),
			SizeBytes:   len(body),
		}, nil

	default:
		return &TextPayload{Text: string(body)}, nil
	}
}

// paymentDetails extracts the 402 body as JSON when the upstream declared a
// JSON content type, else as raw text.
func paymentDetails(contentType string, body []byte) (any, error) {
	if strings.HasPrefix(contentType, "application/json") {
		var details any
		if err := json.Unmarshal(body, &details); err != nil {
			return nil, decodeError("decode payment details", err)
		}
		return details, nil
	}
	return string(body), nil
}
