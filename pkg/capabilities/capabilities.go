package capabilities

// Package capabilities declares the Pylon capability catalog: one descriptor
// per remote capability, consumed by framework adapters to expose tools.

import (
	"net/http"
	"time"
)

// Capability describes one remote Pylon capability: where it lives, how it is
// invoked, what it costs, and the JSON schema of its input. Descriptions carry
// per-call pricing because agents use them for tool selection.
type Capability struct {
	ID             string         `json:"id" yaml:"id"`
	Name           string         `json:"name" yaml:"name"`
	Description    string         `json:"description" yaml:"description"`
	Price          string         `json:"price" yaml:"price"`
	BaseURL        string         `json:"base_url" yaml:"base_url"`
	Path           string         `json:"path" yaml:"path"`
	Method         string         `json:"method" yaml:"method"`
	TimeoutSeconds int            `json:"timeout_seconds" yaml:"timeout_seconds"`
	Gateway        bool           `json:"gateway" yaml:"gateway"`
	WireName       string         `json:"wire_name" yaml:"wire_name"`
	InputSchema    map[string]any `json:"input_schema" yaml:"-"`
}

// Timeout returns the per-call timeout for this capability.
func (c Capability) Timeout() time.Duration {
	if c.TimeoutSeconds > 0 {
		return time.Duration(c.TimeoutSeconds) * time.Second
	}
	if c.Gateway {
		return 60 * time.Second
	}
	return 30 * time.Second
}

// Capability IDs of the built-in catalog.
const (
	IDScreenshot    = "screenshot"
	IDPDFParse      = "pdf_parse"
	IDOCR           = "ocr"
	IDEmailValidate = "email_validate"
	IDDomainIntel   = "domain_intel"
	IDQRCode        = "qr_code"
	IDImageResize   = "image_resize"
	IDMDToPDF       = "md_to_pdf"
	IDHTMLToPDF     = "html_to_pdf"
	IDSearch        = "search"
	IDWebScrape     = "web_scrape"
)

// Builtins returns the built-in capability catalog. Dedicated hosts are
// addressed directly with GET query params; search and web_scrape are routed
// through the unified gateway.
func Builtins() []Capability {
	return []Capability{
		{
			ID:          IDScreenshot,
			Name:        "pylon_screenshot",
			Description: "Take a screenshot of any webpage. Returns PNG/JPEG image. Costs $0.01 per request via x402 micropayment. Useful for capturing visual state of websites, verifying deployments, or getting visual context about a URL.",
			Price:       "$0.01",
			BaseURL:     "https://pylon-screenshot-api.fly.dev",
			Path:        "/screenshot",
			Method:      http.MethodGet,
			InputSchema: schemaScreenshot(),
		},
		{
			ID:          IDPDFParse,
			Name:        "pylon_pdf_parse",
			Description: "Extract text and metadata from a PDF document by URL. Costs $0.02 per request via x402. Returns extracted text, page count, and document metadata.",
			Price:       "$0.02",
			BaseURL:     "https://pylon-pdf-parse-api.fly.dev",
			Path:        "/parse",
			Method:      http.MethodGet,
			InputSchema: schemaURLOnly("URL of the PDF to parse"),
		},
		{
			ID:          IDOCR,
			Name:        "pylon_ocr",
			Description: "Extract text from an image using OCR (Optical Character Recognition). Costs $0.03 per request via x402. Supports multiple languages. Pass an image URL.",
			Price:       "$0.03",
			BaseURL:     "https://pylon-ocr-api.fly.dev",
			Path:        "/ocr",
			Method:      http.MethodGet,
			InputSchema: schemaOCR(),
		},
		{
			ID:          IDEmailValidate,
			Name:        "pylon_email_validate",
			Description: "Validate an email address: checks format, MX records, and SMTP deliverability. Costs $0.005 per request via x402. Returns whether the email is valid, deliverable, and if it's a disposable address.",
			Price:       "$0.005",
			BaseURL:     "https://pylon-email-validate-api.fly.dev",
			Path:        "/validate",
			Method:      http.MethodGet,
			InputSchema: schemaEmail(),
		},
		{
			ID:          IDDomainIntel,
			Name:        "pylon_domain_intel",
			Description: "Get intelligence on a domain: WHOIS data, DNS records, SSL certificate info, and technology stack detection. Costs $0.01 per request via x402.",
			Price:       "$0.01",
			BaseURL:     "https://pylon-domain-intel-api.fly.dev",
			Path:        "/intel",
			Method:      http.MethodGet,
			InputSchema: schemaDomain(),
		},
		{
			ID:          IDQRCode,
			Name:        "pylon_qr_code",
			Description: "Generate a QR code image from text or a URL. Costs $0.005 per request via x402. Returns PNG image.",
			Price:       "$0.005",
			BaseURL:     "https://pylon-qr-code-api.fly.dev",
			Path:        "/generate",
			Method:      http.MethodGet,
			InputSchema: schemaQRCode(),
		},
		{
			ID:          IDImageResize,
			Name:        "pylon_image_resize",
			Description: "Resize an image by URL to the given dimensions. Costs $0.005 per request via x402. Returns the resized image.",
			Price:       "$0.005",
			BaseURL:     "https://pylon-image-resize-api.fly.dev",
			Path:        "/resize",
			Method:      http.MethodGet,
			InputSchema: schemaImageResize(),
		},
		{
			ID:          IDMDToPDF,
			Name:        "pylon_md_to_pdf",
			Description: "Convert Markdown text to a PDF document. Costs $0.01 per request via x402. Returns the rendered PDF.",
			Price:       "$0.01",
			BaseURL:     "https://pylon-md-to-pdf-api.fly.dev",
			Path:        "/convert",
			Method:      http.MethodPost,
			InputSchema: schemaMarkdown(),
		},
		{
			ID:          IDHTMLToPDF,
			Name:        "pylon_html_to_pdf",
			Description: "Convert an HTML document to a PDF. Costs $0.01 per request via x402. Returns the rendered PDF.",
			Price:       "$0.01",
			BaseURL:     "https://pylon-html-to-pdf-api.fly.dev",
			Path:        "/convert",
			Method:      http.MethodPost,
			InputSchema: schemaHTML(),
		},
		{
			ID:          IDSearch,
			Name:        "pylon_search",
			Description: "Search the web using Pylon. Costs $0.01 per request via x402. Provide search query terms, e.g. 'AI news 2025'.",
			Price:       "$0.01",
			Method:      http.MethodPost,
			Gateway:     true,
			WireName:    "search",
			InputSchema: schemaSearch(),
		},
		{
			ID:          IDWebScrape,
			Name:        "pylon_scrape",
			Description: "Scrape and extract content from web pages using Pylon. Costs $0.01 per request via x402. Provide the URL to scrape.",
			Price:       "$0.01",
			Method:      http.MethodPost,
			Gateway:     true,
			WireName:    "web-scrape",
			InputSchema: schemaURLOnly("URL of the webpage to scrape"),
		},
	}
}

func schemaScreenshot() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"url":       map[string]any{"type": "string", "description": "URL of the webpage to screenshot"},
			"width":     map[string]any{"type": "integer", "description": "Viewport width in pixels", "default": 1280},
			"height":    map[string]any{"type": "integer", "description": "Viewport height in pixels", "default": 720},
			"full_page": map[string]any{"type": "boolean", "description": "Capture full scrollable page", "default": false},
			"format":    map[string]any{"type": "string", "description": "Image format: png or jpeg", "default": "png"},
		},
		"required": []string{"url"},
	}
}

func schemaURLOnly(desc string) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"url": map[string]any{"type": "string", "description": desc},
		},
		"required": []string{"url"},
	}
}

func schemaOCR() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"url":      map[string]any{"type": "string", "description": "URL of the image to OCR"},
			"language": map[string]any{"type": "string", "description": "OCR language (e.g., eng, spa, fra)", "default": "eng"},
		},
		"required": []string{"url"},
	}
}

func schemaEmail() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"email": map[string]any{"type": "string", "description": "Email address to validate"},
		},
		"required": []string{"email"},
	}
}

func schemaDomain() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"domain": map[string]any{"type": "string", "description": "Domain name to analyze (e.g., example.com)"},
		},
		"required": []string{"domain"},
	}
}

func schemaQRCode() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"data": map[string]any{"type": "string", "description": "Data to encode in the QR code (URL, text, etc.)"},
			"size": map[string]any{"type": "integer", "description": "QR code size in pixels", "default": 300},
		},
		"required": []string{"data"},
	}
}

func schemaImageResize() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"url":    map[string]any{"type": "string", "description": "URL of the image to resize"},
			"width":  map[string]any{"type": "integer", "description": "Target width in pixels"},
			"height": map[string]any{"type": "integer", "description": "Target height in pixels"},
		},
		"required": []string{"url", "width", "height"},
	}
}

func schemaMarkdown() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"markdown": map[string]any{"type": "string", "description": "Markdown source to convert"},
		},
		"required": []string{"markdown"},
	}
}

func schemaHTML() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"html": map[string]any{"type": "string", "description": "HTML document to convert"},
		},
		"required": []string{"html"},
	}
}

func schemaSearch() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{"type": "string", "description": "Search query terms"},
		},
		"required": []string{"query"},
	}
}
