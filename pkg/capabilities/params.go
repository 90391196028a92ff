package capabilities

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Typed parameter structs, one per built-in capability. Each is decoded from
// the framework's schema-validated argument map, then validated again at the
// boundary so an invalid call never reaches the network.

// Params converts a capability input into the wire shape of the call.
type Params interface {
	Validate() error
	// Query returns GET query parameters; nil for body-carrying capabilities.
	Query() map[string]string
	// Body returns the JSON body; nil for query-carrying capabilities.
	Body() map[string]any
}

// ScreenshotParams captures a webpage screenshot request.
type ScreenshotParams struct {
	URL      string
	Width    int
	Height   int
	FullPage bool
	Format   string
}

func (p *ScreenshotParams) applyDefaults() {
	if p.Width == 0 {
		p.Width = 1280
	}
	if p.Height == 0 {
		p.Height = 720
	}
	if p.Format == "" {
		p.Format = "png"
	}
}

func (p *ScreenshotParams) Validate() error {
	if strings.TrimSpace(p.URL) == "" {
		return errors.New("url is required")
	}
	if p.Width <= 0 || p.Height <= 0 {
		return errors.New("width and height must be positive")
	}
	if p.Format != "png" && p.Format != "jpeg" {
		return fmt.Errorf("unsupported format %q (want png or jpeg)", p.Format)
	}
	return nil
}

func (p *ScreenshotParams) Query() map[string]string {
	return map[string]string{
		"url":      p.URL,
		"width":    strconv.Itoa(p.Width),
		"height":   strconv.Itoa(p.Height),
		"fullPage": strconv.FormatBool(p.FullPage),
		"format":   p.Format,
	}
}

func (p *ScreenshotParams) Body() map[string]any { return nil }

// PDFParseParams identifies a PDF document to parse.
type PDFParseParams struct {
	URL string
}

func (p *PDFParseParams) Validate() error {
	if strings.TrimSpace(p.URL) == "" {
		return errors.New("url is required")
	}
	return nil
}

func (p *PDFParseParams) Query() map[string]string { return map[string]string{"url": p.URL} }
func (p *PDFParseParams) Body() map[string]any     { return nil }

// OCRParams identifies an image to run OCR over.
type OCRParams struct {
	URL      string
	Language string
}

func (p *OCRParams) applyDefaults() {
	if p.Language == "" {
		p.Language = "eng"
	}
}

func (p *OCRParams) Validate() error {
	if strings.TrimSpace(p.URL) == "" {
		return errors.New("url is required")
	}
	return nil
}

func (p *OCRParams) Query() map[string]string {
	return map[string]string{"url": p.URL, "language": p.Language}
}

func (p *OCRParams) Body() map[string]any { return nil }

// EmailValidateParams carries the address to validate.
type EmailValidateParams struct {
	Email string
}

func (p *EmailValidateParams) Validate() error {
	email := strings.TrimSpace(p.Email)
	if email == "" {
		return errors.New("email is required")
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%q does not look like an email address", email)
	}
	return nil
}

func (p *EmailValidateParams) Query() map[string]string { return map[string]string{"email": p.Email} }
func (p *EmailValidateParams) Body() map[string]any     { return nil }

// DomainIntelParams carries the domain to analyze.
type DomainIntelParams struct {
	Domain string
}

func (p *DomainIntelParams) Validate() error {
	if strings.TrimSpace(p.Domain) == "" {
		return errors.New("domain is required")
	}
	return nil
}

func (p *DomainIntelParams) Query() map[string]string { return map[string]string{"domain": p.Domain} }
func (p *DomainIntelParams) Body() map[string]any     { return nil }

// QRCodeParams carries the payload to encode.
type QRCodeParams struct {
	Data string
	Size int
}

func (p *QRCodeParams) applyDefaults() {
	if p.Size == 0 {
		p.Size = 300
	}
}

func (p *QRCodeParams) Validate() error {
	if strings.TrimSpace(p.Data) == "" {
		return errors.New("data is required")
	}
	if p.Size <= 0 {
		return errors.New("size must be positive")
	}
	return nil
}

func (p *QRCodeParams) Query() map[string]string {
	return map[string]string{"data": p.Data, "size": strconv.Itoa(p.Size)}
}

func (p *QRCodeParams) Body() map[string]any { return nil }

// ImageResizeParams describes an image resize request.
type ImageResizeParams struct {
	URL    string
	Width  int
	Height int
}

func (p *ImageResizeParams) Validate() error {
	if strings.TrimSpace(p.URL) == "" {
		return errors.New("url is required")
	}
	if p.Width <= 0 || p.Height <= 0 {
		return errors.New("width and height must be positive")
	}
	return nil
}

func (p *ImageResizeParams) Query() map[string]string {
	return map[string]string{
		"url":    p.URL,
		"width":  strconv.Itoa(p.Width),
		"height": strconv.Itoa(p.Height),
	}
}

func (p *ImageResizeParams) Body() map[string]any { return nil }

// MDToPDFParams carries Markdown source to render.
type MDToPDFParams struct {
	Markdown string
}

func (p *MDToPDFParams) Validate() error {
	if strings.TrimSpace(p.Markdown) == "" {
		return errors.New("markdown is required")
	}
	return nil
}

func (p *MDToPDFParams) Query() map[string]string { return nil }
func (p *MDToPDFParams) Body() map[string]any     { return map[string]any{"markdown": p.Markdown} }

// HTMLToPDFParams carries an HTML document to render.
type HTMLToPDFParams struct {
	HTML string
}

func (p *HTMLToPDFParams) Validate() error {
	if strings.TrimSpace(p.HTML) == "" {
		return errors.New("html is required")
	}
	return nil
}

func (p *HTMLToPDFParams) Query() map[string]string { return nil }
func (p *HTMLToPDFParams) Body() map[string]any     { return map[string]any{"html": p.HTML} }

// SearchParams carries web search terms (gateway capability).
type SearchParams struct {
	Terms string
}

func (p *SearchParams) Validate() error {
	if strings.TrimSpace(p.Terms) == "" {
		return errors.New("query is required")
	}
	return nil
}

func (p *SearchParams) Query() map[string]string { return nil }
func (p *SearchParams) Body() map[string]any     { return map[string]any{"query": p.Terms} }

// WebScrapeParams identifies a webpage to scrape (gateway capability).
type WebScrapeParams struct {
	URL string
}

func (p *WebScrapeParams) Validate() error {
	if strings.TrimSpace(p.URL) == "" {
		return errors.New("url is required")
	}
	return nil
}

func (p *WebScrapeParams) Query() map[string]string { return nil }
func (p *WebScrapeParams) Body() map[string]any     { return map[string]any{"url": p.URL} }

// ParseParams decodes and validates the argument map for the given capability
// id. It returns a validation error before any network I/O happens.
func ParseParams(id string, args map[string]any) (Params, error) {
	var (
		p   Params
		err error
	)

	switch id {
	case IDScreenshot:
		sp := &ScreenshotParams{}
		sp.URL, err = readString(args, "url", true)
		if err == nil {
			sp.Width, err = readInt(args, "width")
		}
		if err == nil {
			sp.Height, err = readInt(args, "height")
		}
		if err == nil {
			sp.FullPage, err = readBool(args, "full_page")
		}
		if err == nil {
			sp.Format, err = readString(args, "format", false)
		}
		sp.applyDefaults()
		p = sp
	case IDPDFParse:
		pp := &PDFParseParams{}
		pp.URL, err = readString(args, "url", true)
		p = pp
	case IDOCR:
		op := &OCRParams{}
		op.URL, err = readString(args, "url", true)
		if err == nil {
			op.Language, err = readString(args, "language", false)
		}
		op.applyDefaults()
		p = op
	case IDEmailValidate:
		ep := &EmailValidateParams{}
		ep.Email, err = readString(args, "email", true)
		p = ep
	case IDDomainIntel:
		dp := &DomainIntelParams{}
		dp.Domain, err = readString(args, "domain", true)
		p = dp
	case IDQRCode:
		qp := &QRCodeParams{}
		qp.Data, err = readString(args, "data", true)
		if err == nil {
			qp.Size, err = readInt(args, "size")
		}
		qp.applyDefaults()
		p = qp
	case IDImageResize:
		ip := &ImageResizeParams{}
		ip.URL, err = readString(args, "url", true)
		if err == nil {
			ip.Width, err = readInt(args, "width")
		}
		if err == nil {
			ip.Height, err = readInt(args, "height")
		}
		p = ip
	case IDMDToPDF:
		mp := &MDToPDFParams{}
		mp.Markdown, err = readString(args, "markdown", true)
		p = mp
	case IDHTMLToPDF:
		hp := &HTMLToPDFParams{}
		hp.HTML, err = readString(args, "html", true)
		p = hp
	case IDSearch:
		sp := &SearchParams{}
		sp.Terms, err = readString(args, "query", true)
		p = sp
	case IDWebScrape:
		wp := &WebScrapeParams{}
		wp.URL, err = readString(args, "url", true)
		p = wp
	default:
		return nil, fmt.Errorf("no typed params for capability %q", id)
	}

	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// readString extracts a string argument, failing if required and absent.
func readString(args map[string]any, key string, required bool) (string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		if required {
			return "", fmt.Errorf("missing required argument %q", key)
		}
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q must be a string", key)
	}
	return s, nil
}

// readInt extracts an integer argument. JSON numbers arrive as float64.
func readInt(args map[string]any, key string) (int, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return 0, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("argument %q must be an integer", key)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("argument %q must be an integer", key)
	}
}

// readBool extracts a boolean argument.
func readBool(args map[string]any, key string) (bool, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("argument %q must be a boolean", key)
	}
	return b, nil
}
