package tools

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/pylon-apis/pylon-go/pkg/pylon"
)

func TestFromPayloadJSON(t *testing.T) {
	res := FromPayload("pylon_email_validate", &pylon.JSONPayload{
		Value: map[string]any{"valid": true},
	})
	if res.Status != ResultSuccess {
		t.Fatalf("Status = %q", res.Status)
	}
	if !strings.Contains(res.Text(), `"valid": true`) {
		t.Fatalf("Text = %q", res.Text())
	}
	if res.Details["valid"] != true {
		t.Fatalf("Details = %#v", res.Details)
	}
}

func TestFromPayloadJSONNonMapValue(t *testing.T) {
	res := FromPayload("pylon_search", &pylon.JSONPayload{Value: []any{"a", "b"}})
	if res.Status != ResultSuccess {
		t.Fatalf("Status = %q", res.Status)
	}
	if _, ok := res.Details["value"]; !ok {
		t.Fatalf("non-map payloads should nest under value: %#v", res.Details)
	}
}

func TestFromPayloadPaymentRequired(t *testing.T) {
	res := FromPayload("pylon_screenshot", &pylon.PaymentRequired{
		Message:        "pay first",
		PaymentDetails: map[string]any{"price": "$0.01"},
	})
	if res.Status != ResultPaymentRequired {
		t.Fatalf("Status = %q", res.Status)
	}
	if res.Error != "" {
		t.Fatalf("payment required is not an error, got %q", res.Error)
	}
	if res.Details["error"] != "payment_required" {
		t.Fatalf("Details = %#v", res.Details)
	}
	if res.Text() != "pay first" {
		t.Fatalf("Text = %q", res.Text())
	}
}

func TestFromPayloadImageBecomesImageBlock(t *testing.T) {
	data := base64.StdEncoding.EncodeToString([]byte("pngbytes"))
	res := FromPayload("pylon_screenshot", &pylon.BinaryPayload{
		ContentType: "image/png",
		Base64Data:  data,
		SizeBytes:   8,
	})
	if res.Status != ResultSuccess {
		t.Fatalf("Status = %q", res.Status)
	}
	if len(res.Content) != 1 || res.Content[0].Type != "image" {
		t.Fatalf("Content = %#v", res.Content)
	}
	if res.Content[0].MimeType != "image/png" || res.Content[0].Data != data {
		t.Fatalf("image block = %#v", res.Content[0])
	}
	if res.Details["size_bytes"] != 8 {
		t.Fatalf("Details = %#v", res.Details)
	}
}

func TestFromPayloadPDFBecomesTextSummary(t *testing.T) {
	res := FromPayload("pylon_md_to_pdf", &pylon.BinaryPayload{
		ContentType: "application/pdf",
		Base64Data:  "cGRm",
		SizeBytes:   3,
	})
	if len(res.Content) != 1 || res.Content[0].Type != "text" {
		t.Fatalf("Content = %#v", res.Content)
	}
	if !strings.Contains(res.Content[0].Text, "application/pdf") {
		t.Fatalf("summary = %q", res.Content[0].Text)
	}
	if res.Details["data_base64"] != "cGRm" {
		t.Fatalf("Details = %#v", res.Details)
	}
}

func TestFromPayloadText(t *testing.T) {
	res := FromPayload("pylon_scrape", &pylon.TextPayload{Text: "plain body"})
	if res.Status != ResultSuccess || res.Text() != "plain body" {
		t.Fatalf("res = %#v", res)
	}
}

func TestErrorResultShape(t *testing.T) {
	res := ErrorResultf("pylon_ocr", "invalid arguments: %s", "url missing")
	if res.Status != ResultError {
		t.Fatalf("Status = %q", res.Status)
	}
	if res.Error != "invalid arguments: url missing" {
		t.Fatalf("Error = %q", res.Error)
	}
	if res.Details["tool"] != "pylon_ocr" {
		t.Fatalf("Details = %#v", res.Details)
	}
	if res.Text() != "invalid arguments: url missing" {
		t.Fatalf("Text = %q", res.Text())
	}
}
