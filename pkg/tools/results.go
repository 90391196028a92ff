package tools

import (
	"encoding/json"
	"fmt"

	"github.com/pylon-apis/pylon-go/pkg/pylon"
)

// JSONResult creates a success result carrying the payload as pretty JSON
// text plus structured details.
func JSONResult(payload any) *Result {
	return &Result{
		Status:  ResultSuccess,
		Content: []ContentBlock{{Type: "text", Text: mustJSON(payload)}},
		Details: toMap(payload),
	}
}

// TextResult creates a simple text result.
func TextResult(text string) *Result {
	return &Result{
		Status:  ResultSuccess,
		Content: []ContentBlock{{Type: "text", Text: text}},
	}
}

// ErrorResult creates an error result. Errors are returned structured, never
// thrown past the framework boundary.
func ErrorResult(toolName, message string) *Result {
	return &Result{
		Status:  ResultError,
		Content: []ContentBlock{{Type: "text", Text: message}},
		Details: map[string]any{"tool": toolName, "error": message},
		Error:   message,
	}
}

// ErrorResultf creates an error result with a formatted message.
func ErrorResultf(toolName, format string, args ...any) *Result {
	return ErrorResult(toolName, fmt.Sprintf(format, args...))
}

// FromPayload converts a normalized Pylon result into a tool result.
func FromPayload(toolName string, res pylon.Result) *Result {
	switch v := res.(type) {
	case *pylon.PaymentRequired:
		return &Result{
			Status:  ResultPaymentRequired,
			Content: []ContentBlock{{Type: "text", Text: v.Message}},
			Details: map[string]any{
				"error":           "payment_required",
				"message":         v.Message,
				"payment_details": v.PaymentDetails,
			},
		}

	case *pylon.JSONPayload:
		return JSONResult(v.Value)

	case *pylon.BinaryPayload:
		out := &Result{
			Status: ResultSuccess,
			Details: map[string]any{
				"content_type": v.ContentType,
				"data_base64":  v.Base64Data,
				"size_bytes":   v.SizeBytes,
			},
		}
		if isImage(v.ContentType) {
			out.Content = []ContentBlock{{Type: "image", Data: v.Base64Data, MimeType: v.ContentType}}
		} else {
			out.Content = []ContentBlock{{
				Type: "text",
				Text: fmt.Sprintf("binary payload: %s, %d bytes (base64 in details)", v.ContentType, v.SizeBytes),
			}}
		}
		return out

	case *pylon.TextPayload:
		return TextResult(v.Text)

	default:
		return ErrorResultf(toolName, "unexpected result kind %q", res.Kind())
	}
}

func isImage(contentType string) bool {
	return len(contentType) >= 6 && contentType[:6] == "image/"
}

func mustJSON(payload any) string {
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", payload)
	}
	return string(b)
}

func toMap(payload any) map[string]any {
	if m, ok := payload.(map[string]any); ok {
		return m
	}
	return map[string]any{"value": payload}
}
