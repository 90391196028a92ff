package pylon

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"
)

func TestCallNormalizesJSONResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Fatalf("expected GET, got %s", r.Method)
		}
		if got := r.URL.Query().Get("email"); got != "a@b.com" {
			t.Fatalf("query email = %q", got)
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write([]byte(`{"valid": true, "score": 0.9}`))
	}))
	defer srv.Close()

	client := NewClient(5 * time.Second)
	res, err := client.Call(context.Background(), Request{
		BaseURL: srv.URL,
		Path:    "/validate",
		Method:  http.MethodGet,
		Query:   map[string]string{"email": "a@b.com"},
	})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}

	payload, ok := res.(*JSONPayload)
	if !ok {
		t.Fatalf("expected JSONPayload, got %T", res)
	}
	want := map[string]any{"valid": true, "score": 0.9}
	if !reflect.DeepEqual(payload.Value, want) {
		t.Fatalf("Value = %#v, want %#v", payload.Value, want)
	}
}

func TestCallNormalizesImageResponse(t *testing.T) {
	raw := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(raw)
	}))
	defer srv.Close()

	client := NewClient(5 * time.Second)
	res, err := client.Call(context.Background(), Request{
		BaseURL: srv.URL,
		Path:    "/screenshot",
		Method:  http.MethodGet,
	})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}

	bin, ok := res.(*BinaryPayload)
	if !ok {
		t.Fatalf("expected BinaryPayload, got %T", res)
	}
	if bin.ContentType != "image/png" {
		t.Fatalf("ContentType = %q", bin.ContentType)
	}
	if bin.SizeBytes != len(raw) {
		t.Fatalf("SizeBytes = %d, want %d", bin.SizeBytes, len(raw))
	}
	decoded, err := base64.StdEncoding.DecodeString(bin.Base64Data)
	if err != nil {
		t.Fatalf("decode base64: %v", err)
	}
	if !reflect.DeepEqual(decoded, raw) {
		t.Fatalf("decoded body does not round-trip")
	}
}

func TestCallNormalizesPDFResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.7 fake"))
	}))
	defer srv.Close()

	client := NewClient(5 * time.Second)
	res, err := client.Call(context.Background(), Request{
		BaseURL: srv.URL,
		Path:    "/convert",
		Method:  http.MethodPost,
		Body:    map[string]any{"markdown": "# hi"},
	})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if _, ok := res.(*BinaryPayload); !ok {
		t.Fatalf("expected BinaryPayload for PDF, got %T", res)
	}
}

func TestCallFallsBackToText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("hello"))
	}))
	defer srv.Close()

	client := NewClient(5 * time.Second)
	res, err := client.Call(context.Background(), Request{
		BaseURL: srv.URL,
		Path:    "/",
		Method:  http.MethodGet,
	})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	text, ok := res.(*TextPayload)
	if !ok {
		t.Fatalf("expected TextPayload, got %T", res)
	}
	if text.Text != "hello" {
		t.Fatalf("Text = %q", text.Text)
	}
}

func TestCallPaymentRequiredWithJSONDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"price": "$0.01", "network": "base"}`))
	}))
	defer srv.Close()

	client := NewClient(5 * time.Second)
	res, err := client.Call(context.Background(), Request{
		BaseURL: srv.URL,
		Path:    "/screenshot",
		Method:  http.MethodGet,
	})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}

	pr, ok := res.(*PaymentRequired)
	if !ok {
		t.Fatalf("expected PaymentRequired, got %T", res)
	}
	if pr.Message != paymentRequiredMessage {
		t.Fatalf("Message = %q", pr.Message)
	}
	details, ok := pr.PaymentDetails.(map[string]any)
	if !ok {
		t.Fatalf("PaymentDetails not a map: %#v", pr.PaymentDetails)
	}
	if details["price"] != "$0.01" {
		t.Fatalf("price detail = %v", details["price"])
	}
}

// A 402 wins over content-type routing even when the body is an image type.
func TestCallPaymentRequiredTakesPrecedence(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte("pay up"))
	}))
	defer srv.Close()

	client := NewClient(5 * time.Second)
	res, err := client.Call(context.Background(), Request{
		BaseURL: srv.URL,
		Path:    "/screenshot",
		Method:  http.MethodGet,
	})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	pr, ok := res.(*PaymentRequired)
	if !ok {
		t.Fatalf("expected PaymentRequired, got %T", res)
	}
	if pr.PaymentDetails != "pay up" {
		t.Fatalf("PaymentDetails = %#v, want raw text", pr.PaymentDetails)
	}
}

func TestCallPaymentRequiredMalformedJSONIsDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	client := NewClient(5 * time.Second)
	_, err := client.Call(context.Background(), Request{
		BaseURL: srv.URL,
		Path:    "/x",
		Method:  http.MethodGet,
	})
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if KindOf(err) != ErrDecode {
		t.Fatalf("KindOf = %q, want %q", KindOf(err), ErrDecode)
	}
}

func TestCallMalformedJSONBodyIsDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("{{{"))
	}))
	defer srv.Close()

	client := NewClient(5 * time.Second)
	_, err := client.Call(context.Background(), Request{
		BaseURL: srv.URL,
		Path:    "/x",
		Method:  http.MethodGet,
	})
	if KindOf(err) != ErrDecode {
		t.Fatalf("KindOf = %q, want %q (err=%v)", KindOf(err), ErrDecode, err)
	}
}

func TestCallTransportErrorNoRetry(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		hits++
	}))
	srv.Close() // connection refused from here on

	client := NewClient(2 * time.Second)
	_, err := client.Call(context.Background(), Request{
		BaseURL: srv.URL,
		Path:    "/x",
		Method:  http.MethodGet,
	})
	if err == nil {
		t.Fatalf("expected transport error")
	}
	if KindOf(err) != ErrTransport {
		t.Fatalf("KindOf = %q, want %q", KindOf(err), ErrTransport)
	}
	if hits != 0 {
		t.Fatalf("server hit %d times after close", hits)
	}
}

// A request carrying its own budget must outlive the client default; the
// default is not a transport ceiling.
func TestCallRequestTimeoutOverridesClientDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	client := NewClient(100 * time.Millisecond)
	res, err := client.Call(context.Background(), Request{
		BaseURL: srv.URL,
		Path:    "/slow",
		Method:  http.MethodGet,
		Timeout: 2 * time.Second,
	})
	if err != nil {
		t.Fatalf("Call with explicit budget: %v", err)
	}
	if _, ok := res.(*JSONPayload); !ok {
		t.Fatalf("expected JSONPayload, got %T", res)
	}
}

func TestCallDefaultTimeoutAppliesWithoutRequestBudget(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(50 * time.Millisecond)
	_, err := client.Call(context.Background(), Request{
		BaseURL: srv.URL,
		Path:    "/slow",
		Method:  http.MethodGet,
	})
	if err == nil {
		t.Fatalf("expected timeout error")
	}
	if KindOf(err) != ErrTransport {
		t.Fatalf("KindOf = %q, want %q", KindOf(err), ErrTransport)
	}
}

func TestCallValidatesBeforeNetwork(t *testing.T) {
	client := NewClient(time.Second)

	cases := []struct {
		name string
		req  Request
	}{
		{"empty base url", Request{Method: http.MethodGet}},
		{"bad method", Request{BaseURL: "http://x", Method: http.MethodDelete}},
		{"query and body", Request{
			BaseURL: "http://x",
			Method:  http.MethodPost,
			Query:   map[string]string{"a": "b"},
			Body:    map[string]any{"c": "d"},
		}},
		{"negative timeout", Request{
			BaseURL: "http://x",
			Method:  http.MethodGet,
			Timeout: -time.Second,
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := client.Call(context.Background(), tc.req)
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if KindOf(err) != ErrValidation {
				t.Fatalf("KindOf = %q, want %q", KindOf(err), ErrValidation)
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := transportError("request failed", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to unwrap")
	}
	var pe *Error
	if !errors.As(error(err), &pe) {
		t.Fatalf("errors.As failed")
	}
}

func TestKindOfForeignError(t *testing.T) {
	if got := KindOf(errors.New("plain")); got != ErrUnknown {
		t.Fatalf("KindOf = %q, want %q", got, ErrUnknown)
	}
}

func TestCallPostSendsJSONBody(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	client := NewClient(5 * time.Second)
	_, err := client.Call(context.Background(), Request{
		BaseURL: srv.URL,
		Path:    "/convert",
		Method:  http.MethodPost,
		Body:    map[string]any{"markdown": "# title"},
	})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if body["markdown"] != "# title" {
		t.Fatalf("request body = %#v", body)
	}
}
