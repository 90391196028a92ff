package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRestyClientGetSendsQueryAndHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("domain"); got != "example.com" {
			t.Fatalf("query domain = %q", got)
		}
		if got := r.Header.Get("X-Test"); got != "1" {
			t.Fatalf("header X-Test = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte(`{"a":1}`))
	}))
	defer srv.Close()

	client := NewRestyClient(2 * time.Second)
	resp, err := client.Get(context.Background(), srv.URL,
		map[string]string{"domain": "example.com"},
		map[string]string{"X-Test": "1"})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.StatusCode() != http.StatusTeapot {
		t.Fatalf("StatusCode = %d", resp.StatusCode())
	}
	if resp.ContentType() != "application/json" {
		t.Fatalf("ContentType = %q", resp.ContentType())
	}
	if string(resp.Body()) != `{"a":1}` {
		t.Fatalf("Body = %q", resp.Body())
	}
}

func TestRestyClientPostJSON(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewRestyClient(2 * time.Second)
	resp, err := client.PostJSON(context.Background(), srv.URL, map[string]any{"html": "<p>x</p>"}, nil)
	if err != nil {
		t.Fatalf("PostJSON: %v", err)
	}
	if resp.StatusCode() != http.StatusOK {
		t.Fatalf("StatusCode = %d", resp.StatusCode())
	}
	if body["html"] != "<p>x</p>" {
		t.Fatalf("body = %#v", body)
	}
}
