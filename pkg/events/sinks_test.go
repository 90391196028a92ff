package events

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSinksFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadRegistryParsesYAML(t *testing.T) {
	path := writeSinksFile(t, "sinks.yaml", `
sinks:
  - id: local-log
    type: log
  - id: audit
    type: http
    enabled: false
    http:
      url: https://example.com/events
      headers:
        X-Source: pylon
  - id: queue
    type: sqs
    sqs:
      uri: https://sqs.example.com/q
      region: us-east-1
`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if len(reg.All()) != 3 {
		t.Fatalf("expected 3 sinks, got %d", len(reg.All()))
	}

	enabled := reg.Enabled()
	if len(enabled) != 2 {
		t.Fatalf("expected 2 enabled sinks, got %d", len(enabled))
	}
	for _, cfg := range enabled {
		if cfg.ID == "audit" {
			t.Fatalf("disabled sink was returned as enabled")
		}
	}

	audit, ok := reg.ByID("audit")
	if !ok {
		t.Fatalf("audit sink missing")
	}
	if audit.HTTP.Method != "POST" {
		t.Fatalf("default method = %q", audit.HTTP.Method)
	}
	if audit.HTTP.TimeoutSeconds != 5 {
		t.Fatalf("default timeout = %d", audit.HTTP.TimeoutSeconds)
	}
}

func TestLoadRegistryValidation(t *testing.T) {
	cases := []struct {
		name    string
		content string
		errPart string
	}{
		{
			"missing id",
			"sinks:\n  - type: log\n",
			"id is required",
		},
		{
			"missing type",
			"sinks:\n  - id: a\n",
			"type is required",
		},
		{
			"http without url",
			"sinks:\n  - id: a\n    type: http\n    http:\n      method: POST\n",
			"http.url is required",
		},
		{
			"sqs without region",
			"sinks:\n  - id: a\n    type: sqs\n    sqs:\n      uri: https://q\n",
			"sqs.region is required",
		},
		{
			"sns without topic",
			"sinks:\n  - id: a\n    type: sns\n    sns:\n      region: us-east-1\n",
			"sns.topic_arn is required",
		},
		{
			"pubsub without project",
			"sinks:\n  - id: a\n    type: gcp_pubsub\n    pubsub:\n      topic: t\n",
			"pubsub.project_id is required",
		},
		{
			"duplicate ids",
			"sinks:\n  - id: a\n    type: log\n  - id: a\n    type: log\n",
			"duplicate sink id",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeSinksFile(t, "sinks.yaml", tc.content)
			_, err := LoadRegistry(path)
			if err == nil || !strings.Contains(err.Error(), tc.errPart) {
				t.Fatalf("expected error containing %q, got %v", tc.errPart, err)
			}
		})
	}
}

func TestLoadRegistryEmptyPath(t *testing.T) {
	if _, err := LoadRegistry(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestSinkConfigEnabledDefaultsTrue(t *testing.T) {
	cfg := SinkConfig{ID: "a", Type: TypeLog}
	if !cfg.EnabledValue() {
		t.Fatalf("enabled should default to true")
	}
	off := false
	cfg.Enabled = &off
	if cfg.EnabledValue() {
		t.Fatalf("explicit false should win")
	}
}
