package capabilities

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Registry holds the loaded capability catalog: the built-in set, optionally
// overlaid by entries from a YAML/JSON file.
type Registry struct {
	mu   sync.RWMutex
	caps []Capability
	idx  map[string]Capability
}

// registryFile is the structure of the overlay file.
type registryFile struct {
	Capabilities []Capability `json:"capabilities" yaml:"capabilities"`
}

// NewRegistry builds a registry containing only the built-in catalog.
func NewRegistry() *Registry {
	reg := &Registry{idx: make(map[string]Capability)}
	for _, c := range Builtins() {
		reg.caps = append(reg.caps, c)
		reg.idx[c.ID] = c
	}
	return reg
}

// LoadRegistry builds a registry from the built-ins plus an overlay file.
// File entries with a known id override that capability's endpoint fields;
// entries with new ids are appended as gateway capabilities.
func LoadRegistry(path string) (*Registry, error) {
	reg := NewRegistry()

	path = strings.TrimSpace(path)
	if path == "" {
		return reg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open capabilities file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read capabilities file: %w", err)
	}

	overlay, err := parseRegistryFile(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(overlay.Capabilities) == 0 {
		return nil, errors.New("capabilities file contains no capabilities entries")
	}

	seen := make(map[string]bool, len(overlay.Capabilities))
	for i := range overlay.Capabilities {
		entry := sanitizeCapability(overlay.Capabilities[i])
		if entry.ID == "" {
			return nil, fmt.Errorf("capabilities[%d]: id is required", i)
		}
		if seen[entry.ID] {
			return nil, fmt.Errorf("duplicate capability id %q", entry.ID)
		}
		seen[entry.ID] = true

		if err := reg.apply(entry); err != nil {
			return nil, fmt.Errorf("capabilities[%d]: %w", i, err)
		}
	}

	return reg, nil
}

// apply overlays one file entry onto the registry.
func (r *Registry) apply(entry Capability) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if base, ok := r.idx[entry.ID]; ok {
		merged := mergeCapability(base, entry)
		if err := validateCapability(merged); err != nil {
			return err
		}
		r.idx[merged.ID] = merged
		for i := range r.caps {
			if r.caps[i].ID == merged.ID {
				r.caps[i] = merged
			}
		}
		return nil
	}

	// Unknown ids become gateway capabilities; there is no dedicated host to
	// derive an endpoint from.
	entry.Gateway = true
	if entry.WireName == "" {
		entry.WireName = strings.ReplaceAll(entry.ID, "_", "-")
	}
	if entry.Method == "" {
		entry.Method = http.MethodPost
	}
	if entry.InputSchema == nil {
		entry.InputSchema = map[string]any{"type": "object", "properties": map[string]any{}}
	}
	if err := validateCapability(entry); err != nil {
		return err
	}
	r.caps = append(r.caps, entry)
	r.idx[entry.ID] = entry
	return nil
}

// parseRegistryFile attempts to decode the overlay file content.
func parseRegistryFile(data []byte, ext string) (registryFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: func(b []byte, v any) error { return yaml.Unmarshal(b, v) }},
		{name: "yaml", ext: ".yml", fn: func(b []byte, v any) error { return yaml.Unmarshal(b, v) }},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var out registryFile
		if err := d.fn(data, &out); err == nil {
			return out, nil
		}
	}

	return registryFile{}, errors.New("capabilities file format not recognized (expected YAML or JSON)")
}

// mergeCapability overlays the non-empty fields of entry onto base.
func mergeCapability(base, entry Capability) Capability {
	out := base
	if entry.Name != "" {
		out.Name = entry.Name
	}
	if entry.Description != "" {
		out.Description = entry.Description
	}
	if entry.Price != "" {
		out.Price = entry.Price
	}
	if entry.BaseURL != "" {
		out.BaseURL = entry.BaseURL
	}
	if entry.Path != "" {
		out.Path = entry.Path
	}
	if entry.Method != "" {
		out.Method = entry.Method
	}
	if entry.TimeoutSeconds > 0 {
		out.TimeoutSeconds = entry.TimeoutSeconds
	}
	return out
}

func sanitizeCapability(c Capability) Capability {
	c.ID = strings.TrimSpace(c.ID)
	c.Name = strings.TrimSpace(c.Name)
	c.Description = strings.TrimSpace(c.Description)
	c.Price = strings.TrimSpace(c.Price)
	c.BaseURL = strings.TrimSpace(c.BaseURL)
	c.Path = strings.TrimSpace(c.Path)
	c.Method = strings.ToUpper(strings.TrimSpace(c.Method))
	c.WireName = strings.TrimSpace(c.WireName)
	return c
}

func validateCapability(c Capability) error {
	if c.ID == "" {
		return errors.New("id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("name is required for capability %q", c.ID)
	}
	if c.Method != http.MethodGet && c.Method != http.MethodPost {
		return fmt.Errorf("method must be GET or POST for capability %q", c.ID)
	}
	if !c.Gateway {
		if c.BaseURL == "" {
			return fmt.Errorf("base_url is required for capability %q", c.ID)
		}
		if !strings.HasPrefix(c.Path, "/") {
			return fmt.Errorf("path must start with / for capability %q", c.ID)
		}
	}
	return nil
}

// All returns a copy of the loaded catalog.
func (r *Registry) All() []Capability {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Capability, len(r.caps))
	copy(out, r.caps)
	return out
}

// ByID returns the capability entry for the given id, if present.
func (r *Registry) ByID(id string) (Capability, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Capability{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.idx[id]
	return c, ok
}
