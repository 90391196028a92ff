package journal

import (
	"fmt"
	"strings"
	"time"
)

// Package journal records per-invocation spend metadata so operators can
// inspect accrued x402 charges. It never stores response payloads and never
// influences call behavior.

// Entry is one recorded invocation.
type Entry struct {
	CapabilityID string    `json:"capability_id"`
	Outcome      string    `json:"outcome"`
	Price        string    `json:"price,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Journal persists invocation entries.
type Journal interface {
	Close() error
	Record(entry Entry) error
	// Recent returns up to limit entries, newest first.
	Recent(limit int) ([]Entry, error)
}

// Options controls retention characteristics for concrete journal implementations.
type Options struct {
	EntryTTL        time.Duration
	CleanupInterval time.Duration
}

const (
	defaultEntryTTL        = 30 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// New creates the configured journal backend.
func New(typ, path string, opts Options) (Journal, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopJournal{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt journal requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported journal type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.EntryTTL <= 0 {
		opts.EntryTTL = defaultEntryTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopJournal struct{}

func (noopJournal) Close() error              { return nil }
func (noopJournal) Record(Entry) error        { return nil }
func (noopJournal) Recent(int) ([]Entry, error) { return nil, nil }
