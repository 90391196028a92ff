package app

import (
	"context"
	"fmt"
	"time"

	"github.com/pylon-apis/pylon-go/internal/config"
	"github.com/pylon-apis/pylon-go/internal/journal"
	"github.com/pylon-apis/pylon-go/internal/logger"
	"github.com/pylon-apis/pylon-go/pkg/capabilities"
	"github.com/pylon-apis/pylon-go/pkg/events"
	"github.com/pylon-apis/pylon-go/pkg/pylon"
	"github.com/pylon-apis/pylon-go/pkg/tools"
)

// Server is the pylon-go runtime. It wires the capability catalog, the API
// caller, the spend journal, and the invocation event fanout, and exposes the
// resulting tool set over MCP or one-shot CLI calls.
type Server struct {
	cfg     *config.Config
	log     events.Logger
	reg     *capabilities.Registry
	caller  *pylon.Client
	gateway *pylon.Gateway
	jnl     journal.Journal
	fanout  *events.Fanout
	toolset []*tools.Tool
	version string
}

// NewServer builds the runtime from config files.
func NewServer(ctx context.Context, cfg *config.Config, version string) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	log := logger.Funcs{}

	reg, err := capabilities.LoadRegistry(cfg.CapabilitiesFile)
	if err != nil {
		return nil, fmt.Errorf("load capabilities registry: %w", err)
	}
	caps := reg.All()
	capIDs := make([]string, 0, len(caps))
	for _, c := range caps {
		capIDs = append(capIDs, c.ID)
	}
	log.InfoObj("capabilities registry loaded", "capabilities_meta", map[string]any{
		"count": len(capIDs),
		"ids":   capIDs,
	})

	jnl, err := journal.New(cfg.JournalType, cfg.JournalPath, journal.Options{
		EntryTTL:        cfg.JournalTTL,
		CleanupInterval: cfg.JournalCleanupInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("init journal: %w", err)
	}
	log.InfoObj("journal initialized", "journal_config", map[string]any{
		"type": cfg.JournalType,
		"path": cfg.JournalPath,
	})

	fanout, err := buildFanout(ctx, cfg, log)
	if err != nil {
		jnl.Close()
		return nil, err
	}

	caller := pylon.NewClient(cfg.RequestTimeout)
	gateway := pylon.NewGateway(caller, cfg.GatewayURL, cfg.GatewayTimeout)

	s := &Server{
		cfg:     cfg,
		log:     log,
		reg:     reg,
		caller:  caller,
		gateway: gateway,
		jnl:     jnl,
		fanout:  fanout,
		version: version,
	}
	s.toolset = tools.All(reg, s)

	log.InfoObj("tool set assembled", "tools_meta", map[string]any{
		"count":       len(s.toolset),
		"gateway_url": gateway.BaseURL(),
	})
	return s, nil
}

// buildFanout assembles the invocation event sinks from the optional sinks
// file. Without a file only the log sink is active.
func buildFanout(ctx context.Context, cfg *config.Config, log events.Logger) (*events.Fanout, error) {
	registry := events.DefaultRegistry()

	sinkCfgs := []events.SinkConfig{{ID: "default-log", Type: events.TypeLog}}
	if cfg.SinksFile != "" {
		sinkReg, err := events.LoadRegistry(cfg.SinksFile)
		if err != nil {
			return nil, fmt.Errorf("load sinks registry: %w", err)
		}
		sinkCfgs = sinkReg.Enabled()
	}

	pubs, err := events.BuildAll(ctx, registry, sinkCfgs, log)
	if err != nil {
		return nil, fmt.Errorf("build sinks: %w", err)
	}

	summaries := make([]map[string]string, 0, len(sinkCfgs))
	for _, sc := range sinkCfgs {
		summaries = append(summaries, map[string]string{"id": sc.ID, "type": sc.Type})
	}
	log.InfoObj("event sinks loaded", "sinks_meta", map[string]any{
		"count": len(summaries),
		"sinks": summaries,
	})

	return events.NewFanout(pubs), nil
}

// Run invokes a cataloged capability: validated params are converted into the
// wire call, and the outcome is journaled and fanned out as an event.
func (s *Server) Run(ctx context.Context, cap capabilities.Capability, params capabilities.Params) (pylon.Result, error) {
	start := time.Now()

	var (
		res pylon.Result
		err error
	)
	if cap.Gateway {
		wire := cap.WireName
		if wire == "" {
			wire = cap.ID
		}
		res, err = s.gateway.Do(ctx, wire, params.Body())
	} else {
		res, err = s.caller.Call(ctx, pylon.Request{
			BaseURL: cap.BaseURL,
			Path:    cap.Path,
			Method:  cap.Method,
			Query:   params.Query(),
			Body:    params.Body(),
			Timeout: cap.Timeout(),
		})
	}

	s.observe(ctx, cap.Name, cap.ID, cap.Price, res, err, time.Since(start))
	return res, err
}

// RunGateway invokes an arbitrary capability through the unified gateway.
func (s *Server) RunGateway(ctx context.Context, capability string, params map[string]any) (pylon.Result, error) {
	start := time.Now()
	res, err := s.gateway.Do(ctx, capability, params)
	s.observe(ctx, "pylon", capability, "", res, err, time.Since(start))
	return res, err
}

// observe records the invocation in the journal and fans out the event.
// Observation failures are logged, never surfaced to the caller.
func (s *Server) observe(ctx context.Context, toolName, capabilityID, price string, res pylon.Result, callErr error, elapsed time.Duration) {
	outcome := events.OutcomeOK
	switch {
	case callErr != nil:
		outcome = events.OutcomeError
	case res != nil && res.Kind() == pylon.KindPaymentRequired:
		outcome = events.OutcomePaymentRequired
	}

	// A 402 means nothing was charged.
	charged := price
	if outcome != events.OutcomeOK {
		charged = ""
	}

	if err := s.jnl.Record(journal.Entry{
		CapabilityID: capabilityID,
		Outcome:      outcome,
		Price:        charged,
	}); err != nil {
		s.log.WarnObj("journal record failed", "journal_error", map[string]any{
			"capability_id": capabilityID,
			"error":         err.Error(),
		})
	}

	if _, err := s.fanout.Publish(ctx, events.NewEvent(toolName, capabilityID, outcome, charged, elapsed)); err != nil {
		s.log.WarnObj("event fanout incomplete", "fanout_error", map[string]any{
			"capability_id": capabilityID,
			"error":         err.Error(),
		})
	}
}

// ServeMCP runs the MCP stdio server until the context is cancelled.
func (s *Server) ServeMCP(ctx context.Context) error {
	server := tools.NewMCPServer(s.toolset, s.version)
	return tools.ServeStdio(ctx, server)
}

// CallOnce executes a single tool by name with the given arguments. Used by
// the one-shot CLI path.
func (s *Server) CallOnce(ctx context.Context, toolName string, args map[string]any) (*tools.Result, error) {
	for _, t := range s.toolset {
		if t.Name == toolName {
			return t.Execute(ctx, args)
		}
	}
	return nil, fmt.Errorf("unknown tool %q", toolName)
}

// Tools returns the assembled tool set.
func (s *Server) Tools() []*tools.Tool { return s.toolset }

// Capabilities returns the loaded capability catalog.
func (s *Server) Capabilities() []capabilities.Capability { return s.reg.All() }

// Spend returns up to limit journal entries, newest first.
func (s *Server) Spend(limit int) ([]journal.Entry, error) { return s.jnl.Recent(limit) }

// Close releases the journal and any event sinks holding connections.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.jnl != nil {
		if err := s.jnl.Close(); err != nil {
			s.log.ErrorObj("journal close failed", "error", err)
		}
	}
	if err := s.fanout.Close(); err != nil {
		s.log.ErrorObj("event sinks close failed", "error", err)
	}
}

var _ tools.Runner = (*Server)(nil)
