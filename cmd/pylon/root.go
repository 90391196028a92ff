package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pylon-apis/pylon-go/internal/app"
	"github.com/pylon-apis/pylon-go/internal/config"
	"github.com/pylon-apis/pylon-go/internal/logger"
)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "pylon",
		Short:   "Pylon utility APIs as agent tools (screenshot, OCR, PDF, search and more)",
		Version: getVersion(),
		Long: "pylon exposes the Pylon x402 pay-per-request utility APIs as agent tools.\n" +
			"Run `pylon serve` to serve the tool set over MCP stdio, or `pylon call`\n" +
			"for a one-shot invocation.",
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newCallCmd())
	root.AddCommand(newCapabilitiesCmd())
	root.AddCommand(newSpendCmd())
	return root
}

// newServer loads config, initializes logging, and wires the runtime.
func newServer(ctx context.Context) (*app.Server, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if _, err := logger.Init(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	server, err := app.NewServer(ctx, cfg, getVersion())
	if err != nil {
		logger.ErrorObj("failed to initialize server", "error", err)
		return nil, err
	}
	return server, nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the Pylon tool set over MCP stdio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			defer logger.Close()

			server, err := newServer(ctx)
			if err != nil {
				return err
			}
			defer server.Close()

			logger.InfoObj("mcp server starting", "tools_count", len(server.Tools()))
			if err := server.ServeMCP(ctx); err != nil && ctx.Err() == nil {
				return fmt.Errorf("mcp serve: %w", err)
			}
			return nil
		},
	}
}

func newCallCmd() *cobra.Command {
	var paramsJSON string

	cmd := &cobra.Command{
		Use:   "call <tool>",
		Short: "Invoke a single tool and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			defer logger.Close()

			server, err := newServer(ctx)
			if err != nil {
				return err
			}
			defer server.Close()

			toolArgs := map[string]any{}
			if paramsJSON != "" {
				if err := json.Unmarshal([]byte(paramsJSON), &toolArgs); err != nil {
					return fmt.Errorf("parse --params: %w", err)
				}
			}

			res, err := server.CallOnce(ctx, args[0], toolArgs)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return fmt.Errorf("encode result: %w", err)
			}
			fmt.Fprintln(os.Stdout, string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&paramsJSON, "params", "", "tool arguments as a JSON object")
	return cmd
}

func newCapabilitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "capabilities",
		Short: "List the capability catalog with per-call pricing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer logger.Close()

			server, err := newServer(cmd.Context())
			if err != nil {
				return err
			}
			defer server.Close()

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TOOL\tCAPABILITY\tPRICE\tROUTE")
			for _, c := range server.Capabilities() {
				route := c.BaseURL + c.Path
				if c.Gateway {
					route = "gateway /do"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Name, c.ID, c.Price, route)
			}
			return w.Flush()
		},
	}
}

func newSpendCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "spend",
		Short: "Show recent journaled invocations and charges",
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer logger.Close()

			server, err := newServer(cmd.Context())
			if err != nil {
				return err
			}
			defer server.Close()

			entries, err := server.Spend(limit)
			if err != nil {
				return fmt.Errorf("read journal: %w", err)
			}
			if len(entries) == 0 {
				fmt.Fprintln(os.Stdout, "no journaled invocations (is journal_type set?)")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "WHEN\tCAPABILITY\tOUTCOME\tPRICE")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					e.OccurredAt.Format("2006-01-02 15:04:05"), e.CapabilityID, e.Outcome, e.Price)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of entries to show")
	return cmd
}
