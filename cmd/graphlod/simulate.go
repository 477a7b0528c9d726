package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"graphlod/internal/admin"
	"graphlod/internal/config"
	"graphlod/internal/graph"
	"graphlod/internal/logging"
	"graphlod/internal/monitor"
)

var (
	simPrintOnly  bool
	simColor      bool
	simTUI        bool
	simConfigPath string
	simSchemaPath string
	simGraphPath  string
	simNodes      int
	simEdges      int
	simSeed       int64
	simTick       time.Duration
	simLogFile    string
	simAdminAddr  string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the render governor against a simulated host",
	Long:  "simulate drives the level-of-detail governor with a synthetic render loop, emitting per-frame samples and memory warnings.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(simConfigPath, simSchemaPath)
		if err != nil {
			return err
		}
		if sid := os.Getenv("GRAPHLOD_SESSION"); sid != "" {
			cfg.SessionID = sid
		}

		var snap graph.Snapshot
		if simGraphPath != "" {
			snap, err = graph.Load(simGraphPath)
			if err != nil {
				return err
			}
		} else {
			snap = graph.Synthetic(simNodes, simEdges, simSeed)
		}

		var tui *monitor.TUIWriter
		if simTUI {
			tui = monitor.NewTUIWriter(cfg.SessionID)
			defer tui.Close()
		}

		writer, warnWriter, repWriter, cleanup, err := newWriters(cfg, simPrintOnly, simColor, tui, simLogFile)
		if err != nil {
			return err
		}
		defer cleanup()

		tickInterval := simTick
		if envTick := os.Getenv("TICK_INTERVAL"); envTick != "" {
			d, err := time.ParseDuration(envTick)
			if err != nil {
				return err
			}
			tickInterval = d
		}

		logger := logging.New()
		ctx, cancel := context.WithCancel(logging.NewContext(context.Background(), logger))
		defer cancel()

		host := monitor.NewSimHost(snap, simSeed)
		gov := monitor.NewGovernor(cfg, host, writer, warnWriter, repWriter, host, host)
		defer gov.Destroy()

		gov.StartHeartbeat()

		srv := admin.NewServer(gov)
		go func() {
			logger.Info("admin UI listening", "addr", simAdminAddr)
			if err := srv.Start(ctx, simAdminAddr); err != nil && err != http.ErrServerClosed {
				logger.Error("admin server failed", "error", err)
				os.Exit(1)
			}
		}()

		go host.Run(ctx, gov, tickInterval)

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs

		cancel()
		logger.Info("render governor stopped")
		return nil
	},
}

func init() {
	simulateCmd.Flags().BoolVar(&simPrintOnly, "print-only", false, "Print samples to STDOUT instead of writing to DB")
	simulateCmd.Flags().BoolVar(&simColor, "color", false, "Colorized STDOUT output")
	simulateCmd.Flags().BoolVar(&simTUI, "tui", false, "Interactive terminal dashboard")
	simulateCmd.Flags().StringVar(&simConfigPath, "config", "config/monitor.yaml", "Path to monitor configuration YAML")
	simulateCmd.Flags().StringVar(&simSchemaPath, "schema", "schemas/monitor.cue", "Path to CUE schema file")
	simulateCmd.Flags().StringVar(&simGraphPath, "graph", "", "Path to a graph snapshot JSON (synthetic graph when empty)")
	simulateCmd.Flags().IntVar(&simNodes, "nodes", 50_000, "Synthetic graph node count")
	simulateCmd.Flags().IntVar(&simEdges, "edges", 120_000, "Synthetic graph edge count")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 1, "Seed for synthetic graph and sampling")
	simulateCmd.Flags().DurationVar(&simTick, "tick", time.Second, "Render tick interval (e.g. 500ms, 2s)")
	simulateCmd.Flags().StringVar(&simLogFile, "log-file", "", "Path to export sample logs (JSONL)")
	simulateCmd.Flags().StringVar(&simAdminAddr, "admin-addr", ":8080", "Admin UI listen address")
}
