package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"graphlod/internal/graph"
	"graphlod/internal/lod"
	"graphlod/internal/monitor"
	"graphlod/internal/perf"
	"graphlod/internal/report"
)

var (
	reportGraphPath string
	reportInput     string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a one-shot performance report",
	Long:  "report loads a graph snapshot and optionally a recorded sample log, feeds the samples through the monitor, and prints a performance report as JSON.",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := graph.Load(reportGraphPath)
		if err != nil {
			return err
		}

		mon := perf.NewMonitor(perf.Options{})
		defer mon.Destroy()

		if reportInput != "" {
			rows := 0
			lastLevel := 0
			sink := monitor.SampleWriterFunc(func(row perf.SampleRow) error {
				mon.RecordRender(row.RenderTimeMs)
				lastLevel = row.LODLevel
				rows++
				return nil
			})
			if err := monitor.ReplayFile(reportInput, sink, 0); err != nil {
				return err
			}
			if rows > 0 {
				mon.SetLODLevel(lastLevel)
			}
		} else {
			mon.SetLODLevel(int(lod.DetermineTier(snap.NodeCount(), snap.EdgeCount())))
		}

		rep := report.NewGenerator(mon).Generate(snap.NodeCount(), snap.EdgeCount())

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportGraphPath, "graph", "graph.json", "Path to graph snapshot JSON")
	reportCmd.Flags().StringVar(&reportInput, "input", "", "Optional JSONL sample log to replay into the monitor")
}
