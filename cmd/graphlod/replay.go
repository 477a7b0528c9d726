package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"graphlod/internal/config"
	"graphlod/internal/monitor"
)

var (
	replayInput string
	replaySpeed float64
	replayColor bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a recorded sample log",
	Long:  "replay reads a JSONL sample log and re-emits it to STDOUT with original pacing, optionally scaled by --speed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if replayInput == "" {
			return fmt.Errorf("--input is required")
		}

		var writer monitor.SampleWriter
		if replayColor {
			writer = monitor.NewColorStdoutWriter(config.Default())
		} else {
			writer = monitor.NewJSONStdoutWriter()
		}

		return monitor.ReplayFile(replayInput, writer, replaySpeed)
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to JSONL sample log")
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "Playback speed multiplier (2 = twice as fast)")
	replayCmd.Flags().BoolVar(&replayColor, "color", false, "Colorized STDOUT output")
}
