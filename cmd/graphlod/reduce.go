package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"graphlod/internal/cluster"
	"graphlod/internal/graph"
	"graphlod/internal/lod"
	"graphlod/internal/perf"
	"graphlod/internal/sampling"
)

var (
	reduceGraphPath string
	reduceTierName  string
	reduceStrategy  string
	reduceSeed      int64
	reduceOutPath   string
)

var reduceCmd = &cobra.Command{
	Use:   "reduce",
	Short: "Reduce a graph snapshot to a level-of-detail tier",
	Long:  "reduce loads a graph snapshot, applies sampling and clustering for the requested tier, and writes the reduced snapshot.",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := graph.Load(reduceGraphPath)
		if err != nil {
			return err
		}

		tier := lod.DetermineTier(snap.NodeCount(), snap.EdgeCount())
		if reduceTierName != "" {
			t, ok := lod.ParseTier(reduceTierName)
			if !ok {
				return fmt.Errorf("unknown tier %q", reduceTierName)
			}
			tier = t
		}

		strategy := sampling.Strategy(reduceStrategy)
		if strategy != sampling.StrategyRandom && strategy != sampling.StrategyDegree {
			return fmt.Errorf("unknown sampling strategy %q", reduceStrategy)
		}

		mon := perf.NewMonitor(perf.Options{})
		defer mon.Destroy()

		ctrl := lod.NewController(mon, sampling.NewWithSeed(reduceSeed), cluster.New(), strategy)
		red := ctrl.Apply(snap, tier)

		out := graph.Snapshot{Nodes: red.Nodes, Edges: red.Edges}
		if reduceOutPath == "" {
			fmt.Fprintf(os.Stderr, "tier=%s nodes=%d edges=%d clustered=%t\n",
				red.Tier, len(red.Nodes), len(red.Edges), red.Clustered)
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}

		if err := graph.Save(reduceOutPath, out); err != nil {
			return err
		}
		fmt.Printf("wrote %s: tier=%s nodes=%d edges=%d clustered=%t\n",
			reduceOutPath, red.Tier, len(red.Nodes), len(red.Edges), red.Clustered)
		return nil
	},
}

func init() {
	reduceCmd.Flags().StringVar(&reduceGraphPath, "graph", "graph.json", "Path to graph snapshot JSON")
	reduceCmd.Flags().StringVar(&reduceTierName, "tier", "", "Target tier (full, high, medium, low, ultra-low); auto-detected when empty")
	reduceCmd.Flags().StringVar(&reduceStrategy, "strategy", "degree", "Sampling strategy (random, degree)")
	reduceCmd.Flags().Int64Var(&reduceSeed, "seed", 1, "Sampling seed")
	reduceCmd.Flags().StringVar(&reduceOutPath, "out", "", "Output path for the reduced snapshot (STDOUT when empty)")
}
