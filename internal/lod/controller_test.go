package lod

import (
	"fmt"
	"testing"

	"graphlod/internal/cluster"
	"graphlod/internal/graph"
	"graphlod/internal/perf"
	"graphlod/internal/sampling"
)

func newTestController(mon *perf.Monitor) *Controller {
	return NewController(mon, sampling.NewWithSeed(1), cluster.New(), sampling.StrategyDegree)
}

func makeSnapshot(nodeCount, edgeCount int) graph.Snapshot {
	nodes := make([]graph.Node, 0, nodeCount)
	for i := 0; i < nodeCount; i++ {
		nodes = append(nodes, graph.Node{
			ID: fmt.Sprintf("n%d", i),
			X:  float64(i%100) * 10,
			Y:  float64(i/100) * 10,
		})
	}
	edges := make([]graph.Edge, 0, edgeCount)
	for i := 0; i < edgeCount && nodeCount > 1; i++ {
		edges = append(edges, graph.Edge{
			ID:     fmt.Sprintf("e%d", i),
			Source: nodes[i%nodeCount].ID,
			Target: nodes[(i+1)%nodeCount].ID,
		})
	}
	return graph.Snapshot{Nodes: nodes, Edges: edges}
}

func TestApply_FullTierKeepsEverything(t *testing.T) {
	mon := perf.NewMonitor(perf.Options{})
	c := newTestController(mon)
	snap := makeSnapshot(100, 150)

	red := c.Apply(snap, TierFull)
	if len(red.Nodes) != 100 || len(red.Edges) != 150 {
		t.Errorf("full tier must keep all elements, got %d nodes %d edges", len(red.Nodes), len(red.Edges))
	}
	if red.Clustered {
		t.Error("full tier must not cluster")
	}
	if mon.LODLevel() != int(TierFull) {
		t.Errorf("monitor level = %d, want 0", mon.LODLevel())
	}
}

func TestApply_SampledTierReducesAndStaysConsistent(t *testing.T) {
	mon := perf.NewMonitor(perf.Options{})
	c := newTestController(mon)
	snap := makeSnapshot(1_000, 2_000)

	red := c.Apply(snap, TierMedium)
	if len(red.Nodes) >= 1_000 {
		t.Errorf("medium tier should reduce nodes, kept %d", len(red.Nodes))
	}
	if len(red.Nodes) == 0 {
		t.Fatal("reduction must keep at least one node")
	}

	// Every surviving edge must reference surviving nodes.
	kept := graph.NodeSet(red.Nodes)
	for _, e := range red.Edges {
		if !kept[e.Source] || !kept[e.Target] {
			t.Fatalf("edge %s references a dropped node", e.ID)
		}
	}
	if mon.LODLevel() != int(TierMedium) {
		t.Errorf("monitor level = %d, want %d", mon.LODLevel(), TierMedium)
	}
}

func TestApply_ClusteredTier(t *testing.T) {
	mon := perf.NewMonitor(perf.Options{})
	c := newTestController(mon)
	snap := makeSnapshot(2_000, 1_000)

	red := c.Apply(snap, TierUltraLow)
	if !red.Clustered {
		t.Fatal("ultra-low tier must cluster")
	}
	if len(red.Nodes) == 0 || len(red.Nodes) >= 2_000 {
		t.Errorf("expected a reduced super-node set, got %d", len(red.Nodes))
	}
	if len(red.Edges) != 0 {
		t.Errorf("clustered reduction replaces nodes, so no original edges may survive; got %d", len(red.Edges))
	}
}

func TestApply_Deterministic(t *testing.T) {
	snap := makeSnapshot(500, 800)

	run := func() Reduction {
		mon := perf.NewMonitor(perf.Options{})
		return newTestController(mon).Apply(snap, TierMedium)
	}
	a, b := run(), run()
	if len(a.Nodes) != len(b.Nodes) || len(a.Edges) != len(b.Edges) {
		t.Fatalf("runs disagree: %d/%d vs %d/%d", len(a.Nodes), len(a.Edges), len(b.Nodes), len(b.Edges))
	}
	for i := range a.Nodes {
		if a.Nodes[i].ID != b.Nodes[i].ID {
			t.Fatalf("node %d differs between runs", i)
		}
	}
}

func TestApplyAggressive_SetsFixedLevel(t *testing.T) {
	mon := perf.NewMonitor(perf.Options{})
	c := newTestController(mon)

	if !c.ApplyAggressive() {
		t.Fatal("ApplyAggressive must report true")
	}
	if got := c.Current(); got != TierMedium {
		t.Errorf("aggressive level = %v, want %v", got, TierMedium)
	}

	if !c.Reset() {
		t.Fatal("Reset must report true")
	}
	if got := c.Current(); got != TierFull {
		t.Errorf("after reset level = %v, want full", got)
	}
}

func TestOptimizeMemory(t *testing.T) {
	ratio := 0.5
	probe := perf.MemoryProbeFunc(func() perf.MemoryCapability {
		return perf.MemoryCapability{
			Available: true,
			Reading:   perf.MemoryReading{Used: ratio * 1000, Total: 1000, Limit: 1000},
		}
	})

	mon := perf.NewMonitor(perf.Options{MemoryProbe: probe})
	c := newTestController(mon)

	mon.CheckMemory()
	if c.OptimizeMemory() {
		t.Error("memory under threshold must not optimize")
	}
	if c.Current() != TierFull {
		t.Errorf("level moved without pressure: %v", c.Current())
	}

	ratio = 0.95
	mon.CheckMemory()
	if !c.OptimizeMemory() {
		t.Fatal("memory above threshold must optimize")
	}
	if c.Current() != TierHigh {
		t.Errorf("expected one-step raise to high, got %v", c.Current())
	}

	// Repeated pressure walks up but never past the max tier.
	for i := 0; i < 10; i++ {
		mon.CheckMemory()
		c.OptimizeMemory()
	}
	if c.Current() != MaxTier {
		t.Errorf("expected clamp at %v, got %v", MaxTier, c.Current())
	}
}

func TestOptimizeMemory_NoReading(t *testing.T) {
	mon := perf.NewMonitor(perf.Options{})
	c := newTestController(mon)
	if c.OptimizeMemory() {
		t.Error("no recorded reading means no optimization")
	}
}

func TestOptimizeMemory_DoesNotProbe(t *testing.T) {
	probes := 0
	probe := perf.MemoryProbeFunc(func() perf.MemoryCapability {
		probes++
		return perf.MemoryCapability{
			Available: true,
			Reading:   perf.MemoryReading{Used: 950, Total: 1000, Limit: 1000},
		}
	})
	mon := perf.NewMonitor(perf.Options{MemoryProbe: probe})
	c := newTestController(mon)

	mon.CheckMemory()
	if !c.OptimizeMemory() {
		t.Fatal("expected optimization under pressure")
	}
	if probes != 1 {
		t.Errorf("one decision cycle must cost one probe, got %d", probes)
	}
}
