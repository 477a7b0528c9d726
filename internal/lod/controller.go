package lod

import (
	"graphlod/internal/cluster"
	"graphlod/internal/graph"
	"graphlod/internal/perf"
	"graphlod/internal/sampling"
)

// Spatial cell size used when a tier enables clustering. Coordinates are
// renderer layout units; one cell collapses to one super-node.
const clusterRadius = 150.0

// Reduction is the element set a renderer should draw for a tier.
// Edge endpoints are always a subset of Nodes.
type Reduction struct {
	Tier            Tier         `json:"tier"`
	Nodes           []graph.Node `json:"nodes"`
	Edges           []graph.Edge `json:"edges"`
	Clustered       bool         `json:"clustered"`
	Simplifications []string     `json:"simplifications,omitempty"`
}

// Controller decides fidelity tiers and materializes reduced element sets.
type Controller struct {
	monitor   *perf.Monitor
	sampler   *sampling.Engine
	clusterer *cluster.Engine
	strategy  sampling.Strategy
}

// NewController wires the controller to its collaborators. The sampling
// strategy applies to node reduction on tiers without clustering.
func NewController(monitor *perf.Monitor, sampler *sampling.Engine, clusterer *cluster.Engine, strategy sampling.Strategy) *Controller {
	if strategy == "" {
		strategy = sampling.StrategyDegree
	}
	return &Controller{
		monitor:   monitor,
		sampler:   sampler,
		clusterer: clusterer,
		strategy:  strategy,
	}
}

// Current returns the active tier as recorded in the monitor metrics.
func (c *Controller) Current() Tier {
	return Tier(c.monitor.LODLevel()).Clamp()
}

// Apply materializes the reduced render set for a tier and records the
// level change. Node reduction goes through clustering when the tier config
// enables it, otherwise through sampling at the tier's node ratio. Edges are
// filtered to surviving endpoints and then sampled at the edge ratio.
func (c *Controller) Apply(snap graph.Snapshot, tier Tier) Reduction {
	tier = tier.Clamp()
	cfg := Config(tier)

	var nodes []graph.Node
	if cfg.ClusteringEnabled {
		nodes = cluster.Representatives(c.clusterer.Spatial(snap.Nodes, clusterRadius))
		// Clustered super-nodes replace originals, so original edges
		// cannot attach; keep at most the tier's share of super-nodes.
		nodes = c.sampler.SampleRatio(nodes, cfg.NodeSamplingRatio, c.strategy, nil)
		c.monitor.SetLODLevel(int(tier))
		return Reduction{
			Tier:            tier,
			Nodes:           nodes,
			Edges:           []graph.Edge{},
			Clustered:       true,
			Simplifications: cfg.Simplifications,
		}
	}

	nodes = c.sampler.SampleRatio(snap.Nodes, cfg.NodeSamplingRatio, c.strategy, snap.Edges)
	edges := graph.FilterEdges(snap.Edges, graph.NodeSet(nodes))
	if cfg.EdgeSamplingRatio < 1 {
		edges = c.sampler.SampleEdges(edges, cfg.EdgeSamplingRatio)
	}

	c.monitor.SetLODLevel(int(tier))
	return Reduction{
		Tier:            tier,
		Nodes:           nodes,
		Edges:           edges,
		Simplifications: cfg.Simplifications,
	}
}

// The manual-override level used when fidelity must drop immediately,
// without consulting element counts.
const aggressiveLevel = TierMedium

// ApplyAggressive forces the level to the manual-override tier. It always
// succeeds and reports true so callers can chain it into optimization flows.
func (c *Controller) ApplyAggressive() bool {
	c.monitor.SetLODLevel(int(aggressiveLevel))
	return true
}

// Reset restores full fidelity regardless of prior state.
func (c *Controller) Reset() bool {
	c.monitor.SetLODLevel(int(TierFull))
	return true
}

// OptimizeMemory raises the level one step when the monitor's most recent
// memory reading is above the warning threshold. It consumes the reading
// recorded by the caller's CheckMemory rather than probing again, so one
// decision cycle costs one probe. Reports false, with no side effects, when
// memory is fine or no reading exists.
func (c *Controller) OptimizeMemory() bool {
	reading := c.monitor.LastMemory()
	if reading == nil {
		return false
	}
	if reading.Ratio() <= c.monitor.MemoryWarningThreshold() {
		return false
	}
	next := (Tier(c.monitor.LODLevel()) + 1).Clamp()
	c.monitor.SetLODLevel(int(next))
	return true
}
