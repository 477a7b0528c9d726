// Node sampling strategies for level-of-detail reduction.
package sampling

import (
	"math/rand"
	"sort"
	"time"

	"graphlod/internal/graph"
)

// Strategy selects how nodes are chosen when downsampling.
type Strategy string

// Supported strategies.
const (
	// StrategyRandom picks nodes uniformly without replacement.
	StrategyRandom Strategy = "random"
	// StrategyDegree keeps the highest-degree nodes so that hubs survive
	// aggressive reduction.
	StrategyDegree Strategy = "degree"
)

// Engine samples node collections down to a target count.
type Engine struct {
	rng *rand.Rand
}

// New returns an Engine seeded from the wall clock.
func New() *Engine {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns an Engine with a deterministic random source.
// Tests and offline reduction use a fixed seed for reproducible output.
func NewWithSeed(seed int64) *Engine {
	return &Engine{rng: rand.New(rand.NewSource(seed))}
}

// Sample returns min(target, len(nodes)) nodes chosen by strategy.
// The result preserves input order and is always a subset of nodes.
// A non-positive target yields an empty slice.
func (e *Engine) Sample(nodes []graph.Node, target int, strategy Strategy, edges []graph.Edge) []graph.Node {
	if target <= 0 {
		return []graph.Node{}
	}
	if target >= len(nodes) {
		out := make([]graph.Node, len(nodes))
		copy(out, nodes)
		return out
	}

	switch strategy {
	case StrategyDegree:
		return e.sampleByDegree(nodes, target, edges)
	default:
		return e.sampleRandom(nodes, target)
	}
}

// SampleRatio samples ceil(ratio * len(nodes)) nodes. Ratios >= 1 keep all.
func (e *Engine) SampleRatio(nodes []graph.Node, ratio float64, strategy Strategy, edges []graph.Edge) []graph.Node {
	if ratio >= 1 {
		out := make([]graph.Node, len(nodes))
		copy(out, nodes)
		return out
	}
	if ratio <= 0 {
		return []graph.Node{}
	}
	target := int(float64(len(nodes))*ratio + 0.5)
	if target < 1 {
		target = 1
	}
	return e.Sample(nodes, target, strategy, edges)
}

// SampleEdges keeps ceil(ratio * len(edges)) edges chosen uniformly,
// preserving input order. Ratios >= 1 keep all edges.
func (e *Engine) SampleEdges(edges []graph.Edge, ratio float64) []graph.Edge {
	if ratio >= 1 {
		out := make([]graph.Edge, len(edges))
		copy(out, edges)
		return out
	}
	if ratio <= 0 || len(edges) == 0 {
		return []graph.Edge{}
	}
	target := int(float64(len(edges))*ratio + 0.5)
	if target < 1 {
		target = 1
	}
	idx := e.rng.Perm(len(edges))[:target]
	sort.Ints(idx)
	out := make([]graph.Edge, 0, target)
	for _, i := range idx {
		out = append(out, edges[i])
	}
	return out
}

func (e *Engine) sampleRandom(nodes []graph.Node, target int) []graph.Node {
	idx := e.rng.Perm(len(nodes))[:target]
	sort.Ints(idx)
	out := make([]graph.Node, 0, target)
	for _, i := range idx {
		out = append(out, nodes[i])
	}
	return out
}

func (e *Engine) sampleByDegree(nodes []graph.Node, target int, edges []graph.Edge) []graph.Node {
	deg := graph.Degrees(nodes, edges)

	order := make([]int, len(nodes))
	for i := range order {
		order[i] = i
	}
	// Ties break by input position so repeated calls agree.
	sort.SliceStable(order, func(a, b int) bool {
		return deg[nodes[order[a]].ID] > deg[nodes[order[b]].ID]
	})

	keep := order[:target]
	sort.Ints(keep)
	out := make([]graph.Node, 0, target)
	for _, i := range keep {
		out = append(out, nodes[i])
	}
	return out
}
