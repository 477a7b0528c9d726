// Level-of-detail tiers and their static configuration table.
package lod

// Tier is one point in the fidelity ordering. Higher values reduce more.
type Tier int

// Tiers, ordered by increasing aggressiveness.
const (
	TierFull Tier = iota
	TierHigh
	TierMedium
	TierLow
	TierUltraLow
)

// MaxTier is the most aggressive defined tier.
const MaxTier = TierUltraLow

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierFull:
		return "full"
	case TierHigh:
		return "high"
	case TierMedium:
		return "medium"
	case TierLow:
		return "low"
	case TierUltraLow:
		return "ultra-low"
	default:
		return "unknown"
	}
}

// ParseTier maps a tier name to its value. Unknown names report ok=false.
func ParseTier(name string) (Tier, bool) {
	switch name {
	case "full":
		return TierFull, true
	case "high":
		return TierHigh, true
	case "medium":
		return TierMedium, true
	case "low":
		return TierLow, true
	case "ultra-low":
		return TierUltraLow, true
	default:
		return TierFull, false
	}
}

// Clamp bounds t to the defined tier range.
func (t Tier) Clamp() Tier {
	if t < TierFull {
		return TierFull
	}
	if t > MaxTier {
		return MaxTier
	}
	return t
}

// Visual simplification flags a renderer may honor per tier.
const (
	SimplifyHideLabels    = "hide-labels"
	SimplifyStraightEdges = "straight-edges"
	SimplifyNoAnimations  = "no-animations"
	SimplifySmallNodes    = "small-nodes"
)

// TierConfig holds the reduction parameters for one tier.
type TierConfig struct {
	NodeSamplingRatio float64  `json:"node_sampling_ratio"`
	EdgeSamplingRatio float64  `json:"edge_sampling_ratio"`
	ClusteringEnabled bool     `json:"clustering_enabled"`
	Simplifications   []string `json:"simplifications,omitempty"`
}

// tierTable is loaded once and never mutated at runtime. Ratios are tuned
// for a renderer comfortable around ten thousand visible elements.
var tierTable = map[Tier]TierConfig{
	TierFull: {
		NodeSamplingRatio: 1.0,
		EdgeSamplingRatio: 1.0,
	},
	TierHigh: {
		NodeSamplingRatio: 0.7,
		EdgeSamplingRatio: 0.6,
		Simplifications:   []string{SimplifyNoAnimations},
	},
	TierMedium: {
		NodeSamplingRatio: 0.5,
		EdgeSamplingRatio: 0.4,
		Simplifications:   []string{SimplifyNoAnimations, SimplifyStraightEdges},
	},
	TierLow: {
		NodeSamplingRatio: 0.3,
		EdgeSamplingRatio: 0.25,
		ClusteringEnabled: true,
		Simplifications:   []string{SimplifyNoAnimations, SimplifyStraightEdges, SimplifyHideLabels},
	},
	TierUltraLow: {
		NodeSamplingRatio: 0.15,
		EdgeSamplingRatio: 0.1,
		ClusteringEnabled: true,
		Simplifications:   []string{SimplifyNoAnimations, SimplifyStraightEdges, SimplifyHideLabels, SimplifySmallNodes},
	},
}

// Config returns the configuration for a tier. Out-of-range tiers clamp to
// the defined range, so a config always exists.
func Config(t Tier) TierConfig {
	return tierTable[t.Clamp()]
}

// Breakpoints on combined node+edge count. A graph below the first bound
// always renders at full fidelity; bounds grow super-linearly so tier
// boundaries are rare and stable rather than oscillating.
var tierBreakpoints = []int{
	2_000,   // below: full
	10_000,  // below: high
	50_000,  // below: medium
	150_000, // below: low; above: ultra-low
}

// DetermineTier resolves element counts to a tier. Pure and deterministic:
// the tier is monotonically non-decreasing in nodeCount+edgeCount.
func DetermineTier(nodeCount, edgeCount int) Tier {
	if nodeCount < 0 {
		nodeCount = 0
	}
	if edgeCount < 0 {
		edgeCount = 0
	}
	combined := nodeCount + edgeCount
	for i, bound := range tierBreakpoints {
		if combined < bound {
			return Tier(i)
		}
	}
	return TierUltraLow
}
