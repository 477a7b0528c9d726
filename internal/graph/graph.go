// Graph snapshot types shared by the sampling, clustering, and LOD packages.
package graph

// Node is one renderable entity in the investigation graph.
// Position is the layout coordinate assigned by the host renderer.
type Node struct {
	ID    string  `json:"id"`
	Type  string  `json:"type,omitempty"`
	Label string  `json:"label,omitempty"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Size  float64 `json:"size,omitempty"`
}

// Edge links two nodes by ID.
type Edge struct {
	ID     string `json:"id,omitempty"`
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type,omitempty"`
}

// Snapshot is a read-only view of the graph for one decision cycle.
// The governor never mutates it; reductions return fresh slices.
type Snapshot struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// NodeCount returns the number of nodes in the snapshot.
func (s Snapshot) NodeCount() int { return len(s.Nodes) }

// EdgeCount returns the number of edges in the snapshot.
func (s Snapshot) EdgeCount() int { return len(s.Edges) }

// Degrees computes the number of incident edges per node ID.
// Edges referencing unknown nodes still count toward the endpoints they name.
func Degrees(nodes []Node, edges []Edge) map[string]int {
	deg := make(map[string]int, len(nodes))
	for _, n := range nodes {
		deg[n.ID] = 0
	}
	for _, e := range edges {
		deg[e.Source]++
		deg[e.Target]++
	}
	return deg
}

// FilterEdges keeps only edges whose both endpoints appear in keep.
func FilterEdges(edges []Edge, keep map[string]bool) []Edge {
	out := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if keep[e.Source] && keep[e.Target] {
			out = append(out, e)
		}
	}
	return out
}

// NodeSet builds a membership map from a node slice.
func NodeSet(nodes []Node) map[string]bool {
	set := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		set[n.ID] = true
	}
	return set
}
