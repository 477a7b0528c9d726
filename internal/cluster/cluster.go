// Node clustering for structure-preserving level-of-detail reduction.
//
// Every function here produces an exact partition of its input: each node
// belongs to exactly one cluster, and each cluster collapses to a single
// representative node placed at the member centroid.
package cluster

import (
	"fmt"
	"sort"

	"graphlod/internal/graph"
)

// Cluster is one group of nodes collapsed to a representative.
type Cluster struct {
	ID             string     `json:"id"`
	Members        []string   `json:"members"`
	Representative graph.Node `json:"representative"`
}

// Engine groups nodes into representative super-nodes.
type Engine struct{}

// New returns a clustering engine.
func New() *Engine { return &Engine{} }

// Spatial partitions nodes by 2-D proximity using grid bucketing with cell
// size radius. Nodes sharing a cell collapse into one cluster.
func (e *Engine) Spatial(nodes []graph.Node, radius float64) []Cluster {
	if len(nodes) == 0 {
		return []Cluster{}
	}
	if radius <= 0 {
		radius = 1
	}

	type cell struct{ cx, cy int }
	buckets := make(map[cell][]graph.Node)
	var order []cell
	for _, n := range nodes {
		c := cell{int(n.X / radius), int(n.Y / radius)}
		if n.X < 0 {
			c.cx--
		}
		if n.Y < 0 {
			c.cy--
		}
		if _, ok := buckets[c]; !ok {
			order = append(order, c)
		}
		buckets[c] = append(buckets[c], n)
	}

	clusters := make([]Cluster, 0, len(order))
	for i, c := range order {
		clusters = append(clusters, collapse(fmt.Sprintf("spatial-%d", i), buckets[c]))
	}
	return clusters
}

// Connectivity partitions nodes into connected components via union-find.
// Isolated nodes each form their own cluster.
func (e *Engine) Connectivity(nodes []graph.Node, edges []graph.Edge) []Cluster {
	if len(nodes) == 0 {
		return []Cluster{}
	}

	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		index[n.ID] = i
	}

	parent := make([]int, len(nodes))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[rb] = ra
		}
	}
	for _, ed := range edges {
		si, sok := index[ed.Source]
		ti, tok := index[ed.Target]
		if sok && tok {
			union(si, ti)
		}
	}

	groups := make(map[int][]graph.Node)
	var roots []int
	for i, n := range nodes {
		r := find(i)
		if _, ok := groups[r]; !ok {
			roots = append(roots, r)
		}
		groups[r] = append(groups[r], n)
	}

	clusters := make([]Cluster, 0, len(roots))
	for i, r := range roots {
		clusters = append(clusters, collapse(fmt.Sprintf("component-%d", i), groups[r]))
	}
	return clusters
}

// ByType groups nodes sharing a type tag into one cluster per type.
// Untyped nodes group under the empty type.
func (e *Engine) ByType(nodes []graph.Node) []Cluster {
	if len(nodes) == 0 {
		return []Cluster{}
	}
	groups := make(map[string][]graph.Node)
	var order []string
	for _, n := range nodes {
		if _, ok := groups[n.Type]; !ok {
			order = append(order, n.Type)
		}
		groups[n.Type] = append(groups[n.Type], n)
	}
	clusters := make([]Cluster, 0, len(order))
	for _, t := range order {
		id := "type-" + t
		if t == "" {
			id = "type-untyped"
		}
		clusters = append(clusters, collapse(id, groups[t]))
	}
	return clusters
}

// Level is one resolution in a cluster hierarchy. Level 0 is the finest.
type Level struct {
	Radius   float64   `json:"radius"`
	Clusters []Cluster `json:"clusters"`
}

// Hierarchy builds a multi-resolution pyramid: level 0 clusters the input
// spatially at baseRadius, and each coarser level re-clusters the previous
// level's representatives at doubled radius. Member lists always refer to
// original node IDs, so every level remains a partition of the input.
func (e *Engine) Hierarchy(nodes []graph.Node, baseRadius float64, levels int) []Level {
	if levels <= 0 || len(nodes) == 0 {
		return []Level{}
	}
	if baseRadius <= 0 {
		baseRadius = 1
	}

	out := make([]Level, 0, levels)
	current := e.Spatial(nodes, baseRadius)
	out = append(out, Level{Radius: baseRadius, Clusters: current})

	radius := baseRadius
	for l := 1; l < levels; l++ {
		radius *= 2

		reps := make([]graph.Node, len(current))
		members := make(map[string][]string, len(current))
		for i, c := range current {
			reps[i] = c.Representative
			members[c.Representative.ID] = c.Members
		}

		merged := e.Spatial(reps, radius)
		for i := range merged {
			var all []string
			for _, repID := range merged[i].Members {
				all = append(all, members[repID]...)
			}
			merged[i].Members = all
			merged[i].ID = fmt.Sprintf("level%d-%d", l, i)
		}
		out = append(out, Level{Radius: radius, Clusters: merged})
		current = merged
	}
	return out
}

// collapse merges members into a cluster with a centroid representative.
// The representative inherits the dominant member type and a size equal to
// the member count, so renderers can scale super-nodes.
func collapse(id string, members []graph.Node) Cluster {
	var sx, sy float64
	typeCount := make(map[string]int)
	ids := make([]string, 0, len(members))
	for _, m := range members {
		sx += m.X
		sy += m.Y
		typeCount[m.Type]++
		ids = append(ids, m.ID)
	}

	dominant := ""
	best := -1
	types := make([]string, 0, len(typeCount))
	for t := range typeCount {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		if typeCount[t] > best {
			best = typeCount[t]
			dominant = t
		}
	}

	n := float64(len(members))
	return Cluster{
		ID:      id,
		Members: ids,
		Representative: graph.Node{
			ID:    id,
			Type:  dominant,
			Label: fmt.Sprintf("%d nodes", len(members)),
			X:     sx / n,
			Y:     sy / n,
			Size:  n,
		},
	}
}

// Representatives extracts the representative node of each cluster.
func Representatives(clusters []Cluster) []graph.Node {
	out := make([]graph.Node, 0, len(clusters))
	for _, c := range clusters {
		out = append(out, c.Representative)
	}
	return out
}
