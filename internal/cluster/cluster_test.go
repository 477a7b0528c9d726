package cluster

import (
	"fmt"
	"testing"

	"graphlod/internal/graph"
)

// assertPartition verifies every input node lands in exactly one cluster.
func assertPartition(t *testing.T, nodes []graph.Node, clusters []Cluster) {
	t.Helper()
	seen := make(map[string]int)
	for _, c := range clusters {
		for _, id := range c.Members {
			seen[id]++
		}
	}
	for _, n := range nodes {
		if seen[n.ID] != 1 {
			t.Errorf("node %s appears %d times across clusters, expected exactly once", n.ID, seen[n.ID])
		}
	}
	total := 0
	for _, c := range clusters {
		total += len(c.Members)
	}
	if total != len(nodes) {
		t.Errorf("cluster members total %d, expected %d", total, len(nodes))
	}
}

func TestSpatial_GroupsNearbyNodes(t *testing.T) {
	nodes := []graph.Node{
		{ID: "a", X: 10, Y: 10},
		{ID: "b", X: 20, Y: 20},
		{ID: "c", X: 500, Y: 500},
	}
	clusters := New().Spatial(nodes, 100)
	if len(clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(clusters))
	}
	assertPartition(t, nodes, clusters)
}

func TestSpatial_EmptyInput(t *testing.T) {
	clusters := New().Spatial(nil, 100)
	if len(clusters) != 0 {
		t.Errorf("expected no clusters for empty input, got %d", len(clusters))
	}
}

func TestSpatial_RepresentativeCentroid(t *testing.T) {
	nodes := []graph.Node{
		{ID: "a", X: 0, Y: 0, Type: "ip"},
		{ID: "b", X: 10, Y: 20, Type: "ip"},
	}
	clusters := New().Spatial(nodes, 100)
	if len(clusters) != 1 {
		t.Fatalf("expected 1 cluster, got %d", len(clusters))
	}
	rep := clusters[0].Representative
	if rep.X != 5 || rep.Y != 10 {
		t.Errorf("expected centroid (5,10), got (%v,%v)", rep.X, rep.Y)
	}
	if rep.Type != "ip" {
		t.Errorf("expected dominant type ip, got %q", rep.Type)
	}
	if rep.Size != 2 {
		t.Errorf("expected size 2, got %v", rep.Size)
	}
}

func TestConnectivity_Components(t *testing.T) {
	nodes := []graph.Node{
		{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "isolated"},
	}
	edges := []graph.Edge{
		{ID: "e1", Source: "a", Target: "b"},
		{ID: "e2", Source: "c", Target: "d"},
	}
	clusters := New().Connectivity(nodes, edges)
	if len(clusters) != 3 {
		t.Fatalf("expected 3 components, got %d", len(clusters))
	}
	assertPartition(t, nodes, clusters)
}

func TestConnectivity_IgnoresDanglingEdges(t *testing.T) {
	nodes := []graph.Node{{ID: "a"}, {ID: "b"}}
	edges := []graph.Edge{
		{ID: "e1", Source: "a", Target: "ghost"},
	}
	clusters := New().Connectivity(nodes, edges)
	if len(clusters) != 2 {
		t.Errorf("dangling edge must not merge components, got %d clusters", len(clusters))
	}
}

func TestByType(t *testing.T) {
	nodes := []graph.Node{
		{ID: "a", Type: "ip"},
		{ID: "b", Type: "domain"},
		{ID: "c", Type: "ip"},
		{ID: "d"},
	}
	clusters := New().ByType(nodes)
	if len(clusters) != 3 {
		t.Fatalf("expected 3 type clusters, got %d", len(clusters))
	}
	assertPartition(t, nodes, clusters)

	byID := make(map[string]Cluster)
	for _, c := range clusters {
		byID[c.ID] = c
	}
	if len(byID["type-ip"].Members) != 2 {
		t.Errorf("expected 2 ip members, got %d", len(byID["type-ip"].Members))
	}
	if _, ok := byID["type-untyped"]; !ok {
		t.Errorf("expected untyped cluster, got %v", byID)
	}
}

func TestHierarchy_EveryLevelIsPartition(t *testing.T) {
	var nodes []graph.Node
	for i := 0; i < 60; i++ {
		nodes = append(nodes, graph.Node{
			ID: fmt.Sprintf("n%d", i),
			X:  float64(i%10) * 40,
			Y:  float64(i/10) * 40,
		})
	}

	levels := New().Hierarchy(nodes, 50, 4)
	if len(levels) != 4 {
		t.Fatalf("expected 4 levels, got %d", len(levels))
	}
	for i, lv := range levels {
		assertPartition(t, nodes, lv.Clusters)
		if i > 0 && lv.Radius != levels[i-1].Radius*2 {
			t.Errorf("level %d radius %v, expected double of %v", i, lv.Radius, levels[i-1].Radius)
		}
	}

	// Coarser levels never have more clusters than finer ones.
	for i := 1; i < len(levels); i++ {
		if len(levels[i].Clusters) > len(levels[i-1].Clusters) {
			t.Errorf("level %d has %d clusters, more than level %d's %d",
				i, len(levels[i].Clusters), i-1, len(levels[i-1].Clusters))
		}
	}
}

func TestHierarchy_ZeroLevels(t *testing.T) {
	levels := New().Hierarchy([]graph.Node{{ID: "a"}}, 50, 0)
	if len(levels) != 0 {
		t.Errorf("expected no levels, got %d", len(levels))
	}
}

func TestRepresentatives(t *testing.T) {
	clusters := []Cluster{
		{ID: "c1", Representative: graph.Node{ID: "c1"}},
		{ID: "c2", Representative: graph.Node{ID: "c2"}},
	}
	reps := Representatives(clusters)
	if len(reps) != 2 || reps[0].ID != "c1" || reps[1].ID != "c2" {
		t.Errorf("unexpected representatives: %v", reps)
	}
}
