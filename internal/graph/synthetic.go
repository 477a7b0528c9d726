package graph

import (
	"fmt"
	"math/rand"
)

var syntheticTypes = []string{"ip", "domain", "hash", "url"}

// Synthetic builds a random snapshot with the given element counts.
// Node positions are spread over a square proportional to the node count
// so spatial density stays roughly constant as graphs grow.
func Synthetic(nodeCount, edgeCount int, seed int64) Snapshot {
	rng := rand.New(rand.NewSource(seed))

	extent := 1000.0
	if nodeCount > 1000 {
		extent = float64(nodeCount)
	}

	nodes := make([]Node, 0, nodeCount)
	for i := 0; i < nodeCount; i++ {
		nodes = append(nodes, Node{
			ID:    fmt.Sprintf("n%d", i),
			Type:  syntheticTypes[rng.Intn(len(syntheticTypes))],
			Label: fmt.Sprintf("node-%d", i),
			X:     rng.Float64() * extent,
			Y:     rng.Float64() * extent,
			Size:  1,
		})
	}

	edges := make([]Edge, 0, edgeCount)
	if nodeCount > 1 {
		for i := 0; i < edgeCount; i++ {
			src := rng.Intn(nodeCount)
			dst := rng.Intn(nodeCount)
			if src == dst {
				dst = (dst + 1) % nodeCount
			}
			edges = append(edges, Edge{
				ID:     fmt.Sprintf("e%d", i),
				Source: nodes[src].ID,
				Target: nodes[dst].ID,
				Type:   "related",
			})
		}
	}

	return Snapshot{Nodes: nodes, Edges: edges}
}
