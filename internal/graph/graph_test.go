package graph

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDegrees(t *testing.T) {
	nodes := []Node{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	edges := []Edge{
		{Source: "a", Target: "b"},
		{Source: "a", Target: "c"},
	}
	deg := Degrees(nodes, edges)
	if deg["a"] != 2 || deg["b"] != 1 || deg["c"] != 1 {
		t.Errorf("unexpected degrees: %v", deg)
	}
}

func TestFilterEdges(t *testing.T) {
	edges := []Edge{
		{ID: "e1", Source: "a", Target: "b"},
		{ID: "e2", Source: "a", Target: "c"},
		{ID: "e3", Source: "c", Target: "d"},
	}
	keep := map[string]bool{"a": true, "b": true, "c": true}
	out := FilterEdges(edges, keep)
	if len(out) != 2 {
		t.Fatalf("expected 2 edges, got %d", len(out))
	}
	for _, e := range out {
		if e.ID == "e3" {
			t.Error("edge with dropped endpoint survived")
		}
	}
}

func TestLoad_InfersNodeTypes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.json")
	data := `{
  "nodes": [
    {"id": "n1", "label": "10.0.0.1", "x": 0, "y": 0},
    {"id": "n2", "label": "evil.example.com", "x": 1, "y": 1},
    {"id": "n3", "type": "custom", "label": "10.0.0.2", "x": 2, "y": 2},
    {"id": "n4", "label": "just a note", "x": 3, "y": 3}
  ],
  "edges": [
    {"id": "e1", "source": "n1", "target": "n2"}
  ]
}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write temp graph: %v", err)
	}

	snap, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.NodeCount() != 4 || snap.EdgeCount() != 1 {
		t.Fatalf("counts = %d/%d", snap.NodeCount(), snap.EdgeCount())
	}
	if snap.Nodes[0].Type != "ip" {
		t.Errorf("n1 type = %q, want ip", snap.Nodes[0].Type)
	}
	if snap.Nodes[1].Type != "domain" {
		t.Errorf("n2 type = %q, want domain", snap.Nodes[1].Type)
	}
	if snap.Nodes[2].Type != "custom" {
		t.Errorf("explicit type must win, got %q", snap.Nodes[2].Type)
	}
	if snap.Nodes[3].Type != "" {
		t.Errorf("unclassifiable label must stay untyped, got %q", snap.Nodes[3].Type)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("does-not-exist.json"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	want := Snapshot{
		Nodes: []Node{{ID: "a", Type: "ip", X: 1, Y: 2}},
		Edges: []Edge{{ID: "e", Source: "a", Target: "a"}},
	}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.NodeCount() != 1 || got.Nodes[0].ID != "a" || got.EdgeCount() != 1 {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestSynthetic(t *testing.T) {
	snap := Synthetic(100, 200, 1)
	if snap.NodeCount() != 100 || snap.EdgeCount() != 200 {
		t.Fatalf("counts = %d/%d", snap.NodeCount(), snap.EdgeCount())
	}
	ids := NodeSet(snap.Nodes)
	for _, e := range snap.Edges {
		if !ids[e.Source] || !ids[e.Target] {
			t.Fatalf("edge %s references unknown node", e.ID)
		}
		if e.Source == e.Target {
			t.Errorf("self-loop generated: %s", e.ID)
		}
	}

	again := Synthetic(100, 200, 1)
	if again.Nodes[42] != snap.Nodes[42] {
		t.Error("same seed must produce the same graph")
	}
}
