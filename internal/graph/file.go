package graph

import (
	"encoding/json"
	"fmt"
	"os"

	"graphlod/internal/ioc"
)

// Load reads a graph snapshot from a JSON file. Nodes without a type tag get
// one inferred from their label when it parses as a known indicator form.
func Load(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("cannot read graph file: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("cannot unmarshal graph file: %w", err)
	}
	for i := range snap.Nodes {
		if snap.Nodes[i].Type == "" && snap.Nodes[i].Label != "" {
			if t := ioc.Classify(snap.Nodes[i].Label); t != "" {
				snap.Nodes[i].Type = string(t)
			}
		}
	}
	return snap, nil
}

// Save writes a snapshot as indented JSON to path.
func Save(path string, snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
