package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Load reads a raw graph document from a JSON file.
func Load(path string) (*RawGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("graph.Load: %w", err)
	}
	defer f.Close()

	g, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("graph.Load: %s: %w", path, err)
	}
	return g, nil
}

// Parse decodes a raw graph document from a reader.
func Parse(r io.Reader) (*RawGraph, error) {
	var g RawGraph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("decoding graph document: %w", err)
	}
	return &g, nil
}

// Save writes the graph document back to disk, 2-space indented so diffs
// against the analysis tool's export stay readable.
func Save(path string, g *RawGraph) error {
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return fmt.Errorf("graph.Save: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("graph.Save: %w", err)
	}
	return nil
}
