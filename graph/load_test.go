package graph

import (
	"path/filepath"
	"strings"
	"testing"
)

const sampleDoc = `{
  "elements": {
    "nodes": [
      {"data": {"id": "p", "labels": ["Package"], "properties": {"simpleName": "util"}}},
      {"data": {"id": "c", "labels": ["Class"]}}
    ],
    "edges": [
      {"data": {"source": "p", "target": "c", "label": "contains", "properties": {"weight": 2}}}
    ]
  }
}`

func TestParse(t *testing.T) {
	g, err := Parse(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(g.Elements.Nodes) != 2 || len(g.Elements.Edges) != 1 {
		t.Fatalf("parsed %d nodes / %d edges, want 2 / 1",
			len(g.Elements.Nodes), len(g.Elements.Edges))
	}
	e := g.Elements.Edges[0].Data
	if e.Label != "contains" || e.Weight() != 2 {
		t.Errorf("edge = %+v, want contains with weight 2", e)
	}
	if g.Elements.Nodes[0].Data.Properties["simpleName"] != "util" {
		t.Errorf("node properties not decoded: %v", g.Elements.Nodes[0].Data.Properties)
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := Parse(strings.NewReader("not json")); err == nil {
		t.Fatal("Parse accepted invalid input")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	g, err := Parse(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	// Annotate a node the way the summarizer does, then round-trip.
	g.Elements.Nodes[1].Data.Properties = map[string]any{"description": "A class."}

	path := filepath.Join(t.TempDir(), "graph.json")
	if err := Save(path, g); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Elements.Nodes[1].Data.Properties["description"] != "A class." {
		t.Errorf("annotation lost in round trip: %v", loaded.Elements.Nodes[1].Data.Properties)
	}
	if loaded.Elements.Edges[0].Data.Weight() != 2 {
		t.Errorf("edge weight lost in round trip")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("Load accepted a missing file")
	}
}
