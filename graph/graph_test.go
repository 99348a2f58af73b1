package graph

import (
	"errors"
	"testing"
)

func TestTransformGroupsEdgesByLabel(t *testing.T) {
	g := &RawGraph{Elements: Elements{
		Nodes: []NodeElement{
			{Data: &Node{ID: "p", Labels: []string{"Package"}}},
			{Data: &Node{ID: "c", Labels: []string{"Class"}}},
			{Data: &Node{ID: "m", Labels: []string{"Method"}}},
		},
		Edges: []EdgeElement{
			{Data: &Edge{Source: "p", Target: "c", Label: "contains"}},
			{Data: &Edge{Source: "c", Target: "m", Label: "hasScript"}},
			{Data: &Edge{Source: "p", Target: "m", Label: "contains"}},
		},
	}}

	nodes, edges, err := Transform(g)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}

	if len(nodes) != 3 {
		t.Errorf("nodes = %d, want 3", len(nodes))
	}
	if nodes["c"].Labels[0] != "Class" {
		t.Errorf("node c labels = %v", nodes["c"].Labels)
	}

	contains := edges["contains"]
	if len(contains) != 2 {
		t.Fatalf("contains group = %d edges, want 2", len(contains))
	}
	// Input order preserved within the group.
	if contains[0].Target != "c" || contains[1].Target != "m" {
		t.Errorf("contains order = [%s, %s], want [c, m]", contains[0].Target, contains[1].Target)
	}
	if len(edges["hasScript"]) != 1 {
		t.Errorf("hasScript group = %d edges, want 1", len(edges["hasScript"]))
	}
}

func TestTransformSynthesizesLabel(t *testing.T) {
	edge := &Edge{Source: "a", Target: "a", Labels: []string{"x", "y"}}
	g := &RawGraph{Elements: Elements{
		Nodes: []NodeElement{{Data: &Node{ID: "a"}}},
		Edges: []EdgeElement{{Data: edge}},
	}}

	_, edges, err := Transform(g)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}

	group, ok := edges["x,y"]
	if !ok || len(group) != 1 {
		t.Fatalf("edges[%q] = %v, want one edge", "x,y", group)
	}
	// The synthesized label is written back into the input edge.
	if edge.Label != "x,y" {
		t.Errorf("input edge label = %q, want %q", edge.Label, "x,y")
	}
	if group[0] != edge {
		t.Errorf("grouped edge is a copy, want the input edge itself")
	}
}

func TestTransformMissingLabelFails(t *testing.T) {
	g := &RawGraph{Elements: Elements{
		Edges: []EdgeElement{{Data: &Edge{Source: "a", Target: "b"}}},
	}}

	_, _, err := Transform(g)
	if !errors.Is(err, ErrMissingLabel) {
		t.Fatalf("Transform error = %v, want ErrMissingLabel", err)
	}
}

func TestTransformEmptyLabelsList(t *testing.T) {
	// A present-but-empty labels list synthesizes an empty label rather
	// than failing; only a fully absent list is an error.
	g := &RawGraph{Elements: Elements{
		Edges: []EdgeElement{{Data: &Edge{Source: "a", Target: "b", Labels: []string{}}}},
	}}

	_, edges, err := Transform(g)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if len(edges[""]) != 1 {
		t.Errorf("edges[\"\"] = %d edges, want 1", len(edges[""]))
	}
}

func TestEdgeWeight(t *testing.T) {
	tests := []struct {
		name string
		edge *Edge
		want float64
	}{
		{"no properties", &Edge{}, 1},
		{"no weight key", &Edge{Properties: map[string]any{"kind": "call"}}, 1},
		{"float weight", &Edge{Properties: map[string]any{"weight": 2.5}}, 2.5},
		{"int weight", &Edge{Properties: map[string]any{"weight": 3}}, 3},
		{"non-numeric weight", &Edge{Properties: map[string]any{"weight": "heavy"}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.edge.Weight(); got != tt.want {
				t.Errorf("Weight() = %v, want %v", got, tt.want)
			}
		})
	}
}
