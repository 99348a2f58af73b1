// Package graph implements an in-memory relational algebra over the
// directed, labeled, weighted edges of a software knowledge graph.
//
// The graph arrives as a JSON export from a code-analysis tool (the
// cytoscape-style {elements:{nodes,edges}} shape). Transform reorganizes it
// into typed lookup structures; the algebra operations (Invert, Compose,
// Lift, FindPaths) and the ontology/filter helpers then operate on those
// structures without touching disk.
package graph

import (
	"fmt"
	"strings"
)

// Node is a graph vertex: a package, class, or method of the analyzed
// project. Labels classify the node's role; Properties carry annotations
// such as source text and generated descriptions.
type Node struct {
	ID         string         `json:"id"`
	Labels     []string       `json:"labels,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Edge is a directed relation between two node ids. Label is required after
// Transform; raw exports may carry only Labels, from which Transform
// synthesizes one. The edge weight lives in Properties under "weight".
type Edge struct {
	Source     string         `json:"source"`
	Target     string         `json:"target"`
	Label      string         `json:"label,omitempty"`
	Labels     []string       `json:"labels,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Weight returns the edge weight from properties, defaulting to 1 when the
// property is absent or not numeric. JSON numbers decode as float64; the
// int case covers edges built in code.
func (e *Edge) Weight() float64 {
	if e.Properties == nil {
		return 1
	}
	switch w := e.Properties["weight"].(type) {
	case float64:
		return w
	case int:
		return float64(w)
	default:
		return 1
	}
}

// SetWeight stores the edge weight, allocating the property map if needed.
func (e *Edge) SetWeight(w float64) {
	if e.Properties == nil {
		e.Properties = make(map[string]any, 1)
	}
	e.Properties["weight"] = w
}

// NodeElement and EdgeElement mirror the export's {data: ...} wrappers.
type NodeElement struct {
	Data *Node `json:"data"`
}

type EdgeElement struct {
	Data *Edge `json:"data"`
}

// Elements holds the node and edge lists of a raw graph document.
type Elements struct {
	Nodes []NodeElement `json:"nodes"`
	Edges []EdgeElement `json:"edges"`
}

// RawGraph is the top-level graph document as exported by the analysis tool.
type RawGraph struct {
	Elements Elements `json:"elements"`
}

// Transform reorganizes a raw graph into an id-keyed node map and a
// label-keyed edge index. Edges lacking a label get one synthesized by
// joining their Labels with commas; the synthesized label is written back
// into the edge so callers holding the raw document observe it. Input order
// is preserved within each label group.
//
// An edge with neither a label nor a labels list fails the transform.
func Transform(g *RawGraph) (map[string]*Node, map[string][]*Edge, error) {
	nodes := make(map[string]*Node, len(g.Elements.Nodes))
	for _, el := range g.Elements.Nodes {
		nodes[el.Data.ID] = el.Data
	}

	edges := make(map[string][]*Edge)
	for i, el := range g.Elements.Edges {
		e := el.Data
		if e.Label == "" {
			if e.Labels == nil {
				return nil, nil, fmt.Errorf("graph.Transform: edge %d (%s -> %s): %w",
					i, e.Source, e.Target, ErrMissingLabel)
			}
			e.Label = strings.Join(e.Labels, ",")
		}
		edges[e.Label] = append(edges[e.Label], e)
	}
	return nodes, edges, nil
}
