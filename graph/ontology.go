package graph

import (
	"fmt"
	"slices"
)

// LabelPair is one (source-label, target-label) combination an edge
// connects. Sets of pairs describe the schema of a relation.
type LabelPair struct {
	Source string
	Target string
}

// AllLabels returns the union of every node's labels. Nodes without a
// labels list contribute nothing.
func AllLabels(nodes map[string]*Node) map[string]struct{} {
	labels := make(map[string]struct{})
	for _, n := range nodes {
		for _, l := range n.Labels {
			labels[l] = struct{}{}
		}
	}
	return labels
}

// EdgeNodeLabels returns the cartesian product of the source node's labels
// and the target node's labels for one edge. Both endpoints must resolve in
// the node map.
func EdgeNodeLabels(e *Edge, nodes map[string]*Node) ([]LabelPair, error) {
	src, ok := nodes[e.Source]
	if !ok {
		return nil, fmt.Errorf("graph: edge source %q: %w", e.Source, ErrNodeNotFound)
	}
	tgt, ok := nodes[e.Target]
	if !ok {
		return nil, fmt.Errorf("graph: edge target %q: %w", e.Target, ErrNodeNotFound)
	}

	pairs := make([]LabelPair, 0, len(src.Labels)*len(tgt.Labels))
	for _, sl := range src.Labels {
		for _, tl := range tgt.Labels {
			pairs = append(pairs, LabelPair{Source: sl, Target: tl})
		}
	}
	return pairs, nil
}

// SourceAndTargetLabels unions EdgeNodeLabels over an edge list.
func SourceAndTargetLabels(edges []*Edge, nodes map[string]*Node) (map[LabelPair]struct{}, error) {
	pairs := make(map[LabelPair]struct{})
	for _, e := range edges {
		edgePairs, err := EdgeNodeLabels(e, nodes)
		if err != nil {
			return nil, err
		}
		for _, p := range edgePairs {
			pairs[p] = struct{}{}
		}
	}
	return pairs, nil
}

// Ontology maps each edge label in the index to the set of label pairs that
// relation connects, summarizing the graph's schema.
func Ontology(edges map[string][]*Edge, nodes map[string]*Node) (map[string]map[LabelPair]struct{}, error) {
	ontology := make(map[string]map[LabelPair]struct{}, len(edges))
	for label, list := range edges {
		pairs, err := SourceAndTargetLabels(list, nodes)
		if err != nil {
			return nil, fmt.Errorf("graph: ontology for %q: %w", label, err)
		}
		ontology[label] = pairs
	}
	return ontology, nil
}

// FilterNodesByLabels keeps the nodes whose labels intersect the given set.
// A node with no labels list fails the filter outright, even when the
// wanted set is empty.
func FilterNodesByLabels(nodes map[string]*Node, labels []string) (map[string]*Node, error) {
	filtered := make(map[string]*Node)
	for id, n := range nodes {
		if n.Labels == nil {
			return nil, fmt.Errorf("graph: node %q: %w", id, ErrNoLabels)
		}
		for _, l := range n.Labels {
			if slices.Contains(labels, l) {
				filtered[id] = n
				break
			}
		}
	}
	return filtered, nil
}

// EdgesWithLabel keeps the edges whose both endpoints carry the given node
// label. Both endpoints must resolve in the node map.
func EdgesWithLabel(nodes map[string]*Node, edges []*Edge, label string) ([]*Edge, error) {
	var filtered []*Edge
	for _, e := range edges {
		src, ok := nodes[e.Source]
		if !ok {
			return nil, fmt.Errorf("graph: edge source %q: %w", e.Source, ErrNodeNotFound)
		}
		tgt, ok := nodes[e.Target]
		if !ok {
			return nil, fmt.Errorf("graph: edge target %q: %w", e.Target, ErrNodeNotFound)
		}
		if slices.Contains(src.Labels, label) && slices.Contains(tgt.Labels, label) {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

// ExtractEdges keeps the edges whose both endpoints belong to the selected
// node-id set.
func ExtractEdges(edges []*Edge, selected map[string]bool) []*Edge {
	var extracted []*Edge
	for _, e := range edges {
		if selected[e.Source] && selected[e.Target] {
			extracted = append(extracted, e)
		}
	}
	return extracted
}
