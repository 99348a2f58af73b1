package graph

import "errors"

var (
	// ErrMissingLabel is returned by Transform for an edge that carries
	// neither a label nor a labels list to synthesize one from.
	ErrMissingLabel = errors.New("graph: edge has no label or labels")

	// ErrNodeNotFound is returned by label-aware operations when an edge
	// endpoint references a node id absent from the node map.
	ErrNodeNotFound = errors.New("graph: node not found")

	// ErrNoLabels is returned when filtering nodes that lack a labels list.
	ErrNoLabels = errors.New("graph: node has no labels")
)
