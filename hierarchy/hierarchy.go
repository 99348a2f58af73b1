// Package hierarchy derives the package → class → method structure of an
// analyzed project from its knowledge graph, as preparation for bottom-up
// summarization.
package hierarchy

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/roastland/HnV-software-knowledge-analysis/graph"
)

// Relation labels the analysis tool exports for structural containment.
const (
	RelContains  = "contains"  // package contains class
	RelHasScript = "hasScript" // class has method
)

// ErrMissingRelation is returned when the edge index lacks one of the
// structural relations the hierarchy is built from.
var ErrMissingRelation = errors.New("hierarchy: structural relation missing from graph")

// ErrNodeNotFound is returned when a hierarchy member id does not resolve
// in the node map.
var ErrNodeNotFound = errors.New("hierarchy: node not found")

// Hierarchy maps package id → class id → sorted method ids.
type Hierarchy map[string]map[string][]string

// Packages returns the package ids in sorted order.
func (h Hierarchy) Packages() []string {
	pkgs := make([]string, 0, len(h))
	for pkg := range h {
		pkgs = append(pkgs, pkg)
	}
	slices.Sort(pkgs)
	return pkgs
}

// Classes returns the class ids of a package in sorted order.
func (h Hierarchy) Classes(pkg string) []string {
	classes := make([]string, 0, len(h[pkg]))
	for cls := range h[pkg] {
		classes = append(classes, cls)
	}
	slices.Sort(classes)
	return classes
}

// Methods returns the method ids of a class, already sorted by Build.
func (h Hierarchy) Methods(pkg, cls string) []string {
	return h[pkg][cls]
}

// Build derives the hierarchy from the contains and hasScript relations:
// each (package, class, method) triple is a contains edge joined to a
// hasScript edge. Every member node gets a description property slot so the
// summarizer can fill it in later.
func Build(nodes map[string]*graph.Node, edges map[string][]*graph.Edge) (Hierarchy, error) {
	contains, ok := edges[RelContains]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingRelation, RelContains)
	}
	hasScript, ok := edges[RelHasScript]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingRelation, RelHasScript)
	}

	methods := sortedPaths(graph.FindPaths(contains, hasScript))
	slog.Info("hierarchy: methods", "count", len(methods))

	type pkgClass struct{ pkg, cls string }
	classSet := make(map[pkgClass]struct{})
	pkgSet := make(map[string]struct{})
	for _, m := range methods {
		classSet[pkgClass{m.Start, m.Mid}] = struct{}{}
		pkgSet[m.Start] = struct{}{}
	}
	slog.Info("hierarchy: classes", "count", len(classSet))
	slog.Info("hierarchy: packages", "count", len(pkgSet))

	for _, m := range methods {
		for _, id := range []string{m.Start, m.Mid, m.End} {
			if err := ensureDescriptionSlot(nodes, id); err != nil {
				return nil, err
			}
		}
	}

	h := make(Hierarchy, len(pkgSet))
	for _, m := range methods {
		classes, ok := h[m.Start]
		if !ok {
			classes = make(map[string][]string)
			h[m.Start] = classes
		}
		classes[m.Mid] = append(classes[m.Mid], m.End)
	}
	slog.Info("hierarchy: built", "packages", len(h))
	return h, nil
}

// sortedPaths orders a path set lexicographically by (start, mid, end).
func sortedPaths(paths map[graph.Path]struct{}) []graph.Path {
	sorted := make([]graph.Path, 0, len(paths))
	for p := range paths {
		sorted = append(sorted, p)
	}
	slices.SortFunc(sorted, func(a, b graph.Path) int {
		if c := strings.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		if c := strings.Compare(a.Mid, b.Mid); c != 0 {
			return c
		}
		return strings.Compare(a.End, b.End)
	})
	return sorted
}

func ensureDescriptionSlot(nodes map[string]*graph.Node, id string) error {
	n, ok := nodes[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	if n.Properties == nil {
		n.Properties = make(map[string]any, 1)
	}
	if _, ok := n.Properties["description"]; !ok {
		n.Properties["description"] = nil
	}
	return nil
}

// describeKeys is the fixed property order used when rendering a node's
// accumulated annotations into prompt context.
var describeKeys = []string{
	"description", "reason", "howToUse", "howItWorks",
	"assertions", "roleStereotype", "layer",
}

// Describe renders a node's annotation properties as a sequence of
// "**key**: value. " fragments in a fixed order, skipping absent keys.
func Describe(n *graph.Node) string {
	var b strings.Builder
	for _, key := range describeKeys {
		v, ok := n.Properties[key]
		if !ok || v == nil {
			continue
		}
		fmt.Fprintf(&b, "**%s**: %v. ", key, v)
	}
	return b.String()
}
