package graph

// invPrefix marks an edge produced by Invert. Inversion is deliberately not
// self-inverse on labels: inverting twice restores the endpoints but leaves
// a doubled prefix.
const invPrefix = "inv_"

// Fallback labels for edges composed before any label was assigned. The
// right-hand default differs from the left-hand one so a synthesized
// composite label still identifies which operand was unlabeled.
const (
	defaultLabelLeft  = "edge2"
	defaultLabelRight = "edge1"
)

// Invert returns a new edge list with source and target swapped and the
// label prefixed with "inv_" (an unlabeled edge inverts to "inv_edge").
// Copies are shallow: the property map is shared with the input edge.
// Order is preserved and nothing is deduplicated.
func Invert(edges []*Edge) []*Edge {
	inverted := make([]*Edge, 0, len(edges))
	for _, e := range edges {
		label := e.Label
		if label == "" {
			label = "edge"
		}
		inverted = append(inverted, &Edge{
			Source:     e.Target,
			Target:     e.Source,
			Label:      invPrefix + label,
			Labels:     e.Labels,
			Properties: e.Properties,
		})
	}
	return inverted
}

// hop is the l2-side lookup entry used by Compose.
type hop struct {
	target string
	label  string
	weight float64
}

// pair keys a composed edge by its endpoints.
type pair struct {
	source string
	target string
}

// Compose joins two edge lists on l1.target == l2.source, multiplying
// weights. When l2 holds several edges with the same source, the last one in
// list order wins the join index; earlier ones are silently shadowed. When
// several l1 edges compose to the same (source, target), their weights
// accumulate on a single output edge whose label is fixed by the first
// occurrence. newlabel, when non-empty, overrides the synthesized
// "<l1 label>-<l2 label>" composite. Output order follows the first
// occurrence over l1.
func Compose(l1, l2 []*Edge, newlabel string) []*Edge {
	index := make(map[string]hop, len(l2))
	for _, e := range l2 {
		label := e.Label
		if label == "" {
			label = defaultLabelRight
		}
		index[e.Source] = hop{target: e.Target, label: label, weight: e.Weight()}
	}

	byPair := make(map[pair]*Edge)
	var order []*Edge
	for _, e := range l1 {
		h, ok := index[e.Target]
		if !ok {
			continue
		}
		weight := e.Weight() * h.weight
		key := pair{source: e.Source, target: h.target}
		if existing, ok := byPair[key]; ok {
			existing.SetWeight(existing.Weight() + weight)
			continue
		}
		label := newlabel
		if label == "" {
			left := e.Label
			if left == "" {
				left = defaultLabelLeft
			}
			label = left + "-" + h.label
		}
		composed := &Edge{
			Source:     e.Source,
			Target:     h.target,
			Label:      label,
			Properties: map[string]any{"weight": weight},
		}
		byPair[key] = composed
		order = append(order, composed)
	}
	return order
}

// Lift composes rel1 with rel2 and then with the inversion of rel1,
// producing a relation over rel1's source-id space. An edge a -> a' appears
// when a reaches some node via rel1 then rel2, and a' reaches the same node
// via rel1; its weight is the product of the three hop weights, accumulated
// per Compose's rule.
func Lift(rel1, rel2 []*Edge, newlabel string) []*Edge {
	return Compose(Compose(rel1, rel2, ""), Invert(rel1), newlabel)
}

// Path is a three-node walk discovered by FindPaths. The fixed field layout
// gives structural equality, so paths collect into a set.
type Path struct {
	Start string
	Mid   string
	End   string
}

// FindPaths connects e1 into e2: for every e2 edge whose source is the
// target of some e1 edge, it emits (e1 source, e2 source, e2 target).
// Duplicate e1 targets resolve last-write-wins, matching Compose's index
// policy. The result is a set; duplicates collapse and iteration order is
// unspecified.
func FindPaths(e1, e2 []*Edge) map[Path]struct{} {
	sources := make(map[string]string, len(e1))
	for _, e := range e1 {
		sources[e.Target] = e.Source
	}

	paths := make(map[Path]struct{})
	for _, e := range e2 {
		if start, ok := sources[e.Source]; ok {
			paths[Path{Start: start, Mid: e.Source, End: e.Target}] = struct{}{}
		}
	}
	return paths
}
