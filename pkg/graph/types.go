package graph

import (
	"bytes"
	"encoding/json"
	"math"

	"github.com/matzehuels/waypoint/pkg/errors"
)

// =============================================================================
// Graph - Node-Link Serialization
// =============================================================================

// Graph is the in-memory form of a map document: a set of identified nodes
// and undirected weighted edges between them.
//
// The zero value is an empty graph. It serializes with empty arrays rather
// than null so clients can always iterate nodes and edges.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Empty returns a graph with no nodes and no edges.
// Servers fall back to it when the configured graph cannot be loaded.
func Empty() Graph {
	return Graph{Nodes: []Node{}, Edges: []Edge{}}
}

// NodeCount returns the number of nodes in the graph.
func (g Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of edges in the graph.
func (g Graph) EdgeCount() int { return len(g.Edges) }

// MarshalJSON encodes the graph, writing nil slices as empty arrays.
func (g Graph) MarshalJSON() ([]byte, error) {
	type wire struct {
		Nodes []Node `json:"nodes"`
		Edges []Edge `json:"edges"`
	}
	w := wire{Nodes: g.Nodes, Edges: g.Edges}
	if w.Nodes == nil {
		w.Nodes = []Node{}
	}
	if w.Edges == nil {
		w.Edges = []Edge{}
	}
	return json.Marshal(w)
}

// =============================================================================
// Node
// =============================================================================

// Node is a graph vertex. Only ID is interpreted; the remaining attributes
// (display name, coordinates, ...) are carried as the raw JSON object the
// node was parsed from.
type Node struct {
	ID string

	raw json.RawMessage
}

// Raw returns the JSON object the node was parsed from, or nil for nodes
// constructed in code. Callers must not modify the returned bytes.
func (n Node) Raw() json.RawMessage { return n.raw }

// MarshalJSON writes the original JSON object when the node was parsed,
// and {"id": ...} otherwise.
func (n Node) MarshalJSON() ([]byte, error) {
	if len(n.raw) > 0 {
		return n.raw, nil
	}
	return json.Marshal(struct {
		ID string `json:"id"`
	}{n.ID})
}

// UnmarshalJSON decodes a node object, requiring a string "id".
func (n *Node) UnmarshalJSON(data []byte) error {
	parsed, err := parseNode(data)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// =============================================================================
// Edge - Undirected Weighted Connection
// =============================================================================

// Edge connects Source and Target in both directions with the same Weight.
// Extra edge attributes are preserved like node attributes.
type Edge struct {
	Source string
	Target string
	Weight float64

	raw json.RawMessage
}

// Raw returns the JSON object the edge was parsed from, or nil for edges
// constructed in code.
func (e Edge) Raw() json.RawMessage { return e.raw }

// MarshalJSON writes the original JSON object when the edge was parsed.
func (e Edge) MarshalJSON() ([]byte, error) {
	if len(e.raw) > 0 {
		return e.raw, nil
	}
	return json.Marshal(struct {
		Source string  `json:"source"`
		Target string  `json:"target"`
		Weight float64 `json:"weight"`
	}{e.Source, e.Target, e.Weight})
}

// UnmarshalJSON decodes an edge object, requiring source, target and weight.
func (e *Edge) UnmarshalJSON(data []byte) error {
	parsed, err := parseEdge(data)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// =============================================================================
// Parsing & Validation
// =============================================================================

// Parse decodes a graph document and validates it.
//
// Both top-level keys must be present. Errors name the position of the
// offending element, e.g. "edge 3: missing weight", and carry the
// MALFORMED_GRAPH code.
func Parse(data []byte) (Graph, error) {
	var doc struct {
		Nodes *[]json.RawMessage `json:"nodes"`
		Edges *[]json.RawMessage `json:"edges"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return Graph{}, errors.Wrap(errors.ErrCodeMalformedGraph, err, "decode graph")
	}
	if doc.Nodes == nil {
		return Graph{}, errors.Malformed("missing \"nodes\" array")
	}
	if doc.Edges == nil {
		return Graph{}, errors.Malformed("missing \"edges\" array")
	}

	g := Graph{
		Nodes: make([]Node, 0, len(*doc.Nodes)),
		Edges: make([]Edge, 0, len(*doc.Edges)),
	}
	for i, raw := range *doc.Nodes {
		n, err := parseNode(raw)
		if err != nil {
			return Graph{}, positioned("node", i, err)
		}
		g.Nodes = append(g.Nodes, n)
	}
	for i, raw := range *doc.Edges {
		e, err := parseEdge(raw)
		if err != nil {
			return Graph{}, positioned("edge", i, err)
		}
		g.Edges = append(g.Edges, e)
	}

	if err := g.Validate(); err != nil {
		return Graph{}, err
	}
	return g, nil
}

// Validate checks the graph invariants: non-empty unique node ids, finite
// non-negative weights with a finite total, and edges that only reference
// declared nodes. A finite total keeps every path distance representable.
func (g Graph) Validate() error {
	seen := make(map[string]struct{}, len(g.Nodes))
	for i, n := range g.Nodes {
		if err := errors.ValidateNodeID(n.ID); err != nil {
			return positioned("node", i, err)
		}
		if _, dup := seen[n.ID]; dup {
			return errors.Malformed("node %d: duplicate id %q", i, n.ID)
		}
		seen[n.ID] = struct{}{}
	}

	var total float64
	for i, e := range g.Edges {
		if math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) {
			return errors.Malformed("edge %d: weight must be finite", i)
		}
		if e.Weight < 0 {
			return errors.Malformed("edge %d: negative weight %v", i, e.Weight)
		}
		if total += e.Weight; math.IsInf(total, 1) {
			return errors.Malformed("edge %d: total edge weight overflows", i)
		}
		if _, ok := seen[e.Source]; !ok {
			return errors.Malformed("edge %d: unknown source node %q", i, e.Source)
		}
		if _, ok := seen[e.Target]; !ok {
			return errors.Malformed("edge %d: unknown target node %q", i, e.Target)
		}
	}
	return nil
}

// positioned attributes err to the i-th node or edge. Coded errors are
// flattened into a single MALFORMED_GRAPH message; decoder errors are wrapped.
func positioned(kind string, i int, err error) *errors.Error {
	if errors.GetCode(err) != "" {
		return errors.Malformed("%s %d: %s", kind, i, errors.UserMessage(err))
	}
	return errors.Wrap(errors.ErrCodeMalformedGraph, err, "%s %d", kind, i)
}

func parseNode(data []byte) (Node, error) {
	var probe struct {
		ID *string `json:"id"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return Node{}, err
	}
	if probe.ID == nil {
		return Node{}, errors.Malformed("missing string field \"id\"")
	}
	return Node{ID: *probe.ID, raw: compact(data)}, nil
}

func parseEdge(data []byte) (Edge, error) {
	var probe struct {
		Source *string  `json:"source"`
		Target *string  `json:"target"`
		Weight *float64 `json:"weight"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return Edge{}, err
	}
	switch {
	case probe.Source == nil:
		return Edge{}, errors.Malformed("missing string field \"source\"")
	case probe.Target == nil:
		return Edge{}, errors.Malformed("missing string field \"target\"")
	case probe.Weight == nil:
		return Edge{}, errors.Malformed("missing numeric field \"weight\"")
	}
	return Edge{
		Source: *probe.Source,
		Target: *probe.Target,
		Weight: *probe.Weight,
		raw:    compact(data),
	}, nil
}

// compact copies data without insignificant whitespace so the retained
// payload does not alias the decoder's buffer.
func compact(data []byte) json.RawMessage {
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return append(json.RawMessage(nil), data...)
	}
	return buf.Bytes()
}
