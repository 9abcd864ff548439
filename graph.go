package workflow

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

// Graph is the single source of truth for a workflow under edit: the node and
// edge sets plus transient selection state. All mutation goes through the
// methods below so downstream consumers (canvas, properties panel) stay
// consistent; Nodes and Edges are exported for reading only.
//
// A Graph is not safe for concurrent mutation. The editor issues one mutation
// at a time from synchronous event handlers, so no locking is done here.
type Graph struct {
	Nodes []Node
	Edges []Edge

	selected string
	nextID   int
	log      *slog.Logger
}

// New returns an empty graph. A nil logger discards the reference-error
// warnings the mutation methods emit.
func New(logger *slog.Logger) *Graph {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Graph{log: logger}
}

// SetLogger replaces the graph's logger. Nil discards.
func (g *Graph) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	g.log = logger
}

// NodeUpdate is a partial update applied to a node. Nil fields are left
// unchanged.
type NodeUpdate struct {
	Label    *string
	Position *Position
	Config   Config
}

// AddNode appends a new node of the given kind and returns a copy of it.
// Ids are "<kind>-<n>" with n strictly increasing for the lifetime of the
// graph; deleting nodes never frees an id for reuse.
func (g *Graph) AddNode(kind NodeKind, pos Position) Node {
	g.nextID++
	n := Node{
		ID:       fmt.Sprintf("%s-%d", kind, g.nextID),
		Kind:     kind,
		Position: pos,
		Label:    defaultLabel(kind),
		Config:   DefaultConfig(kind),
	}
	g.Nodes = append(g.Nodes, n)
	return n
}

// UpdateNode merges upd into the node with the given id. Updating an unknown
// id is a logged no-op: the properties panel may race with a deletion, and
// that race is benign.
func (g *Graph) UpdateNode(id string, upd NodeUpdate) {
	i := g.nodeIndex(id)
	if i < 0 {
		g.log.Warn("update on unknown node", "node_id", id)
		return
	}
	n := &g.Nodes[i]
	if upd.Label != nil {
		n.Label = *upd.Label
	}
	if upd.Position != nil {
		n.Position = *upd.Position
	}
	if upd.Config != nil {
		n.Config = upd.Config
	}
}

// DeleteNode removes the node and every edge that references it, and clears
// the selection if the deleted node was selected. Deleting an unknown id is a
// no-op.
func (g *Graph) DeleteNode(id string) {
	i := g.nodeIndex(id)
	if i < 0 {
		return
	}
	g.Nodes = append(g.Nodes[:i], g.Nodes[i+1:]...)

	kept := g.Edges[:0]
	for _, e := range g.Edges {
		if e.Source != id && e.Target != id {
			kept = append(kept, e)
		}
	}
	g.Edges = kept

	if g.selected == id {
		g.selected = ""
	}
}

// Connect adds a directed edge from source to target and returns a copy of
// it. Edges must reference live nodes: a missing endpoint makes the call a
// logged no-op returning nil. Duplicate edges between the same ordered pair
// and self-loops are created freely; the validator flags them later.
func (g *Graph) Connect(source, target string) *Edge {
	if g.nodeIndex(source) < 0 || g.nodeIndex(target) < 0 {
		g.log.Warn("connect on unknown node", "source", source, "target", target)
		return nil
	}
	e := Edge{
		ID:     fmt.Sprintf("edge-%s-%s", source, target),
		Source: source,
		Target: target,
	}
	g.Edges = append(g.Edges, e)
	return &e
}

// Disconnect removes the edge with the given id. Unknown ids are a no-op.
func (g *Graph) Disconnect(edgeID string) {
	for i, e := range g.Edges {
		if e.ID == edgeID {
			g.Edges = append(g.Edges[:i], g.Edges[i+1:]...)
			return
		}
	}
}

// Select marks the node as the single selected node. Selecting an unknown id
// is a logged no-op.
func (g *Graph) Select(id string) {
	if g.nodeIndex(id) < 0 {
		g.log.Warn("select on unknown node", "node_id", id)
		return
	}
	g.selected = id
}

// ClearSelection deselects whatever node is selected.
func (g *Graph) ClearSelection() {
	g.selected = ""
}

// Selected returns the currently selected node, if any.
func (g *Graph) Selected() (Node, bool) {
	return g.FindNode(g.selected)
}

// FindNode returns a copy of the node with the given id.
func (g *Graph) FindNode(id string) (Node, bool) {
	if i := g.nodeIndex(id); i >= 0 {
		return g.Nodes[i], true
	}
	return Node{}, false
}

// FindEdge returns a copy of the edge with the given id.
func (g *Graph) FindEdge(id string) (Edge, bool) {
	for _, e := range g.Edges {
		if e.ID == id {
			return e, true
		}
	}
	return Edge{}, false
}

func (g *Graph) nodeIndex(id string) int {
	if id == "" {
		return -1
	}
	for i, n := range g.Nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// defaultLabel title-cases the kind and appends " Node": "task" → "Task Node".
func defaultLabel(kind NodeKind) string {
	k := string(kind)
	if k == "" {
		return "Node"
	}
	return strings.ToUpper(k[:1]) + k[1:] + " Node"
}

// restoreCounter advances nextID past the highest "<kind>-<n>" suffix seen in
// the current node set, so ids assigned after a load never collide.
func (g *Graph) restoreCounter() {
	max := 0
	for _, n := range g.Nodes {
		i := strings.LastIndex(n.ID, "-")
		if i < 0 {
			continue
		}
		if v, err := strconv.Atoi(n.ID[i+1:]); err == nil && v > max {
			max = v
		}
	}
	g.nextID = max
}
