// Package workflow models a business-process workflow as a directed graph of
// typed nodes and edges, validates its structure, and translates it to and
// from the persisted workflow-definition wire shape.
package workflow

// NodeKind discriminates a node's behavior and the shape of its config.
type NodeKind string

const (
	KindStart        NodeKind = "start"
	KindEnd          NodeKind = "end"
	KindTask         NodeKind = "task"
	KindDecision     NodeKind = "decision"
	KindApproval     NodeKind = "approval"
	KindNotification NodeKind = "notification"
	KindIntegration  NodeKind = "integration"
	KindDelay        NodeKind = "delay"
)

// Position is a node's canvas coordinate. The core never interprets it; it is
// carried for the rendering layer.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node represents a single step in a workflow graph.
// Unknown kinds are legal: a definition written by a newer editor round-trips
// through this model without losing nodes.
type Node struct {
	ID       string   `json:"id"`
	Kind     NodeKind `json:"kind"`
	Position Position `json:"position"`
	Label    string   `json:"label"`
	Config   Config   `json:"config"`
}

// Edge represents a directed connection between two nodes.
// Condition is an optional branch predicate evaluated by the engine; the
// core treats it as opaque JSON.
type Edge struct {
	ID        string         `json:"id"`
	Source    string         `json:"source"`
	Target    string         `json:"target"`
	Condition map[string]any `json:"condition,omitempty"`
	Label     string         `json:"label,omitempty"`
}
