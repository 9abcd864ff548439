package workflow

import (
	"encoding/json"
	"fmt"
)

// Definition is the persisted wire shape of a workflow: the node list, the
// connection list, and the top-level engine settings. ID is assigned by the
// store on first save.
type Definition struct {
	ID          string           `json:"id,omitempty"`
	Nodes       []DefinitionNode `json:"nodes"`
	Connections []Connection     `json:"connections"`
	Settings    map[string]any   `json:"workflow_definition"`
}

// DefinitionNode is a node as persisted.
type DefinitionNode struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Name     string          `json:"name"`
	Position Position        `json:"position"`
	Config   json.RawMessage `json:"config"`
}

// Connection is an edge as persisted. Condition is always an object and
// Label always a string, defaulted when the edge left them unset.
type Connection struct {
	ID        string          `json:"id"`
	Source    string          `json:"source"`
	Target    string          `json:"target"`
	Condition json.RawMessage `json:"condition"`
	Label     string          `json:"label"`
}

// ToDefinition converts the graph into its persisted shape. Selection state
// is not serialized. A config or condition that is not JSON-serializable is
// a programming error in the producer and is returned wrapped in
// ErrNotSerializable.
func (g *Graph) ToDefinition(settings map[string]any) (*Definition, error) {
	if settings == nil {
		settings = map[string]any{}
	}
	def := &Definition{
		Nodes:       make([]DefinitionNode, 0, len(g.Nodes)),
		Connections: make([]Connection, 0, len(g.Edges)),
		Settings:    settings,
	}

	for _, n := range g.Nodes {
		cfg := n.Config
		if cfg == nil {
			cfg = DefaultConfig(n.Kind)
		}
		raw, err := json.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: node %s config: %v", ErrNotSerializable, n.ID, err)
		}
		def.Nodes = append(def.Nodes, DefinitionNode{
			ID:       n.ID,
			Type:     string(n.Kind),
			Name:     n.Label,
			Position: n.Position,
			Config:   raw,
		})
	}

	for _, e := range g.Edges {
		cond := json.RawMessage(`{}`)
		if len(e.Condition) > 0 {
			raw, err := json.Marshal(e.Condition)
			if err != nil {
				return nil, fmt.Errorf("%w: edge %s condition: %v", ErrNotSerializable, e.ID, err)
			}
			cond = raw
		}
		def.Connections = append(def.Connections, Connection{
			ID:        e.ID,
			Source:    e.Source,
			Target:    e.Target,
			Condition: cond,
			Label:     e.Label,
		})
	}

	return def, nil
}

// FromDefinition reconstructs editor state from a persisted definition.
// Unknown node types survive as opaque kinds rather than being dropped, so
// ToDefinition followed by FromDefinition is lossless for any graph whose
// payloads are JSON-representable. The returned graph's id counter is
// advanced past every id seen, and its logger discards until SetLogger.
func FromDefinition(def *Definition) (*Graph, error) {
	g := New(nil)

	for _, dn := range def.Nodes {
		kind := NodeKind(dn.Type)
		cfg, err := decodeConfig(kind, dn.Config)
		if err != nil {
			return nil, err
		}
		g.Nodes = append(g.Nodes, Node{
			ID:       dn.ID,
			Kind:     kind,
			Position: dn.Position,
			Label:    dn.Name,
			Config:   cfg,
		})
	}

	for _, c := range def.Connections {
		var cond map[string]any
		if len(c.Condition) > 0 {
			if err := json.Unmarshal(c.Condition, &cond); err != nil {
				return nil, fmt.Errorf("workflow: decode connection %s condition: %w", c.ID, err)
			}
		}
		// An empty condition object means "unconditional"; normalize it
		// back to nil so round-tripping is exact.
		if len(cond) == 0 {
			cond = nil
		}
		g.Edges = append(g.Edges, Edge{
			ID:        c.ID,
			Source:    c.Source,
			Target:    c.Target,
			Condition: cond,
			Label:     c.Label,
		})
	}

	g.restoreCounter()
	return g, nil
}
