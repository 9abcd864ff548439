package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// buildGraph wires nodes by kind and edges by index into those nodes.
func buildGraph(t *testing.T, kinds []NodeKind, edges [][2]int) *Graph {
	t.Helper()
	g := New(nil)
	ids := make([]string, len(kinds))
	for i, k := range kinds {
		ids[i] = g.AddNode(k, Position{}).ID
	}
	for _, e := range edges {
		g.Connect(ids[e[0]], ids[e[1]])
	}
	return g
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		kinds []NodeKind
		edges [][2]int
		want  []string
	}{
		{
			name:  "lone start node only misses an end",
			kinds: []NodeKind{KindStart},
			want:  []string{"Workflow must have at least one end node"},
		},
		{
			name:  "minimal valid workflow",
			kinds: []NodeKind{KindStart, KindEnd},
			edges: [][2]int{{0, 1}},
			want:  []string{},
		},
		{
			name:  "no start node",
			kinds: []NodeKind{KindTask, KindEnd},
			edges: [][2]int{{0, 1}},
			want:  []string{"Workflow must have a start node"},
		},
		{
			name:  "two start nodes",
			kinds: []NodeKind{KindStart, KindStart, KindEnd},
			edges: [][2]int{{0, 2}, {1, 2}},
			want:  []string{"Workflow can only have one start node"},
		},
		{
			name:  "no end node",
			kinds: []NodeKind{KindStart, KindTask},
			edges: [][2]int{{0, 1}},
			want:  []string{"Workflow must have at least one end node"},
		},
		{
			name:  "multiple end nodes are fine",
			kinds: []NodeKind{KindStart, KindDecision, KindEnd, KindEnd},
			edges: [][2]int{{0, 1}, {1, 2}, {1, 3}},
			want:  []string{},
		},
		{
			name:  "orphans are counted",
			kinds: []NodeKind{KindStart, KindEnd, KindTask, KindNotification},
			edges: [][2]int{{0, 1}},
			want:  []string{"Found 2 orphaned node(s)"},
		},
		{
			name:  "cycle through the start node",
			kinds: []NodeKind{KindStart, KindTask, KindEnd},
			edges: [][2]int{{0, 1}, {1, 0}, {1, 2}},
			want:  []string{"Workflow contains cycles"},
		},
		{
			name:  "self-loop counts as a cycle",
			kinds: []NodeKind{KindStart, KindTask, KindEnd},
			edges: [][2]int{{0, 1}, {1, 1}, {1, 2}},
			want:  []string{"Workflow contains cycles"},
		},
		{
			name:  "diamond is acyclic",
			kinds: []NodeKind{KindStart, KindDecision, KindTask, KindTask, KindEnd},
			edges: [][2]int{{0, 1}, {1, 2}, {1, 3}, {2, 4}, {3, 4}},
			want:  []string{},
		},
		{
			name:  "cycle in a detached component",
			kinds: []NodeKind{KindStart, KindEnd, KindTask, KindTask},
			edges: [][2]int{{0, 1}, {2, 3}, {3, 2}},
			want:  []string{"Workflow contains cycles"},
		},
		{
			name:  "every problem reported at once",
			kinds: []NodeKind{KindTask, KindTask, KindNotification},
			edges: [][2]int{{0, 1}, {1, 0}},
			want: []string{
				"Workflow must have a start node",
				"Workflow must have at least one end node",
				"Found 1 orphaned node(s)",
				"Workflow contains cycles",
			},
		},
		{
			name: "empty graph",
			want: []string{
				"Workflow must have a start node",
				"Workflow must have at least one end node",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := buildGraph(t, tt.kinds, tt.edges)
			assert.Equal(t, tt.want, g.Validate())
		})
	}
}

func TestValidateIsPure(t *testing.T) {
	g := buildGraph(t,
		[]NodeKind{KindStart, KindTask, KindEnd},
		[][2]int{{0, 1}, {1, 0}})

	first := g.Validate()
	second := g.Validate()

	assert.Equal(t, first, second)
	assert.Len(t, g.Nodes, 3)
	assert.Len(t, g.Edges, 2)
}
