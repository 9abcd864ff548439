package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddNode(t *testing.T) {
	t.Run("assigns id, label and default config", func(t *testing.T) {
		g := New(nil)

		n := g.AddNode(KindDecision, Position{X: 1, Y: 1})

		assert.Equal(t, "decision-1", n.ID)
		assert.Equal(t, KindDecision, n.Kind)
		assert.Equal(t, Position{X: 1, Y: 1}, n.Position)
		assert.Equal(t, "Decision Node", n.Label)
		assert.Equal(t, DecisionConfig{Condition: Condition{Field: "", Operator: "equals", Value: ""}}, n.Config)
	})

	t.Run("counter is monotonic across kinds", func(t *testing.T) {
		g := New(nil)

		a := g.AddNode(KindStart, Position{})
		b := g.AddNode(KindTask, Position{})
		c := g.AddNode(KindEnd, Position{})

		assert.Equal(t, "start-1", a.ID)
		assert.Equal(t, "task-2", b.ID)
		assert.Equal(t, "end-3", c.ID)
	})

	t.Run("ids are never reused after deletion", func(t *testing.T) {
		g := New(nil)

		a := g.AddNode(KindTask, Position{})
		g.DeleteNode(a.ID)
		b := g.AddNode(KindTask, Position{})

		assert.Equal(t, "task-1", a.ID)
		assert.Equal(t, "task-2", b.ID)
	})
}

func TestUpdateNode(t *testing.T) {
	t.Run("merges partial update", func(t *testing.T) {
		g := New(nil)
		n := g.AddNode(KindTask, Position{X: 1, Y: 2})

		label := "Fetch inventory"
		g.UpdateNode(n.ID, NodeUpdate{Label: &label})

		got, ok := g.FindNode(n.ID)
		require.True(t, ok)
		assert.Equal(t, "Fetch inventory", got.Label)
		// Untouched fields survive.
		assert.Equal(t, Position{X: 1, Y: 2}, got.Position)
		assert.Equal(t, TaskConfig{TaskType: "custom", Description: "", Timeout: 300}, got.Config)
	})

	t.Run("replaces config when given", func(t *testing.T) {
		g := New(nil)
		n := g.AddNode(KindDelay, Position{})

		g.UpdateNode(n.ID, NodeUpdate{Config: DelayConfig{DelaySeconds: 900}})

		got, _ := g.FindNode(n.ID)
		assert.Equal(t, DelayConfig{DelaySeconds: 900}, got.Config)
		assert.Equal(t, "Delay Node", got.Label)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		g := New(nil)
		g.AddNode(KindTask, Position{})

		label := "ghost"
		assert.NotPanics(t, func() {
			g.UpdateNode("task-99", NodeUpdate{Label: &label})
		})
		assert.Len(t, g.Nodes, 1)
		assert.Equal(t, "Task Node", g.Nodes[0].Label)
	})
}

func TestDeleteNode(t *testing.T) {
	t.Run("cascades to incident edges", func(t *testing.T) {
		g := New(nil)
		start := g.AddNode(KindStart, Position{})
		task := g.AddNode(KindTask, Position{})
		end := g.AddNode(KindEnd, Position{})
		g.Connect(start.ID, task.ID)
		g.Connect(task.ID, end.ID)
		g.Connect(start.ID, end.ID)

		g.DeleteNode(task.ID)

		assert.Len(t, g.Nodes, 2)
		require.Len(t, g.Edges, 1)
		assert.Equal(t, start.ID, g.Edges[0].Source)
		assert.Equal(t, end.ID, g.Edges[0].Target)
	})

	t.Run("clears selection of the deleted node", func(t *testing.T) {
		g := New(nil)
		n := g.AddNode(KindTask, Position{})
		g.Select(n.ID)

		g.DeleteNode(n.ID)

		_, ok := g.Selected()
		assert.False(t, ok)
	})

	t.Run("keeps selection of other nodes", func(t *testing.T) {
		g := New(nil)
		keep := g.AddNode(KindStart, Position{})
		n := g.AddNode(KindTask, Position{})
		g.Select(keep.ID)

		g.DeleteNode(n.ID)

		sel, ok := g.Selected()
		require.True(t, ok)
		assert.Equal(t, keep.ID, sel.ID)
	})

	t.Run("double delete is a no-op", func(t *testing.T) {
		g := New(nil)
		n := g.AddNode(KindTask, Position{})

		g.DeleteNode(n.ID)
		assert.NotPanics(t, func() { g.DeleteNode(n.ID) })
		assert.Empty(t, g.Nodes)
	})
}

func TestConnect(t *testing.T) {
	t.Run("derives the edge id from the endpoints", func(t *testing.T) {
		g := New(nil)
		a := g.AddNode(KindStart, Position{})
		b := g.AddNode(KindEnd, Position{})

		e := g.Connect(a.ID, b.ID)

		require.NotNil(t, e)
		assert.Equal(t, "edge-start-1-end-2", e.ID)
		assert.Equal(t, a.ID, e.Source)
		assert.Equal(t, b.ID, e.Target)
	})

	t.Run("rejects dangling endpoints", func(t *testing.T) {
		g := New(nil)
		a := g.AddNode(KindStart, Position{})

		assert.Nil(t, g.Connect(a.ID, "end-99"))
		assert.Nil(t, g.Connect("task-99", a.ID))
		assert.Empty(t, g.Edges)
	})

	t.Run("does not de-duplicate edges", func(t *testing.T) {
		g := New(nil)
		a := g.AddNode(KindStart, Position{})
		b := g.AddNode(KindEnd, Position{})

		g.Connect(a.ID, b.ID)
		g.Connect(a.ID, b.ID)

		assert.Len(t, g.Edges, 2)
	})

	t.Run("allows self-loops at creation time", func(t *testing.T) {
		g := New(nil)
		a := g.AddNode(KindTask, Position{})

		e := g.Connect(a.ID, a.ID)

		require.NotNil(t, e)
		assert.Len(t, g.Edges, 1)
	})
}

func TestDisconnect(t *testing.T) {
	g := New(nil)
	a := g.AddNode(KindStart, Position{})
	b := g.AddNode(KindEnd, Position{})
	e := g.Connect(a.ID, b.ID)

	g.Disconnect(e.ID)
	assert.Empty(t, g.Edges)

	assert.NotPanics(t, func() { g.Disconnect(e.ID) })
	assert.Len(t, g.Nodes, 2)
}

func TestSelection(t *testing.T) {
	g := New(nil)
	n := g.AddNode(KindTask, Position{})

	_, ok := g.Selected()
	assert.False(t, ok)

	g.Select(n.ID)
	sel, ok := g.Selected()
	require.True(t, ok)
	assert.Equal(t, n.ID, sel.ID)

	// Selecting an unknown id leaves the selection alone.
	g.Select("task-99")
	sel, ok = g.Selected()
	require.True(t, ok)
	assert.Equal(t, n.ID, sel.ID)

	g.ClearSelection()
	_, ok = g.Selected()
	assert.False(t, ok)
}
