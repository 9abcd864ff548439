package workflow

import "fmt"

// Validate runs the structural checks over the graph and returns the
// violations as human-readable messages, in a fixed order. An empty result
// means the workflow is savable and executable.
//
// All checks always run, so a single call surfaces every problem at once.
// Validate is a pure function of the graph: it never mutates, performs no
// I/O, and runs in time linear in nodes+edges.
func (g *Graph) Validate() []string {
	violations := []string{}

	// Start-node count.
	starts := 0
	for _, n := range g.Nodes {
		if n.Kind == KindStart {
			starts++
		}
	}
	switch {
	case starts == 0:
		violations = append(violations, "Workflow must have a start node")
	case starts > 1:
		violations = append(violations, "Workflow can only have one start node")
	}

	// End-node count. No upper bound.
	ends := 0
	for _, n := range g.Nodes {
		if n.Kind == KindEnd {
			ends++
		}
	}
	if ends == 0 {
		violations = append(violations, "Workflow must have at least one end node")
	}

	// Orphan detection. A single-node graph is never orphaned.
	if len(g.Nodes) > 1 {
		connected := make(map[string]bool, len(g.Nodes))
		for _, e := range g.Edges {
			connected[e.Source] = true
			connected[e.Target] = true
		}
		orphans := 0
		for _, n := range g.Nodes {
			if !connected[n.ID] {
				orphans++
			}
		}
		if orphans > 0 {
			violations = append(violations, fmt.Sprintf("Found %d orphaned node(s)", orphans))
		}
	}

	// Cycle detection.
	if g.hasCycle() {
		violations = append(violations, "Workflow contains cycles")
	}

	return violations
}

// hasCycle reports whether the directed edge relation contains a cycle,
// self-loops included, using a three-color DFS over every component.
func (g *Graph) hasCycle() bool {
	adj := make(map[string][]string)
	for _, e := range g.Edges {
		adj[e.Source] = append(adj[e.Source], e.Target)
	}

	const (
		unvisited = 0
		visiting  = 1
		visited   = 2
	)

	state := make(map[string]int, len(g.Nodes))
	for _, n := range g.Nodes {
		state[n.ID] = unvisited
	}
	// Also cover ids referenced only by edges.
	for _, e := range g.Edges {
		if _, ok := state[e.Source]; !ok {
			state[e.Source] = unvisited
		}
		if _, ok := state[e.Target]; !ok {
			state[e.Target] = unvisited
		}
	}

	var dfs func(id string) bool
	dfs = func(id string) bool {
		state[id] = visiting
		for _, next := range adj[id] {
			switch state[next] {
			case visiting:
				return true
			case unvisited:
				if dfs(next) {
					return true
				}
			}
		}
		state[id] = visited
		return false
	}

	for _, n := range g.Nodes {
		if state[n.ID] == unvisited && dfs(n.ID) {
			return true
		}
	}
	for _, e := range g.Edges {
		if state[e.Source] == unvisited && dfs(e.Source) {
			return true
		}
	}

	return false
}
