package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/meikuraledutech/workflow"
)

// SaveWorkflow stores a full definition (nodes + connections + settings) in
// one transaction with replace semantics. An empty id gets an auto-generated
// UUID. Returns the definition with the id filled in.
func (s *PGStore) SaveWorkflow(ctx context.Context, id string, def *workflow.Definition) (*workflow.Definition, error) {
	if id == "" {
		id = uuid.NewString()
	}
	def.ID = id

	settings := def.Settings
	if settings == nil {
		settings = map[string]any{}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("workflow: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO workflows (id, settings) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET settings = EXCLUDED.settings`,
		id, settings,
	); err != nil {
		return nil, fmt.Errorf("workflow: upsert workflow: %w", err)
	}

	// Delete existing graph data if any (replace semantics).
	if _, err := tx.Exec(ctx, `DELETE FROM workflow_connections WHERE workflow_id = $1`, id); err != nil {
		return nil, fmt.Errorf("workflow: delete connections: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM workflow_nodes WHERE workflow_id = $1`, id); err != nil {
		return nil, fmt.Errorf("workflow: delete nodes: %w", err)
	}

	for i, n := range def.Nodes {
		if _, err := tx.Exec(ctx,
			`INSERT INTO workflow_nodes (workflow_id, id, type, name, position, config, ord)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			id, n.ID, n.Type, n.Name, n.Position, n.Config, i,
		); err != nil {
			return nil, fmt.Errorf("workflow: insert node %s: %w", n.ID, err)
		}
	}

	for i, c := range def.Connections {
		if _, err := tx.Exec(ctx,
			`INSERT INTO workflow_connections (workflow_id, id, source, target, condition, label, ord)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			id, c.ID, c.Source, c.Target, c.Condition, c.Label, i,
		); err != nil {
			return nil, fmt.Errorf("workflow: insert connection %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("workflow: commit: %w", err)
	}

	return def, nil
}

// GetWorkflow retrieves a full definition by its ID.
// Returns nil, nil if the workflow doesn't exist.
func (s *PGStore) GetWorkflow(ctx context.Context, id string) (*workflow.Definition, error) {
	def := &workflow.Definition{ID: id}

	err := s.db.QueryRow(ctx,
		`SELECT settings FROM workflows WHERE id = $1`, id,
	).Scan(&def.Settings)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("workflow: get workflow: %w", err)
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, type, name, position, config FROM workflow_nodes WHERE workflow_id = $1 ORDER BY ord`, id)
	if err != nil {
		return nil, fmt.Errorf("workflow: query nodes: %w", err)
	}
	defer rows.Close()

	def.Nodes = []workflow.DefinitionNode{}
	for rows.Next() {
		var n workflow.DefinitionNode
		if err := rows.Scan(&n.ID, &n.Type, &n.Name, &n.Position, &n.Config); err != nil {
			return nil, fmt.Errorf("workflow: scan node: %w", err)
		}
		def.Nodes = append(def.Nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("workflow: rows nodes: %w", err)
	}

	rows, err = s.db.Query(ctx,
		`SELECT id, source, target, condition, label FROM workflow_connections WHERE workflow_id = $1 ORDER BY ord`, id)
	if err != nil {
		return nil, fmt.Errorf("workflow: query connections: %w", err)
	}
	defer rows.Close()

	def.Connections = []workflow.Connection{}
	for rows.Next() {
		var c workflow.Connection
		if err := rows.Scan(&c.ID, &c.Source, &c.Target, &c.Condition, &c.Label); err != nil {
			return nil, fmt.Errorf("workflow: scan connection: %w", err)
		}
		def.Connections = append(def.Connections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("workflow: rows connections: %w", err)
	}

	return def, nil
}

// ListWorkflows returns a summary of every stored workflow, oldest first.
// Returns an empty slice (not nil) if none exist.
func (s *PGStore) ListWorkflows(ctx context.Context) ([]workflow.Summary, error) {
	rows, err := s.db.Query(ctx, `
		SELECT w.id, w.created_at,
		       (SELECT COUNT(*) FROM workflow_nodes n WHERE n.workflow_id = w.id),
		       (SELECT COUNT(*) FROM workflow_connections c WHERE c.workflow_id = w.id)
		FROM workflows w ORDER BY w.created_at`)
	if err != nil {
		return nil, fmt.Errorf("workflow: list workflows: %w", err)
	}
	defer rows.Close()

	summaries := []workflow.Summary{}
	for rows.Next() {
		var sum workflow.Summary
		if err := rows.Scan(&sum.ID, &sum.CreatedAt, &sum.Nodes, &sum.Connections); err != nil {
			return nil, fmt.Errorf("workflow: scan summary: %w", err)
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("workflow: rows workflows: %w", err)
	}

	return summaries, nil
}

// DeleteWorkflow removes a workflow and, via cascade, its nodes, connections
// and executions. No error if the id doesn't exist.
func (s *PGStore) DeleteWorkflow(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM workflows WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("workflow: delete workflow: %w", err)
	}
	return nil
}
