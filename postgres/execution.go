package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/meikuraledutech/workflow"
)

// CreateExecution records an execution request for an existing workflow.
// If exec.ID is empty, a UUID is auto-generated; an empty status defaults to
// "pending". Returns workflow.ErrWorkflowNotFound if the workflow is unknown.
func (s *PGStore) CreateExecution(ctx context.Context, exec *workflow.Execution) (string, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM workflows WHERE id = $1)`, exec.WorkflowID,
	).Scan(&exists)
	if err != nil {
		return "", fmt.Errorf("workflow: check workflow: %w", err)
	}
	if !exists {
		return "", workflow.ErrWorkflowNotFound
	}

	if exec.ID == "" {
		exec.ID = uuid.NewString()
	}
	if exec.Status == "" {
		exec.Status = "pending"
	}
	trigger := exec.TriggerData
	if trigger == nil {
		trigger = map[string]any{}
	}

	err = s.db.QueryRow(ctx,
		`INSERT INTO workflow_executions (id, workflow_id, status, trigger_data)
		 VALUES ($1, $2, $3, $4) RETURNING created_at`,
		exec.ID, exec.WorkflowID, exec.Status, trigger,
	).Scan(&exec.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("workflow: insert execution: %w", err)
	}

	return exec.ID, nil
}

// GetExecution fetches a single execution by its ID.
// Returns nil, nil if not found.
func (s *PGStore) GetExecution(ctx context.Context, execID string) (*workflow.Execution, error) {
	var e workflow.Execution
	err := s.db.QueryRow(ctx,
		`SELECT id, workflow_id, status, trigger_data, created_at FROM workflow_executions WHERE id = $1`,
		execID,
	).Scan(&e.ID, &e.WorkflowID, &e.Status, &e.TriggerData, &e.CreatedAt)

	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("workflow: get execution: %w", err)
	}

	return &e, nil
}

// ListExecutions returns all executions for a workflow, ordered by created_at.
// Returns an empty slice (not nil) if none found.
func (s *PGStore) ListExecutions(ctx context.Context, workflowID string) ([]workflow.Execution, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, workflow_id, status, trigger_data, created_at FROM workflow_executions
		 WHERE workflow_id = $1 ORDER BY created_at`, workflowID)
	if err != nil {
		return nil, fmt.Errorf("workflow: list executions: %w", err)
	}
	defer rows.Close()

	execs := []workflow.Execution{}
	for rows.Next() {
		var e workflow.Execution
		if err := rows.Scan(&e.ID, &e.WorkflowID, &e.Status, &e.TriggerData, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("workflow: scan execution: %w", err)
		}
		execs = append(execs, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("workflow: rows executions: %w", err)
	}

	return execs, nil
}
