package workflow

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotSerializable  = errors.New("workflow: payload is not JSON-serializable")
	ErrWorkflowNotFound = errors.New("workflow: workflow not found")
)

// Execution records an accepted execute call. Running the workflow is the
// engine's job; the store only tracks the request.
type Execution struct {
	ID          string         `json:"id,omitempty"`
	WorkflowID  string         `json:"workflow_id"`
	Status      string         `json:"status"`
	TriggerData map[string]any `json:"trigger_data"`
	CreatedAt   time.Time      `json:"created_at,omitzero"`
}

// Summary is a workflow as it appears in listings.
type Summary struct {
	ID          string    `json:"id"`
	Nodes       int       `json:"nodes"`
	Connections int       `json:"connections"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store defines the contract for persisting and retrieving workflow
// definitions and execution records.
type Store interface {
	// Schema
	CreateSchema(ctx context.Context) error
	DropSchema(ctx context.Context) error

	// Workflows. SaveWorkflow replaces the whole definition; an empty id
	// gets one assigned. GetWorkflow returns nil, nil when absent.
	SaveWorkflow(ctx context.Context, id string, def *Definition) (*Definition, error)
	GetWorkflow(ctx context.Context, id string) (*Definition, error)
	ListWorkflows(ctx context.Context) ([]Summary, error)
	DeleteWorkflow(ctx context.Context, id string) error

	// Executions. CreateExecution returns ErrWorkflowNotFound when the
	// workflow doesn't exist. GetExecution returns nil, nil when absent.
	CreateExecution(ctx context.Context, exec *Execution) (string, error)
	GetExecution(ctx context.Context, execID string) (*Execution, error)
	ListExecutions(ctx context.Context, workflowID string) ([]Execution, error)
}
