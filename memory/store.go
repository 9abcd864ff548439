// Package memory provides a map-backed workflow.Store for tests and for
// running the engine without a database.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/meikuraledutech/workflow"
)

type record struct {
	def     *workflow.Definition
	created time.Time
}

// MemStore implements workflow.Store in process memory. Definitions are
// deep-copied on the way in and out, so callers can't alias stored state.
type MemStore struct {
	mu         sync.RWMutex
	workflows  map[string]record
	order      []string
	executions map[string]workflow.Execution
	execOrder  []string
}

// New creates an empty MemStore.
func New() *MemStore {
	return &MemStore{
		workflows:  make(map[string]record),
		executions: make(map[string]workflow.Execution),
	}
}

// CreateSchema is a no-op; the maps are always ready.
func (s *MemStore) CreateSchema(ctx context.Context) error { return nil }

// DropSchema discards everything.
func (s *MemStore) DropSchema(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workflows = make(map[string]record)
	s.order = nil
	s.executions = make(map[string]workflow.Execution)
	s.execOrder = nil
	return nil
}

// SaveWorkflow stores a deep copy of the definition with replace semantics.
// An empty id gets an auto-generated UUID.
func (s *MemStore) SaveWorkflow(ctx context.Context, id string, def *workflow.Definition) (*workflow.Definition, error) {
	if id == "" {
		id = uuid.NewString()
	}
	def.ID = id
	if def.Settings == nil {
		def.Settings = map[string]any{}
	}

	stored, err := cloneDefinition(def)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.workflows[id]; ok {
		s.workflows[id] = record{def: stored, created: rec.created}
	} else {
		s.workflows[id] = record{def: stored, created: time.Now()}
		s.order = append(s.order, id)
	}
	return def, nil
}

// GetWorkflow returns a deep copy of the stored definition, or nil, nil.
func (s *MemStore) GetWorkflow(ctx context.Context, id string) (*workflow.Definition, error) {
	s.mu.RLock()
	rec, ok := s.workflows[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return cloneDefinition(rec.def)
}

// ListWorkflows returns summaries in creation order.
func (s *MemStore) ListWorkflows(ctx context.Context) ([]workflow.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := []workflow.Summary{}
	for _, id := range s.order {
		rec := s.workflows[id]
		summaries = append(summaries, workflow.Summary{
			ID:          id,
			Nodes:       len(rec.def.Nodes),
			Connections: len(rec.def.Connections),
			CreatedAt:   rec.created,
		})
	}
	return summaries, nil
}

// DeleteWorkflow removes a workflow and its executions. No error if absent.
func (s *MemStore) DeleteWorkflow(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.workflows[id]; !ok {
		return nil
	}
	delete(s.workflows, id)
	for i, wid := range s.order {
		if wid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	kept := s.execOrder[:0]
	for _, eid := range s.execOrder {
		if s.executions[eid].WorkflowID == id {
			delete(s.executions, eid)
			continue
		}
		kept = append(kept, eid)
	}
	s.execOrder = kept
	return nil
}

// CreateExecution records an execution request.
// Returns workflow.ErrWorkflowNotFound if the workflow is unknown.
func (s *MemStore) CreateExecution(ctx context.Context, exec *workflow.Execution) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.workflows[exec.WorkflowID]; !ok {
		return "", workflow.ErrWorkflowNotFound
	}
	if exec.ID == "" {
		exec.ID = uuid.NewString()
	}
	if exec.Status == "" {
		exec.Status = "pending"
	}
	if exec.TriggerData == nil {
		exec.TriggerData = map[string]any{}
	}
	exec.CreatedAt = time.Now()

	s.executions[exec.ID] = *exec
	s.execOrder = append(s.execOrder, exec.ID)
	return exec.ID, nil
}

// GetExecution returns a stored execution, or nil, nil if not found.
func (s *MemStore) GetExecution(ctx context.Context, execID string) (*workflow.Execution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.executions[execID]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

// ListExecutions returns all executions for a workflow in creation order.
// Returns an empty slice (not nil) if none found.
func (s *MemStore) ListExecutions(ctx context.Context, workflowID string) ([]workflow.Execution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	execs := []workflow.Execution{}
	for _, eid := range s.execOrder {
		if e := s.executions[eid]; e.WorkflowID == workflowID {
			execs = append(execs, e)
		}
	}
	return execs, nil
}

// cloneDefinition deep-copies a definition through its JSON form.
func cloneDefinition(def *workflow.Definition) (*workflow.Definition, error) {
	raw, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("workflow: clone definition: %w", err)
	}
	var out workflow.Definition
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("workflow: clone definition: %w", err)
	}
	return &out, nil
}
