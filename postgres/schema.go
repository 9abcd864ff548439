package postgres

import "context"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS workflows (
    id         TEXT PRIMARY KEY,
    settings   JSONB NOT NULL DEFAULT '{}',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS workflow_nodes (
    workflow_id TEXT NOT NULL REFERENCES workflows(id) ON DELETE CASCADE,
    id          TEXT NOT NULL,
    type        TEXT NOT NULL,
    name        TEXT NOT NULL,
    position    JSONB NOT NULL DEFAULT '{"x":0,"y":0}',
    config      JSONB NOT NULL DEFAULT '{}',
    ord         INT  NOT NULL,
    PRIMARY KEY (workflow_id, id)
);

CREATE TABLE IF NOT EXISTS workflow_connections (
    workflow_id TEXT NOT NULL REFERENCES workflows(id) ON DELETE CASCADE,
    id          TEXT NOT NULL,
    source      TEXT NOT NULL,
    target      TEXT NOT NULL,
    condition   JSONB NOT NULL DEFAULT '{}',
    label       TEXT NOT NULL DEFAULT '',
    ord         INT  NOT NULL,
    PRIMARY KEY (workflow_id, ord)
);

CREATE TABLE IF NOT EXISTS workflow_executions (
    id           TEXT PRIMARY KEY,
    workflow_id  TEXT NOT NULL REFERENCES workflows(id) ON DELETE CASCADE,
    status       TEXT NOT NULL,
    trigger_data JSONB NOT NULL DEFAULT '{}',
    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_workflow_nodes_wf       ON workflow_nodes(workflow_id);
CREATE INDEX IF NOT EXISTS idx_workflow_connections_wf ON workflow_connections(workflow_id);
CREATE INDEX IF NOT EXISTS idx_workflow_executions_wf  ON workflow_executions(workflow_id);
`

// CreateSchema creates the workflow tables if they don't exist.
func (s *PGStore) CreateSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, schemaSQL)
	return err
}

// DropSchema drops the workflow tables.
func (s *PGStore) DropSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `DROP TABLE IF EXISTS workflow_executions, workflow_connections, workflow_nodes, workflows CASCADE;`)
	return err
}
