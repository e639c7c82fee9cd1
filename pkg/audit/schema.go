package audit

// SchemaVersion is the current audit database schema version.
const SchemaVersion = 1

// schema contains the SQL statements to create the audit database schema.
const schema = `
-- Audit records table
CREATE TABLE IF NOT EXISTS audit_records (
    id TEXT PRIMARY KEY,
    request_id TEXT NOT NULL,
    recorded_at TIMESTAMP NOT NULL,

    endpoint TEXT NOT NULL,
    model TEXT NOT NULL,
    provider_state TEXT NOT NULL,

    outcome TEXT NOT NULL,
    fallback BOOLEAN NOT NULL,
    status_code INTEGER NOT NULL,
    latency_ms INTEGER NOT NULL,

    prompt_tokens INTEGER NOT NULL,
    completion_tokens INTEGER NOT NULL,
    total_tokens INTEGER NOT NULL,

    error TEXT
);

-- Schema version table
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

-- Indexes for retention pruning and usage reporting
CREATE INDEX IF NOT EXISTS idx_audit_recorded_at ON audit_records(recorded_at);
CREATE INDEX IF NOT EXISTS idx_audit_endpoint ON audit_records(endpoint);
CREATE INDEX IF NOT EXISTS idx_audit_model ON audit_records(model);
CREATE INDEX IF NOT EXISTS idx_audit_outcome ON audit_records(outcome);
`

// insertSchemaVersion inserts the schema version into the schema_version table.
const insertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// getSchemaVersion retrieves the current schema version from the database.
const getSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`
