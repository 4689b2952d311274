package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS ack_log (
	id              TEXT PRIMARY KEY,
	batch_id        TEXT NOT NULL,
	notification_id INTEGER NOT NULL,
	award_id        INTEGER NOT NULL,
	status          TEXT NOT NULL CHECK(status IN ('acknowledged', 'failed', 'skipped', 'cancelled')),
	error           TEXT NOT NULL DEFAULT '',
	created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_ack_log_batch_id ON ack_log(batch_id);
CREATE INDEX IF NOT EXISTS idx_ack_log_created_at ON ack_log(created_at);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE INDEX IF NOT EXISTS idx_ack_log_status ON ack_log(status);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
