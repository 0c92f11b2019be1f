package store

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS notification_acks (
	id       TEXT PRIMARY KEY,
	acked_at TEXT NOT NULL DEFAULT (datetime('now','localtime'))
);

CREATE TABLE IF NOT EXISTS outbox (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	message_id TEXT NOT NULL,
	topic      TEXT NOT NULL,
	kind       TEXT NOT NULL,
	payload    BLOB NOT NULL,
	created_at TEXT NOT NULL DEFAULT (datetime('now','localtime')),
	sent_at    TEXT
);
CREATE INDEX IF NOT EXISTS idx_outbox_unsent ON outbox (sent_at) WHERE sent_at IS NULL;
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS notification_acks (
	id       TEXT PRIMARY KEY,
	acked_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS outbox (
	id         BIGSERIAL PRIMARY KEY,
	message_id TEXT NOT NULL,
	topic      TEXT NOT NULL,
	kind       TEXT NOT NULL,
	payload    BYTEA NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	sent_at    TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_outbox_unsent ON outbox (sent_at) WHERE sent_at IS NULL;
`
