package storage

// Schema is the SQL schema of the scene library database.
const Schema = `
CREATE TABLE IF NOT EXISTS scenes (
    id           TEXT PRIMARY KEY,
    name         TEXT NOT NULL UNIQUE,
    version      TEXT NOT NULL,
    object_count INTEGER NOT NULL DEFAULT 0,
    document     TEXT NOT NULL,
    created_at   TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at   TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_scenes_name ON scenes(name);
`
