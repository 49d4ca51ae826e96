package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS entries (
    seq        INTEGER PRIMARY KEY AUTOINCREMENT,
    recorded_at TEXT NOT NULL,
    food       TEXT NOT NULL,
    quantity   REAL NOT NULL,
    calories   REAL NOT NULL,
    carbs      REAL NOT NULL,
    sugar      REAL NOT NULL,
    lactose    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS ledger_tracker (
    file_path  TEXT PRIMARY KEY,
    mtime_ns   INTEGER NOT NULL,
    size_bytes INTEGER NOT NULL,
    cached_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_entries_recorded ON entries(recorded_at);
`
