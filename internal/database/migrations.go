package database

// migration is one forward-only schema change.
type migration struct {
	version int
	name    string
	sql     string
}

// migrations run in slice order; versions must increase.
var migrations = []migration{
	{
		version: 1,
		name:    "cache_entries",
		// expires_at is Unix milliseconds; 0 never expires. Values are
		// opaque bytes owned by the caller.
		sql: `
CREATE TABLE IF NOT EXISTS cache_entries (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    expires_at INTEGER NOT NULL DEFAULT 0,
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);`,
	},
	{
		version: 2,
		name:    "cache_entries_expiry_index",
		sql: `
CREATE INDEX IF NOT EXISTS idx_cache_entries_expires
    ON cache_entries(expires_at)
    WHERE expires_at > 0;`,
	},
}

func latestVersion() int {
	if len(migrations) == 0 {
		return 0
	}
	return migrations[len(migrations)-1].version
}
