// Package sqlite implements the local-first ViewService backend on
// SQLite: named views and live-state snapshots persisted in a single
// database file under the data directory.
package sqlite

// Schema DDL. Attach runs these with IF NOT EXISTS so an existing
// database file is reused, not rebuilt.
const (
	createViews = `CREATE TABLE IF NOT EXISTS views (
    view_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    table_slug TEXT NOT NULL,
    state TEXT NOT NULL,
    is_shared INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createLiveStates = `CREATE TABLE IF NOT EXISTS live_states (
    table_slug TEXT PRIMARY KEY,
    state TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`
)

// Index DDL for common queries.
const (
	idxViewsSlug     = `CREATE INDEX IF NOT EXISTS idx_views_slug ON views(table_slug);`
	idxViewsSlugName = `CREATE UNIQUE INDEX IF NOT EXISTS idx_views_slug_name ON views(table_slug, name);`
)

// schemaDDL lists all statements Attach executes, in order.
var schemaDDL = []string{
	createViews,
	createLiveStates,
	idxViewsSlug,
	idxViewsSlugName,
}
