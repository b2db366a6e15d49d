// Package favorites persists the registered workspace list in SQLite.
//
// Each entry maps a workspace root directory to its canonical file:// URL and
// an optional name. The workspace locator reads this list to map a working
// directory to a workspace identifier; add-workspace and forget-workspace(s)
// are the only writers.
//
// The schema version lives in PRAGMA user_version; after a bump users delete
// favorites.db to adopt the new schema.
package favorites
