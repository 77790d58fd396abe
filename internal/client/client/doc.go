// Package client assembles the civigo client runtime.
//
// InitDatabase opens the local SQLite store and applies the embedded goose
// migrations. New builds everything on top of it: the REST client, the
// availability gate, one sync engine per entity type (projects, works,
// subworks, entries, in that order), the sync manager and the local-first
// services the CLI talks to.
//
// Start runs the gate watcher and the periodic sync in the background;
// Close stops waiting on them and releases the database.
package client
