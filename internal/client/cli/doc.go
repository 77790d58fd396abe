// Package cli provides the interactive civigo measurement-book client.
//
// It wires configuration, the local store, the sync runtime and a
// line-based REPL. Every edit goes to the local database first and is
// pushed in the background when the server is reachable and a session
// exists.
//
// Key features:
//   - Projects, works, subworks and measurement entries: list, add, edit, delete
//   - Subwork totals (details, deductions, net)
//   - Measurement sheet export (.xlsx), optionally uploaded to S3
//   - Login / Logout, manual sync and status
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
