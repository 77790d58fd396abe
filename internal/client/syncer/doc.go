// Package syncer reconciles the local store with the remote service.
//
// One generic Engine runs per entity type. An Engine pushes dirty rows
// (creates, then updates, then deletes) and pulls a fresh snapshot that is
// merged into the local table by Reconcile. Per-type differences such as
// parent gating, pull scoping and entry bookkeeping live in Binding.
//
// Manager runs the engines in hierarchy order: projects, works, subworks,
// entries.
package syncer
