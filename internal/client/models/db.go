// Package models defines the client-side records mirrored in the local store:
// projects, works, subworks and measurement entries, each carrying the sync
// metadata the sync engine keys off.
package models

import "time"

// SyncMeta is embedded in every locally stored record.
type SyncMeta struct {
	// LocalID is generated on the client and never reused.
	LocalID string

	// RemoteID is assigned by the remote service on create. Empty means the
	// record was never pushed.
	RemoteID string

	// Synced is false while the record has changes the server has not confirmed.
	Synced bool

	// Deleted marks a soft-deleted record awaiting remote deletion.
	Deleted bool

	// UpdatedAt is the local mutation time (display and ordering only).
	UpdatedAt time.Time

	// Revision is bumped on every local mutation. A push marks the record
	// synced only if the revision it sent is still current.
	Revision int64
}

// Dirty reports whether the record has unconfirmed local changes.
func (m *SyncMeta) Dirty() bool { return !m.Synced }

// ParentRef is a reference to the parent record, kept in both id spaces.
// At least one side is valid; the identity resolver fills in the other.
type ParentRef struct {
	LocalID  string
	RemoteID string
}

// Empty reports whether neither id is known.
func (p ParentRef) Empty() bool { return p.LocalID == "" && p.RemoteID == "" }

// Resolved reports whether both ids are known.
func (p ParentRef) Resolved() bool { return p.LocalID != "" && p.RemoteID != "" }

// Record is implemented by pointer types of every stored entity.
type Record interface {
	Meta() *SyncMeta
	// Parent returns the parent reference, or nil for root entities.
	Parent() *ParentRef
}
