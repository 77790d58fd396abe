// Package store is the durable local mirror of remote entities.
//
// Each entity type lives in its own SQLite table keyed by a client-generated
// local id, with secondary indexes on the remote id, both parent ids and the
// synced/deleted flags. Table[T] implements the CRUD the UI uses (every
// write marks the row dirty) and the narrower sync-only writes (Put,
// MarkSynced, ReplaceAll) the sync engine uses to record server state.
//
// All storage failures are returned as *StorageError. A missing row is
// reported as ErrNotFound, which is not a storage failure.
package store
