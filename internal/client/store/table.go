package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/civigo/internal/client/models"
	"github.com/dmitrijs2005/civigo/internal/dbx"
	"github.com/google/uuid"
)

type scanner interface {
	Scan(dest ...any) error
}

// Table is the local table of one entity type.
type Table[T models.Record] struct {
	db        *sql.DB
	schema    Schema[T]
	hasParent bool
	columns   []string

	now   func() time.Time
	newID func() string
}

// NewTable binds schema to db. The db should be limited to a single open
// connection; SQLite serializes writers anyway.
func NewTable[T models.Record](db *sql.DB, schema Schema[T]) *Table[T] {
	hasParent := schema.New().Parent() != nil

	cols := append([]string{}, metaColumns...)
	if hasParent {
		cols = append(cols, parentColumns...)
	}
	cols = append(cols, schema.Columns...)

	return &Table[T]{
		db:        db,
		schema:    schema,
		hasParent: hasParent,
		columns:   cols,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     func() string { return uuid.NewString() },
	}
}

// Name returns the table name.
func (t *Table[T]) Name() string { return t.schema.Table }

func (t *Table[T]) selectSQL() string {
	return "SELECT " + strings.Join(t.columns, ", ") + " FROM " + t.schema.Table
}

func (t *Table[T]) upsertSQL() string {
	ph := strings.TrimSuffix(strings.Repeat("?, ", len(t.columns)), ", ")
	sets := make([]string, 0, len(t.columns)-1)
	for _, c := range t.columns[1:] {
		sets = append(sets, c+" = excluded."+c)
	}
	return "INSERT INTO " + t.schema.Table + " (" + strings.Join(t.columns, ", ") + ") VALUES (" + ph + ")" +
		" ON CONFLICT(local_id) DO UPDATE SET " + strings.Join(sets, ", ")
}

func (t *Table[T]) values(rec T) []any {
	m := rec.Meta()
	vals := []any{m.LocalID, m.RemoteID, m.Synced, m.Deleted, m.UpdatedAt.UnixNano(), m.Revision}
	if t.hasParent {
		p := rec.Parent()
		vals = append(vals, p.LocalID, p.RemoteID)
	}
	return append(vals, t.schema.Values(rec)...)
}

func (t *Table[T]) scan(s scanner) (T, error) {
	rec := t.schema.New()
	m := rec.Meta()

	var updated int64
	dest := []any{&m.LocalID, &m.RemoteID, &m.Synced, &m.Deleted, &updated, &m.Revision}
	if t.hasParent {
		p := rec.Parent()
		dest = append(dest, &p.LocalID, &p.RemoteID)
	}
	dest = append(dest, t.schema.Dest(rec)...)

	if err := s.Scan(dest...); err != nil {
		var zero T
		return zero, err
	}
	m.UpdatedAt = time.Unix(0, updated).UTC()
	return rec, nil
}

func (t *Table[T]) queryOne(ctx context.Context, q dbx.DBTX, where string, args ...any) (T, error) {
	rec, err := t.scan(q.QueryRowContext(ctx, t.selectSQL()+" WHERE "+where, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return rec, ErrNotFound
	}
	return rec, err
}

func (t *Table[T]) queryMany(ctx context.Context, q dbx.DBTX, tail string, args ...any) ([]T, error) {
	rows, err := q.QueryContext(ctx, t.selectSQL()+" "+tail, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		rec, err := t.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (t *Table[T]) upsert(ctx context.Context, q dbx.DBTX, rec T) error {
	_, err := q.ExecContext(ctx, t.upsertSQL(), t.values(rec)...)
	return err
}

// Insert stores a new local record: fresh local id, no remote id, dirty.
func (t *Table[T]) Insert(ctx context.Context, rec T) (string, error) {
	m := rec.Meta()
	m.LocalID = t.newID()
	m.RemoteID = ""
	m.Synced = false
	m.Deleted = false
	m.UpdatedAt = t.now()
	m.Revision = 1

	if err := t.upsert(ctx, t.db, rec); err != nil {
		return "", t.fail("insert", err)
	}
	return m.LocalID, nil
}

// Get returns the row with the given local id, deleted or not.
func (t *Table[T]) Get(ctx context.Context, localID string) (T, error) {
	rec, err := t.queryOne(ctx, t.db, "local_id = ?", localID)
	return rec, t.fail("get", err)
}

// GetByRemoteID returns the row bound to remoteID.
func (t *Table[T]) GetByRemoteID(ctx context.Context, remoteID string) (T, error) {
	if remoteID == "" {
		var zero T
		return zero, ErrNotFound
	}
	rec, err := t.queryOne(ctx, t.db, "remote_id = ?", remoteID)
	return rec, t.fail("get by remote id", err)
}

// RemoteIDOf returns the remote id of a local row, if it has one.
func (t *Table[T]) RemoteIDOf(ctx context.Context, localID string) (string, bool, error) {
	var id string
	err := t.db.QueryRowContext(ctx,
		"SELECT remote_id FROM "+t.schema.Table+" WHERE local_id = ?", localID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, t.fail("remote id of", err)
	}
	return id, id != "", nil
}

// LocalIDOf returns the local id bound to remoteID, if any.
func (t *Table[T]) LocalIDOf(ctx context.Context, remoteID string) (string, bool, error) {
	if remoteID == "" {
		return "", false, nil
	}
	var id string
	err := t.db.QueryRowContext(ctx,
		"SELECT local_id FROM "+t.schema.Table+" WHERE remote_id = ?", remoteID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, t.fail("local id of", err)
	}
	return id, true, nil
}

// Update applies mutate to a live row and marks it dirty. Sync metadata
// and the parent link cannot be changed through mutate.
func (t *Table[T]) Update(ctx context.Context, localID string, mutate func(T) error) error {
	var mutErr error
	err := dbx.WithTx(ctx, t.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		rec, err := t.queryOne(ctx, tx, "local_id = ? AND deleted = 0", localID)
		if err != nil {
			return err
		}
		meta := *rec.Meta()
		var parent models.ParentRef
		if p := rec.Parent(); p != nil {
			parent = *p
		}
		if mutErr = mutate(rec); mutErr != nil {
			return mutErr
		}

		if p := rec.Parent(); p != nil {
			*p = parent
		}
		m := rec.Meta()
		*m = meta
		m.Synced = false
		m.UpdatedAt = t.now()
		m.Revision++
		return t.upsert(ctx, tx, rec)
	})
	if mutErr != nil {
		return mutErr
	}
	return t.fail("update", err)
}

// Put writes rec exactly as given, sync metadata included. Only the sync
// engine uses it.
func (t *Table[T]) Put(ctx context.Context, rec T) error {
	return t.fail("put", t.upsert(ctx, t.db, rec))
}

// SoftDelete marks a row deleted pending remote confirmation. A row that
// was never pushed has nothing to confirm and is removed right away. mark,
// if not nil, runs on the row before it is written.
func (t *Table[T]) SoftDelete(ctx context.Context, localID string, mark func(T)) error {
	err := dbx.WithTx(ctx, t.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		rec, err := t.queryOne(ctx, tx, "local_id = ?", localID)
		if err != nil {
			return err
		}
		m := rec.Meta()
		if m.Deleted {
			return nil
		}
		if m.RemoteID == "" {
			_, err := tx.ExecContext(ctx, "DELETE FROM "+t.schema.Table+" WHERE local_id = ?", localID)
			return err
		}
		if mark != nil {
			mark(rec)
		}
		m.Deleted = true
		m.Synced = false
		m.UpdatedAt = t.now()
		m.Revision++
		return t.upsert(ctx, tx, rec)
	})
	return t.fail("soft delete", err)
}

// HardDelete removes the row. Missing rows are not an error.
func (t *Table[T]) HardDelete(ctx context.Context, localID string) error {
	_, err := t.db.ExecContext(ctx, "DELETE FROM "+t.schema.Table+" WHERE local_id = ?", localID)
	return t.fail("hard delete", err)
}

// ListLive returns non-deleted rows, most recently updated first.
func (t *Table[T]) ListLive(ctx context.Context) ([]T, error) {
	rows, err := t.queryMany(ctx, t.db, "WHERE deleted = 0 ORDER BY updated_at DESC, local_id")
	return rows, t.fail("list live", err)
}

// ListDirty returns every row with unconfirmed changes, deleted ones included.
func (t *Table[T]) ListDirty(ctx context.Context) ([]T, error) {
	rows, err := t.queryMany(ctx, t.db, "WHERE synced = 0 ORDER BY updated_at, local_id")
	return rows, t.fail("list dirty", err)
}

// QueryByParent returns live rows whose parent matches either id of ref.
// pred, if not nil, filters the result further.
func (t *Table[T]) QueryByParent(ctx context.Context, ref models.ParentRef, pred func(T) bool) ([]T, error) {
	if !t.hasParent {
		return nil, t.fail("query by parent", fmt.Errorf("table has no parent"))
	}
	if ref.Empty() {
		return nil, nil
	}
	where, args := parentWhere(ref)
	rows, err := t.queryMany(ctx, t.db, "WHERE deleted = 0 AND "+where+" ORDER BY updated_at DESC, local_id", args...)
	if err != nil {
		return nil, t.fail("query by parent", err)
	}
	if pred == nil {
		return rows, nil
	}
	out := rows[:0]
	for _, r := range rows {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func parentWhere(ref models.ParentRef) (string, []any) {
	return "((? <> '' AND parent_local_id = ?) OR (? <> '' AND parent_remote_id = ?))",
		[]any{ref.LocalID, ref.LocalID, ref.RemoteID, ref.RemoteID}
}

// Parents returns the distinct parent references present in the table.
func (t *Table[T]) Parents(ctx context.Context) ([]models.ParentRef, error) {
	if !t.hasParent {
		return nil, nil
	}
	rows, err := t.db.QueryContext(ctx,
		"SELECT DISTINCT parent_local_id, parent_remote_id FROM "+t.schema.Table)
	if err != nil {
		return nil, t.fail("parents", err)
	}
	defer rows.Close()

	var out []models.ParentRef
	for rows.Next() {
		var ref models.ParentRef
		if err := rows.Scan(&ref.LocalID, &ref.RemoteID); err != nil {
			return nil, t.fail("parents", err)
		}
		out = append(out, ref)
	}
	return out, t.fail("parents", rows.Err())
}

// SetParent records a resolved parent pair without dirtying the row.
func (t *Table[T]) SetParent(ctx context.Context, localID string, ref models.ParentRef) error {
	if !t.hasParent {
		return nil
	}
	_, err := t.db.ExecContext(ctx,
		"UPDATE "+t.schema.Table+" SET parent_local_id = ?, parent_remote_id = ? WHERE local_id = ?",
		ref.LocalID, ref.RemoteID, localID)
	return t.fail("set parent", err)
}

// MarkSynced records a successful push. remoteID, when not empty, is bound
// to the row and apply (if not nil) runs on it. The row is marked synced
// only if its revision still equals revision, i.e. nothing changed locally
// while the remote call was in flight; otherwise it stays dirty and the
// next cycle pushes the newer state. ErrNotFound means the row vanished.
func (t *Table[T]) MarkSynced(ctx context.Context, localID, remoteID string, revision int64, apply func(T)) (bool, error) {
	var current bool
	err := dbx.WithTx(ctx, t.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		rec, err := t.queryOne(ctx, tx, "local_id = ?", localID)
		if err != nil {
			return err
		}
		if apply != nil {
			apply(rec)
		}
		m := rec.Meta()
		if remoteID != "" {
			m.RemoteID = remoteID
		}
		current = m.Revision == revision
		if current {
			m.Synced = true
		}
		return t.upsert(ctx, tx, rec)
	})
	return current, t.fail("mark synced", err)
}

// ReplaceAll swaps the rows of one scope for the result of merge, inside a
// single transaction. scope nil means the whole table; otherwise rows whose
// parent matches either id of scope. merge receives every row in scope,
// deleted and dirty ones included, and returns the complete new content.
// Rows absent from the result are removed. On any error nothing changes.
func (t *Table[T]) ReplaceAll(ctx context.Context, scope *models.ParentRef, merge func(existing []T) ([]T, error)) error {
	err := dbx.WithTx(ctx, t.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var (
			existing []T
			err      error
		)
		switch {
		case scope == nil:
			existing, err = t.queryMany(ctx, tx, "")
		case !t.hasParent:
			return fmt.Errorf("table has no parent")
		case scope.Empty():
		default:
			where, args := parentWhere(*scope)
			existing, err = t.queryMany(ctx, tx, "WHERE "+where, args...)
		}
		if err != nil {
			return err
		}

		next, err := merge(existing)
		if err != nil {
			return err
		}

		keep := make(map[string]struct{}, len(next))
		for _, rec := range next {
			keep[rec.Meta().LocalID] = struct{}{}
		}
		for _, rec := range existing {
			id := rec.Meta().LocalID
			if _, ok := keep[id]; ok {
				continue
			}
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+t.schema.Table+" WHERE local_id = ?", id); err != nil {
				return err
			}
		}
		for _, rec := range next {
			if err := t.upsert(ctx, tx, rec); err != nil {
				return err
			}
		}
		return nil
	})
	return t.fail("replace all", err)
}
