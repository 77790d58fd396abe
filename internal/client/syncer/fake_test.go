package syncer

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/civigo/internal/client/migrations"
	"github.com/dmitrijs2005/civigo/internal/client/models"
	"github.com/dmitrijs2005/civigo/internal/client/remote"
	"github.com/dmitrijs2005/civigo/internal/client/session"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

var testSession = session.Session{Token: "t", Role: "admin", UserID: "u1"}

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.Up(context.Background(), db))
	return db
}

// fakeRemote keeps rows in memory and records every call as "op:localID".
type fakeRemote[T models.Record] struct {
	mu     sync.Mutex
	prefix string
	clone  func(T) T
	rows   map[string]T
	order  []string
	calls  []string
	seq    int

	failCreate func(T) bool
	onCreate   func(T)
	onUpdate   func(T)
	listErr    error
}

func newFakeRemote[T models.Record](prefix string, clone func(T) T) *fakeRemote[T] {
	return &fakeRemote[T]{prefix: prefix, clone: clone, rows: map[string]T{}}
}

func (f *fakeRemote[T]) record(op string, rec T) {
	f.calls = append(f.calls, op+":"+rec.Meta().LocalID)
}

// seed stores rec as if the server already had it.
func (f *fakeRemote[T]) seed(rec T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := f.clone(rec)
	id := c.Meta().RemoteID
	if _, ok := f.rows[id]; !ok {
		f.order = append(f.order, id)
	}
	f.rows[id] = c
}

func (f *fakeRemote[T]) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeRemote[T]) Create(ctx context.Context, sess session.Session, rec T) (string, error) {
	f.mu.Lock()
	f.record("create", rec)
	if f.failCreate != nil && f.failCreate(rec) {
		f.mu.Unlock()
		return "", &remote.TransportError{Method: "POST", Path: "/", StatusCode: 500, Err: remote.ErrUnavailable}
	}
	f.seq++
	id := fmt.Sprintf("%s%d", f.prefix, f.seq)
	c := f.clone(rec)
	c.Meta().RemoteID = id
	f.rows[id] = c
	f.order = append(f.order, id)
	hook := f.onCreate
	f.mu.Unlock()

	if hook != nil {
		hook(rec)
	}
	return id, nil
}

func (f *fakeRemote[T]) Update(ctx context.Context, sess session.Session, rec T) error {
	f.mu.Lock()
	f.record("update", rec)
	id := rec.Meta().RemoteID
	if _, ok := f.rows[id]; !ok {
		f.mu.Unlock()
		return remote.ErrNotFound
	}
	f.rows[id] = f.clone(rec)
	hook := f.onUpdate
	f.mu.Unlock()

	if hook != nil {
		hook(rec)
	}
	return nil
}

func (f *fakeRemote[T]) Delete(ctx context.Context, sess session.Session, rec T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("delete", rec)
	id := rec.Meta().RemoteID
	if _, ok := f.rows[id]; !ok {
		return remote.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeRemote[T]) List(ctx context.Context, sess session.Session, parentRemoteID string) ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []T
	for _, id := range f.order {
		rec, ok := f.rows[id]
		if !ok {
			continue
		}
		c := f.clone(rec)
		m := c.Meta()
		m.LocalID = ""
		m.Synced = true
		m.Deleted = false
		if p := c.Parent(); p != nil {
			p.LocalID = ""
		}
		out = append(out, c)
	}
	return out, nil
}

func cloneProject(p *models.Project) *models.Project { c := *p; return &c }
func cloneWork(w *models.Work) *models.Work          { c := *w; return &c }
func cloneSubwork(s *models.Subwork) *models.Subwork { c := *s; return &c }
func cloneEntry(e *models.Entry) *models.Entry       { c := *e; return &c }
