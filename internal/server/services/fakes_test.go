package services

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/civigo/internal/common"
	"github.com/dmitrijs2005/civigo/internal/dbx"
	"github.com/dmitrijs2005/civigo/internal/server/models"
	"github.com/dmitrijs2005/civigo/internal/server/repositories/items"
	"github.com/dmitrijs2005/civigo/internal/server/repositories/projects"
	"github.com/dmitrijs2005/civigo/internal/server/repositories/subworks"
	"github.com/dmitrijs2005/civigo/internal/server/repositories/users"
	"github.com/dmitrijs2005/civigo/internal/server/repositories/works"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// memStore backs every repository with maps. Lists come back in insertion
// order.
type memStore struct {
	seq      int
	users    map[string]*models.User
	projects []*models.Project
	works    []*models.Work
	subworks []*models.Subwork
	items    []*models.Item
	failOn   string
}

func newMemStore() *memStore {
	return &memStore{users: map[string]*models.User{}}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *memStore) fail(op string) error {
	if m.failOn == op {
		return fmt.Errorf("db error: %s failed", op)
	}
	return nil
}

type memManager struct{ s *memStore }

func (m memManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m memManager) Users(dbx.DBTX) users.Repository             { return memUsers{m.s} }
func (m memManager) Projects(dbx.DBTX) projects.Repository       { return memProjects{m.s} }
func (m memManager) Works(dbx.DBTX) works.Repository             { return memWorks{m.s} }
func (m memManager) Subworks(dbx.DBTX) subworks.Repository       { return memSubworks{m.s} }
func (m memManager) Items(dbx.DBTX) items.Repository             { return memItems{m.s} }

type memUsers struct{ s *memStore }

func (r memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	if err := r.s.fail("users.create"); err != nil {
		return nil, err
	}
	for _, x := range r.s.users {
		if x.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	u.ID = r.s.nextID("u")
	r.s.users[u.ID] = u
	return u, nil
}

func (r memUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	if err := r.s.fail("users.get"); err != nil {
		return nil, err
	}
	for _, x := range r.s.users {
		if x.Email == email {
			return x, nil
		}
	}
	return nil, common.ErrorNotFound
}

type memProjects struct{ s *memStore }

func (r memProjects) Create(_ context.Context, p *models.Project) (*models.Project, error) {
	p.ID = r.s.nextID("p")
	r.s.projects = append(r.s.projects, p)
	return p, nil
}

func (r memProjects) Update(_ context.Context, p *models.Project) error {
	for i, x := range r.s.projects {
		if x.ID == p.ID && x.UserID == p.UserID {
			r.s.projects[i] = p
			return nil
		}
	}
	return common.ErrorNotFound
}

func (r memProjects) Delete(_ context.Context, userID, id string) error {
	for i, x := range r.s.projects {
		if x.ID == id && x.UserID == userID {
			r.s.projects = append(r.s.projects[:i], r.s.projects[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

func (r memProjects) List(_ context.Context, userID string) ([]*models.Project, error) {
	var out []*models.Project
	for _, x := range r.s.projects {
		if x.UserID == userID {
			out = append(out, x)
		}
	}
	return out, nil
}

type memWorks struct{ s *memStore }

func (r memWorks) Create(_ context.Context, w *models.Work) (*models.Work, error) {
	for _, p := range r.s.projects {
		if p.ID == w.ProjectID && p.UserID == w.UserID {
			w.ID = r.s.nextID("w")
			r.s.works = append(r.s.works, w)
			return w, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memWorks) Update(_ context.Context, w *models.Work) error {
	for _, x := range r.s.works {
		if x.ID == w.ID && x.UserID == w.UserID {
			x.Name, x.Description = w.Name, w.Description
			return nil
		}
	}
	return common.ErrorNotFound
}

func (r memWorks) Delete(_ context.Context, userID, id string) error {
	for i, x := range r.s.works {
		if x.ID == id && x.UserID == userID {
			r.s.works = append(r.s.works[:i], r.s.works[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

func (r memWorks) List(_ context.Context, userID string) ([]*models.Work, error) {
	var out []*models.Work
	for _, x := range r.s.works {
		if x.UserID == userID {
			out = append(out, x)
		}
	}
	return out, nil
}

type memSubworks struct{ s *memStore }

func (r memSubworks) Create(_ context.Context, sw *models.Subwork) (*models.Subwork, error) {
	for _, w := range r.s.works {
		if w.ID == sw.WorkID && w.UserID == sw.UserID {
			sw.ID = r.s.nextID("s")
			r.s.subworks = append(r.s.subworks, sw)
			return sw, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memSubworks) find(userID, id string) *models.Subwork {
	for _, x := range r.s.subworks {
		if x.ID == id && x.UserID == userID {
			return x
		}
	}
	return nil
}

func (r memSubworks) Update(_ context.Context, sw *models.Subwork) error {
	x := r.find(sw.UserID, sw.ID)
	if x == nil {
		return common.ErrorNotFound
	}
	x.Name, x.Description, x.Unit = sw.Name, sw.Description, sw.Unit
	return nil
}

func (r memSubworks) SetDefaultRate(_ context.Context, userID, id, unit string, rate decimal.Decimal) error {
	x := r.find(userID, id)
	if x == nil {
		return common.ErrorNotFound
	}
	x.Unit, x.DefaultRate = unit, rate
	return nil
}

func (r memSubworks) Delete(_ context.Context, userID, id string) error {
	for i, x := range r.s.subworks {
		if x.ID == id && x.UserID == userID {
			r.s.subworks = append(r.s.subworks[:i], r.s.subworks[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

func (r memSubworks) List(_ context.Context, userID string) ([]*models.Subwork, error) {
	if err := r.s.fail("subworks.list"); err != nil {
		return nil, err
	}
	var out []*models.Subwork
	for _, x := range r.s.subworks {
		if x.UserID == userID {
			cp := *x
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memItems struct{ s *memStore }

func (r memItems) Create(_ context.Context, it *models.Item) (*models.Item, error) {
	if err := r.s.fail("items.create"); err != nil {
		return nil, err
	}
	if (memSubworks{r.s}).find(it.UserID, it.SubworkID) == nil {
		return nil, common.ErrorNotFound
	}
	it.ID = r.s.nextID("i")
	r.s.items = append(r.s.items, it)
	return it, nil
}

func (r memItems) Update(_ context.Context, it *models.Item) error {
	for i, x := range r.s.items {
		if x.ID == it.ID && x.UserID == it.UserID && x.SubworkID == it.SubworkID && x.Kind == it.Kind {
			r.s.items[i] = it
			return nil
		}
	}
	return common.ErrorNotFound
}

func (r memItems) Delete(_ context.Context, userID, subworkID, kind, id string) error {
	for i, x := range r.s.items {
		if x.ID == id && x.UserID == userID && x.SubworkID == subworkID && x.Kind == kind {
			r.s.items = append(r.s.items[:i], r.s.items[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

func (r memItems) List(_ context.Context, userID string) ([]*models.Item, error) {
	var out []*models.Item
	for _, x := range r.s.items {
		if x.UserID == userID {
			out = append(out, x)
		}
	}
	return out, nil
}
