package httpapi

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/civigo/internal/common"
	"github.com/dmitrijs2005/civigo/internal/logging"
	"github.com/dmitrijs2005/civigo/internal/server/auth"
	"github.com/dmitrijs2005/civigo/internal/server/models"
	"github.com/dmitrijs2005/civigo/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const testSecret = "test-secret"

// state is an in-memory stand-in for the service layer, shared by the
// per-resource fakes below.
type state struct {
	mu       sync.Mutex
	seq      int
	projects map[string]*models.Project
	works    map[string]*models.Work
	subworks map[string]*models.Subwork
	items    map[string]*models.Item
	order    []string
	failWith error
	rates    []string
}

func newState() *state {
	return &state{
		projects: map[string]*models.Project{},
		works:    map[string]*models.Work{},
		subworks: map[string]*models.Subwork{},
		items:    map[string]*models.Item{},
	}
}

func (s *state) id(prefix string) string {
	s.seq++
	id := fmt.Sprintf("%s-%d", prefix, s.seq)
	s.order = append(s.order, id)
	return id
}

func newTestRouter(st *state) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(Services{
		Users:    fakeUsers{},
		Projects: fakeProjects{st},
		Works:    fakeWorks{st},
		Subworks: fakeSubworks{st},
		Items:    fakeItems{st},
	}, nil, logging.Discard())
}

func tokenFor(userID string, validity time.Duration) string {
	tok, err := auth.GenerateToken(userID, "user", []byte(testSecret), validity)
	if err != nil {
		panic(err)
	}
	return tok
}

type fakeUsers struct{}

func (fakeUsers) Register(_ context.Context, email, password, _ string) (*models.User, error) {
	if email == "taken@example.com" {
		return nil, common.ErrorAlreadyExists
	}
	return &models.User{ID: "u-new", Email: email, Role: services.DefaultRole}, nil
}

func (fakeUsers) Login(_ context.Context, email, password string) (*services.LoginResult, error) {
	if email != "site@example.com" || password != "pa55" {
		return nil, common.ErrorInvalidLoginPassword
	}
	return &services.LoginResult{Token: tokenFor("u-1", time.Hour), UserID: "u-1"}, nil
}

func (fakeUsers) Identify(token string) (auth.Identity, error) {
	return auth.ParseToken(token, []byte(testSecret))
}

type fakeProjects struct{ s *state }

func (f fakeProjects) Create(_ context.Context, p *models.Project) (*models.Project, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.failWith != nil {
		return nil, f.s.failWith
	}
	if p.Status == "" {
		p.Status = services.DefaultProjectStatus
	}
	p.ID = f.s.id("p")
	f.s.projects[p.ID] = p
	return p, nil
}

func (f fakeProjects) Update(_ context.Context, p *models.Project) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	old, ok := f.s.projects[p.ID]
	if !ok || old.UserID != p.UserID {
		return common.ErrorNotFound
	}
	f.s.projects[p.ID] = p
	return nil
}

func (f fakeProjects) Delete(_ context.Context, userID, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	old, ok := f.s.projects[id]
	if !ok || old.UserID != userID {
		return common.ErrorNotFound
	}
	delete(f.s.projects, id)
	return nil
}

func (f fakeProjects) List(_ context.Context, userID string) ([]*models.Project, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.failWith != nil {
		return nil, f.s.failWith
	}
	var out []*models.Project
	for _, id := range f.s.order {
		if p, ok := f.s.projects[id]; ok && p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeWorks struct{ s *state }

func (f fakeWorks) Create(_ context.Context, w *models.Work) (*models.Work, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p, ok := f.s.projects[w.ProjectID]
	if !ok || p.UserID != w.UserID {
		return nil, common.ErrorNotFound
	}
	w.ID = f.s.id("w")
	f.s.works[w.ID] = w
	return w, nil
}

func (f fakeWorks) Update(_ context.Context, w *models.Work) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	old, ok := f.s.works[w.ID]
	if !ok || old.UserID != w.UserID {
		return common.ErrorNotFound
	}
	old.Name, old.Description = w.Name, w.Description
	return nil
}

func (f fakeWorks) Delete(_ context.Context, userID, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if old, ok := f.s.works[id]; !ok || old.UserID != userID {
		return common.ErrorNotFound
	}
	delete(f.s.works, id)
	return nil
}

func (f fakeWorks) List(_ context.Context, userID string) ([]*models.Work, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*models.Work
	for _, id := range f.s.order {
		if w, ok := f.s.works[id]; ok && w.UserID == userID {
			out = append(out, w)
		}
	}
	return out, nil
}

type fakeSubworks struct{ s *state }

func (f fakeSubworks) Create(_ context.Context, sw *models.Subwork) (*models.Subwork, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	w, ok := f.s.works[sw.WorkID]
	if !ok || w.UserID != sw.UserID {
		return nil, common.ErrorNotFound
	}
	unit, ok := services.NormalizeUnit(sw.Unit)
	if !ok {
		return nil, common.ErrorValidation
	}
	sw.Unit = unit
	sw.ID = f.s.id("s")
	f.s.subworks[sw.ID] = sw
	return sw, nil
}

func (f fakeSubworks) Update(_ context.Context, sw *models.Subwork) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	old, ok := f.s.subworks[sw.ID]
	if !ok || old.UserID != sw.UserID {
		return common.ErrorNotFound
	}
	old.Name, old.Description = sw.Name, sw.Description
	if sw.Unit != "" {
		old.Unit = sw.Unit
	}
	return nil
}

func (f fakeSubworks) SetDefaultRate(_ context.Context, userID, id, unit string, rate decimal.Decimal) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	old, ok := f.s.subworks[id]
	if !ok || old.UserID != userID {
		return common.ErrorNotFound
	}
	old.Unit, old.DefaultRate = unit, rate
	f.s.rates = append(f.s.rates, unit+"="+rate.String())
	return nil
}

func (f fakeSubworks) Delete(_ context.Context, userID, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if old, ok := f.s.subworks[id]; !ok || old.UserID != userID {
		return common.ErrorNotFound
	}
	delete(f.s.subworks, id)
	return nil
}

func (f fakeSubworks) List(_ context.Context, userID string) ([]*models.Subwork, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*models.Subwork
	for _, id := range f.s.order {
		sw, ok := f.s.subworks[id]
		if !ok || sw.UserID != userID {
			continue
		}
		cp := *sw
		cp.Details, cp.Deductions = nil, nil
		for _, itemID := range f.s.order {
			it, ok := f.s.items[itemID]
			if !ok || it.SubworkID != sw.ID {
				continue
			}
			if it.Kind == models.KindDeductions {
				cp.Deductions = append(cp.Deductions, it)
			} else {
				cp.Details = append(cp.Details, it)
			}
		}
		out = append(out, &cp)
	}
	return out, nil
}

type fakeItems struct{ s *state }

func (f fakeItems) Create(_ context.Context, userID, subworkID, kind string, items []*models.Item) ([]*models.Item, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	sw, ok := f.s.subworks[subworkID]
	if !ok || sw.UserID != userID {
		return nil, common.ErrorNotFound
	}
	for _, it := range items {
		it.ID = f.s.id("i")
		it.UserID, it.SubworkID, it.Kind = userID, subworkID, kind
		f.s.items[it.ID] = it
	}
	return items, nil
}

func (f fakeItems) Update(_ context.Context, it *models.Item) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	old, ok := f.s.items[it.ID]
	if !ok || old.UserID != it.UserID || old.SubworkID != it.SubworkID || old.Kind != it.Kind {
		return common.ErrorNotFound
	}
	f.s.items[it.ID] = it
	return nil
}

func (f fakeItems) Delete(_ context.Context, userID, subworkID, kind, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	old, ok := f.s.items[id]
	if !ok || old.UserID != userID || old.SubworkID != subworkID || old.Kind != kind {
		return common.ErrorNotFound
	}
	delete(f.s.items, id)
	return nil
}
