// Package httpapi exposes the development server's REST contract over gin.
package httpapi

import (
	"context"

	"github.com/dmitrijs2005/civigo/internal/logging"
	"github.com/dmitrijs2005/civigo/internal/server/auth"
	"github.com/dmitrijs2005/civigo/internal/server/models"
	"github.com/dmitrijs2005/civigo/internal/server/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type UserService interface {
	Register(ctx context.Context, email, password, role string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	Identify(token string) (auth.Identity, error)
}

type ProjectService interface {
	Create(ctx context.Context, p *models.Project) (*models.Project, error)
	Update(ctx context.Context, p *models.Project) error
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string) ([]*models.Project, error)
}

type WorkService interface {
	Create(ctx context.Context, w *models.Work) (*models.Work, error)
	Update(ctx context.Context, w *models.Work) error
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string) ([]*models.Work, error)
}

type SubworkService interface {
	Create(ctx context.Context, s *models.Subwork) (*models.Subwork, error)
	Update(ctx context.Context, s *models.Subwork) error
	SetDefaultRate(ctx context.Context, userID, id, unit string, rate decimal.Decimal) error
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string) ([]*models.Subwork, error)
}

type ItemService interface {
	Create(ctx context.Context, userID, subworkID, kind string, items []*models.Item) ([]*models.Item, error)
	Update(ctx context.Context, it *models.Item) error
	Delete(ctx context.Context, userID, subworkID, kind, id string) error
}

// Services bundles what the handlers call.
type Services struct {
	Users    UserService
	Projects ProjectService
	Works    WorkService
	Subworks SubworkService
	Items    ItemService
}

type handler struct {
	svc    Services
	logger logging.Logger
}

// corsConfig allows every origin unless an allowlist is given.
func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AddAllowMethods("GET", "POST", "PUT", "DELETE", "OPTIONS")
	cfg.AddAllowHeaders("Origin", "Content-Type", "Authorization", "X-Item-Type")
	cfg.AddExposeHeaders("Content-Length")
	return cfg
}

// NewRouter builds the gin engine with every route of the REST contract.
func NewRouter(svc Services, corsOrigins []string, logger logging.Logger) *gin.Engine {
	h := &handler{svc: svc, logger: logger.With("module", "httpapi")}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(h.requestLogger)
	r.Use(cors.New(corsConfig(corsOrigins)))

	r.GET("/", h.root)
	r.POST("/user/login", h.login)
	r.POST("/user/register", h.register)

	project := r.Group("/project", h.authenticate)
	project.POST("/create", h.createProject)
	project.PUT("/update/:id", h.updateProject)
	project.DELETE("/delete/:id", h.deleteProject)
	project.GET("/allProjects", h.listProjects)

	work := r.Group("/work", h.authenticate)
	work.POST("/create", h.createWork)
	work.PUT("/update/:id", h.updateWork)
	work.DELETE("/delete/:id", h.deleteWork)
	work.GET("/allWorks", h.listWorks)

	subwork := r.Group("/subwork", h.authenticate)
	subwork.POST("/create-subwork", h.createSubwork)
	subwork.PUT("/update-subwork/:id", h.updateSubwork)
	subwork.PUT("/update-default/:id", h.updateDefaultRate)
	subwork.DELETE("/delete/:id", h.deleteSubwork)
	subwork.GET("/all-subworks", h.listSubworks)
	subwork.POST("/items/:id", h.createItems)
	subwork.PUT("/items/:id/:itemId", h.updateItem)
	subwork.DELETE("/items/:id/:itemId", h.deleteItem)

	return r
}
