package remote

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/civigo/internal/client/models"
	"github.com/dmitrijs2005/civigo/internal/client/session"
)

// errNoRemoteID is returned when an update or delete is attempted for a
// record the server never acknowledged.
var errNoRemoteID = errors.New("record has no remote id")

func missingID(method, path string) error {
	return &TransportError{Method: method, Path: path, Message: errNoRemoteID.Error(), Err: ErrRejected}
}

// Projects is the /project resource.
type Projects struct {
	c *Client
}

func projectToDTO(p *models.Project) projectDTO {
	return projectDTO{
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		ClientDetails: clientDetailsDTO{
			ClientName:    p.Client.Name,
			ClientNumber:  looseString(p.Client.Number),
			ClientAddress: p.Client.Address,
		},
	}
}

func projectFromDTO(d projectDTO) *models.Project {
	p := &models.Project{
		Name:        d.Name,
		Description: d.Description,
		Status:      d.Status,
		Client: models.ClientDetails{
			Name:    d.ClientDetails.ClientName,
			Number:  string(d.ClientDetails.ClientNumber),
			Address: d.ClientDetails.ClientAddress,
		},
	}
	if p.Status == "" {
		p.Status = models.ProjectStatusActive
	}
	p.RemoteID = string(d.ID)
	p.Synced = true
	return p
}

func (s *Projects) Create(ctx context.Context, sess session.Session, p *models.Project) (string, error) {
	const path = "/project/create"
	var out created
	if err := s.c.do(ctx, request{method: http.MethodPost, path: path, sess: &sess, body: projectToDTO(p)}, &out); err != nil {
		return "", err
	}
	if out.id() == "" {
		return "", &TransportError{Method: http.MethodPost, Path: path, Message: "response carries no id", Err: ErrRejected}
	}
	return out.id(), nil
}

func (s *Projects) Update(ctx context.Context, sess session.Session, p *models.Project) error {
	path := "/project/update/" + url.PathEscape(p.RemoteID)
	if p.RemoteID == "" {
		return missingID(http.MethodPut, path)
	}
	return s.c.do(ctx, request{method: http.MethodPut, path: path, sess: &sess, body: projectToDTO(p)}, nil)
}

func (s *Projects) Delete(ctx context.Context, sess session.Session, p *models.Project) error {
	path := "/project/delete/" + url.PathEscape(p.RemoteID)
	if p.RemoteID == "" {
		return missingID(http.MethodDelete, path)
	}
	return s.c.do(ctx, request{method: http.MethodDelete, path: path, sess: &sess}, nil)
}

// List returns every project visible to the session. Projects have no
// parent, so parentRemoteID is ignored.
func (s *Projects) List(ctx context.Context, sess session.Session, _ string) ([]*models.Project, error) {
	var dtos []projectDTO
	if err := s.c.do(ctx, request{method: http.MethodGet, path: "/project/allProjects", sess: &sess}, &dtos); err != nil {
		return nil, err
	}
	out := make([]*models.Project, 0, len(dtos))
	for _, d := range dtos {
		if d.ID == "" {
			s.c.logger.Warn(ctx, "skipping project without id", "name", d.Name)
			continue
		}
		out = append(out, projectFromDTO(d))
	}
	return out, nil
}
