package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/civigo/internal/client/models"
	"github.com/dmitrijs2005/civigo/internal/client/session"
)

// Works is the /work resource.
type Works struct {
	c *Client
}

func workToDTO(w *models.Work) workDTO {
	return workDTO{
		Name:        w.Name,
		Description: w.Description,
		ProjectID:   looseString(w.Project.RemoteID),
	}
}

func (s *Works) Create(ctx context.Context, sess session.Session, w *models.Work) (string, error) {
	const path = "/work/create"
	var out created
	if err := s.c.do(ctx, request{method: http.MethodPost, path: path, sess: &sess, body: workToDTO(w)}, &out); err != nil {
		return "", err
	}
	if out.id() == "" {
		return "", &TransportError{Method: http.MethodPost, Path: path, Message: "response carries no id", Err: ErrRejected}
	}
	return out.id(), nil
}

func (s *Works) Update(ctx context.Context, sess session.Session, w *models.Work) error {
	path := "/work/update/" + url.PathEscape(w.RemoteID)
	if w.RemoteID == "" {
		return missingID(http.MethodPut, path)
	}
	return s.c.do(ctx, request{method: http.MethodPut, path: path, sess: &sess, body: workToDTO(w)}, nil)
}

func (s *Works) Delete(ctx context.Context, sess session.Session, w *models.Work) error {
	path := "/work/delete/" + url.PathEscape(w.RemoteID)
	if w.RemoteID == "" {
		return missingID(http.MethodDelete, path)
	}
	return s.c.do(ctx, request{method: http.MethodDelete, path: path, sess: &sess}, nil)
}

// List returns works, restricted to one project when projectRemoteID is set.
func (s *Works) List(ctx context.Context, sess session.Session, projectRemoteID string) ([]*models.Work, error) {
	var dtos []workDTO
	if err := s.c.do(ctx, request{method: http.MethodGet, path: "/work/allWorks", sess: &sess}, &dtos); err != nil {
		return nil, err
	}
	out := make([]*models.Work, 0, len(dtos))
	for _, d := range dtos {
		if d.ID == "" {
			s.c.logger.Warn(ctx, "skipping work without id", "name", d.Name)
			continue
		}
		if projectRemoteID != "" && string(d.ProjectID) != projectRemoteID {
			continue
		}
		w := &models.Work{
			Project:     models.ParentRef{RemoteID: string(d.ProjectID)},
			Name:        d.Name,
			Description: d.Description,
		}
		w.RemoteID = string(d.ID)
		w.Synced = true
		out = append(out, w)
	}
	return out, nil
}
