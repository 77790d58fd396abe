package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/civigo/internal/client/models"
	"github.com/dmitrijs2005/civigo/internal/client/session"
)

// Subworks is the /subwork resource.
type Subworks struct {
	c *Client
}

func subworkToDTO(s *models.Subwork) subworkDTO {
	return subworkDTO{
		Name:        s.Name,
		Description: s.Description,
		WID:         looseString(s.Work.RemoteID),
		Unit:        string(s.Unit),
		DefaultRate: num(s.DefaultRate),
	}
}

func subworkFromDTO(d subworkDTO) *models.Subwork {
	s := &models.Subwork{
		Work:        models.ParentRef{RemoteID: d.parent()},
		Name:        d.Name,
		Description: d.Description,
		Unit:        models.ParseUnit(d.Unit),
		DefaultRate: d.DefaultRate.Decimal(),
	}
	s.RemoteID = string(d.ID)
	s.Synced = true
	return s
}

func (s *Subworks) Create(ctx context.Context, sess session.Session, sw *models.Subwork) (string, error) {
	const path = "/subwork/create-subwork"
	var out created
	if err := s.c.do(ctx, request{method: http.MethodPost, path: path, sess: &sess, body: subworkToDTO(sw)}, &out); err != nil {
		return "", err
	}
	if out.id() == "" {
		return "", &TransportError{Method: http.MethodPost, Path: path, Message: "response carries no id", Err: ErrRejected}
	}
	return out.id(), nil
}

// Update sends the descriptive fields, then the unit's default rate.
func (s *Subworks) Update(ctx context.Context, sess session.Session, sw *models.Subwork) error {
	id := url.PathEscape(sw.RemoteID)
	path := "/subwork/update-subwork/" + id
	if sw.RemoteID == "" {
		return missingID(http.MethodPut, path)
	}
	body := map[string]string{"name": sw.Name, "description": sw.Description, "unit": string(sw.Unit)}
	if err := s.c.do(ctx, request{method: http.MethodPut, path: path, sess: &sess, body: body}, nil); err != nil {
		return err
	}
	unit := string(sw.Unit)
	if unit == "" {
		unit = string(models.UnitSFT)
	}
	return s.c.do(ctx, request{
		method: http.MethodPut,
		path:   "/subwork/update-default/" + id,
		sess:   &sess,
		body:   rateBody(unit, sw.DefaultRate),
	}, nil)
}

func (s *Subworks) Delete(ctx context.Context, sess session.Session, sw *models.Subwork) error {
	path := "/subwork/delete/" + url.PathEscape(sw.RemoteID)
	if sw.RemoteID == "" {
		return missingID(http.MethodDelete, path)
	}
	return s.c.do(ctx, request{method: http.MethodDelete, path: path, sess: &sess}, nil)
}

// listRaw fetches the full subwork documents, items included.
func (s *Subworks) listRaw(ctx context.Context, sess session.Session) ([]subworkDTO, error) {
	var dtos []subworkDTO
	if err := s.c.do(ctx, request{method: http.MethodGet, path: "/subwork/all-subworks", sess: &sess}, &dtos); err != nil {
		return nil, err
	}
	return dtos, nil
}

// List returns subworks, restricted to one work when workRemoteID is set.
func (s *Subworks) List(ctx context.Context, sess session.Session, workRemoteID string) ([]*models.Subwork, error) {
	dtos, err := s.listRaw(ctx, sess)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Subwork, 0, len(dtos))
	for _, d := range dtos {
		if d.ID == "" {
			s.c.logger.Warn(ctx, "skipping subwork without id", "name", d.Name)
			continue
		}
		if workRemoteID != "" && d.parent() != workRemoteID {
			continue
		}
		out = append(out, subworkFromDTO(d))
	}
	return out, nil
}
