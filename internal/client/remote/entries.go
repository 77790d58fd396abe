package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/civigo/internal/client/models"
	"github.com/dmitrijs2005/civigo/internal/client/session"
	"github.com/dmitrijs2005/civigo/internal/common"
)

// Entries are the detail and deduction items nested in a subwork. They
// have no listing endpoint of their own; List flattens the subwork
// snapshot.
type Entries struct {
	c *Client
}

func entryToDTO(e *models.Entry) itemDTO {
	return itemDTO{
		Name:     e.Name,
		Number:   num(e.Number),
		Length:   num(e.Length),
		Breadth:  num(e.Breadth),
		Depth:    num(e.Depth),
		Quantity: num(e.Quantity),
		Rate:     num(e.Rate),
		Total:    num(e.Total),
		Unit:     string(e.Unit),
	}
}

func entryFromDTO(subworkID string, kind models.Kind, d itemDTO) *models.Entry {
	e := &models.Entry{
		Subwork:  models.ParentRef{RemoteID: subworkID},
		Kind:     kind,
		Name:     d.Name,
		Number:   d.Number.Decimal(),
		Length:   d.Length.Decimal(),
		Breadth:  d.Breadth.Decimal(),
		Depth:    d.Depth.Decimal(),
		Quantity: d.Quantity.Decimal(),
		Rate:     d.Rate.Decimal(),
		Total:    d.Total.Decimal(),
	}
	if d.Unit != "" {
		e.Unit = models.ParseUnit(d.Unit)
	}
	e.RemoteID = string(d.ID)
	e.Synced = true
	e.CreateSynced = true
	e.Operation = models.OperationUpdate
	return e
}

func itemsPath(e *models.Entry) string {
	return "/subwork/items/" + url.PathEscape(e.Subwork.RemoteID)
}

func kindHeader(e *models.Entry) map[string]string {
	kind := e.Kind
	if kind == "" {
		kind = models.KindDetails
	}
	return map[string]string{common.ItemTypeHeaderName: string(kind)}
}

func (s *Entries) Create(ctx context.Context, sess session.Session, e *models.Entry) (string, error) {
	path := itemsPath(e)
	if e.Subwork.RemoteID == "" {
		return "", missingID(http.MethodPost, path)
	}
	var out itemsCreated
	err := s.c.do(ctx, request{
		method:  http.MethodPost,
		path:    path,
		sess:    &sess,
		headers: kindHeader(e),
		body:    []itemDTO{entryToDTO(e)},
	}, &out)
	if err != nil {
		return "", err
	}
	if len(out.Items) == 0 || out.Items[0].ID == "" {
		return "", &TransportError{Method: http.MethodPost, Path: path, Message: "response carries no item id", Err: ErrRejected}
	}
	return string(out.Items[0].ID), nil
}

func (s *Entries) Update(ctx context.Context, sess session.Session, e *models.Entry) error {
	path := itemsPath(e) + "/" + url.PathEscape(e.RemoteID)
	if e.RemoteID == "" || e.Subwork.RemoteID == "" {
		return missingID(http.MethodPut, path)
	}
	return s.c.do(ctx, request{
		method:  http.MethodPut,
		path:    path,
		sess:    &sess,
		headers: kindHeader(e),
		body:    entryToDTO(e),
	}, nil)
}

func (s *Entries) Delete(ctx context.Context, sess session.Session, e *models.Entry) error {
	path := itemsPath(e) + "/" + url.PathEscape(e.RemoteID)
	if e.RemoteID == "" || e.Subwork.RemoteID == "" {
		return missingID(http.MethodDelete, path)
	}
	return s.c.do(ctx, request{
		method:  http.MethodDelete,
		path:    path,
		sess:    &sess,
		headers: kindHeader(e),
	}, nil)
}

// List returns the items of every subwork, or of one subwork when
// subworkRemoteID is set. Each entry's parent carries the subwork's
// remote id only.
func (s *Entries) List(ctx context.Context, sess session.Session, subworkRemoteID string) ([]*models.Entry, error) {
	dtos, err := s.c.Subworks().listRaw(ctx, sess)
	if err != nil {
		return nil, err
	}
	var out []*models.Entry
	for _, sw := range dtos {
		swID := string(sw.ID)
		if swID == "" || (subworkRemoteID != "" && swID != subworkRemoteID) {
			continue
		}
		for _, group := range []struct {
			kind  models.Kind
			items []itemDTO
		}{
			{models.KindDetails, sw.Details},
			{models.KindDeductions, sw.Deductions},
		} {
			for _, it := range group.items {
				if it.ID == "" {
					s.c.logger.Warn(ctx, "skipping item without id", "subwork", swID, "name", it.Name)
					continue
				}
				out = append(out, entryFromDTO(swID, group.kind, it))
			}
		}
	}
	return out, nil
}
