package httpapi

import (
	"github.com/dmitrijs2005/civigo/internal/server/models"
	"github.com/shopspring/decimal"
)

// amount is a decimal written as a bare JSON number. Input may be a
// number, a quoted number or null.
type amount decimal.Decimal

func (a amount) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(a).String()), nil
}

func (a *amount) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	*a = amount(d)
	return nil
}

func (a amount) dec() decimal.Decimal { return decimal.Decimal(a) }

type errorResponse struct {
	Message string `json:"message"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

type registerResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type clientDetails struct {
	ClientName    string `json:"clientname"`
	ClientNumber  string `json:"clientnumber"`
	ClientAddress string `json:"clientaddress"`
}

type projectDTO struct {
	ID            string        `json:"id,omitempty"`
	Name          string        `json:"name" binding:"required"`
	Description   string        `json:"description"`
	Status        string        `json:"status"`
	ClientDetails clientDetails `json:"clientdetails"`
}

func projectFromDTO(userID string, d projectDTO) *models.Project {
	return &models.Project{
		UserID:        userID,
		Name:          d.Name,
		Description:   d.Description,
		Status:        d.Status,
		ClientName:    d.ClientDetails.ClientName,
		ClientNumber:  d.ClientDetails.ClientNumber,
		ClientAddress: d.ClientDetails.ClientAddress,
	}
}

func projectToDTO(p *models.Project) projectDTO {
	return projectDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		ClientDetails: clientDetails{
			ClientName:    p.ClientName,
			ClientNumber:  p.ClientNumber,
			ClientAddress: p.ClientAddress,
		},
	}
}

type workDTO struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ProjectID   string `json:"projectId"`
}

func workToDTO(w *models.Work) workDTO {
	return workDTO{ID: w.ID, Name: w.Name, Description: w.Description, ProjectID: w.ProjectID}
}

type itemDTO struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Number   amount `json:"number"`
	Length   amount `json:"length"`
	Breadth  amount `json:"breadth"`
	Depth    amount `json:"depth"`
	Quantity amount `json:"quantity"`
	Rate     amount `json:"rate"`
	Total    amount `json:"total"`
	Unit     string `json:"unit,omitempty"`
}

func itemFromDTO(d itemDTO) *models.Item {
	return &models.Item{
		Name:     d.Name,
		Number:   d.Number.dec(),
		Length:   d.Length.dec(),
		Breadth:  d.Breadth.dec(),
		Depth:    d.Depth.dec(),
		Quantity: d.Quantity.dec(),
		Rate:     d.Rate.dec(),
		Total:    d.Total.dec(),
		Unit:     d.Unit,
	}
}

func itemToDTO(it *models.Item) itemDTO {
	return itemDTO{
		ID:       it.ID,
		Name:     it.Name,
		Number:   amount(it.Number),
		Length:   amount(it.Length),
		Breadth:  amount(it.Breadth),
		Depth:    amount(it.Depth),
		Quantity: amount(it.Quantity),
		Rate:     amount(it.Rate),
		Total:    amount(it.Total),
		Unit:     it.Unit,
	}
}

func itemsToDTO(items []*models.Item) []itemDTO {
	out := make([]itemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, itemToDTO(it))
	}
	return out
}

// subworkDTO carries the parent work id under both keys older and newer
// clients read.
type subworkDTO struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	WorkID      string    `json:"workId,omitempty"`
	WID         string    `json:"wid,omitempty"`
	Unit        string    `json:"unit"`
	DefaultRate amount    `json:"defaultRate"`
	Details     []itemDTO `json:"details"`
	Deductions  []itemDTO `json:"deductions"`
}

func (d subworkDTO) workID() string {
	if d.WID != "" {
		return d.WID
	}
	return d.WorkID
}

func subworkToDTO(s *models.Subwork) subworkDTO {
	return subworkDTO{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		WorkID:      s.WorkID,
		WID:         s.WorkID,
		Unit:        s.Unit,
		DefaultRate: amount(s.DefaultRate),
		Details:     itemsToDTO(s.Details),
		Deductions:  itemsToDTO(s.Deductions),
	}
}

type subworkUpdateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Unit        string `json:"unit"`
}

type itemsResponse struct {
	Items []itemDTO `json:"items"`
}
