package remote

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// num is a decimal that travels as a bare JSON number. Quoted numbers and
// null are accepted on input.
type num decimal.Decimal

func (n num) Decimal() decimal.Decimal { return decimal.Decimal(n) }

func (n num) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(n).String()), nil
}

func (n *num) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*n = num(decimal.Zero)
		return nil
	}
	s := string(bytes.Trim(data, `"`))
	if s == "" {
		*n = num(decimal.Zero)
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("decode number %s: %w", data, err)
	}
	*n = num(d)
	return nil
}

// looseString accepts a JSON string or number. Identifiers and phone
// numbers come back as either, depending on the server version.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	}
	var f json.Number
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("decode string %s: %w", data, err)
	}
	*s = looseString(f.String())
	return nil
}

type clientDetailsDTO struct {
	ClientName    string      `json:"clientname"`
	ClientNumber  looseString `json:"clientnumber"`
	ClientAddress string      `json:"clientaddress"`
}

type projectDTO struct {
	ID            looseString      `json:"id,omitempty"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Status        string           `json:"status,omitempty"`
	ClientDetails clientDetailsDTO `json:"clientdetails"`
}

type workDTO struct {
	ID          looseString `json:"id,omitempty"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	ProjectID   looseString `json:"projectId"`
}

type itemDTO struct {
	ID       looseString `json:"id,omitempty"`
	Name     string      `json:"name"`
	Number   num         `json:"number"`
	Length   num         `json:"length"`
	Breadth  num         `json:"breadth"`
	Depth    num         `json:"depth"`
	Quantity num         `json:"quantity"`
	Rate     num         `json:"rate"`
	Total    num         `json:"total"`
	Unit     string      `json:"unit,omitempty"`
}

type subworkDTO struct {
	ID          looseString `json:"id,omitempty"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	WorkID      looseString `json:"workId,omitempty"`
	WID         looseString `json:"wid,omitempty"`
	Unit        string      `json:"unit,omitempty"`
	DefaultRate num         `json:"defaultRate"`
	Details     []itemDTO   `json:"details,omitempty"`
	Deductions  []itemDTO   `json:"deductions,omitempty"`
}

// parent returns the work id under whichever key the server used.
func (s subworkDTO) parent() string {
	if s.WorkID != "" {
		return string(s.WorkID)
	}
	return string(s.WID)
}

// created is the answer of a create call: the created object itself, or
// the object wrapped under its type name.
type created struct {
	ID      looseString `json:"id"`
	Project *created    `json:"project"`
	Work    *created    `json:"work"`
	Subwork *created    `json:"subwork"`
}

func (c created) id() string {
	switch {
	case c.ID != "":
		return string(c.ID)
	case c.Project != nil:
		return c.Project.id()
	case c.Work != nil:
		return c.Work.id()
	case c.Subwork != nil:
		return c.Subwork.id()
	}
	return ""
}

type itemsCreated struct {
	Items []struct {
		ID looseString `json:"id"`
	} `json:"items"`
}

// rateBody builds the update-default payload, keyed by unit.
func rateBody(unit string, rate decimal.Decimal) map[string]num {
	return map[string]num{unit: num(rate)}
}
