package models

import "github.com/shopspring/decimal"

// Item kinds, as carried by the X-Item-Type header.
const (
	KindDetails    = "details"
	KindDeductions = "deductions"
)

type Subwork struct {
	ID          string
	UserID      string
	WorkID      string
	Name        string
	Description string
	Unit        string
	DefaultRate decimal.Decimal

	// Details and Deductions are filled by listings only.
	Details    []*Item
	Deductions []*Item
}

// Item is one measurement line of a subwork.
type Item struct {
	ID        string
	UserID    string
	SubworkID string
	Kind      string
	Name      string
	Number    decimal.Decimal
	Length    decimal.Decimal
	Breadth   decimal.Decimal
	Depth     decimal.Decimal
	Quantity  decimal.Decimal
	Rate      decimal.Decimal
	Total     decimal.Decimal
	Unit      string
}

// ValidKind reports whether k names an item group.
func ValidKind(k string) bool {
	return k == KindDetails || k == KindDeductions
}
