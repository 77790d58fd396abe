package models

import "github.com/shopspring/decimal"

// Kind separates additive measurements from deductions.
type Kind string

const (
	KindDetails    Kind = "details"
	KindDeductions Kind = "deductions"
)

// Operation is the pending remote action recorded on an entry.
type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// Entry is one measurement line of a subwork.
//
// Quantity and Total are derived; Recompute must run whenever dimensions,
// unit or rate change.
type Entry struct {
	SyncMeta
	Subwork ParentRef
	Kind    Kind   `validate:"required,oneof=details deductions"`
	Name    string `validate:"required,max=200"`

	Number  decimal.Decimal `validate:"-"`
	Length  decimal.Decimal `validate:"-"`
	Breadth decimal.Decimal `validate:"-"`
	Depth   decimal.Decimal `validate:"-"`

	Quantity decimal.Decimal `validate:"-"`
	Rate     decimal.Decimal `validate:"-"`
	Total    decimal.Decimal `validate:"-"`
	Unit     Unit            `validate:"omitempty,oneof=SFT CFT"`

	// Operation and CreateSynced track whether the entry already exists
	// remotely (CreateSynced) and which remote call is pending.
	Operation    Operation `validate:"omitempty,oneof=create update delete"`
	CreateSynced bool
}

func (e *Entry) Meta() *SyncMeta    { return &e.SyncMeta }
func (e *Entry) Parent() *ParentRef { return &e.Subwork }

// Recompute derives Quantity and Total from the entry's own dimensions and
// the owning subwork's unit and rate. It is idempotent.
func (e *Entry) Recompute(unit Unit, rate decimal.Decimal) {
	e.Unit = unit
	e.Rate = rate

	q := e.Number.Mul(e.Length).Mul(e.Breadth)
	if unit == UnitCFT {
		q = q.Mul(e.Depth)
	}
	e.Quantity = q
	e.Total = q.Mul(rate)
}

// Totals sums entry totals of one subwork.
type Totals struct {
	Details    decimal.Decimal
	Deductions decimal.Decimal
}

// Net is details minus deductions.
func (t Totals) Net() decimal.Decimal { return t.Details.Sub(t.Deductions) }

// SumTotals adds up the totals of live entries by kind.
func SumTotals(entries []*Entry) Totals {
	var t Totals
	for _, e := range entries {
		if e.Deleted {
			continue
		}
		switch e.Kind {
		case KindDeductions:
			t.Deductions = t.Deductions.Add(e.Total)
		default:
			t.Details = t.Details.Add(e.Total)
		}
	}
	return t
}
