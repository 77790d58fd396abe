package models

import "github.com/shopspring/decimal"

// Unit selects how an entry's quantity is derived from its dimensions.
type Unit string

const (
	// UnitSFT is square feet: number x length x breadth.
	UnitSFT Unit = "SFT"
	// UnitCFT is cubic feet: number x length x breadth x depth.
	UnitCFT Unit = "CFT"
)

// ParseUnit maps loosely formatted input to a Unit, defaulting to SFT.
func ParseUnit(s string) Unit {
	if Unit(s) == UnitCFT {
		return UnitCFT
	}
	return UnitSFT
}

// Subwork is a measured item of work. Its unit and default rate drive the
// derived quantity and total of every entry below it.
type Subwork struct {
	SyncMeta
	Work        ParentRef
	Name        string          `validate:"required,max=200"`
	Description string          `validate:"max=2000"`
	Unit        Unit            `validate:"required,oneof=SFT CFT"`
	DefaultRate decimal.Decimal `validate:"-"`
}

func (s *Subwork) Meta() *SyncMeta    { return &s.SyncMeta }
func (s *Subwork) Parent() *ParentRef { return &s.Work }
