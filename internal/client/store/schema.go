package store

import (
	"github.com/dmitrijs2005/civigo/internal/client/models"
)

// Schema maps a record type onto its table. Sync metadata and parent
// columns are handled by Table; Columns, Values and Dest cover only the
// entity's own fields, in the same order.
type Schema[T models.Record] struct {
	Table   string
	Columns []string
	New     func() T
	Values  func(T) []any
	Dest    func(T) []any
}

var metaColumns = []string{"local_id", "remote_id", "synced", "deleted", "updated_at", "revision"}

var parentColumns = []string{"parent_local_id", "parent_remote_id"}

// ProjectSchema maps models.Project onto the projects table.
var ProjectSchema = Schema[*models.Project]{
	Table:   "projects",
	Columns: []string{"name", "description", "status", "client_name", "client_number", "client_address"},
	New:     func() *models.Project { return &models.Project{} },
	Values: func(p *models.Project) []any {
		return []any{p.Name, p.Description, p.Status, p.Client.Name, p.Client.Number, p.Client.Address}
	},
	Dest: func(p *models.Project) []any {
		return []any{&p.Name, &p.Description, &p.Status, &p.Client.Name, &p.Client.Number, &p.Client.Address}
	},
}

// WorkSchema maps models.Work onto the works table.
var WorkSchema = Schema[*models.Work]{
	Table:   "works",
	Columns: []string{"name", "description"},
	New:     func() *models.Work { return &models.Work{} },
	Values:  func(w *models.Work) []any { return []any{w.Name, w.Description} },
	Dest:    func(w *models.Work) []any { return []any{&w.Name, &w.Description} },
}

// SubworkSchema maps models.Subwork onto the subworks table.
var SubworkSchema = Schema[*models.Subwork]{
	Table:   "subworks",
	Columns: []string{"name", "description", "unit", "default_rate"},
	New:     func() *models.Subwork { return &models.Subwork{} },
	Values: func(s *models.Subwork) []any {
		return []any{s.Name, s.Description, string(s.Unit), s.DefaultRate.String()}
	},
	Dest: func(s *models.Subwork) []any {
		return []any{&s.Name, &s.Description, &s.Unit, &s.DefaultRate}
	},
}

// EntrySchema maps models.Entry onto the entries table.
var EntrySchema = Schema[*models.Entry]{
	Table: "entries",
	Columns: []string{
		"kind", "name", "number", "length", "breadth", "depth",
		"quantity", "rate", "total", "unit", "operation", "create_synced",
	},
	New: func() *models.Entry { return &models.Entry{} },
	Values: func(e *models.Entry) []any {
		return []any{
			string(e.Kind), e.Name,
			e.Number.String(), e.Length.String(), e.Breadth.String(), e.Depth.String(),
			e.Quantity.String(), e.Rate.String(), e.Total.String(),
			string(e.Unit), string(e.Operation), e.CreateSynced,
		}
	},
	Dest: func(e *models.Entry) []any {
		return []any{
			&e.Kind, &e.Name,
			&e.Number, &e.Length, &e.Breadth, &e.Depth,
			&e.Quantity, &e.Rate, &e.Total,
			&e.Unit, &e.Operation, &e.CreateSynced,
		}
	},
}
