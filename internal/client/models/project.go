package models

// Project status values used by the UI.
const (
	ProjectStatusActive    = "Active"
	ProjectStatusCompleted = "Completed"
	ProjectStatusOnHold    = "On Hold"
)

// ClientDetails describes the customer a project is built for.
type ClientDetails struct {
	Name    string
	Number  string
	Address string
}

// Project is the root of the hierarchy.
type Project struct {
	SyncMeta
	Name        string `validate:"required,max=200"`
	Description string `validate:"max=2000"`
	Status      string `validate:"omitempty,oneof=Active Completed 'On Hold'"`
	Client      ClientDetails
}

func (p *Project) Meta() *SyncMeta    { return &p.SyncMeta }
func (p *Project) Parent() *ParentRef { return nil }
