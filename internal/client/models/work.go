package models

// Work groups subworks under a project.
type Work struct {
	SyncMeta
	Project     ParentRef
	Name        string `validate:"required,max=200"`
	Description string `validate:"max=2000"`
}

func (w *Work) Meta() *SyncMeta    { return &w.SyncMeta }
func (w *Work) Parent() *ParentRef { return &w.Project }
