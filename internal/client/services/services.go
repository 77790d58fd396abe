package services

import "github.com/dmitrijs2005/civigo/internal/client/models"

// Tables are the local tables behind the services.
type Tables struct {
	Projects Table[*models.Project]
	Works    Table[*models.Work]
	Subworks Table[*models.Subwork]
	Entries  Table[*models.Entry]
}

// Set groups the entity services. Deletes cascade down the hierarchy.
type Set struct {
	Projects ProjectService
	Works    WorkService
	Subworks SubworkService
	Entries  EntryService
}

// New builds the services over t. syncer may be nil, in which case writes
// stay local until a sync is run explicitly.
func New(t Tables, syncer Syncer) *Set {
	entries := &entryService{
		recordService: &recordService[*models.Entry]{table: t.Entries, syncer: syncer},
		subworks:      t.Subworks,
	}
	subworks := &subworkService{
		recordService: &recordService[*models.Subwork]{table: t.Subworks, syncer: syncer},
		works:         t.Works,
		entries:       t.Entries,
	}
	works := &workService{
		recordService: &recordService[*models.Work]{table: t.Works, syncer: syncer},
		projects:      t.Projects,
		subworks:      subworks,
	}
	projects := &projectService{
		recordService: &recordService[*models.Project]{table: t.Projects, syncer: syncer},
		works:         works,
	}
	return &Set{Projects: projects, Works: works, Subworks: subworks, Entries: entries}
}
