package syncer

import (
	"github.com/dmitrijs2005/civigo/internal/client/identity"
	"github.com/dmitrijs2005/civigo/internal/client/models"
)

// ProjectBinding binds the project table to its remote service.
func ProjectBinding(local Local[*models.Project], remote Remote[*models.Project]) Binding[*models.Project] {
	return Binding[*models.Project]{
		Name:   "project",
		Local:  local,
		Remote: remote,
	}
}

// WorkBinding binds the work table. Creates wait for the project's remote id.
func WorkBinding(local Local[*models.Work], remote Remote[*models.Work], projects identity.Lookup) Binding[*models.Work] {
	return Binding[*models.Work]{
		Name:    "work",
		Local:   local,
		Remote:  remote,
		Parents: identity.NewResolver(projects),
	}
}

// SubworkBinding binds the subwork table. Creates wait for the work's
// remote id.
func SubworkBinding(local Local[*models.Subwork], remote Remote[*models.Subwork], works identity.Lookup) Binding[*models.Subwork] {
	return Binding[*models.Subwork]{
		Name:    "subwork",
		Local:   local,
		Remote:  remote,
		Parents: identity.NewResolver(works),
	}
}

// EntryBinding binds the entry table. Every entry call is addressed through
// the subwork, so all operations wait for its remote id, and pulls are
// reconciled per subwork.
func EntryBinding(local Local[*models.Entry], remote Remote[*models.Entry], subworks identity.Lookup) Binding[*models.Entry] {
	return Binding[*models.Entry]{
		Name:          "entry",
		Local:         local,
		Remote:        remote,
		Parents:       identity.NewResolver(subworks),
		GateAllOps:    true,
		ScopeByParent: true,
		Merge:         mergeEntry,
		AfterPush:     entryPushed,
	}
}

// entryPushed records that the entry now exists remotely. It runs even when
// the entry changed during the call, so the next push is an update. A row
// soft-deleted meanwhile keeps its delete operation.
func entryPushed(e *models.Entry, op Op) {
	switch op {
	case OpCreate, OpUpdate:
		e.CreateSynced = true
		if !e.Deleted {
			e.Operation = models.OperationUpdate
		}
	}
}

// mergeEntry keeps the local unit when the server omitted it.
func mergeEntry(local, remote *models.Entry) *models.Entry {
	if remote.Unit == "" {
		remote.Unit = local.Unit
	}
	remote.CreateSynced = true
	remote.Operation = models.OperationUpdate
	return remote
}
