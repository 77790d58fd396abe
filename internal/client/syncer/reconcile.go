package syncer

import (
	"time"

	"github.com/dmitrijs2005/civigo/internal/client/models"
)

// Plan is the outcome of merging a remote snapshot into local rows.
type Plan[T models.Record] struct {
	// Rows is the complete new content of the reconciled scope.
	Rows []T

	Inserted    int
	Overwritten int
	// Pending counts matched rows left untouched because they carry
	// unpushed local changes.
	Pending int
	Kept    int
	Dropped int
}

// ReconcileOptions supplies the side inputs of Reconcile.
type ReconcileOptions[T models.Record] struct {
	NewID func() string
	Now   func() time.Time
	Merge func(local, remote T) T
}

// Reconcile merges snapshot into existing.
//
// Remote rows matched by remote id overwrite synced local rows, keeping the
// local id and the locally resolved parent. A matched dirty row wins until
// it is pushed. Unmatched remote rows get a new local id. Synced local rows
// missing from the snapshot were deleted on the server and are dropped;
// dirty rows are never dropped. Remote rows without an id are ignored.
func Reconcile[T models.Record](existing, snapshot []T, opts ReconcileOptions[T]) Plan[T] {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	byRemote := make(map[string]T, len(existing))
	for _, rec := range existing {
		if id := rec.Meta().RemoteID; id != "" {
			byRemote[id] = rec
		}
	}

	var plan Plan[T]
	matched := make(map[string]struct{}, len(snapshot))
	ts := now()

	for _, remote := range snapshot {
		rid := remote.Meta().RemoteID
		if rid == "" {
			continue
		}
		if _, dup := matched[rid]; dup {
			continue
		}

		local, ok := byRemote[rid]
		if !ok {
			m := remote.Meta()
			m.LocalID = opts.NewID()
			m.Synced = true
			m.Deleted = false
			m.Revision = 1
			m.UpdatedAt = ts
			plan.Rows = append(plan.Rows, remote)
			plan.Inserted++
			matched[rid] = struct{}{}
			continue
		}

		matched[rid] = struct{}{}
		if local.Meta().Dirty() {
			plan.Rows = append(plan.Rows, local)
			plan.Pending++
			continue
		}

		next := remote
		if opts.Merge != nil {
			next = opts.Merge(local, remote)
		}
		keepParent(local, next)

		lm, m := local.Meta(), next.Meta()
		m.LocalID = lm.LocalID
		m.RemoteID = rid
		m.Synced = true
		m.Deleted = false
		m.Revision = lm.Revision + 1
		m.UpdatedAt = ts
		plan.Rows = append(plan.Rows, next)
		plan.Overwritten++
	}

	for _, rec := range existing {
		m := rec.Meta()
		if m.RemoteID != "" {
			if _, ok := matched[m.RemoteID]; ok {
				continue
			}
		}
		if m.Dirty() {
			plan.Rows = append(plan.Rows, rec)
			plan.Kept++
			continue
		}
		plan.Dropped++
	}

	return plan
}

// keepParent carries the local parent id over to next when both rows name
// the same remote parent.
func keepParent[T models.Record](local, next T) {
	np, lp := next.Parent(), local.Parent()
	if np == nil || lp == nil || np.LocalID != "" {
		return
	}
	if np.RemoteID == "" || lp.RemoteID == "" || np.RemoteID == lp.RemoteID {
		np.LocalID = lp.LocalID
		if np.RemoteID == "" {
			np.RemoteID = lp.RemoteID
		}
	}
}
