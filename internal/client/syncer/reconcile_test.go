package syncer

import (
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/civigo/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func work(localID, remoteID string, synced bool, parent models.ParentRef, name string) *models.Work {
	return &models.Work{
		SyncMeta: models.SyncMeta{LocalID: localID, RemoteID: remoteID, Synced: synced, Revision: 5},
		Project:  parent,
		Name:     name,
	}
}

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("new-%d", n)
	}
}

func byLocalID(rows []*models.Work) map[string]*models.Work {
	out := make(map[string]*models.Work, len(rows))
	for _, r := range rows {
		out[r.LocalID] = r
	}
	return out
}

func TestReconcile(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	opts := ReconcileOptions[*models.Work]{NewID: seqIDs(), Now: func() time.Time { return at }}

	existing := []*models.Work{
		work("a", "ra", true, models.ParentRef{LocalID: "pl", RemoteID: "p1"}, "synced a"),
		work("b", "rb", false, models.ParentRef{LocalID: "pl", RemoteID: "p1"}, "dirty b"),
		work("c", "rc", true, models.ParentRef{RemoteID: "p1"}, "server deleted c"),
		work("d", "", false, models.ParentRef{LocalID: "pl"}, "never pushed d"),
		work("e", "re", false, models.ParentRef{}, "dirty missing from snapshot"),
	}
	snapshot := []*models.Work{
		work("", "ra", true, models.ParentRef{RemoteID: "p1"}, "server a"),
		work("", "rb", true, models.ParentRef{RemoteID: "p1"}, "server b"),
		work("", "rn", true, models.ParentRef{RemoteID: "p2"}, "server new"),
		work("", "", true, models.ParentRef{}, "no id"),
		work("", "ra", true, models.ParentRef{}, "duplicate"),
	}

	plan := Reconcile(existing, snapshot, opts)
	assert.Equal(t, 1, plan.Inserted)
	assert.Equal(t, 1, plan.Overwritten)
	assert.Equal(t, 1, plan.Pending)
	assert.Equal(t, 2, plan.Kept)
	assert.Equal(t, 1, plan.Dropped)

	rows := byLocalID(plan.Rows)
	require.Len(t, rows, 5)

	a := rows["a"]
	assert.Equal(t, "server a", a.Name)
	assert.Equal(t, models.ParentRef{LocalID: "pl", RemoteID: "p1"}, a.Project)
	assert.Equal(t, int64(6), a.Revision)
	assert.True(t, a.Synced)
	assert.Equal(t, at, a.UpdatedAt)

	assert.Equal(t, "dirty b", rows["b"].Name)
	assert.False(t, rows["b"].Synced)

	assert.NotContains(t, rows, "c")
	assert.Contains(t, rows, "d")
	assert.Contains(t, rows, "e")

	n := rows["new-1"]
	require.NotNil(t, n)
	assert.Equal(t, "rn", n.RemoteID)
	assert.Equal(t, int64(1), n.Revision)
	assert.True(t, n.Synced)
}

func TestReconcile_EmptySnapshotDropsOnlySyncedRows(t *testing.T) {
	existing := []*models.Work{
		work("a", "ra", true, models.ParentRef{}, "a"),
		work("b", "", false, models.ParentRef{}, "b"),
	}
	plan := Reconcile(existing, nil, ReconcileOptions[*models.Work]{NewID: seqIDs()})
	require.Len(t, plan.Rows, 1)
	assert.Equal(t, "b", plan.Rows[0].LocalID)
	assert.Equal(t, 1, plan.Dropped)
}

func TestReconcile_ParentMovedOnServer(t *testing.T) {
	existing := []*models.Work{work("a", "ra", true, models.ParentRef{LocalID: "pl1", RemoteID: "p1"}, "a")}
	snapshot := []*models.Work{work("", "ra", true, models.ParentRef{RemoteID: "p2"}, "a")}

	plan := Reconcile(existing, snapshot, ReconcileOptions[*models.Work]{NewID: seqIDs()})
	require.Len(t, plan.Rows, 1)
	assert.Equal(t, models.ParentRef{RemoteID: "p2"}, plan.Rows[0].Project)
}

func TestReconcile_MergeSeesLocalRow(t *testing.T) {
	existing := []*models.Work{work("a", "ra", true, models.ParentRef{}, "local")}
	snapshot := []*models.Work{work("", "ra", true, models.ParentRef{}, "")}

	plan := Reconcile(existing, snapshot, ReconcileOptions[*models.Work]{
		NewID: seqIDs(),
		Merge: func(local, remote *models.Work) *models.Work {
			if remote.Name == "" {
				remote.Name = local.Name
			}
			return remote
		},
	})
	require.Len(t, plan.Rows, 1)
	assert.Equal(t, "local", plan.Rows[0].Name)
}
