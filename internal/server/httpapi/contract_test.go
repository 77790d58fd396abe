package httpapi

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	cmodels "github.com/dmitrijs2005/civigo/internal/client/models"
	"github.com/dmitrijs2005/civigo/internal/client/remote"
	"github.com/dmitrijs2005/civigo/internal/client/session"
	"github.com/dmitrijs2005/civigo/internal/logging"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestClientRoundTrip drives the router with the client's own REST
// client, so both sides agree on paths and payloads.
func TestClientRoundTrip(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(newState()))
	t.Cleanup(srv.Close)

	ctx := context.Background()
	c := remote.New(srv.URL, 5*time.Second, logging.Discard())
	require.NoError(t, c.Ping(ctx))

	login, err := c.Login(ctx, "site@example.com", "pa55")
	require.NoError(t, err)
	sess, err := session.Decode(login.Token, login.UserID)
	require.NoError(t, err)
	assert.Equal(t, "user", sess.Role)

	pid, err := c.Projects().Create(ctx, sess, &cmodels.Project{
		Name:   "Harbor",
		Status: cmodels.ProjectStatusActive,
		Client: cmodels.ClientDetails{Name: "Ann", Number: "555"},
	})
	require.NoError(t, err)

	wid, err := c.Works().Create(ctx, sess, &cmodels.Work{Project: cmodels.ParentRef{RemoteID: pid}, Name: "Foundation"})
	require.NoError(t, err)

	sw := &cmodels.Subwork{Work: cmodels.ParentRef{RemoteID: wid}, Name: "Plaster", Unit: cmodels.UnitSFT, DefaultRate: decimal.NewFromInt(10)}
	swID, err := c.Subworks().Create(ctx, sess, sw)
	require.NoError(t, err)

	entry := &cmodels.Entry{
		Subwork: cmodels.ParentRef{RemoteID: swID},
		Kind:    cmodels.KindDetails,
		Name:    "Wall",
		Number:  decimal.NewFromInt(2),
		Length:  decimal.NewFromInt(3),
		Breadth: decimal.NewFromInt(4),
	}
	entry.Recompute(cmodels.UnitSFT, decimal.NewFromInt(10))
	eid, err := c.Entries().Create(ctx, sess, entry)
	require.NoError(t, err)
	entry.RemoteID = eid

	sw.RemoteID = swID
	sw.DefaultRate = decimal.RequireFromString("12.5")
	require.NoError(t, c.Subworks().Update(ctx, sess, sw))

	entry.Recompute(cmodels.UnitSFT, sw.DefaultRate)
	require.NoError(t, c.Entries().Update(ctx, sess, entry))

	projects, err := c.Projects().List(ctx, sess, "")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, pid, projects[0].RemoteID)
	assert.Equal(t, "555", projects[0].Client.Number)

	works, err := c.Works().List(ctx, sess, pid)
	require.NoError(t, err)
	require.Len(t, works, 1)

	subworks, err := c.Subworks().List(ctx, sess, wid)
	require.NoError(t, err)
	require.Len(t, subworks, 1)
	assert.True(t, decimal.RequireFromString("12.5").Equal(subworks[0].DefaultRate))

	entries, err := c.Entries().List(ctx, sess, swID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, eid, entries[0].RemoteID)
	assert.True(t, decimal.NewFromInt(300).Equal(entries[0].Total), entries[0].Total.String())

	require.NoError(t, c.Entries().Delete(ctx, sess, entry))
	require.NoError(t, c.Subworks().Delete(ctx, sess, sw))
	require.NoError(t, c.Works().Delete(ctx, sess, &cmodels.Work{SyncMeta: cmodels.SyncMeta{RemoteID: wid}}))
	require.NoError(t, c.Projects().Delete(ctx, sess, projects[0]))

	_, err = c.Projects().Create(ctx, session.Session{Token: "bogus", Role: "user"}, &cmodels.Project{Name: "x"})
	assert.ErrorIs(t, err, remote.ErrUnauthorized)
}
