package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/civigo/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLookup is an in-memory local<->remote index.
type fakeLookup struct {
	byLocal map[string]string
	err     error
}

func newFakeLookup(pairs map[string]string) *fakeLookup {
	return &fakeLookup{byLocal: pairs}
}

func (f *fakeLookup) RemoteIDOf(_ context.Context, localID string) (string, bool, error) {
	if f.err != nil {
		return "", false, f.err
	}
	r, ok := f.byLocal[localID]
	return r, ok && r != "", nil
}

func (f *fakeLookup) LocalIDOf(_ context.Context, remoteID string) (string, bool, error) {
	if f.err != nil {
		return "", false, f.err
	}
	for l, r := range f.byLocal {
		if r == remoteID {
			return l, true, nil
		}
	}
	return "", false, nil
}

func TestResolveParent(t *testing.T) {
	r := NewResolver(newFakeLookup(map[string]string{
		"p-local-1": "p1",
		"p-local-2": "",
	}))
	ctx := context.Background()

	tests := []struct {
		name string
		in   models.ParentRef
		want models.ParentRef
	}{
		{name: "local known and pushed", in: models.ParentRef{LocalID: "p-local-1"}, want: models.ParentRef{LocalID: "p-local-1", RemoteID: "p1"}},
		{name: "local known, not pushed", in: models.ParentRef{LocalID: "p-local-2"}, want: models.ParentRef{LocalID: "p-local-2"}},
		{name: "remote known locally", in: models.ParentRef{RemoteID: "p1"}, want: models.ParentRef{LocalID: "p-local-1", RemoteID: "p1"}},
		{name: "remote not pulled yet", in: models.ParentRef{RemoteID: "p9"}, want: models.ParentRef{RemoteID: "p9"}},
		{name: "stale local id is corrected", in: models.ParentRef{LocalID: "old", RemoteID: "p1"}, want: models.ParentRef{LocalID: "p-local-1", RemoteID: "p1"}},
		{name: "empty", in: models.ParentRef{}, want: models.ParentRef{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.ResolveParent(ctx, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveParent_LookupError(t *testing.T) {
	f := newFakeLookup(nil)
	f.err = errors.New("disk gone")
	r := NewResolver(f)

	in := models.ParentRef{LocalID: "x"}
	got, err := r.ResolveParent(context.Background(), in)
	require.ErrorIs(t, err, f.err)
	assert.Equal(t, in, got)
}

func TestIDLookups(t *testing.T) {
	r := NewResolver(newFakeLookup(map[string]string{"a": "1"}))
	ctx := context.Background()

	rid, ok, err := r.RemoteIDOf(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", rid)

	lid, ok, err := r.LocalIDOf(ctx, "1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a", lid)

	_, ok, err = r.LocalIDOf(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = r.RemoteIDOf(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)
}
