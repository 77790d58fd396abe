// Package identity translates between local and remote identifiers.
//
// A child can be created while its parent is only known locally, or pulled
// while its parent is only known by remote id. Resolver fills in the
// missing side of a ParentRef from the parent's table; an unknown parent is
// not an error, the reference simply stays unresolved until a later cycle.
package identity

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/civigo/internal/client/models"
)

// Lookup is the id index of one table. store.Table implements it.
type Lookup interface {
	RemoteIDOf(ctx context.Context, localID string) (string, bool, error)
	LocalIDOf(ctx context.Context, remoteID string) (string, bool, error)
}

// Resolver maps ids of one entity type and resolves references to it.
type Resolver struct {
	table Lookup
}

func NewResolver(table Lookup) *Resolver {
	return &Resolver{table: table}
}

// RemoteIDOf returns the remote id of a local row, or false when the row is
// unknown or not pushed yet.
func (r *Resolver) RemoteIDOf(ctx context.Context, localID string) (string, bool, error) {
	if localID == "" {
		return "", false, nil
	}
	return r.table.RemoteIDOf(ctx, localID)
}

// LocalIDOf returns the local id bound to remoteID.
func (r *Resolver) LocalIDOf(ctx context.Context, remoteID string) (string, bool, error) {
	if remoteID == "" {
		return "", false, nil
	}
	return r.table.LocalIDOf(ctx, remoteID)
}

// ResolveParent completes ref using this resolver's table, which must be
// the parent's. The remote id is authoritative: when it is known locally
// its local id replaces whatever ref carried, so both sides always name the
// same row. Unknown parents come back unchanged.
func (r *Resolver) ResolveParent(ctx context.Context, ref models.ParentRef) (models.ParentRef, error) {
	if ref.RemoteID != "" {
		local, ok, err := r.LocalIDOf(ctx, ref.RemoteID)
		if err != nil {
			return ref, fmt.Errorf("resolve parent %s: %w", ref.RemoteID, err)
		}
		if ok {
			ref.LocalID = local
		}
		return ref, nil
	}

	remote, ok, err := r.RemoteIDOf(ctx, ref.LocalID)
	if err != nil {
		return ref, fmt.Errorf("resolve parent %s: %w", ref.LocalID, err)
	}
	if ok {
		ref.RemoteID = remote
	}
	return ref, nil
}
