package syncer

import (
	"context"

	"github.com/dmitrijs2005/civigo/internal/client/identity"
	"github.com/dmitrijs2005/civigo/internal/client/models"
	"github.com/dmitrijs2005/civigo/internal/client/session"
)

// Op is a push operation.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Remote is the remote service of one entity type.
type Remote[T models.Record] interface {
	Create(ctx context.Context, sess session.Session, rec T) (string, error)
	Update(ctx context.Context, sess session.Session, rec T) error
	Delete(ctx context.Context, sess session.Session, rec T) error
	// List returns the remote snapshot, restricted to one parent when
	// parentRemoteID is not empty.
	List(ctx context.Context, sess session.Session, parentRemoteID string) ([]T, error)
}

// Local is the part of store.Table the engine uses.
type Local[T models.Record] interface {
	Name() string
	ListDirty(ctx context.Context) ([]T, error)
	MarkSynced(ctx context.Context, localID, remoteID string, revision int64, apply func(T)) (bool, error)
	HardDelete(ctx context.Context, localID string) error
	SetParent(ctx context.Context, localID string, ref models.ParentRef) error
	Parents(ctx context.Context) ([]models.ParentRef, error)
	ReplaceAll(ctx context.Context, scope *models.ParentRef, merge func(existing []T) ([]T, error)) error
}

// Binding adapts the engine to one entity type.
type Binding[T models.Record] struct {
	// Name identifies the entity type in logs and in the in-flight guard.
	Name string

	Local  Local[T]
	Remote Remote[T]

	// Parents resolves parent references against the parent's table. Nil
	// for root entities.
	Parents *identity.Resolver

	// GateAllOps requires a resolved parent remote id for every push
	// operation. Without it only creates are gated.
	GateAllOps bool

	// ScopeByParent reconciles the pulled snapshot one parent at a time.
	ScopeByParent bool

	// Merge, if set, combines a synced local row with its fresh remote
	// version. The result replaces the local row.
	Merge func(local, remote T) T

	// AfterPush, if set, runs on the stored row after a successful remote
	// call, whether or not the row is still current.
	AfterPush func(rec T, op Op)
}
