package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/civigo/internal/client/models"
)

var (
	errNoMatch   = errors.New("no such record")
	errAmbiguous = errors.New("id prefix matches several records")
	errNeedID    = errors.New("an id is required")
)

type lister[T models.Record] interface {
	GetAllLocal(ctx context.Context) ([]T, error)
}

// resolve finds the live record whose local id equals ref or starts with it.
func resolve[T models.Record](ctx context.Context, svc lister[T], kind, ref string) (T, error) {
	var zero T
	if ref == "" {
		return zero, fmt.Errorf("%s: %w", kind, errNeedID)
	}
	all, err := svc.GetAllLocal(ctx)
	if err != nil {
		return zero, err
	}

	var found []T
	for _, rec := range all {
		id := rec.Meta().LocalID
		if id == ref {
			return rec, nil
		}
		if strings.HasPrefix(id, ref) {
			found = append(found, rec)
		}
	}
	switch len(found) {
	case 0:
		return zero, fmt.Errorf("%s %q: %w", kind, ref, errNoMatch)
	case 1:
		return found[0], nil
	}
	return zero, fmt.Errorf("%s %q: %w", kind, ref, errAmbiguous)
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
