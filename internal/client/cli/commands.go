package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/civigo/internal/client/models"
)

// List prints the records of kind under the parent named by args[0].
func (a *App) List(ctx context.Context, kind string, args []string) error {
	ref := firstArg(args)
	switch kind {
	case kindProject:
		return a.listProjects(ctx)
	case kindWork:
		return a.listWorks(ctx, ref)
	case kindSubwork:
		return a.listSubworks(ctx, ref)
	case kindEntry:
		return a.listEntries(ctx, ref)
	}
	return fmt.Errorf("unknown kind %q", kind)
}

// Add prompts for a new record of kind. Children take the parent id as
// args[0].
func (a *App) Add(ctx context.Context, kind string, args []string) error {
	ref := firstArg(args)
	switch kind {
	case kindProject:
		return a.addProject(ctx)
	case kindWork:
		return a.addWork(ctx, ref)
	case kindSubwork:
		return a.addSubwork(ctx, ref)
	case kindEntry:
		return a.addEntry(ctx, ref)
	}
	return fmt.Errorf("unknown kind %q", kind)
}

// Edit prompts for new field values, offering the current ones as defaults.
func (a *App) Edit(ctx context.Context, kind string, args []string) error {
	ref := firstArg(args)
	switch kind {
	case kindProject:
		return a.editProject(ctx, ref)
	case kindWork:
		return a.editWork(ctx, ref)
	case kindSubwork:
		return a.editSubwork(ctx, ref)
	case kindEntry:
		return a.editEntry(ctx, ref)
	}
	return fmt.Errorf("unknown kind %q", kind)
}

// Delete removes a record and, for parents, everything below it.
func (a *App) Delete(ctx context.Context, kind string, args []string) error {
	ref := firstArg(args)
	var (
		name string
		del  func(context.Context, string) error
		id   string
	)
	switch kind {
	case kindProject:
		p, err := resolve[*models.Project](ctx, a.set.Projects, kind, ref)
		if err != nil {
			return err
		}
		id, name, del = p.LocalID, p.Name, a.set.Projects.SoftDeleteLocal
	case kindWork:
		w, err := resolve[*models.Work](ctx, a.set.Works, kind, ref)
		if err != nil {
			return err
		}
		id, name, del = w.LocalID, w.Name, a.set.Works.SoftDeleteLocal
	case kindSubwork:
		s, err := resolve[*models.Subwork](ctx, a.set.Subworks, kind, ref)
		if err != nil {
			return err
		}
		id, name, del = s.LocalID, s.Name, a.set.Subworks.SoftDeleteLocal
	case kindEntry:
		e, err := resolve[*models.Entry](ctx, a.set.Entries, kind, ref)
		if err != nil {
			return err
		}
		id, name, del = e.LocalID, e.Name, a.set.Entries.SoftDeleteLocal
	default:
		return fmt.Errorf("unknown kind %q", kind)
	}

	prompt := fmt.Sprintf("Delete %s %q", kind, name)
	if kind != kindEntry {
		prompt += " and everything below it?"
	} else {
		prompt += "?"
	}
	ok, err := Confirm(a.reader, prompt, a.out)
	if err != nil || !ok {
		return err
	}
	if err := del(ctx, id); err != nil {
		return err
	}
	success(a.out, "Deleted %s %s", kind, shortID(id))
	return nil
}
