package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/civigo/internal/client/models"
)

func (a *App) listWorks(ctx context.Context, projectRef string) error {
	p, err := resolve[*models.Project](ctx, a.set.Projects, kindProject, projectRef)
	if err != nil {
		return err
	}
	works, err := a.set.Works.ListByProject(ctx, p.LocalID)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, titleStyle.Render(p.Name))
	if len(works) == 0 {
		fmt.Fprintf(a.out, "No works yet. Try 'add work %s'.\n", shortID(p.LocalID))
		return nil
	}
	tw := newTable(a.out)
	fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION\tSTATE")
	for _, w := range works {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", shortID(w.LocalID), w.Name, w.Description, syncState(&w.SyncMeta))
	}
	return tw.Flush()
}

func (a *App) promptWork(w *models.Work) error {
	var err error
	if w.Name, err = GetWithDefault(a.reader, "Name", w.Name, a.out); err != nil {
		return err
	}
	w.Description, err = GetWithDefault(a.reader, "Description", w.Description, a.out)
	return err
}

func (a *App) addWork(ctx context.Context, projectRef string) error {
	p, err := resolve[*models.Project](ctx, a.set.Projects, kindProject, projectRef)
	if err != nil {
		return err
	}
	w := &models.Work{Project: models.ParentRef{LocalID: p.LocalID}}
	if err := a.promptWork(w); err != nil {
		return err
	}
	id, err := a.set.Works.AddLocal(ctx, w)
	if err != nil {
		return err
	}
	success(a.out, "Work %s added to %s", shortID(id), p.Name)
	return nil
}

func (a *App) editWork(ctx context.Context, ref string) error {
	cur, err := resolve[*models.Work](ctx, a.set.Works, kindWork, ref)
	if err != nil {
		return err
	}
	edited := *cur
	if err := a.promptWork(&edited); err != nil {
		return err
	}
	err = a.set.Works.UpdateLocal(ctx, cur.LocalID, func(w *models.Work) error {
		w.Name, w.Description = edited.Name, edited.Description
		return nil
	})
	if err != nil {
		return err
	}
	success(a.out, "Work %s updated", shortID(cur.LocalID))
	return nil
}
