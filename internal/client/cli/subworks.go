package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/civigo/internal/client/models"
)

func (a *App) listSubworks(ctx context.Context, workRef string) error {
	w, err := resolve[*models.Work](ctx, a.set.Works, kindWork, workRef)
	if err != nil {
		return err
	}
	subworks, err := a.set.Subworks.ListByWork(ctx, w.LocalID)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, titleStyle.Render(w.Name))
	if len(subworks) == 0 {
		fmt.Fprintf(a.out, "No subworks yet. Try 'add subwork %s'.\n", shortID(w.LocalID))
		return nil
	}
	tw := newTable(a.out)
	fmt.Fprintln(tw, "ID\tNAME\tUNIT\tRATE\tSTATE")
	for _, s := range subworks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", shortID(s.LocalID), s.Name, s.Unit, s.DefaultRate.StringFixed(2), syncState(&s.SyncMeta))
	}
	return tw.Flush()
}

func (a *App) promptSubwork(s *models.Subwork) error {
	var err error
	if s.Name, err = GetWithDefault(a.reader, "Name", s.Name, a.out); err != nil {
		return err
	}
	if s.Description, err = GetWithDefault(a.reader, "Description", s.Description, a.out); err != nil {
		return err
	}
	unit := string(s.Unit)
	if unit == "" {
		unit = string(models.UnitSFT)
	}
	if unit, err = GetWithDefault(a.reader, "Unit (SFT or CFT)", unit, a.out); err != nil {
		return err
	}
	s.Unit = models.ParseUnit(strings.ToUpper(unit))
	s.DefaultRate, err = GetDecimal(a.reader, "Default rate", s.DefaultRate, a.out)
	return err
}

func (a *App) addSubwork(ctx context.Context, workRef string) error {
	w, err := resolve[*models.Work](ctx, a.set.Works, kindWork, workRef)
	if err != nil {
		return err
	}
	s := &models.Subwork{Work: models.ParentRef{LocalID: w.LocalID}}
	if err := a.promptSubwork(s); err != nil {
		return err
	}
	id, err := a.set.Subworks.AddLocal(ctx, s)
	if err != nil {
		return err
	}
	success(a.out, "Subwork %s added to %s", shortID(id), w.Name)
	return nil
}

// editSubwork changes a subwork. A new unit or rate recomputes its entries.
func (a *App) editSubwork(ctx context.Context, ref string) error {
	cur, err := resolve[*models.Subwork](ctx, a.set.Subworks, kindSubwork, ref)
	if err != nil {
		return err
	}
	edited := *cur
	if err := a.promptSubwork(&edited); err != nil {
		return err
	}
	err = a.set.Subworks.UpdateLocal(ctx, cur.LocalID, func(s *models.Subwork) error {
		s.Name, s.Description, s.Unit, s.DefaultRate = edited.Name, edited.Description, edited.Unit, edited.DefaultRate
		return nil
	})
	if err != nil {
		return err
	}
	success(a.out, "Subwork %s updated", shortID(cur.LocalID))
	return nil
}
