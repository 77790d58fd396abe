package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/civigo/internal/client/models"
	"github.com/shopspring/decimal"
)

func (a *App) listEntries(ctx context.Context, subworkRef string) error {
	s, err := resolve[*models.Subwork](ctx, a.set.Subworks, kindSubwork, subworkRef)
	if err != nil {
		return err
	}
	entries, totals, err := a.set.Entries.ListBySubwork(ctx, s.LocalID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s  %s\n", titleStyle.Render(s.Name),
		subtleStyle.Render(fmt.Sprintf("%s @ %s", s.Unit, s.DefaultRate.StringFixed(2))))

	tw := newTable(a.out)
	fmt.Fprintln(tw, "ID\tKIND\tNAME\tNO\tL\tB\tD\tQTY\tTOTAL\tSTATE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(e.LocalID), e.Kind, e.Name,
			e.Number.String(), e.Length.String(), e.Breadth.String(), e.Depth.String(),
			e.Quantity.StringFixed(2), e.Total.StringFixed(2), syncState(&e.SyncMeta))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Details:    %s\n", totals.Details.StringFixed(2))
	fmt.Fprintf(a.out, "Deductions: %s\n", totals.Deductions.StringFixed(2))
	fmt.Fprintln(a.out, titleStyle.Render("Net:        "+totals.Net().StringFixed(2)))
	return nil
}

// promptEntry asks for the measured dimensions. Depth only matters for
// cubic units and is asked for only then.
func (a *App) promptEntry(e *models.Entry, unit models.Unit) error {
	var err error
	kind := string(e.Kind)
	if kind == "" {
		kind = string(models.KindDetails)
	}
	if kind, err = GetWithDefault(a.reader, "Kind (details or deductions)", kind, a.out); err != nil {
		return err
	}
	switch k := models.Kind(strings.ToLower(kind)); k {
	case models.KindDetails, models.KindDeductions:
		e.Kind = k
	default:
		return fmt.Errorf("kind must be details or deductions, got %q", kind)
	}

	if e.Name, err = GetWithDefault(a.reader, "Name", e.Name, a.out); err != nil {
		return err
	}
	if e.Number.IsZero() {
		e.Number = decimal.NewFromInt(1)
	}
	if e.Number, err = GetDecimal(a.reader, "Number", e.Number, a.out); err != nil {
		return err
	}
	if e.Length, err = GetDecimal(a.reader, "Length", e.Length, a.out); err != nil {
		return err
	}
	if e.Breadth, err = GetDecimal(a.reader, "Breadth", e.Breadth, a.out); err != nil {
		return err
	}
	if unit == models.UnitCFT {
		e.Depth, err = GetDecimal(a.reader, "Depth", e.Depth, a.out)
	}
	return err
}

func (a *App) addEntry(ctx context.Context, subworkRef string) error {
	s, err := resolve[*models.Subwork](ctx, a.set.Subworks, kindSubwork, subworkRef)
	if err != nil {
		return err
	}
	e := &models.Entry{Subwork: models.ParentRef{LocalID: s.LocalID}}
	if err := a.promptEntry(e, s.Unit); err != nil {
		return err
	}
	id, err := a.set.Entries.AddLocal(ctx, e)
	if err != nil {
		return err
	}
	added, err := a.set.Entries.Get(ctx, id)
	if err != nil {
		return err
	}
	success(a.out, "Entry %s added: %s %s = %s", shortID(id), added.Quantity.StringFixed(2), s.Unit, added.Total.StringFixed(2))
	return nil
}

func (a *App) editEntry(ctx context.Context, ref string) error {
	cur, err := resolve[*models.Entry](ctx, a.set.Entries, kindEntry, ref)
	if err != nil {
		return err
	}
	edited := *cur
	if err := a.promptEntry(&edited, cur.Unit); err != nil {
		return err
	}
	err = a.set.Entries.UpdateLocal(ctx, cur.LocalID, func(e *models.Entry) error {
		e.Kind, e.Name = edited.Kind, edited.Name
		e.Number, e.Length, e.Breadth, e.Depth = edited.Number, edited.Length, edited.Breadth, edited.Depth
		return nil
	})
	if err != nil {
		return err
	}
	success(a.out, "Entry %s updated", shortID(cur.LocalID))
	return nil
}
