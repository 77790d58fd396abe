// Package reports exports measurement sheets.
//
// A sheet lists the detail and deduction entries of one subwork with their
// totals and the net amount. Sheets are written as .xlsx and can be
// published to S3-compatible storage behind a presigned download link.
package reports

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/civigo/internal/client/models"
	"github.com/dmitrijs2005/civigo/internal/client/services"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Measurements"

// Sheet is the data of one measurement sheet.
type Sheet struct {
	Project *models.Project
	Work    *models.Work
	Subwork *models.Subwork
	Entries []*models.Entry
	Totals  models.Totals
}

// Collect loads the subwork, its ancestors and its live entries.
func Collect(ctx context.Context, set *services.Set, subworkID string) (Sheet, error) {
	sw, err := set.Subworks.Get(ctx, subworkID)
	if err != nil {
		return Sheet{}, fmt.Errorf("load subwork: %w", err)
	}
	w, err := set.Works.Get(ctx, sw.Work.LocalID)
	if err != nil {
		return Sheet{}, fmt.Errorf("load work: %w", err)
	}
	p, err := set.Projects.Get(ctx, w.Project.LocalID)
	if err != nil {
		return Sheet{}, fmt.Errorf("load project: %w", err)
	}
	entries, totals, err := set.Entries.ListBySubwork(ctx, subworkID)
	if err != nil {
		return Sheet{}, fmt.Errorf("load entries: %w", err)
	}
	return Sheet{Project: p, Work: w, Subwork: sw, Entries: entries, Totals: totals}, nil
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// Filename is a filesystem-safe name for the sheet.
func (s Sheet) Filename() string {
	name := strings.Trim(unsafeName.ReplaceAllString(s.Subwork.Name, "-"), "-")
	if name == "" {
		name = "subwork"
	}
	return fmt.Sprintf("measurements-%s.xlsx", strings.ToLower(name))
}

var columns = []any{"Name", "Number", "Length", "Breadth", "Depth", "Quantity", "Rate", "Total"}

func num(d decimal.Decimal) float64 { return d.InexactFloat64() }

// Write renders the sheet as an .xlsx workbook.
func (s Sheet) Write(w io.Writer) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	row := 1
	put := func(values ...any) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		row++
		return f.SetSheetRow(sheetName, cell, &values)
	}

	header := [][]any{
		{"Project", s.Project.Name, "Client", s.Project.Client.Name},
		{"Work", s.Work.Name},
		{"Subwork", s.Subwork.Name, "Unit", string(s.Subwork.Unit), "Rate", num(s.Subwork.DefaultRate)},
	}
	for _, h := range header {
		if err := put(h...); err != nil {
			return err
		}
	}
	row++

	for _, section := range []struct {
		title string
		kind  models.Kind
		total decimal.Decimal
	}{
		{"Details", models.KindDetails, s.Totals.Details},
		{"Deductions", models.KindDeductions, s.Totals.Deductions},
	} {
		if err := put(section.title); err != nil {
			return err
		}
		if err := put(columns...); err != nil {
			return err
		}
		for _, e := range s.Entries {
			if e.Kind != section.kind {
				continue
			}
			err := put(e.Name, num(e.Number), num(e.Length), num(e.Breadth), num(e.Depth),
				num(e.Quantity), num(e.Rate), num(e.Total))
			if err != nil {
				return err
			}
		}
		if err := put("Total "+strings.ToLower(section.title), nil, nil, nil, nil, nil, nil, num(section.total)); err != nil {
			return err
		}
		row++
	}

	if err := put("Net", nil, nil, nil, nil, nil, nil, num(s.Totals.Net())); err != nil {
		return err
	}
	return f.Write(w)
}
