package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/dmitrijs2005/civigo/internal/client/models"
	"github.com/dmitrijs2005/civigo/internal/client/reports"
	"github.com/dmitrijs2005/civigo/internal/filex"
)

// Export writes the measurement sheet of a subwork into the report
// directory and, when report storage is configured, uploads it and prints
// a download link.
func (a *App) Export(ctx context.Context, args []string) error {
	s, err := resolve[*models.Subwork](ctx, a.set.Subworks, kindSubwork, firstArg(args))
	if err != nil {
		return err
	}
	sheet, err := reports.Collect(ctx, a.set, s.LocalID)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := sheet.Write(&buf); err != nil {
		return fmt.Errorf("render sheet: %w", err)
	}

	path, err := filex.WriteFile(a.config.ReportDir, sheet.Filename(), buf.Bytes())
	if err != nil {
		return fmt.Errorf("save sheet: %w", err)
	}
	success(a.out, "Saved %s", path)

	if a.publisher == nil {
		return nil
	}
	key, url, err := a.publisher.Publish(ctx, sheet.Filename(), buf.Bytes())
	if err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	a.logger.Info(ctx, "report published", "key", key)
	fmt.Fprintf(a.out, "Download link: %s\n", url)
	return nil
}
