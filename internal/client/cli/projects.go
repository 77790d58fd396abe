package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/civigo/internal/client/models"
)

func (a *App) listProjects(ctx context.Context) error {
	projects, err := a.set.Projects.GetAllLocal(ctx)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		fmt.Fprintln(a.out, "No projects yet. Try 'add project'.")
		return nil
	}

	tw := newTable(a.out)
	fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tCLIENT\tSTATE")
	for _, p := range projects {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", shortID(p.LocalID), p.Name, p.Status, p.Client.Name, syncState(&p.SyncMeta))
	}
	return tw.Flush()
}

// promptProject fills p from the user's answers, keeping current values
// on empty input.
func (a *App) promptProject(p *models.Project) error {
	var err error
	if p.Name, err = GetWithDefault(a.reader, "Name", p.Name, a.out); err != nil {
		return err
	}
	if p.Description, err = GetWithDefault(a.reader, "Description", p.Description, a.out); err != nil {
		return err
	}
	status := p.Status
	if status == "" {
		status = models.ProjectStatusActive
	}
	if p.Status, err = GetWithDefault(a.reader, "Status (Active, Completed, On Hold)", status, a.out); err != nil {
		return err
	}
	if p.Client.Name, err = GetWithDefault(a.reader, "Client name", p.Client.Name, a.out); err != nil {
		return err
	}
	if p.Client.Number, err = GetWithDefault(a.reader, "Client phone", p.Client.Number, a.out); err != nil {
		return err
	}
	p.Client.Address, err = GetWithDefault(a.reader, "Client address", p.Client.Address, a.out)
	return err
}

func (a *App) addProject(ctx context.Context) error {
	p := &models.Project{}
	if err := a.promptProject(p); err != nil {
		return err
	}
	id, err := a.set.Projects.AddLocal(ctx, p)
	if err != nil {
		return err
	}
	success(a.out, "Project %s added", shortID(id))
	return nil
}

func (a *App) editProject(ctx context.Context, ref string) error {
	cur, err := resolve[*models.Project](ctx, a.set.Projects, kindProject, ref)
	if err != nil {
		return err
	}
	edited := *cur
	if err := a.promptProject(&edited); err != nil {
		return err
	}
	err = a.set.Projects.UpdateLocal(ctx, cur.LocalID, func(p *models.Project) error {
		p.Name, p.Description, p.Status, p.Client = edited.Name, edited.Description, edited.Status, edited.Client
		return nil
	})
	if err != nil {
		return err
	}
	success(a.out, "Project %s updated", shortID(cur.LocalID))
	return nil
}
