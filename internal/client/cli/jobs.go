package cli

import (
	"context"
	"fmt"
)

// Jobs lists jobs. The dashboard feed returns the most recent limit jobs;
// the plain feed is the full jobs table.
func (a *App) Jobs(ctx context.Context, dashboard bool, limit int) error {
	if dashboard {
		if limit <= 0 {
			limit = a.cfg.RecentJobsLimit
		}
		l, err := a.api.DashboardJobs(ctx, limit)
		if err != nil {
			return err
		}
		renderJobs(a.out, l)
		return nil
	}

	l, err := a.api.ListJobs(ctx)
	if err != nil {
		return err
	}
	if limit > 0 && len(l.Jobs) > limit {
		l.Jobs = l.Jobs[:limit]
	}
	renderJobs(a.out, l)
	return nil
}

func (a *App) Job(ctx context.Context, id string) error {
	j, err := a.api.GetJob(ctx, id)
	if err != nil {
		return err
	}
	renderJob(a.out, j)
	return nil
}

func (a *App) Cancel(ctx context.Context, id string) error {
	ack, err := a.api.CancelJob(ctx, id)
	if err != nil {
		return err
	}
	renderAck(a.out, ack, fmt.Sprintf("Job %s cancelled.", id))
	return nil
}
