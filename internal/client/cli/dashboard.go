package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/ingestctl/internal/client/poll"
	"github.com/dmitrijs2005/ingestctl/internal/client/services"
)

func (a *App) Queues(ctx context.Context) error {
	s, err := a.api.QueueStats(ctx)
	if err != nil {
		return err
	}
	renderQueues(a.out, s)
	return nil
}

func (a *App) System(ctx context.Context) error {
	h, err := a.api.SystemHealth(ctx)
	if err != nil {
		return err
	}
	renderSystemHealth(a.out, h)
	return nil
}

func (a *App) Workers(ctx context.Context) error {
	s, err := a.api.Workers(ctx)
	if err != nil {
		return err
	}
	renderWorkers(a.out, s)
	return nil
}

// Watch redraws the dashboard overview every poll interval until ctx ends
// or, when count is positive, after count refreshes.
func (a *App) Watch(ctx context.Context, count int, opts ...poll.Option) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	n := 0
	h := poll.Start(ctx, a.cfg.PollInterval, a.dashboardService.Overview, func(o *services.Overview, err error) {
		if count > 0 && n >= count {
			return
		}
		if err != nil {
			if ctx.Err() == nil {
				a.log.Warn(ctx, "dashboard refresh failed", "error", err)
			}
			return
		}
		n++
		fmt.Fprintf(a.out, "== %s ==\n", time.Now().Format(time.TimeOnly))
		renderOverview(a.out, o)
		fmt.Fprintln(a.out)
		if count > 0 && n >= count {
			cancel()
		}
	}, opts...)

	<-ctx.Done()
	h.Stop()
	return nil
}
