package services

import (
	"context"

	"github.com/dmitrijs2005/ingestctl/internal/client/client"
	"github.com/dmitrijs2005/ingestctl/internal/client/models"
	"golang.org/x/sync/errgroup"
)

// Overview is one refresh of the dashboard view. It is always replaced as
// a whole, never merged with a previous one.
type Overview struct {
	Queues *models.QueueSnapshot
	Jobs   *models.JobList
	Health *models.HealthSnapshot
}

// Mock reports whether any part of the overview is synthetic.
func (o Overview) Mock() bool {
	return (o.Queues != nil && o.Queues.Mock) ||
		(o.Jobs != nil && o.Jobs.Mock) ||
		(o.Health != nil && o.Health.Mock)
}

type DashboardService interface {
	Overview(ctx context.Context) (*Overview, error)
}

type dashboardService struct {
	client client.Client
	limit  int
}

func NewDashboardService(c client.Client, recentJobsLimit int) DashboardService {
	return &dashboardService{client: c, limit: recentJobsLimit}
}

// Overview fetches the three dashboard reads concurrently. The reads fall
// back to mock payloads on their own, so an error here means the context
// ended.
func (d *dashboardService) Overview(ctx context.Context) (*Overview, error) {
	var o Overview
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		q, err := d.client.QueueStats(gctx)
		o.Queues = q
		return err
	})
	g.Go(func() error {
		j, err := d.client.DashboardJobs(gctx, d.limit)
		o.Jobs = j
		return err
	})
	g.Go(func() error {
		h, err := d.client.SystemHealth(gctx)
		o.Health = h
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &o, nil
}
