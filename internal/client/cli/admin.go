package cli

import (
	"context"
	"errors"
)

var errNotConfirmed = errors.New("refusing to run without --yes")

// ClearBuckets asks the backend to empty its storage buckets.
func (a *App) ClearBuckets(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return errNotConfirmed
	}
	ack, err := a.api.ClearBuckets(ctx)
	if err != nil {
		return err
	}
	renderAck(a.out, ack, "Buckets cleared.")
	return nil
}

// ClearTables asks the backend to truncate its job and document tables.
func (a *App) ClearTables(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return errNotConfirmed
	}
	ack, err := a.api.ClearTables(ctx)
	if err != nil {
		return err
	}
	renderAck(a.out, ack, "Tables cleared.")
	return nil
}
