package cli

import (
	"context"
	"fmt"
)

// Approvals lists the pending approval queue, or past decisions when
// history is set.
func (a *App) Approvals(ctx context.Context, history bool) error {
	fetch := a.api.PendingApprovals
	if history {
		fetch = a.api.ApprovalHistory
	}
	l, err := fetch(ctx)
	if err != nil {
		return err
	}
	renderApprovals(a.out, l)
	return nil
}

func (a *App) Decide(ctx context.Context, id string, approved bool) error {
	ack, err := a.api.DecideApproval(ctx, id, approved)
	if err != nil {
		return err
	}
	verb := "rejected"
	if approved {
		verb = "approved"
	}
	renderAck(a.out, ack, fmt.Sprintf("Approval %s %s.", id, verb))
	return nil
}
