package models

type Approval struct {
	ApprovalID string `json:"approval_id"`
	TargetType string `json:"target_type,omitempty"`
	JobID      string `json:"job_id,omitempty"`
	UserID     string `json:"user_id,omitempty"`
	Status     string `json:"status,omitempty"`
	CreatedAt  string `json:"created_at"`
	Notes      string `json:"request_reason,omitempty"`
	// Approved is nil until the request has been decided.
	Approved      *bool `json:"approved,omitempty"`
	DocumentCount int   `json:"document_count,omitempty"`
}

// ApprovalList accepts both the "approvals" key and the backend's
// "pending_approvals" / "approval_history" keys; Items returns
// whichever was populated.
type ApprovalList struct {
	Approvals        []Approval `json:"approvals,omitempty"`
	PendingApprovals []Approval `json:"pending_approvals,omitempty"`
	ApprovalHistory  []Approval `json:"approval_history,omitempty"`
	Count            int        `json:"count"`
	Mock             bool       `json:"mock,omitempty"`
}

func (l ApprovalList) Items() []Approval {
	switch {
	case len(l.Approvals) > 0:
		return l.Approvals
	case len(l.PendingApprovals) > 0:
		return l.PendingApprovals
	default:
		return l.ApprovalHistory
	}
}

type ApprovalDecision struct {
	Approved bool `json:"approved"`
}

// Ack is the generic acknowledgement returned by state-changing endpoints.
type Ack struct {
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
	JobID   string `json:"job_id,omitempty"`
}
