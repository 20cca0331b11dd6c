// Package models defines the records exchanged with the ingestion backend.
// All of them are plain values decoded from JSON; the client never owns
// authoritative state for any of them.
package models

// JobStatus is the backend lifecycle state of a job.
type JobStatus string

const (
	JobQueued          JobStatus = "queued"
	JobProcessing      JobStatus = "processing"
	JobCompleted       JobStatus = "completed"
	JobFailed          JobStatus = "failed"
	JobCancelled       JobStatus = "cancelled"
	JobPendingApproval JobStatus = "pending_approval"
	JobApproved        JobStatus = "approved"
	JobRejected        JobStatus = "rejected"
)

// Known reports whether s is one of the enumerated statuses.
func (s JobStatus) Known() bool {
	switch s {
	case JobQueued, JobProcessing, JobCompleted, JobFailed, JobCancelled,
		JobPendingApproval, JobApproved, JobRejected:
		return true
	}
	return false
}

// Terminal reports whether the backend will not move the job any further.
func (s JobStatus) Terminal() bool {
	switch s {
	case JobCompleted, JobFailed, JobCancelled, JobRejected:
		return true
	}
	return false
}

// Job is a processing job as listed by /jobs and /dashboard/jobs.
// The dashboard feed names the identifier "id", the jobs table "job_id";
// ID and JobID carry whichever was sent, Key returns the one present.
type Job struct {
	ID                 string    `json:"id,omitempty"`
	JobID              string    `json:"job_id,omitempty"`
	Name               string    `json:"name,omitempty"`
	JobName            string    `json:"job_name,omitempty"`
	Status             JobStatus `json:"status"`
	UserID             string    `json:"user_id,omitempty"`
	CreatedAt          string    `json:"created_at,omitempty"`
	UpdatedAt          string    `json:"updated_at,omitempty"`
	Files              []string  `json:"files,omitempty"`
	RetryCount         int       `json:"retry_count"`
	MaxRetries         int       `json:"max_retries"`
	DocumentsProcessed int       `json:"documents_processed"`
	TotalDocuments     int       `json:"total_documents"`
	ApprovalStatus     string    `json:"approval_status,omitempty"`
	ErrorMessage       string    `json:"error_message,omitempty"`
}

func (j Job) Key() string {
	if j.ID != "" {
		return j.ID
	}
	return j.JobID
}

func (j Job) DisplayName() string {
	if j.Name != "" {
		return j.Name
	}
	if j.JobName != "" {
		return j.JobName
	}
	return "Unnamed Job"
}

type JobList struct {
	Jobs       []Job  `json:"jobs"`
	TotalCount int    `json:"total_count,omitempty"`
	Timestamp  string `json:"timestamp,omitempty"`
	Mock       bool   `json:"mock,omitempty"`
}

// SubmitResult is the job-creation answer of notify-processing and URL submission.
type SubmitResult struct {
	Success    bool      `json:"success,omitempty"`
	JobID      string    `json:"job_id"`
	Status     JobStatus `json:"status"`
	Message    string    `json:"message,omitempty"`
	FilesCount int       `json:"files_count,omitempty"`
	URLsCount  int       `json:"urls_count,omitempty"`
}

// SubmitURLsRequest is the body of POST /process/urls.
type SubmitURLsRequest struct {
	URLs             []string `json:"urls"`
	UserID           string   `json:"user_id"`
	Notes            string   `json:"notes"`
	ApprovalRequired bool     `json:"approval_required"`
	JobName          string   `json:"job_name"`
}
