package models

// HealthStatus is the three-level classification shown on the dashboard.
type HealthStatus string

const (
	Healthy  HealthStatus = "healthy"
	Warning  HealthStatus = "warning"
	Critical HealthStatus = "critical"
)

// ClassifyHealth maps a 0..100 health score to its classification using
// the backend thresholds.
func ClassifyHealth(score float64) HealthStatus {
	switch {
	case score >= 80:
		return Healthy
	case score >= 50:
		return Warning
	default:
		return Critical
	}
}

type SQSCounts struct {
	Visible  int `json:"visible_messages"`
	InFlight int `json:"in_flight_messages"`
	Delayed  int `json:"delayed_messages"`
}

type DLQCounts struct {
	Messages int `json:"messages"`
}

type QueueStats struct {
	SQS             SQSCounts      `json:"sqs_queue"`
	DeadLetterQueue DLQCounts      `json:"dead_letter_queue"`
	JobStatusCounts map[string]int `json:"job_status_counts"`
	TotalJobs       int            `json:"total_jobs"`
	QueueHealth     string         `json:"queue_health"`
}

// QueueSnapshot is a point-in-time aggregate. Every poll replaces the
// previous snapshot as a whole.
type QueueSnapshot struct {
	Timestamp        string                `json:"timestamp"`
	Queues           map[string]QueueStats `json:"queues"`
	OverallHealth    string                `json:"overall_health"`
	TotalDLQMessages int                   `json:"total_dlq_messages"`
	Error            string                `json:"error,omitempty"`
	Mock             bool                  `json:"mock,omitempty"`
}

// Totals sums message counters over all queues.
func (s QueueSnapshot) Totals() (visible, inFlight, delayed, dlq int) {
	for _, q := range s.Queues {
		visible += q.SQS.Visible
		inFlight += q.SQS.InFlight
		delayed += q.SQS.Delayed
		dlq += q.DeadLetterQueue.Messages
	}
	return
}

type HealthMetrics struct {
	TotalDLQMessages int `json:"total_dlq_messages"`
	ActiveWorkers    int `json:"active_workers"`
	QueueCount       int `json:"queue_count"`
}

type HealthSnapshot struct {
	Timestamp    string        `json:"timestamp"`
	HealthStatus HealthStatus  `json:"health_status"`
	HealthScore  float64       `json:"health_score"`
	Issues       []string      `json:"issues"`
	Metrics      HealthMetrics `json:"metrics"`
	Mock         bool          `json:"mock,omitempty"`
}

type Worker struct {
	WorkerID           string  `json:"worker_id"`
	Status             string  `json:"status,omitempty"`
	LastHeartbeat      string  `json:"last_heartbeat,omitempty"`
	AverageJobDuration float64 `json:"average_job_duration"`
}

type WorkerStatus struct {
	ActiveWorkerCount int      `json:"active_worker_count"`
	Workers           []Worker `json:"workers"`
	Mock              bool     `json:"mock,omitempty"`
}

// ServiceHealth is the answer of the unauthenticated /health probe.
type ServiceHealth struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp,omitempty"`
}
