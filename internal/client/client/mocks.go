package client

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/ingestctl/internal/client/models"
)

// Synthetic payloads served by Fallback endpoints. Every one carries
// Mock=true and names that are obviously not backend data.

const mockSubmitMessage = "URL submission simulation successful (mock data)"

func mockJobs(now time.Time) models.JobList {
	ts := now.UTC().Format(time.RFC3339)
	return models.JobList{
		Jobs: []models.Job{
			{ID: "mock-job-1", Name: "Sample PDF batch (mock)", Status: models.JobCompleted, DocumentsProcessed: 3, TotalDocuments: 3, CreatedAt: ts},
			{ID: "mock-job-2", Name: "Sample URL crawl (mock)", Status: models.JobProcessing, DocumentsProcessed: 1, TotalDocuments: 4, CreatedAt: ts},
			{ID: "mock-job-3", Name: "Awaiting review (mock)", Status: models.JobPendingApproval, CreatedAt: ts},
		},
		TotalCount: 3,
		Timestamp:  ts,
		Mock:       true,
	}
}

func mockQueueStats(now time.Time) models.QueueSnapshot {
	q := func(visible, inFlight int) models.QueueStats {
		return models.QueueStats{
			SQS:             models.SQSCounts{Visible: visible, InFlight: inFlight},
			JobStatusCounts: map[string]int{string(models.JobQueued): visible, string(models.JobProcessing): inFlight},
			TotalJobs:       visible + inFlight,
			QueueHealth:     string(models.Healthy),
		}
	}
	return models.QueueSnapshot{
		Timestamp: now.UTC().Format(time.RFC3339),
		Queues: map[string]models.QueueStats{
			"pdf_processing": q(2, 1),
			"url_processing": q(1, 0),
			"approval":       q(0, 0),
		},
		OverallHealth: string(models.Healthy),
		Mock:          true,
	}
}

func mockSystemHealth(now time.Time) models.HealthSnapshot {
	return models.HealthSnapshot{
		Timestamp:    now.UTC().Format(time.RFC3339),
		HealthStatus: models.ClassifyHealth(100),
		HealthScore:  100,
		Issues:       []string{},
		Metrics:      models.HealthMetrics{ActiveWorkers: 1, QueueCount: 3},
		Mock:         true,
	}
}

func mockWorkers() models.WorkerStatus {
	return models.WorkerStatus{
		ActiveWorkerCount: 1,
		Workers:           []models.Worker{{WorkerID: "mock-worker-1", Status: "active"}},
		Mock:              true,
	}
}

func mockApprovals(now time.Time) models.ApprovalList {
	return models.ApprovalList{
		Approvals: []models.Approval{{
			ApprovalID: "mock-approval-1",
			TargetType: "job",
			JobID:      "mock-job-3",
			Status:     "pending",
			CreatedAt:  now.UTC().Format(time.RFC3339),
			Notes:      "Sample approval request (mock)",
		}},
		Count: 1,
		Mock:  true,
	}
}

func mockApprovalHistory() models.ApprovalList {
	return models.ApprovalList{Approvals: []models.Approval{}, Mock: true}
}

func mockDocuments(now time.Time, limit, offset int) models.DocumentList {
	ts := now.UTC().Format(time.RFC3339)
	docs := []models.Document{
		{DocumentID: "mock-doc-1", Filename: "sample-report.pdf", JobID: "mock-job-1", SourceType: models.SourcePDF, FileSize: 102400, ProcessedAt: ts, WordCount: 1200},
		{DocumentID: "mock-doc-2", Filename: "example.com", JobID: "mock-job-2", SourceType: models.SourceURL, SourceURL: "https://example.com", ProcessedAt: ts, WordCount: 300},
	}
	return models.DocumentList{Documents: docs, Total: len(docs), Limit: limit, Offset: offset, Mock: true}
}

func mockDocumentStats(now time.Time) models.DocumentStats {
	return models.DocumentStats{
		TotalDocuments: 2,
		PDFDocuments:   1,
		URLDocuments:   1,
		TotalSizeBytes: 102400,
		LatestUpload:   now.UTC().Format(time.RFC3339),
		UniqueUsers:    1,
		UniqueJobs:     2,
		Mock:           true,
	}
}

func mockSubmitResult(now time.Time) models.SubmitResult {
	return models.SubmitResult{
		Success: true,
		JobID:   fmt.Sprintf("mock-%d", now.UnixMilli()),
		Status:  "pending",
		Message: mockSubmitMessage,
	}
}
