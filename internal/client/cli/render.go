package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/ingestctl/internal/client/models"
	"github.com/dmitrijs2005/ingestctl/internal/client/services"
	"github.com/dustin/go-humanize"
)

const mockBanner = "! backend unavailable, showing sample data"

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func row(tw *tabwriter.Writer, cols ...any) {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprint(c)
	}
	fmt.Fprintln(tw, strings.Join(parts, "\t"))
}

func banner(w io.Writer, mock bool) {
	if mock {
		fmt.Fprintln(w, mockBanner)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func renderJobs(w io.Writer, l *models.JobList) {
	banner(w, l.Mock)
	if len(l.Jobs) == 0 {
		fmt.Fprintln(w, "No jobs.")
		return
	}
	tw := newTable(w)
	row(tw, "ID", "NAME", "STATUS", "DOCS", "RETRIES", "CREATED")
	for _, j := range l.Jobs {
		row(tw, j.Key(), j.DisplayName(), j.Status,
			fmt.Sprintf("%d/%d", j.DocumentsProcessed, j.TotalDocuments),
			fmt.Sprintf("%d/%d", j.RetryCount, j.MaxRetries),
			orDash(j.CreatedAt))
	}
	tw.Flush()
}

func renderJob(w io.Writer, j *models.Job) {
	tw := newTable(w)
	row(tw, "ID:", j.Key())
	row(tw, "Name:", j.DisplayName())
	row(tw, "Status:", j.Status)
	row(tw, "User:", orDash(j.UserID))
	row(tw, "Created:", orDash(j.CreatedAt))
	row(tw, "Updated:", orDash(j.UpdatedAt))
	row(tw, "Documents:", fmt.Sprintf("%d/%d", j.DocumentsProcessed, j.TotalDocuments))
	row(tw, "Retries:", fmt.Sprintf("%d/%d", j.RetryCount, j.MaxRetries))
	row(tw, "Approval:", orDash(j.ApprovalStatus))
	if len(j.Files) > 0 {
		row(tw, "Files:", strings.Join(j.Files, ", "))
	}
	if j.ErrorMessage != "" {
		row(tw, "Error:", j.ErrorMessage)
	}
	tw.Flush()
}

func renderQueues(w io.Writer, s *models.QueueSnapshot) {
	banner(w, s.Mock)
	names := make([]string, 0, len(s.Queues))
	for n := range s.Queues {
		names = append(names, n)
	}
	sort.Strings(names)

	tw := newTable(w)
	row(tw, "QUEUE", "VISIBLE", "IN FLIGHT", "DELAYED", "DLQ", "JOBS", "HEALTH")
	for _, n := range names {
		q := s.Queues[n]
		row(tw, n, q.SQS.Visible, q.SQS.InFlight, q.SQS.Delayed, q.DeadLetterQueue.Messages, q.TotalJobs, orDash(q.QueueHealth))
	}
	v, f, d, dlq := s.Totals()
	row(tw, "total", v, f, d, dlq, "", orDash(s.OverallHealth))
	tw.Flush()
}

func renderSystemHealth(w io.Writer, h *models.HealthSnapshot) {
	banner(w, h.Mock)
	status := h.HealthStatus
	if status == "" {
		status = models.ClassifyHealth(h.HealthScore)
	}
	fmt.Fprintf(w, "Health: %s (score %.0f)\n", status, h.HealthScore)
	fmt.Fprintf(w, "Workers: %d  Queues: %d  DLQ messages: %d\n",
		h.Metrics.ActiveWorkers, h.Metrics.QueueCount, h.Metrics.TotalDLQMessages)
	for _, issue := range h.Issues {
		fmt.Fprintf(w, "  - %s\n", issue)
	}
}

func renderWorkers(w io.Writer, s *models.WorkerStatus) {
	banner(w, s.Mock)
	fmt.Fprintf(w, "Active workers: %d\n", s.ActiveWorkerCount)
	if len(s.Workers) == 0 {
		return
	}
	tw := newTable(w)
	row(tw, "WORKER", "STATUS", "LAST HEARTBEAT", "AVG JOB (s)")
	for _, wk := range s.Workers {
		row(tw, wk.WorkerID, orDash(wk.Status), orDash(wk.LastHeartbeat), fmt.Sprintf("%.1f", wk.AverageJobDuration))
	}
	tw.Flush()
}

func renderApprovals(w io.Writer, l *models.ApprovalList) {
	banner(w, l.Mock)
	items := l.Items()
	if len(items) == 0 {
		fmt.Fprintln(w, "No approvals.")
		return
	}
	tw := newTable(w)
	row(tw, "ID", "JOB", "STATUS", "DECISION", "CREATED", "NOTES")
	for _, ap := range items {
		decision := "-"
		if ap.Approved != nil {
			decision = "rejected"
			if *ap.Approved {
				decision = "approved"
			}
		}
		row(tw, ap.ApprovalID, orDash(ap.JobID), orDash(ap.Status), decision, orDash(ap.CreatedAt), orDash(ap.Notes))
	}
	tw.Flush()
}

func renderDocuments(w io.Writer, docs []models.Document, withMatch bool) {
	if len(docs) == 0 {
		fmt.Fprintln(w, "No documents.")
		return
	}
	tw := newTable(w)
	header := []any{"ID", "FILENAME", "SOURCE", "SIZE", "WORDS", "PROCESSED"}
	if withMatch {
		header = append(header, "MATCH")
	}
	row(tw, header...)
	for _, d := range docs {
		cols := []any{d.DocumentID, orDash(d.Filename), d.SourceType, humanBytes(d.FileSize), d.WordCount, orDash(d.ProcessedAt)}
		if withMatch {
			cols = append(cols, orDash(d.MatchField))
		}
		row(tw, cols...)
	}
	tw.Flush()
}

func renderDocumentList(w io.Writer, l *models.DocumentList) {
	banner(w, l.Mock)
	renderDocuments(w, l.Documents, false)
	more := ""
	if l.HasMore {
		more = ", more available"
	}
	fmt.Fprintf(w, "Showing %d of %d (offset %d%s)\n", len(l.Documents), l.Total, l.Offset, more)
}

func renderDocument(w io.Writer, d *models.DocumentDetail) {
	tw := newTable(w)
	row(tw, "ID:", d.DocumentID)
	row(tw, "Filename:", orDash(d.Filename))
	row(tw, "Job:", orDash(d.JobID))
	row(tw, "Source:", d.SourceType)
	if d.SourceURL != "" {
		row(tw, "URL:", d.SourceURL)
	}
	row(tw, "Size:", humanBytes(d.FileSize))
	row(tw, "Words:", d.WordCount)
	row(tw, "Chunks:", d.ChunkCount)
	row(tw, "Processed:", orDash(d.ProcessedAt))
	tw.Flush()
	if d.MarkdownContent != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, d.MarkdownContent)
	}
}

func renderDocumentStats(w io.Writer, s *models.DocumentStats) {
	banner(w, s.Mock)
	tw := newTable(w)
	row(tw, "Documents:", s.TotalDocuments)
	row(tw, "PDF:", s.PDFDocuments)
	row(tw, "URL:", s.URLDocuments)
	row(tw, "Total size:", humanBytes(s.TotalSizeBytes))
	row(tw, "Users:", s.UniqueUsers)
	row(tw, "Jobs:", s.UniqueJobs)
	row(tw, "Latest upload:", orDash(s.LatestUpload))
	tw.Flush()
}

func renderSubmit(w io.Writer, r *models.SubmitResult) {
	fmt.Fprintf(w, "Job %s: %s\n", r.JobID, r.Status)
	if r.Message != "" {
		fmt.Fprintln(w, r.Message)
	}
}

func renderAck(w io.Writer, ack *models.Ack, fallback string) {
	msg := ack.Message
	if msg == "" {
		msg = fallback
	}
	fmt.Fprintln(w, msg)
}

func renderOverview(w io.Writer, o *services.Overview) {
	if o.Health != nil {
		renderSystemHealth(w, o.Health)
		fmt.Fprintln(w)
	}
	if o.Queues != nil {
		renderQueues(w, o.Queues)
		fmt.Fprintln(w)
	}
	if o.Jobs != nil {
		renderJobs(w, o.Jobs)
	}
}

func humanBytes(n int64) string {
	if n < 0 {
		return "-"
	}
	return humanize.IBytes(uint64(n))
}
