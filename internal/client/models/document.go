package models

import "encoding/json"

type SourceType string

const (
	SourcePDF SourceType = "pdf"
	SourceURL SourceType = "url"
)

// Document is a processed document entry of the backend manifest.
type Document struct {
	DocumentID     string     `json:"document_id"`
	Filename       string     `json:"filename"`
	JobID          string     `json:"job_id"`
	JobName        string     `json:"job_name,omitempty"`
	UserID         string     `json:"user_id,omitempty"`
	SourceType     SourceType `json:"source_type"`
	SourceURL      string     `json:"source_url,omitempty"`
	FileSize       int64      `json:"file_size"`
	ProcessedAt    string     `json:"processed_at"`
	MarkdownKey    string     `json:"markdown_s3_key,omitempty"`
	SidecarKey     string     `json:"sidecar_s3_key,omitempty"`
	WordCount      int        `json:"word_count,omitempty"`
	ChunkCount     int        `json:"chunk_count,omitempty"`
	EmbeddingModel string     `json:"embedding_model,omitempty"`
	MatchField     string     `json:"match_field,omitempty"`
}

// DocumentDetail is a document together with its content and sidecar record.
type DocumentDetail struct {
	Document
	MarkdownContent string          `json:"markdown_content,omitempty"`
	SidecarData     json.RawMessage `json:"sidecar_data,omitempty"`
}

type DocumentList struct {
	Documents []Document `json:"documents"`
	Total     int        `json:"total"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
	HasMore   bool       `json:"has_more"`
	Mock      bool       `json:"mock,omitempty"`
}

type SearchResult struct {
	Query   string     `json:"query"`
	Results []Document `json:"results"`
	Count   int        `json:"count"`
}

type DocumentStats struct {
	TotalDocuments int    `json:"total_documents"`
	PDFDocuments   int    `json:"pdf_documents"`
	URLDocuments   int    `json:"url_documents"`
	TotalSizeBytes int64  `json:"total_size_bytes"`
	LatestUpload   string `json:"latest_upload"`
	UniqueUsers    int    `json:"unique_users"`
	UniqueJobs     int    `json:"unique_jobs"`
	Mock           bool   `json:"mock,omitempty"`
}

// DownloadFormat selects the representation served by the download endpoint.
type DownloadFormat string

const (
	FormatMarkdown DownloadFormat = "markdown"
	FormatJSON     DownloadFormat = "json"
)

// Download is a binary payload; it is never JSON-decoded by the client.
type Download struct {
	Data        []byte
	ContentType string
	Filename    string
}
