package models

// DefaultUploadContentType is used when a file declares no content type.
const DefaultUploadContentType = "application/pdf"

type PresignedURL struct {
	UploadURL string `json:"upload_url"`
	FileKey   string `json:"file_key"`
	ExpiresIn int    `json:"expires_in,omitempty"`
}

type UploadedFile struct {
	FileKey  string `json:"file_key"`
	Filename string `json:"filename"`
}

// ProcessFilesRequest is the body of POST /upload/process-s3-files.
type ProcessFilesRequest struct {
	Files            []UploadedFile `json:"files"`
	JobName          string         `json:"job_name"`
	ApprovalRequired bool           `json:"approval_required"`
}
