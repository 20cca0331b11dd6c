package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/ingestctl/internal/client/client"
	"github.com/dmitrijs2005/ingestctl/internal/client/models"
)

var ErrNoURLs = errors.New("no urls to submit")

// SubjectFunc resolves the user id the backend files submissions under.
type SubjectFunc func(ctx context.Context) string

type URLSubmission struct {
	URLs             []string
	Notes            string
	JobName          string
	ApprovalRequired bool
}

type SubmitService interface {
	SubmitURLs(ctx context.Context, s URLSubmission) (*models.SubmitResult, error)
}

type submitService struct {
	client   client.Client
	subject  SubjectFunc
	fallback string
}

// NewSubmitService builds the URL submission service. The user id comes
// from subject and falls back to defaultUserID when that yields nothing.
func NewSubmitService(c client.Client, subject SubjectFunc, defaultUserID string) SubmitService {
	return &submitService{client: c, subject: subject, fallback: defaultUserID}
}

func (s *submitService) SubmitURLs(ctx context.Context, sub URLSubmission) (*models.SubmitResult, error) {
	urls := make([]string, 0, len(sub.URLs))
	for _, raw := range sub.URLs {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("invalid url %q", raw)
		}
		urls = append(urls, raw)
	}
	if len(urls) == 0 {
		return nil, ErrNoURLs
	}

	userID := ""
	if s.subject != nil {
		userID = s.subject(ctx)
	}
	if userID == "" {
		userID = s.fallback
	}

	return s.client.SubmitURLs(ctx, models.SubmitURLsRequest{
		URLs:             urls,
		UserID:           userID,
		Notes:            sub.Notes,
		ApprovalRequired: sub.ApprovalRequired,
		JobName:          jobName(sub.JobName, urls),
	})
}

// jobName keeps an explicit name and otherwise derives one from the first
// URL's host. The backend requires a non-empty name.
func jobName(name string, urls []string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	host := urls[0]
	if u, err := url.Parse(urls[0]); err == nil && u.Host != "" {
		host = u.Host
	}
	if len(urls) > 1 {
		return fmt.Sprintf("URL import: %s (+%d more)", host, len(urls)-1)
	}
	return "URL import: " + host
}
