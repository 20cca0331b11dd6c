package services

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/ingestctl/internal/client/client"
	"github.com/dmitrijs2005/ingestctl/internal/client/models"
)

// fakeClient records the calls the services make. Methods the services
// never use are left to the embedded nil interface.
type fakeClient struct {
	client.Client

	mu    sync.Mutex
	calls []string

	LoginRet *models.TokenSet
	LoginErr error
	LastCred models.Credentials

	MeRet *models.UserInfo
	MeErr error

	HealthRet *models.ServiceHealth
	HealthErr error

	// PresignErr[i] / PutErr[i] fail the i-th presign / put (0-based).
	PresignErr map[int]error
	PutErr     map[int]error
	presigns   int
	puts       int
	PutBodies  []string
	PutTypes   []string
	PutSizes   []int64

	NotifyRet *models.SubmitResult
	NotifyErr error
	LastNotify models.ProcessFilesRequest

	SubmitRet  *models.SubmitResult
	SubmitErr  error
	LastSubmit models.SubmitURLsRequest

	QueueRet  *models.QueueSnapshot
	JobsRet   *models.JobList
	SysRet    *models.HealthSnapshot
	ReadErr   error
	LastLimit int
}

func (f *fakeClient) record(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, s)
}

func (f *fakeClient) Login(_ context.Context, c models.Credentials) (*models.TokenSet, error) {
	f.record("login")
	f.LastCred = c
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Me(context.Context) (*models.UserInfo, error) {
	f.record("me")
	return f.MeRet, f.MeErr
}

func (f *fakeClient) Health(context.Context) (*models.ServiceHealth, error) {
	f.record("health")
	return f.HealthRet, f.HealthErr
}

func (f *fakeClient) PresignedURL(_ context.Context, filename, contentType string) (*models.PresignedURL, error) {
	i := f.presigns
	f.presigns++
	f.record(fmt.Sprintf("presign %s %s", filename, contentType))
	if err := f.PresignErr[i]; err != nil {
		return nil, err
	}
	return &models.PresignedURL{UploadURL: "http://store/" + filename, FileKey: "uploads/" + filename}, nil
}

func (f *fakeClient) DirectUpload(_ context.Context, uploadURL, contentType string, body io.Reader, size int64) error {
	i := f.puts
	f.puts++
	f.record("put " + uploadURL)
	b, _ := io.ReadAll(body)
	f.PutBodies = append(f.PutBodies, string(b))
	f.PutTypes = append(f.PutTypes, contentType)
	f.PutSizes = append(f.PutSizes, size)
	return f.PutErr[i]
}

func (f *fakeClient) NotifyProcessing(_ context.Context, req models.ProcessFilesRequest) (*models.SubmitResult, error) {
	f.record("notify")
	f.LastNotify = req
	return f.NotifyRet, f.NotifyErr
}

func (f *fakeClient) SubmitURLs(_ context.Context, req models.SubmitURLsRequest) (*models.SubmitResult, error) {
	f.record("submit")
	f.LastSubmit = req
	return f.SubmitRet, f.SubmitErr
}

func (f *fakeClient) QueueStats(context.Context) (*models.QueueSnapshot, error) {
	f.record("queues")
	return f.QueueRet, f.ReadErr
}

func (f *fakeClient) DashboardJobs(_ context.Context, limit int) (*models.JobList, error) {
	f.record("jobs")
	f.mu.Lock()
	f.LastLimit = limit
	f.mu.Unlock()
	return f.JobsRet, f.ReadErr
}

func (f *fakeClient) SystemHealth(context.Context) (*models.HealthSnapshot, error) {
	f.record("system")
	return f.SysRet, f.ReadErr
}

type fakeSession struct {
	saved    *models.TokenSet
	username string
	SaveErr  error
	cleared  bool
}

func (s *fakeSession) Save(_ context.Context, username string, ts *models.TokenSet) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.username = username
	s.saved = ts
	return nil
}

func (s *fakeSession) Clear(context.Context) error {
	s.cleared = true
	s.saved = nil
	return nil
}

func (s *fakeSession) Username(context.Context) string { return s.username }
