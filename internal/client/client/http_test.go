package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/ingestctl/internal/client/auth"
	"github.com/dmitrijs2005/ingestctl/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

// recorder captures every request the fake backend receives.
type recorder struct {
	mu   sync.Mutex
	reqs []*http.Request
	body map[string][]byte
}

func (r *recorder) add(req *http.Request) {
	b, _ := io.ReadAll(req.Body)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.body == nil {
		r.body = map[string][]byte{}
	}
	r.reqs = append(r.reqs, req)
	r.body[req.Method+" "+req.URL.Path] = b
}

func (r *recorder) last() *http.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.reqs) == 0 {
		return nil
	}
	return r.reqs[len(r.reqs)-1]
}

func newTestServer(t *testing.T, rec *recorder, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rec != nil {
			rec.add(r)
		}
		h(w, r)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func newTestClient(t *testing.T, baseURL string, opts ...Option) *HTTPClient {
	t.Helper()
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	c, err := NewHTTPClient(baseURL, opts...)
	require.NoError(t, err)
	return c
}

func jsonHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

// deadURL returns the address of a server that is no longer listening.
func deadURL(t *testing.T) string {
	t.Helper()
	ts := httptest.NewServer(http.NotFoundHandler())
	u := ts.URL
	ts.Close()
	return u
}

func TestNewHTTPClient_RejectsBadBaseURL(t *testing.T) {
	for _, u := range []string{"", "ftp://host", "://nope", "localhost:8000"} {
		_, err := NewHTTPClient(u)
		assert.Error(t, err, u)
	}

	c, err := NewHTTPClient("http://api.local/v1/")
	require.NoError(t, err)
	assert.Equal(t, "http://api.local/v1", c.BaseURL())
}

func TestAuthenticatedCall_SendsBearerOfCurrentToken(t *testing.T) {
	rec := &recorder{}
	ts := newTestServer(t, rec, jsonHandler(http.StatusOK, `{"documents":[]}`))

	token := "tok-1"
	c := newTestClient(t, ts.URL, WithSession(auth.SessionFunc(func(context.Context) (string, bool) {
		return token, true
	})))

	_, err := c.ListDocuments(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", rec.last().Header.Get("Authorization"))

	token = "tok-2"
	_, err = c.ListDocuments(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-2", rec.last().Header.Get("Authorization"))
}

func TestAuthenticatedCall_NoSession_OmitsAuthorizationKey(t *testing.T) {
	rec := &recorder{}
	ts := newTestServer(t, rec, jsonHandler(http.StatusOK, `{"jobs":[]}`))
	c := newTestClient(t, ts.URL)

	_, err := c.ListJobs(context.Background())
	require.NoError(t, err)

	_, present := rec.last().Header["Authorization"]
	assert.False(t, present)
}

func TestAnonymousEndpoints_NeverSendSessionToken(t *testing.T) {
	rec := &recorder{}
	ts := newTestServer(t, rec, jsonHandler(http.StatusOK, `{"status":"healthy","id_token":"x"}`))
	c := newTestClient(t, ts.URL, WithSession(auth.StaticSession("secret")))
	ctx := context.Background()

	_, err := c.Health(ctx)
	require.NoError(t, err)
	_, present := rec.last().Header["Authorization"]
	assert.False(t, present, "health")

	_, err = c.Refresh(ctx, "rt")
	require.NoError(t, err)
	_, present = rec.last().Header["Authorization"]
	assert.False(t, present, "refresh")

	_, err = c.Login(ctx, models.Credentials{Username: "u", Password: "p"})
	require.NoError(t, err)
	_, present = rec.last().Header["Authorization"]
	assert.False(t, present, "login")
}

func TestJSONCalls_SetContentType(t *testing.T) {
	rec := &recorder{}
	ts := newTestServer(t, rec, jsonHandler(http.StatusOK, `{}`))
	c := newTestClient(t, ts.URL)

	_, err := c.DecideApproval(context.Background(), "ap-1", true)
	require.NoError(t, err)

	r := rec.last()
	assert.Equal(t, http.MethodPut, r.Method)
	assert.Equal(t, "/approvals/ap-1", r.URL.Path)
	assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"approved":true}`, string(rec.body["PUT /approvals/ap-1"]))
}

func TestDownload_NoContentTypeHeader_ReturnsRawBytes(t *testing.T) {
	rec := &recorder{}
	ts := newTestServer(t, rec, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/markdown")
		w.Header().Set("Content-Disposition", `attachment; filename="report.md"`)
		_, _ = io.WriteString(w, "# not json {")
	})
	c := newTestClient(t, ts.URL, WithSession(auth.StaticSession("tok")))

	d, err := c.DownloadDocument(context.Background(), "doc 1", models.FormatMarkdown)
	require.NoError(t, err)

	r := rec.last()
	_, hasCT := r.Header["Content-Type"]
	assert.False(t, hasCT)
	assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
	assert.Equal(t, "/documents/doc 1/download", r.URL.Path)
	assert.Equal(t, "markdown", r.URL.Query().Get("format"))

	assert.Equal(t, []byte("# not json {"), d.Data)
	assert.Equal(t, "text/markdown", d.ContentType)
	assert.Equal(t, "report.md", d.Filename)
}

func TestDownload_DefaultsToMarkdown(t *testing.T) {
	rec := &recorder{}
	ts := newTestServer(t, rec, jsonHandler(http.StatusOK, `{}`))
	c := newTestClient(t, ts.URL)

	_, err := c.DownloadDocument(context.Background(), "d", "")
	require.NoError(t, err)
	assert.Equal(t, "markdown", rec.last().URL.Query().Get("format"))
}

func TestGetDocument_404_PropagatesStatus(t *testing.T) {
	ts := newTestServer(t, nil, jsonHandler(http.StatusNotFound, `{"detail":"Document not found"}`))
	c := newTestClient(t, ts.URL)

	doc, err := c.GetDocument(context.Background(), "missing-id")
	require.Error(t, err)
	assert.Nil(t, doc)
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "Document not found")
}

func TestStatusError_Is(t *testing.T) {
	for code, want := range map[int]error{401: ErrUnauthorized, 403: ErrUnauthorized, 404: ErrNotFound} {
		err := error(&StatusError{StatusCode: code})
		assert.ErrorIs(t, err, want, code)
	}
	err := error(&StatusError{StatusCode: 500})
	assert.NotErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, StatusCode(errors.New("plain")))
}

func TestDecodeFailure_WrapsErrDecode(t *testing.T) {
	ts := newTestServer(t, nil, jsonHandler(http.StatusOK, `<html>oops</html>`))
	c := newTestClient(t, ts.URL)

	_, err := c.GetJob(context.Background(), "j")
	assert.ErrorIs(t, err, ErrDecode)
}

func TestWellFormedJSON_PassesThroughUnvalidated(t *testing.T) {
	ts := newTestServer(t, nil, jsonHandler(http.StatusOK, `{"job_id":"j1","status":"teleported","extra":1}`))
	c := newTestClient(t, ts.URL)

	job, err := c.GetJob(context.Background(), "j1")
	require.NoError(t, err)
	assert.Equal(t, models.JobStatus("teleported"), job.Status)
	assert.False(t, job.Status.Known())
}

func TestTransportFailure_WrapsErrUnavailable(t *testing.T) {
	c := newTestClient(t, deadURL(t))

	_, err := c.GetDocument(context.Background(), "x")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 0, StatusCode(err))
}

func TestExactlyOneAttempt(t *testing.T) {
	rec := &recorder{}
	ts := newTestServer(t, rec, jsonHandler(http.StatusServiceUnavailable, `{}`))
	c := newTestClient(t, ts.URL)

	_, err := c.SearchDocuments(context.Background(), "x", 5)
	require.Error(t, err)
	_, err = c.QueueStats(context.Background())
	require.NoError(t, err)
	assert.Len(t, rec.reqs, 2)
}

func TestWithTimeout_BoundsRequest(t *testing.T) {
	release := make(chan struct{})
	ts := newTestServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	c := newTestClient(t, ts.URL, WithHTTPClient(ts.Client()), WithTimeout(50*time.Millisecond))
	_, err := c.GetJob(context.Background(), "slow")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestPresignedURL_SendsMultipartForm(t *testing.T) {
	var filename, contentType, reqCT string
	ts := newTestServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
		reqCT = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		filename = r.FormValue("filename")
		contentType = r.FormValue("content_type")
		jsonHandler(http.StatusOK, `{"upload_url":"http://store/put","file_key":"uploads/a.pdf","expires_in":3600}`)(w, r)
	})
	c := newTestClient(t, ts.URL, WithSession(auth.StaticSession("tok")))

	p, err := c.PresignedURL(context.Background(), "a.pdf", "application/pdf")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(reqCT, "multipart/form-data; boundary="), reqCT)
	assert.Equal(t, "a.pdf", filename)
	assert.Equal(t, "application/pdf", contentType)
	assert.Equal(t, &models.PresignedURL{UploadURL: "http://store/put", FileKey: "uploads/a.pdf", ExpiresIn: 3600}, p)
}

func TestPresignedURL_EmptyUploadURL_IsDecodeError(t *testing.T) {
	ts := newTestServer(t, nil, jsonHandler(http.StatusOK, `{"file_key":"k"}`))
	c := newTestClient(t, ts.URL)

	_, err := c.PresignedURL(context.Background(), "a.pdf", "application/pdf")
	assert.ErrorIs(t, err, ErrDecode)
}

func TestDirectUpload_NoAuthAndStatusMapping(t *testing.T) {
	var gotAuth []string
	status := http.StatusOK
	ts := newTestServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Values("Authorization")
		w.WriteHeader(status)
	})
	c := newTestClient(t, ts.URL, WithSession(auth.StaticSession("tok")))

	require.NoError(t, c.DirectUpload(context.Background(), ts.URL+"/obj", "application/pdf", strings.NewReader("abc"), 3))
	assert.Empty(t, gotAuth)

	status = http.StatusForbidden
	err := c.DirectUpload(context.Background(), ts.URL+"/obj", "application/pdf", strings.NewReader("abc"), 3)
	assert.Equal(t, http.StatusForbidden, StatusCode(err))

	err = c.DirectUpload(context.Background(), deadURL(t), "application/pdf", strings.NewReader("abc"), 3)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSubmitURLs_201_ReturnedUnchanged(t *testing.T) {
	rec := &recorder{}
	ts := newTestServer(t, rec, jsonHandler(http.StatusCreated, `{"success":true,"job_id":"abc123","status":"pending"}`))
	c := newTestClient(t, ts.URL)

	res, err := c.SubmitURLs(context.Background(), models.SubmitURLsRequest{
		URLs:             []string{"https://example.com"},
		UserID:           "u-1",
		Notes:            "test",
		ApprovalRequired: true,
		JobName:          "crawl",
	})
	require.NoError(t, err)
	assert.Equal(t, &models.SubmitResult{Success: true, JobID: "abc123", Status: "pending"}, res)
	assert.JSONEq(t,
		`{"urls":["https://example.com"],"user_id":"u-1","notes":"test","approval_required":true,"job_name":"crawl"}`,
		string(rec.body["POST /process/urls"]))
}

func TestSubmitURLs_TransportFailure_Propagates(t *testing.T) {
	c := newTestClient(t, deadURL(t))

	res, err := c.SubmitURLs(context.Background(), models.SubmitURLsRequest{URLs: []string{"https://example.com"}})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSubmitURLs_Simulated_ReturnsPendingMock(t *testing.T) {
	c := newTestClient(t, deadURL(t), WithSimulatedSubmissions(true))

	res, err := c.SubmitURLs(context.Background(), models.SubmitURLsRequest{URLs: []string{"https://example.com"}, Notes: "test", ApprovalRequired: true})
	require.NoError(t, err)
	assert.Equal(t, &models.SubmitResult{
		Success: true,
		JobID:   "mock-1777888800000",
		Status:  "pending",
		Message: "URL submission simulation successful (mock data)",
	}, res)
}

func TestQueryParameters(t *testing.T) {
	rec := &recorder{}
	ts := newTestServer(t, rec, jsonHandler(http.StatusOK, `{}`))
	c := newTestClient(t, ts.URL)
	ctx := context.Background()

	_, _ = c.DashboardJobs(ctx, 7)
	assert.Equal(t, "/dashboard/jobs", rec.last().URL.Path)
	assert.Equal(t, "7", rec.last().URL.Query().Get("limit"))

	_, _ = c.ListDocuments(ctx, 20, 40)
	assert.Equal(t, "limit=20&offset=40", rec.last().URL.RawQuery)

	_, _ = c.SearchDocuments(ctx, "tax report", 5)
	assert.Equal(t, "tax report", rec.last().URL.Query().Get("q"))
	assert.Equal(t, "5", rec.last().URL.Query().Get("limit"))

	_, _ = c.CancelJob(ctx, "j/1")
	assert.Equal(t, "/dashboard/jobs/j%2F1/cancel", rec.last().URL.EscapedPath())
	assert.Equal(t, http.MethodPost, rec.last().Method)
}

func withBodyCap(t *testing.T, n int64) {
	t.Helper()
	old := maxResponseBody
	maxResponseBody = n
	t.Cleanup(func() { maxResponseBody = old })
}

func TestDownload_OverCap_FailsInsteadOfTruncating(t *testing.T) {
	withBodyCap(t, 16)
	ts := newTestServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 17)))
	})
	c := newTestClient(t, ts.URL)

	d, err := c.DownloadDocument(context.Background(), "d", models.FormatMarkdown)
	require.ErrorIs(t, err, ErrTooLarge)
	assert.Nil(t, d)
}

func TestDownload_AtCap_ReturnsWholePayload(t *testing.T) {
	withBodyCap(t, 16)
	payload := strings.Repeat("y", 16)
	ts := newTestServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, payload)
	})
	c := newTestClient(t, ts.URL)

	d, err := c.DownloadDocument(context.Background(), "d", models.FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, []byte(payload), d.Data)
}

func TestFilenameFrom(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{`attachment; filename="report.md"`, "report.md"},
		{"attachment; filename=report.md", "report.md"},
		{"attachment; filename=Annual Report 2025.pdf.md", "Annual Report 2025.pdf.md"},
		{`attachment; FILENAME="a b.json"; size=3`, "a b.json"},
		{"attachment", ""},
	}
	for _, tt := range tests {
		h := http.Header{}
		if tt.header != "" {
			h.Set("Content-Disposition", tt.header)
		}
		assert.Equal(t, tt.want, filenameFrom(h), tt.header)
	}
}

// anonymousEndpoints never carry the session token.
var anonymousEndpoints = map[Endpoint]bool{
	EndpointHealth:  true,
	EndpointLogin:   true,
	EndpointRefresh: true,
}

func TestEveryAuthenticatedEndpoint_SendsBearer(t *testing.T) {
	rec := &recorder{}
	ts := newTestServer(t, rec, jsonHandler(http.StatusOK, `{"upload_url":"http://bucket.local/k","file_key":"k"}`))
	c := newTestClient(t, ts.URL, WithSession(auth.StaticSession("tok-all")))
	ctx := context.Background()

	calls := map[Endpoint]func() error{}
	for ep, call := range readCalls {
		calls[ep] = func() error { _, err := call(ctx, c); return err }
	}
	for ep, call := range mutatingCalls {
		calls[ep] = func() error { return call(ctx, c) }
	}

	checked := 0
	for ep, call := range calls {
		require.NoError(t, call(), ep)
		want := "Bearer tok-all"
		if anonymousEndpoints[ep] {
			want = ""
		}
		assert.Equal(t, want, rec.last().Header.Get("Authorization"), ep)
		checked++
	}
	assert.Equal(t, len(Endpoints())-1, checked, "every endpoint but the direct upload is covered")
}
