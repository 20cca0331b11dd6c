package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/ingestctl/internal/client/auth"
	"github.com/dmitrijs2005/ingestctl/internal/logging"
	"github.com/google/uuid"
)

const maxErrorBody = 512

// maxResponseBody caps how much of a response is read into memory.
var maxResponseBody int64 = 64 << 20

type HTTPClient struct {
	baseURL  string
	hc       *http.Client
	headers  *auth.HeaderProvider
	log      logging.Logger
	now      func() time.Time
	timeout  time.Duration
	simulate bool
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the transport. The default is a client with
// no timeout of its own.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.hc = hc }
}

func WithSession(s auth.SessionAccessor) Option {
	return func(c *HTTPClient) { c.headers = auth.NewHeaderProvider(s) }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// WithTimeout bounds every request. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

func WithClock(now func() time.Time) Option {
	return func(c *HTTPClient) { c.now = now }
}

// WithSimulatedSubmissions makes a failed URL submission answer with a
// synthetic pending job instead of an error. Meant for demos only.
func WithSimulatedSubmissions(on bool) Option {
	return func(c *HTTPClient) { c.simulate = on }
}

func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api base url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api base url %q: scheme must be http or https", baseURL)
	}

	c := &HTTPClient{
		baseURL: u.String(),
		hc:      &http.Client{},
		headers: auth.NewHeaderProvider(nil),
		log:     logging.Discard(),
		now:     time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	if c.timeout > 0 {
		hc := *c.hc
		hc.Timeout = c.timeout
		c.hc = &hc
	}
	return c, nil
}

// BaseURL returns the API root all paths are resolved against.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// request describes one call. Paths are already escaped. A nil body sends none.
type request struct {
	endpoint Endpoint
	method   string
	path     string
	query    url.Values
	body     io.Reader
	// contentType overrides the header set for kind, e.g. a multipart boundary.
	contentType string
	kind        auth.ContentKind
	anonymous   bool
}

type response struct {
	header http.Header
	body   []byte
}

func (c *HTTPClient) endpointURL(path string, q url.Values) string {
	s := c.baseURL + path
	if len(q) > 0 {
		s += "?" + q.Encode()
	}
	return s
}

// do performs exactly one attempt.
func (c *HTTPClient) do(ctx context.Context, r request) (*response, error) {
	log := c.log.With("call_id", uuid.NewString(), "endpoint", string(r.endpoint))

	req, err := http.NewRequestWithContext(ctx, r.method, c.endpointURL(r.path, r.query), r.body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", r.method, r.path, err)
	}

	var h http.Header
	if r.anonymous {
		h = auth.NewHeaderProvider(nil).Headers(ctx, r.kind)
	} else {
		h = c.headers.Headers(ctx, r.kind)
	}
	for k, v := range h {
		req.Header[k] = v
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}

	start := c.now()
	resp, err := c.hc.Do(req)
	if err != nil {
		log.Debug(ctx, "request failed", "method", r.method, "path", r.path, "error", err)
		return nil, fmt.Errorf("%s %s: %w: %w", r.method, r.path, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody+1))
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w: %w", r.method, r.path, ErrUnavailable, err)
	}
	if int64(len(body)) > maxResponseBody {
		log.Warn(ctx, "response body over cap", "method", r.method, "path", r.path, "limit", maxResponseBody)
		return nil, fmt.Errorf("%s %s: %w: more than %d bytes", r.method, r.path, ErrTooLarge, maxResponseBody)
	}

	log.Debug(ctx, "request done", "method", r.method, "path", r.path,
		"status", resp.StatusCode, "bytes", len(body), "elapsed", c.now().Sub(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Method:     r.method,
			Path:       r.path,
			Body:       snippet(body),
		}
	}
	return &response{header: resp.Header, body: body}, nil
}

// doJSON performs the call and decodes the body into out. An empty 2xx body
// leaves out untouched.
func (c *HTTPClient) doJSON(ctx context.Context, r request, out any) error {
	resp, err := c.do(ctx, r)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(resp.body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return fmt.Errorf("%s %s: %w: %w", r.method, r.path, ErrDecode, err)
	}
	return nil
}

func jsonBody(v any) (io.Reader, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return bytes.NewReader(b), nil
}

// withFallback applies the endpoint policy to a failed call. A cancelled or
// expired caller context is always returned as an error.
func withFallback[T any](ctx context.Context, c *HTTPClient, ep Endpoint, v T, err error, mock func() T) (T, error) {
	if err == nil || PolicyFor(ep) != Fallback || ctx.Err() != nil {
		return v, err
	}
	c.log.Warn(ctx, "serving mock payload", "endpoint", string(ep), "error", err)
	return mock(), nil
}

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody] + "..."
	}
	return s
}

// filenameFrom extracts the filename parameter of a Content-Disposition
// header. The backend sends it unquoted, so a name with spaces is not a
// valid token; such headers are split by hand.
func filenameFrom(h http.Header) string {
	cd := h.Get("Content-Disposition")
	if cd == "" {
		return ""
	}
	if _, params, err := mime.ParseMediaType(cd); err == nil {
		return params["filename"]
	}
	for _, part := range strings.Split(cd, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if ok && strings.EqualFold(strings.TrimSpace(k), "filename") {
			return strings.Trim(strings.TrimSpace(v), `"`)
		}
	}
	return ""
}
