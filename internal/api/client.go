// Package api is the HTTP client for the GBMS backend.
//
// Every request carries the session token as a bearer credential. A 401
// response clears the session, runs the unauthorized hook and yields
// ErrSessionExpired; other failures are reported as *Error or
// *TransportError.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/krcglobal/gbms/internal/errors"
	"github.com/krcglobal/gbms/internal/log"
	"github.com/krcglobal/gbms/internal/session"
	"github.com/krcglobal/gbms/internal/telemetry"
)

// DefaultBaseURL is the development backend origin.
const DefaultBaseURL = "http://127.0.0.1:5001/api"

// Fallback messages used when an error response carries no message.
const (
	MessageRequestFailed  = "요청 처리 중 오류가 발생했습니다."
	MessageUploadFailed   = "파일 업로드 중 오류가 발생했습니다."
	MessageSessionExpired = "인증이 만료되었습니다. 다시 로그인해주세요."
)

// ErrSessionExpired is returned for every 401 response.
var ErrSessionExpired = errors.New(errors.ErrCodeAuthSessionExpired, MessageSessionExpired).
	WithSuggestion("Run 'gbms login' to start a new session")

// ErrTransport matches every *TransportError through errors.Is.
var ErrTransport = errors.New(errors.ErrCodeAPITransport, "backend unreachable")

// Error is a non-2xx, non-401 response.
type Error struct {
	StatusCode int
	Message    string
}

// Error returns the server supplied message.
func (e *Error) Error() string {
	return e.Message
}

// TransportError is a request that produced no HTTP response.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is matches ErrTransport.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// Config configures a Client.
type Config struct {
	// BaseURL is prefixed to every request path, e.g. "https://host/api".
	BaseURL string

	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration

	// UserAgent is sent with every request when set.
	UserAgent string
}

// Client is the GBMS backend API client.
type Client struct {
	baseURL        string
	userAgent      string
	httpClient     *http.Client
	session        session.Session
	logger         *log.Logger
	onUnauthorized func(ctx context.Context)
	observer       Observer
	basePath       string

	Projects  *ProjectsService
	Budgets   *BudgetsService
	Documents *DocumentsService
	Offices   *OfficesService
	Users     *UsersService
	Dashboard *DashboardService
	GIS       *GISService
	Auth      *AuthService
}

// Observer is told about every completed request. The path is relative to
// the base URL and status is 0 when no response arrived.
type Observer interface {
	ObserveRequest(method, path string, status int, d time.Duration)
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		c.logger = log.OrDefault(l)
	}
}

// WithObserver registers o for request metrics.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// WithUnauthorizedHandler registers fn to run after a 401 response has
// cleared the session.
func WithUnauthorizedHandler(fn func(ctx context.Context)) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

// New creates a client for cfg that reads its token from sess.
func New(cfg Config, sess session.Session, opts ...Option) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		session:    sess,
		logger:     log.DefaultLogger(),
	}
	if u, err := url.Parse(c.baseURL); err == nil {
		c.basePath = u.Path
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Projects = &ProjectsService{client: c}
	c.Budgets = &BudgetsService{client: c}
	c.Documents = &DocumentsService{client: c}
	c.Offices = &OfficesService{client: c}
	c.Users = &UsersService{client: c}
	c.Dashboard = &DashboardService{client: c}
	c.GIS = &GISService{client: c}
	c.Auth = &AuthService{client: c}

	return c
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type requestOptions struct {
	query   url.Values
	headers http.Header

	// keepSession marks login and logout: a 401 there means bad
	// credentials or an already dead token, not an expired session.
	keepSession bool
}

// RequestOption customizes a single request.
type RequestOption func(*requestOptions)

// WithQuery appends query parameters to the request URL.
func WithQuery(q url.Values) RequestOption {
	return func(o *requestOptions) {
		for k, vs := range q {
			for _, v := range vs {
				o.query.Add(k, v)
			}
		}
	}
}

// WithHeader sets a request header, replacing any default for key.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		o.headers.Set(key, value)
	}
}

// Request sends a JSON request and decodes a 2xx response body into out.
// A nil body sends no payload; a nil out discards the response body.
func (c *Client) Request(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	ro := requestOptions{query: url.Values{}, headers: http.Header{}}
	for _, opt := range opts {
		opt(&ro)
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(errors.ErrCodeAPIRequest, "failed to marshal request body", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path, ro.query), reqBody)
	if err != nil {
		return errors.Wrap(errors.ErrCodeAPIRequest, "failed to create request", err)
	}

	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)
	for k, vs := range ro.headers {
		req.Header[k] = vs
	}

	return c.do(req, MessageRequestFailed, out, !ro.keepSession)
}

// Get sends a GET request with optional query parameters.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Request(ctx, http.MethodGet, path, nil, out, WithQuery(query))
}

// Post sends a POST request. A nil body is sent as an empty JSON object.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Request(ctx, http.MethodPost, path, orEmpty(body), out)
}

// Put sends a PUT request. A nil body is sent as an empty JSON object.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Request(ctx, http.MethodPut, path, orEmpty(body), out)
}

// Delete sends a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Request(ctx, http.MethodDelete, path, nil, out)
}

func orEmpty(body any) any {
	if body == nil {
		return struct{}{}
	}
	return body
}

func (c *Client) url(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) == 0 {
		return u
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return u + sep + query.Encode()
}

func (c *Client) observe(req *http.Request, status int, start time.Time) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveRequest(req.Method, strings.TrimPrefix(req.URL.Path, c.basePath), status, time.Since(start))
}

func (c *Client) authorize(req *http.Request) {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.session == nil {
		return
	}
	if token, ok := c.session.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// do sends req and maps the response. fallback is the message used for
// error responses without one. With expireOn401 unset a 401 is reported as
// an *Error like any other status.
func (c *Client) do(req *http.Request, fallback string, out any, expireOn401 bool) (err error) {
	start := time.Now()
	ctx, span := telemetry.StartRequestSpan(req.Context(), req.Method, strings.TrimPrefix(req.URL.Path, c.basePath))
	defer func() { telemetry.EndSpan(span, err) }()
	req = req.WithContext(ctx)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(req, 0, start)
		terr := &TransportError{Method: req.Method, URL: req.URL.Redacted(), Err: err}
		c.logger.ErrorContext(ctx, "api request failed", "method", req.Method, "path", req.URL.Path, "error", err)
		return terr
	}
	defer resp.Body.Close()

	data, readErr := io.ReadAll(resp.Body)
	c.observe(req, resp.StatusCode, start)
	telemetry.RecordStatus(span, resp.StatusCode)

	c.logger.DebugContext(ctx, "api request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode == http.StatusUnauthorized && expireOn401 {
		c.expire(ctx)
		return ErrSessionExpired
	}

	if readErr != nil {
		return &TransportError{Method: req.Method, URL: req.URL.Redacted(), Err: readErr}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{StatusCode: resp.StatusCode, Message: errorMessage(data, fallback)}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrap(errors.ErrCodeAPIDecode, "failed to decode response", err)
	}
	return nil
}

func (c *Client) expire(ctx context.Context) {
	if c.session != nil {
		if err := c.session.Clear(); err != nil {
			c.logger.WithError(err).WarnContext(ctx, "failed to clear session after 401")
		}
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized(ctx)
	}
}

func errorMessage(body []byte, fallback string) string {
	var errResp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return errResp.Message
	}
	return fallback
}
