// Package transport implements the HTTP session that every resource
// package (including the datapoints core) issues requests through: a
// session that performs a request with gzip, retries, auth headers,
// and timeouts, as an external collaborator to the core rather than
// part of it.
package transport

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/cristalhq/hedgedhttp"
	"github.com/go-kit/log"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/industrialdata/platform-client-go/internal/hedgedmetrics"
	"github.com/industrialdata/platform-client-go/internal/ratelog"
	"github.com/industrialdata/platform-client-go/internal/wire"
	"github.com/industrialdata/platform-client-go/platformerr"
)

// Config configures a Session's HTTP behavior. Populated once at
// construction and never mutated afterward.
type Config struct {
	BaseURL    string
	Project    string
	MaxWorkers int

	RequestTimeout    time.Duration
	RetryCount        int
	MaxRetryBackoff   time.Duration
	ConnPoolSize      int
	RetryStatusCodes  []int
	GzipDisabled      bool
	HedgeDelay        time.Duration // 0 disables hedging

	// Auth material: exactly one of these is used.
	APIKey string
	Token  string

	AppName string // caller-identification header value

	Logger log.Logger
}

func (c *Config) withDefaults() *Config {
	cp := *c
	if cp.MaxWorkers <= 0 {
		cp.MaxWorkers = 10
	}
	if cp.RequestTimeout <= 0 {
		cp.RequestTimeout = 30 * time.Second
	}
	if cp.RetryCount <= 0 {
		cp.RetryCount = 5
	}
	if cp.MaxRetryBackoff <= 0 {
		cp.MaxRetryBackoff = 30 * time.Second
	}
	if cp.ConnPoolSize <= 0 {
		cp.ConnPoolSize = cp.MaxWorkers * 2
	}
	if len(cp.RetryStatusCodes) == 0 {
		cp.RetryStatusCodes = []int{429, 500, 502, 503}
	}
	if cp.Logger == nil {
		cp.Logger = log.NewNopLogger()
	}
	return &cp
}

// Session is the shared, thread-safe HTTP collaborator. A single
// Session's underlying connection pool is reused by every concurrent
// worker issued by the datapoints core.
type Session struct {
	cfg      *Config
	client   *http.Client
	hedged   *hedgedhttp.Client
	retryLog *ratelog.Logger
}

func NewSession(cfg Config) *Session {
	c := cfg.withDefaults()

	transport := &http.Transport{
		MaxIdleConns:        c.ConnPoolSize,
		MaxIdleConnsPerHost: c.ConnPoolSize,
	}

	base := &http.Client{
		Timeout:   c.RequestTimeout,
		Transport: transport,
	}

	s := &Session{cfg: c, client: base, retryLog: ratelog.New(5, c.Logger)}

	if c.HedgeDelay > 0 {
		hedged, stats := hedgedhttp.NewClientAndStats(c.HedgeDelay, 2, base)
		s.hedged = hedged
		if ctr := newHedgeCounter(); ctr != nil {
			hedgedmetrics.Publish(stats, ctr, 10*time.Second)
		}
	}

	return s
}

var hedgeCounterOnce prometheus.Counter

func newHedgeCounter() prometheus.Counter {
	if hedgeCounterOnce != nil {
		return hedgeCounterOnce
	}
	hedgeCounterOnce = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "platformclient",
		Name:      "hedged_requests_total",
		Help:      "Extra round trips fired by the hedged HTTP client.",
	})
	return hedgeCounterOnce
}

func (s *Session) httpClient() *http.Client {
	if s.hedged != nil {
		return s.hedged.Client
	}
	return s.client
}

// Do issues a JSON POST to path (relative to BaseURL) with body
// marshaled via the shared wire codec, retrying on the configured
// status codes with exponential backoff, and decodes the response
// into out (which may be nil for calls issued only for side effects).
//
// retryable controls whether Do retries at all: idempotent reads
// default to true; writes default to false since retrying a write
// that partially succeeded server-side could double-apply it.
func (s *Session) Do(ctx context.Context, path string, body interface{}, out interface{}, retryable bool) error {
	payload, err := wire.Marshal(body)
	if err != nil {
		return platformerr.Wrap(platformerr.KindTransport, err, "marshal request body")
	}

	op := func() error {
		return s.doOnce(ctx, path, payload, out)
	}

	if !retryable {
		return op()
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = s.cfg.MaxRetryBackoff
	bo := backoff.WithMaxRetries(b, uint64(s.cfg.RetryCount))
	bo = backoff.WithContext(bo, ctx)

	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}
		if pe, ok := err.(*platformerr.Error); ok {
			isStatusErr := pe.Kind == platformerr.KindServerError || pe.Kind == platformerr.KindClientError
			if isStatusErr && isRetryableStatus(s.cfg.RetryStatusCodes, pe.StatusCode) {
				s.retryLog.Log("msg", "retrying request", "path", path, "status", pe.StatusCode)
				return err
			}
		}
		// Non-retryable error: stop immediately.
		return backoff.Permanent(err)
	}, bo)
}

func isRetryableStatus(codes []int, status int) bool {
	for _, c := range codes {
		if c == status {
			return true
		}
	}
	return false
}

func (s *Session) doOnce(ctx context.Context, path string, payload []byte, out interface{}) error {
	url := s.cfg.BaseURL + path

	var reqBody io.Reader = bytes.NewReader(payload)
	gzipped := false
	if !s.cfg.GzipDisabled && len(payload) > 1024 {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write(payload); err == nil && gw.Close() == nil {
			reqBody = &buf
			gzipped = true
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, reqBody)
	if err != nil {
		return platformerr.Wrap(platformerr.KindTransport, err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if s.cfg.AppName != "" {
		req.Header.Set("X-CDP-App", s.cfg.AppName)
	}
	if s.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.Token)
	} else if s.cfg.APIKey != "" {
		req.Header.Set("Api-Key", s.cfg.APIKey)
	}
	if gzipped {
		req.Header.Set("Content-Encoding", "gzip")
	}

	resp, err := s.httpClient().Do(req)
	if err != nil {
		if ctx.Err() != nil {
			if ctx.Err() == context.DeadlineExceeded {
				return platformerr.Timeout(err)
			}
			return platformerr.Cancelled()
		}
		return platformerr.Transport(err)
	}
	defer resp.Body.Close()

	requestID := resp.Header.Get("X-Request-Id")
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return platformerr.Wrap(platformerr.KindTransport, err, "read response body").WithRequestID(requestID)
	}

	if resp.StatusCode >= 400 {
		msg := parseErrorEnvelope(respBody)
		if resp.StatusCode >= 500 {
			return platformerr.ServerError(resp.StatusCode, requestID, msg)
		}
		return platformerr.ClientError(resp.StatusCode, requestID, msg)
	}

	if out != nil && len(respBody) > 0 {
		if err := wire.Unmarshal(respBody, out); err != nil {
			return platformerr.Wrap(platformerr.KindTransport, err, "decode response body").WithRequestID(requestID)
		}
	}

	return nil
}

type errorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func parseErrorEnvelope(body []byte) string {
	var env errorEnvelope
	if err := wire.Unmarshal(body, &env); err == nil && env.Error.Message != "" {
		return env.Error.Message
	}
	text := string(body)
	if len(text) > 500 {
		text = text[:500] + "..."
	}
	if text == "" {
		return "no error message in response body"
	}
	return text
}

// MaxWorkers exposes the configured worker count for components (the
// pool) built on top of the session.
func (s *Session) MaxWorkers() int { return s.cfg.MaxWorkers }

// Logger exposes the configured logger for components that want to
// log consistently with the session.
func (s *Session) Logger() log.Logger { return s.cfg.Logger }

// BaseURL exposes the configured base URL, primarily for tests that
// build request paths directly.
func (s *Session) BaseURL() string { return s.cfg.BaseURL }

// String implements fmt.Stringer for debug logging.
func (s *Session) String() string {
	return fmt.Sprintf("Session{project=%s base=%s workers=%d}", s.cfg.Project, s.cfg.BaseURL, s.cfg.MaxWorkers)
}
