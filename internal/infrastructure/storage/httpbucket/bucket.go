// Package httpbucket reads and writes bucket objects over HTTP, e.g. a static
// file server or an object store's HTTP endpoint fronting the scraper output.
package httpbucket

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/matchedge/internal/infrastructure/storage"
	"github.com/riskibarqy/matchedge/internal/platform/logging"
	"github.com/riskibarqy/matchedge/internal/platform/resilience"
	"github.com/riskibarqy/matchedge/internal/usecase"
	"github.com/valyala/fasthttp"
)

const maxBodySize = 256 << 20

var errTransient = crerr.New("remote bucket transient failure")

type Config struct {
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	// Dial overrides the connection dialer. Tests use an in-memory listener.
	Dial fasthttp.DialFunc
}

type Bucket struct {
	client         *fasthttp.Client
	baseURL        string
	token          string
	timeout        time.Duration
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight[[]byte]
	backoff        func(attempt int) time.Duration
}

var _ storage.Bucket = (*Bucket)(nil)

func New(cfg Config) (*Bucket, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, crerr.New("httpbucket: base url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, crerr.Wrapf(err, "httpbucket: invalid base url %q", baseURL)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	client := &fasthttp.Client{
		Name:                "matchedge",
		ReadTimeout:         timeout,
		WriteTimeout:        timeout,
		MaxResponseBodySize: maxBodySize,
		Dial:                cfg.Dial,
	}

	return &Bucket{
		client:         client,
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		timeout:        timeout,
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker("httpbucket", cfg.CircuitBreaker),
		circuitEnabled: cfg.CircuitBreaker.Enabled,
		backoff:        func(attempt int) time.Duration { return time.Duration(attempt+1) * time.Second },
	}, nil
}

// Get fetches an object. Concurrent reads of one key share a request.
func (b *Bucket) Get(ctx context.Context, key string) ([]byte, error) {
	out, _, err := b.flight.Do(ctx, key, func() ([]byte, error) {
		var body []byte
		err := b.guard(ctx, func() error {
			raw, err := b.execute(ctx, fasthttp.MethodGet, key, nil)
			body = raw
			return err
		})
		return body, err
	})
	return out, err
}

func (b *Bucket) Put(ctx context.Context, key string, data []byte) error {
	return b.guard(ctx, func() error {
		_, err := b.execute(ctx, fasthttp.MethodPut, key, data)
		return err
	})
}

func (b *Bucket) Exists(ctx context.Context, key string) (bool, error) {
	err := b.guard(ctx, func() error {
		_, err := b.execute(ctx, fasthttp.MethodHead, key, nil)
		return err
	})
	switch {
	case err == nil:
		return true, nil
	case storage.IsNotFound(err):
		return false, nil
	default:
		return false, err
	}
}

// guard runs fn behind the circuit breaker. Only transient failures count
// against the breaker.
func (b *Bucket) guard(ctx context.Context, fn func() error) error {
	if !b.circuitEnabled {
		return fn()
	}
	err := b.breaker.Execute(fn, func(err error) bool { return !crerr.Is(err, errTransient) })
	if crerr.Is(err, resilience.ErrCircuitOpen) {
		b.logger.WarnContext(ctx, "remote bucket circuit breaker rejected request", "state", b.breaker.State())
		return fmt.Errorf("%w: remote bucket is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	return err
}

func (b *Bucket) execute(ctx context.Context, method, key string, body []byte) ([]byte, error) {
	fullURL, err := b.objectURL(key)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt <= b.maxRetries; attempt++ {
		raw, status, err := b.do(ctx, method, fullURL, body)
		switch {
		case err != nil:
			lastErr = fmt.Errorf("%w: send request: %v", errTransient, err)
		case status == fasthttp.StatusNotFound:
			return nil, crerr.Wrapf(storage.ErrObjectNotFound, "key %s", key)
		case status >= 200 && status < 300:
			return raw, nil
		case isRetryableStatus(status):
			lastErr = fmt.Errorf("%w: status=%d body=%s", errTransient, status, abbreviateBody(raw))
		default:
			return nil, fmt.Errorf("remote bucket %s %s: status=%d body=%s", method, key, status, abbreviateBody(raw))
		}

		if attempt == b.maxRetries {
			break
		}
		timer := time.NewTimer(b.backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	b.logger.WarnContext(ctx, "remote bucket request failed", "method", method, "key", key, "error", lastErr)
	return nil, lastErr
}

func (b *Bucket) do(ctx context.Context, method, fullURL string, body []byte) ([]byte, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(method)
	if b.token != "" {
		req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+b.token)
	}
	if body != nil {
		req.Header.SetContentType("application/octet-stream")
		req.SetBody(body)
	}
	if method == fasthttp.MethodHead {
		resp.SkipBody = true
	}

	deadline := time.Now().Add(b.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := b.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, 0, err
	}
	// resp is released on return, so the body must be copied out.
	return append([]byte(nil), resp.Body()...), resp.StatusCode(), nil
}

func (b *Bucket) objectURL(key string) (string, error) {
	key = strings.Trim(strings.TrimSpace(key), "/")
	if key == "" {
		return "", crerr.New("httpbucket: empty object key")
	}
	parts := strings.Split(key, "/")
	for i, part := range parts {
		if part == ".." || part == "." {
			return "", crerr.Newf("httpbucket: invalid object key %q", key)
		}
		parts[i] = url.PathEscape(part)
	}
	return b.baseURL + "/" + strings.Join(parts, "/"), nil
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= 500
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	s := strings.TrimSpace(string(raw))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
