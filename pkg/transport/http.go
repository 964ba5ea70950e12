package transport

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/basebase-ai/basebase-go/pkg/errs"
)

// Config configures the HTTP transport.
type Config struct {
	// Timeout is the default per-request timeout. Zero disables it.
	Timeout time.Duration

	// InsecureSkipVerify disables TLS certificate verification. Only for
	// development against self-signed certificates.
	InsecureSkipVerify bool

	// MaxRetries is the number of retries for connection errors and 5xx
	// responses. The default of zero surfaces every failure immediately.
	MaxRetries int

	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	UserAgent string
}

// HTTP is a Doer backed by a pooled HTTP client.
type HTTP struct {
	config Config
	client *retryablehttp.Client
	logger hclog.Logger
}

var _ Doer = (*HTTP)(nil)

// NewHTTP creates an HTTP transport. A nil logger discards output.
func NewHTTP(cfg Config, logger hclog.Logger) *HTTP {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	httpClient := cleanhttp.DefaultPooledClient()
	if cfg.InsecureSkipVerify {
		if t, ok := httpClient.Transport.(*http.Transport); ok {
			t.TLSClientConfig = &tls.Config{
				InsecureSkipVerify: true,
			}
		}
	}

	client := retryablehttp.NewClient()
	client.HTTPClient = httpClient
	client.Logger = logger
	client.RetryMax = cfg.MaxRetries
	if cfg.RetryWaitMin > 0 {
		client.RetryWaitMin = cfg.RetryWaitMin
	}
	if cfg.RetryWaitMax > 0 {
		client.RetryWaitMax = cfg.RetryWaitMax
	}
	// Hand the final response back so status codes can be mapped.
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &HTTP{
		config: cfg,
		client: client,
		logger: logger,
	}
}

// Do implements Doer.
func (h *HTTP) Do(ctx context.Context, r *Request, out any) error {
	const op = "transport.Do"

	method := r.Method
	if method == "" {
		method = MethodGet
	}
	if !validMethod(method) {
		return errs.InvalidArgument(op, "unsupported method %q", method)
	}

	timeout := r.Timeout
	if timeout == 0 {
		timeout = h.config.Timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	body, err := encodeBody(method, r.Body)
	if err != nil {
		return errs.InvalidArgument(op, "failed to marshal request body: %v", err)
	}

	var rawBody any
	if body != nil {
		rawBody = body
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, r.URL, rawBody)
	if err != nil {
		return errs.InvalidArgument(op, "failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if h.config.UserAgent != "" {
		req.Header.Set("User-Agent", h.config.UserAgent)
	}
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}

	h.logger.Debug("sending request", "method", method, "url", r.URL)

	resp, err := h.client.Do(req)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return requestError(ctx, op, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return requestError(ctx, op, err)
	}

	h.logger.Debug("received response", "method", method, "url", r.URL, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return StatusError(op, resp.StatusCode, respBody)
	}

	if out == nil || len(respBody) == 0 || !isJSON(resp.Header.Get("Content-Type")) {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return errs.Internal(op, "failed to decode response: %v", err)
	}
	return nil
}

func encodeBody(method string, body any) ([]byte, error) {
	if body == nil || method == MethodGet {
		return nil, nil
	}
	switch b := body.(type) {
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	default:
		return json.Marshal(body)
	}
}

func requestError(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded), errors.Is(err, context.DeadlineExceeded):
		return errs.New(errs.ErrUnavailable, op, "request timeout")
	case errors.Is(ctx.Err(), context.Canceled):
		return errs.New(errs.ErrNetworkError, op, "request canceled")
	default:
		return errs.New(errs.ErrNetworkError, op, "network error: %v", err)
	}
}

func isJSON(contentType string) bool {
	return strings.Contains(contentType, "application/json")
}
