package businesslogic

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
)

const (
	defaultTimeout       = 30 * time.Second
	maxResponseSizeBytes = 2 << 20
	authHeader           = "X-Auth-Token"
)

var ErrTimeout = errors.New("businesslogic request timed out")

// StatusError is returned when the service answers with a non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("businesslogic http status=%d body=%s", e.Code, e.Body)
}

type Config struct {
	URL     string        `envconfig:"URL" split_words:"true" default:"https://api.businesslogic.online/execute"`
	Token   string        `envconfig:"TOKEN" split_words:"true" required:"true"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
}

type Option func(*Client)

func WithHTTPClient(client *fasthttp.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// Client executes one BusinessLogic calculation per call. It never retries.
type Client struct {
	url        string
	token      string
	timeout    time.Duration
	httpClient *fasthttp.Client
}

func NewClient(cfg Config, opts ...Option) (*Client, error) {
	endpoint := strings.TrimSpace(cfg.URL)
	if endpoint == "" {
		return nil, errors.New("businesslogic url is required")
	}
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("invalid businesslogic url: %w", err)
	}

	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, errors.New("businesslogic token is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := &Client{
		url:     endpoint,
		token:   token,
		timeout: timeout,
		httpClient: &fasthttp.Client{
			Name:                "fire-pension-agent",
			MaxResponseBodySize: maxResponseSizeBytes,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

func MustNew(cfg Config, opts ...Option) *Client {
	client, err := NewClient(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return client
}

func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Execute posts payload as JSON and returns the raw 2xx response body.
// Errors are ErrTimeout (wrapped), *StatusError, or a transport error.
// A context deadline earlier than the configured timeout shortens the wait.
func (c *Client) Execute(ctx context.Context, payload any) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal businesslogic payload: %w", err)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set(authHeader, c.token)
	req.SetBodyRaw(body)

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, fmt.Errorf("execute businesslogic request: %w", err)
	}

	raw := append([]byte(nil), resp.Body()...)
	status := resp.StatusCode()
	if status < fasthttp.StatusOK || status >= fasthttp.StatusMultipleChoices {
		return nil, &StatusError{Code: status, Body: string(raw)}
	}
	return raw, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, fasthttp.ErrTimeout) || errors.Is(err, fasthttp.ErrDialTimeout) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
