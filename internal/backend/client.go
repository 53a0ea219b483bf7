package backend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

const (
	defaultBaseDelay = 500 * time.Millisecond

	// 3 attempts total: the first try plus two retries at 1x and 2x the
	// base delay.
	maxRetries = 2
)

// Client talks to the hosted backend. It is constructed once in main and
// injected everywhere it is needed; nothing in this package is global.
type Client struct {
	http      *resty.Client
	session   Authenticator
	logger    *zap.Logger
	baseDelay time.Duration
}

type Option func(*Client)

// WithBaseDelay overrides the retry backoff base unit.
func WithBaseDelay(d time.Duration) Option {
	return func(c *Client) { c.baseDelay = d }
}

func NewClient(baseURL, identity, password string, logger *zap.Logger, opts ...Option) *Client {
	httpClient := resty.New().SetBaseURL(baseURL)

	c := &Client{
		http:      httpClient,
		session:   NewSession(httpClient, identity, password, logger),
		logger:    logger,
		baseDelay: defaultBaseDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session exposes the authenticator, mostly for main to warm it up at boot.
func (c *Client) Session() Authenticator {
	return c.session
}

// linearBackoff waits attempt*base between tries.
func linearBackoff(base time.Duration) retry.Backoff {
	attempt := 0
	return retry.BackoffFunc(func() (time.Duration, bool) {
		attempt++
		return time.Duration(attempt) * base, false
	})
}

// do runs a read operation under the retry policy: transient failures are
// retried with linear backoff, an expired session is cleared so the next
// attempt re-authenticates, and exhaustion escalates to ErrDataUnavailable.
func (c *Client) do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(maxRetries, linearBackoff(c.baseDelay))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := c.session.EnsureValid(ctx); err != nil {
			if errors.Is(err, ErrTransient) {
				return retry.RetryableError(err)
			}
			return err
		}

		err := fn(ctx)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, ErrAuthExpired):
			c.session.Clear()
			c.logger.Warn("Session expired mid-operation, re-authenticating",
				zap.String("op", op))
			return retry.RetryableError(err)
		case errors.Is(err, ErrTransient):
			c.logger.Warn("Transient backend failure, will retry",
				zap.String("op", op), zap.Error(err))
			return retry.RetryableError(err)
		default:
			return err
		}
	})

	if err != nil && (errors.Is(err, ErrTransient) || errors.Is(err, ErrAuthExpired)) {
		return fmt.Errorf("%s: %w: %w", op, ErrDataUnavailable, err)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// doOnce runs a mutation without the transient retry loop: a blindly
// retried status transition could steal a claim from a legitimate holder.
// An expired session still gets one re-authenticated retry, since an auth
// failure means the mutation never applied.
func (c *Client) doOnce(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	if err := c.session.EnsureValid(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err := fn(ctx)
	if errors.Is(err, ErrAuthExpired) {
		c.session.Clear()
		if err = c.session.EnsureValid(ctx); err == nil {
			err = fn(ctx)
		}
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// request returns a request carrying the context and the session token.
func (c *Client) request(ctx context.Context) *resty.Request {
	return c.http.R().
		SetContext(ctx).
		SetAuthToken(c.session.Token())
}

// check folds a resty result into the error taxonomy.
func check(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}
	if resp.IsError() {
		return statusError(resp.StatusCode(), resp.String())
	}
	return nil
}
