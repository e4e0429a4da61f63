package modrinth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"time"

	modrinthApi "codeberg.org/jmansfield/go-modrinth/modrinth"
	"github.com/charmbracelet/log"
	"github.com/horizr/horizr/core"
	"golang.org/x/time/rate"
)

// ErrNotFound is returned by the transport for 404 responses. Registry methods turn it into nil results.
var ErrNotFound = errors.New("not found on Modrinth")

// StatusError is an unexpected response of the Modrinth API. It aborts the whole command.
type StatusError struct {
	Status int
	URL    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("a request to the Modrinth API failed with status code %d (%s)", e.Status, e.URL)
}

func (e *StatusError) Fatal() bool {
	return true
}

// Statuses worth another attempt
var retriedStatuses = []int{
	http.StatusRequestTimeout,
	http.StatusInternalServerError,
	http.StatusBadGateway,
	http.StatusServiceUnavailable,
	http.StatusGatewayTimeout,
	521, 522, 524, // Cloudflare
}

const (
	maxAttempts = 3
	// Modrinth allows 300 requests per minute
	defaultRequestRate  = rate.Limit(5)
	defaultRequestBurst = 10
	defaultBackoff      = 500 * time.Millisecond
)

// Client is shared by every request made to Modrinth. It throttles requests and retries failed ones.
type Client struct {
	// Base is the transport doing the requests, http.DefaultTransport if nil
	Base    http.RoundTripper
	Limiter *rate.Limiter
	// Backoff is the wait before the second attempt, doubled for every further one
	Backoff time.Duration
	// Sleep waits for d or until ctx is done
	Sleep func(ctx context.Context, d time.Duration) error
}

func NewClient() *Client {
	return &Client{
		Limiter: rate.NewLimiter(defaultRequestRate, defaultRequestBurst),
		Backoff: defaultBackoff,
		Sleep:   sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// call is the transport of a single registry operation. go-modrinth does not take a context and
// does not keep error types intact, so the outcome is recorded here.
type call struct {
	client *Client
	ctx    context.Context

	notFound bool
	failure  error
}

func (c *Client) newCall(ctx context.Context) (*call, *modrinthApi.Client) {
	tr := &call{client: c, ctx: ctx}
	api := modrinthApi.NewClient(&http.Client{Transport: tr})
	api.UserAgent = core.UserAgent
	return tr, api
}

func (c *call) base() http.RoundTripper {
	if c.client.Base != nil {
		return c.client.Base
	}
	return http.DefaultTransport
}

func (c *call) sleep(d time.Duration) error {
	if c.client.Sleep != nil {
		return c.client.Sleep(c.ctx, d)
	}
	return sleepContext(c.ctx, d)
}

func (c *call) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(c.ctx)
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", core.UserAgent)
	}

	attempt := 1
	for {
		if c.client.Limiter != nil {
			if err := c.client.Limiter.Wait(c.ctx); err != nil {
				return nil, c.fail(err)
			}
		}
		if attempt > 1 && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, c.fail(err)
			}
			req.Body = body
		}

		res, err := c.base().RoundTrip(req)
		if err != nil {
			if ctxErr := c.ctx.Err(); ctxErr != nil {
				return nil, c.fail(ctxErr)
			}
			if attempt >= maxAttempts {
				return nil, err
			}
			log.Warn("Request to Modrinth failed, retrying", "url", req.URL.String(), "attempt", attempt, "err", err)
			if err := c.sleep(c.backoff(attempt)); err != nil {
				return nil, c.fail(err)
			}
			attempt++
			continue
		}

		switch {
		case res.StatusCode >= 200 && res.StatusCode <= 299:
			return res, nil
		case res.StatusCode == http.StatusNotFound:
			_ = res.Body.Close()
			c.notFound = true
			return nil, ErrNotFound
		case res.StatusCode == http.StatusTooManyRequests:
			_ = res.Body.Close()
			wait := rateLimitReset(res)
			log.Warn("Rate limit exceeded, waiting", "seconds", wait.Seconds())
			if err := c.sleep(wait); err != nil {
				return nil, c.fail(err)
			}
			// does not count as an attempt
			continue
		case slices.Contains(retriedStatuses, res.StatusCode) && attempt < maxAttempts:
			_ = res.Body.Close()
			log.Warn("Request to Modrinth failed, retrying", "url", req.URL.String(), "status", res.StatusCode, "attempt", attempt)
			if err := c.sleep(c.backoff(attempt)); err != nil {
				return nil, c.fail(err)
			}
			attempt++
		default:
			_ = res.Body.Close()
			return nil, c.fail(&StatusError{Status: res.StatusCode, URL: req.URL.String()})
		}
	}
}

func (c *call) fail(err error) error {
	c.failure = err
	return err
}

func (c *call) backoff(attempt int) time.Duration {
	return c.client.Backoff << (attempt - 1)
}

// rateLimitReset returns the wait announced by the x-ratelimit-reset header, one second if it is missing
func rateLimitReset(res *http.Response) time.Duration {
	seconds, err := strconv.Atoi(res.Header.Get("x-ratelimit-reset"))
	if err != nil || seconds < 0 {
		return time.Second
	}
	return time.Duration(seconds) * time.Second
}

// result turns the error returned by go-modrinth into the error of the registry operation.
// A 404 results in nil. The caller checks notFound afterwards.
func (c *call) result(err error) error {
	if err == nil || c.notFound {
		return nil
	}
	if c.failure != nil {
		return c.failure
	}
	return err
}
