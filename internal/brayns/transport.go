package brayns

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"

	"github.com/google/uuid"
)

// StatusError reports a reply outside the 2xx range.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// ErrUnreachable is returned instead of the logged connection failure for
// calls made with a context from ReportConnectionFailures.
var ErrUnreachable = errors.New("render server unreachable")

type reportFailuresKey struct{}

// ReportConnectionFailures returns a context under which calls that cannot
// reach the server return ErrUnreachable rather than an empty result.
func ReportConnectionFailures(ctx context.Context) context.Context {
	return context.WithValue(ctx, reportFailuresKey{}, true)
}

// isConnectionFailure reports whether err means the server could not be
// reached at all.
func isConnectionFailure(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}

// request issues one PUT or GET. A PUT carries body when it is non-empty.
// The reply body is returned for GET and discarded for PUT.
//
// When the server cannot be reached the failure is logged and request
// returns (nil, nil): GET callers see an empty result and PUT callers
// complete normally. See ReportConnectionFailures for the alternative.
func (c *Client) request(ctx context.Context, method, url string, body []byte) ([]byte, error) {
	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, url, err)
	}
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.signer != nil {
		token, err := c.signer.token()
		if err != nil {
			return nil, fmt.Errorf("sign request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isConnectionFailure(err) {
			c.logf("[Brayns] ERROR: Failed to connect to Brayns at %s, did you start it with the "+
				"--zeroeq-http-server command line option? (%v)", c.url, err)
			if report, _ := ctx.Value(reportFailuresKey{}).(bool); report {
				return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
			}
			return nil, nil
		}
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s reply: %w", method, url, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Method: method, URL: url, StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(data))}
	}
	if method != http.MethodGet {
		return nil, nil
	}
	return data, nil
}

func (c *Client) put(ctx context.Context, url string, body []byte) error {
	_, err := c.request(ctx, http.MethodPut, url, body)
	return err
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	return c.request(ctx, http.MethodGet, url, nil)
}
