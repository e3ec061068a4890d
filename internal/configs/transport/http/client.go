package http

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// Opt configures a *resty.Client and may return an error.
type Opt func(*resty.Client) error

// New creates a resty client with the given base URL and options.
//
// The client carries no retry policy: a failed collection cycle waits for the
// scheduler's next tick instead of retrying inside the cycle.
func New(baseURL string, opts ...Opt) (*resty.Client, error) {
	client := resty.New().SetBaseURL(baseURL)

	for _, opt := range opts {
		if err := opt(client); err != nil {
			return nil, err
		}
	}

	return client, nil
}

// WithTimeout applies the first positive duration as a hard request timeout.
func WithTimeout(timeouts ...time.Duration) Opt {
	return func(c *resty.Client) error {
		for _, timeout := range timeouts {
			if timeout > 0 {
				c.SetTimeout(timeout)
				break
			}
		}
		return nil
	}
}

// WithHeader sets a default header on every request.
func WithHeader(key, value string) Opt {
	return func(c *resty.Client) error {
		c.SetHeader(key, value)
		return nil
	}
}
