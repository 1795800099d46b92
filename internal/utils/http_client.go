package utils

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while adding the redirect and retry policies QATrack+ servers need.
//
// Example usage:
//
//	client := utils.NewHTTPClient().
//	    DisableRedirects().
//	    RetryOnStatus(http.StatusTemporaryRedirect, 3, 500*time.Millisecond)
//	resp, err := client.R().Get("https://example.com/api/auth/")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates and returns a new HTTPClient instance
// with a default-configured underlying resty.Client.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and state.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{Client: resty.New()}
}

// DisableRedirects makes the client return 3xx responses to the caller
// instead of following them.
func (c *HTTPClient) DisableRedirects() *HTTPClient {
	c.SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}))
	return c
}

// RetryOnStatus retries a request answered with status up to count times,
// sleeping exactly wait between attempts. Once the retries are spent the
// last response is returned without an error.
func (c *HTTPClient) RetryOnStatus(status, count int, wait time.Duration) *HTTPClient {
	c.SetRetryCount(count).
		SetRetryWaitTime(wait).
		SetRetryMaxWaitTime(wait).
		SetRetryAfter(func(*resty.Client, *resty.Response) (time.Duration, error) {
			return wait, nil
		}).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return err == nil && resp != nil && resp.StatusCode() == status
		})
	return c
}
