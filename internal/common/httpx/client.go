// Package httpx wraps net/http with request tagging and metrics for backend calls.
package httpx

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"scholarhub-client/internal/common/metrics"
)

// Client instruments outgoing backend requests. Every request carries a
// generated X-Request-ID so failures can be correlated with backend logs.
type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Do executes a request tagged with the given operation name.
func (c *Client) Do(ctx context.Context, operation string, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)
	req.Header.Set("X-Request-ID", uuid.NewString())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.APIRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())

	status := "error"
	if err == nil {
		status = strconv.Itoa(resp.StatusCode)
	}
	metrics.APIRequestsTotal.WithLabelValues(operation, status).Inc()

	return resp, err
}
