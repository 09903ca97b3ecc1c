// Package api is the typed REST client for the scholarship backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"scholarhub-client/internal/common/errors"
	"scholarhub-client/internal/common/httpx"
	"scholarhub-client/internal/common/logger"
)

// Client talks to the backend REST contract. Authenticated calls carry
// Authorization: Bearer <accessToken>; a 401 surfaces as an auth error,
// which is the session manager's sole forced-logout trigger.
type Client struct {
	baseURL    string
	httpClient *httpx.Client
	logger     logger.Logger
}

func NewClient(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpx.NewClient(timeout),
		logger:     log.WithFields(map[string]interface{}{"component": "api"}),
	}
}

// doJSON performs one request. accessToken may be empty for the unauthenticated
// auth endpoints. out may be nil when the response body is irrelevant.
func (c *Client) doJSON(ctx context.Context, operation, method, path, accessToken string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.NewValidationError("failed to encode request body", err.Error())
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return errors.NewTransportError("failed to build request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(ctx, operation, req)
	if err != nil {
		c.logger.Warn("request failed", map[string]interface{}{
			"operation": operation,
			"error":     err.Error(),
		})
		return errors.NewTransportError(fmt.Sprintf("%s: request failed", operation), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewTransportError(fmt.Sprintf("%s: read response", operation), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := errors.FromResponse(resp.StatusCode, respBody)
		c.logger.Debug("backend rejected request", map[string]interface{}{
			"operation": operation,
			"status":    resp.StatusCode,
			"code":      apiErr.Code,
		})
		return apiErr
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return errors.NewTransportError(fmt.Sprintf("%s: decode response", operation), err)
		}
	}
	return nil
}
