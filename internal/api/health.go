package api

import (
	"context"
	"fmt"
	"io"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/chatwidget/internal/errors"
	"github.com/diogo/chatwidget/internal/models"
)

// Health checks that the backend is reachable and reports status "ok"
func (c *Client) Health(ctx context.Context) error {
	if c.IsClosed() {
		return fmt.Errorf("client is closed")
	}

	endpoint := c.url(models.PathHealth)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Del("Content-Type")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError("health check", endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil {
		return apierrors.NewNetworkError("read health response", endpoint, err)
	}

	if resp.StatusCode != http.StatusOK {
		return newStatusError(resp.StatusCode, endpoint, "health check failed", body)
	}

	if !gjson.ValidBytes(body) {
		return apierrors.NewParseError("health body is not valid JSON", endpoint)
	}

	status := gjson.GetBytes(body, PathStatus)
	if !status.Exists() {
		return apierrors.NewProtocolMismatchError(endpoint, PathStatus)
	}
	if status.String() != models.HealthStatusOK {
		return apierrors.NewAPIErrorWithBody(resp.StatusCode, endpoint, fmt.Sprintf("backend reports status %q", status.String()), string(body))
	}

	c.logger.Debug().Str("endpoint", endpoint).Msg("backend healthy")
	return nil
}
