package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/chatwidget/internal/errors"
	"github.com/diogo/chatwidget/internal/models"
)

// Send posts one user message to the chat endpoint and returns the reply text.
// It performs exactly one exchange; there is no retry.
func (c *Client) Send(ctx context.Context, requestID, message string) (*models.Reply, error) {
	if c.IsClosed() {
		return nil, fmt.Errorf("client is closed")
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apierrors.ErrEmptyMessage
	}

	payload, err := json.Marshal(models.ChatRequest{Message: message})
	if err != nil {
		return nil, fmt.Errorf("failed to build payload: %w", err)
	}

	endpoint := c.url(models.PathChat)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.setHeaders(req)
	if requestID != "" {
		req.Header.Set(models.HeaderRequestID, requestID)
	}

	log := c.logger.With().Str("request_id", requestID).Str("endpoint", endpoint).Logger()
	log.Debug().Int("bytes", len(payload)).Msg("sending chat request")
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError("send message", endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, apierrors.NewNetworkError("read response", endpoint, err)
	}

	log.Debug().
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("elapsed", time.Since(start)).
		Msg("chat response received")

	ok := resp.StatusCode >= 200 && resp.StatusCode <= 299
	if !ok && !gjson.ValidBytes(body) {
		return nil, newStatusError(resp.StatusCode, endpoint, "chat request failed", body)
	}

	// A JSON body is read the same way whatever the status
	text, err := parseReply(body, endpoint)
	if err != nil {
		if ok {
			return nil, err
		}
		var mismatch *apierrors.ProtocolMismatchError
		if errors.As(err, &mismatch) {
			mismatch.StatusCode = resp.StatusCode
			mismatch.Detail = gjson.GetBytes(body, PathDetail).String()
			return nil, mismatch
		}
		return nil, newStatusError(resp.StatusCode, endpoint, "chat request failed", body)
	}

	if !ok {
		log.Warn().Int("status", resp.StatusCode).Msg("reply text carried by a non-2xx status")
	}
	return &models.Reply{RequestID: requestID, Text: text, Status: resp.StatusCode}, nil
}

// parseReply extracts the assistant text from a chat reply body.
//
// A body that is not JSON, or whose response field is a non-string truthy
// value, cannot be displayed and is reported as a ParseError. A missing,
// null, false, zero or empty field is a protocol mismatch.
func parseReply(body []byte, endpoint string) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", apierrors.NewParseError("response body is not valid JSON", endpoint)
	}

	result := gjson.GetBytes(body, PathResponse)
	if !result.Exists() {
		return "", apierrors.NewProtocolMismatchError(endpoint, PathResponse)
	}

	switch result.Type {
	case gjson.String:
		if result.Str == "" {
			return "", apierrors.NewProtocolMismatchError(endpoint, PathResponse)
		}
		return result.Str, nil
	case gjson.Null, gjson.False:
		return "", apierrors.NewProtocolMismatchError(endpoint, PathResponse)
	case gjson.Number:
		if result.Num == 0 {
			return "", apierrors.NewProtocolMismatchError(endpoint, PathResponse)
		}
	}

	return "", apierrors.NewParseError(fmt.Sprintf("response field is %s, not a string", result.Type), endpoint)
}

// setHeaders applies the default JSON headers and user agent
func (c *Client) setHeaders(req *http.Request) {
	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
}

// newStatusError builds an APIError for a non-2xx reply, keeping the start of
// the body and any FastAPI-style detail message.
func newStatusError(status int, endpoint, message string, body []byte) *apierrors.APIError {
	if detail := gjson.GetBytes(body, PathDetail); detail.Exists() && gjson.ValidBytes(body) {
		message = fmt.Sprintf("%s: %s", message, detail.String())
	}

	if len(body) > maxErrorBodyBytes {
		body = body[:maxErrorBodyBytes]
	}
	return apierrors.NewAPIErrorWithBody(status, endpoint, message, string(body))
}

// classifyTransportError maps a failed Do call to a typed error
func classifyTransportError(operation, endpoint string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout exceeded") {
		return apierrors.NewTimeoutError(fmt.Sprintf("%s at %s: %v", operation, endpoint, err))
	}
	return apierrors.NewNetworkError(operation, endpoint, err)
}
