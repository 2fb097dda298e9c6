package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "hostdeck/pkg/errors"
)

// Client talks to the management backend over HTTP. It implements both
// ports.AuthBackend and ports.APIBackend.
//
// Failures are classified, never retried: a response with an error status
// becomes an AppError carrying that status and any server-supplied message;
// a request that got no response at all becomes a network AppError with
// HTTPStatus 0.
type Client struct {
	baseURL    string
	pathPrefix string
	httpClient *http.Client
	tokenFunc  func() string
	logger     *zap.Logger
}

// NewClient builds a client for baseURL. tokenFunc supplies the bearer
// token per request and may return "" when no session is held.
func NewClient(baseURL, pathPrefix string, timeout time.Duration, tokenFunc func() string, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if tokenFunc == nil {
		tokenFunc = func() string { return "" }
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		pathPrefix: pathPrefix,
		httpClient: &http.Client{Timeout: timeout},
		tokenFunc:  tokenFunc,
		logger:     logger,
	}
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do issues one request and decodes a 2xx JSON body into out (skipped when
// out is nil or the body is empty).
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return apperrors.WrapError(err, apperrors.ErrCodeInvalidInput, "encoding request body", 0)
		}
		reqBody = bytes.NewReader(raw)
	}

	u := c.baseURL + c.pathPrefix + path
	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return apperrors.WrapError(err, apperrors.ErrCodeInvalidInput, "building request", 0)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.tokenFunc(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed before a response arrived",
			zap.String("method", method), zap.String("url", u), zap.Error(err))
		return apperrors.NewNetworkError(fmt.Sprintf("no response from %s", c.baseURL), unwrapURLError(err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.NewNetworkError("reading response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.statusError(resp.StatusCode, raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apperrors.WrapError(err, apperrors.ErrCodeInternal, "invalid JSON response", resp.StatusCode)
	}
	return nil
}

// statusError maps an error response onto the AppError taxonomy, preferring
// the server's message field when the body carries one.
func (c *Client) statusError(status int, body []byte) *apperrors.AppError {
	message := serverMessage(body)
	if message == "" {
		message = http.StatusText(status)
	}

	var code apperrors.ErrorCode
	switch {
	case status == http.StatusUnauthorized:
		code = apperrors.ErrCodeUnauthorized
	case status == http.StatusForbidden:
		code = apperrors.ErrCodeForbidden
	case status == http.StatusNotFound:
		code = apperrors.ErrCodeNotFound
	case status == http.StatusConflict:
		code = apperrors.ErrCodeConflict
	case status == http.StatusTooManyRequests:
		code = apperrors.ErrCodeRateLimit
	case status == http.StatusBadRequest:
		code = apperrors.ErrCodeInvalidInput
	case status >= 500:
		code = apperrors.ErrCodeInternal
	default:
		code = apperrors.ErrCodeInternal
	}
	return apperrors.NewAppError(code, message, status)
}

func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	text := strings.TrimSpace(string(body))
	if text != "" && !strings.HasPrefix(text, "{") && len(text) < 200 {
		return text
	}
	return ""
}

func unwrapURLError(err error) error {
	if uerr, ok := err.(*url.Error); ok {
		return uerr.Err
	}
	return err
}
