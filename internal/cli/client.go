package cli

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tilery/tilery/pkg/errors"
	"github.com/tilery/tilery/pkg/httputil"
	"github.com/tilery/tilery/pkg/observability"
)

// shareClient talks to a share server. Transient failures (network errors,
// 5xx responses) are retried with backoff; 4xx responses are not.
type shareClient struct {
	baseURL    string
	http       *http.Client
	retries    int
	retryDelay time.Duration
}

func newShareClient(baseURL string) (*shareClient, error) {
	if err := errors.ValidateBaseURL(baseURL); err != nil {
		return nil, err
	}
	return &shareClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		http:       &http.Client{Timeout: 15 * time.Second},
		retries:    3,
		retryDelay: time.Second,
	}, nil
}

// createResult mirrors the server's create response.
type createResult struct {
	Code string `json:"code"`
	URL  string `json:"url"`
}

// Create uploads an encoded board and returns its code and URL.
func (c *shareClient) Create(ctx context.Context, payload string) (createResult, error) {
	var result createResult
	err := httputil.Retry(ctx, c.retries, c.retryDelay, func() error {
		body, status, err := c.do(ctx, http.MethodPost, "/api/boards", strings.NewReader(payload))
		if err != nil {
			return &httputil.RetryableError{Err: err}
		}
		if status != http.StatusCreated {
			return statusError(status, body)
		}
		if err := json.Unmarshal(body, &result); err != nil {
			return errors.Wrap(errors.ErrCodeNetwork, err, "decoding share response")
		}
		return nil
	})
	return result, err
}

// Fetch downloads the board stored under code.
func (c *shareClient) Fetch(ctx context.Context, code string) (string, error) {
	if err := errors.ValidateBoardCode(code); err != nil {
		return "", err
	}

	var payload string
	err := httputil.Retry(ctx, c.retries, c.retryDelay, func() error {
		body, status, err := c.do(ctx, http.MethodGet, "/api/boards/"+code, nil)
		if err != nil {
			return &httputil.RetryableError{Err: err}
		}
		if status == http.StatusNotFound {
			return errors.New(errors.ErrCodeBoardNotFound, "no board with code %q", code)
		}
		if status != http.StatusOK {
			return statusError(status, body)
		}
		payload = strings.TrimSpace(string(body))
		return nil
	})
	return payload, err
}

// do performs one request and reads the body, emitting HTTP hooks.
func (c *shareClient) do(ctx context.Context, method, path string, body io.Reader) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, 0, err
	}

	host := req.URL.Host
	observability.HTTP().OnRequest(ctx, method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, method, host, path, err)
		return nil, 0, err
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, method, host, path, resp.StatusCode, time.Since(start))

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return data, resp.StatusCode, nil
}

// statusError maps a non-success HTTP status onto a structured error.
// Server-side failures are retryable; client errors are final.
func statusError(status int, body []byte) error {
	msg := serverMessage(body)
	if status >= 500 {
		return &httputil.RetryableError{
			Err: errors.New(errors.ErrCodeNetwork, "share server error (%d): %s", status, msg),
		}
	}
	return errors.New(errors.ErrCodeInvalidInput, "share server rejected the request (%d): %s", status, msg)
}

// serverMessage extracts the message from the server's JSON error envelope,
// falling back to the raw body.
func serverMessage(body []byte) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	return strings.TrimSpace(string(body))
}

// parseShareRef accepts either a bare board code or a full share URL and
// returns the code.
func parseShareRef(ref string) (string, error) {
	if !strings.Contains(ref, "/") {
		return ref, nil
	}
	u, err := url.Parse(ref)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "parsing share URL %q", ref)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	code := parts[len(parts)-1]
	if code == "" {
		return "", errors.New(errors.ErrCodeInvalidInput, "share URL %q has no board code", ref)
	}
	return code, nil
}
