// Package api implements the typed HTTP client for the judge backend. Every
// response is wrapped in the backend's envelope; a code of 0 or 200 signals
// success and anything else surfaces the envelope's msg verbatim.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/agiantii/bcoj/internal/auth"
	"github.com/agiantii/bcoj/internal/configuration"
	"github.com/agiantii/bcoj/internal/debug"
)

// ErrUnauthorized is returned on an HTTP 401. The stored credentials have
// been cleared by the time the caller sees it.
var ErrUnauthorized = errors.New("unauthorized")

// BusinessError carries a non-success envelope code and its message.
type BusinessError struct {
	Code int
	Msg  string
}

// Error implements the error interface.
func (e *BusinessError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "request failed"
}

// Client for the judge backend.
type Client struct {
	baseURL     string
	credentials *auth.Store
	// Plain request/response calls carry the configured timeout. Streams run
	// until the server closes them or the caller cancels.
	httpClient   *http.Client
	streamClient *http.Client
}

// NewClient instantiates a client from configuration and a credential store.
func NewClient(config *configuration.Config, credentials *auth.Store) *Client {
	return &Client{
		baseURL:      strings.TrimSuffix(config.APIHost, "/"),
		credentials:  credentials,
		httpClient:   &http.Client{Timeout: time.Duration(config.RequestTimeout) * time.Second},
		streamClient: &http.Client{},
	}
}

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Code int                        `json:"code"`
	Msg  string                     `json:"msg"`
	Data json.RawMessage            `json:"data"`
	Map  map[string]json.RawMessage `json:"map"`
}

func (e *envelope) ok() bool {
	return e.Code == 0 || e.Code == 200
}

// decodeData unmarshals an envelope field, preserving 64-bit ids. The backend
// uses snowflake ids that do not survive a float64 round-trip.
func decodeData(raw json.RawMessage, out any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	return decoder.Decode(out)
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	response, err := c.do(ctx, http.MethodGet, path, params, nil, "")
	if err != nil {
		return err
	}
	return decodeData(response.Data, out)
}

func (c *Client) postJSON(ctx context.Context, path string, params url.Values, payload, out any) error {
	bytes, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "marshaling payload")
	}
	response, err := c.do(ctx, http.MethodPost, path, params, strings.NewReader(string(bytes)), "application/json")
	if err != nil {
		return err
	}
	return decodeData(response.Data, out)
}

func (c *Client) putJSON(ctx context.Context, path string, payload, out any) error {
	bytes, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "marshaling payload")
	}
	response, err := c.do(ctx, http.MethodPut, path, nil, strings.NewReader(string(bytes)), "application/json")
	if err != nil {
		return err
	}
	return decodeData(response.Data, out)
}

func (c *Client) postMultipart(ctx context.Context, path string, params url.Values, filename string, content io.Reader, out any) error {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return errors.Wrap(err, "creating form file")
	}
	if _, err := io.Copy(part, content); err != nil {
		return errors.Wrap(err, "copying file content")
	}
	if err := writer.Close(); err != nil {
		return errors.Wrap(err, "closing multipart writer")
	}
	response, err := c.do(ctx, http.MethodPost, path, params, body, writer.FormDataContentType())
	if err != nil {
		return err
	}
	return decodeData(response.Data, out)
}

// do executes one request against the backend. The bearer token is re-read
// from the credential store on every call.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body io.Reader, contentType string) (*envelope, error) {
	request, err := http.NewRequestWithContext(ctx, method, c.buildURL(path, params), body)
	if err != nil {
		return nil, errors.Wrap(err, "creating request")
	}
	if token := c.credentials.Token(); token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		request.Header.Set("Content-Type", contentType)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, errors.Wrap(err, "executing request")
	}
	defer response.Body.Close()
	debug.GetLogger().Debug("request", "method", method, "path", path, "status", response.StatusCode)

	if response.StatusCode == http.StatusUnauthorized {
		// The token is stale. Drop it so the next operation prompts a login.
		c.credentials.Clear()
		return nil, ErrUnauthorized
	}

	bytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading response body")
	}
	if response.StatusCode >= 300 {
		return nil, errors.Errorf("unexpected status %d: %s", response.StatusCode, string(bytes))
	}

	result := &envelope{}
	if err := json.Unmarshal(bytes, result); err != nil {
		return nil, errors.Wrap(err, "unmarshaling envelope")
	}
	if !result.ok() {
		return nil, &BusinessError{Code: result.Code, Msg: result.Msg}
	}
	return result, nil
}

func (c *Client) buildURL(path string, params url.Values) string {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	return target
}
