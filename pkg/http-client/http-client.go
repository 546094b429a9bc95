package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const (
	API_KEY_QUERY_PARAM = "api_key"
)

type ClientConfig struct {
	RootURL     string
	APIKey      string
	BearerToken string
	Timeout     time.Duration

	// HTTPClient overrides the client built from Timeout when set.
	HTTPClient *http.Client
}

// Response is the raw outcome of a call; the body is left undecoded.
type Response struct {
	StatusCode int
	Body       []byte
}

// RunHTTPcall posts payload as JSON to RootURL + pathname. The API key is
// sent as query parameter, the token as bearer authorization.
func (cConfig ClientConfig) RunHTTPcall(ctx context.Context, pathname string, payload interface{}) (*Response, error) {
	json_data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	client := cConfig.HTTPClient
	if client == nil {
		client = &http.Client{
			Timeout: cConfig.Timeout,
		}
	}

	reqURL, err := url.Parse(cConfig.RootURL + pathname)
	if err != nil {
		slog.Error("invalid request url", slog.String("error", err.Error()))
		return nil, err
	}
	if cConfig.APIKey != "" {
		q := reqURL.Query()
		q.Set(API_KEY_QUERY_PARAM, cConfig.APIKey)
		reqURL.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), bytes.NewBuffer(json_data))
	if err != nil {
		slog.Error("unexpected error in preparing http request", slog.String("error", err.Error()))
		return nil, err
	}
	if cConfig.BearerToken != "" {
		req.Header.Set("Authorization", "bearer "+cConfig.BearerToken)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		slog.Error("unexpected error in http call", slog.String("pathname", pathname), slog.String("error", err.Error()))
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Error("Error reading response", slog.String("error", err.Error()))
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}
