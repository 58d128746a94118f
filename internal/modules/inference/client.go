// Package inference talks to the Hugging Face Inference API and normalizes
// the response envelopes it returns.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	appcfg "github.com/inkwell-app/inkwell/internal/config"
	"github.com/inkwell-app/inkwell/internal/pkg/retry"
)

const (
	defaultRetryAttempts  = 3
	defaultRetryBaseDelay = 2 * time.Second
	maxResponseBytes      = 8 << 20
)

// Endpoint names a logical model endpoint.
type Endpoint string

const (
	EndpointGeneration    Endpoint = "generation"
	EndpointSentiment     Endpoint = "sentiment"
	EndpointSummarization Endpoint = "summarization"
)

// Client dispatches JSON payloads to model endpoints with retry.
type Client struct {
	baseURL    string
	apiKey     string
	models     map[Endpoint]string
	httpClient *http.Client
	logger     *zap.Logger

	retryAttempts  int
	retryBaseDelay time.Duration
	sleeper        func(context.Context, time.Duration) error
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger sets the logger used for retry diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRetry overrides the attempt budget and base backoff delay.
func WithRetry(attempts int, baseDelay time.Duration) Option {
	return func(c *Client) {
		c.retryAttempts = attempts
		c.retryBaseDelay = baseDelay
	}
}

// WithSleeper overrides how backoff waits are performed (useful for tests).
func WithSleeper(sleeper func(context.Context, time.Duration) error) Option {
	return func(c *Client) {
		c.sleeper = sleeper
	}
}

// NewClient builds a client from the inference configuration.
func NewClient(cfg appcfg.InferenceConfig, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:  strings.TrimSpace(cfg.APIKey),
		models: map[Endpoint]string{
			EndpointGeneration:    strings.Trim(strings.TrimSpace(cfg.Models.Generation), "/"),
			EndpointSentiment:     strings.Trim(strings.TrimSpace(cfg.Models.Sentiment), "/"),
			EndpointSummarization: strings.Trim(strings.TrimSpace(cfg.Models.Summarization), "/"),
		},
		httpClient:     &http.Client{Timeout: cfg.Timeout()},
		logger:         zap.NewNop(),
		retryAttempts:  defaultRetryAttempts,
		retryBaseDelay: defaultRetryBaseDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the request URL for endpoint.
func (c *Client) URL(endpoint Endpoint) (string, error) {
	model := c.models[endpoint]
	if model == "" {
		return "", fmt.Errorf("inference: no model configured for endpoint %q", endpoint)
	}
	return c.baseURL + "/" + model, nil
}

// Query posts payload to endpoint and returns the decoded JSON body.
// Every failure kind is retried with a 2s, 4s, ... backoff until the attempt
// budget is spent; the last failure is returned.
func (c *Client) Query(ctx context.Context, endpoint Endpoint, payload any) (json.RawMessage, error) {
	target, err := c.URL(endpoint)
	if err != nil {
		return nil, err
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("inference: encode payload: %w", err)
	}

	var result json.RawMessage
	err = retry.Do(ctx, retry.Policy{
		Attempts: c.retryAttempts,
		Delay:    retry.Exponential(c.retryBaseDelay),
		Sleep:    c.sleeper,
		OnRetry: func(attempt int, delay time.Duration, err error) {
			c.logger.Warn("inference request failed, retrying",
				zap.String("endpoint", string(endpoint)),
				zap.Int("attempt", attempt+1),
				zap.Duration("backoff", delay),
				zap.String("kind", string(KindOf(err))),
				zap.Error(err),
			)
		},
	}, func(ctx context.Context, _ int) error {
		raw, err := c.send(ctx, endpoint, target, encoded)
		if err != nil {
			return err
		}
		result = raw
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) send(ctx context.Context, endpoint Endpoint, target string, body []byte) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: KindTransportFailure, Endpoint: endpoint, Err: err}
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindTransportFailure, Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &Error{Kind: KindTransportFailure, Endpoint: endpoint, StatusCode: resp.StatusCode, Err: err}
	}
	c.logger.Debug("inference response",
		zap.String("endpoint", string(endpoint)),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(respBody)),
	)

	switch {
	case resp.StatusCode == http.StatusServiceUnavailable:
		return nil, &Error{
			Kind:       KindTransientUnavailable,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
			Err:        errors.New("model is loading"),
		}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, &Error{
			Kind:       KindTransportFailure,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	if !json.Valid(respBody) {
		return nil, &Error{
			Kind:       KindMalformedResponse,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
			Err:        errors.New("response is not valid JSON"),
		}
	}
	return json.RawMessage(respBody), nil
}
