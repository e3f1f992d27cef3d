package ao

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bnema/dumdum-cli/internal/domain"
	"github.com/bnema/dumdum-cli/internal/ports"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const maxResponseBytes = 4 << 20

// Endpoints are the messenger unit (accepts signed messages) and the
// compute unit (evaluates dry runs and reports results).
type Endpoints struct {
	MessengerURL string
	ComputeURL   string
}

type Client struct {
	Endpoints  Endpoints
	HTTPClient *http.Client
	// SubmitLimiter throttles submissions to the messenger unit; nil disables it.
	SubmitLimiter *rate.Limiter
	Metrics       *Metrics
	Logger        *zap.Logger
}

var _ ports.ProcessTransport = (*Client)(nil)

func NewSubmitLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}

	return rate.NewLimiter(rate.Limit(rps), burst)
}

func (c *Client) DryRun(ctx context.Context, req domain.ReadRequest) (result ports.DryRunResult, err error) {
	started := time.Now()
	defer func() { c.Metrics.observe("dry_run", started, err) }()

	if err := req.Validate(); err != nil {
		return ports.DryRunResult{}, err
	}

	endpoint, err := buildURL(c.Endpoints.ComputeURL, "dry-run", req.ProcessID)
	if err != nil {
		return ports.DryRunResult{}, err
	}

	body, err := json.Marshal(dryRunRequest{
		ID:     dryRunPlaceholderID,
		Target: req.ProcessID,
		Owner:  dryRunPlaceholderID,
		Anchor: dryRunPlaceholderAnchor,
		Data:   dryRunPlaceholderID,
		Tags:   toWireTags(req.Tags),
	})
	if err != nil {
		return ports.DryRunResult{}, fmt.Errorf("encode dry-run request: %w", err)
	}

	c.logger().Debug("dry-run",
		zap.String("process", req.ProcessID),
		zap.String("tags", req.Tags.String()),
	)

	var payload resultResponse
	if err := c.doJSON(ctx, http.MethodPost, endpoint, body, &payload); err != nil {
		return ports.DryRunResult{}, fmt.Errorf("%w: dry-run %s: %w", domain.ErrRemoteUnavailable, req.ProcessID, err)
	}

	return ports.DryRunResult{
		Messages: payload.messages(),
		Output:   payload.output(),
		Error:    payload.errorText(),
	}, nil
}

func (c *Client) Submit(ctx context.Context, envelope domain.SignedEnvelope) (id string, err error) {
	started := time.Now()
	defer func() { c.Metrics.observe("submit", started, err) }()

	if envelope.Signature == "" {
		return "", fmt.Errorf("%w: envelope is not signed", domain.ErrInvalidRequest)
	}

	if c.SubmitLimiter != nil {
		if err := c.SubmitLimiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("%w: wait for submit slot: %w", domain.ErrRemoteUnavailable, err)
		}
	}

	endpoint, err := buildURL(c.Endpoints.MessengerURL, "", "")
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(submitRequest{
		ID:        envelope.ID,
		Owner:     envelope.Owner,
		Target:    envelope.Target,
		Anchor:    envelope.Anchor,
		Tags:      toWireTags(envelope.Tags),
		Data:      envelope.Data,
		Signature: envelope.Signature,
	})
	if err != nil {
		return "", fmt.Errorf("encode envelope: %w", err)
	}

	c.logger().Debug("submit",
		zap.String("id", envelope.ID),
		zap.String("target", envelope.Target),
		zap.String("tags", envelope.Tags.String()),
	)

	var payload submitResponse
	if err := c.doJSON(ctx, http.MethodPost, endpoint, body, &payload); err != nil {
		return "", fmt.Errorf("%w: submit to %s: %w", domain.ErrRemoteUnavailable, envelope.Target, err)
	}

	if payload.ID == "" {
		return envelope.ID, nil
	}

	return payload.ID, nil
}

func (c *Client) Result(ctx context.Context, processID string, messageID string) (outcome domain.WriteOutcome, err error) {
	started := time.Now()
	defer func() { c.Metrics.observe("result", started, err) }()

	if processID == "" || messageID == "" {
		return domain.WriteOutcome{}, fmt.Errorf("%w: process id and message id are required", domain.ErrInvalidRequest)
	}

	endpoint, err := buildURL(c.Endpoints.ComputeURL, "result/"+url.PathEscape(messageID), processID)
	if err != nil {
		return domain.WriteOutcome{}, err
	}

	var payload resultResponse
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &payload); err != nil {
		return domain.WriteOutcome{}, fmt.Errorf("%w: result %s: %w", domain.ErrRemoteUnavailable, messageID, err)
	}

	outcome = payload.outcome(messageID)
	c.logger().Debug("result",
		zap.String("id", messageID),
		zap.Int("messages", len(outcome.Messages)),
		zap.Int("spawns", len(outcome.Spawns)),
		zap.Bool("failed", outcome.Failed()),
	)

	return outcome, nil
}

func (c *Client) doJSON(ctx context.Context, method string, endpoint string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		if len(bytes.TrimSpace(snippet)) == 0 {
			return fmt.Errorf("status %d", resp.StatusCode)
		}
		return fmt.Errorf("status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty response body")
		}
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) logger() *zap.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return zap.NewNop()
}

func buildURL(baseURL string, path string, processID string) (string, error) {
	if baseURL == "" {
		return "", errors.New("unit base url is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse unit base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("unit base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("unit base url host is required")
	}

	endpoint := parsed.JoinPath(path)
	if path == "" {
		endpoint = parsed.JoinPath("/")
	}
	if processID != "" {
		q := endpoint.Query()
		q.Set("process-id", processID)
		endpoint.RawQuery = q.Encode()
	}

	return endpoint.String(), nil
}
