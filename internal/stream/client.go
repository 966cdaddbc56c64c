package stream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ProcessingPath is the extraction service endpoint that accepts uploads
const ProcessingPath = "/api/stream-resume-processing"

// DefaultTimeout matches the extraction service's own processing limit
const DefaultTimeout = 5 * time.Minute

// Client uploads resume files to the extraction service
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// NewClient creates a client for the service at baseURL
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
		Logger:     logger,
	}
}

// Process uploads a file and waits for the terminal event. An error event is
// returned as an *UpstreamError and a connection failure as a *TransportError;
// there is no automatic retry.
func (c *Client) Process(ctx context.Context, fileName string, content []byte) (*Event, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+ProcessingPath, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "text/event-stream")

	c.Logger.Info("uploading resume for extraction",
		zap.String("file", fileName),
		zap.Int("bytes", len(content)),
	)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("upload cancelled: %w", ctx.Err())
		}
		return nil, &TransportError{Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	ev, err := ReadTerminal(ctx, resp.Body)
	if err != nil {
		return nil, err
	}
	if err := ev.Err(); err != nil {
		c.Logger.Warn("extraction service reported an error", zap.String("message", ev.Message))
		return ev, err
	}
	return ev, nil
}
