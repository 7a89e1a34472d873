package repositories

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"weather-bot/pkg/logger"
)

const maxBodySize = 4 << 20

// fetchPage performs a GET and returns the body of a 200 response.
func fetchPage(ctx context.Context, httpClient HTTPClient, l *logger.Logger, url, userAgent string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	l.Debug("received weather page response", map[string]any{
		"url":        url,
		"status":     resp.StatusCode,
		"statusText": resp.Status,
	})

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error (status %d): %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(body) > maxBodySize {
		l.Debug("weather page truncated", map[string]any{
			"url":   url,
			"limit": maxBodySize,
		})
		body = body[:maxBodySize]
	}

	return body, nil
}
