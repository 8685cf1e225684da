package feeder

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"

	"github.com/GPTx-global/guru-dataoracle/x/dataoracle/types"
)

var (
	once       sync.Once
	httpClient *http.Client
)

// executorClient returns the HTTP client shared by all jobs.
func executorClient() *http.Client {
	once.Do(func() {
		httpClient = &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        1000,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
				MaxConnsPerHost:     200,
				WriteBufferSize:     32 * 1024,
				ReadBufferSize:      32 * 1024,
			},
		}
	})

	return httpClient
}

// fetchRawData makes a GET request to url and returns the body of a 200 response.
func fetchRawData(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "Oracle-Daemon/1.0")
	req.Header.Set("Accept", "application/json")

	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch raw data: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", res.StatusCode, url)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}

// extractValue returns the value at the gjson path. A path that misses on an
// array document is retried against its first element.
func extractValue(raw []byte, path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty path")
	}
	if !gjson.ValidBytes(raw) {
		return "", fmt.Errorf("response is not valid JSON")
	}

	result := gjson.GetBytes(raw, path)
	if !result.Exists() && gjson.ParseBytes(raw).IsArray() {
		result = gjson.GetBytes(raw, "0."+path)
	}
	if !result.Exists() {
		return "", fmt.Errorf("path %s not found", path)
	}
	if result.IsObject() || result.IsArray() {
		return "", fmt.Errorf("path %s does not point to a scalar value", path)
	}

	value := strings.TrimSpace(result.String())
	if err := types.ValidateDataValue(value); err != nil {
		return "", err
	}
	return value, nil
}
