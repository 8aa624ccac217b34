package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client runs backup operations against a remote FitQuest server.
type Client struct {
	serverURL  string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new HTTP client for the FitQuest server.
func NewClient(serverURL, apiKey string) *Client {
	return &Client{
		serverURL: serverURL,
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Export downloads the server's backup document.
func (c *Client) Export() ([]byte, error) {
	body, status, err := c.do(http.MethodGet, "/api/v1/backup/export", nil)
	if err != nil {
		return nil, fmt.Errorf("fetching export: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("export failed (status %d): %s", status, body)
	}
	return body, nil
}

// Import uploads a backup document. It returns false when the server
// rejected the document as malformed.
// Retries up to 3 times with exponential backoff on transport or server errors.
func (c *Client) Import(doc []byte) (bool, error) {
	var lastErr error
	for attempt := range 3 {
		if attempt > 0 {
			time.Sleep(time.Duration(1<<uint(attempt-1)) * time.Second)
		}

		body, status, err := c.do(http.MethodPost, "/api/v1/backup/import", doc)
		if err != nil {
			lastErr = err
			continue
		}
		switch {
		case status == http.StatusOK:
			return true, nil
		case status == http.StatusBadRequest:
			return false, nil
		case status < 500:
			return false, fmt.Errorf("import failed (status %d): %s", status, body)
		}
		lastErr = fmt.Errorf("import failed (status %d): %s", status, body)
	}

	return false, fmt.Errorf("after 3 attempts: %w", lastErr)
}

// Reset clears all data on the server.
func (c *Client) Reset() error {
	body, status, err := c.do(http.MethodPost, "/api/v1/reset", nil)
	if err != nil {
		return fmt.Errorf("resetting: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("reset failed (status %d): %s", status, body)
	}
	return nil
}

// Summary fetches the document and reports its counts, for CLI output.
func (c *Client) Summary() (Document, error) {
	data, err := c.Export()
	if err != nil {
		return Document{}, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decoding export: %w", err)
	}
	return doc, nil
}

func (c *Client) do(method, path string, payload []byte) ([]byte, int, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, c.serverURL+path, body)
	if err != nil {
		return nil, 0, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return data, resp.StatusCode, nil
}
