// Package share delivers exported reports to an external share endpoint.
// The app itself never writes a file; it hands the rendered text off.
package share

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Client struct {
	WebhookURL string
	HTTPClient *http.Client
}

type SendReportRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type SendReportResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func NewClient(webhookURL string) *Client {
	return &Client{
		WebhookURL: webhookURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Enabled reports whether a share endpoint is configured. Export still
// works without one; the rendered text is just returned to the caller.
func (c *Client) Enabled() bool {
	return c.WebhookURL != ""
}

// SendReport posts the rendered report to the configured endpoint.
func (c *Client) SendReport(subject, body string) error {
	if !c.Enabled() {
		return nil
	}

	requestData := SendReportRequest{
		Subject: subject,
		Body:    body,
	}

	jsonData, err := json.Marshal(requestData)
	if err != nil {
		return fmt.Errorf("failed to marshal request data: %w", err)
	}

	req, err := http.NewRequest("POST", c.WebhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var response SendReportResponse
	if err := json.Unmarshal(respBody, &response); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if !response.Success && resp.StatusCode >= 400 {
		return fmt.Errorf("share endpoint rejected report: %s", response.Message)
	}

	return nil
}
