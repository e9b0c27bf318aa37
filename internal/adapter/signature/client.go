// Package signature talks to the contract e-signature provider.
package signature

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"sme-credit-backend/internal/domain/application"
	"sme-credit-backend/pkg/id"
)

var (
	_ application.SignatureService = (*Client)(nil)
	_ application.SignatureService = (*Stub)(nil)
)

const DefaultTimeout = 10 * time.Second

// Client requests signatures over HTTP: POST {base}/signature-requests.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type signatureRequest struct {
	ApplicationID string `json:"application_id"`
	DocumentRef   string `json:"document_ref"`
}

type signatureResponse struct {
	RequestID string `json:"request_id"`
}

func (c *Client) RequestSignature(ctx context.Context, applicationID, documentRef string) (string, error) {
	if c == nil || c.baseURL == "" {
		return "", fmt.Errorf("signature client not configured")
	}
	body, err := json.Marshal(signatureRequest{ApplicationID: applicationID, DocumentRef: documentRef})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/signature-requests", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", applicationID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out signatureResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if out.RequestID == "" {
		return "", fmt.Errorf("response without request_id")
	}
	return out.RequestID, nil
}

// Stub accepts every request locally. Used when no provider URL is configured.
type Stub struct{}

func (Stub) RequestSignature(ctx context.Context, _, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return "stub-" + id.NewID32(), nil
}
