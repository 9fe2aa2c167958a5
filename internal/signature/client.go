package signature

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/lexdraft/lexdraft/internal/httpclient"
)

// APIKeyEnvVar is where the e-signature provider API key is read from.
const APIKeyEnvVar = "LEXDRAFT_SIGNATURE_API_KEY"

// Client talks to the external e-signature provider's envelope API.
type Client struct {
	baseURL     string
	callbackURL string
	apiKey      string
	http        *httpclient.Client
}

// NewClient builds a client for the provider at baseURL. The API key is
// taken from the environment; an empty key is allowed and rejected only
// when a request is actually sent.
func NewClient(baseURL, callbackURL string) *Client {
	return &Client{
		baseURL:     baseURL,
		callbackURL: callbackURL,
		apiKey:      os.Getenv(APIKeyEnvVar),
		http:        httpclient.New(httpclient.WithTimeout(30 * time.Second)),
	}
}

// Enabled reports whether a provider endpoint is configured.
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

type envelopeRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	SignerName  string `json:"signerName"`
	SignerEmail string `json:"signerEmail"`
	CallbackURL string `json:"callbackUrl,omitempty"`
}

type envelopeResponse struct {
	EnvelopeID string `json:"envelopeId"`
	Status     string `json:"status"`
}

// SendEnvelope submits a document for signature and returns the
// provider's envelope id.
func (c *Client) SendEnvelope(ctx context.Context, title, content, signerName, signerEmail string) (string, error) {
	if !c.Enabled() {
		return "", fmt.Errorf("no e-signature provider configured")
	}
	if c.apiKey == "" {
		return "", fmt.Errorf("%s is not set", APIKeyEnvVar)
	}

	body, err := json.Marshal(envelopeRequest{
		Title:       title,
		Content:     content,
		SignerName:  signerName,
		SignerEmail: signerEmail,
		CallbackURL: c.callbackURL,
	})
	if err != nil {
		return "", fmt.Errorf("encoding envelope request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/envelopes", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building envelope request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending envelope: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("sending envelope: status %d: %s", resp.StatusCode, bytes.TrimSpace(data))
	}

	var envelope envelopeResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", fmt.Errorf("decoding envelope response: %w", err)
	}
	if envelope.EnvelopeID == "" {
		return "", fmt.Errorf("provider returned no envelope id")
	}
	return envelope.EnvelopeID, nil
}

// EnvelopeStatus polls the provider for the current envelope state.
func (c *Client) EnvelopeStatus(ctx context.Context, envelopeID string) (Status, error) {
	if !c.Enabled() {
		return "", fmt.Errorf("no e-signature provider configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/envelopes/"+envelopeID, nil)
	if err != nil {
		return "", fmt.Errorf("building status request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching envelope status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("fetching envelope status: status %d: %s", resp.StatusCode, bytes.TrimSpace(data))
	}

	var envelope envelopeResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", fmt.Errorf("decoding envelope status: %w", err)
	}
	status := Status(envelope.Status)
	if !ValidStatus(status) {
		return "", fmt.Errorf("provider returned unknown status %q", envelope.Status)
	}
	return status, nil
}
