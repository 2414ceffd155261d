// Package mailer talks to the transactional email worker. Proposal and
// confirmation emails are rendered and delivered by the worker; this client
// only carries the structured payloads.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/idtoken"
)

// ProposalEmail is the payload for a meeting proposal message.
type ProposalEmail struct {
	To           string   `json:"to"`
	ContactName  string   `json:"contact_name"`
	CompanyName  string   `json:"company_name"`
	BookingURL   string   `json:"booking_url"`
	ExpiresAt    string   `json:"expires_at"`
	SlotCount    int      `json:"slot_count"`
	SlotPreviews []string `json:"slot_previews,omitempty"`
}

// ConfirmationEmail is the payload for a booking confirmation message.
type ConfirmationEmail struct {
	To              string `json:"to"`
	ContactName     string `json:"contact_name"`
	CompanyName     string `json:"company_name"`
	MeetingTitle    string `json:"meeting_title"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	Timezone        string `json:"timezone"`
	MeetingLocation string `json:"meeting_location"`
	MeetingURL      string `json:"meeting_url,omitempty"`
}

// Sender delivers meeting emails. SendProposal returns the provider email id
// for the activity journal.
type Sender interface {
	SendProposal(ctx context.Context, email ProposalEmail) (string, error)
	SendConfirmation(ctx context.Context, email ConfirmationEmail) error
}

// Client posts email payloads to the mail worker.
type Client struct {
	client  *http.Client
	baseURL string
}

// New builds a mail client, auto-configuring an ID token client when needed.
func New(client *http.Client, baseURL string) *Client {
	if baseURL == "" {
		panic("mailer baseURL must not be empty")
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if client == nil {
		idc, err := idtoken.NewClient(context.Background(), baseURL)
		if err != nil {
			client = &http.Client{Timeout: 10 * time.Second}
		} else {
			client = idc
		}
	}
	return &Client{client: client, baseURL: baseURL}
}

// SendProposal delivers a meeting proposal email.
func (c *Client) SendProposal(ctx context.Context, email ProposalEmail) (string, error) {
	data, err := c.postJSON(ctx, "/emails/meeting-proposal", email)
	if err != nil {
		return "", err
	}
	id, _ := data["email_id"].(string)
	return id, nil
}

// SendConfirmation delivers a booking confirmation email.
func (c *Client) SendConfirmation(ctx context.Context, email ConfirmationEmail) error {
	_, err := c.postJSON(ctx, "/emails/booking-confirmation", email)
	return err
}

func (c *Client) postJSON(ctx context.Context, path string, payload any) (map[string]any, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mail request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("mail worker error: %s", extractError(resp.Body))
	}

	var mailResp struct {
		Data  map[string]any `json:"data"`
		Error string         `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&mailResp); err != nil && err != io.EOF {
		return nil, fmt.Errorf("could not decode mail response: %w", err)
	}
	if mailResp.Error != "" {
		return nil, fmt.Errorf("mail worker error: %s", mailResp.Error)
	}
	return mailResp.Data, nil
}

func extractError(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return "unknown error"
	}
	var parsed struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &parsed) == nil && parsed.Error != "" {
		return parsed.Error
	}
	return strings.TrimSpace(string(raw))
}

var _ Sender = (*Client)(nil)
