// Package crm relays captured leads to the NeoDove CRM. NeoDove custom
// integrations take the lead as query parameters on a GET request.
package crm

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

type Lead struct {
	Name    string `json:"name" binding:"required"`
	Mobile  string `json:"mobile" binding:"required"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Source  string `json:"source"`
}

// Result is what the contact form shows the visitor. Relay failures are
// results, not errors: a broken CRM must never take the form down.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type NeoDove struct {
	endpoint string
	client   *http.Client
}

func NewNeoDove(endpoint string) *NeoDove {
	return &NeoDove{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// WithHTTPClient is used by tests to point the relay at a stub server.
func (n *NeoDove) WithHTTPClient(hc *http.Client) *NeoDove {
	n.client = hc
	return n
}

func (n *NeoDove) Submit(ctx context.Context, lead Lead) Result {
	if n.endpoint == "" {
		slog.Error("NEODOVE_URL is not configured")
		return Result{Success: false, Message: "Configuration error."}
	}

	params := url.Values{}
	params.Set("name", lead.Name)
	params.Set("mobile", lead.Mobile)
	params.Set("email", lead.Email)
	if lead.Subject != "" {
		params.Set("detail1", lead.Subject)
	}
	if lead.Message != "" {
		params.Set("detail2", lead.Message)
	}
	if lead.Source != "" {
		params.Set("source", lead.Source)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		slog.Error("failed to build CRM request", "error", err)
		return Result{Success: false, Message: "Network error occurred."}
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := n.client.Do(req)
	if err != nil {
		slog.Error("CRM submission failed", "error", err)
		return Result{Success: false, Message: "Network error occurred."}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		slog.Error("CRM rejected lead", "status", res.StatusCode)
		return Result{Success: false, Message: "Failed to submit to CRM."}
	}

	return Result{Success: true, Message: "Details submitted successfully!"}
}
