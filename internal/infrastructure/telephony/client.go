package telephony

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client wraps the external voice-call provider's JSON API. The provider
// runs the IVR flow itself; we only ask it to place a call that announces
// an order and report whether the call was accepted.
type Client struct {
	apiURL     string
	apiKey     string
	callerID   string
	httpClient *http.Client
}

func NewClient(apiURL, apiKey, callerID string) *Client {
	return &Client{
		apiURL:   apiURL,
		apiKey:   apiKey,
		callerID: callerID,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// CallRequest describes one announcement call to a restaurant.
type CallRequest struct {
	PhoneNumber    string `json:"phone_number"`
	OrderNumber    string `json:"order_number"`
	ItemCount      int    `json:"item_count"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// CallResult is the provider's synchronous answer.
type CallResult struct {
	CallID string `json:"call_id"`
	Status string `json:"status"` // "queued", "answered", "no_answer", "failed"
}

// PlaceOrderCall asks the provider to phone the restaurant about a new
// order. The per-attempt timeout comes from the restaurant's
// call-dispatch settings; retries are handled by the task queue, not here.
func (c *Client) PlaceOrderCall(ctx context.Context, req CallRequest) (*CallResult, error) {
	if req.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(req.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	body := map[string]interface{}{
		"from":            c.callerID,
		"to":              req.PhoneNumber,
		"flow":            "order_announcement",
		"order_number":    req.OrderNumber,
		"item_count":      req.ItemCount,
		"timeout_seconds": req.TimeoutSeconds,
	}

	bodyJSON, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal call request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.apiURL+"/v1/calls", bytes.NewReader(bodyJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to build call request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call provider request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read call provider response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("call provider returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var result CallResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to decode call provider response: %w", err)
	}

	return &result, nil
}
