// Package payment talks to the payment initialization endpoint.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"nativedelight/internal/models"
)

const maxResponseBody = 1 << 20

var ErrNotConfigured = errors.New("payment service is not configured")

// Error is a non-2xx answer from the payment endpoint.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("payment initialization failed with status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("payment initialization failed with status %d", e.StatusCode)
}

// ServerMessage is the message the endpoint returned, shown to the user as is.
func (e *Error) ServerMessage() string {
	return e.Message
}

type initializeRequest struct {
	Items   []models.OrderDraftItem `json:"items"`
	Email   string                  `json:"email"`
	Phone   string                  `json:"phone"`
	Amount  float64                 `json:"amount"`
	Address string                  `json:"address"`
	Name    string                  `json:"name"`
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

type Client struct {
	endpoint string
	http     *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		endpoint: strings.TrimSpace(endpoint),
		http:     &http.Client{Timeout: timeout},
	}
}

func (c *Client) InitializePayment(ctx context.Context, draft models.OrderDraft) (*models.PaymentResponse, error) {
	if c.endpoint == "" {
		return nil, ErrNotConfigured
	}

	payload, err := json.Marshal(initializeRequest{
		Items:   draft.Items,
		Email:   draft.Email,
		Phone:   draft.Phone,
		Amount:  draft.Amount.InexactFloat64(),
		Address: draft.Address,
		Name:    draft.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("encode payment request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build payment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("read payment response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(body, &eb)
		message := strings.TrimSpace(eb.Message)
		if message == "" {
			message = strings.TrimSpace(eb.Error)
		}
		return nil, &Error{StatusCode: resp.StatusCode, Message: message}
	}

	var out models.PaymentResponse
	if len(bytes.TrimSpace(body)) == 0 {
		return &out, nil
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode payment response: %w", err)
	}
	return &out, nil
}
