// Order-creation client.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/arf3lix/songorder/internal/models"
	"github.com/arf3lix/songorder/internal/shared"
)

// OrderService submits assembled orders to the backend.
type OrderService struct {
	baseURL    string
	httpClient *http.Client
}

// NewOrderService creates an order client for the given base URL.
func NewOrderService(baseURL string, client *http.Client) *OrderService {
	if client == nil {
		client = http.DefaultClient
	}
	return &OrderService{baseURL: baseURL, httpClient: client}
}

// CreateOrder POSTs the order and interprets the response envelope.
//
// Any outcome other than a 2xx status with success=true and a data block is
// an error; the caller decides whether to keep or reset local state.
func (o *OrderService) CreateOrder(ctx context.Context, order models.OrderRequest) (*models.OrderConfirmation, error) {
	payload, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/order/create", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	var envelope models.OrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: undecodable response (status %d): %v", shared.ErrAPIRequest, resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !envelope.Success {
		msg := envelope.Error
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %s", shared.ErrOrderRejected, msg)
	}

	if envelope.Data == nil {
		return nil, fmt.Errorf("%w: success response without confirmation data", shared.ErrOrderRejected)
	}

	return envelope.Data, nil
}
