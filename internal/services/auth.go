// Token-validation client.
//
// Authentication is entirely external: the storefront hands the user a link
// carrying an opaque token, and this client only asks the backend whether
// that token is still good.
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

// AuthService validates session tokens against the auth backend.
type AuthService struct {
	baseURL    string
	httpClient *http.Client
}

// NewAuthService creates an auth client for the given base URL.
func NewAuthService(baseURL string, client *http.Client) *AuthService {
	if client == nil {
		client = http.DefaultClient
	}
	return &AuthService{baseURL: baseURL, httpClient: client}
}

// ValidateToken checks the token and returns the customer it belongs to.
func (a *AuthService) ValidateToken(ctx context.Context, token string) (*models.TokenUser, error) {
	payload, err := json.Marshal(map[string]string{"token": token})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal token payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/api/auth/validate-token", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	var result models.TokenValidation
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: undecodable response (status %d): %v", shared.ErrAPIRequest, resp.StatusCode, err)
	}

	if !result.Valid || result.User == nil {
		msg := result.Error
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %s", shared.ErrInvalidToken, msg)
	}

	return result.User, nil
}
