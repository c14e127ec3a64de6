package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arf3lix/songorder/internal/models"
	"github.com/arf3lix/songorder/internal/shared"
	tu "github.com/arf3lix/songorder/internal/testing"
)

func TestValidateToken(t *testing.T) {
	t.Run("Valid Token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/auth/validate-token" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}

			var req map[string]string
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("undecodable request: %v", err)
			}
			if req["token"] != "tok-123" {
				t.Errorf("expected token tok-123, got %s", req["token"])
			}

			json.NewEncoder(w).Encode(models.TokenValidation{
				Valid: true,
				User:  &models.TokenUser{Phone: "+5358123456", Name: "Ana", SessionID: "s1"},
			})
		}))
		defer server.Close()

		svc := NewAuthService(server.URL, nil)
		user, err := svc.ValidateToken(context.Background(), "tok-123")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.Phone != "+5358123456" || user.Name != "Ana" {
			t.Errorf("user decoded incorrectly: %+v", user)
		}
	})

	t.Run("Invalid Token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(models.TokenValidation{Valid: false, Error: "token expired"})
		}))
		defer server.Close()

		svc := NewAuthService(server.URL, nil)
		_, err := svc.ValidateToken(context.Background(), "stale")

		if !errors.Is(err, shared.ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("Valid Without User Block", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(models.TokenValidation{Valid: true})
		}))
		defer server.Close()

		svc := NewAuthService(server.URL, nil)
		_, err := svc.ValidateToken(context.Background(), "tok")

		if !errors.Is(err, shared.ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("Network Failure", func(t *testing.T) {
		client := &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused"))}

		svc := NewAuthService("http://example.com", client)
		_, err := svc.ValidateToken(context.Background(), "tok")

		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Fatalf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}
