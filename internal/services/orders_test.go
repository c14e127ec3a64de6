package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/arf3lix/songorder/internal/models"
	"github.com/arf3lix/songorder/internal/shared"
	tu "github.com/arf3lix/songorder/internal/testing"
)

func testOrder() models.OrderRequest {
	return models.OrderRequest{
		PhoneNumber:  "+5358123456",
		DeliveryType: models.DeliveryPhysicalUSB,
		SongGroups: map[string]models.SongGroup{
			"Juanes": {
				Name: "Juanes",
				Type: models.GroupTypeArtist,
				Songs: []models.GroupedSong{
					{Song: models.Song{ID: "1", Title: "A Dios le Pido"}, TagName: "Juanes", ArtistName: "Juanes"},
				},
				Count: 1,
			},
		},
	}
}

func TestCreateOrder(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}
			if r.URL.Path != "/api/order/create" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}

			var req models.OrderRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("undecodable request body: %v", err)
			}
			if req.DeliveryType != models.DeliveryPhysicalUSB {
				t.Errorf("expected PHYSICAL_USB on the wire, got %s", req.DeliveryType)
			}
			if req.SongGroups["Juanes"].Count != 1 {
				t.Errorf("song groups did not round-trip: %+v", req.SongGroups)
			}

			json.NewEncoder(w).Encode(models.OrderResponse{
				Success: true,
				Data:    &models.OrderConfirmation{TempID: "ord-7", TotalSongs: 1, Price: 150},
			})
		}))
		defer server.Close()

		svc := NewOrderService(server.URL, nil)
		conf, err := svc.CreateOrder(context.Background(), testOrder())

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if conf.TempID != "ord-7" || conf.TotalSongs != 1 || conf.Price != 150 {
			t.Errorf("confirmation decoded incorrectly: %+v", conf)
		}
	})

	t.Run("Backend Rejection With Message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(models.OrderResponse{Success: false, Error: "invalid phone number"})
		}))
		defer server.Close()

		svc := NewOrderService(server.URL, nil)
		_, err := svc.CreateOrder(context.Background(), testOrder())

		if !errors.Is(err, shared.ErrOrderRejected) {
			t.Fatalf("expected ErrOrderRejected, got %v", err)
		}
		if !strings.Contains(err.Error(), "invalid phone number") {
			t.Errorf("expected backend message in error, got %v", err)
		}
	})

	t.Run("Success Envelope Without Data", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(models.OrderResponse{Success: true})
		}))
		defer server.Close()

		svc := NewOrderService(server.URL, nil)
		_, err := svc.CreateOrder(context.Background(), testOrder())

		if !errors.Is(err, shared.ErrOrderRejected) {
			t.Fatalf("expected ErrOrderRejected, got %v", err)
		}
	})

	t.Run("Undecodable Response", func(t *testing.T) {
		client := &http.Client{Transport: tu.NewMockRoundTripper(&http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader("not json at all")),
		}, nil)}

		svc := NewOrderService("http://example.com", client)
		_, err := svc.CreateOrder(context.Background(), testOrder())

		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Fatalf("expected ErrAPIRequest, got %v", err)
		}
	})
}
