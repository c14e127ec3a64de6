package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDeliveryType(t *testing.T) {
	if !DeliveryDigitalLink.Valid() || !DeliveryPhysicalUSB.Valid() {
		t.Error("known delivery types should be valid")
	}
	if DeliveryType("CARRIER_PIGEON").Valid() {
		t.Error("unknown delivery type should be invalid")
	}
	if string(DeliveryPhysicalUSB) != "PHYSICAL_USB" {
		t.Errorf("wire value drifted: %s", DeliveryPhysicalUSB)
	}
}

func TestOrderRequestWireShape(t *testing.T) {
	req := OrderRequest{
		PhoneNumber:  "+5358123456",
		DeliveryType: DeliveryDigitalLink,
		SongGroups: map[string]SongGroup{
			"gym": {
				Name: "gym",
				Type: GroupTypeGroup,
				Songs: []GroupedSong{
					{Song: Song{ID: "1", Title: "Track"}, TagName: "gym", ArtistName: "Someone"},
				},
				Count: 1,
			},
		},
	}

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("round trip failed: %v", err)
	}

	// the backend expects camelCase envelope keys and group entries keyed by tag
	for _, key := range []string{"phoneNumber", "deliveryType", "songGroups"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing envelope key %s", key)
		}
	}

	groups := decoded["songGroups"].(map[string]any)
	gym := groups["gym"].(map[string]any)
	songs := gym["songs"].([]any)
	entry := songs[0].(map[string]any)
	if entry["tagName"] != "gym" || entry["artistName"] != "Someone" {
		t.Errorf("grouped song keys drifted: %v", entry)
	}
}

func TestReceiptValidate(t *testing.T) {
	conf := OrderConfirmation{TempID: "ord-1", TotalSongs: 2, Price: 300}

	t.Run("Valid After ID Assignment", func(t *testing.T) {
		receipt := NewReceipt(conf, "+5358123456", DeliveryDigitalLink)
		receipt.SetID("r-1")

		if err := receipt.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("Missing ID", func(t *testing.T) {
		receipt := NewReceipt(conf, "+5358123456", DeliveryDigitalLink)

		if err := receipt.Validate(); err == nil {
			t.Error("expected error for missing id")
		}
	})

	t.Run("Zero Songs", func(t *testing.T) {
		receipt := NewReceipt(OrderConfirmation{TempID: "ord-2"}, "+5358123456", DeliveryDigitalLink)
		receipt.SetID("r-2")

		if err := receipt.Validate(); err == nil {
			t.Error("expected error for zero songs")
		}
	})

	t.Run("Bad Delivery Type", func(t *testing.T) {
		receipt := NewReceipt(conf, "+5358123456", DeliveryType("SMOKE_SIGNAL"))
		receipt.SetID("r-3")

		if err := receipt.Validate(); err == nil {
			t.Error("expected error for unknown delivery type")
		}
	})
}

func TestRestoreReceipt(t *testing.T) {
	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	deleted := created.Add(time.Hour)

	receipt := RestoreReceipt("r-1", 7, "ord-1", "+5358123456", DeliveryPhysicalUSB, 3, 450, created, &deleted)

	if receipt.ID() != "r-1" || receipt.Sequence() != 7 {
		t.Errorf("identity fields lost: %s %d", receipt.ID(), receipt.Sequence())
	}
	if !receipt.CreatedAt().Equal(created) {
		t.Errorf("created at drifted: %v", receipt.CreatedAt())
	}
	if receipt.DeletedAt() == nil || !receipt.DeletedAt().Equal(deleted) {
		t.Errorf("deleted at drifted: %v", receipt.DeletedAt())
	}
}
