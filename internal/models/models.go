// package models defines the data model for the music order builder
package models

import (
	"fmt"
	"time"
)

// Model defines the base interface for all persistent models in the order builder.
// The only implementation today is [Receipt]; the in-flight order itself is never persisted.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// Song represents one catalog entry as emitted by the streaming search endpoints.
//
// ID is assigned by the catalog when present; songs arriving without one get
// a locally generated id when inserted into the order.
type Song struct {
	Title          string   `json:"title"`
	ArtistNames    []string `json:"artist_names"`
	IDs            []string `json:"ids,omitempty"`
	Duration       int      `json:"duration,omitempty"` // seconds
	Quality        string   `json:"quality,omitempty"`
	AlbumName      string   `json:"album_name,omitempty"`
	Views          int64    `json:"views,omitempty"`
	Rank           int      `json:"rank,omitempty"`
	PublishDate    string   `json:"publish_date,omitempty"`
	SearchResult   string   `json:"search_result"`
	DownloadStatus string   `json:"download_status"`
	ID             string   `json:"id,omitempty"`
}

// GroupedSong is a [Song] placed in the order, tagged with its owning group
// and a display artist name (defaults to the tag for artist-type groups).
type GroupedSong struct {
	Song
	TagName    string `json:"tagName"`
	ArtistName string `json:"artistName"`
}

// GroupType distinguishes groups created from an artist request from free-form tags.
type GroupType string

const (
	GroupTypeArtist GroupType = "artist"
	GroupTypeGroup  GroupType = "group"
)

// SongGroup is a user-named ordered bucket of songs.
//
// Count is derived: it equals len(Songs) after every mutation, and a group
// whose count reaches zero is removed from the order entirely.
type SongGroup struct {
	Name  string        `json:"name"`
	Type  GroupType     `json:"type"`
	Songs []GroupedSong `json:"songs"`
	Count int           `json:"count"`
}

// SearchedArtist is one candidate from the artist-name search stream.
type SearchedArtist struct {
	ResultName   string `json:"result_name"`
	BrowseID     string `json:"browse_id"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// ArtistDetails holds the metadata fetched after an artist is selected.
type ArtistDetails struct {
	Names        []string `json:"names"`
	Description  string   `json:"description"`
	Subscribers  string   `json:"subscribers"`
	Views        string   `json:"views"`
	BrowseID     string   `json:"browse_id"`
	PlaylistID   string   `json:"playlist_id,omitempty"`
	AlbumsID     string   `json:"albums_id,omitempty"`
	AlbumsParams string   `json:"albums_params,omitempty"`
}

// DeliveryType selects how a fulfilled order reaches the customer.
type DeliveryType string

const (
	DeliveryDigitalLink DeliveryType = "DIGITAL_LINK"
	DeliveryPhysicalUSB DeliveryType = "PHYSICAL_USB"
)

// Valid reports whether d is one of the two known delivery types.
func (d DeliveryType) Valid() bool {
	return d == DeliveryDigitalLink || d == DeliveryPhysicalUSB
}

// OrderRequest is the payload POSTed to the order-creation endpoint.
type OrderRequest struct {
	PhoneNumber  string               `json:"phoneNumber"`
	DeliveryType DeliveryType         `json:"deliveryType"`
	SongGroups   map[string]SongGroup `json:"songGroups"`
}

// OrderConfirmation is the data block of a successful order-creation response.
type OrderConfirmation struct {
	TempID     string `json:"tempId"`
	TotalSongs int    `json:"totalSongs"`
	Price      int64  `json:"price"` // cents
}

// OrderResponse is the full order-creation response envelope.
type OrderResponse struct {
	Success bool               `json:"success"`
	Data    *OrderConfirmation `json:"data,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// TokenUser describes the authenticated customer returned by token validation.
type TokenUser struct {
	Phone     string `json:"phone"`
	Name      string `json:"name"`
	SessionID string `json:"session_id"`
	ExpiresAt string `json:"expires_at"`
}

// TokenValidation is the token-validation response envelope.
type TokenValidation struct {
	Valid bool       `json:"valid"`
	User  *TokenUser `json:"user,omitempty"`
	Error string     `json:"error,omitempty"`
}

// Receipt records the confirmation of one successfully submitted order.
type Receipt struct {
	id           string
	sequence     int
	orderTempID  string
	phoneNumber  string
	deliveryType DeliveryType
	totalSongs   int
	priceCents   int64
	createdAt    time.Time
	deletedAt    *time.Time
}

// NewReceipt builds an unsaved receipt from a confirmation and its submission context.
func NewReceipt(conf OrderConfirmation, phone string, delivery DeliveryType) *Receipt {
	return &Receipt{
		orderTempID:  conf.TempID,
		phoneNumber:  phone,
		deliveryType: delivery,
		totalSongs:   conf.TotalSongs,
		priceCents:   conf.Price,
		createdAt:    time.Now().UTC(),
	}
}

// RestoreReceipt rebuilds a receipt from its stored columns.
func RestoreReceipt(id string, sequence int, orderTempID, phone string, delivery DeliveryType, totalSongs int, priceCents int64, createdAt time.Time, deletedAt *time.Time) *Receipt {
	return &Receipt{
		id:           id,
		sequence:     sequence,
		orderTempID:  orderTempID,
		phoneNumber:  phone,
		deliveryType: delivery,
		totalSongs:   totalSongs,
		priceCents:   priceCents,
		createdAt:    createdAt,
		deletedAt:    deletedAt,
	}
}

func (r *Receipt) ID() string                { return r.id }
func (r *Receipt) SetID(id string)           { r.id = id }
func (r *Receipt) Sequence() int             { return r.sequence }
func (r *Receipt) SetSequence(seq int)       { r.sequence = seq }
func (r *Receipt) OrderTempID() string       { return r.orderTempID }
func (r *Receipt) PhoneNumber() string       { return r.phoneNumber }
func (r *Receipt) Delivery() DeliveryType    { return r.deliveryType }
func (r *Receipt) TotalSongs() int           { return r.totalSongs }
func (r *Receipt) PriceCents() int64         { return r.priceCents }
func (r *Receipt) CreatedAt() time.Time      { return r.createdAt }
func (r *Receipt) UpdatedAt() time.Time      { return r.createdAt }
func (r *Receipt) DeletedAt() *time.Time     { return r.deletedAt }
func (r *Receipt) SetDeletedAt(t *time.Time) { r.deletedAt = t }

// Validate checks the receipt's stored data before insertion.
func (r *Receipt) Validate() error {
	if r.id == "" {
		return fmt.Errorf("receipt id is empty")
	}
	if r.orderTempID == "" {
		return fmt.Errorf("order temp id is empty")
	}
	if !r.deliveryType.Valid() {
		return fmt.Errorf("unknown delivery type %q", r.deliveryType)
	}
	if r.totalSongs <= 0 {
		return fmt.Errorf("total songs must be positive, got %d", r.totalSongs)
	}
	return nil
}
