// Catalog client for the streaming search endpoints.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/arf3lix/songorder/internal/models"
	"github.com/arf3lix/songorder/internal/shared"
	"github.com/arf3lix/songorder/internal/stream"
	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

// CatalogService opens newline-delimited JSON streams from the catalog backend.
//
// Artist-name search is issued on every keystroke in the TUI, so it runs
// behind a rate limiter; the other endpoints fire once per explicit user
// action and are not limited.
type CatalogService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// NewCatalogService creates a catalog client for the given base URL.
//
// searchRate is the allowed artist search-as-you-type frequency in requests
// per second; client defaults to [http.DefaultClient].
func NewCatalogService(baseURL string, client *http.Client, searchRate float64, logger *log.Logger) *CatalogService {
	if client == nil {
		client = http.DefaultClient
	}
	if searchRate <= 0 {
		searchRate = 3.0
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &CatalogService{
		baseURL:    baseURL,
		httpClient: client,
		limiter:    rate.NewLimiter(rate.Limit(searchRate), 1),
		logger:     logger,
	}
}

// openStream performs a GET and hands back the raw body stream.
//
// Non-2xx responses are drained into the returned error so the caller sees
// the backend's message, not just a status code.
func (c *CatalogService) openStream(ctx context.Context, path string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, fmt.Errorf("%w: status %d: %s", shared.ErrAPIRequest, resp.StatusCode, string(body))
	}

	if resp.Body == nil {
		return nil, fmt.Errorf("%w: empty response body", shared.ErrAPIRequest)
	}

	return resp.Body, nil
}

// SearchArtists queries the artist-name search endpoint and drains its short
// stream into a slice of candidates. Waits on the rate limiter first, so
// keystroke-driven callers are throttled rather than flooding the backend.
func (c *CatalogService) SearchArtists(ctx context.Context, name string) ([]models.SearchedArtist, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := c.openStream(ctx, "/metube/search/artist?artist_name="+url.QueryEscape(name))
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var results []models.SearchedArtist
	err = stream.Records(ctx, body, func(line []byte) error {
		var artist models.SearchedArtist
		if err := json.Unmarshal(line, &artist); err != nil {
			c.logger.Warn("skipping malformed artist record", "err", err)
			return nil
		}
		results = append(results, artist)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}

// ArtistDetails fetches the metadata record for a selected artist.
//
// The endpoint streams like the others but effectively yields one record;
// the last well-formed line wins.
func (c *CatalogService) ArtistDetails(ctx context.Context, browseID string) (*models.ArtistDetails, error) {
	body, err := c.openStream(ctx, "/metube/artist?browse_id="+url.QueryEscape(browseID))
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var details *models.ArtistDetails
	err = stream.Records(ctx, body, func(line []byte) error {
		var d models.ArtistDetails
		if err := json.Unmarshal(line, &d); err != nil {
			c.logger.Warn("skipping malformed artist details record", "err", err)
			return nil
		}
		details = &d
		return nil
	})
	if err != nil {
		return nil, err
	}

	if details == nil {
		return nil, fmt.Errorf("%w: browse_id %s", shared.ErrArtistNotFound, browseID)
	}
	return details, nil
}

// ArtistHitsStream opens the hits stream for an artist's hits playlist. The
// stream emits full add/replace events, not just plain songs.
func (c *CatalogService) ArtistHitsStream(ctx context.Context, playlistID string) (io.ReadCloser, error) {
	return c.openStream(ctx, "/metube/artist/hits?browse_id="+url.QueryEscape(playlistID))
}

// DiscographyStream opens an artist's discography stream.
func (c *CatalogService) DiscographyStream(ctx context.Context, albumsID, params string) (io.ReadCloser, error) {
	return c.openStream(ctx, "/metube/artist/discography?browse_id="+url.QueryEscape(albumsID)+"&params="+url.QueryEscape(params))
}

// SongSearchStream opens the result stream for a song+artist text query.
func (c *CatalogService) SongSearchStream(ctx context.Context, query, artist string) (io.ReadCloser, error) {
	return c.openStream(ctx, "/metube/search/song?query="+url.QueryEscape(query)+"&artist="+url.QueryEscape(artist))
}

// URLStream opens the ingestion stream for a URL.
func (c *CatalogService) URLStream(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	return c.openStream(ctx, "/search/url?url="+url.QueryEscape(rawURL))
}

// PromptStream opens the result stream for a free-text prompt.
func (c *CatalogService) PromptStream(ctx context.Context, prompt string) (io.ReadCloser, error) {
	return c.openStream(ctx, "/search/prompt?prompt="+url.QueryEscape(prompt))
}

var _ Streamer = (*CatalogService)(nil)
