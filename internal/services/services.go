// package services implements HTTP clients for the catalog, order, and auth backends.
//
// The catalog endpoints respond with newline-delimited JSON streams; methods
// here return the raw body stream and leave decoding to internal/stream so
// the session layer controls event ordering. Order creation and token
// validation are ordinary JSON request/response calls.
package services

import (
	"context"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// Streamer is the subset of [CatalogService] the session layer depends on.
type Streamer interface {
	// ArtistHitsStream opens the stream of hit events for an artist's hits playlist.
	ArtistHitsStream(ctx context.Context, playlistID string) (io.ReadCloser, error)

	// DiscographyStream opens the stream of an artist's discography songs.
	DiscographyStream(ctx context.Context, albumsID, params string) (io.ReadCloser, error)

	// SongSearchStream opens the stream of results for a song+artist text query.
	SongSearchStream(ctx context.Context, query, artist string) (io.ReadCloser, error)

	// URLStream opens the stream of songs ingested from a URL.
	URLStream(ctx context.Context, url string) (io.ReadCloser, error)

	// PromptStream opens the stream of songs matching a free-text description.
	PromptStream(ctx context.Context, prompt string) (io.ReadCloser, error)
}

// NewSessionClient builds an [http.Client] that attaches the validated session
// token as a bearer credential on every request.
//
// The token is opaque to us; wrapping it in a static [oauth2.TokenSource]
// reuses the oauth2 transport instead of hand-rolling header injection.
func NewSessionClient(ctx context.Context, token string, timeout time.Duration) *http.Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := oauth2.NewClient(ctx, src)
	client.Timeout = timeout
	return client
}
