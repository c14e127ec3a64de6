package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/arf3lix/songorder/internal/shared"
)

func TestCatalogService(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		t.Run("With Nil Client", func(t *testing.T) {
			svc := NewCatalogService("http://example.com", nil, 0, nil)

			if svc.httpClient != http.DefaultClient {
				t.Error("expected http.DefaultClient to be used")
			}
			if svc.limiter == nil {
				t.Error("expected a rate limiter to be configured")
			}
		})
	})

	t.Run("SearchArtists", func(t *testing.T) {
		t.Run("Drains Stream Into Candidates", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/metube/search/artist" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				if got := r.URL.Query().Get("artist_name"); got != "juanes" {
					t.Errorf("expected artist_name=juanes, got %s", got)
				}
				io.WriteString(w, `{"result_name":"Juanes","browse_id":"UC1"}`+"\n")
				io.WriteString(w, `{"result_name":"Juan Gabriel","browse_id":"UC2"}`+"\n")
			}))
			defer server.Close()

			svc := NewCatalogService(server.URL, nil, 100, nil)
			artists, err := svc.SearchArtists(context.Background(), "juanes")

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(artists) != 2 {
				t.Fatalf("expected 2 artists, got %d", len(artists))
			}
			if artists[0].ResultName != "Juanes" || artists[1].BrowseID != "UC2" {
				t.Errorf("artists decoded incorrectly: %+v", artists)
			}
		})

		t.Run("Skips Malformed Records", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, `{"result_name":"Good","browse_id":"UC1"}`+"\n")
				io.WriteString(w, "{{{not json\n")
				io.WriteString(w, `{"result_name":"Also Good","browse_id":"UC2"}`+"\n")
			}))
			defer server.Close()

			svc := NewCatalogService(server.URL, nil, 100, nil)
			artists, err := svc.SearchArtists(context.Background(), "x")

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(artists) != 2 {
				t.Errorf("expected malformed line skipped, got %d artists", len(artists))
			}
		})

		t.Run("Non-2xx Surfaces Backend Message", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "catalog on fire", http.StatusBadGateway)
			}))
			defer server.Close()

			svc := NewCatalogService(server.URL, nil, 100, nil)
			_, err := svc.SearchArtists(context.Background(), "x")

			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Fatalf("expected ErrAPIRequest, got %v", err)
			}
			if !strings.Contains(err.Error(), "catalog on fire") {
				t.Errorf("expected backend message in error, got %v", err)
			}
		})
	})

	t.Run("ArtistDetails", func(t *testing.T) {
		t.Run("Last Well-Formed Record Wins", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, `{"names":["Stale"],"browse_id":"UC1"}`+"\n")
				io.WriteString(w, `{"names":["Juanes"],"browse_id":"UC1","playlist_id":"PL9"}`+"\n")
			}))
			defer server.Close()

			svc := NewCatalogService(server.URL, nil, 100, nil)
			details, err := svc.ArtistDetails(context.Background(), "UC1")

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if details.Names[0] != "Juanes" || details.PlaylistID != "PL9" {
				t.Errorf("expected last record, got %+v", details)
			}
		})

		t.Run("Empty Stream Is Not Found", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
			defer server.Close()

			svc := NewCatalogService(server.URL, nil, 100, nil)
			_, err := svc.ArtistDetails(context.Background(), "UC404")

			if !errors.Is(err, shared.ErrArtistNotFound) {
				t.Fatalf("expected ErrArtistNotFound, got %v", err)
			}
		})
	})

	t.Run("Stream Endpoints Hit The Right Paths", func(t *testing.T) {
		var gotPath, gotQuery string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.RawQuery
		}))
		defer server.Close()

		svc := NewCatalogService(server.URL, nil, 100, nil)
		ctx := context.Background()

		cases := []struct {
			name      string
			open      func() (io.ReadCloser, error)
			wantPath  string
			wantQuery string
		}{
			{"Hits", func() (io.ReadCloser, error) { return svc.ArtistHitsStream(ctx, "PL1") }, "/metube/artist/hits", "browse_id=PL1"},
			{"Discography", func() (io.ReadCloser, error) { return svc.DiscographyStream(ctx, "AL1", "p2") }, "/metube/artist/discography", "browse_id=AL1&params=p2"},
			{"Song", func() (io.ReadCloser, error) { return svc.SongSearchStream(ctx, "besame mucho", "consuelo") }, "/metube/search/song", "query=besame+mucho&artist=consuelo"},
			{"URL", func() (io.ReadCloser, error) { return svc.URLStream(ctx, "https://x.test/a?b=c") }, "/search/url", "url=https%3A%2F%2Fx.test%2Fa%3Fb%3Dc"},
			{"Prompt", func() (io.ReadCloser, error) { return svc.PromptStream(ctx, "sad songs") }, "/search/prompt", "prompt=sad+songs"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				body, err := tc.open()
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				body.Close()

				if gotPath != tc.wantPath {
					t.Errorf("expected path %s, got %s", tc.wantPath, gotPath)
				}
				if gotQuery != tc.wantQuery {
					t.Errorf("expected query %s, got %s", tc.wantQuery, gotQuery)
				}
			})
		}
	})
}
