// package session runs streaming search sessions against the catalog.
//
// One session is one in-flight search operation: it owns the HTTP stream,
// decodes and classifies records in arrival order, and forwards them into
// the grouping sink. Sessions are logically concurrent — the user can fire a
// song search while an artist's hits are still draining — but each session
// applies its own events strictly in decode order, and the sink serializes
// mutations across sessions.
package session

import (
	"context"
	"fmt"
	"io"

	"github.com/arf3lix/songorder/internal/models"
	"github.com/arf3lix/songorder/internal/services"
	"github.com/arf3lix/songorder/internal/shared"
	"github.com/arf3lix/songorder/internal/stream"
	"github.com/charmbracelet/log"
)

// Sink receives classified events from sessions. Implemented by
// [grouping.Engine].
type Sink interface {
	Insert(song models.Song, tagName, artistName string) models.GroupedSong
	ReplaceByID(oldID string, song models.Song, tagName, artistName string) models.GroupedSong
}

// Result summarizes what one completed session contributed.
type Result struct {
	TagName  string
	Added    int
	Replaced int
	Skipped  int // malformed lines dropped without aborting the stream
}

// Manager starts sessions and keeps the pending counter honest.
type Manager struct {
	catalog services.Streamer
	sink    Sink
	counter *Counter
	logger  *log.Logger
}

// NewManager creates a session manager forwarding into sink.
func NewManager(catalog services.Streamer, sink Sink, counter *Counter, logger *log.Logger) *Manager {
	if counter == nil {
		counter = &Counter{}
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Manager{catalog: catalog, sink: sink, counter: counter, logger: logger}
}

// Pending returns the number of sessions currently in flight.
func (m *Manager) Pending() int {
	return m.counter.Pending()
}

// StreamHits drains an artist's hits stream into the group named after the
// artist. This is the only session kind that honors replace events.
func (m *Manager) StreamHits(ctx context.Context, playlistID, artistName string) (Result, error) {
	return m.run(ctx, artistName, artistName, true, func() (io.ReadCloser, error) {
		return m.catalog.ArtistHitsStream(ctx, playlistID)
	})
}

// StreamDiscography drains an artist's discography stream into the artist's group.
func (m *Manager) StreamDiscography(ctx context.Context, albumsID, params, artistName string) (Result, error) {
	return m.run(ctx, artistName, artistName, false, func() (io.ReadCloser, error) {
		return m.catalog.DiscographyStream(ctx, albumsID, params)
	})
}

// SearchSong drains a song+artist text search into the user's tag group.
func (m *Manager) SearchSong(ctx context.Context, query, artist, tagName string) (Result, error) {
	return m.run(ctx, tagName, artist, false, func() (io.ReadCloser, error) {
		return m.catalog.SongSearchStream(ctx, query, artist)
	})
}

// SearchURL drains a URL ingestion into the user's tag group.
func (m *Manager) SearchURL(ctx context.Context, url, tagName string) (Result, error) {
	return m.run(ctx, tagName, tagName, false, func() (io.ReadCloser, error) {
		return m.catalog.URLStream(ctx, url)
	})
}

// SearchPrompt drains a free-text prompt search into the user's tag group.
func (m *Manager) SearchPrompt(ctx context.Context, prompt, tagName string) (Result, error) {
	return m.run(ctx, tagName, tagName, false, func() (io.ReadCloser, error) {
		return m.catalog.PromptStream(ctx, prompt)
	})
}

// run is the shared session body: acquire the counter, open the stream,
// forward classified events until end of stream or failure.
//
// The counter release is deferred, so transport failures and handler panics
// decrement exactly as completions do. Events forwarded before a failure
// stay applied; the error only marks the session itself as failed.
func (m *Manager) run(ctx context.Context, tagName, artistName string, allowMutations bool, open func() (io.ReadCloser, error)) (Result, error) {
	release := m.counter.Acquire()
	defer release()

	res := Result{TagName: tagName}

	if tagName == "" {
		return res, fmt.Errorf("%w: tag name", shared.ErrMissingArgument)
	}

	body, err := open()
	if err != nil {
		return res, err
	}
	defer body.Close()

	err = stream.Records(ctx, body, func(line []byte) error {
		event, err := stream.Classify(line)
		if err != nil {
			res.Skipped++
			m.logger.Warn("skipping malformed stream line", "tag", tagName, "err", err)
			return nil
		}

		switch ev := event.(type) {
		case stream.PlainSong:
			m.sink.Insert(ev.Song, tagName, artistName)
			res.Added++
		case stream.Mutation:
			if !allowMutations {
				m.logger.Debug("ignoring mutation event on plain-song stream", "tag", tagName, "op", ev.Op)
				return nil
			}
			switch {
			case ev.Op == stream.OpAdd:
				m.sink.Insert(ev.Song, tagName, artistName)
				res.Added++
			case ev.Op == stream.OpReplace && ev.ReplaceID != "":
				m.sink.ReplaceByID(ev.ReplaceID, ev.Song, tagName, artistName)
				res.Replaced++
			default:
				res.Skipped++
				m.logger.Warn("replace event without replace_id", "tag", tagName)
			}
		}
		return nil
	})
	if err != nil {
		return res, fmt.Errorf("stream for %q failed: %w", tagName, err)
	}

	return res, nil
}
