package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/arf3lix/songorder/internal/formatter"
	"github.com/arf3lix/songorder/internal/models"
	"github.com/arf3lix/songorder/internal/session"
	"github.com/arf3lix/songorder/internal/shared"
	"github.com/urfave/cli/v3"
)

// SearchArtist searches artists by name. With --hits or --discography the top
// match's songs are streamed and printed in the requested format.
func (r *Runner) SearchArtist(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: artist name", shared.ErrMissingArgument)
	}

	artists, err := r.catalog.SearchArtists(ctx, name)
	if err != nil {
		return err
	}
	if len(artists) == 0 {
		return fmt.Errorf("%w: no artists matching %q", shared.ErrArtistNotFound, name)
	}

	hits := cmd.Bool("hits")
	discography := cmd.Bool("discography")

	if !hits && !discography {
		if cmd.Bool("json") {
			return r.writeJSON(artists, true)
		}
		for i, artist := range artists {
			r.writePlain("%2d. %s (%s)\n", i+1, artist.ResultName, artist.BrowseID)
		}
		return nil
	}

	top := artists[0]
	r.logger.Info("using top match", "artist", top.ResultName, "browse_id", top.BrowseID)

	details, err := r.catalog.ArtistDetails(ctx, top.BrowseID)
	if err != nil {
		return err
	}

	var result session.Result
	if hits {
		if details.PlaylistID == "" {
			return fmt.Errorf("%w: %s", shared.ErrNoHitsPlaylist, top.ResultName)
		}
		result, err = r.sessions.StreamHits(ctx, details.PlaylistID, top.ResultName)
	} else {
		if details.AlbumsID == "" {
			return fmt.Errorf("%w: %s has no discography", shared.ErrArtistNotFound, top.ResultName)
		}
		result, err = r.sessions.StreamDiscography(ctx, details.AlbumsID, details.AlbumsParams, top.ResultName)
	}
	if err != nil {
		return err
	}

	r.logger.Info("stream complete", "added", result.Added, "replaced", result.Replaced, "skipped", result.Skipped)
	return r.exportGroup(cmd, top.ResultName)
}

// SearchSong streams results for a song+artist text query.
func (r *Runner) SearchSong(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: song query", shared.ErrMissingArgument)
	}

	tag := cmd.String("tag")
	if tag == "" {
		tag = query
	}

	result, err := r.sessions.SearchSong(ctx, query, cmd.String("artist"), tag)
	if err != nil {
		return err
	}

	r.logger.Info("search complete", "added", result.Added, "skipped", result.Skipped)
	return r.exportGroup(cmd, tag)
}

// SearchURL streams songs ingested from a URL.
func (r *Runner) SearchURL(ctx context.Context, cmd *cli.Command) error {
	rawURL := cmd.StringArg("url")
	if rawURL == "" {
		return fmt.Errorf("%w: url", shared.ErrMissingArgument)
	}

	tag := cmd.String("tag")
	if tag == "" {
		tag = rawURL
	}

	result, err := r.sessions.SearchURL(ctx, rawURL, tag)
	if err != nil {
		return err
	}

	r.logger.Info("ingestion complete", "added", result.Added, "skipped", result.Skipped)
	return r.exportGroup(cmd, tag)
}

// SearchPrompt streams songs matching a free-text description.
func (r *Runner) SearchPrompt(ctx context.Context, cmd *cli.Command) error {
	prompt := cmd.StringArg("prompt")
	if prompt == "" {
		return fmt.Errorf("%w: prompt", shared.ErrMissingArgument)
	}

	tag := cmd.String("tag")
	if tag == "" {
		tag = prompt
	}

	result, err := r.sessions.SearchPrompt(ctx, prompt, tag)
	if err != nil {
		return err
	}

	r.logger.Info("search complete", "added", result.Added, "skipped", result.Skipped)
	return r.exportGroup(cmd, tag)
}

// exportGroup renders the named group's songs per the --format and --output flags.
func (r *Runner) exportGroup(cmd *cli.Command, tag string) error {
	group, ok := r.engine.Group(tag)
	if !ok {
		return r.writePlain("no songs found for %q\n", tag)
	}

	songs := make([]models.Song, len(group.Songs))
	for i, s := range group.Songs {
		songs[i] = s.Song
	}

	var data []byte
	var err error

	format := cmd.String("format")
	switch format {
	case "csv":
		data, err = formatter.SongsToCSV(songs)
	case "markdown", "md":
		data = formatter.SongsToMarkdown(tag, songs)
	case "json":
		data, err = json.MarshalIndent(songs, "", "  ")
		data = append(data, '\n')
	case "text", "":
		data = formatter.SongsToText(tag, songs)
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
	if err != nil {
		return err
	}

	if output := cmd.String("output"); output != "" {
		if err := os.WriteFile(output, data, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		return r.writePlain("saved %d songs to %s\n", len(songs), output)
	}

	_, err = r.output.Write(data)
	return err
}
