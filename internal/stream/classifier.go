package stream

import (
	"encoding/json"
	"fmt"

	"github.com/arf3lix/songorder/internal/models"
)

// Op is the mutation kind carried by a hits-stream event.
type Op string

const (
	OpAdd     Op = "add"
	OpReplace Op = "replace"
)

// Event is one classified record from a catalog stream.
//
// Exactly two kinds exist: [PlainSong] for records that are a bare catalog
// entry, and [Mutation] for structured add/replace instructions. The wire
// format carries no declared tag; discrimination is by the presence and value
// of the "action" field alone, which is the contract the backend actually
// honors.
type Event interface {
	streamEvent()
}

// PlainSong is a record that is a whole [models.Song], to be appended to the
// session's target group.
type PlainSong struct {
	Song models.Song
}

// Mutation is a structured instruction: add appends Song to the target group;
// replace first removes the song with ReplaceID from every group it appears
// in, then appends Song.
type Mutation struct {
	Op        Op
	ReplaceID string
	Song      models.Song
}

func (PlainSong) streamEvent() {}
func (Mutation) streamEvent()  {}

// wireEvent mirrors the mutation shape just enough to probe the action field.
type wireEvent struct {
	Action    string          `json:"action"`
	Song      json.RawMessage `json:"song"`
	ReplaceID string          `json:"replace_id"`
}

// Classify decodes one line into an [Event].
//
// Records whose action field is "add" or "replace" become a [Mutation]; any
// other record, including ones with an unrecognized action value, is treated
// as a [PlainSong]. Malformed JSON returns an error; callers log and skip the
// line without aborting the stream.
func Classify(line []byte) (Event, error) {
	var probe wireEvent
	if err := json.Unmarshal(line, &probe); err != nil {
		return nil, fmt.Errorf("malformed stream record: %w", err)
	}

	switch probe.Action {
	case string(OpAdd), string(OpReplace):
		var song models.Song
		if len(probe.Song) > 0 {
			if err := json.Unmarshal(probe.Song, &song); err != nil {
				return nil, fmt.Errorf("malformed song in %s event: %w", probe.Action, err)
			}
		}
		return Mutation{Op: Op(probe.Action), ReplaceID: probe.ReplaceID, Song: song}, nil
	default:
		var song models.Song
		if err := json.Unmarshal(line, &song); err != nil {
			return nil, fmt.Errorf("malformed song record: %w", err)
		}
		return PlainSong{Song: song}, nil
	}
}
