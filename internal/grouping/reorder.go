package grouping

// MoveCommand is one reorder gesture, expressed as source and destination
// positions. The UI layer that produced the gesture is irrelevant here; by
// the time a command reaches the engine it is a plain value.
type MoveCommand struct {
	SongID      string
	SourceTag   string
	SourceIndex int
	DestTag     string
	DestIndex   int
}

// ApplyMove translates one gesture into at most one engine mutation.
//
// A nil command or one without a destination is a cancelled gesture and does
// nothing. A command whose destination equals its source position also does
// nothing. Everything else issues exactly one [Engine.Move]; the destination
// index is the final position in the destination sequence after removal.
func ApplyMove(e *Engine, cmd *MoveCommand) bool {
	if cmd == nil || cmd.DestTag == "" {
		return false
	}
	if cmd.SourceTag == cmd.DestTag && cmd.SourceIndex == cmd.DestIndex {
		return false
	}
	return e.Move(cmd.SongID, cmd.SourceTag, cmd.DestTag, cmd.DestIndex)
}
