package grouping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyMove(t *testing.T) {
	seed := func() *Engine {
		e := newTestEngine()
		e.Insert(song("a", "A"), "one", "")
		e.Insert(song("b", "B"), "one", "")
		e.Insert(song("c", "C"), "two", "")
		return e
	}

	t.Run("Applies Exactly One Move", func(t *testing.T) {
		e := seed()

		moved := ApplyMove(e, &MoveCommand{
			SongID:      "a",
			SourceTag:   "one",
			SourceIndex: 0,
			DestTag:     "two",
			DestIndex:   0,
		})

		require.True(t, moved)
		g, _ := e.Group("two")
		assert.Equal(t, "a", g.Songs[0].ID)
	})

	t.Run("Nil Command Is Cancelled", func(t *testing.T) {
		e := seed()

		assert.False(t, ApplyMove(e, nil))
		assert.Equal(t, 3, e.TotalSongs())
	})

	t.Run("Missing Destination Is Cancelled", func(t *testing.T) {
		e := seed()

		moved := ApplyMove(e, &MoveCommand{SongID: "a", SourceTag: "one", DestTag: ""})

		assert.False(t, moved)
		g, _ := e.Group("one")
		assert.Len(t, g.Songs, 2)
	})

	t.Run("Dropping In Place Is A No Op", func(t *testing.T) {
		e := seed()

		moved := ApplyMove(e, &MoveCommand{
			SongID:      "b",
			SourceTag:   "one",
			SourceIndex: 1,
			DestTag:     "one",
			DestIndex:   1,
		})

		assert.False(t, moved)
	})
}
