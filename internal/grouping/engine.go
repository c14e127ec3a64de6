// package grouping implements the mutable grouped-song collection at the heart of an order.
//
// The [Engine] owns the only shared mutable state in the application: a
// mapping from tag name to an ordered [models.SongGroup]. Search sessions
// feed songs in from one side; the UI issues delete/move commands from the
// other; the submission assembler reads a snapshot at submit time. Every
// operation re-derives group counts and drops emptied groups, so the
// rendered aggregates can never drift from the underlying data.
package grouping

import (
	"sync"

	"github.com/arf3lix/songorder/internal/models"
	"github.com/arf3lix/songorder/internal/shared"
)

// Engine is the grouped-song store for one in-flight order.
//
// All operations are atomic: concurrent search sessions and UI commands
// serialize on one mutex, so no caller ever observes a partially-applied
// mutation. Tag insertion order is preserved for stable rendering and
// submission.
type Engine struct {
	mu     sync.Mutex
	groups map[string]*models.SongGroup
	tags   []string // insertion order of group names

	// newID mints ids for songs the catalog sent without one. Swappable in
	// tests; defaults to shared.GenerateID.
	newID func() string
}

// NewEngine creates an empty grouping engine.
func NewEngine() *Engine {
	return &Engine{
		groups: make(map[string]*models.SongGroup),
		newID:  shared.GenerateID,
	}
}

// Insert appends song to the group named tagName, creating the group if absent.
//
// artistName defaults to tagName; a group created with tagName equal to
// artistName is typed artist, anything else is a free-form group. Songs
// without an id get a synthetic one. Returns the stored entry.
func (e *Engine) Insert(song models.Song, tagName, artistName string) models.GroupedSong {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.insertLocked(song, tagName, artistName)
}

// ReplaceByID removes the song with oldID from every group it appears in,
// then appends newSong to the group named tagName.
//
// The replacement always lands at the end of its target group rather than at
// the removed song's position: replace is defined as delete-then-add.
func (e *Engine) ReplaceByID(oldID string, newSong models.Song, tagName, artistName string) models.GroupedSong {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.removeEverywhereLocked(oldID)
	return e.insertLocked(newSong, tagName, artistName)
}

// DeleteByID removes the song with the given id from whichever group holds
// it, dropping the group if it empties. Reports whether a song was removed;
// a miss is not an error.
func (e *Engine) DeleteByID(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.removeEverywhereLocked(id)
}

// DeleteGroup removes the group named tagName and all its songs.
func (e *Engine) DeleteGroup(tagName string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.groups[tagName]; !ok {
		return false
	}
	e.dropGroupLocked(tagName)
	return true
}

// Move relocates the song with the given id from sourceTag to destTag,
// inserting at destIndex in the destination's sequence (clamped to the valid
// range, interpreted post-removal). The destination group is created as a
// free-form group if absent. A same-group move to the song's current index is
// a no-op. Reports whether the collection changed.
func (e *Engine) Move(id, sourceTag, destTag string, destIndex int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	src, ok := e.groups[sourceTag]
	if !ok {
		return false
	}

	cur := -1
	for i, s := range src.Songs {
		if s.ID == id {
			cur = i
			break
		}
	}
	if cur < 0 {
		return false
	}
	if sourceTag == destTag && cur == destIndex {
		return false
	}

	moved := src.Songs[cur]
	src.Songs = append(src.Songs[:cur:cur], src.Songs[cur+1:]...)
	src.Count = len(src.Songs)
	if src.Count == 0 && sourceTag != destTag {
		e.dropGroupLocked(sourceTag)
	}

	dst, ok := e.groups[destTag]
	if !ok {
		dst = e.addGroupLocked(destTag, models.GroupTypeGroup)
	}

	if destIndex < 0 {
		destIndex = 0
	}
	if destIndex > len(dst.Songs) {
		destIndex = len(dst.Songs)
	}

	moved.TagName = destTag
	dst.Songs = append(dst.Songs, models.GroupedSong{})
	copy(dst.Songs[destIndex+1:], dst.Songs[destIndex:])
	dst.Songs[destIndex] = moved
	dst.Count = len(dst.Songs)

	return true
}

// Reset atomically empties the collection. Called after a successful submission.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.groups = make(map[string]*models.SongGroup)
	e.tags = nil
}

// TotalSongs returns the number of songs across all groups.
func (e *Engine) TotalSongs() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	total := 0
	for _, g := range e.groups {
		total += g.Count
	}
	return total
}

// TagNames returns the current group names in insertion order.
func (e *Engine) TagNames() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.tags...)
}

// Groups returns a deep copy of every group in insertion order.
func (e *Engine) Groups() []models.SongGroup {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]models.SongGroup, 0, len(e.tags))
	for _, tag := range e.tags {
		out = append(out, copyGroup(e.groups[tag]))
	}
	return out
}

// Snapshot returns a deep copy of the collection keyed by tag name, in the
// shape the order-creation endpoint expects.
func (e *Engine) Snapshot() map[string]models.SongGroup {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make(map[string]models.SongGroup, len(e.groups))
	for tag, g := range e.groups {
		out[tag] = copyGroup(g)
	}
	return out
}

// Group returns a deep copy of one group and whether it exists.
func (e *Engine) Group(tagName string) (models.SongGroup, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	g, ok := e.groups[tagName]
	if !ok {
		return models.SongGroup{}, false
	}
	return copyGroup(g), true
}

func (e *Engine) insertLocked(song models.Song, tagName, artistName string) models.GroupedSong {
	if artistName == "" {
		artistName = tagName
	}
	if song.ID == "" {
		song.ID = e.newID()
	}

	g, ok := e.groups[tagName]
	if !ok {
		gt := models.GroupTypeGroup
		if tagName == artistName {
			gt = models.GroupTypeArtist
		}
		g = e.addGroupLocked(tagName, gt)
	}

	entry := models.GroupedSong{Song: song, TagName: tagName, ArtistName: artistName}
	g.Songs = append(g.Songs, entry)
	g.Count = len(g.Songs)
	return entry
}

// removeEverywhereLocked deletes the song with the given id from every group,
// dropping any group it empties.
func (e *Engine) removeEverywhereLocked(id string) bool {
	removed := false
	for _, tag := range append([]string(nil), e.tags...) {
		g := e.groups[tag]
		kept := g.Songs[:0]
		for _, s := range g.Songs {
			if s.ID == id {
				removed = true
				continue
			}
			kept = append(kept, s)
		}
		g.Songs = kept
		g.Count = len(g.Songs)
		if g.Count == 0 {
			e.dropGroupLocked(tag)
		}
	}
	return removed
}

func (e *Engine) addGroupLocked(tagName string, gt models.GroupType) *models.SongGroup {
	g := &models.SongGroup{Name: tagName, Type: gt}
	e.groups[tagName] = g
	e.tags = append(e.tags, tagName)
	return g
}

func (e *Engine) dropGroupLocked(tagName string) {
	delete(e.groups, tagName)
	for i, t := range e.tags {
		if t == tagName {
			e.tags = append(e.tags[:i:i], e.tags[i+1:]...)
			break
		}
	}
}

func copyGroup(g *models.SongGroup) models.SongGroup {
	out := *g
	out.Songs = append([]models.GroupedSong(nil), g.Songs...)
	return out
}
