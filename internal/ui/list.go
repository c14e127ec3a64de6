package ui

import (
	"fmt"

	"github.com/arf3lix/songorder/internal/models"
	"github.com/charmbracelet/bubbles/list"
)

var _ list.Item = artistItem{}

// artistItem wraps [models.SearchedArtist] to implement [list.Item].
type artistItem struct {
	artist models.SearchedArtist
}

func (i artistItem) FilterValue() string { return i.artist.ResultName }
func (i artistItem) Title() string       { return i.artist.ResultName }
func (i artistItem) Description() string {
	if i.artist.BrowseID == "" {
		return "no browse id"
	}
	return fmt.Sprintf("browse id %s", i.artist.BrowseID)
}
