package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/uta/internal/formatter"
	"github.com/desertthunder/uta/internal/models"
)

var (
	_ list.Item = songItem{}
)

// songItem wraps [models.Song] to implement [list.Item].
type songItem struct {
	song models.Song
}

func (i songItem) FilterValue() string { return i.song.Title }
func (i songItem) Title() string {
	if i.song.IsFavorite {
		return fmt.Sprintf("★ %s", i.song.Title)
	}
	return i.song.Title
}
func (i songItem) Description() string {
	desc := fmt.Sprintf("%s • %s", i.song.Artist, formatter.KeyLabel(i.song.Key))
	if i.song.Score != nil {
		desc = fmt.Sprintf("%s • %d点", desc, *i.song.Score)
	}
	return desc
}
