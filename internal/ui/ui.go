package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/uta/internal/formatter"
	"github.com/desertthunder/uta/internal/library"
	"github.com/desertthunder/uta/internal/models"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SongListView ViewState = iota
	SongDetailView
	RandomView
)

// sortCycle is the order the s key steps through.
var sortCycle = []library.SortKey{library.SortNone, library.SortTitle, library.SortArtist, library.SortScore}

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	view       ViewState
	collection *library.Collection
	width      int
	height     int
	songList   list.Model
	sortIdx    int
	selected   *models.Song
	picked     *models.Song
	err        error
	help       help.Model
	keys       keyMap
}

type songsLoadedMsg struct {
	err error
}

type favoriteToggledMsg struct {
	id  int64
	err error
}

// NewModel creates a new TUI model over the shared collection manager.
func NewModel(ctx context.Context, collection *library.Collection) *Model {
	return &Model{
		ctx:        ctx,
		view:       SongListView,
		collection: collection,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init initializes the TUI by loading the collection from the backend.
func (m *Model) Init() tea.Cmd {
	return m.loadSongs()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.songList.Width() == 0 {
			m.songList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case SongListView:
			return m.handleSongListKeys(msg)
		case SongDetailView:
			return m.handleDetailKeys(msg)
		case RandomView:
			return m.handleRandomKeys(msg)
		}

	case songsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.rebuildList()
		return m, nil

	case favoriteToggledMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.rebuildList()
		if m.selected != nil {
			if song, ok := m.collection.Get(msg.id); ok {
				m.selected = &song
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.view == SongListView {
		m.songList, cmd = m.songList.Update(msg)
	}
	return m, cmd
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case SongListView:
		return m.renderSongList()
	case SongDetailView:
		return m.renderDetail()
	case RandomView:
		return m.renderRandom()
	default:
		return ""
	}
}

func (m *Model) handleSongListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		if item, ok := m.songList.SelectedItem().(songItem); ok {
			song := item.song
			m.selected = &song
			m.view = SongDetailView
		}
		return m, nil
	case "f":
		if item, ok := m.songList.SelectedItem().(songItem); ok {
			return m, m.toggleFavorite(item.song.ID)
		}
		return m, nil
	case "s":
		m.sortIdx = (m.sortIdx + 1) % len(sortCycle)
		m.rebuildList()
		return m, nil
	case "r":
		m.picked = library.PickRandom(m.collection.Songs(), "")
		m.view = RandomView
		return m, nil
	}

	var cmd tea.Cmd
	m.songList, cmd = m.songList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.selected = nil
		m.view = SongListView
		return m, nil
	case "f":
		if m.selected != nil {
			return m, m.toggleFavorite(m.selected.ID)
		}
	}
	return m, nil
}

func (m *Model) handleRandomKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.picked = nil
		m.view = SongListView
		return m, nil
	case "r":
		m.picked = library.PickRandom(m.collection.Songs(), "")
		return m, nil
	}
	return m, nil
}

// rebuildList regenerates list items from the collection under the current sort,
// preserving the cursor position where possible.
func (m *Model) rebuildList() {
	query := library.Query{Sort: sortCycle[m.sortIdx]}
	songs := query.Apply(m.collection.Songs())
	items := make([]list.Item, len(songs))
	for i, song := range songs {
		items[i] = songItem{song: song}
	}

	index := m.songList.Index()
	m.songList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.songList.Title = m.listTitle()
	m.songList.SetSize(m.width-4, m.height-8)
	if index < len(items) {
		m.songList.Select(index)
	}
}

func (m *Model) listTitle() string {
	title := fmt.Sprintf("Repertoire (%d songs)", m.collection.Len())
	if sort := sortCycle[m.sortIdx]; sort != library.SortNone {
		title = fmt.Sprintf("%s • sorted by %s", title, sort)
	}
	return title
}

func (m *Model) loadSongs() tea.Cmd {
	return func() tea.Msg {
		return songsLoadedMsg{err: m.collection.Load(m.ctx)}
	}
}

func (m *Model) toggleFavorite(id int64) tea.Cmd {
	return func() tea.Msg {
		return favoriteToggledMsg{id: id, err: m.collection.ToggleFavorite(m.ctx, id)}
	}
}

func (m *Model) renderSongList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.favorite, m.keys.sort, m.keys.random, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.songList.View(), helpView)
}

func (m *Model) renderDetail() string {
	if m.selected == nil {
		m.view = SongListView
		return m.renderSongList()
	}
	song := *m.selected

	title := styles.title.Render(fmt.Sprintf("%s / %s", song.Title, song.Artist))

	score := "未採点"
	if song.Score != nil {
		score = fmt.Sprintf("%d点", *song.Score)
	}

	var favorite string
	if song.IsFavorite {
		favorite = styles.ok.Render("★ 得意曲")
	}

	tags := make([]string, len(song.Tags))
	for i, t := range song.Tags {
		tags[i] = t.Name
	}

	lines := []string{
		fmt.Sprintf("Key:      %s", formatter.KeyLabel(song.Key)),
		fmt.Sprintf("Score:    %s", score),
		fmt.Sprintf("Category: %s", song.Category),
		fmt.Sprintf("Machine:  %s", song.Machine),
		fmt.Sprintf("Tags:     %s", strings.Join(tags, ", ")),
	}
	if song.Memo != "" {
		lines = append(lines, fmt.Sprintf("Memo:     %s", song.Memo))
	}

	backKey := key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back"))
	helpKeys := []key.Binding{backKey, m.keys.favorite, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s\n\n%s", title, favorite, strings.Join(lines, "\n"), helpView)
}

func (m *Model) renderRandom() string {
	title := styles.title.Render("今日の一曲")

	var body string
	if m.picked == nil {
		body = styles.warn.Render("No songs in the repertoire yet.")
	} else {
		body = fmt.Sprintf("%s / %s\nKey: %s", m.picked.Title, m.picked.Artist, formatter.KeyLabel(m.picked.Key))
	}

	againKey := key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "pick again"))
	backKey := key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back"))
	helpKeys := []key.Binding{againKey, backKey, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s", title, body, helpView)
}
