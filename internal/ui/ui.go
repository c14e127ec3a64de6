package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/arf3lix/songorder/internal/formatter"
	"github.com/arf3lix/songorder/internal/grouping"
	"github.com/arf3lix/songorder/internal/models"
	"github.com/arf3lix/songorder/internal/order"
	"github.com/arf3lix/songorder/internal/services"
	"github.com/arf3lix/songorder/internal/session"
	"github.com/arf3lix/songorder/internal/shared"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	BuilderView ViewState = iota
	ArtistPickView
	ArtistDetailView
	PreviewView
	DeliveryView
	ReceiptView
	QuitConfirmView
)

// SearchType selects which streaming search the builder fires.
type SearchType int

const (
	SearchArtist SearchType = iota
	SearchSong
	SearchURL
	SearchPrompt
)

func (s SearchType) String() string {
	switch s {
	case SearchArtist:
		return "artist"
	case SearchSong:
		return "song"
	case SearchURL:
		return "url"
	case SearchPrompt:
		return "prompt"
	default:
		return "unknown"
	}
}

const pendingTickInterval = 250 * time.Millisecond

type artistsFoundMsg struct {
	seq     int
	artists []models.SearchedArtist
	err     error
}

type artistDetailsMsg struct {
	details *models.ArtistDetails
	err     error
}

type sessionDoneMsg struct {
	result session.Result
	err    error
}

type submitDoneMsg struct {
	confirmation *models.OrderConfirmation
	err          error
}

type pendingTickMsg time.Time

// position addresses one song in the rendered preview: group index in
// insertion order, then song index within the group.
type position struct {
	group int
	index int
}

// moveOrigin remembers the grabbed song while move mode is active.
type moveOrigin struct {
	songID    string
	sourceTag string
	sourceIdx int
}

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	view      ViewState
	prev      ViewState
	catalog   *services.CatalogService
	sessions  *session.Manager
	assembler *order.Assembler
	engine    *grouping.Engine
	phone     string
	logger    *log.Logger

	searchType SearchType
	inputs     []textinput.Model
	focus      int
	searchSeq  int

	artistList list.Model
	artists    []models.SearchedArtist
	selected   models.SearchedArtist
	details    *models.ArtistDetails

	groups []models.SongGroup
	cursor position
	moving *moveOrigin

	deliveryOpts []models.DeliveryType
	deliveryIdx  int
	confirmation *models.OrderConfirmation

	status string
	err    error
	width  int
	height int
	help   help.Model
	keys   keyMap
}

// NewModel creates a new TUI model with the provided dependencies. phone is
// the customer number the order will be submitted under.
func NewModel(ctx context.Context, catalog *services.CatalogService, sessions *session.Manager, assembler *order.Assembler, engine *grouping.Engine, phone string, logger *log.Logger) *Model {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	m := &Model{
		ctx:       ctx,
		view:      BuilderView,
		catalog:   catalog,
		sessions:  sessions,
		assembler: assembler,
		engine:    engine,
		phone:     phone,
		logger:    logger,
		help:      help.New(),
		keys:      newKeyMap(),
	}
	m.setInputs()
	return m
}

// Init starts the cursor blink for the builder inputs.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.artistList.Width() == 0 {
			m.artistList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case BuilderView:
			return m.handleBuilderKeys(msg)
		case ArtistPickView:
			return m.handleArtistPickKeys(msg)
		case ArtistDetailView:
			return m.handleArtistDetailKeys(msg)
		case PreviewView:
			return m.handlePreviewKeys(msg)
		case DeliveryView:
			return m.handleDeliveryKeys(msg)
		case ReceiptView:
			return m.handleReceiptKeys(msg)
		case QuitConfirmView:
			return m.handleQuitConfirmKeys(msg)
		}

	case artistsFoundMsg:
		// stale responses from superseded keystrokes are dropped
		if msg.seq != m.searchSeq {
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.artists = msg.artists
		return m, nil

	case artistDetailsMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = ArtistPickView
			return m, nil
		}
		m.err = nil
		m.details = msg.details
		m.view = ArtistDetailView
		return m, nil

	case sessionDoneMsg:
		m.refreshGroups()
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.status = fmt.Sprintf("%q done: %d added, %d replaced, %d skipped",
			msg.result.TagName, msg.result.Added, msg.result.Replaced, msg.result.Skipped)
		return m, nil

	case submitDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = PreviewView
			m.refreshGroups()
			return m, nil
		}
		m.err = nil
		m.confirmation = msg.confirmation
		m.refreshGroups()
		m.view = ReceiptView
		return m, nil

	case pendingTickMsg:
		m.refreshGroups()
		if m.sessions.Pending() > 0 {
			return m, m.tick()
		}
		return m, nil
	}

	return m.updateFocused(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case BuilderView:
		return m.renderBuilder()
	case ArtistPickView:
		return m.renderArtistPick()
	case ArtistDetailView:
		return m.renderArtistDetail()
	case PreviewView:
		return m.renderPreview()
	case DeliveryView:
		return m.renderDelivery()
	case ReceiptView:
		return m.renderReceipt()
	case QuitConfirmView:
		return m.renderQuitConfirm()
	default:
		return ""
	}
}

// setInputs rebuilds the builder's text inputs for the current search type.
func (m *Model) setInputs() {
	var labels []string
	switch m.searchType {
	case SearchArtist:
		labels = []string{"Artist name"}
	case SearchSong:
		labels = []string{"Song", "Artist", "Tag (optional)"}
	case SearchURL:
		labels = []string{"URL", "Tag (optional)"}
	case SearchPrompt:
		labels = []string{"Prompt", "Tag (optional)"}
	}

	m.inputs = make([]textinput.Model, len(labels))
	for i, label := range labels {
		in := textinput.New()
		in.Placeholder = label
		in.CharLimit = 200
		if i == 0 {
			in.Focus()
		}
		m.inputs[i] = in
	}
	m.focus = 0
	m.artists = nil
}

func (m *Model) handleBuilderKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m.maybeQuit()
	case key.Matches(msg, m.keys.cycle):
		m.searchType = (m.searchType + 1) % 4
		m.setInputs()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.tab):
		m.inputs[m.focus].Blur()
		m.focus = (m.focus + 1) % len(m.inputs)
		m.inputs[m.focus].Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.preview):
		m.refreshGroups()
		m.view = PreviewView
		return m, nil
	case key.Matches(msg, m.keys.enter):
		return m.fireSearch()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	// artist names search as you type; the catalog client rate-limits it
	if m.searchType == SearchArtist && m.focus == 0 {
		if q := strings.TrimSpace(m.inputs[0].Value()); q != "" {
			m.searchSeq++
			return m, tea.Batch(cmd, m.searchArtists(q, m.searchSeq))
		}
		m.artists = nil
	}
	return m, cmd
}

// fireSearch validates the builder inputs and launches the matching session.
func (m *Model) fireSearch() (tea.Model, tea.Cmd) {
	primary := strings.TrimSpace(m.inputs[0].Value())
	if primary == "" {
		m.err = fmt.Errorf("%w: %s", shared.ErrMissingArgument, m.inputs[0].Placeholder)
		return m, nil
	}
	m.err = nil

	if m.searchType == SearchArtist {
		if len(m.artists) == 0 {
			m.status = "no artists found yet"
			return m, nil
		}
		items := make([]list.Item, len(m.artists))
		for i, a := range m.artists {
			items[i] = artistItem{artist: a}
		}
		m.artistList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.artistList.Title = fmt.Sprintf("Artists matching '%s'", primary)
		m.artistList.SetSize(m.width-4, m.height-8)
		m.view = ArtistPickView
		return m, nil
	}

	tag := strings.TrimSpace(m.inputs[len(m.inputs)-1].Value())
	if tag == "" {
		tag = primary
	}

	var cmd tea.Cmd
	switch m.searchType {
	case SearchSong:
		artist := strings.TrimSpace(m.inputs[1].Value())
		cmd = m.runSession(func() (session.Result, error) {
			return m.sessions.SearchSong(m.ctx, primary, artist, tag)
		})
	case SearchURL:
		cmd = m.runSession(func() (session.Result, error) {
			return m.sessions.SearchURL(m.ctx, primary, tag)
		})
	case SearchPrompt:
		cmd = m.runSession(func() (session.Result, error) {
			return m.sessions.SearchPrompt(m.ctx, primary, tag)
		})
	}

	m.status = fmt.Sprintf("searching %s into %q...", m.searchType, tag)
	m.inputs[0].SetValue("")
	return m, cmd
}

func (m *Model) handleArtistPickKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m.maybeQuit()
	case "esc":
		m.view = BuilderView
		return m, textinput.Blink
	case "enter":
		if selected := m.artistList.SelectedItem(); selected != nil {
			if it, ok := selected.(artistItem); ok {
				m.selected = it.artist
				m.status = fmt.Sprintf("loading %s...", it.artist.ResultName)
				return m, m.fetchDetails(it.artist.BrowseID)
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.artistList, cmd = m.artistList.Update(msg)
	return m, cmd
}

func (m *Model) handleArtistDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "q" || msg.String() == "ctrl+c":
		return m.maybeQuit()
	case key.Matches(msg, m.keys.back):
		m.view = ArtistPickView
		return m, nil
	case key.Matches(msg, m.keys.hits):
		return m.requestHits()
	case key.Matches(msg, m.keys.discog):
		return m.requestDiscography()
	}
	return m, nil
}

func (m *Model) requestHits() (tea.Model, tea.Cmd) {
	if m.details == nil || m.details.PlaylistID == "" {
		m.err = fmt.Errorf("%w: artist has no hits playlist", shared.ErrNoHitsPlaylist)
		return m, nil
	}

	name := m.selected.ResultName
	playlistID := m.details.PlaylistID
	cmd := m.runSession(func() (session.Result, error) {
		return m.sessions.StreamHits(m.ctx, playlistID, name)
	})

	m.status = fmt.Sprintf("streaming hits for %s...", name)
	m.view = BuilderView
	m.setInputs()
	return m, tea.Batch(cmd, textinput.Blink)
}

func (m *Model) requestDiscography() (tea.Model, tea.Cmd) {
	if m.details == nil || m.details.AlbumsID == "" {
		m.err = fmt.Errorf("%w: artist has no discography", shared.ErrArtistNotFound)
		return m, nil
	}

	name := m.selected.ResultName
	albumsID, params := m.details.AlbumsID, m.details.AlbumsParams
	cmd := m.runSession(func() (session.Result, error) {
		return m.sessions.StreamDiscography(m.ctx, albumsID, params, name)
	})

	m.status = fmt.Sprintf("streaming discography for %s...", name)
	m.view = BuilderView
	m.setInputs()
	return m, tea.Batch(cmd, textinput.Blink)
}

func (m *Model) handlePreviewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m.maybeQuit()
	case key.Matches(msg, m.keys.back):
		if m.moving != nil {
			m.moving = nil
			return m, nil
		}
		m.view = BuilderView
		return m, textinput.Blink
	case key.Matches(msg, m.keys.preview):
		m.view = BuilderView
		return m, textinput.Blink
	case key.Matches(msg, m.keys.down):
		m.moveCursor(1)
		return m, nil
	case key.Matches(msg, m.keys.up):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, m.keys.delete):
		if m.moving != nil {
			return m, nil
		}
		if song, ok := m.songAtCursor(); ok {
			m.engine.DeleteByID(song.ID)
			m.refreshGroups()
		}
		return m, nil
	case key.Matches(msg, m.keys.delGrp):
		if m.moving != nil {
			return m, nil
		}
		if m.cursor.group < len(m.groups) {
			m.engine.DeleteGroup(m.groups[m.cursor.group].Name)
			m.refreshGroups()
		}
		return m, nil
	case key.Matches(msg, m.keys.move):
		if song, ok := m.songAtCursor(); ok && m.moving == nil {
			m.moving = &moveOrigin{
				songID:    song.ID,
				sourceTag: m.groups[m.cursor.group].Name,
				sourceIdx: m.cursor.index,
			}
		}
		return m, nil
	case key.Matches(msg, m.keys.enter):
		return m.commitMove()
	case key.Matches(msg, m.keys.submit):
		if m.moving != nil {
			return m, nil
		}
		return m.startSubmit()
	}
	return m, nil
}

// commitMove issues one atomic relocation from the grabbed origin to the
// cursor position, then leaves move mode.
func (m *Model) commitMove() (tea.Model, tea.Cmd) {
	if m.moving == nil {
		return m, nil
	}

	cmd := &grouping.MoveCommand{
		SongID:      m.moving.songID,
		SourceTag:   m.moving.sourceTag,
		SourceIndex: m.moving.sourceIdx,
		DestIndex:   m.cursor.index,
	}
	if m.cursor.group < len(m.groups) {
		cmd.DestTag = m.groups[m.cursor.group].Name
	}

	grouping.ApplyMove(m.engine, cmd)
	m.moving = nil
	m.refreshGroups()
	return m, nil
}

func (m *Model) startSubmit() (tea.Model, tea.Cmd) {
	if m.engine.TotalSongs() == 0 {
		m.err = shared.ErrEmptyOrder
		return m, nil
	}

	m.err = nil
	m.deliveryOpts = m.assembler.DeliveryOptions(m.phone)
	m.deliveryIdx = 0
	m.view = DeliveryView
	return m, nil
}

func (m *Model) handleDeliveryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m.maybeQuit()
	case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.no):
		m.view = PreviewView
		return m, nil
	case key.Matches(msg, m.keys.down):
		if m.deliveryIdx < len(m.deliveryOpts)-1 {
			m.deliveryIdx++
		}
		return m, nil
	case key.Matches(msg, m.keys.up):
		if m.deliveryIdx > 0 {
			m.deliveryIdx--
		}
		return m, nil
	case key.Matches(msg, m.keys.enter), key.Matches(msg, m.keys.yes):
		delivery := m.deliveryOpts[m.deliveryIdx]
		m.status = "submitting order..."
		return m, m.submit(delivery)
	}
	return m, nil
}

func (m *Model) handleReceiptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "n":
		m.confirmation = nil
		m.status = ""
		m.err = nil
		m.view = BuilderView
		m.setInputs()
		return m, textinput.Blink
	}
	return m, nil
}

func (m *Model) handleQuitConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		return m, tea.Quit
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.back):
		m.view = m.prev
		return m, nil
	}
	return m, nil
}

// maybeQuit quits immediately when the order is empty, otherwise asks first:
// unsubmitted songs are gone the moment the program exits.
func (m *Model) maybeQuit() (tea.Model, tea.Cmd) {
	if m.engine.TotalSongs() == 0 && m.sessions.Pending() == 0 {
		return m, tea.Quit
	}
	m.prev = m.view
	m.view = QuitConfirmView
	return m, nil
}

func (m *Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case BuilderView:
		if len(m.inputs) > 0 {
			m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		}
	case ArtistPickView:
		m.artistList, cmd = m.artistList.Update(msg)
	}
	return m, cmd
}

// refreshGroups re-reads the engine and clamps the preview cursor.
func (m *Model) refreshGroups() {
	m.groups = m.engine.Groups()

	if m.cursor.group >= len(m.groups) {
		m.cursor.group = len(m.groups) - 1
		m.cursor.index = 0
	}
	if m.cursor.group < 0 {
		m.cursor = position{}
		return
	}
	if max := len(m.groups[m.cursor.group].Songs) - 1; m.cursor.index > max {
		m.cursor.index = max
	}
	if m.cursor.index < 0 {
		m.cursor.index = 0
	}
}

// moveCursor walks the flattened song sequence across group boundaries.
func (m *Model) moveCursor(delta int) {
	if len(m.groups) == 0 {
		return
	}

	g, i := m.cursor.group, m.cursor.index+delta
	for i < 0 && g > 0 {
		g--
		i = len(m.groups[g].Songs) - 1
	}
	for g < len(m.groups) && i >= len(m.groups[g].Songs) {
		if g == len(m.groups)-1 {
			i = len(m.groups[g].Songs) - 1
			break
		}
		g++
		i = 0
	}
	if i < 0 {
		i = 0
	}
	m.cursor = position{group: g, index: i}
}

func (m *Model) songAtCursor() (models.GroupedSong, bool) {
	if m.cursor.group >= len(m.groups) {
		return models.GroupedSong{}, false
	}
	g := m.groups[m.cursor.group]
	if m.cursor.index >= len(g.Songs) {
		return models.GroupedSong{}, false
	}
	return g.Songs[m.cursor.index], true
}

func (m *Model) searchArtists(query string, seq int) tea.Cmd {
	return func() tea.Msg {
		artists, err := m.catalog.SearchArtists(m.ctx, query)
		return artistsFoundMsg{seq: seq, artists: artists, err: err}
	}
}

func (m *Model) fetchDetails(browseID string) tea.Cmd {
	return func() tea.Msg {
		details, err := m.catalog.ArtistDetails(m.ctx, browseID)
		return artistDetailsMsg{details: details, err: err}
	}
}

// runSession launches a streaming session in the background and starts the
// pending-badge tick alongside it.
func (m *Model) runSession(run func() (session.Result, error)) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			result, err := run()
			return sessionDoneMsg{result: result, err: err}
		},
		m.tick(),
	)
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(pendingTickInterval, func(t time.Time) tea.Msg {
		return pendingTickMsg(t)
	})
}

func (m *Model) submit(delivery models.DeliveryType) tea.Cmd {
	return func() tea.Msg {
		confirmation, err := m.assembler.Submit(m.ctx, delivery, m.phone)
		return submitDoneMsg{confirmation: confirmation, err: err}
	}
}

func (m *Model) header(title string) string {
	head := styles.title.Render(title)
	if n := m.sessions.Pending(); n > 0 {
		head += " " + styles.badge.Render(fmt.Sprintf("%d searching", n))
	}
	return head
}

func (m *Model) footer(bindings ...key.Binding) string {
	var parts []string
	if m.err != nil {
		parts = append(parts, styles.err.Render(fmt.Sprintf("error: %v", m.err)))
	}
	if m.status != "" {
		parts = append(parts, styles.help.Render(m.status))
	}
	parts = append(parts, m.help.ShortHelpView(bindings))
	return strings.Join(parts, "\n")
}

func (m *Model) renderBuilder() string {
	var b strings.Builder
	b.WriteString(m.header(fmt.Sprintf("Build Order — %s search", m.searchType)))
	b.WriteString("\n\n")

	for _, in := range m.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	if m.searchType == SearchArtist && len(m.artists) > 0 {
		b.WriteString(styles.help.Render(fmt.Sprintf("\n%d artists found, press enter to pick", len(m.artists))))
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("\n%s in order\n\n", styles.ok.Render(fmt.Sprintf("%d songs", m.engine.TotalSongs()))))
	b.WriteString(m.footer(m.keys.enter, m.keys.cycle, m.keys.tab, m.keys.preview))
	return b.String()
}

func (m *Model) renderArtistPick() string {
	return fmt.Sprintf("%s\n\n%s", m.artistList.View(), m.footer(m.keys.enter, m.keys.back, m.keys.quit))
}

func (m *Model) renderArtistDetail() string {
	if m.details == nil {
		return m.footer(m.keys.back)
	}

	var b strings.Builder
	b.WriteString(m.header(strings.Join(m.details.Names, ", ")))
	b.WriteString("\n\n")

	if m.details.Description != "" {
		b.WriteString(m.details.Description)
		b.WriteString("\n\n")
	}
	if m.details.Subscribers != "" {
		b.WriteString(fmt.Sprintf("Subscribers: %s\n", m.details.Subscribers))
	}
	if m.details.Views != "" {
		b.WriteString(fmt.Sprintf("Views: %s\n", m.details.Views))
	}

	b.WriteString("\n")
	if m.details.PlaylistID == "" {
		b.WriteString(styles.warn.Render("no hits playlist available"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.footer(m.keys.hits, m.keys.discog, m.keys.back, m.keys.quit))
	return b.String()
}

func (m *Model) renderPreview() string {
	var b strings.Builder
	b.WriteString(m.header(fmt.Sprintf("Order Preview — %d songs", m.engine.TotalSongs())))
	b.WriteString("\n\n")

	if len(m.groups) == 0 {
		b.WriteString(styles.help.Render("order is empty, switch back and search for songs"))
		b.WriteString("\n\n")
		b.WriteString(m.footer(m.keys.preview, m.keys.quit))
		return b.String()
	}

	for gi, g := range m.groups {
		b.WriteString(styles.group.Render(fmt.Sprintf("%s (%s, %d)", g.Name, g.Type, g.Count)))
		b.WriteString("\n")
		for si, song := range g.Songs {
			line := fmt.Sprintf("  %d. %s - %s", si+1, strings.Join(song.ArtistNames, ", "), song.Title)
			switch {
			case m.moving != nil && song.ID == m.moving.songID:
				line = styles.moving.Render(line)
			case gi == m.cursor.group && si == m.cursor.index:
				line = styles.cursor.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	if m.moving != nil {
		b.WriteString(styles.warn.Render("move mode: place the cursor, enter to drop, esc to cancel"))
		b.WriteString("\n")
		b.WriteString(m.footer(m.keys.up, m.keys.down, m.keys.enter, m.keys.back))
	} else {
		b.WriteString(m.footer(m.keys.delete, m.keys.delGrp, m.keys.move, m.keys.submit, m.keys.preview, m.keys.quit))
	}
	return b.String()
}

func (m *Model) renderDelivery() string {
	var b strings.Builder
	b.WriteString(m.header("Choose Delivery"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Submitting %d songs for %s\n\n", m.engine.TotalSongs(), m.phone))

	for i, opt := range m.deliveryOpts {
		line := fmt.Sprintf("  %s", opt)
		if i == m.deliveryIdx {
			line = styles.cursor.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.footer(m.keys.up, m.keys.down, m.keys.enter, m.keys.back))
	return b.String()
}

func (m *Model) renderReceipt() string {
	if m.confirmation == nil {
		return m.footer(m.keys.quit)
	}

	newOrder := key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new order"))
	return fmt.Sprintf("%s\n\nOrder: %s\nSongs: %d\nPrice: %s\n\n%s",
		styles.ok.Render("✓ Order Placed!"),
		m.confirmation.TempID,
		m.confirmation.TotalSongs,
		formatter.FormatPrice(m.confirmation.Price),
		m.footer(newOrder, m.keys.quit),
	)
}

func (m *Model) renderQuitConfirm() string {
	warning := fmt.Sprintf("You have %d unsubmitted songs", m.engine.TotalSongs())
	if n := m.sessions.Pending(); n > 0 {
		warning += fmt.Sprintf(" and %d searches still running", n)
	}

	return fmt.Sprintf("%s\n\n%s\n\nQuit anyway?\n\n%s",
		m.header("Quit?"),
		styles.warn.Render(warning),
		m.footer(m.keys.yes, m.keys.no),
	)
}
