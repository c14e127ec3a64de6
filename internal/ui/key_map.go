package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	back    key.Binding
	tab     key.Binding
	preview key.Binding
	cycle   key.Binding
	hits    key.Binding
	discog  key.Binding
	delete  key.Binding
	delGrp  key.Binding
	move    key.Binding
	submit  key.Binding
	yes     key.Binding
	no      key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		preview: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "builder/preview")),
		cycle:   key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "search type")),
		hits:    key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "request hits")),
		discog:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "request discography")),
		delete:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete song")),
		delGrp:  key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "delete group")),
		move:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move song")),
		submit:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "submit order")),
		yes:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.preview, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.tab, k.cycle, k.preview},
		{k.delete, k.delGrp, k.move, k.submit},
		{k.yes, k.no, k.quit},
	}
}
