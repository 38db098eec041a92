package modal

import (
	"github.com/charmbracelet/bubbles/key"

	"logpane/internal/app/ui/components"
)

// KeyMap defines the key bindings for the log modal
type KeyMap struct {
	components.KeyMap
	PrevPage    key.Binding
	NextPage    key.Binding
	FirstPage   key.Binding
	LastPage    key.Binding
	LevelUp     key.Binding
	LevelDown   key.Binding
	Level       key.Binding
	Reload      key.Binding
	Mark        key.Binding
	DeleteRange key.Binding
	DeleteUntil key.Binding
	DeleteAll   key.Binding
	Confirm     key.Binding
	Cancel      key.Binding
	ToggleTips  key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		KeyMap: components.DefaultKeyMap(),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h", "pgup"),
			key.WithHelp("←/h", "prev page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l", "pgdown"),
			key.WithHelp("→/l", "next page"),
		),
		FirstPage: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first"),
		),
		LastPage: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last"),
		),
		LevelUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+/-", "level"),
		),
		LevelDown: key.NewBinding(
			key.WithKeys("-", "_"),
		),
		Level: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5"),
			key.WithHelp("1-5", "min level"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Mark: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mark"),
		),
		DeleteRange: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete mark→cursor"),
		),
		DeleteUntil: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete to cursor"),
		),
		DeleteAll: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "delete all"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y", "enter"),
			key.WithHelp("y", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "cancel"),
		),
		ToggleTips: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "tips"),
		),
	}
}

// setDeletable enables or hides the deletion bindings
func (k *KeyMap) setDeletable(enabled bool) {
	k.Mark.SetEnabled(enabled)
	k.DeleteRange.SetEnabled(enabled)
	k.DeleteUntil.SetEnabled(enabled)
	k.DeleteAll.SetEnabled(enabled)
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PrevPage, k.NextPage, k.LevelUp, k.Reload, k.Mark, k.DeleteRange, k.DeleteUntil, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevPage, k.NextPage, k.FirstPage, k.LastPage},
		{k.LevelUp, k.Level, k.Reload, k.ToggleTips},
		{k.Mark, k.DeleteRange, k.DeleteUntil, k.DeleteAll},
		{k.Quit, k.ForceQuit},
	}
}

// confirmHelp is the key map shown while a delete waits for confirmation
type confirmHelp struct {
	keys KeyMap
}

func (c confirmHelp) ShortHelp() []key.Binding {
	return []key.Binding{c.keys.Confirm, c.keys.Cancel}
}

func (c confirmHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{c.ShortHelp()}
}
