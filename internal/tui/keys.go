package tui

import (
	"charm.land/bubbles/v2/key"
	"github.com/thenoetrevino/flowboard/internal/config"
)

// keyMap holds the board bindings built from the configured key mappings
type keyMap struct {
	MoveLeft    key.Binding
	MoveRight   key.Binding
	View        key.Binding
	PrevColumn  key.Binding
	NextColumn  key.Binding
	PrevTask    key.Binding
	NextTask    key.Binding
	NextProject key.Binding
	PrevProject key.Binding
	Refresh     key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func newKeyMap(km config.KeyMappings) keyMap {
	return keyMap{
		MoveLeft: key.NewBinding(
			key.WithKeys(km.MoveTaskLeft),
			key.WithHelp(km.MoveTaskLeft, "move left"),
		),
		MoveRight: key.NewBinding(
			key.WithKeys(km.MoveTaskRight),
			key.WithHelp(km.MoveTaskRight, "move right"),
		),
		View: key.NewBinding(
			key.WithKeys(km.ViewTask),
			key.WithHelp(km.ViewTask, "details"),
		),
		PrevColumn: key.NewBinding(
			key.WithKeys(km.PrevColumn, "left"),
			key.WithHelp(km.PrevColumn, "prev column"),
		),
		NextColumn: key.NewBinding(
			key.WithKeys(km.NextColumn, "right"),
			key.WithHelp(km.NextColumn, "next column"),
		),
		PrevTask: key.NewBinding(
			key.WithKeys(km.PrevTask, "up"),
			key.WithHelp(km.PrevTask, "up"),
		),
		NextTask: key.NewBinding(
			key.WithKeys(km.NextTask, "down"),
			key.WithHelp(km.NextTask, "down"),
		),
		NextProject: key.NewBinding(
			key.WithKeys(km.NextProject),
			key.WithHelp(km.NextProject, "next project"),
		),
		PrevProject: key.NewBinding(
			key.WithKeys(km.PrevProject),
			key.WithHelp(km.PrevProject, "prev project"),
		),
		Refresh: key.NewBinding(
			key.WithKeys(km.Refresh),
			key.WithHelp(km.Refresh, "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys(km.ShowHelp),
			key.WithHelp(km.ShowHelp, "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys(km.Quit, "ctrl+c"),
			key.WithHelp(km.Quit, "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.MoveLeft, k.MoveRight, k.View, k.NextProject, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevColumn, k.NextColumn, k.PrevTask, k.NextTask},
		{k.MoveLeft, k.MoveRight, k.View},
		{k.NextProject, k.PrevProject, k.Refresh},
		{k.Help, k.Quit},
	}
}
