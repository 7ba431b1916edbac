package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines shared key bindings across all views.
type KeyMap struct {
	Quit        key.Binding
	Refresh     key.Binding
	AllFeed     key.Binding // a
	Following   key.Binding // f
	Profile     key.Binding // u: author of the selected post
	OwnProfile  key.Binding // U
	Follow      key.Binding // F: only on another user's profile
	NextPage    key.Binding
	PrevPage    key.Binding
	NewEditor   key.Binding // p: compose via $EDITOR
	NewInline   key.Binding // P: compose via inline textarea
	Edit        key.Binding // e: edit own post (buffer)
	EditInline  key.Binding // E: edit own post (inline)
	Delete      key.Binding // d
	Like        key.Binding // l
	Confirm     key.Binding
	Cancel      key.Binding
	Up          key.Binding
	Down        key.Binding
	ToggleHints key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		AllFeed: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "all posts"),
		),
		Following: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "following"),
		),
		Profile: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "author profile"),
		),
		OwnProfile: key.NewBinding(
			key.WithKeys("U"),
			key.WithHelp("U", "my profile"),
		),
		Follow: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "follow/unfollow"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("n", "right"),
			key.WithHelp("n", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("b", "left"),
			key.WithHelp("b", "previous page"),
		),
		NewEditor: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "post ($EDITOR)"),
		),
		NewInline: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "post (inline)"),
		),
		Like: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "like"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit (buffer)"),
		),
		EditInline: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "edit (inline)"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "cancel"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		ToggleHints: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "keys"),
		),
	}
}
