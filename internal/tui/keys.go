package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines key bindings.
type keyMap struct {
	Next        key.Binding
	Prev        key.Binding
	Shrink      key.Binding
	Grow        key.Binding
	ShrinkLarge key.Binding
	GrowLarge   key.Binding
	Home        key.Binding
	End         key.Binding
	Toggle      key.Binding
	Cancel      key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func newKeyMap(vertical bool) keyMap {
	back, fwd := "left", "right"
	backHelp, fwdHelp := "←", "→"
	if vertical {
		back, fwd = "up", "down"
		backHelp, fwdHelp = "↑", "↓"
	}
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next divider"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev divider"),
		),
		Shrink: key.NewBinding(
			key.WithKeys(back, "h", "k"),
			key.WithHelp(backHelp, "move back"),
		),
		Grow: key.NewBinding(
			key.WithKeys(fwd, "l", "j"),
			key.WithHelp(fwdHelp, "move forward"),
		),
		ShrinkLarge: key.NewBinding(
			key.WithKeys("shift+"+back, "H", "K"),
			key.WithHelp("shift+"+backHelp, "move back more"),
		),
		GrowLarge: key.NewBinding(
			key.WithKeys("shift+"+fwd, "L", "J"),
			key.WithHelp("shift+"+fwdHelp, "move forward more"),
		),
		Home: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "to start"),
		),
		End: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "to end"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "collapse"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel drag"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Shrink, k.Grow, k.Toggle, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Toggle},
		{k.Shrink, k.Grow, k.Cancel},
		{k.ShrinkLarge, k.GrowLarge, k.Help},
		{k.Home, k.End, k.Quit},
	}
}
