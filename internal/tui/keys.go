package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the monitor's key bindings. It implements help.KeyMap.
type KeyMap struct {
	Play        key.Binding
	StepBack    key.Binding
	StepForward key.Binding
	ZoomIn      key.Binding
	ZoomOut     key.Binding
	ResetZoom   key.Binding
	ScrollLeft  key.Binding
	ScrollRight key.Binding
	Home        key.Binding
	End         key.Binding
	Snap        key.Binding
	Magnet      key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Play:        key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		StepBack:    key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "frame back")),
		StepForward: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "frame fwd")),
		ZoomIn:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:     key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		ResetZoom:   key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset zoom")),
		ScrollLeft:  key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "scroll left")),
		ScrollRight: key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "scroll right")),
		Home:        key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "start")),
		End:         key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "end")),
		Snap:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "snapping")),
		Magnet:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "magnet")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns the bindings shown in the one-line help.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.StepBack, k.StepForward, k.ZoomIn, k.ZoomOut, k.Help, k.Quit}
}

// FullHelp returns all bindings, grouped into columns.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Play, k.StepBack, k.StepForward, k.Home, k.End},
		{k.ZoomIn, k.ZoomOut, k.ResetZoom, k.ScrollLeft, k.ScrollRight},
		{k.Snap, k.Magnet, k.Help, k.Quit},
	}
}
