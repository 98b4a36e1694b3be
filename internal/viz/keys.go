package viz

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Start     key.Binding
	Cancel    key.Binding
	Randomize key.Binding
	Edit      key.Binding
	Apply     key.Binding
	Back      key.Binding
	Next      key.Binding
	Prev      key.Binding
	Faster    key.Binding
	Slower    key.Binding
	Theme     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Cancel, k.Randomize, k.Edit, k.Next, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Cancel, k.Randomize, k.Quit},
		{k.Next, k.Prev, k.Faster, k.Slower},
		{k.Edit, k.Apply, k.Back},
		{k.Theme, k.Help},
	}
}

func defaultKeys() keyMap {
	return keyMap{
		Start:     key.NewBinding(key.WithKeys("s", " "), key.WithHelp("s", "start")),
		Cancel:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "cancel")),
		Randomize: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "random array")),
		Edit:      key.NewBinding(key.WithKeys("i", "e"), key.WithHelp("i", "edit input")),
		Apply:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply input")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel edit")),
		Next:      key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next algorithm")),
		Prev:      key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab/←", "prev algorithm")),
		Faster:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "faster")),
		Slower:    key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "slower")),
		Theme:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
