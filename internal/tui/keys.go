package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap 終端介面的按鍵設定
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding

	// 搜尋框
	Search     key.Binding
	SearchDone key.Binding

	// 飲食標籤切換，索引對應 recipe.DietLabels
	Diet []key.Binding

	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap 預設按鍵，方向鍵與 j/k 皆可移動
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "backspace", "b"),
		key.WithHelp("esc/b", "back"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	SearchDone: key.NewBinding(
		key.WithKeys("enter", "esc"),
		key.WithHelp("enter/esc", "done"),
	),
	Diet: []key.Binding{
		key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "vegan")),
		key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "vegetarian")),
		key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "pescetarian")),
	},
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
	),
}

func (k KeyMap) listHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Search, k.Diet[0], k.Diet[1], k.Diet[2], k.Quit}
}

func (k KeyMap) detailHelp() []key.Binding {
	return []key.Binding{k.Back, k.Up, k.Down, k.Quit}
}

func (k KeyMap) searchHelp() []key.Binding {
	return []key.Binding{k.SearchDone}
}
