package tui

import (
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/geoscope/internal/navigator"
)

// KeyMap binds terminal keys to navigator actions.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Confirm     key.Binding
	Back        key.Binding
	ToggleChart key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Confirm:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "drill down")),
		Back:        key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		ToggleChart: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "gdp chart")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// keymapFile is the on-disk override format. Omitted actions keep their
// default keys.
type keymapFile struct {
	Up          []string `yaml:"up"`
	Down        []string `yaml:"down"`
	Confirm     []string `yaml:"confirm"`
	Back        []string `yaml:"back"`
	ToggleChart []string `yaml:"toggle_chart"`
	Quit        []string `yaml:"quit"`
}

// LoadKeyMap reads key overrides from a YAML file with a top-level "keys"
// key. An empty path returns the defaults.
func LoadKeyMap(path string) (KeyMap, error) {
	km := DefaultKeyMap()
	if path == "" {
		return km, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return km, eris.Wrapf(err, "tui: read keymap %s", path)
	}

	var wrapper struct {
		Keys keymapFile `yaml:"keys"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return km, eris.Wrap(err, "tui: parse keymap")
	}

	f := wrapper.Keys
	rebind(&km.Up, f.Up)
	rebind(&km.Down, f.Down)
	rebind(&km.Confirm, f.Confirm)
	rebind(&km.Back, f.Back)
	rebind(&km.ToggleChart, f.ToggleChart)
	rebind(&km.Quit, f.Quit)
	return km, nil
}

func rebind(b *key.Binding, keys []string) {
	if len(keys) == 0 {
		return
	}
	b.SetKeys(keys...)
	b.SetHelp(keys[0], b.Help().Desc)
}

// Action maps a key press to a navigator action. Unbound keys yield
// ActionNone.
func (k KeyMap) Action(msg tea.KeyMsg) navigator.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return navigator.ActionQuit
	case key.Matches(msg, k.ToggleChart):
		return navigator.ActionToggleChart
	case key.Matches(msg, k.Up):
		return navigator.ActionUp
	case key.Matches(msg, k.Down):
		return navigator.ActionDown
	case key.Matches(msg, k.Confirm):
		return navigator.ActionConfirm
	case key.Matches(msg, k.Back):
		return navigator.ActionBack
	}
	return navigator.ActionNone
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Confirm, k.Back, k.ToggleChart, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Confirm, k.Back},
		{k.ToggleChart, k.Quit},
	}
}
