package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Item represents a selectable entry in the picker.
type Item struct {
	Label       string
	Description string
	Checked     bool
	Disabled    bool
}

// Picker is a multi-select list component. Disabled items are rendered but
// cannot be toggled.
type Picker struct {
	title     string
	items     []Item
	cursor    int
	width     int
	showHelp  bool
	keyMap    pickerKeyMap
	styles    pickerStyles
	submitted bool
	cancelled bool
}

type pickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	All    key.Binding
	None   key.Binding
	Submit key.Binding
	Quit   key.Binding
}

type pickerStyles struct {
	Title       lipgloss.Style
	Selected    lipgloss.Style
	Unselected  lipgloss.Style
	Disabled    lipgloss.Style
	Description lipgloss.Style
	Help        lipgloss.Style
}

func defaultPickerStyles() pickerStyles {
	return pickerStyles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginBottom(1),
		Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Unselected:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Disabled:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginLeft(4),
		Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1),
	}
}

func defaultPickerKeyMap() pickerKeyMap {
	return pickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "toggle"),
		),
		All: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select all"),
		),
		None: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "select none"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// NewPicker creates a new multi-select picker component.
func NewPicker(title string, items []Item) Picker {
	return Picker{
		title:    title,
		items:    items,
		cursor:   0,
		width:    60,
		showHelp: true,
		keyMap:   defaultPickerKeyMap(),
		styles:   defaultPickerStyles(),
	}
}

// WithWidth sets the width of the picker.
func (p Picker) WithWidth(width int) Picker {
	p.width = width
	return p
}

// WithShowHelp enables or disables the help text.
func (p Picker) WithShowHelp(show bool) Picker {
	p.showHelp = show
	return p
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keyMap.Up):
			if p.cursor > 0 {
				p.cursor--
			}
		case key.Matches(msg, p.keyMap.Down):
			if p.cursor < len(p.items)-1 {
				p.cursor++
			}
		case key.Matches(msg, p.keyMap.Toggle):
			if len(p.items) > 0 && !p.items[p.cursor].Disabled {
				p.items[p.cursor].Checked = !p.items[p.cursor].Checked
			}
		case key.Matches(msg, p.keyMap.All):
			for i := range p.items {
				if !p.items[i].Disabled {
					p.items[i].Checked = true
				}
			}
		case key.Matches(msg, p.keyMap.None):
			for i := range p.items {
				p.items[i].Checked = false
			}
		case key.Matches(msg, p.keyMap.Submit):
			p.submitted = true
			return p, tea.Quit
		case key.Matches(msg, p.keyMap.Quit):
			p.cancelled = true
			return p, tea.Quit
		}
	case tea.WindowSizeMsg:
		p.width = msg.Width
	}
	return p, nil
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(p.styles.Title.Render(p.title))
	b.WriteString("\n\n")

	for i, item := range p.items {
		cursor := "  "
		style := p.styles.Unselected
		symbol := "○"

		if item.Checked {
			symbol = "◉"
		}
		if item.Disabled {
			style = p.styles.Disabled
			symbol = "✗"
		}
		if i == p.cursor {
			cursor = ""
			if !item.Disabled {
				style = p.styles.Selected
			}
		}

		b.WriteString(cursor)
		b.WriteString(style.Render(symbol + " " + item.Label))
		b.WriteString("\n")

		if item.Description != "" {
			b.WriteString(p.styles.Description.Render(item.Description))
			b.WriteString("\n")
		}
	}

	if p.showHelp {
		b.WriteString(p.styles.Help.Render("\n↑/↓ navigate • space toggle • a all • n none • enter confirm • q quit"))
	}

	return b.String()
}

// Checked returns the labels of all checked items.
func (p Picker) Checked() []string {
	var out []string
	for _, item := range p.items {
		if item.Checked {
			out = append(out, item.Label)
		}
	}
	return out
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}

// Submitted returns true if the user confirmed the selection.
func (p Picker) Submitted() bool {
	return p.submitted
}
