package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/handiism/langpack/internal/conflict"
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c", "q"),
		key.WithHelp("esc", "cancel"),
	),
}

// PromptModel is the Bubble Tea model for the conflict prompt.
type PromptModel struct {
	existing string
	cursor   int
	choice   conflict.Resolution
	done     bool
}

// NewPromptModel creates a prompt for an existing output file name.
func NewPromptModel(existing string) PromptModel {
	return PromptModel{existing: existing, choice: conflict.Cancel}
}

// Choice returns the selected resolution and whether the user made one.
func (m PromptModel) Choice() (conflict.Resolution, bool) {
	return m.choice, m.done
}

// Init initializes the model.
func (m PromptModel) Init() tea.Cmd {
	return nil
}

// Update handles key presses. Digits select directly, arrows move the
// cursor, and anything unrecognized is ignored.
func (m PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Quit):
		return m.finish(conflict.Cancel)
	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(conflict.Choices)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keys.Select):
		return m.finish(conflict.Choices[m.cursor].Resolution)
	default:
		for _, c := range conflict.Choices {
			if keyMsg.String() == c.Key {
				return m.finish(c.Resolution)
			}
		}
	}
	return m, nil
}

func (m PromptModel) finish(r conflict.Resolution) (tea.Model, tea.Cmd) {
	m.choice = r
	m.done = true
	return m, tea.Quit
}

// View renders the prompt.
func (m PromptModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Output file already exists"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(m.existing))
	b.WriteString("\n\n")

	for i, c := range conflict.Choices {
		line := fmt.Sprintf("%s. %s", c.Key, c.Label)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("› " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("1-3: choose • ↑/↓: move • enter: select • esc: cancel"))
	b.WriteString("\n")

	return b.String()
}

// Prompt is a conflict.DecisionProvider backed by a Bubble Tea program.
type Prompt struct {
	in  io.Reader
	out io.Writer
}

// NewPrompt creates a Prompt that reads keys from in and draws on out.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: in, out: out}
}

// Decide implements conflict.DecisionProvider. A program error, including
// cancellation of ctx, yields conflict.Cancel.
func (p *Prompt) Decide(ctx context.Context, existing string) conflict.Resolution {
	program := tea.NewProgram(NewPromptModel(existing),
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)

	final, err := program.Run()
	if err != nil {
		return conflict.Cancel
	}

	m, ok := final.(PromptModel)
	if !ok {
		return conflict.Cancel
	}
	r, _ := m.Choice()
	return r
}
