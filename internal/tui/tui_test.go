package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/langpack/internal/conflict"
	"github.com/handiism/langpack/internal/model"
	"github.com/handiism/langpack/internal/processor"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m PromptModel, msgs ...tea.Msg) (PromptModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(PromptModel)
	}
	return m, cmd
}

func assertQuit(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestPromptDigits(t *testing.T) {
	tests := []struct {
		key  string
		want conflict.Resolution
	}{
		{"1", conflict.Overwrite},
		{"2", conflict.AddCounter},
		{"3", conflict.Cancel},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m, cmd := press(t, NewPromptModel("x.zip"), runes(tt.key))
			got, done := m.Choice()
			assert.True(t, done)
			assert.Equal(t, tt.want, got)
			assertQuit(t, cmd)
		})
	}
}

func TestPromptCursor(t *testing.T) {
	m, cmd := press(t, NewPromptModel("x.zip"),
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyUp},
		tea.KeyMsg{Type: tea.KeyEnter},
	)

	got, done := m.Choice()
	assert.True(t, done)
	assert.Equal(t, conflict.AddCounter, got)
	assertQuit(t, cmd)
}

func TestPromptIgnoresInvalidKeys(t *testing.T) {
	m, cmd := press(t, NewPromptModel("x.zip"), runes("x"), runes("9"), tea.WindowSizeMsg{Width: 80, Height: 24})

	_, done := m.Choice()
	assert.False(t, done)
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "x.zip")
}

func TestPromptInterrupt(t *testing.T) {
	for _, msg := range []tea.KeyMsg{{Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		m, cmd := press(t, NewPromptModel("x.zip"), tea.KeyMsg{Type: tea.KeyDown}, msg)
		got, done := m.Choice()
		assert.True(t, done)
		assert.Equal(t, conflict.Cancel, got)
		assertQuit(t, cmd)
	}
}

func TestRenderEvent(t *testing.T) {
	assert.Contains(t, RenderEvent(processor.ProgressEvent{Message: "done", Level: processor.LevelSuccess}), "✓ done")
	assert.Contains(t, RenderEvent(processor.ProgressEvent{Message: "bad", Level: processor.LevelError}), "✗ bad")
}

func TestRenderSummary(t *testing.T) {
	r := &model.ProcessingResult{Success: true, OutputFile: "/out/lang_files_07_03.zip"}
	r.AddFileOperation(model.NewRename("en.json", "A.json"))

	out := RenderSummary(r)
	assert.Contains(t, out, "lang_files_07_03.zip")
	assert.Contains(t, out, "en.json → A.json")

	failed := (&model.ProcessingResult{}).Fail(model.MsgCancelled)
	assert.Contains(t, RenderSummary(failed), model.MsgCancelled)
}
