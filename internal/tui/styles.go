package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/langpack/internal/model"
	"github.com/handiism/langpack/internal/processor"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500")).
			Bold(true)
)

// RenderEvent formats a progress event as one styled line.
func RenderEvent(event processor.ProgressEvent) string {
	var style lipgloss.Style
	prefix := "•"
	switch event.Level {
	case processor.LevelError:
		style = errorStyle
		prefix = "✗"
	case processor.LevelWarning:
		style = warningStyle
		prefix = "!"
	case processor.LevelSuccess:
		style = successStyle
		prefix = "✓"
	case processor.LevelInfo:
		style = infoStyle
		prefix = "›"
	default:
		style = dimStyle
	}
	return style.Render(prefix + " " + event.Message)
}

// RenderSummary formats a finished run as a bordered box.
func RenderSummary(result *model.ProcessingResult) string {
	if !result.Success {
		return errorStyle.Render("✗ Processing failed: " + result.ErrorMessage)
	}

	var b strings.Builder
	b.WriteString("Processing complete\n\n")
	b.WriteString(fmt.Sprintf("Output: %s\n", result.OutputFile))
	b.WriteString(fmt.Sprintf("Files renamed: %d", result.ProcessedFilesCount()))
	for _, op := range result.FileOperations {
		b.WriteString(fmt.Sprintf("\n  %s → %s", op.OriginalName, op.NewName))
	}
	if result.CounterValue != nil {
		b.WriteString(fmt.Sprintf("\nCounter: %d", *result.CounterValue))
	}
	return boxStyle.Render(b.String())
}
