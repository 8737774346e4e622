package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/handiism/langpack/internal/model"
)

// Format represents supported report formats.
type Format int

const (
	// FormatText renders a human-readable summary.
	FormatText Format = iota

	// FormatJSON renders a machine-readable document.
	FormatJSON
)

// ParseFormat maps a format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("unknown report format %q", s)
	}
}

// Reporter renders processing results in one format.
type Reporter struct {
	format Format
}

// NewReporter creates a Reporter for format.
func NewReporter(format Format) *Reporter {
	return &Reporter{format: format}
}

// Render returns the report for result.
func (r *Reporter) Render(result *model.ProcessingResult) (string, error) {
	switch r.format {
	case FormatJSON:
		return r.renderJSON(result)
	default:
		return r.renderText(result), nil
	}
}

type operationDoc struct {
	Original string `json:"original"`
	New      string `json:"new"`
	Type     string `json:"type"`
}

type resultDoc struct {
	RunID          string         `json:"run_id"`
	Success        bool           `json:"success"`
	Timestamp      string         `json:"timestamp"`
	InputFile      string         `json:"input_file"`
	OutputFile     *string        `json:"output_file"`
	ProcessedFiles int            `json:"processed_files"`
	FileOperations []operationDoc `json:"file_operations"`
	UsedCounter    bool           `json:"used_counter"`
	CounterValue   *int           `json:"counter_value"`
	ErrorMessage   *string        `json:"error_message"`
}

func (r *Reporter) renderJSON(result *model.ProcessingResult) (string, error) {
	doc := resultDoc{
		RunID:          result.RunID,
		Success:        result.Success,
		Timestamp:      result.Timestamp.Format(time.RFC3339),
		InputFile:      result.InputFile,
		OutputFile:     optional(result.OutputFile),
		ProcessedFiles: result.ProcessedFilesCount(),
		FileOperations: make([]operationDoc, 0, len(result.FileOperations)),
		UsedCounter:    result.UsedCounter,
		CounterValue:   result.CounterValue,
		ErrorMessage:   optional(result.ErrorMessage),
	}
	for _, op := range result.FileOperations {
		doc.FileOperations = append(doc.FileOperations, operationDoc{
			Original: op.OriginalName,
			New:      op.NewName,
			Type:     string(op.Type),
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

func (r *Reporter) renderText(result *model.ProcessingResult) string {
	var b strings.Builder

	if !result.Success {
		fmt.Fprintf(&b, "Processing failed: %s\n", result.ErrorMessage)
		return b.String()
	}

	fmt.Fprintf(&b, "Processing completed successfully\n")
	fmt.Fprintf(&b, "Input:  %s\n", result.InputFile)
	fmt.Fprintf(&b, "Output: %s\n", result.OutputFile)
	fmt.Fprintf(&b, "Processed %d file(s):\n", result.ProcessedFilesCount())
	for _, op := range result.FileOperations {
		fmt.Fprintf(&b, "  %s -> %s\n", op.OriginalName, op.NewName)
	}
	if result.CounterValue != nil {
		fmt.Fprintf(&b, "Counter: %d\n", *result.CounterValue)
	}
	return b.String()
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
