package model

import "time"

// Messages the processor reports in ProcessingResult.ErrorMessage. Callers
// compare against these to tell outcomes apart.
const (
	MsgCancelled       = "Operation cancelled by user"
	MsgNoLanguageFiles = "No language files found to process"
	MsgExtractFailed   = "Failed to extract archive"
	MsgCreateFailed    = "Failed to create output archive"
	MsgInvalidConfig   = "Invalid configuration"
	MsgInterrupted     = "Operation interrupted"
)

// ProcessingResult is the aggregate outcome of one processing run.
type ProcessingResult struct {
	RunID          string
	Success        bool
	InputFile      string
	OutputFile     string
	FileOperations []FileOperation
	UsedCounter    bool
	CounterValue   *int
	Timestamp      time.Time
	ErrorMessage   string
}

// NewProcessingResult creates a failed-by-default result for input.
func NewProcessingResult(runID, input string, now time.Time) *ProcessingResult {
	return &ProcessingResult{
		RunID:     runID,
		InputFile: input,
		Timestamp: now,
	}
}

// ProcessedFilesCount returns the number of recorded file operations.
func (r *ProcessingResult) ProcessedFilesCount() int {
	return len(r.FileOperations)
}

// AddFileOperation appends an operation to the result.
func (r *ProcessingResult) AddFileOperation(op FileOperation) {
	r.FileOperations = append(r.FileOperations, op)
}

// Fail marks the result as failed with msg and returns it.
func (r *ProcessingResult) Fail(msg string) *ProcessingResult {
	r.Success = false
	r.ErrorMessage = msg
	return r
}

// Cancelled reports whether the run stopped because the user cancelled.
func (r *ProcessingResult) Cancelled() bool {
	return !r.Success && r.ErrorMessage == MsgCancelled
}
