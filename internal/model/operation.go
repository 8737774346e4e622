package model

// OperationType identifies the kind of change applied to an extracted file.
type OperationType string

const (
	// OperationRename is a same-directory rename to the mapped target name.
	OperationRename OperationType = "rename"
)

// FileOperation is an immutable record of one change made during a run.
type FileOperation struct {
	// OriginalName is the base name of the file before the operation.
	OriginalName string

	// NewName is the base name of the file after the operation.
	NewName string

	// Type is the kind of operation performed.
	Type OperationType
}

// NewRename creates a rename FileOperation.
func NewRename(original, renamed string) FileOperation {
	return FileOperation{
		OriginalName: original,
		NewName:      renamed,
		Type:         OperationRename,
	}
}
