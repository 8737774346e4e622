package model

import "path/filepath"

// ArchiveInfo describes the validation outcome for one input archive.
type ArchiveInfo struct {
	// Path is the archive path that was validated.
	Path string

	// IsValid is true when the archive exists, has the expected extension
	// and passed the integrity check.
	IsValid bool

	// FileCount is the total number of entries in the archive, directories
	// included.
	FileCount int

	// LanguageFiles lists the entry names whose stem matches a configured
	// language code.
	LanguageFiles []string

	// ErrorMessage is the user-facing reason validation failed.
	ErrorMessage string

	// Err is the sentinel-wrapped cause behind ErrorMessage, for errors.Is.
	Err error
}

// Name returns the archive file name.
func (a *ArchiveInfo) Name() string {
	return filepath.Base(a.Path)
}

// ParentDir returns the directory containing the archive.
func (a *ArchiveInfo) ParentDir() string {
	return filepath.Dir(a.Path)
}

// HasLanguageFiles reports whether any entry matched a language code.
func (a *ArchiveInfo) HasLanguageFiles() bool {
	return len(a.LanguageFiles) > 0
}
