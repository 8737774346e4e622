// Package archive validates, extracts and creates zip archives.
//
// Validate inspects an input archive without side effects and reports
// which entries are language files. Archiver extracts an archive into a
// scratch directory and packs a directory tree back into a new archive.
//
// Archiver methods report plain success or failure. The underlying cause of
// the most recent failure is kept and exposed through LastError so tests
// and verbose logging can see it without widening the contract.
package archive
