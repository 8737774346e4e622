// Package ioutils provides file system utilities for langpack.
//
// This package contains functions for:
//   - Scratch directory acquisition and release
//   - File copying
//   - Directory creation
//   - File stem extraction
//
// All functions operate on an afero.Fs so callers can run against the OS
// file system in production and an in-memory file system in tests.
//
// # Scratch Directories
//
//	scratch, err := ioutils.NewScratch(fs, "langpack-")
//	if err != nil {
//	    return err
//	}
//	defer scratch.Release()
//	// extract into scratch.Path()
//
// # File Operations
//
//	// Copy a file
//	err := ioutils.CopyFile(fs, "/exports/export.zip", "/exports/export.zip.bak")
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir(fs, "/path/to/new/directory")
package ioutils
