package ioutils

import (
	"io"
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"
)

// CopyFile copies a file from source to destination.
//
// The destination file is created with mode 0644 if it doesn't exist,
// or truncated if it does. The source file must exist and be readable.
//
// Returns an error if:
//   - Source file cannot be opened
//   - Destination file cannot be created
//   - Copy operation fails
//
// Example:
//
//	err := CopyFile(fs, "/exports/export.zip", "/exports/export.zip.bak")
func CopyFile(fs afero.Fs, src, dst string) error {
	sourceFile, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := fs.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		destFile.Close()
		return err
	}
	return destFile.Close()
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(fs afero.Fs, dir string) error {
	return fs.MkdirAll(dir, 0755)
}

// Stem returns the base name of p without its final extension.
//
// Both "/" and "\" are treated as separators so archive entry names and
// OS paths give the same answer. A name that is only an extension, such
// as ".env", is returned unchanged.
//
// Example:
//
//	Stem("locales/en.json") // "en"
//	Stem("archive.tar.gz")  // "archive.tar"
//	Stem(".env")            // ".env"
func Stem(p string) string {
	base := path.Base(strings.ReplaceAll(p, "\\", "/"))
	ext := path.Ext(base)
	if ext == base {
		return base
	}
	return strings.TrimSuffix(base, ext)
}
