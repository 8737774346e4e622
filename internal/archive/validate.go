package archive

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"

	"github.com/handiism/langpack/internal/config"
	ioutils "github.com/handiism/langpack/internal/io"
	"github.com/handiism/langpack/internal/model"
)

// Extension is the only accepted input archive extension.
const Extension = ".zip"

// Sentinel errors carried in model.ArchiveInfo.Err.
var (
	ErrNotFound    = errors.New("archive not found")
	ErrWrongFormat = errors.New("wrong archive format")
	ErrCorrupted   = errors.New("archive corrupted")
)

// Validate checks that path exists, has the .zip extension and passes a
// full integrity check (every entry is read and its CRC verified). On
// success it lists the entries whose stem matches a configured language
// code. Validate never modifies the file system.
func Validate(fs afero.Fs, path string, settings *config.Settings) *model.ArchiveInfo {
	info := &model.ArchiveInfo{Path: path}

	if _, err := fs.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fail(info, fmt.Sprintf("Archive file not found: %s", path), ErrNotFound)
		}
		return fail(info, fmt.Sprintf("Error validating archive: %v", err), err)
	}

	if strings.ToLower(filepath.Ext(path)) != Extension {
		return fail(info, "File must be a .zip archive", ErrWrongFormat)
	}

	f, err := fs.Open(path)
	if err != nil {
		return fail(info, fmt.Sprintf("Error validating archive: %v", err), err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return fail(info, fmt.Sprintf("Error validating archive: %v", err), err)
	}

	zr, err := zip.NewReader(f, st.Size())
	if err != nil {
		return fail(info, "Invalid zip file format", fmt.Errorf("%w: %v", ErrCorrupted, err))
	}

	if name, err := testEntries(zr); err != nil {
		return fail(info, "Archive is corrupted", fmt.Errorf("%w: entry %q: %v", ErrCorrupted, name, err))
	}

	info.FileCount = len(zr.File)
	for _, zf := range zr.File {
		if zf.FileInfo().IsDir() {
			continue
		}
		if settings.IsLanguageStem(ioutils.Stem(zf.Name)) {
			info.LanguageFiles = append(info.LanguageFiles, zf.Name)
		}
	}
	info.IsValid = true
	return info
}

// testEntries reads every entry to the end so the reader verifies its
// checksum. It returns the name of the first bad entry.
func testEntries(zr *zip.Reader) (string, error) {
	for _, zf := range zr.File {
		if zf.FileInfo().IsDir() {
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return zf.Name, err
		}
		_, err = io.Copy(io.Discard, rc)
		rc.Close()
		if err != nil {
			return zf.Name, err
		}
	}
	return "", nil
}

func fail(info *model.ArchiveInfo, msg string, err error) *model.ArchiveInfo {
	info.IsValid = false
	info.ErrorMessage = msg
	info.Err = err
	return info
}
