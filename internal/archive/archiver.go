package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	ioutils "github.com/handiism/langpack/internal/io"
)

// outputMode is the permission set on created archives.
const outputMode os.FileMode = 0644

// Archiver extracts and creates zip archives on an afero.Fs.
//
// Archiver is not safe for concurrent use; a run owns its Archiver.
type Archiver struct {
	fs      afero.Fs
	level   int
	log     *zap.Logger
	lastErr error
}

// NewArchiver creates an Archiver that writes deflate entries at the given
// compression level (-2..9, see the flate package).
func NewArchiver(fs afero.Fs, level int, log *zap.Logger) *Archiver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Archiver{fs: fs, level: level, log: log}
}

// LastError returns the cause of the most recent failed Extract or Create,
// or nil if the most recent call succeeded.
func (a *Archiver) LastError() error {
	return a.lastErr
}

// Extract materializes every entry of archivePath, nested directories
// included, under destDir. Entries that would resolve outside destDir make
// extraction fail.
func (a *Archiver) Extract(archivePath, destDir string) bool {
	return a.record("extract", archivePath, a.extract(archivePath, destDir))
}

// Create walks sourceDir and writes every regular file into a new zip at
// outputPath, named by its slash-separated path relative to sourceDir.
// Directory entries are not stored. The archive is written to a temporary
// file next to outputPath and renamed into place only on success, so a
// failure leaves any existing outputPath untouched.
func (a *Archiver) Create(sourceDir, outputPath string) bool {
	return a.record("create", outputPath, a.create(sourceDir, outputPath))
}

func (a *Archiver) record(op, path string, err error) bool {
	a.lastErr = err
	if err != nil {
		a.log.Debug("archive operation failed", zap.String("op", op), zap.String("path", path), zap.Error(err))
		return false
	}
	return true
}

func (a *Archiver) extract(archivePath, destDir string) error {
	f, err := a.fs.Open(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return err
	}

	zr, err := zip.NewReader(f, st.Size())
	if err != nil {
		return fmt.Errorf("open zip %s: %w", archivePath, err)
	}

	if err := ioutils.EnsureDir(a.fs, destDir); err != nil {
		return err
	}

	for _, zf := range zr.File {
		target, err := secureJoin(destDir, zf.Name)
		if err != nil {
			return err
		}

		if zf.FileInfo().IsDir() {
			if err := ioutils.EnsureDir(a.fs, target); err != nil {
				return err
			}
			continue
		}

		if err := a.extractFile(zf, target); err != nil {
			return fmt.Errorf("extract %s: %w", zf.Name, err)
		}
	}
	return nil
}

func (a *Archiver) extractFile(zf *zip.File, target string) error {
	if err := ioutils.EnsureDir(a.fs, filepath.Dir(target)); err != nil {
		return err
	}

	rc, err := zf.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	mode := zf.Mode().Perm()
	if mode == 0 {
		mode = 0644
	}

	out, err := a.fs.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func (a *Archiver) create(sourceDir, outputPath string) (err error) {
	tmp, err := afero.TempFile(a.fs, filepath.Dir(outputPath), "."+filepath.Base(outputPath)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			a.fs.Remove(tmpName)
		}
	}()

	zw := zip.NewWriter(tmp)
	level := a.level
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, level)
	})

	err = afero.Walk(a.fs, sourceDir, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}
		return a.addFile(zw, path, filepath.ToSlash(rel), info)
	})
	if err != nil {
		return err
	}

	if err = zw.Close(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	// Temp files are created owner-only.
	if err = a.fs.Chmod(tmpName, outputMode); err != nil {
		return err
	}
	return a.fs.Rename(tmpName, outputPath)
}

func (a *Archiver) addFile(zw *zip.Writer, path, name string, info os.FileInfo) error {
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = name
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}

	src, err := a.fs.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	_, err = io.Copy(w, src)
	return err
}

// secureJoin joins an archive entry name onto root, rejecting names that
// escape it.
func secureJoin(root, name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("unsafe entry path %q", name)
	}
	return filepath.Join(root, clean), nil
}
