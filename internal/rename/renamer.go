package rename

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/handiism/langpack/internal/config"
	ioutils "github.com/handiism/langpack/internal/io"
	"github.com/handiism/langpack/internal/model"
)

// Renamer renames files whose stem matches a configured language code.
type Renamer struct {
	fs       afero.Fs
	settings *config.Settings
	log      *zap.Logger
}

// NewRenamer creates a Renamer for the given settings.
func NewRenamer(fs afero.Fs, settings *config.Settings, log *zap.Logger) *Renamer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renamer{fs: fs, settings: settings, log: log}
}

// FindAndRename walks rootDir and renames every matching regular file in
// place. It returns one operation per successful rename, in walk order.
//
// A file whose rename fails is skipped and not recorded. This covers a
// target that already exists in the same directory, which happens when two
// files differ only in letter case and case-insensitive matching is on.
func (r *Renamer) FindAndRename(rootDir string) []model.FileOperation {
	files, err := r.collect(rootDir)
	if err != nil {
		r.log.Warn("walk failed", zap.String("root", rootDir), zap.Error(err))
	}

	var ops []model.FileOperation
	for _, path := range files {
		name := filepath.Base(path)
		target, ok := r.settings.TargetFor(ioutils.Stem(name))
		if !ok {
			continue
		}
		target = r.targetName(name, target)
		if target == name {
			// Already carries its target name.
			ops = append(ops, model.NewRename(name, target))
			continue
		}

		dest := filepath.Join(filepath.Dir(path), target)
		if exists, _ := afero.Exists(r.fs, dest); exists {
			r.log.Debug("rename skipped, target exists", zap.String("file", path), zap.String("target", target))
			continue
		}
		if err := r.fs.Rename(path, dest); err != nil {
			r.log.Debug("rename failed", zap.String("file", path), zap.Error(err))
			continue
		}

		ops = append(ops, model.NewRename(name, target))
	}
	return ops
}

// collect lists regular files up front so renames never disturb the walk.
func (r *Renamer) collect(rootDir string) ([]string, error) {
	var files []string
	err := afero.Walk(r.fs, rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func (r *Renamer) targetName(source, target string) string {
	if r.settings.Options.PreserveExtensions && filepath.Ext(target) == "" {
		return target + filepath.Ext(source)
	}
	return target
}
