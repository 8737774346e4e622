package output

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"
	"github.com/spf13/afero"

	"github.com/handiism/langpack/internal/config"
)

// Namer computes output archive names for one output directory.
type Namer struct {
	fs     afero.Fs
	format config.OutputFormat
	dir    string
	now    func() time.Time
}

// NewNamer creates a Namer for dir. A nil now uses time.Now.
func NewNamer(fs afero.Fs, format config.OutputFormat, dir string, now func() time.Time) *Namer {
	if now == nil {
		now = time.Now
	}
	return &Namer{fs: fs, format: format, dir: dir, now: now}
}

// Base returns {base_filename}_{date}.
func (n *Namer) Base() string {
	date, err := strftime.Format(n.format.DateFormat, n.now())
	if err != nil {
		// An unparsable pattern is used literally.
		date = n.format.DateFormat
	}
	return n.format.BaseFilename + "_" + date
}

// GenerateFilename returns the output file name, with the next free counter
// when useCounter is set.
func (n *Namer) GenerateFilename(useCounter bool) string {
	base := n.Base()
	if !useCounter {
		return base + n.format.Extension
	}
	return base + "_" + strconv.Itoa(NextCounter(n.fs, n.dir, base, n.format.Extension)) + n.format.Extension
}

// CheckConflict reports whether the counter-less output name already
// exists, along with that name.
func (n *Namer) CheckConflict() (bool, string) {
	name := n.GenerateFilename(false)
	exists, err := afero.Exists(n.fs, n.ResolvePath(name))
	return exists && err == nil, name
}

// ResolvePath joins filename onto the output directory.
func (n *Namer) ResolvePath(filename string) string {
	return filepath.Join(n.dir, filename)
}

// NextCounter scans dir for files named {base}_{N}{ext} and returns one
// more than the largest N, or 1 when there are none. Names whose last
// underscore segment is not an integer are ignored.
func NextCounter(fs afero.Fs, dir, base, ext string) int {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return 1
	}

	highest := 0
	prefix := base + "_"
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ext) {
			continue
		}
		if n, ok := ParseCounter(strings.TrimSuffix(name, ext)); ok && n > highest {
			highest = n
		}
	}
	return highest + 1
}

// ParseCounter returns the integer after the last underscore of stem.
func ParseCounter(stem string) (int, bool) {
	i := strings.LastIndex(stem, "_")
	if i < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(stem[i+1:])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
