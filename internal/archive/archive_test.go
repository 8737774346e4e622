package archive

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/langpack/internal/config"
)

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(files[name]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
}

func readZip(t *testing.T, path string) map[string]string {
	t.Helper()

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	out := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		var buf bytes.Buffer
		_, err = buf.ReadFrom(rc)
		rc.Close()
		require.NoError(t, err)
		out[f.Name] = buf.String()
	}
	return out
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	fs := afero.NewOsFs()
	settings := config.DefaultSettings()

	good := filepath.Join(dir, "export.zip")
	writeZip(t, good, map[string]string{
		"en.json":        `{"hello":"world"}`,
		"nested/TR.json": `{"merhaba":"dunya"}`,
		"_metadata.json": `{}`,
	})

	info := Validate(fs, good, settings)
	require.True(t, info.IsValid, info.ErrorMessage)
	assert.Equal(t, 3, info.FileCount)
	assert.ElementsMatch(t, []string{"en.json", "nested/TR.json"}, info.LanguageFiles)

	settings.Options.CaseSensitive = true
	info = Validate(fs, good, settings)
	assert.Equal(t, []string{"en.json"}, info.LanguageFiles)
}

func TestValidateFailures(t *testing.T) {
	dir := t.TempDir()
	fs := afero.NewOsFs()

	txt := filepath.Join(dir, "export.txt")
	require.NoError(t, os.WriteFile(txt, []byte("not a zip"), 0644))

	garbage := filepath.Join(dir, "garbage.zip")
	require.NoError(t, os.WriteFile(garbage, []byte("definitely not a zip"), 0644))

	truncated := filepath.Join(dir, "truncated.zip")
	writeZip(t, truncated, map[string]string{"en.json": "some content that compresses"})
	data, err := os.ReadFile(truncated)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(truncated, data[:len(data)/2], 0644))

	tests := []struct {
		name    string
		path    string
		wantErr error
		wantMsg string
	}{
		{"missing", filepath.Join(dir, "missing.zip"), ErrNotFound, "Archive file not found: " + filepath.Join(dir, "missing.zip")},
		{"wrong extension", txt, ErrWrongFormat, "File must be a .zip archive"},
		{"not a zip", garbage, ErrCorrupted, "Invalid zip file format"},
		{"truncated", truncated, ErrCorrupted, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Validate(fs, tt.path, config.DefaultSettings())
			assert.False(t, info.IsValid)
			assert.ErrorIs(t, info.Err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, info.ErrorMessage)
			}
		})
	}
}

func TestValidateDetectsBadChecksum(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crc.zip")

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.CreateHeader(&zip.FileHeader{Name: "en.json", Method: zip.Store})
	require.NoError(t, err)
	_, err = w.Write([]byte("payload"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	data := buf.Bytes()
	i := bytes.Index(data, []byte("payload"))
	require.GreaterOrEqual(t, i, 0)
	data[i] = 'P'
	require.NoError(t, os.WriteFile(path, data, 0644))

	info := Validate(afero.NewOsFs(), path, config.DefaultSettings())
	assert.False(t, info.IsValid)
	assert.ErrorIs(t, info.Err, ErrCorrupted)
	assert.Equal(t, "Archive is corrupted", info.ErrorMessage)
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	fs := afero.NewOsFs()
	files := map[string]string{
		"en.json":             `{"a":1}`,
		"_metadata.json":      `{}`,
		"deep/nested/tr.json": `{"b":2}`,
	}

	src := filepath.Join(dir, "in.zip")
	writeZip(t, src, files)

	a := NewArchiver(fs, 9, nil)
	scratch := filepath.Join(dir, "scratch")
	require.True(t, a.Extract(src, scratch))
	assert.NoError(t, a.LastError())
	assert.FileExists(t, filepath.Join(scratch, "deep", "nested", "tr.json"))

	out := filepath.Join(dir, "out.zip")
	require.True(t, a.Create(scratch, out))
	assert.Equal(t, files, readZip(t, out))

	st, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), st.Mode().Perm())

	leftovers, err := filepath.Glob(filepath.Join(dir, ".out.zip.*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestCreateKeepsExistingOutputOnFailure(t *testing.T) {
	dir := t.TempDir()
	fs := afero.NewOsFs()

	out := filepath.Join(dir, "out.zip")
	require.NoError(t, os.WriteFile(out, []byte("previous"), 0644))

	a := NewArchiver(fs, 6, nil)
	assert.False(t, a.Create(filepath.Join(dir, "does-not-exist"), out))
	assert.Error(t, a.LastError())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))
}

func TestExtractRejectsEscapingEntries(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "evil.zip")
	writeZip(t, src, map[string]string{"../escape.json": "x"})

	a := NewArchiver(afero.NewOsFs(), 6, nil)
	assert.False(t, a.Extract(src, filepath.Join(dir, "scratch")))
	assert.Error(t, a.LastError())
	assert.NoFileExists(t, filepath.Join(dir, "escape.json"))
}

func TestSecureJoin(t *testing.T) {
	tests := []struct {
		name    string
		entry   string
		wantErr bool
	}{
		{"plain", "en.json", false},
		{"nested", "a/b/en.json", false},
		{"inner dotdot", "a/../en.json", false},
		{"parent", "../en.json", true},
		{"deep parent", "a/../../en.json", true},
		{"absolute", "/etc/passwd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := secureJoin("/scratch", tt.entry)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
