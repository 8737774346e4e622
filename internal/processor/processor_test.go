package processor

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/langpack/internal/config"
	"github.com/handiism/langpack/internal/conflict"
	"github.com/handiism/langpack/internal/model"
)

const input = "/exports/export.zip"

var fixedNow = func() time.Time { return time.Date(2026, time.March, 7, 10, 0, 0, 0, time.UTC) }

func zipBytes(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func zipContents(t *testing.T, fs afero.Fs, path string) map[string]string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	out := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		var b bytes.Buffer
		_, err = b.ReadFrom(rc)
		rc.Close()
		require.NoError(t, err)
		out[f.Name] = b.String()
	}
	return out
}

func testSettings() *config.Settings {
	s := config.DefaultSettings()
	s.LanguageMappings = config.Mappings{
		{Code: "en", Target: "A.json"},
		{Code: "tr", Target: "B.json"},
	}
	return s
}

type fixture struct {
	fs     afero.Fs
	events []ProgressEvent
}

func newFixture(t *testing.T, files map[string]string, existing ...string) *fixture {
	t.Helper()
	f := &fixture{fs: afero.NewMemMapFs()}
	require.NoError(t, afero.WriteFile(f.fs, input, zipBytes(t, files), 0644))
	for _, name := range existing {
		require.NoError(t, afero.WriteFile(f.fs, "/exports/"+name, []byte("existing"), 0644))
	}
	return f
}

func (f *fixture) processor(settings *config.Settings, provider conflict.DecisionProvider) *Processor {
	return New(settings,
		WithFs(f.fs),
		WithDecisionProvider(provider),
		WithClock(fixedNow),
		WithProgress(func(e ProgressEvent) { f.events = append(f.events, e) }),
	)
}

func (f *fixture) assertNoScratch(t *testing.T) {
	t.Helper()
	entries, err := afero.ReadDir(f.fs, os.TempDir())
	if err != nil {
		return
	}
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), scratchPrefix), "scratch left behind: %s", e.Name())
	}
}

var exportFiles = map[string]string{
	"en.json":        `{"hello":"Hello"}`,
	"tr.json":        `{"hello":"Merhaba"}`,
	"_metadata.json": `{"project":"demo"}`,
}

type panicProvider struct{}

func (panicProvider) Decide(context.Context, string) conflict.Resolution {
	panic("boom")
}

func TestProcess(t *testing.T) {
	f := newFixture(t, exportFiles)

	result := f.processor(testSettings(), conflict.FixedProvider(conflict.Cancel)).Process(context.Background(), input)

	require.True(t, result.Success, result.ErrorMessage)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, input, result.InputFile)
	assert.Equal(t, "/exports/lang_files_07_03.zip", result.OutputFile)
	assert.Equal(t, 2, result.ProcessedFilesCount())
	assert.False(t, result.UsedCounter)
	assert.Nil(t, result.CounterValue)
	assert.Equal(t, fixedNow(), result.Timestamp)

	assert.Equal(t, map[string]string{
		"A.json":         `{"hello":"Hello"}`,
		"B.json":         `{"hello":"Merhaba"}`,
		"_metadata.json": `{"project":"demo"}`,
	}, zipContents(t, f.fs, result.OutputFile))

	f.assertNoScratch(t)
	require.NotEmpty(t, f.events)
	assert.Equal(t, LevelSuccess, f.events[len(f.events)-1].Level)
}

func TestProcessConflictAddCounter(t *testing.T) {
	f := newFixture(t, exportFiles, "lang_files_07_03.zip")

	result := f.processor(testSettings(), conflict.FixedProvider(conflict.AddCounter)).Process(context.Background(), input)

	require.True(t, result.Success, result.ErrorMessage)
	assert.Equal(t, "/exports/lang_files_07_03_1.zip", result.OutputFile)
	assert.True(t, result.UsedCounter)
	require.NotNil(t, result.CounterValue)
	assert.Equal(t, 1, *result.CounterValue)

	data, err := afero.ReadFile(f.fs, "/exports/lang_files_07_03.zip")
	require.NoError(t, err)
	assert.Equal(t, "existing", string(data))
}

func TestProcessConflictNextCounter(t *testing.T) {
	f := newFixture(t, exportFiles, "lang_files_07_03.zip", "lang_files_07_03_1.zip", "lang_files_07_03_4.zip")

	result := f.processor(testSettings(), conflict.FixedProvider(conflict.AddCounter)).Process(context.Background(), input)

	require.True(t, result.Success, result.ErrorMessage)
	assert.Equal(t, "/exports/lang_files_07_03_5.zip", result.OutputFile)
	assert.Equal(t, 5, *result.CounterValue)
}

func TestProcessConflictOverwrite(t *testing.T) {
	f := newFixture(t, exportFiles, "lang_files_07_03.zip")

	result := f.processor(testSettings(), conflict.FixedProvider(conflict.Overwrite)).Process(context.Background(), input)

	require.True(t, result.Success, result.ErrorMessage)
	assert.Equal(t, "/exports/lang_files_07_03.zip", result.OutputFile)
	assert.False(t, result.UsedCounter)
	assert.Contains(t, zipContents(t, f.fs, result.OutputFile), "A.json")
}

func TestProcessConflictCancel(t *testing.T) {
	f := newFixture(t, exportFiles, "lang_files_07_03.zip")

	result := f.processor(testSettings(), conflict.FixedProvider(conflict.Cancel)).Process(context.Background(), input)

	assert.False(t, result.Success)
	assert.True(t, result.Cancelled())
	assert.Equal(t, model.MsgCancelled, result.ErrorMessage)
	assert.Empty(t, result.OutputFile)
	assert.Zero(t, result.ProcessedFilesCount())

	entries, err := afero.ReadDir(f.fs, "/exports")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	f.assertNoScratch(t)
}

func TestProcessInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	t.Run("at prompt", func(t *testing.T) {
		f := newFixture(t, exportFiles, "lang_files_07_03.zip")
		result := f.processor(testSettings(), conflict.FixedProvider(conflict.Cancel)).Process(ctx, input)
		assert.Equal(t, model.MsgCancelled, result.ErrorMessage)
		assert.True(t, result.Cancelled())
		f.assertNoScratch(t)
	})

	t.Run("without conflict", func(t *testing.T) {
		f := newFixture(t, exportFiles)
		result := f.processor(testSettings(), conflict.FixedProvider(conflict.Cancel)).Process(ctx, input)
		assert.Equal(t, model.MsgInterrupted, result.ErrorMessage)
		exists, _ := afero.Exists(f.fs, "/exports/lang_files_07_03.zip")
		assert.False(t, exists)
	})
}

func TestProcessNoLanguageFiles(t *testing.T) {
	f := newFixture(t, map[string]string{"fr.json": "{}", "_metadata.json": "{}"})

	result := f.processor(testSettings(), conflict.FixedProvider(conflict.Overwrite)).Process(context.Background(), input)

	assert.False(t, result.Success)
	assert.Equal(t, model.MsgNoLanguageFiles, result.ErrorMessage)
	exists, _ := afero.Exists(f.fs, "/exports/lang_files_07_03.zip")
	assert.False(t, exists)
	f.assertNoScratch(t)

	assert.Contains(t, f.events, ProgressEvent{Message: "export.zip contains 2 entries, 0 language file(s)", Level: LevelInfo})
	assert.Contains(t, f.events, ProgressEvent{Message: "No entry in export.zip matches a configured language code", Level: LevelWarning})
}

func TestProcessValidationFailures(t *testing.T) {
	t.Run("invalid configuration", func(t *testing.T) {
		f := newFixture(t, exportFiles)
		settings := testSettings()
		settings.LanguageMappings = nil

		result := f.processor(settings, conflict.FixedProvider(conflict.Overwrite)).Process(context.Background(), input)

		assert.False(t, result.Success)
		assert.True(t, strings.HasPrefix(result.ErrorMessage, model.MsgInvalidConfig), result.ErrorMessage)
	})

	t.Run("missing archive", func(t *testing.T) {
		f := newFixture(t, exportFiles)

		result := f.processor(testSettings(), conflict.FixedProvider(conflict.Overwrite)).Process(context.Background(), "/exports/missing.zip")

		assert.False(t, result.Success)
		assert.Equal(t, "Archive file not found: /exports/missing.zip", result.ErrorMessage)
	})

	t.Run("wrong extension", func(t *testing.T) {
		f := newFixture(t, exportFiles)
		require.NoError(t, afero.WriteFile(f.fs, "/exports/export.rar", []byte("x"), 0644))

		result := f.processor(testSettings(), conflict.FixedProvider(conflict.Overwrite)).Process(context.Background(), "/exports/export.rar")

		assert.Equal(t, "File must be a .zip archive", result.ErrorMessage)
	})
}

func TestProcessBackupOriginal(t *testing.T) {
	f := newFixture(t, exportFiles)
	settings := testSettings()
	settings.Options.BackupOriginal = true

	result := f.processor(settings, conflict.FixedProvider(conflict.Overwrite)).Process(context.Background(), input)

	require.True(t, result.Success, result.ErrorMessage)
	original, err := afero.ReadFile(f.fs, input)
	require.NoError(t, err)
	backup, err := afero.ReadFile(f.fs, input+".bak")
	require.NoError(t, err)
	assert.Equal(t, original, backup)
}

func TestProcessRecoversPanic(t *testing.T) {
	f := newFixture(t, exportFiles, "lang_files_07_03.zip")

	result := f.processor(testSettings(), panicProvider{}).Process(context.Background(), input)

	assert.False(t, result.Success)
	assert.Contains(t, result.ErrorMessage, "boom")
	assert.Equal(t, LevelError, f.events[len(f.events)-1].Level)
}

func TestProcessIdentityMapping(t *testing.T) {
	f := newFixture(t, map[string]string{"en.json": `{"a":1}`, "_metadata.json": "{}"})
	settings := testSettings()
	settings.LanguageMappings = config.Mappings{{Code: "en", Target: "en.json"}}

	result := f.processor(settings, conflict.FixedProvider(conflict.Overwrite)).Process(context.Background(), input)

	require.True(t, result.Success, result.ErrorMessage)
	assert.Equal(t, []model.FileOperation{model.NewRename("en.json", "en.json")}, result.FileOperations)
	assert.Equal(t, map[string]string{
		"en.json":        `{"a":1}`,
		"_metadata.json": "{}",
	}, zipContents(t, f.fs, result.OutputFile))
}
