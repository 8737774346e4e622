package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config path, relative to the executable's
// directory, used when no explicit path is given.
const DefaultConfigFile = "config/language_mappings.json"

// Compression level bounds accepted by the deflate writer.
const (
	MinCompressionLevel = -2
	MaxCompressionLevel = 9
)

// Sentinel errors returned by Load and Validate.
var (
	ErrConfigNotFound    = errors.New("configuration file not found")
	ErrUnsupportedFormat = errors.New("unsupported configuration format")
	ErrNoMappings        = errors.New("language_mappings must not be empty")
	ErrBlankMapping      = errors.New("language codes and target names must not be blank")
	ErrDuplicateCode     = errors.New("duplicate language code")
	ErrCompressionLevel  = errors.New("compression_level out of range")
)

// Settings holds all configuration options.
type Settings struct {
	// LanguageMappings maps source language codes to target file names.
	LanguageMappings Mappings `json:"language_mappings" yaml:"language_mappings"`

	// Options holds processing and output naming behavior.
	Options Options `json:"settings" yaml:"settings"`
}

// Options holds processing behavior flags.
type Options struct {
	CaseSensitive      bool         `json:"case_sensitive" yaml:"case_sensitive" toml:"case_sensitive"`
	PreserveExtensions bool         `json:"preserve_extensions" yaml:"preserve_extensions" toml:"preserve_extensions"`
	BackupOriginal     bool         `json:"backup_original" yaml:"backup_original" toml:"backup_original"`
	CompressionLevel   int          `json:"compression_level" yaml:"compression_level" toml:"compression_level"`
	OutputFormat       OutputFormat `json:"output_format" yaml:"output_format" toml:"output_format"`
}

// OutputFormat describes how the output archive is named:
// {BaseFilename}_{now formatted with DateFormat}[_{counter}]{Extension}.
type OutputFormat struct {
	// DateFormat is a strftime pattern, e.g. "%d_%m".
	DateFormat   string `json:"date_format" yaml:"date_format" toml:"date_format"`
	BaseFilename string `json:"base_filename" yaml:"base_filename" toml:"base_filename"`
	// Extension includes the leading dot.
	Extension string `json:"extension" yaml:"extension" toml:"extension"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		LanguageMappings: Mappings{
			{Code: "en", Target: "24c9b00d-d028-4e04-a1aa-f04d2dcae2c3.json"},
			{Code: "tr", Target: "26c7ace9-13fc-43b8-9988-2384fe670d03.json"},
		},
		Options: DefaultOptions(),
	}
}

// DefaultOptions returns the default processing options.
func DefaultOptions() Options {
	return Options{
		CaseSensitive:      false,
		PreserveExtensions: false,
		BackupOriginal:     false,
		CompressionLevel:   6,
		OutputFormat: OutputFormat{
			DateFormat:   "%d_%m",
			BaseFilename: "lang_files",
			Extension:    ".zip",
		},
	}
}

// DefaultPath returns DefaultConfigFile resolved against the executable's
// directory, or against the working directory if that cannot be determined.
func DefaultPath() string {
	exe, err := os.Executable()
	if err != nil {
		return DefaultConfigFile
	}
	return filepath.Join(filepath.Dir(exe), DefaultConfigFile)
}

// Load reads settings from a JSON, YAML or TOML file. Options missing from
// the file keep their defaults; a missing language_mappings key yields an
// empty table, which Validate rejects.
func Load(fs afero.Fs, path string) (*Settings, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("error reading configuration file: %w", err)
	}

	settings := &Settings{Options: DefaultOptions()}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", "":
		if err := json.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("invalid JSON in configuration file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("invalid YAML in configuration file: %w", err)
		}
	case ".toml":
		if err := decodeTOML(data, settings); err != nil {
			return nil, fmt.Errorf("invalid TOML in configuration file: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	return settings, nil
}

// LoadOrDefault loads settings from path, falling back to DefaultSettings
// when the file is missing or malformed. The returned error is a warning
// describing the fallback; settings are never nil.
func LoadOrDefault(fs afero.Fs, path string) (*Settings, error) {
	settings, err := Load(fs, path)
	if err != nil {
		return DefaultSettings(), fmt.Errorf("could not load configuration from %s: %w", path, err)
	}
	return settings, nil
}

// tomlSettings mirrors Settings for TOML, where the mapping table is read
// as a plain map and re-ordered from the decoder's key metadata.
type tomlSettings struct {
	LanguageMappings map[string]string `toml:"language_mappings"`
	Options          Options           `toml:"settings"`
}

func decodeTOML(data []byte, settings *Settings) error {
	raw := tomlSettings{Options: settings.Options}
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return err
	}

	var mappings Mappings
	for _, key := range md.Keys() {
		if len(key) == 2 && key[0] == "language_mappings" {
			mappings = append(mappings, Mapping{Code: key[1], Target: raw.LanguageMappings[key[1]]})
		}
	}

	settings.LanguageMappings = mappings
	settings.Options = raw.Options
	return nil
}

// Save writes settings to a file, choosing the format from its extension.
func (s *Settings) Save(fs afero.Fs, path string) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", "":
		data, err = json.MarshalIndent(s, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(s)
	case ".toml":
		data, err = s.encodeTOML()
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return err
	}

	return afero.WriteFile(fs, path, data, 0644)
}

// encodeTOML writes the settings table followed by the mapping table, one
// key at a time so the configured order survives.
func (s *Settings) encodeTOML() ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(struct {
		Options Options `toml:"settings"`
	}{s.Options}); err != nil {
		return nil, err
	}

	buf.WriteString("\n[language_mappings]\n")
	for _, m := range s.LanguageMappings {
		if err := toml.NewEncoder(&buf).Encode(map[string]string{m.Code: m.Target}); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// Validate checks that the mapping table is non-empty, every code and
// target is non-blank, codes are unique under the configured case rule and
// the compression level is one the deflate writer accepts.
func (s *Settings) Validate() error {
	if len(s.LanguageMappings) == 0 {
		return ErrNoMappings
	}

	seen := make(map[string]struct{}, len(s.LanguageMappings))
	for _, m := range s.LanguageMappings {
		if strings.TrimSpace(m.Code) == "" || strings.TrimSpace(m.Target) == "" {
			return ErrBlankMapping
		}
		key := s.matchKey(m.Code)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateCode, m.Code)
		}
		seen[key] = struct{}{}
	}

	level := s.Options.CompressionLevel
	if level < MinCompressionLevel || level > MaxCompressionLevel {
		return fmt.Errorf("%w: %d (use %d..%d)", ErrCompressionLevel, level, MinCompressionLevel, MaxCompressionLevel)
	}
	return nil
}

// TargetFor returns the target file name for a file stem. Codes are tried
// in configured order and the first match wins.
func (s *Settings) TargetFor(stem string) (string, bool) {
	for _, m := range s.LanguageMappings {
		if s.stemMatches(stem, m.Code) {
			return m.Target, true
		}
	}
	return "", false
}

// IsLanguageStem reports whether stem matches any configured code.
func (s *Settings) IsLanguageStem(stem string) bool {
	_, ok := s.TargetFor(stem)
	return ok
}

func (s *Settings) stemMatches(stem, code string) bool {
	return s.matchKey(stem) == s.matchKey(code)
}

// matchKey returns the form of a code or stem that matching compares.
func (s *Settings) matchKey(v string) string {
	if s.Options.CaseSensitive {
		return v
	}
	return cases.Fold().String(v)
}
