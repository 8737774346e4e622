// Package config provides configuration management for langpack.
//
// This package handles:
//   - Loading settings from JSON, YAML or TOML files
//   - Default configuration values
//   - Validation of the language mapping table
//   - Saving settings back to disk
//
// # Default Settings
//
// Use DefaultSettings() to get the built-in configuration:
//
//	settings := config.DefaultSettings()
//	// en -> 24c9b00d-d028-4e04-a1aa-f04d2dcae2c3.json
//	// tr -> 26c7ace9-13fc-43b8-9988-2384fe670d03.json
//	// Output: lang_files_<DD>_<MM>.zip
//
// # Loading from File
//
//	settings, warn := config.LoadOrDefault(fs, "/path/to/language_mappings.json")
//	if warn != nil {
//	    // Defaults are in use; warn explains why.
//	}
//
// The file format is chosen by extension (.json, .yaml/.yml, .toml). The
// order of language_mappings is preserved in every format because the
// first matching code wins when case-insensitive matching folds two codes
// together.
//
// # Validation
//
// Validate rejects an empty mapping table, blank codes or targets,
// duplicate codes and out-of-range compression levels. An invalid resolved
// configuration aborts a run before the filesystem is touched.
package config
