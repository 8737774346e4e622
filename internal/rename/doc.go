// Package rename finds language files in an extracted archive tree and
// renames them to their configured target names.
//
// # Matching
//
// A file is a language file when its stem (base name without the final
// extension) matches a configured code. Codes are tried in configured order
// and the first match wins, so under case-insensitive matching "EN" and
// "en" resolve to whichever appears first in the table.
//
// # Renaming
//
// Matching files are renamed in place, inside their own directory:
//
//	renamer := rename.NewRenamer(fs, settings, logger)
//	ops := renamer.FindAndRename(scratch.Path())
//	for _, op := range ops {
//	    fmt.Printf("%s -> %s\n", op.OriginalName, op.NewName)
//	}
//
// With preserve_extensions set, a target without an extension keeps the
// source file's extension ("en.yaml" mapped to "english" becomes
// "english.yaml"). A file that already carries its target name is recorded
// without being touched.
//
// # Skipped Files
//
// A rename that would overwrite an existing file, or that fails on the
// file system, is skipped and not recorded. The cause is logged at debug
// level; FindAndRename itself never fails.
package rename
