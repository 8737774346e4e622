// Package model defines the core data structures shared by the langpack
// pipeline.
//
// # ArchiveInfo
//
// ArchiveInfo is the outcome of validating one input archive:
//
//	info := archive.Validate(fs, "/exports/texterify.zip", settings)
//	if !info.IsValid {
//	    fmt.Println(info.ErrorMessage)
//	}
//	fmt.Println(info.FileCount, info.LanguageFiles)
//
// # FileOperation
//
// FileOperation records one rename performed inside the scratch directory:
//
//	op := model.NewRename("en.json", "24c9b00d-d028-4e04-a1aa-f04d2dcae2c3.json")
//
// # ProcessingResult
//
// ProcessingResult is created at the start of a run, filled in by the
// processor as stages complete and returned exactly once. A successful
// result always has an output file and at least one FileOperation.
package model
