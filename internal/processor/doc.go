// Package processor runs the language pack pipeline for one archive.
//
// # Processor
//
// The Processor coordinates a single run:
//
//  1. Validate the configuration
//  2. Validate the input archive
//  3. Resolve an output name conflict, asking the DecisionProvider
//  4. Extract into a scratch directory
//  5. Rename language files to their target names
//  6. Back up the input archive (optional)
//  7. Pack the scratch directory into the output archive
//
// Each step short-circuits to a failed result. The scratch directory is
// removed on every path, panics included.
//
// # Basic Usage
//
//	p := processor.New(settings,
//	    processor.WithDecisionProvider(conflict.FixedProvider(conflict.AddCounter)),
//	    processor.WithProgress(func(event processor.ProgressEvent) {
//	        fmt.Println(event.Message)
//	    }),
//	)
//
//	result := p.Process(ctx, "/exports/texterify.zip")
//	if !result.Success {
//	    log.Fatal(result.ErrorMessage)
//	}
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// # Concurrency
//
// A run is synchronous and uses no goroutines of its own. Separate runs
// share nothing but the output directory; see package output for the
// counter race this implies.
package processor
