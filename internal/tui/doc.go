// Package tui provides the terminal presentation for langpack.
//
// # Progress Output
//
// RenderEvent turns a processor.ProgressEvent into one styled line, with a
// prefix per level:
//
//	p := processor.New(settings, processor.WithProgress(func(e processor.ProgressEvent) {
//	    fmt.Println(tui.RenderEvent(e))
//	}))
//
// RenderSummary draws a bordered box for a successful run, or a single
// error line for a failed one.
//
// # Conflict Prompt
//
// Prompt is a conflict.DecisionProvider backed by a Bubble Tea program. It
// lists the three choices and accepts a digit, or arrow keys plus enter:
//
//	provider := tui.NewPrompt(os.Stdin, os.Stdout)
//	resolution := provider.Decide(ctx, "lang_files_07_03.zip")
//
// Esc, ctrl+c, q and a cancelled context all resolve to conflict.Cancel.
// Use the prompt only when stdin is a terminal; conflict.LineProvider
// covers piped input.
package tui
