// Package conflict decides what happens when the output archive name is
// already taken.
//
// A DecisionProvider is asked once per conflict and returns one of three
// Resolutions. Providers never fail: an interrupted or exhausted input is
// reported as Cancel.
//
// LineProvider prompts on a plain text stream and FixedProvider answers
// with a preset resolution for scripted runs. The tui package supplies an
// interactive provider for terminals.
package conflict
