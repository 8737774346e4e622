// Package output names the processed archive.
//
// Names have the form {base_filename}_{date}[_{counter}]{extension}, where
// date is the current time rendered with the configured strftime pattern.
// Only the counter-less name can conflict; counter-suffixed siblings only
// feed the next counter value.
//
// The counter is derived by scanning file names in the output directory
// (see NextCounter). Two runs writing to the same directory at the same
// time can compute the same counter; nothing locks the directory between
// the scan and the final rename.
package output
