// Package report renders a ProcessingResult for people or for scripts.
//
// The text format is a short plain summary. The JSON format is a stable
// document with snake_case keys:
//
//	{
//	  "run_id": "01J8...",
//	  "success": true,
//	  "timestamp": "2026-03-07T10:00:00Z",
//	  "input_file": "/exports/export.zip",
//	  "output_file": "/exports/lang_files_07_03.zip",
//	  "processed_files": 2,
//	  "file_operations": [{"original": "en.json", "new": "A.json", "type": "rename"}],
//	  "used_counter": false,
//	  "counter_value": null,
//	  "error_message": null
//	}
package report
