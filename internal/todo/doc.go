// Package todo holds the in-memory task list and its file format.
//
// A task file (default extension .tsk) is written as JSON or YAML:
//
//	{
//	  "schema_version": 1,
//	  "tasks": [
//	    {
//	      "id": 1,
//	      "note": "Buy milk",
//	      "priority": "Low",
//	      "tags": "errand"
//	    }
//	  ]
//	}
//
// # Task IDs
//
// IDs are owned by the List. Add assigns the next number, Delete removes
// a task and renumbers the remaining ones so ids always run 1..N in list
// order. Replace installs a loaded sequence as-is and resets the counter
// to its length.
//
// # Priorities
//
//   - "High"
//   - "Medium"
//   - "Low"
//
// GroupByPriority partitions tasks in that order without reordering tasks
// inside a group.
//
// # Validation
//
// Unmarshal checks every document against the embedded JSON Schema
// (draft 2020-12) and then rejects duplicate ids. Failures are reported as
// *ValidationError values with a dotted path such as "tasks[2].priority".
//
// # File Format
//
// Marshal writes:
//   - 2-space indentation
//   - Trailing newline
//   - Stable key ordering
package todo
