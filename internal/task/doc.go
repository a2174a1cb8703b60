// Package task owns the persisted task collection.
//
// The task file (tasks_database.json by default) is a JSON array of task
// records:
//
//	[
//	  {
//	    "id": 1,
//	    "description": "buy milk",
//	    "status": "todo",
//	    "created_at": "Mon Oct 19 09:30:00 2026",
//	    "updated_at": "Mon Oct 19 09:30:00 2026"
//	  }
//	]
//
// # Task Status Values
//
//   - "todo": Task is pending
//   - "in-progress": Task is currently being worked on
//   - "done": Task is complete
//
// # Ids
//
// Ids are positive integers. A Store derives its counter from the highest
// id found on Load, so ids continue from the persisted data rather than
// from any process-wide state.
//
// # Reading
//
// Unknown fields are ignored. Files written by older releases used the key
// "update_at"; it is read when "updated_at" is absent. A missing or empty
// file loads as an empty collection. An unparsable file is reported as a
// warning and also loads as empty; it stays on disk until the next Save.
//
// # File Format
//
// When writing task files, the package uses:
//   - 2-space indentation
//   - Trailing newline
//   - A temp file in the same directory renamed over the target
package task
