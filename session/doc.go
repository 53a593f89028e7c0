// Package session enumerates and manipulates stored chat sessions.
//
// # Layout
//
// Every session is a directory holding a message log:
//
//	<root>/sessions/<work-dir-id>/<session-id>/context.jsonl
//
// The log is one JSON object per line. Message semantics belong to whatever
// wrote the file; this package only counts lines, copies bytes, and peeks at
// the role/content fields for display previews.
//
// # Enumeration
//
// ListAll walks everything physically present under the sessions root —
// sessions owned by registered work directories and subtrees no record
// claims — and returns them newest first. Nothing is dropped for being
// unreadable: a corrupt log degrades to zero counts, and a subtree with no
// record is flagged orphaned with an unknown path.
//
// # Operations
//
// Locate finds a session by ID wherever it is stored. Clone copies a
// session's full history into a fresh session under the current work
// directory. Import does the same from an arbitrary exported context file.
package session
