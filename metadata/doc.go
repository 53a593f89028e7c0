// Package metadata binds working directories to their stored sessions.
//
// # Overview
//
// A working directory is identified by a persistent synthetic ID, not by its
// path. The path is transient: the directory can be renamed, moved behind a
// symlink, or deleted while its sessions live on under
// <root>/sessions/<work-dir-id>/. This package owns the record set that maps
// paths to IDs and the reconciliation logic that repairs the mapping when it
// drifts.
//
// # Resolution
//
// Resolve maps a filesystem path to its record in three tiers:
//
//  1. Direct match — the path equals a record's current path, one of its
//     aliases, or the canonical (symlink-resolved) form of either.
//  2. Content-scan recovery — every stored session log is searched for the
//     literal path; a hit identifies the owning work directory ID from the
//     storage layout, and the record is reattached or rebuilt around that ID.
//  3. Not found — the caller decides whether to create a fresh record.
//
// # Persistence
//
// The store is loaded wholesale from <root>/metadata.json and written back
// wholesale by Save. There is no locking: two concurrent invocations race and
// the last Save wins. Tether runs as short-lived command invocations, so this
// is an accepted trade, not an oversight.
package metadata
