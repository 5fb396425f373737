// Package session reads and manages agent conversation logs stored as one
// JSONL file per session:
//
//	<root>/projects/<slug>/<id>.jsonl   live sessions
//	<root>/trash/<slug>/<id>.jsonl      soft-deleted sessions
//
// A slug is the project's absolute path with separators flattened to
// hyphens; ResolvePath recovers the path by walking the filesystem.
//
// The filesystem is the only source of truth. A Store never caches sessions:
// Load returns fresh values every time, and mutations (MoveToTrash, Restore,
// Delete, EmptyTrash, Rename) only become visible through the next Load.
package session
