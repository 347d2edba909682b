// Package palette implements the quick-actions command palette engine.
//
// A palette session is built from a Registry snapshot (a fixed catalog of
// navigation targets and actions plus at most five recent entities). Each
// query edit filters the snapshot, groups the matches by category and resets
// the selection. Keyboard and pointer input compete for the active index. An
// arrow key grants the keyboard a lock window during which hovering cannot
// move the highlight. The lock is a timestamp compared when the next pointer
// event arrives, so no timer ever mutates selection state.
//
// The engine performs no I/O and is driven from a single event loop; it is not
// safe for concurrent use.
package palette
