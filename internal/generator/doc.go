// Package generator orchestrates tag-index generation.
//
// One Generate call resolves its root (or the ALL sentinel into every
// registered root), fans extraction out across all of a root's files,
// joins the results, and writes one index per target: <root>/tags for
// the primary files and <root>/tags-<lang> per translated language
// group. Roots and language groups are independent pipelines and run
// concurrently; only the final sort makes the output deterministic, so
// no ordering is required among extraction tasks.
//
// Failure containment is the central design rule: an unreadable file, a
// duplicate-laden target, or an unwritable target degrades that file or
// target alone and is reported on the diagnostic channel. There is no
// global abort.
//
// The Watcher wraps a Generator with fsnotify-driven regeneration: doc
// file changes are debounced per root and regenerate only the root that
// changed.
package generator
