// Package index merges per-file tag lists into sorted index files.
//
// Build concatenates the lists produced by concurrent extraction,
// stable-sorts them by tag name in byte order, and reports exact-name
// collisions pairwise on the diagnostic channel. Writer persists the
// result as the conventional tab-separated tags format:
//
//	name<TAB>file<TAB>locator<NL>
//
// sorted by name with no header and no trailing metadata, so external
// tag readers can binary-search the file. A target with duplicates or an
// empty result is deliberately not written; other targets in the same
// run are unaffected.
package index
