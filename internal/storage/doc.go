// Package storage persists generated tags in a SQLite catalog.
//
// The on-disk tags files are the canonical output of the generator; the
// catalog mirrors them so editor hosts can look tags up without parsing
// index files. After each successful index write the generator calls
// ReplaceTags for that (root, language) target, which swaps the target's
// rows inside one transaction.
//
// # Drivers
//
// Two SQLite drivers are supported, selected at build time:
//
//   - modernc.org/sqlite (pure Go, the default): no C toolchain needed
//   - github.com/mattn/go-sqlite3 (cgo, -tags sqlite_cgo): faster on
//     large catalogs
//
// Schema changes go through versioned migrations; see migrations.go.
package storage
