// Package types defines the core data model shared across the doctags
// pipeline: tags, tag lists, and the document sets produced by discovery.
//
// A Tag is a named anchor inside a documentation file. Its Locator is a
// search pattern rather than a line number, so a generated index stays
// usable after the source file is edited:
//
//	tag := types.Tag{
//	    Name:    "doctags-intro",
//	    File:    "doctags.txt",
//	    Locator: types.SearchLocator("doctags-intro"),
//	}
//
// A TagList is the in-memory form of one index file. It is sorted by name
// in byte order before being persisted; ties keep their discovery order.
//
// A DocumentSet is the result of walking one documentation root: the
// primary .txt files plus translated files grouped by their two-letter
// language code.
package types
