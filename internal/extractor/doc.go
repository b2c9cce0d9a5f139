// Package extractor extracts tag definitions from help-markup documents.
//
// A tag definition is the star-delimited construct conventional in help
// files:
//
//	*doctags-intro*		the "doctags-intro" tag
//
// The extractor emits one Tag per definition in document order, carrying
// the defining file's basename and a search-pattern locator built from
// the tag name. Locators are search patterns rather than line numbers so
// a generated index survives edits to the source file.
//
// # Grammar substitution
//
// Recognition is delegated to the Grammar interface, which maps raw
// bytes to name spans. The built-in grammar is a hand-written scanner;
// any parser able to produce the same spans (a parser-generator grammar,
// an embedded grammar engine) can be swapped in via NewWithGrammar.
//
// # Error handling
//
// Extraction fails softly. An unreadable file is reported on the
// diagnostic channel and contributes zero tags; it never aborts the
// surrounding run. A file without tag definitions is an empty result,
// not an error.
package extractor
