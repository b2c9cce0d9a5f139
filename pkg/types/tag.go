package types

import (
	"errors"
	"sort"
	"strings"
)

const (
	// IndexTagName is the self-referential tag a primary index registers
	// for its own index file.
	IndexTagName = "help-tags"

	// IndexFileName is the basename of a generated index file. Translated
	// indexes append "-<lang>".
	IndexFileName = "tags"

	// AllRoots is the sentinel root meaning every registered documentation
	// root. It is an aggregate marker, never a literal path.
	AllRoots = "ALL"
)

// Tag is one entry in a help index.
type Tag struct {
	Name    string // tag name, non-empty
	File    string // basename of the defining file
	Locator string // search pattern that relocates the definition
}

// Validate checks the tag invariants.
func (t Tag) Validate() error {
	if t.Name == "" {
		return errors.New("tag name cannot be empty")
	}
	if t.File == "" {
		return errors.New("tag source file cannot be empty")
	}
	return nil
}

// IndexTag returns the synthetic self-reference entry appended when an
// index registers its own tag file.
func IndexTag() Tag {
	return Tag{Name: IndexTagName, File: IndexFileName, Locator: "1"}
}

// SearchLocator builds the pattern that relocates a tag definition inside
// its source file: the name with backslash and slash escaped, wrapped so
// the pattern matches the name between its star delimiters.
func SearchLocator(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 3)
	b.WriteString("/*")
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '\\' || c == '/' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('*')
	return b.String()
}

// TagList is the in-memory form of one index file.
type TagList []Tag

// SortByName stable-sorts the list by tag name in byte order. Entries
// with equal names keep their relative order.
func (l TagList) SortByName() {
	sort.SliceStable(l, func(i, j int) bool {
		return l[i].Name < l[j].Name
	})
}

// Sorted reports whether the list is already in byte order by name.
func (l TagList) Sorted() bool {
	return sort.SliceIsSorted(l, func(i, j int) bool {
		return l[i].Name < l[j].Name
	})
}

// Names returns the tag names in list order.
func (l TagList) Names() []string {
	names := make([]string, len(l))
	for i, t := range l {
		names[i] = t.Name
	}
	return names
}
