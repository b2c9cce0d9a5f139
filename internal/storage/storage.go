package storage

import (
	"context"
	"errors"
	"time"

	"github.com/doctags/doctags-mcp/pkg/types"
)

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")
)

// Catalog persists generated tags for lookup by editor hosts. The
// on-disk tags files remain the canonical output; the catalog is a
// queryable mirror refreshed after each successful index write.
type Catalog interface {
	// ReplaceTags atomically replaces the stored tags for one (root,
	// language) target with the given sorted list. An empty language is
	// the primary index.
	ReplaceTags(ctx context.Context, rootPath, lang string, tags types.TagList) error

	// LookupTag finds tags by exact name, or by name prefix when prefix
	// is true. Results are ordered by name, then root path.
	LookupTag(ctx context.Context, name string, prefix bool, limit int) ([]*Entry, error)

	// GetRoot returns catalog state for one documentation root.
	GetRoot(ctx context.Context, rootPath string) (*Root, error)

	// ListRoots returns every root the catalog has seen, ordered by path.
	ListRoots(ctx context.Context) ([]*Root, error)

	Close() error
}

// Root is the catalog record for one documentation root.
type Root struct {
	ID              int64
	Path            string
	TagCount        int
	Languages       []string
	LastGeneratedAt time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Entry is one cataloged tag.
type Entry struct {
	ID       int64
	RootPath string
	Lang     string // empty for the primary index
	Name     string
	File     string
	Locator  string
}
