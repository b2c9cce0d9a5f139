package extractor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/doctags/doctags-mcp/internal/notify"
	"github.com/doctags/doctags-mcp/pkg/types"
)

// Extractor turns raw help markup into tag entries.
type Extractor struct {
	grammar  Grammar
	notifier notify.Notifier
}

// New creates an Extractor using the default help-markup grammar.
func New(notifier notify.Notifier) *Extractor {
	return NewWithGrammar(NewHelpGrammar(), notifier)
}

// NewWithGrammar creates an Extractor backed by the given grammar.
func NewWithGrammar(grammar Grammar, notifier notify.Notifier) *Extractor {
	return &Extractor{grammar: grammar, notifier: notifier}
}

// Extract parses the document contents and emits one Tag per recognized
// tag definition, in document order. A document with no tag definitions
// yields an empty result, not an error.
func (e *Extractor) Extract(content []byte, fileName string) []types.Tag {
	spans := e.grammar.TagSpans(content)
	if len(spans) == 0 {
		return nil
	}

	tags := make([]types.Tag, 0, len(spans))
	for _, span := range spans {
		name := string(content[span.Start:span.End])
		tags = append(tags, types.Tag{
			Name:    name,
			File:    fileName,
			Locator: types.SearchLocator(name),
		})
	}
	return tags
}

// ExtractFile reads and extracts one documentation file. Read failures
// are soft: the file is reported on the diagnostic channel, the returned
// error is for the caller's accounting, and the tag list is empty so
// sibling files are unaffected.
func (e *Extractor) ExtractFile(path string) ([]types.Tag, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		e.notifier.Notify(fmt.Sprintf("Unable to open %s for reading", path), notify.SeverityError)
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return e.Extract(content, filepath.Base(path)), nil
}
