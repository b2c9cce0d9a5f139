package index

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/doctags/doctags-mcp/internal/notify"
	"github.com/doctags/doctags-mcp/pkg/types"
)

// Writer persists sorted tag lists as on-disk index files.
type Writer struct {
	notifier notify.Notifier
}

// NewWriter creates an index Writer.
func NewWriter(notifier notify.Notifier) *Writer {
	return &Writer{notifier: notifier}
}

// Write serializes the list to outPath, one tag per line as three
// tab-separated fields terminated by a newline.
//
// An empty list, or one flagged with duplicates, is skipped entirely: no
// file is created or modified, and written is false. A duplicate-laden
// index is worse than a stale one.
func (w *Writer) Write(list types.TagList, hasDuplicates bool, outPath string) (written bool, err error) {
	if len(list) == 0 || hasDuplicates {
		return false, nil
	}

	start := time.Now()

	f, err := os.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return false, fmt.Errorf("failed to create index file %s: %w", outPath, err)
	}

	bw := bufio.NewWriter(f)
	for _, tag := range list {
		if _, err := fmt.Fprintf(bw, "%s\t%s\t%s\n", tag.Name, tag.File, tag.Locator); err != nil {
			_ = f.Close()
			return false, fmt.Errorf("failed to write index file %s: %w", outPath, err)
		}
	}

	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return false, fmt.Errorf("failed to flush index file %s: %w", outPath, err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("failed to close index file %s: %w", outPath, err)
	}

	w.notifier.Notify(fmt.Sprintf("Wrote %d tags to %s in %s",
		len(list), outPath, time.Since(start).Round(time.Microsecond)), notify.SeverityInfo)
	return true, nil
}
