package index

import (
	"fmt"

	"github.com/doctags/doctags-mcp/internal/notify"
	"github.com/doctags/doctags-mcp/pkg/types"
)

// Build merges per-file tag lists into a single sorted index and reports
// whether any exact-name collisions exist.
//
// The lists are concatenated in the order given (completion order when
// extraction ran concurrently; the sort makes the output deterministic
// either way). With includeIndexTag the index registers its own tag
// file via the synthetic help-tags entry. Duplicates are detected
// pairwise between adjacent sorted entries and reported as warnings;
// they never fail the build; the writer decides whether to persist.
func Build(lists [][]types.Tag, includeIndexTag bool, notifier notify.Notifier) (types.TagList, bool) {
	total := 0
	for _, l := range lists {
		total += len(l)
	}

	merged := make(types.TagList, 0, total+1)
	for _, l := range lists {
		merged = append(merged, l...)
	}
	if includeIndexTag {
		merged = append(merged, types.IndexTag())
	}

	merged.SortByName()

	hasDuplicates := false
	for i := 1; i < len(merged); i++ {
		prev, cur := merged[i-1], merged[i]
		if cur.Name != prev.Name {
			continue
		}
		hasDuplicates = true
		files := prev.File
		if cur.File != prev.File {
			files = prev.File + " and " + cur.File
		}
		notifier.Notify(fmt.Sprintf("Duplicate tag %q in %s", cur.Name, files), notify.SeverityWarn)
	}

	return merged, hasDuplicates
}
