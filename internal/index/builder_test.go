package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doctags/doctags-mcp/internal/notify"
	"github.com/doctags/doctags-mcp/pkg/types"
)

func tag(name, file string) types.Tag {
	return types.Tag{Name: name, File: file, Locator: types.SearchLocator(name)}
}

func TestBuild_SortsAcrossLists(t *testing.T) {
	lists := [][]types.Tag{
		{tag("zebra", "a.txt"), tag("mango", "a.txt")},
		{tag("apple", "b.txt")},
	}

	merged, hasDup := Build(lists, false, notify.Discard{})

	assert.False(t, hasDup)
	assert.Equal(t, []string{"apple", "mango", "zebra"}, merged.Names())
	assert.True(t, merged.Sorted())
}

func TestBuild_IncludeIndexTag(t *testing.T) {
	lists := [][]types.Tag{{tag("bar", "f.txt"), tag("apple", "f.txt")}}

	merged, hasDup := Build(lists, true, notify.Discard{})

	require.False(t, hasDup)
	require.Len(t, merged, 3)
	// help-tags sorts after both since 'h' > 'b' and 'a'.
	assert.Equal(t, []string{"apple", "bar", "help-tags"}, merged.Names())
	assert.Equal(t, types.IndexTag(), merged[2])
}

func TestBuild_DuplicateAcrossFiles(t *testing.T) {
	capture := &notify.Capture{}
	lists := [][]types.Tag{
		{tag("foo", "a.txt")},
		{tag("foo", "b.txt")},
	}

	_, hasDup := Build(lists, false, capture)

	assert.True(t, hasDup)
	warns := capture.BySeverity(notify.SeverityWarn)
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0].Text, `Duplicate tag "foo"`)
	assert.Contains(t, warns[0].Text, "a.txt and b.txt")
}

func TestBuild_DuplicateSameFile(t *testing.T) {
	capture := &notify.Capture{}
	lists := [][]types.Tag{{tag("foo", "a.txt"), tag("foo", "a.txt")}}

	_, hasDup := Build(lists, false, capture)

	assert.True(t, hasDup)
	warns := capture.BySeverity(notify.SeverityWarn)
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0].Text, `Duplicate tag "foo" in a.txt`)
	assert.NotContains(t, warns[0].Text, "and")
}

func TestBuild_ThreeWayRunReportsPairwise(t *testing.T) {
	capture := &notify.Capture{}
	lists := [][]types.Tag{
		{tag("foo", "a.txt")},
		{tag("foo", "b.txt")},
		{tag("foo", "c.txt")},
	}

	_, hasDup := Build(lists, false, capture)

	assert.True(t, hasDup)
	// Each adjacent pair is reported against its immediate predecessor.
	warns := capture.BySeverity(notify.SeverityWarn)
	require.Len(t, warns, 2)
	assert.Contains(t, warns[0].Text, "a.txt and b.txt")
	assert.Contains(t, warns[1].Text, "b.txt and c.txt")
}

func TestBuild_StableOnTies(t *testing.T) {
	lists := [][]types.Tag{
		{tag("same", "first.txt")},
		{tag("same", "second.txt")},
	}

	merged, hasDup := Build(lists, false, notify.Discard{})

	assert.True(t, hasDup)
	require.Len(t, merged, 2)
	assert.Equal(t, "first.txt", merged[0].File)
	assert.Equal(t, "second.txt", merged[1].File)
}

func TestBuild_Empty(t *testing.T) {
	merged, hasDup := Build(nil, false, notify.Discard{})
	assert.Empty(t, merged)
	assert.False(t, hasDup)
}
