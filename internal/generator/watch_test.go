package generator

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doctags/doctags-mcp/internal/config"
	"github.com/doctags/doctags-mcp/internal/notify"
)

func TestIsIndexFile(t *testing.T) {
	assert.True(t, isIndexFile("tags"))
	assert.True(t, isIndexFile("tags-nl"))
	assert.False(t, isIndexFile("guide.txt"))
	assert.False(t, isIndexFile("tagsomething.txt"))
}

func TestWatcher_RootFor(t *testing.T) {
	rootA := t.TempDir()
	rootB := t.TempDir()

	w := &Watcher{roots: []string{rootA, rootB}}
	assert.Equal(t, rootA, w.rootFor(filepath.Join(rootA, "sub", "guide.txt")))
	assert.Equal(t, rootB, w.rootFor(filepath.Join(rootB, "guide.txt")))
	assert.Equal(t, "", w.rootFor(filepath.Join(t.TempDir(), "elsewhere.txt")))
}

func TestWatcher_RegeneratesOnChange(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "guide.txt", "*first*\n")

	gen := New(config.Default(), nil, notify.Discard{})
	w, err := NewWatcher(gen, []string{root}, nil, 50*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Watch())
	defer func() { _ = w.Close() }()

	writeDoc(t, root, "guide.txt", "*first*\n*second*\n")

	assert.Eventually(t, func() bool {
		data, err := os.ReadFile(filepath.Join(root, "tags"))
		return err == nil && string(data) == "first\tguide.txt\t/*first*\nsecond\tguide.txt\t/*second*\n"
	}, 5*time.Second, 25*time.Millisecond)
}

func TestWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	root := t.TempDir()

	gen := New(config.Default(), nil, notify.Discard{})
	w, err := NewWatcher(gen, []string{root}, nil, 50*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Watch())
	defer func() { _ = w.Close() }()

	writeDoc(t, root, "notes.md", "not documentation\n")

	time.Sleep(300 * time.Millisecond)
	_, statErr := os.Stat(filepath.Join(root, "tags"))
	assert.True(t, os.IsNotExist(statErr))
}
