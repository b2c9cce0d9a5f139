package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doctags/doctags-mcp/internal/config"
)

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	cfg.DBPath = filepath.Join(t.TempDir(), "catalog.db")

	s, err := NewServer(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.catalog.Close() })
	return s
}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultJSON(t *testing.T, result *mcp.CallToolResult) map[string]interface{} {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &payload))
	return payload
}

func TestNewServer(t *testing.T) {
	s := newTestServer(t, nil)
	assert.NotNil(t, s.mcp)
	assert.NotNil(t, s.generator)
	assert.NotNil(t, s.catalog)
}

func TestHandleGenerateTags(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "guide.txt"), []byte("*intro*\n"), 0644))

	s := newTestServer(t, nil)
	result, err := s.handleGenerateTags(context.Background(), callRequest(map[string]interface{}{
		"root": root,
	}))
	require.NoError(t, err)

	payload := resultJSON(t, result)
	assert.Equal(t, float64(1), payload["indexes_written"])
	assert.Equal(t, float64(1), payload["tags_extracted"])

	data, err := os.ReadFile(filepath.Join(root, "tags"))
	require.NoError(t, err)
	assert.Equal(t, "intro\tguide.txt\t/*intro*\n", string(data))
}

func TestHandleGenerateTags_InvalidRoot(t *testing.T) {
	s := newTestServer(t, nil)

	_, err := s.handleGenerateTags(context.Background(), callRequest(map[string]interface{}{}))
	assert.Error(t, err)

	_, err = s.handleGenerateTags(context.Background(), callRequest(map[string]interface{}{
		"root": "relative/path",
	}))
	assert.Error(t, err)

	_, err = s.handleGenerateTags(context.Background(), callRequest(map[string]interface{}{
		"root": filepath.Join(t.TempDir(), "absent"),
	}))
	assert.Error(t, err)
}

func TestHandleLookupTag(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "guide.txt"), []byte("*intro* *intro-more*\n"), 0644))

	s := newTestServer(t, nil)
	_, err := s.handleGenerateTags(context.Background(), callRequest(map[string]interface{}{"root": root}))
	require.NoError(t, err)

	result, err := s.handleLookupTag(context.Background(), callRequest(map[string]interface{}{
		"name": "intro",
	}))
	require.NoError(t, err)

	payload := resultJSON(t, result)
	matches := payload["matches"].([]interface{})
	require.Len(t, matches, 1)
	match := matches[0].(map[string]interface{})
	assert.Equal(t, "guide.txt", match["file"])
	assert.Equal(t, "/*intro*", match["locator"])

	result, err = s.handleLookupTag(context.Background(), callRequest(map[string]interface{}{
		"name":   "intro",
		"prefix": true,
	}))
	require.NoError(t, err)
	assert.Len(t, resultJSON(t, result)["matches"], 2)
}

func TestHandleLookupTag_Validation(t *testing.T) {
	s := newTestServer(t, nil)

	_, err := s.handleLookupTag(context.Background(), callRequest(map[string]interface{}{}))
	assert.Error(t, err)

	_, err = s.handleLookupTag(context.Background(), callRequest(map[string]interface{}{
		"name":  "x",
		"limit": float64(500),
	}))
	assert.Error(t, err)
}

func TestHandleListDocRoots(t *testing.T) {
	cfg := config.Default()
	cfg.Roots = []string{"/docs/a", "/docs/b"}
	cfg.PrimaryRoot = "/docs/a"

	s := newTestServer(t, cfg)
	result, err := s.handleListDocRoots(context.Background(), callRequest(nil))
	require.NoError(t, err)

	payload := resultJSON(t, result)
	roots := payload["roots"].([]interface{})
	require.Len(t, roots, 2)
	first := roots[0].(map[string]interface{})
	assert.Equal(t, "/docs/a", first["path"])
	assert.Equal(t, true, first["primary"])
}

func TestHandleGetStatus(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "guide.txt"), []byte("*intro*\n"), 0644))

	s := newTestServer(t, nil)

	result, err := s.handleGetStatus(context.Background(), callRequest(map[string]interface{}{"root": root}))
	require.NoError(t, err)
	assert.Equal(t, false, resultJSON(t, result)["cataloged"])

	_, err = s.handleGenerateTags(context.Background(), callRequest(map[string]interface{}{"root": root}))
	require.NoError(t, err)

	result, err = s.handleGetStatus(context.Background(), callRequest(map[string]interface{}{"root": root}))
	require.NoError(t, err)
	payload := resultJSON(t, result)
	assert.Equal(t, true, payload["cataloged"])
	assert.Equal(t, float64(1), payload["tag_count"])
}

func TestValidateRoot(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, validateRoot(dir))
	assert.Equal(t, ErrRootRequired, validateRoot(""))
	assert.Equal(t, ErrRootNotAbsolute, validateRoot("rel/path"))
	assert.Equal(t, ErrRootNotFound, validateRoot(filepath.Join(dir, "absent")))

	file := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	assert.Equal(t, ErrNotDirectory, validateRoot(file))
}

func TestMCPError(t *testing.T) {
	err := newMCPError(ErrorCodeInvalidParams, "bad params", nil)
	assert.EqualError(t, err, "MCP error -32602: bad params")
}
