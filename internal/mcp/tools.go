package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/doctags/doctags-mcp/internal/generator"
	"github.com/doctags/doctags-mcp/internal/storage"
	"github.com/doctags/doctags-mcp/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams        = -32602 // Invalid method parameters
	ErrorCodeInternalError        = -32603 // Internal JSON-RPC error
	ErrorCodeGenerationInProgress = -32001 // Another generation run is active
	ErrorCodeRootNotCataloged     = -32002 // Root has never been generated
)

// Path validation errors
var (
	ErrRootRequired    = errors.New("root is required")
	ErrRootNotAbsolute = errors.New("root must be an absolute path")
	ErrRootNotFound    = errors.New("root does not exist")
	ErrNotDirectory    = errors.New("root is not a directory")
)

// handleGenerateTags handles the generate_tags tool invocation
func (s *Server) handleGenerateTags(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	root, ok := args["root"].(string)
	if !ok || root == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "root parameter is required", map[string]interface{}{
			"param":  "root",
			"reason": "missing or empty",
		})
	}

	if root != types.AllRoots {
		if err := validateRoot(root); err != nil {
			return nil, newMCPError(ErrorCodeInvalidParams, "invalid root", map[string]interface{}{
				"param":  "root",
				"reason": err.Error(),
			})
		}
	}

	opts := &generator.Options{
		IncludeIndexTag: getBoolDefault(args, "include_index_tag", false),
	}

	stats, err := s.generator.Generate(ctx, root, opts)
	if errors.Is(err, generator.ErrGenerationInProgress) {
		return nil, newMCPError(ErrorCodeGenerationInProgress, "tag generation already in progress", nil)
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "generation failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"roots_processed":   stats.RootsProcessed,
		"files_scanned":     stats.FilesScanned,
		"files_failed":      stats.FilesFailed,
		"tags_extracted":    stats.TagsExtracted,
		"indexes_written":   stats.IndexesWritten,
		"indexes_skipped":   stats.IndexesSkipped,
		"duplicate_targets": stats.DuplicateTargets,
		"duration_ms":       stats.Duration.Milliseconds(),
	}
	if len(stats.Errors) > 0 {
		response["errors"] = stats.Errors
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleLookupTag handles the lookup_tag tool invocation
func (s *Server) handleLookupTag(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	name, ok := args["name"].(string)
	if !ok || name == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "name parameter is required", map[string]interface{}{
			"param":  "name",
			"reason": "missing or empty",
		})
	}

	prefix := getBoolDefault(args, "prefix", false)
	limit := getIntDefault(args, "limit", 25)
	if limit < 1 || limit > 100 {
		return nil, newMCPError(ErrorCodeInvalidParams, "limit must be between 1 and 100", map[string]interface{}{
			"param": "limit",
			"value": limit,
		})
	}

	entries, err := s.catalog.LookupTag(ctx, name, prefix, limit)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "lookup failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	results := make([]map[string]interface{}, 0, len(entries))
	for _, e := range entries {
		results = append(results, map[string]interface{}{
			"name":    e.Name,
			"file":    e.File,
			"locator": e.Locator,
			"root":    e.RootPath,
			"lang":    e.Lang,
		})
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"query":   name,
		"matches": results,
	})), nil
}

// handleListDocRoots handles the list_doc_roots tool invocation
func (s *Server) handleListDocRoots(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	roots := make([]map[string]interface{}, 0, len(s.cfg.Roots))
	for _, root := range s.cfg.Roots {
		roots = append(roots, map[string]interface{}{
			"path":    root,
			"primary": root == s.cfg.PrimaryRoot,
		})
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"roots": roots,
	})), nil
}

// handleGetStatus handles the get_status tool invocation
func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	root, ok := args["root"].(string)
	if !ok || root == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "root parameter is required", map[string]interface{}{
			"param":  "root",
			"reason": "missing or empty",
		})
	}

	record, err := s.catalog.GetRoot(ctx, root)
	if err == storage.ErrNotFound {
		response := map[string]interface{}{
			"cataloged": false,
			"root":      root,
			"message":   "Root not cataloged. Use generate_tags to build its index.",
		}
		return mcp.NewToolResultText(formatJSON(response)), nil
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to get root status", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"cataloged":         true,
		"root":              record.Path,
		"tag_count":         record.TagCount,
		"languages":         record.Languages,
		"last_generated_at": record.LastGeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// validateRoot checks if a documentation root exists and is a directory
func validateRoot(root string) error {
	if root == "" {
		return ErrRootRequired
	}
	if !filepath.IsAbs(root) {
		return ErrRootNotAbsolute
	}

	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return ErrRootNotFound
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return ErrNotDirectory
	}
	return nil
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	switch val := args[key].(type) {
	case int:
		return val
	case float64:
		return int(val)
	default:
		return defaultValue
	}
}
