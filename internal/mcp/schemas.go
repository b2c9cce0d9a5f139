package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// generateTagsTool returns the tool definition for generate_tags
func generateTagsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "generate_tags",
		Description: "Generate help-tag index files for a documentation root",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"root": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path of a documentation root, or \"ALL\" for every registered root",
				},
				"include_index_tag": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, every generated index registers the self-referential help-tags entry (the primary root always does)",
					"default":     false,
				},
			},
			Required: []string{"root"},
		},
	}
}

// lookupTagTool returns the tool definition for lookup_tag
func lookupTagTool() mcp.Tool {
	return mcp.Tool{
		Name:        "lookup_tag",
		Description: "Look up cataloged help tags by name",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Tag name to find",
				},
				"prefix": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, match any tag starting with name",
					"default":     false,
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results (1-100)",
					"default":     25,
					"minimum":     1,
					"maximum":     100,
				},
			},
			Required: []string{"name"},
		},
	}
}

// listDocRootsTool returns the tool definition for list_doc_roots
func listDocRootsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_doc_roots",
		Description: "List the registered documentation roots",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// getStatusTool returns the tool definition for get_status
func getStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_status",
		Description: "Query catalog state for a documentation root",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"root": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path of a documentation root",
				},
			},
			Required: []string{"root"},
		},
	}
}
