// Package mcp exposes the tag generator to editor hosts over the Model
// Context Protocol on stdio.
//
// Tools:
//
//   - generate_tags: run the full pipeline for one root or "ALL"
//   - lookup_tag: query the tag catalog by exact name or prefix
//   - list_doc_roots: the registered roots and which one is primary
//   - get_status: catalog state for one root
//
// stdout carries the protocol, so all logging and diagnostics go to
// stderr. Errors follow JSON-RPC conventions with the standard codes
// plus server-specific ones in the -32000 range.
package mcp
