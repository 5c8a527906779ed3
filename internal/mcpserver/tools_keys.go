package mcpserver

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerKeyTools() {
	s.mcp.AddTool(mcp.NewTool("delete_key",
		mcp.WithDescription("Delete an entire translation key across all languages"),
		mcp.WithString("key", mcp.Required(), mcp.Description("Translation key")),
		mcp.WithString("path", mcp.Description(pathArgDescription)),
	), s.handleDeleteKey)

	s.mcp.AddTool(mcp.NewTool("rename_key",
		mcp.WithDescription("Rename a translation key, keeping its position in the catalog"),
		mcp.WithString("key", mcp.Required(), mcp.Description("Current key")),
		mcp.WithString("new_key", mcp.Required(), mcp.Description("New key name")),
		mcp.WithString("path", mcp.Description(pathArgDescription)),
	), s.handleRenameKey)

	s.mcp.AddTool(mcp.NewTool("set_comment",
		mcp.WithDescription("Set or clear the developer comment for a translation key; omit comment to clear it"),
		mcp.WithString("key", mcp.Required(), mcp.Description("Translation key")),
		mcp.WithString("comment", mcp.Description("Comment text; omit or pass null to clear")),
		mcp.WithString("path", mcp.Description(pathArgDescription)),
	), s.handleSetComment)

	s.mcp.AddTool(mcp.NewTool("set_extraction_state",
		mcp.WithDescription("Set or clear the extractionState of a translation key (for example manual or stale); omit to clear"),
		mcp.WithString("key", mcp.Required(), mcp.Description("Translation key")),
		mcp.WithString("state", mcp.Description("Extraction state; omit or pass null to clear")),
		mcp.WithString("path", mcp.Description(pathArgDescription)),
	), s.handleSetExtractionState)

	s.mcp.AddTool(mcp.NewTool("set_should_translate",
		mcp.WithDescription("Set or clear the shouldTranslate flag of a translation key; omit to clear"),
		mcp.WithString("key", mcp.Required(), mcp.Description("Translation key")),
		mcp.WithBoolean("should_translate", mcp.Description("Flag value; omit to clear")),
		mcp.WithString("path", mcp.Description(pathArgDescription)),
	), s.handleSetShouldTranslate)
}

func (s *Server) handleDeleteKey(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	st, err := s.storeFor(req.GetString("path", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := st.DeleteKey(key); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Key deleted"), nil
}

func (s *Server) handleRenameKey(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	newKey, err := req.RequireString("new_key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	newKey = strings.TrimSpace(newKey)
	if newKey == "" {
		return mcp.NewToolResultError("new_key must not be empty"), nil
	}
	st, err := s.storeFor(req.GetString("path", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := st.RenameKey(key, newKey); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Key renamed"), nil
}

func (s *Server) handleSetComment(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var comment *string
	if v, ok := req.GetArguments()["comment"].(string); ok {
		comment = &v
	}
	st, err := s.storeFor(req.GetString("path", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := st.SetComment(key, comment); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Comment updated"), nil
}

func (s *Server) handleSetExtractionState(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var state *string
	if v, ok := req.GetArguments()["state"].(string); ok {
		state = &v
	}
	st, err := s.storeFor(req.GetString("path", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := st.SetExtractionState(key, state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Extraction state updated"), nil
}

func (s *Server) handleSetShouldTranslate(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var flag *bool
	if v, ok := req.GetArguments()["should_translate"].(bool); ok {
		flag = &v
	}
	st, err := s.storeFor(req.GetString("path", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := st.SetShouldTranslate(key, flag); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Should-translate flag updated"), nil
}
