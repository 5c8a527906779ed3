package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/stringcat/stringcat/pkg/store"
)

func (s *Server) registerLanguageTools() {
	s.mcp.AddTool(mcp.NewTool("list_languages",
		mcp.WithDescription("List all languages present in the catalog"),
		mcp.WithString("path", mcp.Description(pathArgDescription)),
	), s.handleListLanguages)

	s.mcp.AddTool(mcp.NewTool("add_language",
		mcp.WithDescription("Add a language to the catalog, seeding every key with a needs-translation placeholder"),
		mcp.WithString("language", mcp.Required(), mcp.Description("Language code to add")),
		mcp.WithString("path", mcp.Description(pathArgDescription)),
	), s.handleAddLanguage)

	s.mcp.AddTool(mcp.NewTool("remove_language",
		mcp.WithDescription("Remove a language and all its localizations from the catalog; the source language cannot be removed"),
		mcp.WithString("language", mcp.Required(), mcp.Description("Language code to remove")),
		mcp.WithString("path", mcp.Description(pathArgDescription)),
	), s.handleRemoveLanguage)

	s.mcp.AddTool(mcp.NewTool("rename_language",
		mcp.WithDescription("Rename a language code, moving all its localizations; renaming the source language updates sourceLanguage too"),
		mcp.WithString("language", mcp.Required(), mcp.Description("Current language code")),
		mcp.WithString("new_language", mcp.Required(), mcp.Description("New language code")),
		mcp.WithString("path", mcp.Description(pathArgDescription)),
	), s.handleRenameLanguage)

	s.mcp.AddTool(mcp.NewTool("list_untranslated",
		mcp.WithDescription("List keys lacking a translated value, grouped by language"),
		mcp.WithString("path", mcp.Description(pathArgDescription)),
	), s.handleListUntranslated)

	s.mcp.AddTool(mcp.NewTool("translation_percentages",
		mcp.WithDescription("Report the percentage of keys with a value per language"),
		mcp.WithString("path", mcp.Description(pathArgDescription)),
	), s.handleTranslationPercentages)
}

func (s *Server) handleListLanguages(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := s.storeFor(req.GetString("path", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	languages := st.ListLanguages()
	return mcp.NewToolResultText(jsonText(map[string]any{
		"languages": languages,
		"names":     store.LanguageNames(languages),
	})), nil
}

func (s *Server) handleAddLanguage(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	language, err := req.RequireString("language")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	st, err := s.storeFor(req.GetString("path", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := st.AddLanguage(language); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Language added"), nil
}

func (s *Server) handleRemoveLanguage(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	language, err := req.RequireString("language")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	st, err := s.storeFor(req.GetString("path", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := st.RemoveLanguage(language); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Language removed"), nil
}

func (s *Server) handleRenameLanguage(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	language, err := req.RequireString("language")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	newLanguage, err := req.RequireString("new_language")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	st, err := s.storeFor(req.GetString("path", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := st.RenameLanguage(language, newLanguage); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Language renamed"), nil
}

func (s *Server) handleListUntranslated(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := s.storeFor(req.GetString("path", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(jsonText(map[string]map[string][]string{
		"untranslated": st.ListUntranslated(),
	})), nil
}

func (s *Server) handleTranslationPercentages(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := s.storeFor(req.GetString("path", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(jsonText(map[string]map[string]float64{
		"percentages": st.TranslationPercentages(),
	})), nil
}
