package mcpserver

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/stringcat/stringcat/pkg/catalog"
)

const pathArgDescription = "Optional catalog file path; the default catalog is used when omitted"

func (s *Server) registerTranslationTools() {
	s.mcp.AddTool(mcp.NewTool("list_translations",
		mcp.WithDescription("List translation entries with their values, states, variations and substitutions, optionally filtered by a case-insensitive search query"),
		mcp.WithString("query", mcp.Description("Optional case-insensitive search over keys and values")),
		mcp.WithString("path", mcp.Description(pathArgDescription)),
	), s.handleListTranslations)

	s.mcp.AddTool(mcp.NewTool("list_summaries",
		mcp.WithDescription("List lightweight translation summaries (key, comment, languages, variation flag), optionally filtered by a search query"),
		mcp.WithString("query", mcp.Description("Optional case-insensitive search over keys and values")),
		mcp.WithString("path", mcp.Description(pathArgDescription)),
	), s.handleListSummaries)

	s.mcp.AddTool(mcp.NewTool("get_translation",
		mcp.WithDescription("Fetch a single translation by key and language; returns null when no localization exists"),
		mcp.WithString("key", mcp.Required(), mcp.Description("Translation key")),
		mcp.WithString("language", mcp.Required(), mcp.Description("Language code")),
		mcp.WithString("path", mcp.Description(pathArgDescription)),
	), s.handleGetTranslation)

	s.mcp.AddTool(mcp.NewTool("upsert_translation",
		mcp.WithDescription("Create or update a translation. Omitted fields are kept, JSON null clears a field, and a value sets it. Variations nest by selector then case; a null substitution removes it."),
		mcp.WithString("key", mcp.Required(), mcp.Description("Translation key")),
		mcp.WithString("language", mcp.Required(), mcp.Description("Language code")),
		mcp.WithString("value", mcp.Description("Translation text; null clears it")),
		mcp.WithString("state", mcp.Description("Translation state such as translated or needs_review; null clears it")),
		mcp.WithObject("variations", mcp.Description("Nested updates keyed by selector (plural, device) then case")),
		mcp.WithObject("substitutions", mcp.Description("Substitution updates keyed by name; null removes a substitution")),
		mcp.WithString("path", mcp.Description(pathArgDescription)),
	), s.handleUpsertTranslation)

	s.mcp.AddTool(mcp.NewTool("delete_translation",
		mcp.WithDescription("Delete the localization of a key for one language"),
		mcp.WithString("key", mcp.Required(), mcp.Description("Translation key")),
		mcp.WithString("language", mcp.Required(), mcp.Description("Language code")),
		mcp.WithString("path", mcp.Description(pathArgDescription)),
	), s.handleDeleteTranslation)
}

func (s *Server) handleListTranslations(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := s.storeFor(req.GetString("path", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(jsonText(st.ListRecords(req.GetString("query", "")))), nil
}

func (s *Server) handleListSummaries(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := s.storeFor(req.GetString("path", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(jsonText(st.ListSummaries(req.GetString("query", "")))), nil
}

func (s *Server) handleGetTranslation(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	language, err := req.RequireString("language")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	st, err := s.storeFor(req.GetString("path", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(jsonText(st.GetTranslation(key, language))), nil
}

func (s *Server) handleUpsertTranslation(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	language, err := req.RequireString("language")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if strings.TrimSpace(key) == "" {
		return mcp.NewToolResultError("key must not be empty"), nil
	}
	if strings.TrimSpace(language) == "" {
		return mcp.NewToolResultError("language must not be empty"), nil
	}

	// Round-trip the raw arguments through JSON so absent members stay
	// absent and explicit nulls stay nulls when decoding the tri-state
	// update fields.
	args := req.GetArguments()
	delete(args, "key")
	delete(args, "language")
	path, _ := args["path"].(string)
	delete(args, "path")

	raw, err := json.Marshal(args)
	if err != nil {
		return mcp.NewToolResultError("invalid arguments: " + err.Error()), nil
	}
	var update catalog.TranslationUpdate
	if err := json.Unmarshal(raw, &update); err != nil {
		return mcp.NewToolResultError("invalid update: " + err.Error()), nil
	}

	st, err := s.storeFor(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	value, err := st.UpsertTranslation(key, language, &update)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(jsonText(value)), nil
}

func (s *Server) handleDeleteTranslation(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	language, err := req.RequireString("language")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	st, err := s.storeFor(req.GetString("path", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := st.DeleteTranslation(key, language); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Translation deleted"), nil
}
