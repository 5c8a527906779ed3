package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

type fileListing struct {
	Path  string `json:"path"`
	Label string `json:"label"`
}

func (s *Server) registerFileTools() {
	s.mcp.AddTool(mcp.NewTool("list_files",
		mcp.WithDescription("List discovered .xcstrings catalog files; the returned paths are accepted by the path argument of every other tool"),
	), s.handleListFiles)
}

func (s *Server) handleListFiles(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	paths, err := s.manager.RefreshDiscovered()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	files := make([]fileListing, 0, len(paths))
	for _, path := range paths {
		files = append(files, fileListing{
			Path:  s.manager.PathToken(path),
			Label: s.manager.PathLabel(path),
		})
	}

	payload := map[string]any{"files": files}
	if defaultPath := s.manager.DefaultPath(); defaultPath != "" {
		payload["default"] = s.manager.PathToken(defaultPath)
	}
	return mcp.NewToolResultText(jsonText(payload)), nil
}
