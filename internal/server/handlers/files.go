package handlers

import (
	"net/http"

	"github.com/stringcat/stringcat/internal/server/response"
)

// FileEntry describes one discovered catalog file.
type FileEntry struct {
	Path  string `json:"path"`
	Label string `json:"label"`
}

// FilesResponse lists discovered catalog files and the default selection.
type FilesResponse struct {
	Files   []FileEntry `json:"files"`
	Default *string     `json:"default"`
}

// HandleListFiles handles GET /api/files. Discovery is rescanned on every
// call so newly added catalogs show up without a restart.
func (h *Handlers) HandleListFiles(w http.ResponseWriter, _ *http.Request) {
	paths, err := h.manager.RefreshDiscovered()
	if err != nil {
		h.logger.Error().Err(err).Msg("Catalog discovery failed")
		response.ErrorFromType(w, err)
		return
	}

	files := make([]FileEntry, 0, len(paths))
	for _, path := range paths {
		files = append(files, FileEntry{
			Path:  h.manager.PathToken(path),
			Label: h.manager.PathLabel(path),
		})
	}

	resp := FilesResponse{Files: files}
	if defaultPath := h.manager.DefaultPath(); defaultPath != "" {
		token := h.manager.PathToken(defaultPath)
		resp.Default = &token
	}
	response.OK(w, resp)
}
