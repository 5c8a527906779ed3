package handlers

import (
	"net/http"
	"strings"

	"github.com/stringcat/stringcat/internal/server/response"
)

// RenameKeyRequest is the PUT /api/keys/{key} payload.
type RenameKeyRequest struct {
	NewKey string `json:"new_key"`
	Path   string `json:"path"`
}

// CommentRequest is the POST /api/comments payload. A null or absent comment
// clears it.
type CommentRequest struct {
	Key     string  `json:"key"`
	Comment *string `json:"comment"`
	Path    string  `json:"path"`
}

// ExtractionStateRequest is the POST /api/extraction-state payload.
type ExtractionStateRequest struct {
	Key             string  `json:"key"`
	ExtractionState *string `json:"extractionState"`
	Path            string  `json:"path"`
}

// ShouldTranslateRequest is the POST /api/should-translate payload.
type ShouldTranslateRequest struct {
	Key             string `json:"key"`
	ShouldTranslate *bool  `json:"shouldTranslate"`
	Path            string `json:"path"`
}

// HandleDeleteKey handles DELETE /api/keys/{key}.
func (h *Handlers) HandleDeleteKey(w http.ResponseWriter, r *http.Request, key string) {
	s, err := h.storeFor(r.URL.Query().Get("path"))
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	if err := s.DeleteKey(key); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.NoContent(w)
}

// HandleRenameKey handles PUT /api/keys/{key}.
func (h *Handlers) HandleRenameKey(w http.ResponseWriter, r *http.Request, key string) {
	var req RenameKeyRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	newKey := strings.TrimSpace(req.NewKey)
	if newKey == "" {
		response.BadRequest(w, "New key must not be empty", "")
		return
	}

	s, err := h.storeFor(req.Path)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	if err := s.RenameKey(key, newKey); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.NoContent(w)
}

// HandleSetComment handles POST /api/comments.
func (h *Handlers) HandleSetComment(w http.ResponseWriter, r *http.Request) {
	var req CommentRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	s, err := h.storeFor(req.Path)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	if err := s.SetComment(req.Key, req.Comment); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.NoContent(w)
}

// HandleSetExtractionState handles POST /api/extraction-state.
func (h *Handlers) HandleSetExtractionState(w http.ResponseWriter, r *http.Request) {
	var req ExtractionStateRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	s, err := h.storeFor(req.Path)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	if err := s.SetExtractionState(req.Key, req.ExtractionState); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.NoContent(w)
}

// HandleSetShouldTranslate handles POST /api/should-translate.
func (h *Handlers) HandleSetShouldTranslate(w http.ResponseWriter, r *http.Request) {
	var req ShouldTranslateRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	s, err := h.storeFor(req.Path)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	if err := s.SetShouldTranslate(req.Key, req.ShouldTranslate); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.NoContent(w)
}
