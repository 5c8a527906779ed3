package handlers

import (
	"net/http"

	"github.com/stringcat/stringcat/internal/server/response"
	"github.com/stringcat/stringcat/pkg/store"
)

// LanguagesResponse lists the catalog's language codes with their English
// display names.
type LanguagesResponse struct {
	Languages []string          `json:"languages"`
	Names     map[string]string `json:"names"`
}

// AddLanguageRequest is the POST /api/languages payload.
type AddLanguageRequest struct {
	Language string `json:"language"`
	Path     string `json:"path"`
}

// RenameLanguageRequest is the PUT /api/languages/{code} payload.
type RenameLanguageRequest struct {
	NewLanguage string `json:"new_language"`
	Path        string `json:"path"`
}

// HandleListLanguages handles GET /api/languages.
func (h *Handlers) HandleListLanguages(w http.ResponseWriter, r *http.Request) {
	s, err := h.storeFor(r.URL.Query().Get("path"))
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	languages := s.ListLanguages()
	response.OK(w, LanguagesResponse{
		Languages: languages,
		Names:     store.LanguageNames(languages),
	})
}

// HandleAddLanguage handles POST /api/languages.
func (h *Handlers) HandleAddLanguage(w http.ResponseWriter, r *http.Request) {
	var req AddLanguageRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	s, err := h.storeFor(req.Path)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	if err := s.AddLanguage(req.Language); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.NoContent(w)
}

// HandleRemoveLanguage handles DELETE /api/languages/{code}.
func (h *Handlers) HandleRemoveLanguage(w http.ResponseWriter, r *http.Request, code string) {
	s, err := h.storeFor(r.URL.Query().Get("path"))
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	if err := s.RemoveLanguage(code); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.NoContent(w)
}

// HandleRenameLanguage handles PUT /api/languages/{code}.
func (h *Handlers) HandleRenameLanguage(w http.ResponseWriter, r *http.Request, code string) {
	var req RenameLanguageRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	s, err := h.storeFor(req.Path)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	if err := s.RenameLanguage(code, req.NewLanguage); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.NoContent(w)
}
