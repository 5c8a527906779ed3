package handlers

import (
	"net/http"
	"strings"

	"github.com/stringcat/stringcat/internal/server/response"
	"github.com/stringcat/stringcat/pkg/catalog"
)

// TranslationsResponse wraps the full per-key listing.
type TranslationsResponse struct {
	Items []catalog.TranslationRecord `json:"items"`
}

// SummariesResponse wraps the lightweight per-key listing.
type SummariesResponse struct {
	Items []catalog.TranslationSummary `json:"items"`
}

// UpsertRequest is the PUT /api/translations payload. The embedded update
// carries the tri-state value/state fields plus nested variation and
// substitution updates.
type UpsertRequest struct {
	Key      string `json:"key"`
	Language string `json:"language"`
	Path     string `json:"path"`
	catalog.TranslationUpdate
}

// HandleListTranslations handles GET /api/translations. The q parameter
// filters by key or value substring; view=summary returns the lightweight
// rows instead of full records.
func (h *Handlers) HandleListTranslations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	s, err := h.storeFor(query.Get("path"))
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	filter := query.Get("q")
	if query.Get("view") == "summary" {
		response.OK(w, SummariesResponse{Items: s.ListSummaries(filter)})
		return
	}
	response.OK(w, TranslationsResponse{Items: s.ListRecords(filter)})
}

// HandleUpsertTranslation handles PUT /api/translations.
func (h *Handlers) HandleUpsertTranslation(w http.ResponseWriter, r *http.Request) {
	var req UpsertRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Key) == "" {
		response.BadRequest(w, "Key must not be empty", "")
		return
	}
	if strings.TrimSpace(req.Language) == "" {
		response.BadRequest(w, "Language must not be empty", "")
		return
	}

	s, err := h.storeFor(req.Path)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	value, err := s.UpsertTranslation(req.Key, req.Language, &req.TranslationUpdate)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, value)
}

// HandleDeleteTranslation handles DELETE /api/translations/{key}/{language}.
func (h *Handlers) HandleDeleteTranslation(w http.ResponseWriter, r *http.Request, key, language string) {
	s, err := h.storeFor(r.URL.Query().Get("path"))
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	if err := s.DeleteTranslation(key, language); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.NoContent(w)
}

// UntranslatedResponse maps each language to the keys still lacking a value.
type UntranslatedResponse struct {
	Untranslated map[string][]string `json:"untranslated"`
}

// HandleListUntranslated handles GET /api/untranslated.
func (h *Handlers) HandleListUntranslated(w http.ResponseWriter, r *http.Request) {
	s, err := h.storeFor(r.URL.Query().Get("path"))
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, UntranslatedResponse{Untranslated: s.ListUntranslated()})
}

// ProgressResponse maps each language to its completion percentage.
type ProgressResponse struct {
	Percentages map[string]float64 `json:"percentages"`
}

// HandleProgress handles GET /api/progress.
func (h *Handlers) HandleProgress(w http.ResponseWriter, r *http.Request) {
	s, err := h.storeFor(r.URL.Query().Get("path"))
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, ProgressResponse{Percentages: s.TranslationPercentages()})
}
