// Package handlers implements HTTP request handlers for the stringcat API
// server. Each handler maps one route to one catalog store or manager call.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/stringcat/stringcat/internal/server/response"
	"github.com/stringcat/stringcat/pkg/store"
)

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	manager *store.Manager
	logger  *zerolog.Logger
}

// New creates a new handlers instance.
func New(manager *store.Manager, logger *zerolog.Logger) *Handlers {
	return &Handlers{
		manager: manager,
		logger:  logger,
	}
}

// storeFor resolves the catalog selected by the request, falling back to the
// default catalog when path is empty.
func (h *Handlers) storeFor(path string) (*store.Store, error) {
	return h.manager.StoreFor(path)
}

// decodeJSON decodes the request body into v, writing a 400 response and
// returning false on malformed input.
func (h *Handlers) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		response.BadRequest(w, "Invalid JSON body", err.Error())
		return false
	}
	return true
}
