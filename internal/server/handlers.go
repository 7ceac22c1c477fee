package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/aryannaik/advocate-directory/internal/advocate"
	"github.com/aryannaik/advocate-directory/internal/seed"
	"github.com/aryannaik/advocate-directory/internal/store"
)

type Handlers struct {
	store    store.Store
	loader   *seed.Loader
	seedData func() []advocate.NewAdvocate
	logger   *zap.Logger
}

func NewHandlers(st store.Store, loader *seed.Loader, seedData func() []advocate.NewAdvocate, logger *zap.Logger) *Handlers {
	return &Handlers{
		store:    st,
		loader:   loader,
		seedData: seedData,
		logger:   logger,
	}
}

func (h *Handlers) HandleAdvocates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	advocates, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error("List advocates failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not load advocates"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": advocates})
}

func (h *Handlers) HandleSeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	// Submitted batches run to completion even if the client goes away.
	inserted, err := h.loader.Load(context.WithoutCancel(r.Context()), h.seedData())
	if err != nil {
		// Other batches may already be committed.
		h.logger.Error("Seed failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "seed failed"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"advocates": inserted})
}

type statusResponse struct {
	Count     int    `json:"count"`
	Store     string `json:"store"`
	BatchSize int    `json:"batchSize"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// updateTracker is implemented by stores that know when they last wrote.
type updateTracker interface {
	UpdatedAt() time.Time
}

func (h *Handlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	n, err := h.store.Count(r.Context())
	if err != nil {
		h.logger.Error("Count advocates failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "status unavailable"})
		return
	}

	status := statusResponse{
		Count:     n,
		Store:     h.store.Driver(),
		BatchSize: h.loader.BatchSize(),
	}
	if tracker, ok := h.store.(updateTracker); ok {
		if updatedAt := tracker.UpdatedAt(); !updatedAt.IsZero() {
			status.UpdatedAt = updatedAt.UTC().Format("2006-01-02T15:04:05Z")
		}
	}

	writeJSON(w, http.StatusOK, status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
