package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/aryannaik/advocate-directory/internal/advocate"
	"github.com/aryannaik/advocate-directory/internal/seed"
	"github.com/aryannaik/advocate-directory/internal/store"
)

// NewHandler wires the API routes.
func NewHandler(st store.Store, loader *seed.Loader, seedData func() []advocate.NewAdvocate, logger *zap.Logger) http.Handler {
	handlers := NewHandlers(st, loader, seedData, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/advocates", handlers.HandleAdvocates)
	mux.HandleFunc("/api/seed", handlers.HandleSeed)
	mux.HandleFunc("/api/status", handlers.HandleStatus)
	return mux
}

func New(port string, st store.Store, loader *seed.Loader, logger *zap.Logger) *http.Server {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: NewHandler(st, loader, seed.Advocates, logger),
	}

	logger.Info("Server listening", zap.String("addr", "http://localhost:"+port))
	return srv
}
