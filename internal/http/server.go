// Package http exposes the goal store and the projection engine as a JSON
// API.
package http

import (
	"context"
	"net/http"
	"sync"

	"stashline/internal/core"
	"stashline/internal/middleware/ratelimit"
	"stashline/internal/middleware/trace"
	"stashline/internal/projection"
	"stashline/internal/services"
)

// ItemStore is the persistence surface the API needs.
type ItemStore interface {
	CreateItem(ctx context.Context, item core.StashItem) error
	GetItem(ctx context.Context, id string) (core.StashItem, error)
	ListItems(ctx context.Context) ([]core.StashItem, error)
	UpdateItem(ctx context.Context, item core.StashItem) error
	DeleteItem(ctx context.Context, id string) error
}

// ProjectionComputer runs memoized projections over the stored items.
type ProjectionComputer interface {
	Compute(ctx context.Context, req services.ComputeRequest) (projection.Result, error)
	InvalidateCache()
}

type Server struct {
	http.Server
	store       ItemStore
	projections ProjectionComputer
	limiter     *ratelimit.Limiter

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, store ItemStore, projections ProjectionComputer) *Server {
	mux := http.NewServeMux()

	s := &Server{
		store:       store,
		projections: projections,
		limiter:     ratelimit.NewLimiter(ratelimit.DefaultConfig()),
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/items", s.handleListItems)
	mux.HandleFunc("POST /api/items", s.handleCreateItem)
	mux.HandleFunc("GET /api/items/{id}", s.handleGetItem)
	mux.HandleFunc("PUT /api/items/{id}", s.handleUpdateItem)
	mux.HandleFunc("DELETE /api/items/{id}", s.handleDeleteItem)

	mux.HandleFunc("POST /api/projection", s.handleProjection)

	handler := trace.Middleware(clientIP)(s.limiter.Middleware(clientIP)(mux))
	s.Server = http.Server{
		Addr:    addr,
		Handler: handler,
	}

	return s
}

// Shutdown stops the limiter's cleanup goroutine and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		if s.limiter != nil {
			s.limiter.Stop()
		}
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
