package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"negar/internal/services"
)

type Server struct {
	router     *http.ServeMux
	port       int
	generation services.GenerationService
	artworks   services.ArtworkService
}

func NewServer(port int, generation services.GenerationService, artworks services.ArtworkService) *Server {
	s := &Server{
		router:     http.NewServeMux(),
		port:       port,
		generation: generation,
		artworks:   artworks,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Generation loop
	s.router.HandleFunc("POST /api/generate", s.handleGenerate)
	s.router.HandleFunc("POST /api/regenerate", s.handleRegenerate)

	// Saved artworks
	s.router.HandleFunc("POST /api/artworks", s.handleCreateArtwork)
	s.router.HandleFunc("GET /api/artworks", s.handleListArtworks)
	s.router.HandleFunc("GET /api/artworks/{id}", s.handleGetArtwork)
	s.router.HandleFunc("DELETE /api/artworks/{id}", s.handleDeleteArtwork)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	fmt.Printf("Starting server at http://localhost:%d\n", s.port)

	// Handle graceful shutdown
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Server shutdown error: %v\n", err)
		}
	}()

	err := server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil // Graceful shutdown
	}
	return err
}
