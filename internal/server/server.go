package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"aquaeco/internal/config"
	"aquaeco/internal/dashboard"
	"aquaeco/internal/feed"
	"aquaeco/internal/loader"
	"aquaeco/internal/logger"
	"aquaeco/internal/storage"
)

// Server wires the dashboard components behind the HTTP surface
type Server struct {
	Config  *config.Config
	Loader  *loader.Loader
	Builder *dashboard.Builder

	local storage.Store
	gcs   storage.Store
	log   *logger.Logger
}

// NewServer creates a new server instance
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	local, err := storage.NewLocalStore(cfg.LocalDataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize local data store: %w", err)
	}

	var gcs storage.Store
	if cfg.GCSBucket != "" {
		gcsStore, err := storage.NewGCSStore(ctx, cfg.GCSBucket)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize GCS store: %w", err)
		}
		gcs = gcsStore
	}

	timeout := time.Duration(cfg.FetchTimeoutSeconds) * time.Second
	l := loader.New(loader.Options{
		Timeout:   timeout,
		Local:     local,
		GCS:       gcs,
		GCSBucket: cfg.GCSBucket,
	})

	var news *feed.Fetcher
	if cfg.NewsFeedURL != "" {
		news = feed.NewFetcher(timeout)
	}

	builder, err := dashboard.NewBuilder(dashboard.Config{
		EnergySource:      cfg.EnergySourceURL,
		SensorSource:      cfg.SensorSourceURL,
		AssistantEmbedURL: cfg.AssistantEmbedURL,
		NewsFeedURL:       cfg.NewsFeedURL,
	}, l, news)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize dashboard builder: %w", err)
	}

	return &Server{
		Config:  cfg,
		Loader:  l,
		Builder: builder,
		local:   local,
		gcs:     gcs,
		log:     logger.WithComponent("server"),
	}, nil
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.HandleHealth)
	mux.HandleFunc("/assistant", s.HandleAssistant)
	mux.HandleFunc("/datasets", s.HandleDatasets)
	mux.HandleFunc("/charts/", s.HandleChart)

	// Catch-all last
	mux.HandleFunc("/", s.HandleDashboard)

	return mux
}

// Close cleans up server resources
func (s *Server) Close() error {
	if s.gcs != nil {
		if err := s.gcs.Close(); err != nil {
			return err
		}
	}
	return s.local.Close()
}
