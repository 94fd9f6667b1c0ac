package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/andy/rosterdash/internal/domain"
	"github.com/andy/rosterdash/internal/identity"
	"github.com/andy/rosterdash/internal/metrics"
	"github.com/andy/rosterdash/internal/repository"
)

// Server is the volatile roster endpoint the dashboard syncs with.
// It serves the /clients REST contract over a ClientRepository.
type Server struct {
	repo    repository.ClientRepository
	ids     identity.Generator
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// New creates a Server. m may be nil to disable metrics.
func New(repo repository.ClientRepository, ids identity.Generator, m *metrics.Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{repo: repo, ids: ids, metrics: m, logger: logger, now: time.Now}
}

// RegisterRoutes sets up all HTTP routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /clients", s.handleList)
	mux.HandleFunc("POST /clients", s.handleCreate)
	mux.HandleFunc("PATCH /clients/{id}", s.handleUpdate)
	mux.HandleFunc("DELETE /clients/{id}", s.handleDelete)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}
}

// Handler returns the instrumented route tree
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return s.Instrument(mux)
}

// Seed replaces the stored roster, used on startup so every run begins
// from the demonstration dataset.
func (s *Server) Seed(ctx context.Context, clients []domain.Client) error {
	if err := s.repo.Seed(ctx, clients); err != nil {
		return err
	}
	s.refreshGauge(ctx)
	return nil
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	clients, err := s.repo.List(r.Context())
	if err != nil {
		s.internalError(w, r, "list clients", err)
		return
	}
	writeJSON(w, http.StatusOK, clients)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var client domain.Client
	if err := readJSON(w, r, &client); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// The dashboard assigns id and registered; fill them for other callers.
	if client.ID == "" {
		client.ID = s.ids.NewID()
	}
	if client.Registered.IsZero() {
		client.Registered = domain.NewTimestamp(s.now().UTC().Truncate(time.Second))
	}
	if client.Picture == "" {
		client.Picture = domain.DefaultPicture
	}

	if err := s.repo.Create(r.Context(), client); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrDuplicateID):
			writeError(w, http.StatusConflict, "Client already exists")
		default:
			s.internalError(w, r, "create client", err)
		}
		return
	}

	s.refreshGauge(r.Context())
	writeJSON(w, http.StatusCreated, client)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var patch domain.ClientPatch
	if err := readJSON(w, r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	client, err := s.repo.Update(r.Context(), id, patch.Normalize())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "Client not found")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.internalError(w, r, "update client", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, client)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Client not found")
			return
		}
		s.internalError(w, r, "delete client", err)
		return
	}

	s.refreshGauge(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"message": "Client deleted successfully"})
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	s.logger.Error(op, "request_id", RequestIDFromContext(r.Context()), "error", err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

func (s *Server) refreshGauge(ctx context.Context) {
	if s.metrics == nil {
		return
	}
	n, err := s.repo.Count(ctx)
	if err != nil {
		s.logger.Warn("count clients", "error", err)
		return
	}
	s.metrics.RosterSize.Set(float64(n))
}
