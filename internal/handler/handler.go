package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/opsdesk/agentdesk/docs" // Import generated docs
	"github.com/opsdesk/agentdesk/internal/handler/dto"
	"github.com/opsdesk/agentdesk/internal/middleware"
	"github.com/opsdesk/agentdesk/internal/repository"
	"github.com/opsdesk/agentdesk/internal/service"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	pool           *pgxpool.Pool
	authService    *service.AuthService
	agentService   *service.AgentService
	listService    *service.ListService
	authMiddleware *middleware.AuthMiddleware
}

// New creates a new Handler instance with all dependencies.
func New(pool *pgxpool.Pool, jwtSecret []byte) *Handler {
	// Create repositories
	adminRepo := repository.NewAdminRepository(pool)
	agentRepo := repository.NewAgentRepository(pool)
	listRepo := repository.NewListRepository(pool)

	// Create services
	authService := service.NewAuthService(adminRepo, jwtSecret)
	agentService := service.NewAgentService(agentRepo)
	listService := service.NewListService(pool, listRepo, agentRepo)

	// Create middleware
	authMiddleware := middleware.NewAuthMiddleware(authService)

	return &Handler{
		pool:           pool,
		authService:    authService,
		agentService:   agentService,
		listService:    listService,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /healthz", h.handleHealthz)

	// Swagger UI
	mux.HandleFunc("GET /swagger/", httpSwagger.Handler())

	// Public auth routes
	mux.HandleFunc("POST /api/auth/login", h.handleLogin)
	mux.HandleFunc("POST /api/auth/register", h.handleRegister)

	// Authenticated routes
	mux.Handle("GET /api/auth/me", h.authed(h.handleMe))
	mux.Handle("GET /api/agents", h.authed(h.handleListAgents))
	mux.Handle("POST /api/agents", h.authed(h.handleCreateAgent))
	mux.Handle("GET /api/lists", h.authed(h.handleLists))
	mux.Handle("GET /api/lists/{id}", h.authed(h.handleGetList))
	mux.Handle("POST /api/lists/upload", h.authed(h.handleUpload))
	mux.Handle("GET /api/stats", h.authed(h.handleStats))
}

// authed wraps a handler func with bearer token authentication.
func (h *Handler) authed(fn http.HandlerFunc) http.Handler {
	return h.authMiddleware.Authenticate(fn)
}

// handleHealthz returns 200 OK if the database is reachable.
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if err := h.pool.Ping(r.Context()); err != nil {
		slog.Error("database health check failed", "error", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Ping checks if the database is reachable (used for testing).
func (h *Handler) Ping(ctx context.Context) error {
	return h.pool.Ping(ctx)
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes the standard {message} error envelope.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, dto.NewErrorResponse(message))
}

// respondDomainError maps a domain error to status and message and writes it.
func respondDomainError(w http.ResponseWriter, err error) {
	status, message := dto.MapDomainError(err)
	respondError(w, status, message)
}
