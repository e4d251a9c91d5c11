package handler

import (
	"encoding/json"
	"net/http"

	"github.com/opsdesk/agentdesk/internal/handler/dto"
	"github.com/opsdesk/agentdesk/internal/middleware"
)

// handleLogin exchanges admin credentials for a bearer token.
// @Summary Log in
// @Description Exchanges email and password for a bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.CredentialsRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	admin, token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.AuthResponse{
		Token: token,
		User:  dto.ToUserResponse(admin),
	})
}

// handleRegister creates an admin account and returns a bearer token.
// @Summary Register an admin account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.CredentialsRequest true "Credentials"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	admin, token, err := h.authService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.AuthResponse{
		Token: token,
		User:  dto.ToUserResponse(admin),
	})
}

// handleMe returns the identity behind the presented token.
// @Summary Current identity
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	admin, err := middleware.GetAdminFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	respondJSON(w, http.StatusOK, dto.ToUserResponse(admin))
}
