package handler

import (
	"encoding/json"
	"net/http"

	"github.com/opsdesk/agentdesk/internal/handler/dto"
	"github.com/opsdesk/agentdesk/internal/service"
)

// handleListAgents returns all agents in creation order.
// @Summary List agents
// @Tags agents
// @Produce json
// @Success 200 {object} dto.DataResponse{data=[]dto.AgentResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /agents [get]
func (h *Handler) handleListAgents(w http.ResponseWriter, r *http.Request) {
	agents, err := h.agentService.ListAgents(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewDataResponse(dto.ToAgentResponses(agents)))
}

// handleCreateAgent adds a new agent to the roster.
// @Summary Create an agent
// @Tags agents
// @Accept json
// @Produce json
// @Param request body dto.CreateAgentRequest true "Agent fields"
// @Success 201 {object} dto.DataResponse{data=dto.AgentResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /agents [post]
func (h *Handler) handleCreateAgent(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	agent, err := h.agentService.CreateAgent(r.Context(), service.CreateAgentParams{
		Name:     req.Name,
		Email:    req.Email,
		Mobile:   req.Mobile,
		Password: req.Password,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.NewDataResponse(dto.ToAgentResponse(agent)))
}
