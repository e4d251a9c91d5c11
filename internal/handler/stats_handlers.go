package handler

import (
	"net/http"

	"github.com/opsdesk/agentdesk/internal/handler/dto"
)

// recentListCount is how many lists the dashboard shows as "recent".
const recentListCount = 5

// handleStats returns the dashboard aggregates.
// @Summary Dashboard stats
// @Description Returns total agents, lists, items, and the most recent uploads.
// @Tags stats
// @Produce json
// @Success 200 {object} dto.DataResponse{data=dto.StatsResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /stats [get]
func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.listService.GetStats(ctx)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	lists, err := h.listService.Lists(ctx)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if len(lists) > recentListCount {
		lists = lists[:recentListCount]
	}

	respondJSON(w, http.StatusOK, dto.NewDataResponse(dto.ToStatsResponse(stats, lists)))
}
