package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/opsdesk/agentdesk/internal/config"
	"github.com/opsdesk/agentdesk/internal/domain"
	"github.com/opsdesk/agentdesk/internal/handler/dto"
	"github.com/opsdesk/agentdesk/internal/middleware"
)

// handleLists returns all uploaded lists newest-first.
// @Summary List uploads
// @Description Returns all uploaded lists with their distributions, newest first.
// @Tags lists
// @Produce json
// @Success 200 {object} dto.DataResponse{data=[]dto.ListResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /lists [get]
func (h *Handler) handleLists(w http.ResponseWriter, r *http.Request) {
	lists, err := h.listService.Lists(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewDataResponse(dto.ToListResponses(lists)))
}

// handleGetList returns one uploaded list with its distributions and items.
// @Summary Get one list
// @Tags lists
// @Produce json
// @Param id path string true "List ID"
// @Success 200 {object} dto.DataResponse{data=dto.ListResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /lists/{id} [get]
func (h *Handler) handleGetList(w http.ResponseWriter, r *http.Request) {
	listID := r.PathValue("id")
	if _, err := uuid.Parse(listID); err != nil {
		respondDomainError(w, domain.ErrListNotFound)
		return
	}

	list, err := h.listService.GetList(r.Context(), listID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewDataResponse(dto.ToListResponse(list)))
}

// handleUpload ingests a spreadsheet and distributes its rows across agents.
// @Summary Upload a list
// @Description Accepts a CSV/XLSX/XLS file and distributes its rows across active agents.
// @Tags lists
// @Accept mpfd
// @Produce json
// @Param file formData file true "Spreadsheet file"
// @Success 201 {object} dto.DataResponse{data=dto.UploadResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /lists/upload [post]
func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	admin, err := middleware.GetAdminFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(w, http.StatusRequestEntityTooLarge, "File is too large")
			return
		}
		respondError(w, http.StatusBadRequest, "Please select a file to upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	list, err := h.listService.Upload(r.Context(), admin.ID, header.Filename, data)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.NewDataResponse(dto.ToUploadResponse(list)))
}
