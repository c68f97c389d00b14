package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/l9kk/CRM-backend/internal/middleware"
	"github.com/l9kk/CRM-backend/internal/models"
	"github.com/l9kk/CRM-backend/internal/services"
	"github.com/l9kk/CRM-backend/internal/utils"
)

// ProjectHandler - структура для обработки HTTP-запросов к заявкам.
type ProjectHandler struct {
	Service *services.ProjectService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewProjectHandler создаёт новый экземпляр ProjectHandler.
func NewProjectHandler(service *services.ProjectService, logger *log.Logger, timeout time.Duration) *ProjectHandler {
	return &ProjectHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// GetProjects обрабатывает запросы для получения списка заявок.
func (h *ProjectHandler) GetProjects(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	query := r.URL.Query()

	limit, offset, err := utils.ParseLimitOffset(query.Get("limit"), query.Get("offset"), 0)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	filter := models.ProjectFilter{
		Statuses: query["status"],
		Category: query.Get("category"),
		Search:   query.Get("search"),
		Ordering: query.Get("ordering"),
		Limit:    limit,
		Offset:   offset,
	}

	if gteStr := query.Get("budget_gte"); gteStr != "" {
		gte, err := strconv.ParseFloat(gteStr, 64)
		if err != nil {
			utils.SendErrorResponse(w, http.StatusBadRequest, "invalid budget_gte parameter, must be a number")
			return
		}
		filter.BudgetGte = &gte
	}
	if lteStr := query.Get("budget_lte"); lteStr != "" {
		lte, err := strconv.ParseFloat(lteStr, 64)
		if err != nil {
			utils.SendErrorResponse(w, http.StatusBadRequest, "invalid budget_lte parameter, must be a number")
			return
		}
		filter.BudgetLte = &lte
	}

	projects, err := h.Service.FetchProjects(ctx, filter)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to fetch projects")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, projects)
}

// GetProject обрабатывает запросы для получения одной заявки.
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	projectID := r.PathValue("projectId")

	project, err := h.Service.GetProject(ctx, projectID)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to fetch project")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, project)
}

// CreateProject обрабатывает публичные запросы для создания заявки.
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var projectReq models.ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&projectReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	project, err := h.Service.CreateProject(ctx, projectReq)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to create project")
		return
	}

	utils.SendJSONResponse(w, http.StatusCreated, project)
}

// AcceptProject обрабатывает запросы для принятия заявки.
func (h *ProjectHandler) AcceptProject(w http.ResponseWriter, r *http.Request) {
	h.decideProject(w, r, h.Service.AcceptProject)
}

// RejectProject обрабатывает запросы для отклонения заявки.
func (h *ProjectHandler) RejectProject(w http.ResponseWriter, r *http.Request) {
	h.decideProject(w, r, h.Service.RejectProject)
}

func (h *ProjectHandler) decideProject(
	w http.ResponseWriter,
	r *http.Request,
	decide func(context.Context, string, models.DecisionRequest, string) (*models.DecisionResponse, error),
) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	projectID := r.PathValue("projectId")
	identity, _ := middleware.IdentityFrom(r.Context())

	// Тело с comment_text необязательно.
	var decisionReq models.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&decisionReq); err != nil && !errors.Is(err, io.EOF) {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	decision, err := decide(ctx, projectID, decisionReq, identity.Username)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to update project status")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, decision)
}
