package project

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mgaillard/projecthub/pkg/response"
)

// Handler handles HTTP requests for project operations
type Handler struct {
	service *Service
}

// NewHandler creates a new project handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for project endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)

	// Membership
	r.Get("/{id}/members", h.GetMembers)
	r.Post("/{id}/members", h.AddMembers)
	r.Delete("/{id}/members/{userId}", h.RemoveMember)

	return r
}

// Create handles POST /projects
// @Summary      Create a new project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        request body CreateProjectRequest true "Project creation request"
// @Success      201 {object} response.APIResponse{data=ProjectResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /projects [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	project, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidName) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to create project")
		return
	}

	response.JSON(w, http.StatusCreated, project.ToResponse())
}

// GetByID handles GET /projects/{id}
// @Summary      Get project by ID
// @Tags         projects
// @Produce      json
// @Param        id path int true "Project ID"
// @Success      200 {object} response.APIResponse{data=ProjectResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /projects/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid project ID")
		return
	}

	project, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get project")
		return
	}

	response.JSON(w, http.StatusOK, project.ToResponse())
}

// List handles GET /projects
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        per_page query int false "Items per page" default(20)
// @Success      200 {object} response.APIResponse{data=[]ProjectResponse}
// @Router       /projects [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	projects, total, err := h.service.List(r.Context(), page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list projects")
		return
	}

	projectResponses := make([]*ProjectResponse, len(projects))
	for i, p := range projects {
		projectResponses[i] = p.ToResponse()
	}

	totalPages := (total + perPage - 1) / perPage
	meta := &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}

	response.JSONWithMeta(w, http.StatusOK, projectResponses, meta)
}

// GetMembers handles GET /projects/{id}/members
// @Summary      Get effective project members
// @Description  Resolve every user attached to the project directly or through nested groups, with the group chain that brought them in
// @Tags         projects
// @Produce      json
// @Param        id path int true "Project ID"
// @Success      200 {object} response.APIResponse{data=[]EffectiveMember}
// @Failure      404 {object} response.APIResponse
// @Router       /projects/{id}/members [get]
func (h *Handler) GetMembers(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid project ID")
		return
	}

	members, err := h.service.GetMembers(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get members")
		return
	}

	response.JSON(w, http.StatusOK, members)
}

// AddMembers handles POST /projects/{id}/members
// @Summary      Add members to project
// @Description  Attach users directly to the project. Fails if the project or any user is missing; a single already-attached user is a conflict, already-attached users among several are skipped.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id path int true "Project ID"
// @Param        request body AddMembersRequest true "User ids to attach"
// @Success      201 {object} response.APIResponse{data=[]AddedMember}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /projects/{id}/members [post]
func (h *Handler) AddMembers(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid project ID")
		return
	}

	var req AddMembersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "user_ids must be an array of integers")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	added, err := h.service.AddMembers(r.Context(), id, req.UserIDs)
	if err != nil {
		switch {
		case errors.Is(err, ErrProjectNotFound), errors.Is(err, ErrUserNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrAlreadyMember):
			response.Conflict(w, err.Error())
		default:
			response.InternalError(w, "Failed to add members")
		}
		return
	}

	response.JSON(w, http.StatusCreated, added)
}

// RemoveMember handles DELETE /projects/{id}/members/{userId}
// @Summary      Remove member from project
// @Description  Detach a user's direct membership from the project
// @Tags         projects
// @Param        id path int true "Project ID"
// @Param        userId path int true "User ID"
// @Success      204
// @Failure      404 {object} response.APIResponse
// @Router       /projects/{id}/members/{userId} [delete]
func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	projectID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid project ID")
		return
	}

	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	if err := h.service.RemoveMember(r.Context(), projectID, userID); err != nil {
		switch {
		case errors.Is(err, ErrProjectNotFound), errors.Is(err, ErrMembershipNotFound):
			response.NotFound(w, err.Error())
		default:
			response.InternalError(w, "Failed to remove member")
		}
		return
	}

	response.NoContent(w)
}
