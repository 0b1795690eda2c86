package handler

import (
	projectapp "github.com/erp/saleproject/internal/application/project"
	"github.com/erp/saleproject/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProjectHandler handles project tree API endpoints
type ProjectHandler struct {
	BaseHandler
	workService *projectapp.WorkService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(workService *projectapp.WorkService) *ProjectHandler {
	return &ProjectHandler{workService: workService}
}

// Create godoc
// @Summary      Create a project
// @Description  Create a project root that sales can later be linked to
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        request body projectapp.CreateProjectRequest true "Project creation request"
// @Success      201 {object} APIResponse[projectapp.WorkResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	var req projectapp.CreateProjectRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if userID := middleware.GetUserID(c); userID != uuid.Nil {
		req.CreatedBy = &userID
	}

	resp, err := h.workService.CreateProject(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List godoc
// @Summary      List projects
// @Description  List the project roots of the company
// @Tags         projects
// @Produce      json
// @Param        search query string false "Search in name"
// @Param        party_id query string false "Party ID"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Sort field" Enums(name, sequence, created_at, updated_at)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]projectapp.WorkResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	var filter projectapp.ProjectListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	items, total, err := h.workService.List(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Get godoc
// @Summary      Get a project tree
// @Description  Retrieve a project with all of its descendant nodes
// @Tags         projects
// @Produce      json
// @Param        id path string true "Project ID" format(uuid)
// @Success      200 {object} APIResponse[projectapp.TreeNodeResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /projects/{id} [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	companyID, projectID, ok := h.scoped(c)
	if !ok {
		return
	}
	resp, err := h.workService.GetTree(c.Request.Context(), companyID, projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddTask godoc
// @Summary      Add a task
// @Description  Add a task or a sub-project under a node of the project tree
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID" format(uuid)
// @Param        request body projectapp.AddTaskRequest true "Task"
// @Success      201 {object} APIResponse[projectapp.TreeNodeResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /projects/{id}/tasks [post]
func (h *ProjectHandler) AddTask(c *gin.Context) {
	companyID, projectID, ok := h.scoped(c)
	if !ok {
		return
	}
	var req projectapp.AddTaskRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.workService.AddTask(c.Request.Context(), companyID, projectID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Cost godoc
// @Summary      Project cost
// @Description  Aggregate the cost of every node of the project tree
// @Tags         projects
// @Produce      json
// @Param        id path string true "Project ID" format(uuid)
// @Success      200 {object} APIResponse[projectapp.CostResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /projects/{id}/cost [get]
func (h *ProjectHandler) Cost(c *gin.Context) {
	companyID, projectID, ok := h.scoped(c)
	if !ok {
		return
	}
	resp, err := h.workService.Cost(c.Request.Context(), companyID, projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Copy godoc
// @Summary      Copy a project
// @Description  Duplicate a project tree. The copy drops every sale line link.
// @Tags         projects
// @Produce      json
// @Param        id path string true "Project ID" format(uuid)
// @Success      201 {object} APIResponse[projectapp.TreeNodeResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /projects/{id}/copy [post]
func (h *ProjectHandler) Copy(c *gin.Context) {
	companyID, projectID, ok := h.scoped(c)
	if !ok {
		return
	}
	resp, err := h.workService.Copy(c.Request.Context(), companyID, projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}
