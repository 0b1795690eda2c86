package handler

import (
	saleapp "github.com/erp/saleproject/internal/application/sale"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SaleHandler handles sale API endpoints
type SaleHandler struct {
	BaseHandler
	saleService *saleapp.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService *saleapp.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// SetWorkRequest links a sale to an existing project; null clears the link
// @Description Request body for linking a sale to a project
type SetWorkRequest struct {
	WorkID *uuid.UUID `json:"work_id" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// SetCreateProjectRequest flags a sale for project generation on processing
// @Description Request body for toggling project generation
type SetCreateProjectRequest struct {
	CreateProject *bool `json:"create_project" binding:"required" example:"true"`
}

// Create godoc
// @Summary      Create a sale
// @Description  Create a draft sale with its lines. Lines reference their parent by position through parent_index.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        request body saleapp.CreateSaleRequest true "Sale creation request"
// @Success      201 {object} APIResponse[saleapp.SaleResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales [post]
func (h *SaleHandler) Create(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	var req saleapp.CreateSaleRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.saleService.Create(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List godoc
// @Summary      List sales
// @Description  List the sales of the company with filtering and pagination
// @Tags         sales
// @Produce      json
// @Param        search query string false "Search in number and party name"
// @Param        party_id query string false "Party ID"
// @Param        work_id query string false "Linked project ID"
// @Param        state query string false "Sale state" Enums(draft, quotation, confirmed, processing, done, cancelled)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Sort field" Enums(number, created_at, updated_at, state)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]saleapp.SaleListItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales [get]
func (h *SaleHandler) List(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	var filter saleapp.SaleListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	items, total, err := h.saleService.List(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Get godoc
// @Summary      Get a sale
// @Description  Retrieve a sale with its lines
// @Tags         sales
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Success      200 {object} APIResponse[saleapp.SaleResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/{id} [get]
func (h *SaleHandler) Get(c *gin.Context) {
	companyID, saleID, ok := h.scoped(c)
	if !ok {
		return
	}
	resp, err := h.saleService.GetByID(c.Request.Context(), companyID, saleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update godoc
// @Summary      Update a sale
// @Description  Update the description and the invoice and shipment methods of a sale
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Param        request body saleapp.UpdateSaleRequest true "Sale update request"
// @Success      200 {object} APIResponse[saleapp.SaleResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/{id} [put]
func (h *SaleHandler) Update(c *gin.Context) {
	companyID, saleID, ok := h.scoped(c)
	if !ok {
		return
	}
	var req saleapp.UpdateSaleRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.saleService.Update(c.Request.Context(), companyID, saleID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddLine godoc
// @Summary      Add a sale line
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Param        request body saleapp.LineInput true "Line"
// @Success      201 {object} APIResponse[saleapp.SaleResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/{id}/lines [post]
func (h *SaleHandler) AddLine(c *gin.Context) {
	companyID, saleID, ok := h.scoped(c)
	if !ok {
		return
	}
	var req saleapp.LineInput
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.saleService.AddLine(c.Request.Context(), companyID, saleID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// UpdateLine godoc
// @Summary      Update a sale line
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Param        line_id path string true "Line ID" format(uuid)
// @Param        request body saleapp.LineInput true "Line"
// @Success      200 {object} APIResponse[saleapp.SaleResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/{id}/lines/{line_id} [put]
func (h *SaleHandler) UpdateLine(c *gin.Context) {
	companyID, saleID, ok := h.scoped(c)
	if !ok {
		return
	}
	lineID, ok := h.pathUUID(c, "line_id")
	if !ok {
		return
	}
	var req saleapp.LineInput
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.saleService.UpdateLine(c.Request.Context(), companyID, saleID, lineID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveLine godoc
// @Summary      Remove a sale line
// @Description  Remove a line and its descendants
// @Tags         sales
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Param        line_id path string true "Line ID" format(uuid)
// @Success      200 {object} APIResponse[saleapp.SaleResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/{id}/lines/{line_id} [delete]
func (h *SaleHandler) RemoveLine(c *gin.Context) {
	companyID, saleID, ok := h.scoped(c)
	if !ok {
		return
	}
	lineID, ok := h.pathUUID(c, "line_id")
	if !ok {
		return
	}
	resp, err := h.saleService.RemoveLine(c.Request.Context(), companyID, saleID, lineID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SetWork godoc
// @Summary      Link a project
// @Description  Link the sale to an existing project of the same party, or clear the link with null
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Param        request body SetWorkRequest true "Project link"
// @Success      200 {object} APIResponse[saleapp.SaleResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/{id}/work [put]
func (h *SaleHandler) SetWork(c *gin.Context) {
	companyID, saleID, ok := h.scoped(c)
	if !ok {
		return
	}
	var req SetWorkRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.saleService.SetProject(c.Request.Context(), companyID, saleID, saleapp.SetProjectRequest{WorkID: req.WorkID})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SetCreateProject godoc
// @Summary      Toggle project generation
// @Description  Ask for a project to be generated from the lines when the sale is processed. Clears any linked project.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Param        request body SetCreateProjectRequest true "Project generation flag"
// @Success      200 {object} APIResponse[saleapp.SaleResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/{id}/create-project [put]
func (h *SaleHandler) SetCreateProject(c *gin.Context) {
	companyID, saleID, ok := h.scoped(c)
	if !ok {
		return
	}
	var req SetCreateProjectRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.saleService.SetProject(c.Request.Context(), companyID, saleID, saleapp.SetProjectRequest{CreateProject: *req.CreateProject})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// transition runs one of the state changes that take no body
func (h *SaleHandler) transition(c *gin.Context, fn func(*saleapp.SaleService, *gin.Context, uuid.UUID, uuid.UUID) (*saleapp.SaleResponse, error)) {
	companyID, saleID, ok := h.scoped(c)
	if !ok {
		return
	}
	resp, err := fn(h.saleService, c, companyID, saleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Quote godoc
// @Summary      Quote a sale
// @Description  Move a draft sale to quotation. Checks that a project link uses manual methods.
// @Tags         sales
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Success      200 {object} APIResponse[saleapp.SaleResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/{id}/quote [post]
func (h *SaleHandler) Quote(c *gin.Context) {
	h.transition(c, func(s *saleapp.SaleService, c *gin.Context, companyID, saleID uuid.UUID) (*saleapp.SaleResponse, error) {
		return s.Quote(c.Request.Context(), companyID, saleID)
	})
}

// Confirm godoc
// @Summary      Confirm a sale
// @Tags         sales
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Success      200 {object} APIResponse[saleapp.SaleResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/{id}/confirm [post]
func (h *SaleHandler) Confirm(c *gin.Context) {
	h.transition(c, func(s *saleapp.SaleService, c *gin.Context, companyID, saleID uuid.UUID) (*saleapp.SaleResponse, error) {
		return s.Confirm(c.Request.Context(), companyID, saleID)
	})
}

// Process godoc
// @Summary      Process a sale
// @Description  Process a confirmed sale and synchronize its lines into the project tree.
// @Description  Honours the Idempotency-Key header.
// @Tags         sales
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Param        Idempotency-Key header string false "Replay key"
// @Success      200 {object} APIResponse[saleapp.ProcessResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/{id}/process [post]
func (h *SaleHandler) Process(c *gin.Context) {
	companyID, saleID, ok := h.scoped(c)
	if !ok {
		return
	}
	resp, err := h.saleService.Process(c.Request.Context(), companyID, saleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Done godoc
// @Summary      Mark a sale done
// @Tags         sales
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Success      200 {object} APIResponse[saleapp.SaleResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/{id}/done [post]
func (h *SaleHandler) Done(c *gin.Context) {
	h.transition(c, func(s *saleapp.SaleService, c *gin.Context, companyID, saleID uuid.UUID) (*saleapp.SaleResponse, error) {
		return s.Done(c.Request.Context(), companyID, saleID)
	})
}

// Cancel godoc
// @Summary      Cancel a sale
// @Tags         sales
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Success      200 {object} APIResponse[saleapp.SaleResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/{id}/cancel [post]
func (h *SaleHandler) Cancel(c *gin.Context) {
	h.transition(c, func(s *saleapp.SaleService, c *gin.Context, companyID, saleID uuid.UUID) (*saleapp.SaleResponse, error) {
		return s.Cancel(c.Request.Context(), companyID, saleID)
	})
}

// Draft godoc
// @Summary      Reset a sale to draft
// @Tags         sales
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Success      200 {object} APIResponse[saleapp.SaleResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/{id}/draft [post]
func (h *SaleHandler) Draft(c *gin.Context) {
	h.transition(c, func(s *saleapp.SaleService, c *gin.Context, companyID, saleID uuid.UUID) (*saleapp.SaleResponse, error) {
		return s.Draft(c.Request.Context(), companyID, saleID)
	})
}

// LoadProject godoc
// @Summary      Load lines from the project
// @Description  Append a line for every task of the linked project that no line covers yet.
// @Description  Honours the Idempotency-Key header.
// @Tags         sales
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Param        Idempotency-Key header string false "Replay key"
// @Success      200 {object} APIResponse[saleapp.LoadProjectResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/{id}/load-project [post]
func (h *SaleHandler) LoadProject(c *gin.Context) {
	companyID, saleID, ok := h.scoped(c)
	if !ok {
		return
	}
	resp, err := h.saleService.LoadProject(c.Request.Context(), companyID, saleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Copy godoc
// @Summary      Copy a sale
// @Description  Duplicate a sale as a new draft without its project link. Honours the Idempotency-Key header.
// @Tags         sales
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Param        Idempotency-Key header string false "Replay key"
// @Success      201 {object} APIResponse[saleapp.SaleResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/{id}/copy [post]
func (h *SaleHandler) Copy(c *gin.Context) {
	companyID, saleID, ok := h.scoped(c)
	if !ok {
		return
	}
	resp, err := h.saleService.Copy(c.Request.Context(), companyID, saleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ChangeParty godoc
// @Summary      Change the party
// @Description  Move a sale, and the project it is linked to, to another party
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Param        request body saleapp.ChangePartyRequest true "New party"
// @Success      200 {object} APIResponse[saleapp.SaleResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/{id}/change-party [post]
func (h *SaleHandler) ChangeParty(c *gin.Context) {
	companyID, saleID, ok := h.scoped(c)
	if !ok {
		return
	}
	var req saleapp.ChangePartyRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.saleService.ChangeParty(c.Request.Context(), companyID, saleID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
