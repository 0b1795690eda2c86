package project

import (
	"time"

	"github.com/erp/saleproject/internal/domain/project"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Requests ====================

// CreateProjectRequest represents a request to create a project root
type CreateProjectRequest struct {
	Name          string     `json:"name" binding:"required,min=1,max=255"`
	PartyID       *uuid.UUID `json:"party_id"`
	InvoiceMethod string     `json:"invoice_method" binding:"omitempty,oneof=manual effort progress"`
	CreatedBy     *uuid.UUID `json:"-"`
}

// AddTaskRequest represents a request to add a node under a project.
// A service task is planned in hours; a goods task carries a product, a unit and a quantity.
type AddTaskRequest struct {
	ParentID    *uuid.UUID      `json:"parent_id"`
	Type        string          `json:"type" binding:"omitempty,oneof=project task"`
	Name        string          `json:"name" binding:"required,min=1,max=255"`
	ProductType string          `json:"product_type" binding:"omitempty,oneof=service goods"`
	ProductID   *uuid.UUID      `json:"product_id"`
	EffortHours decimal.Decimal `json:"effort_hours"`
	Unit        string          `json:"unit" binding:"max=20"`
	Quantity    decimal.Decimal `json:"quantity"`
	CostPrice   decimal.Decimal `json:"cost_price"`
}

// ProjectListFilter represents filter options for the project list
type ProjectListFilter struct {
	Search   string     `form:"search"`
	PartyID  *uuid.UUID `form:"party_id"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string     `form:"order_by" binding:"omitempty,oneof=name sequence created_at updated_at"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ==================== Responses ====================

// WorkResponse represents a project node in API responses
type WorkResponse struct {
	ID            uuid.UUID       `json:"id"`
	CompanyID     uuid.UUID       `json:"company_id"`
	RootID        uuid.UUID       `json:"root_id"`
	ParentID      *uuid.UUID      `json:"parent_id,omitempty"`
	Sequence      int             `json:"sequence"`
	Type          string          `json:"type"`
	Name          string          `json:"name"`
	PartyID       *uuid.UUID      `json:"party_id,omitempty"`
	ProductType   string          `json:"product_type"`
	ProductID     *uuid.UUID      `json:"product_id,omitempty"`
	InvoiceMethod string          `json:"invoice_method"`
	Unit          string          `json:"unit,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	EffortHours   decimal.Decimal `json:"effort_hours"`
	Progress      decimal.Decimal `json:"progress"`
	ListPrice     decimal.Decimal `json:"list_price"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	SaleLineIDs   []uuid.UUID     `json:"sale_line_ids"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Version       int             `json:"version"`
}

// TreeNodeResponse is a node together with its children
type TreeNodeResponse struct {
	WorkResponse
	Children []TreeNodeResponse `json:"children"`
}

// NodeCostResponse is the computed cost of one node
type NodeCostResponse struct {
	ID       uuid.UUID       `json:"id"`
	ParentID *uuid.UUID      `json:"parent_id,omitempty"`
	Name     string          `json:"name"`
	Cost     decimal.Decimal `json:"cost"`
}

// CostResponse is the cost of a project and of each of its nodes
type CostResponse struct {
	ProjectID uuid.UUID          `json:"project_id"`
	Total     decimal.Decimal    `json:"total"`
	Nodes     []NodeCostResponse `json:"nodes"`
}

// ToWorkResponse converts a domain Work to a response
func ToWorkResponse(w *project.Work) WorkResponse {
	saleLines := w.SaleLineIDs
	if saleLines == nil {
		saleLines = []uuid.UUID{}
	}
	return WorkResponse{
		ID:            w.ID,
		CompanyID:     w.CompanyID,
		RootID:        w.RootID,
		ParentID:      w.ParentID,
		Sequence:      w.Sequence,
		Type:          string(w.Type),
		Name:          w.Name,
		PartyID:       w.PartyID,
		ProductType:   string(w.InvoiceProductType),
		ProductID:     w.SaleProductID(),
		InvoiceMethod: string(w.ProjectInvoiceMethod),
		Unit:          w.UoMCode,
		Quantity:      w.Quantity,
		EffortHours:   w.EffortHours(),
		Progress:      w.Progress,
		ListPrice:     w.ListPrice,
		CostPrice:     w.CostPrice,
		SaleLineIDs:   saleLines,
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
		Version:       w.Version,
	}
}

// ToWorkResponses converts a slice of domain Works to responses
func ToWorkResponses(works []project.Work) []WorkResponse {
	out := make([]WorkResponse, len(works))
	for i := range works {
		out[i] = ToWorkResponse(&works[i])
	}
	return out
}

// ToTreeResponse converts a tree to nested nodes starting at the root
func ToTreeResponse(tree *project.Tree) TreeNodeResponse {
	return toTreeNode(tree, tree.Root())
}

func toTreeNode(tree *project.Tree, w *project.Work) TreeNodeResponse {
	children := tree.Children(w.ID)
	node := TreeNodeResponse{
		WorkResponse: ToWorkResponse(w),
		Children:     make([]TreeNodeResponse, len(children)),
	}
	for i, c := range children {
		node.Children[i] = toTreeNode(tree, c)
	}
	return node
}
