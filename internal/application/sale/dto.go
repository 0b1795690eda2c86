package sale

import (
	"time"

	"github.com/erp/saleproject/internal/domain/sale"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Requests ====================

// CreateSaleRequest represents a request to create a sale
type CreateSaleRequest struct {
	PartyID        uuid.UUID   `json:"party_id" binding:"required"`
	PartyName      string      `json:"party_name" binding:"required,min=1,max=200"`
	Description    string      `json:"description" binding:"max=500"`
	InvoiceMethod  string      `json:"invoice_method" binding:"omitempty,oneof=manual order shipment"`
	ShipmentMethod string      `json:"shipment_method" binding:"omitempty,oneof=manual order invoice"`
	Lines          []LineInput `json:"lines" binding:"dive"`
}

// UpdateSaleRequest represents a request to update sale header fields
type UpdateSaleRequest struct {
	Description    *string `json:"description" binding:"omitempty,max=500"`
	InvoiceMethod  *string `json:"invoice_method" binding:"omitempty,oneof=manual order shipment"`
	ShipmentMethod *string `json:"shipment_method" binding:"omitempty,oneof=manual order invoice"`
}

// LineInput carries the fields of a sale line. In a create request lines
// reference their parent by position through ParentIndex.
type LineInput struct {
	Type        string          `json:"type" binding:"required,line_type"`
	ParentID    *uuid.UUID      `json:"parent_id"`
	ParentIndex *int            `json:"parent_index" binding:"omitempty,min=0"`
	ProductID   *uuid.UUID      `json:"product_id"`
	Description string          `json:"description" binding:"max=500"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit" binding:"max=20"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	CostPrice   decimal.Decimal `json:"cost_price"`
}

func (in LineInput) toSpec() sale.LineSpec {
	return sale.LineSpec{
		Type:        sale.LineType(in.Type),
		ParentID:    in.ParentID,
		ProductID:   in.ProductID,
		Description: in.Description,
		Quantity:    in.Quantity,
		UnitCode:    in.Unit,
		UnitPrice:   in.UnitPrice,
		CostPrice:   in.CostPrice,
	}
}

// SetProjectRequest links a sale to an existing project or asks for one to be
// generated on processing. Sending neither clears the link.
type SetProjectRequest struct {
	WorkID        *uuid.UUID `json:"work_id"`
	CreateProject bool       `json:"create_project"`
}

// ChangePartyRequest moves a sale and its project to another party
type ChangePartyRequest struct {
	PartyID   uuid.UUID `json:"party_id" binding:"required"`
	PartyName string    `json:"party_name" binding:"required,min=1,max=200"`
}

// SaleListFilter represents filter options for the sale list
type SaleListFilter struct {
	Search   string     `form:"search"`
	PartyID  *uuid.UUID `form:"party_id"`
	WorkID   *uuid.UUID `form:"work_id"`
	State    string     `form:"state" binding:"omitempty,sale_state"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string     `form:"order_by" binding:"omitempty,oneof=number created_at updated_at state"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ==================== Responses ====================

// SaleLineResponse represents a sale line in API responses
type SaleLineResponse struct {
	ID          uuid.UUID       `json:"id"`
	Sequence    int             `json:"sequence"`
	Type        string          `json:"type"`
	ParentID    *uuid.UUID      `json:"parent_id,omitempty"`
	ProductID   *uuid.UUID      `json:"product_id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	Amount      decimal.Decimal `json:"amount"`
	TaskID      *uuid.UUID      `json:"task_id,omitempty"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID             uuid.UUID          `json:"id"`
	CompanyID      uuid.UUID          `json:"company_id"`
	Number         string             `json:"number"`
	Description    string             `json:"description"`
	PartyID        uuid.UUID          `json:"party_id"`
	PartyName      string             `json:"party_name"`
	InvoiceMethod  string             `json:"invoice_method"`
	ShipmentMethod string             `json:"shipment_method"`
	State          string             `json:"state"`
	WorkID         *uuid.UUID         `json:"work_id,omitempty"`
	CreateProject  bool               `json:"create_project"`
	Lines          []SaleLineResponse `json:"lines"`
	TotalAmount    decimal.Decimal    `json:"total_amount"`
	QuotedAt       *time.Time         `json:"quoted_at,omitempty"`
	ConfirmedAt    *time.Time         `json:"confirmed_at,omitempty"`
	ProcessedAt    *time.Time         `json:"processed_at,omitempty"`
	DoneAt         *time.Time         `json:"done_at,omitempty"`
	CancelledAt    *time.Time         `json:"cancelled_at,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	Version        int                `json:"version"`
}

// SaleListItemResponse is the list representation of a sale
type SaleListItemResponse struct {
	ID            uuid.UUID  `json:"id"`
	Number        string     `json:"number"`
	PartyID       uuid.UUID  `json:"party_id"`
	PartyName     string     `json:"party_name"`
	State         string     `json:"state"`
	WorkID        *uuid.UUID `json:"work_id,omitempty"`
	CreateProject bool       `json:"create_project"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ProcessResponse is returned after processing a sale
type ProcessResponse struct {
	Sale         SaleResponse `json:"sale"`
	ProjectID    *uuid.UUID   `json:"project_id,omitempty"`
	TasksCreated int          `json:"tasks_created"`
	TasksUpdated int          `json:"tasks_updated"`
}

// LoadProjectResponse is returned after loading project lines into a sale
type LoadProjectResponse struct {
	Sale         SaleResponse `json:"sale"`
	LinesCreated int          `json:"lines_created"`
}

// ToSaleLineResponse converts a domain line to a response
func ToSaleLineResponse(l *sale.SaleLine) SaleLineResponse {
	return SaleLineResponse{
		ID:          l.ID,
		Sequence:    l.Sequence,
		Type:        string(l.Type),
		ParentID:    l.ParentID,
		ProductID:   l.ProductID,
		Description: l.Description,
		Quantity:    l.Quantity,
		Unit:        l.UnitCode,
		UnitPrice:   l.UnitPrice,
		CostPrice:   l.CostPrice,
		Amount:      l.Amount(),
		TaskID:      l.TaskID,
	}
}

// ToSaleResponse converts a domain sale to a response
func ToSaleResponse(s *sale.Sale) SaleResponse {
	lines := make([]SaleLineResponse, len(s.Lines))
	for i := range s.Lines {
		lines[i] = ToSaleLineResponse(&s.Lines[i])
	}
	return SaleResponse{
		ID:             s.ID,
		CompanyID:      s.CompanyID,
		Number:         s.Number,
		Description:    s.Description,
		PartyID:        s.PartyID,
		PartyName:      s.PartyName,
		InvoiceMethod:  string(s.InvoiceMethod),
		ShipmentMethod: string(s.ShipmentMethod),
		State:          string(s.State),
		WorkID:         s.WorkID,
		CreateProject:  s.CreateProject,
		Lines:          lines,
		TotalAmount:    s.TotalAmount(),
		QuotedAt:       s.QuotedAt,
		ConfirmedAt:    s.ConfirmedAt,
		ProcessedAt:    s.ProcessedAt,
		DoneAt:         s.DoneAt,
		CancelledAt:    s.CancelledAt,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
		Version:        s.Version,
	}
}

// ToSaleListItemResponses converts domain sales to list items
func ToSaleListItemResponses(sales []sale.Sale) []SaleListItemResponse {
	out := make([]SaleListItemResponse, len(sales))
	for i := range sales {
		s := &sales[i]
		out[i] = SaleListItemResponse{
			ID:            s.ID,
			Number:        s.Number,
			PartyID:       s.PartyID,
			PartyName:     s.PartyName,
			State:         string(s.State),
			WorkID:        s.WorkID,
			CreateProject: s.CreateProject,
			CreatedAt:     s.CreatedAt,
			UpdatedAt:     s.UpdatedAt,
		}
	}
	return out
}
