package persistence

import (
	"strings"

	"github.com/erp/saleproject/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanyScope restricts a query to one company's rows
func CompanyScope(companyID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if companyID == uuid.Nil {
			_ = db.AddError(shared.NewDomainError("COMPANY_REQUIRED", "company_id is required"))
			return db
		}
		return db.Where("company_id = ?", companyID)
	}
}

// SearchScope matches the pattern against any of the columns, case-insensitively.
// Columns come from code, never from user input.
func SearchScope(search string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		search = strings.TrimSpace(search)
		if search == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + strings.ToLower(search) + "%"
		conds := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, c := range columns {
			conds[i] = "LOWER(" + c + ") LIKE ?"
			args[i] = pattern
		}
		return db.Where(strings.Join(conds, " OR "), args...)
	}
}

// PageScope applies ordering and pagination from a filter
func PageScope(filter shared.Filter, sort SortColumns) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Order(sort.Clause(filter.OrderBy, filter.OrderDir))
		if filter.Page > 0 && filter.PageSize > 0 {
			db = db.Offset(filter.Offset()).Limit(filter.PageSize)
		}
		return db
	}
}
