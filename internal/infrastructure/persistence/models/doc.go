// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// from ORM concerns.
//
// Structure:
//   - base.go: shared columns (id, timestamps, version, company_id)
//   - sale.go: sales and sale_lines
//   - project.go: works, the flat storage of project trees
//   - catalog.go: products and uoms
//
// Every model has ToDomain and FromDomain mappers; repositories only ever
// hand domain values to their callers.
package models
