package repository

import (
	"context"

	"envlogs/internal/model"
)

// ExportRepository defines data access for log export records using SQL queries only.
// No business logic here — strictly persistence operations.
type ExportRepository interface {
	// Create inserts a new export record.
	// The caller provides required fields (ID, CreatedAt, …) per the schema defaults.
	// Returns the stored record (may include values set by the DB).
	Create(ctx context.Context, export *model.LogExport) (*model.LogExport, error)

	// FindByID returns an export record by its ID.
	FindByID(ctx context.Context, id string) (*model.LogExport, error)

	// List returns a paginated list of export records and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.LogExport], error)

	// Delete removes an export record by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
