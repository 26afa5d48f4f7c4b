package postgres

import (
	"context"
	"database/sql"

	"envlogs/internal/model"
	"envlogs/internal/repository"
)

// ExportPostgres is a PostgreSQL implementation of repository.ExportRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type ExportPostgres struct {
	db *sql.DB
}

// NewExportPostgres creates a new ExportPostgres repository.
func NewExportPostgres(db *sql.DB) *ExportPostgres {
	return &ExportPostgres{db: db}
}

var _ repository.ExportRepository = (*ExportPostgres)(nil)

const exportColumns = `id, environment_id, region, deployment_id, storage_path, size, line_count, requested_by, created_at`

func scanExport(row interface{ Scan(...any) error }, e *model.LogExport) error {
	return row.Scan(
		&e.ID,
		&e.EnvironmentID,
		&e.Region,
		&e.DeploymentID,
		&e.StoragePath,
		&e.Size,
		&e.LineCount,
		&e.RequestedBy,
		&e.CreatedAt,
	)
}

// Create inserts a new export row and returns the stored record.
func (r *ExportPostgres) Create(ctx context.Context, export *model.LogExport) (*model.LogExport, error) {
	const q = `
		INSERT INTO log_exports (id, environment_id, region, deployment_id, storage_path, size, line_count, requested_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + exportColumns
	row := r.db.QueryRowContext(ctx, q,
		export.ID,
		export.EnvironmentID,
		export.Region,
		export.DeploymentID,
		export.StoragePath,
		export.Size,
		export.LineCount,
		export.RequestedBy,
		export.CreatedAt,
	)
	var out model.LogExport
	if err := scanExport(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single export record by its ID.
func (r *ExportPostgres) FindByID(ctx context.Context, id string) (*model.LogExport, error) {
	const q = `
		SELECT ` + exportColumns + `
		FROM log_exports
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var e model.LogExport
	if err := scanExport(row, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns export records using LIMIT/OFFSET pagination and a total count.
func (r *ExportPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.LogExport], error) {
	// Count total rows
	const qCount = `SELECT COUNT(*) FROM log_exports`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	// Fetch page
	const qList = `
		SELECT ` + exportColumns + `
		FROM log_exports
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.LogExport, 0)
	for rows.Next() {
		var e model.LogExport
		if err := scanExport(rows, &e); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.LogExport]{
		Items: items,
		Total: total,
	}, nil
}

// Delete removes an export record by ID. It does not return an error if the row does not exist.
func (r *ExportPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM log_exports WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
