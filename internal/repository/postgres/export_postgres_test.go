package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"envlogs/internal/model"
	"envlogs/internal/repository"
)

var exportCols = []string{"id", "environment_id", "region", "deployment_id", "storage_path", "size", "line_count", "requested_by", "created_at"}

func exportRow(e *model.LogExport) *sqlmock.Rows {
	return sqlmock.NewRows(exportCols).
		AddRow(e.ID, e.EnvironmentID, e.Region, e.DeploymentID, e.StoragePath, e.Size, e.LineCount, e.RequestedBy, e.CreatedAt)
}

func TestExportPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewExportPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	export := &model.LogExport{
		ID:            "test-uuid",
		EnvironmentID: "env-1",
		Region:        "us-east1",
		DeploymentID:  "dep-1",
		StoragePath:   "logs/env-1/dep-1/test-uuid.ndjson",
		Size:          123,
		LineCount:     7,
		RequestedBy:   "U123",
		CreatedAt:     now,
	}

	mock.ExpectQuery("INSERT INTO log_exports").
		WithArgs(export.ID, export.EnvironmentID, export.Region, export.DeploymentID, export.StoragePath, export.Size, export.LineCount, export.RequestedBy, export.CreatedAt).
		WillReturnRows(exportRow(export))

	result, err := repo.Create(ctx, export)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, export.ID, result.ID)
	assert.Equal(t, export.StoragePath, result.StoragePath)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExportPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewExportPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		export := &model.LogExport{ID: "test-uuid", EnvironmentID: "env-1", Region: "us-east1", DeploymentID: "dep-1", CreatedAt: time.Now().UTC()}

		mock.ExpectQuery("FROM log_exports").
			WithArgs("test-uuid").
			WillReturnRows(exportRow(export))

		result, err := repo.FindByID(ctx, "test-uuid")

		assert.NoError(t, err)
		assert.Equal(t, "env-1", result.EnvironmentID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("FROM log_exports").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		result, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestExportPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewExportPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()

	mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	rows := sqlmock.NewRows(exportCols).
		AddRow("id-1", "env-1", "us-east1", "dep-1", "logs/a.ndjson", int64(10), 1, "U1", now).
		AddRow("id-2", "env-2", "eu-west12", "dep-2", "logs/b.ndjson", int64(20), 2, "U2", now)

	mock.ExpectQuery("ORDER BY created_at").
		WithArgs(2, 0).
		WillReturnRows(rows)

	result, err := repo.List(ctx, repository.PageQuery{Limit: 2, Offset: 0})

	assert.NoError(t, err)
	assert.Equal(t, 12, result.Total)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, "id-2", result.Items[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExportPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewExportPostgres(db)
	ctx := context.Background()

	t.Run("existing row", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM log_exports").
			WithArgs("id-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, "id-1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row is not an error", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM log_exports").
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, repo.Delete(ctx, "missing"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
