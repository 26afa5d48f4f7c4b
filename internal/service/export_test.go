package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"envlogs/internal/model"
	"envlogs/internal/repository"
	repoMocks "envlogs/internal/repository/mocks"
	slackMocks "envlogs/internal/slack/mocks"
	"envlogs/internal/storage"
	storeMocks "envlogs/internal/storage/mocks"
	znMocks "envlogs/internal/zeronet/mocks"
)

func TestExportService_Export(t *testing.T) {
	ctx := context.Background()

	req := ExportRequest{
		EnvironmentID: "env-1",
		Region:        "us-east1",
		DeploymentID:  "dep-1",
		RequestedBy:   "U123",
	}
	logLines := []json.RawMessage{
		json.RawMessage(`{"msg":"boot"}`),
		json.RawMessage(`{"msg":"ready"}`),
	}

	t.Run("happy path", func(t *testing.T) {
		dir := &znMocks.MockDirectory{}
		client := &znMocks.MockClient{}
		store := &storeMocks.MockStorage{}
		repo := &repoMocks.MockExportRepository{}
		notifier := &slackMocks.MockNotifier{}

		dir.On("ClientFor", "us-east1").Return(client, true)
		client.On("FetchLogs", ctx, "env-1", "dep-1").Return(logLines, nil)

		var archived string
		store.On("Put", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "logs/env-1/dep-1/") && strings.HasSuffix(key, ".ndjson")
		}), mock.Anything, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
			return opt.ContentType == archiveContentType && opt.Size > 0
		})).Run(func(args mock.Arguments) {
			archived = args.String(1)
			b, _ := io.ReadAll(args.Get(2).(io.Reader))
			assert.Equal(t, "{\"msg\":\"boot\"}\n{\"msg\":\"ready\"}\n", string(b))
		}).Return(storage.ObjectInfo{Key: "logs/env-1/dep-1/x.ndjson", Size: 32}, nil)

		repo.On("Create", ctx, mock.MatchedBy(func(e *model.LogExport) bool {
			return e.EnvironmentID == "env-1" &&
				e.DeploymentID == "dep-1" &&
				e.LineCount == 2 &&
				e.RequestedBy == "U123" &&
				e.StoragePath == "logs/env-1/dep-1/x.ndjson"
		})).Return(&model.LogExport{ID: "gen-id", Region: "us-east1"}, nil)

		store.On("PresignGet", ctx, mock.AnythingOfType("string"), presignExpiry).
			Return("https://minio.test/presigned", nil)

		notifier.On("Post", ctx, mock.Anything).Return(nil)

		svc := NewExportService(dir, store, repo, notifier, "C123")

		export, url, err := svc.Export(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "gen-id", export.ID)
		assert.Equal(t, "https://minio.test/presigned", url)
		assert.NotEmpty(t, archived)
		store.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("missing ids", func(t *testing.T) {
		svc := NewExportService(&znMocks.MockDirectory{}, &storeMocks.MockStorage{}, &repoMocks.MockExportRepository{}, &slackMocks.MockNotifier{}, "C123")

		_, _, err := svc.Export(ctx, ExportRequest{Region: "us-east1"})
		assert.ErrorIs(t, err, ErrIDRequired)
	})

	t.Run("unusable region", func(t *testing.T) {
		dir := &znMocks.MockDirectory{}
		dir.On("ClientFor", "ap-south7").Return(nil, false)

		svc := NewExportService(dir, &storeMocks.MockStorage{}, &repoMocks.MockExportRepository{}, &slackMocks.MockNotifier{}, "C123")

		_, _, err := svc.Export(ctx, ExportRequest{EnvironmentID: "e", DeploymentID: "d", Region: "ap-south7"})
		assert.ErrorIs(t, err, ErrRegionUnavailable)
	})

	t.Run("fetch failure", func(t *testing.T) {
		dir := &znMocks.MockDirectory{}
		client := &znMocks.MockClient{}
		dir.On("ClientFor", "us-east1").Return(client, true)
		client.On("FetchLogs", ctx, "env-1", "dep-1").Return(nil, errors.New("timeout"))

		svc := NewExportService(dir, &storeMocks.MockStorage{}, &repoMocks.MockExportRepository{}, &slackMocks.MockNotifier{}, "C123")

		_, _, err := svc.Export(ctx, req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "fetch logs")
	})

	t.Run("db failure rolls back the archive", func(t *testing.T) {
		dir := &znMocks.MockDirectory{}
		client := &znMocks.MockClient{}
		store := &storeMocks.MockStorage{}
		repo := &repoMocks.MockExportRepository{}

		dir.On("ClientFor", "us-east1").Return(client, true)
		client.On("FetchLogs", ctx, "env-1", "dep-1").Return(logLines, nil)
		store.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{Key: "logs/k.ndjson", Size: 10}, nil)
		repo.On("Create", ctx, mock.Anything).Return(nil, errors.New("insert failed"))
		store.On("Delete", ctx, mock.Anything).Return(nil)

		svc := NewExportService(dir, store, repo, &slackMocks.MockNotifier{}, "C123")

		_, _, err := svc.Export(ctx, req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db save failed")
		store.AssertCalled(t, "Delete", ctx, mock.Anything)
	})

	t.Run("notify failure does not fail the export", func(t *testing.T) {
		dir := &znMocks.MockDirectory{}
		client := &znMocks.MockClient{}
		store := &storeMocks.MockStorage{}
		repo := &repoMocks.MockExportRepository{}
		notifier := &slackMocks.MockNotifier{}

		dir.On("ClientFor", "us-east1").Return(client, true)
		client.On("FetchLogs", ctx, "env-1", "dep-1").Return(logLines, nil)
		store.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{Key: "logs/k.ndjson", Size: 10}, nil)
		repo.On("Create", ctx, mock.Anything).Return(&model.LogExport{ID: "gen-id"}, nil)
		store.On("PresignGet", ctx, mock.Anything, presignExpiry).Return("https://minio.test/p", nil)
		notifier.On("Post", ctx, mock.Anything).Return(errors.New("slack down"))

		svc := NewExportService(dir, store, repo, notifier, "C123")

		export, _, err := svc.Export(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "gen-id", export.ID)
	})
}

func TestExportService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		repo := &repoMocks.MockExportRepository{}
		store := &storeMocks.MockStorage{}
		repo.On("FindByID", ctx, "id-1").Return(&model.LogExport{ID: "id-1", StoragePath: "logs/a.ndjson"}, nil)
		store.On("PresignGet", ctx, "logs/a.ndjson", presignExpiry).Return("https://minio.test/a", nil)

		svc := NewExportService(&znMocks.MockDirectory{}, store, repo, &slackMocks.MockNotifier{}, "C123")

		export, url, err := svc.Get(ctx, "id-1")
		require.NoError(t, err)
		assert.Equal(t, "id-1", export.ID)
		assert.Equal(t, "https://minio.test/a", url)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &repoMocks.MockExportRepository{}
		repo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		svc := NewExportService(&znMocks.MockDirectory{}, &storeMocks.MockStorage{}, repo, &slackMocks.MockNotifier{}, "C123")

		_, _, err := svc.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty id", func(t *testing.T) {
		svc := NewExportService(&znMocks.MockDirectory{}, &storeMocks.MockStorage{}, &repoMocks.MockExportRepository{}, &slackMocks.MockNotifier{}, "C123")

		_, _, err := svc.Get(ctx, "")
		assert.ErrorIs(t, err, ErrIDRequired)
	})
}

func TestExportService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults applied", func(t *testing.T) {
		repo := &repoMocks.MockExportRepository{}
		repo.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
			Return(&repository.PageResult[model.LogExport]{
				Items: []model.LogExport{{ID: "id-1"}},
				Total: 1,
			}, nil)

		svc := NewExportService(&znMocks.MockDirectory{}, &storeMocks.MockStorage{}, repo, &slackMocks.MockNotifier{}, "C123")

		res, err := svc.List(ctx, 0, -5)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.Len(t, res.Items, 1)
		repo.AssertExpectations(t)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := &repoMocks.MockExportRepository{}
		repo.On("List", ctx, repository.PageQuery{Limit: 25, Offset: 50}).
			Return(nil, errors.New("db down"))

		svc := NewExportService(&znMocks.MockDirectory{}, &storeMocks.MockStorage{}, repo, &slackMocks.MockNotifier{}, "C123")

		_, err := svc.List(ctx, 25, 50)
		require.Error(t, err)
	})
}
