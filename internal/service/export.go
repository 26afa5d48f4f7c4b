package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"envlogs/internal/model"
	"envlogs/internal/repository"
	"envlogs/internal/slack"
	"envlogs/internal/storage"
)

var ErrRegionUnavailable = errors.New("region is not usable")

// presignExpiry bounds how long an archive download link stays valid.
const presignExpiry = 24 * time.Hour

const archiveContentType = "application/x-ndjson"

// ExportRequest identifies the deployment whose logs should be pulled.
// The fields mirror the get_logs button value.
type ExportRequest struct {
	EnvironmentID string
	Region        string
	DeploymentID  string
	RequestedBy   string
}

// ExportListResult is the service-level DTO for paginated exports.
type ExportListResult struct {
	Items []model.LogExport `json:"data"`
	Total int               `json:"total"`
}

// ExportService defines the use cases around archived log pulls.
type ExportService interface {
	// Export fetches a deployment's logs, archives them as NDJSON in object
	// storage, records the export, and announces the download link.
	// Returns the stored record and a presigned download URL.
	Export(ctx context.Context, req ExportRequest) (*model.LogExport, string, error)

	// Get returns a single export record plus a fresh presigned URL.
	Get(ctx context.Context, id string) (*model.LogExport, string, error)

	// List returns export records using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*ExportListResult, error)
}

type exportService struct {
	dir      RegionDirectory
	store    storage.Storage
	repo     repository.ExportRepository
	notifier slack.Notifier
	channel  string
}

// NewExportService constructs a new ExportService.
func NewExportService(dir RegionDirectory, store storage.Storage, repo repository.ExportRepository, notifier slack.Notifier, channel string) ExportService {
	return &exportService{dir: dir, store: store, repo: repo, notifier: notifier, channel: channel}
}

func (s *exportService) Export(ctx context.Context, req ExportRequest) (*model.LogExport, string, error) {
	if req.EnvironmentID == "" || req.DeploymentID == "" {
		return nil, "", ErrIDRequired
	}

	client, ok := s.dir.ClientFor(req.Region)
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", ErrRegionUnavailable, req.Region)
	}

	lines, err := client.FetchLogs(ctx, req.EnvironmentID, req.DeploymentID)
	if err != nil {
		return nil, "", fmt.Errorf("fetch logs: %w", err)
	}

	// Serialize one JSON log entry per line.
	var buf bytes.Buffer
	for _, line := range lines {
		buf.Write(line)
		buf.WriteByte('\n')
	}

	id := uuid.New().String()
	key := fmt.Sprintf("logs/%s/%s/%s.ndjson", req.EnvironmentID, req.DeploymentID, id)

	objInfo, err := s.store.Put(ctx, key, &buf, storage.PutObjectOptions{
		Size:        int64(buf.Len()),
		ContentType: archiveContentType,
		Metadata: map[string]string{
			"environment-id": req.EnvironmentID,
			"deployment-id":  req.DeploymentID,
			"region":         req.Region,
		},
	})
	if err != nil {
		return nil, "", fmt.Errorf("archive to storage: %w", err)
	}

	export := &model.LogExport{
		ID:            id,
		EnvironmentID: req.EnvironmentID,
		Region:        req.Region,
		DeploymentID:  req.DeploymentID,
		StoragePath:   objInfo.Key,
		Size:          objInfo.Size,
		LineCount:     len(lines),
		RequestedBy:   req.RequestedBy,
		CreatedAt:     time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, export)
	if err != nil {
		// Rollback: delete the archive from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, "", fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, "", fmt.Errorf("db save failed: %w", err)
	}

	downloadURL, err := s.store.PresignGet(ctx, key, presignExpiry)
	if err != nil {
		return nil, "", fmt.Errorf("presign archive: %w", err)
	}

	// The archive is durable at this point; a failed announcement only warrants a warning.
	if err := s.notifier.Post(ctx, slack.BuildExportMessage(s.channel, *stored, downloadURL)); err != nil {
		logInfo(map[string]any{
			"component": "export",
			"event":     "notify_failed",
			"level":     "warn",
			"export_id": stored.ID,
			"error":     err.Error(),
		})
	}

	return stored, downloadURL, nil
}

// Get returns an export record by ID with a fresh download URL.
func (s *exportService) Get(ctx context.Context, id string) (*model.LogExport, string, error) {
	if id == "" {
		return nil, "", ErrIDRequired
	}
	export, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}

	downloadURL, err := s.store.PresignGet(ctx, export.StoragePath, presignExpiry)
	if err != nil {
		return nil, "", fmt.Errorf("presign archive: %w", err)
	}
	return export, downloadURL, nil
}

// List returns paginated exports without exposing repository types.
func (s *exportService) List(ctx context.Context, limit, offset int) (*ExportListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ExportListResult{Items: res.Items, Total: res.Total}, nil
}
