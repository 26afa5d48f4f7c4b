package model

import "time"

// LogExport records one archived deployment-log pull.
// StoragePath is the object key of the NDJSON archive in object storage.
type LogExport struct {
	ID            string    `json:"id"`
	EnvironmentID string    `json:"environment_id"`
	Region        string    `json:"region"`
	DeploymentID  string    `json:"deployment_id"`
	StoragePath   string    `json:"storage_path"`
	Size          int64     `json:"size"`
	LineCount     int       `json:"line_count"`
	RequestedBy   string    `json:"requested_by"`
	CreatedAt     time.Time `json:"created_at"`
}
