// Package storage provides a file store for generated report artifacts.
package storage

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// ArtifactInfo contains metadata about a stored report artifact
type ArtifactInfo struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	Path        string    `json:"path"` // Internal storage path
	CreatedAt   time.Time `json:"created_at"`
}

// Storage defines the interface for artifact storage operations. Artifacts
// are grouped by the analysis run that produced them.
type Storage interface {
	// Save stores an artifact and returns its metadata
	Save(ctx context.Context, analysisID uuid.UUID, filename string, contentType string, r io.Reader) (*ArtifactInfo, error)

	// Open retrieves an artifact by its ID
	Open(ctx context.Context, analysisID uuid.UUID, artifactID uuid.UUID) (io.ReadCloser, *ArtifactInfo, error)

	// Delete removes an artifact by its ID
	Delete(ctx context.Context, analysisID uuid.UUID, artifactID uuid.UUID) error

	// List returns all artifacts for an analysis run
	List(ctx context.Context, analysisID uuid.UUID) ([]*ArtifactInfo, error)

	// GetInfo returns metadata for an artifact without opening it
	GetInfo(ctx context.Context, analysisID uuid.UUID, artifactID uuid.UUID) (*ArtifactInfo, error)
}

// Content types for the artifacts the engine writes.
const (
	ContentTypeCSV  = "text/csv"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeJSON = "application/json"
)

// New creates a Storage implementation rooted at the given directory.
func New(basePath string) (Storage, error) {
	return NewLocalStorage(basePath)
}
