package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LocalStorage implements Storage using the local filesystem
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new local filesystem storage
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{basePath: basePath}, nil
}

// Save stores an artifact and returns its metadata
func (s *LocalStorage) Save(ctx context.Context, analysisID uuid.UUID, filename string, contentType string, r io.Reader) (*ArtifactInfo, error) {
	artifactID := uuid.New()

	runDir := filepath.Join(s.basePath, analysisID.String())
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create artifact directory: %w", err)
	}

	// Sanitize filename and add UUID prefix for uniqueness
	safeFilename := sanitizeFilename(filename)
	storedFilename := fmt.Sprintf("%s_%s", artifactID.String()[:8], safeFilename)
	filePath := filepath.Join(runDir, storedFilename)

	f, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		os.Remove(filePath) // Cleanup on error
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	info := &ArtifactInfo{
		ID:          artifactID,
		Name:        filename,
		Size:        size,
		ContentType: contentType,
		Path:        storedFilename,
		CreatedAt:   time.Now(),
	}

	if err := s.saveMetadata(analysisID, artifactID, info); err != nil {
		os.Remove(filePath) // Cleanup on error
		return nil, err
	}

	return info, nil
}

// Open retrieves an artifact by its ID
func (s *LocalStorage) Open(ctx context.Context, analysisID uuid.UUID, artifactID uuid.UUID) (io.ReadCloser, *ArtifactInfo, error) {
	info, err := s.GetInfo(ctx, analysisID, artifactID)
	if err != nil {
		return nil, nil, err
	}

	filePath := filepath.Join(s.basePath, analysisID.String(), info.Path)
	f, err := os.Open(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}

	return f, info, nil
}

// Delete removes an artifact by its ID
func (s *LocalStorage) Delete(ctx context.Context, analysisID uuid.UUID, artifactID uuid.UUID) error {
	info, err := s.GetInfo(ctx, analysisID, artifactID)
	if err != nil {
		return err
	}

	filePath := filepath.Join(s.basePath, analysisID.String(), info.Path)
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	metaPath := filepath.Join(s.basePath, analysisID.String(), ".meta", artifactID.String()+".json")
	os.Remove(metaPath)

	return nil
}

// List returns all artifacts for an analysis run
func (s *LocalStorage) List(ctx context.Context, analysisID uuid.UUID) ([]*ArtifactInfo, error) {
	metaDir := filepath.Join(s.basePath, analysisID.String(), ".meta")
	if _, err := os.Stat(metaDir); os.IsNotExist(err) {
		return []*ArtifactInfo{}, nil
	}

	entries, err := os.ReadDir(metaDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list metadata: %w", err)
	}

	artifacts := make([]*ArtifactInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		id, err := uuid.Parse(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			continue
		}

		info, err := s.GetInfo(ctx, analysisID, id)
		if err != nil {
			continue
		}
		artifacts = append(artifacts, info)
	}

	return artifacts, nil
}

// GetInfo returns metadata for an artifact without opening it
func (s *LocalStorage) GetInfo(ctx context.Context, analysisID uuid.UUID, artifactID uuid.UUID) (*ArtifactInfo, error) {
	metaPath := filepath.Join(s.basePath, analysisID.String(), ".meta", artifactID.String()+".json")

	data, err := os.ReadFile(metaPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("artifact not found: %s", artifactID)
		}
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	var info ArtifactInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}

	return &info, nil
}

// saveMetadata saves artifact metadata to a JSON sidecar file
func (s *LocalStorage) saveMetadata(analysisID, artifactID uuid.UUID, info *ArtifactInfo) error {
	metaDir := filepath.Join(s.basePath, analysisID.String(), ".meta")
	if err := os.MkdirAll(metaDir, 0755); err != nil {
		return fmt.Errorf("failed to create metadata directory: %w", err)
	}

	metaPath := filepath.Join(metaDir, artifactID.String()+".json")
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	if err := os.WriteFile(metaPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}

	return nil
}

// sanitizeFilename removes unsafe characters from filenames
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		"..", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	return replacer.Replace(name)
}
