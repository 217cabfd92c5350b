package repository

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

const metadataFile = "metadata.json"

type Repository struct {
	Photo    PhotoRepository
	Settings SettingsRepository
}

// NewRepository wires the document-backed repositories over configDir,
// creating the directory if needed.
func NewRepository(log *slog.Logger, configDir string) (*Repository, error) {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config dir: %w", err)
	}

	return &Repository{
		Photo:    NewJSONPhotoRepository(log, filepath.Join(configDir, metadataFile)),
		Settings: NewJSONSettingsRepository(log, configDir),
	}, nil
}
