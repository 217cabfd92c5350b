package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"photo_portfolio/internal/domain/models"
)

// imageExts lists the file extensions the gallery serves.
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// FileStorage abstracts the category-partitioned photo tree.
type FileStorage interface {
	ResolveIdentity(ctx context.Context, category, desiredName string) (string, error)
	Save(ctx context.Context, category, identity string, data []byte) error
	Read(ctx context.Context, category, identity string) ([]byte, error)
	Delete(ctx context.Context, category, identity string) error
	List(ctx context.Context, category string) ([]string, error)
	Exists(category, identity string) bool
	HasCategory(category string) bool
	GetFullPath(category, identity string) string
	BaseURL() string
	GetBaseDir() string
}

// LocalFileStorage stores photos as uploads/{category}/{identity} on the
// local filesystem. Categories are a fixed set created at construction;
// a photo never moves between them.
type LocalFileStorage struct {
	baseDir    string
	baseURL    string
	categories map[string]bool
}

func NewLocalFileStorage(baseDir, baseURL string, categories []string) (*LocalFileStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	set := make(map[string]bool, len(categories))
	for _, category := range categories {
		if err := os.MkdirAll(filepath.Join(baseDir, category), 0755); err != nil {
			return nil, err
		}
		set[category] = true
	}

	return &LocalFileStorage{
		baseDir:    baseDir,
		baseURL:    baseURL,
		categories: set,
	}, nil
}

// ResolveIdentity returns desiredName if it is unused inside the category
// directory, otherwise the first free {base}_{n}{ext} in increasing order.
// The directory is re-listed on every call so sequential uploads of the
// same file name keep producing distinct identities.
func (s *LocalFileStorage) ResolveIdentity(ctx context.Context, category, desiredName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	entries, err := os.ReadDir(filepath.Join(s.baseDir, category))
	if err != nil {
		return "", &models.IdentityResolutionError{Category: category, Err: err}
	}

	used := make(map[string]bool, len(entries))
	for _, entry := range entries {
		used[entry.Name()] = true
	}

	if !used[desiredName] {
		return desiredName, nil
	}

	ext := filepath.Ext(desiredName)
	base := strings.TrimSuffix(desiredName, ext)
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s_%d%s", base, n, ext)
		if !used[candidate] {
			return candidate, nil
		}
	}
}

// Save writes the image bytes under the already resolved identity.
func (s *LocalFileStorage) Save(ctx context.Context, category, identity string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := s.GetFullPath(category, identity)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &models.StorageWriteError{Category: category, Identity: identity, Err: err}
	}

	return nil
}

func (s *LocalFileStorage) Read(ctx context.Context, category, identity string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.ReadFile(s.GetFullPath(category, identity))
}

// Delete removes the photo file. A missing file is reported as-is via
// os.IsNotExist so the caller can apply its tolerance rules.
func (s *LocalFileStorage) Delete(ctx context.Context, category, identity string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Remove(s.GetFullPath(category, identity)); err != nil {
		if os.IsNotExist(err) {
			return err
		}
		return &models.StorageWriteError{Category: category, Identity: identity, Err: err}
	}

	return nil
}

// List returns the image identities present in the category directory,
// sorted by name.
func (s *LocalFileStorage) List(ctx context.Context, category string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Join(s.baseDir, category))
	if err != nil {
		return nil, &models.IdentityResolutionError{Category: category, Err: err}
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if imageExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	return names, nil
}

func (s *LocalFileStorage) Exists(category, identity string) bool {
	_, err := os.Stat(s.GetFullPath(category, identity))
	return err == nil
}

func (s *LocalFileStorage) HasCategory(category string) bool {
	return s.categories[category]
}

func (s *LocalFileStorage) GetFullPath(category, identity string) string {
	return filepath.Join(s.baseDir, category, identity)
}

func (s *LocalFileStorage) BaseURL() string {
	return s.baseURL
}

func (s *LocalFileStorage) GetBaseDir() string {
	return s.baseDir
}
