package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"sync"

	"photo_portfolio/internal/domain/models"
	"photo_portfolio/internal/lib/logger/sl"
)

// photoDocument is the on-disk shape of the metadata store: one JSON
// document mapping photo identity to its metadata record.
type photoDocument struct {
	Photos map[string]models.PhotoMetadata `json:"photos"`
}

// JSONPhotoRepository persists the whole photo metadata mapping as a
// single JSON document, rewritten in full on every mutation.
//
// The document is loaded lazily on first access. All mutations are
// serialized behind one mutex, so within a single process no
// read-modify-write cycle can interleave with another. Across separate
// processes the full rewrite is last-writer-wins; that limitation is
// accepted and demonstrated by a test rather than fixed here.
type JSONPhotoRepository struct {
	log  *slog.Logger
	path string

	mu  sync.Mutex
	doc *photoDocument // nil until first load
}

func NewJSONPhotoRepository(log *slog.Logger, path string) *JSONPhotoRepository {
	return &JSONPhotoRepository{
		log:  log,
		path: path,
	}
}

// Get returns the stored record for identity, or nil when absent.
func (r *JSONPhotoRepository) Get(ctx context.Context, identity string) (*models.PhotoMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.loadLocked()

	meta, ok := r.doc.Photos[identity]
	if !ok {
		return nil, nil
	}
	return &meta, nil
}

// All returns a copy of the full identity -> metadata mapping.
func (r *JSONPhotoRepository) All(ctx context.Context) (map[string]models.PhotoMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.loadLocked()

	out := make(map[string]models.PhotoMetadata, len(r.doc.Photos))
	for identity, meta := range r.doc.Photos {
		out[identity] = meta
	}
	return out, nil
}

// Upsert merges patch over any existing record for identity and rewrites
// the document. On a write failure the in-memory state is rolled back so
// the attempted change is discarded, not partially applied.
func (r *JSONPhotoRepository) Upsert(ctx context.Context, identity string, patch models.MetadataPatch) (models.PhotoMetadata, error) {
	if err := ctx.Err(); err != nil {
		return models.PhotoMetadata{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.loadLocked()

	prev, existed := r.doc.Photos[identity]

	var existing *models.PhotoMetadata
	if existed {
		existing = &prev
	}

	merged := models.MergeMetadata(existing, patch)
	r.doc.Photos[identity] = merged

	if err := r.saveLocked(); err != nil {
		if existed {
			r.doc.Photos[identity] = prev
		} else {
			delete(r.doc.Photos, identity)
		}
		return models.PhotoMetadata{}, err
	}

	return merged, nil
}

// Delete removes the record for identity and rewrites the document.
// A missing record is a no-op, not an error.
func (r *JSONPhotoRepository) Delete(ctx context.Context, identity string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.loadLocked()

	prev, existed := r.doc.Photos[identity]
	if !existed {
		return nil
	}

	delete(r.doc.Photos, identity)

	if err := r.saveLocked(); err != nil {
		r.doc.Photos[identity] = prev
		return err
	}

	return nil
}

// loadLocked reads the document on first access. A missing or unparsable
// file falls back to an empty store: the condition is logged, never fatal.
func (r *JSONPhotoRepository) loadLocked() {
	if r.doc != nil {
		return
	}

	r.doc = &photoDocument{Photos: make(map[string]models.PhotoMetadata)}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			r.log.Warn("metadata document unreadable, starting empty",
				slog.String("path", r.path), sl.Err(err))
		}
		return
	}

	var doc photoDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		r.log.Warn("metadata document corrupt, starting empty",
			slog.String("path", r.path), sl.Err(err))
		return
	}
	if doc.Photos != nil {
		r.doc.Photos = doc.Photos
	}
}

func (r *JSONPhotoRepository) saveLocked() error {
	data, err := json.MarshalIndent(r.doc, "", "  ")
	if err != nil {
		return &models.PersistenceError{Path: r.path, Err: err}
	}

	if err := os.WriteFile(r.path, data, 0644); err != nil {
		return &models.PersistenceError{Path: r.path, Err: err}
	}

	return nil
}
