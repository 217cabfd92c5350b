package models

import (
	"path/filepath"
	"strings"
	"time"
)

// UploadDateLayout is the timestamp format stored in the metadata document.
const UploadDateLayout = "2006-01-02 15:04:05"

// ExifRecord holds the camera metadata extracted from an image file.
// Every field is optional: extraction failure for one tag leaves that
// field empty and does not affect the others.
type ExifRecord struct {
	Camera      string `json:"camera,omitempty"`
	Lens        string `json:"lens,omitempty"`
	Exposure    string `json:"exposure,omitempty"`
	FNumber     string `json:"f_number,omitempty"`
	ISO         string `json:"iso,omitempty"`
	FocalLength string `json:"focal_length,omitempty"`
	Date        string `json:"date,omitempty"`
}

// IsEmpty reports whether no tag was extracted at all.
func (e ExifRecord) IsEmpty() bool {
	return e == ExifRecord{}
}

// PhotoMetadata is the stored record for one photo identity.
// Category and UploadDate are fixed at ingestion; the editable fields
// (Title, Location, CameraSettings, Description) go through MergeMetadata
// so a partial update never erases a previously stored value.
type PhotoMetadata struct {
	Category       string   `json:"category"`
	UploadDate     string   `json:"upload_date"`
	Title          string   `json:"title"`
	Comments       []string `json:"comments"`
	Location       string   `json:"location,omitempty"`
	CameraSettings string   `json:"camera_settings,omitempty"`
	Description    string   `json:"description,omitempty"`
	ExifRecord
}

// MetadataPatch is a partial PhotoMetadata: nil fields are left untouched
// by MergeMetadata, non-nil fields overwrite.
type MetadataPatch struct {
	Category       *string
	UploadDate     *string
	Title          *string
	Location       *string
	CameraSettings *string
	Description    *string
	Comments       *[]string
	Exif           *ExifRecord
}

// DefaultTitle derives the default photo title from its identity:
// the base file name with the extension stripped.
func DefaultTitle(identity string) string {
	return strings.TrimSuffix(identity, filepath.Ext(identity))
}

// NewUploadDate renders the given time in the stored timestamp format.
func NewUploadDate(t time.Time) string {
	return t.Format(UploadDateLayout)
}

// MergeMetadata merges patch over existing field by field. When existing
// is nil a fresh record is built with documented defaults (empty comment
// list, category/upload date taken from the patch). Category and UploadDate
// of an existing record are never overwritten.
//
// EXIF fields merge per tag: only tags present in the patch overwrite, so
// a re-scan that failed to extract a tag keeps the previously stored value.
func MergeMetadata(existing *PhotoMetadata, patch MetadataPatch) PhotoMetadata {
	var merged PhotoMetadata
	if existing != nil {
		merged = *existing
	} else {
		merged.Comments = []string{}
		if patch.Category != nil {
			merged.Category = *patch.Category
		}
		if patch.UploadDate != nil {
			merged.UploadDate = *patch.UploadDate
		}
	}

	if patch.Title != nil {
		merged.Title = *patch.Title
	}
	if patch.Location != nil {
		merged.Location = *patch.Location
	}
	if patch.CameraSettings != nil {
		merged.CameraSettings = *patch.CameraSettings
	}
	if patch.Description != nil {
		merged.Description = *patch.Description
	}
	if patch.Comments != nil {
		merged.Comments = append([]string{}, (*patch.Comments)...)
	}
	if merged.Comments == nil {
		merged.Comments = []string{}
	}

	if patch.Exif != nil {
		mergeExif(&merged.ExifRecord, *patch.Exif)
	}

	return merged
}

func mergeExif(dst *ExifRecord, src ExifRecord) {
	if src.Camera != "" {
		dst.Camera = src.Camera
	}
	if src.Lens != "" {
		dst.Lens = src.Lens
	}
	if src.Exposure != "" {
		dst.Exposure = src.Exposure
	}
	if src.FNumber != "" {
		dst.FNumber = src.FNumber
	}
	if src.ISO != "" {
		dst.ISO = src.ISO
	}
	if src.FocalLength != "" {
		dst.FocalLength = src.FocalLength
	}
	if src.Date != "" {
		dst.Date = src.Date
	}
}
