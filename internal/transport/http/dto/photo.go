package dto

import "photo_portfolio/internal/domain/models"

// PhotoUploadInput carries one file of an upload request into the
// ingestion pipeline.
type PhotoUploadInput struct {
	Category string
	Filename string
	Data     []byte
}

// UploadResult reports the outcome for a single file of a batch upload.
// Identity may differ from Filename when a collision suffix was applied.
type UploadResult struct {
	Filename string `json:"filename"`
	Identity string `json:"identity,omitempty"`
	Error    string `json:"error,omitempty"`
}

// UpdateMetadataRequest is a partial metadata edit: absent fields keep
// their stored values.
type UpdateMetadataRequest struct {
	Title          *string `json:"title"`
	Location       *string `json:"location"`
	Description    *string `json:"description"`
	CameraSettings *string `json:"camera_settings"`
}

type AddCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// PhotoItem is one gallery grid entry.
type PhotoItem struct {
	Identity     string `json:"identity"`
	Category     string `json:"category"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// PhotoDetail is the full view of one photo: stored metadata plus links.
type PhotoDetail struct {
	Identity string               `json:"identity"`
	URL      string               `json:"url"`
	Metadata models.PhotoMetadata `json:"metadata"`
}
