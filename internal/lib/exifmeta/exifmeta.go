package exifmeta

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"photo_portfolio/internal/domain/models"

	exif "github.com/dsoprea/go-exif/v3"
)

const captureDateLayout = "2006:01:02 15:04:05"

// Decode extracts the camera-relevant EXIF subset from raw image bytes.
// It never returns an error: a missing EXIF block yields an empty record,
// and a malformed tag degrades that single field to absent. Cameras emit
// inconsistent tag encodings in practice, so every field is derived
// independently.
func Decode(data []byte) models.ExifRecord {
	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil {
		// Covers exif.ErrNoExif and any scanner failure alike: the
		// image is still ingestable without camera metadata.
		return models.ExifRecord{}
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return models.ExifRecord{}
	}

	tags := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.TagName == "" {
			continue
		}
		value := strings.ReplaceAll(entry.FormattedFirst, "\x00", "")
		if value == "" {
			continue
		}
		// IFD0 values win over thumbnail IFD duplicates.
		if _, ok := tags[entry.TagName]; !ok {
			tags[entry.TagName] = value
		}
	}

	return fromTags(tags)
}

// fromTags applies the per-field derivation rules to a flat tag map.
func fromTags(tags map[string]string) models.ExifRecord {
	var rec models.ExifRecord

	if v, ok := tags["Model"]; ok {
		rec.Camera = strings.TrimSpace(v)
	}
	if v, ok := tags["LensModel"]; ok {
		rec.Lens = strings.TrimSpace(v)
	}
	if v, ok := tags["ExposureTime"]; ok {
		if num, den, err := parseRational(v); err == nil {
			rec.Exposure = renderExposure(num, den)
		}
	}
	if v, ok := tags["FNumber"]; ok {
		if num, den, err := parseRational(v); err == nil {
			rec.FNumber = fmt.Sprintf("f/%.1f", num/den)
		}
	}
	if v, ok := tags["ISOSpeedRatings"]; ok {
		if iso, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			rec.ISO = fmt.Sprintf("ISO %d", iso)
		}
	}
	if v, ok := tags["FocalLength"]; ok {
		if num, den, err := parseRational(v); err == nil {
			rec.FocalLength = fmt.Sprintf("%d mm", int(math.Round(num/den)))
		}
	}
	if v, ok := tags["DateTimeOriginal"]; ok {
		if t, err := time.Parse(captureDateLayout, v); err == nil {
			rec.Date = t.Format("2006-01-02")
		}
	}

	return rec
}

// renderExposure renders an exposure rational in the photographic
// convention: whole seconds at or above 1s, reciprocal below.
func renderExposure(num, den float64) string {
	if num >= den {
		return fmt.Sprintf("%.1f seconds", num/den)
	}
	return fmt.Sprintf("1/%d seconds", int(math.Round(den/num)))
}

// parseRational parses the "num/den" form go-exif uses for rational tags.
func parseRational(s string) (float64, float64, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid rational %q", s)
	}
	num, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	den, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil || den == 0 || num == 0 {
		return 0, 0, fmt.Errorf("invalid rational components in %q", s)
	}
	return num, den, nil
}
