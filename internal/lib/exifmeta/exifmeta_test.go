package exifmeta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode_NoExifData(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty input", nil},
		{"garbage bytes", []byte("definitely not an image")},
		{"truncated jpeg header", []byte{0xFF, 0xD8, 0xFF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Decode(tt.data)
			assert.True(t, rec.IsEmpty())
		})
	}
}

func TestFromTags(t *testing.T) {
	rec := fromTags(map[string]string{
		"Model":            "NIKON D850",
		"LensModel":        "NIKKOR 24-70mm f/2.8",
		"ExposureTime":     "1/250",
		"FNumber":          "28/10",
		"ISOSpeedRatings":  "400",
		"FocalLength":      "350/10",
		"DateTimeOriginal": "2024:03:15 09:30:05",
	})

	assert.Equal(t, "NIKON D850", rec.Camera)
	assert.Equal(t, "NIKKOR 24-70mm f/2.8", rec.Lens)
	assert.Equal(t, "1/250 seconds", rec.Exposure)
	assert.Equal(t, "f/2.8", rec.FNumber)
	assert.Equal(t, "ISO 400", rec.ISO)
	assert.Equal(t, "35 mm", rec.FocalLength)
	assert.Equal(t, "2024-03-15", rec.Date)
}

func TestFromTags_MalformedTagDegradesOnlyItself(t *testing.T) {
	rec := fromTags(map[string]string{
		"Model":           "Canon EOS R5",
		"ExposureTime":    "not-a-rational",
		"FNumber":         "4/0",
		"ISOSpeedRatings": "high",
		"FocalLength":     "0/10",
	})

	assert.Equal(t, "Canon EOS R5", rec.Camera)
	assert.Empty(t, rec.Exposure)
	assert.Empty(t, rec.FNumber)
	assert.Empty(t, rec.ISO)
	assert.Empty(t, rec.FocalLength)
}

func TestFromTags_UnparsableDate(t *testing.T) {
	rec := fromTags(map[string]string{
		"DateTimeOriginal": "0000:00:00 00:00:00",
	})
	assert.Empty(t, rec.Date)
}

func TestRenderExposure(t *testing.T) {
	tests := []struct {
		name string
		num  float64
		den  float64
		want string
	}{
		{"fast shutter", 1, 250, "1/250 seconds"},
		{"fraction rounds to nearest", 1, 3, "1/3 seconds"},
		{"decimal fraction", 4, 1000, "1/250 seconds"},
		{"exactly one second", 1, 1, "1.0 seconds"},
		{"long exposure", 30, 1, "30.0 seconds"},
		{"fractional long exposure", 5, 2, "2.5 seconds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderExposure(tt.num, tt.den))
		})
	}
}

func TestParseRational(t *testing.T) {
	num, den, err := parseRational("28/10")
	assert.NoError(t, err)
	assert.Equal(t, 28.0, num)
	assert.Equal(t, 10.0, den)

	for _, bad := range []string{"", "28", "a/b", "4/0", "0/10", "1/2/3"} {
		_, _, err := parseRational(bad)
		assert.Error(t, err, "input %q", bad)
	}
}
