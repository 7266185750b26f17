package curriculum

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoImage is returned when a design carries no illustration.
var ErrNoImage = errors.New("design has no illustration")

// EncodeImage returns data as a base64 data URI. An empty mimeType is
// treated as image/png.
func EncodeImage(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = "image/png"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeImage parses a base64 data URI into its bytes and MIME type.
func DecodeImage(dataURI string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(dataURI, "data:")
	if !ok {
		return nil, "", errors.New("not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", errors.New("data URI has no payload")
	}
	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return nil, "", errors.New("data URI is not base64 encoded")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return data, mimeType, nil
}

// ImageExtension maps a MIME type to a file extension for saving.
func ImageExtension(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".png"
	}
}

// WriteImage saves the illustration to path and returns the path written.
// A path without an extension gets one from the image MIME type.
func (d *Design) WriteImage(path string) (string, error) {
	if !d.HasImage() {
		return "", ErrNoImage
	}
	data, mimeType, err := DecodeImage(d.ImageURL)
	if err != nil {
		return "", err
	}
	if filepath.Ext(path) == "" {
		path += ImageExtension(mimeType)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write illustration: %w", err)
	}
	return path, nil
}
