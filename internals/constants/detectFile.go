package constants

import (
	"path/filepath"
	"strings"
)

const (
	FileTypeImage   = "image"
	FileTypeVideo   = "video"
	FileTypeDoc     = "document"
	FileTypeUnknown = "unknown"
)

// DetectFileTypeFromExt classifies a file name or URL by extension, ignoring any query string.
func DetectFileTypeFromExt(filename string) string {
	if i := strings.IndexAny(filename, "?#"); i >= 0 {
		filename = filename[:i]
	}
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp", ".gif":
		return FileTypeImage
	case ".mp4", ".mov", ".webm":
		return FileTypeVideo
	case ".pdf", ".doc", ".docx", ".ppt", ".pptx":
		return FileTypeDoc
	default:
		return FileTypeUnknown
	}
}
