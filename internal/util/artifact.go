package util

import (
	"path/filepath"
	"strings"

	"github.com/accredhub/backend/internal/model"
)

// UploadPrefix is the canonical public path every stored artifact URL lives under.
const UploadPrefix = "/uploads/"

var allowedUploadExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true,
	".pdf": true, ".doc": true, ".docx": true,
	".ppt": true, ".pptx": true, ".xls": true, ".xlsx": true,
	".mp4": true, ".mov": true,
}

// AllowedUpload reports whether the filename carries a supported extension.
func AllowedUpload(filename string) bool {
	return allowedUploadExts[strings.ToLower(filepath.Ext(filename))]
}

// ClassifyArtifact maps an uploaded filename to an artifact type by extension.
// Unknown extensions fall back to document.
func ClassifyArtifact(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png":
		return model.ArtifactImage
	case ".mp4", ".mov":
		return model.ArtifactVideo
	case ".ppt", ".pptx":
		return model.ArtifactSlide
	default:
		return model.ArtifactDocument
	}
}

// NormalizeArtifactURL rewrites an artifact URL so it lives under the canonical
// upload prefix. Absolute URLs and URLs already under the prefix pass through
// unchanged, so the function is idempotent. The "/files-" and "files-" variants
// are a legacy malformed prefix produced by an old client and are fixed up here.
func NormalizeArtifactURL(url string) string {
	if url == "" {
		return url
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	if strings.HasPrefix(url, UploadPrefix) {
		return url
	}
	if strings.HasPrefix(url, "/files-") {
		return "/uploads" + url
	}
	if strings.HasPrefix(url, "files-") {
		return UploadPrefix + url
	}
	return UploadPrefix + strings.TrimPrefix(url, "/")
}

// NormalizeArtifacts re-normalizes every artifact URL in place. Applied on read
// as well as write so records written before the fix still come back clean.
func NormalizeArtifacts(artifacts []model.Artifact) []model.Artifact {
	for i := range artifacts {
		artifacts[i].URL = NormalizeArtifactURL(artifacts[i].URL)
	}
	return artifacts
}
