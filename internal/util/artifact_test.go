package util

import (
	"testing"

	"github.com/accredhub/backend/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeArtifactURL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"absolute http", "http://cdn.example.com/a.pdf", "http://cdn.example.com/a.pdf"},
		{"absolute https", "https://cdn.example.com/a.pdf", "https://cdn.example.com/a.pdf"},
		{"already canonical", "/uploads/files-1-a.pdf", "/uploads/files-1-a.pdf"},
		{"legacy slash files", "/files-1-a.pdf", "/uploads/files-1-a.pdf"},
		{"legacy bare files", "files-1-a.pdf", "/uploads/files-1-a.pdf"},
		{"bare name", "report.docx", "/uploads/report.docx"},
		{"leading slash", "/report.docx", "/uploads/report.docx"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeArtifactURL(tc.in))
		})
	}
}

func TestNormalizeArtifactURLIdempotent(t *testing.T) {
	inputs := []string{
		"files-1-a.pdf",
		"/files-1-a.pdf",
		"photo.png",
		"https://cdn.example.com/a.pdf",
	}
	for _, in := range inputs {
		once := NormalizeArtifactURL(in)
		assert.Equal(t, once, NormalizeArtifactURL(once), "second pass must not change %q", in)
	}
}

func TestNormalizeArtifacts(t *testing.T) {
	artifacts := NormalizeArtifacts([]model.Artifact{
		{Type: model.ArtifactDocument, Name: "a.pdf", URL: "files-1-a.pdf"},
		{Type: model.ArtifactImage, Name: "b.png", URL: "/uploads/b.png"},
	})
	assert.Equal(t, "/uploads/files-1-a.pdf", artifacts[0].URL)
	assert.Equal(t, "/uploads/b.png", artifacts[1].URL)
}

func TestClassifyArtifact(t *testing.T) {
	assert.Equal(t, model.ArtifactImage, ClassifyArtifact("photo.JPG"))
	assert.Equal(t, model.ArtifactImage, ClassifyArtifact("scan.png"))
	assert.Equal(t, model.ArtifactVideo, ClassifyArtifact("demo.mp4"))
	assert.Equal(t, model.ArtifactVideo, ClassifyArtifact("clip.mov"))
	assert.Equal(t, model.ArtifactSlide, ClassifyArtifact("deck.pptx"))
	assert.Equal(t, model.ArtifactDocument, ClassifyArtifact("notes.pdf"))
	assert.Equal(t, model.ArtifactDocument, ClassifyArtifact("weird.xyz"))
}

func TestAllowedUpload(t *testing.T) {
	assert.True(t, AllowedUpload("report.PDF"))
	assert.True(t, AllowedUpload("sheet.xlsx"))
	assert.False(t, AllowedUpload("script.sh"))
	assert.False(t, AllowedUpload("noext"))
}
