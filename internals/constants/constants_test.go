package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleError(t *testing.T) {
	assert.Equal(t, "Only school accounts can access reviews.", RoleError("reviews", RoleSchool))
	assert.Equal(t, "Only student or school accounts can access reviews.", RoleError("reviews", ReviewerRoles...))
	assert.Equal(t, "Only teacher, student or school accounts can access x.", RoleError("x", AllRoles...))
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole("teacher"))
	assert.False(t, IsValidRole("admin"))
	assert.False(t, IsValidRole(""))
}

func TestDetectFileTypeFromExt(t *testing.T) {
	assert.Equal(t, FileTypeImage, DetectFileTypeFromExt("a.JPG"))
	assert.Equal(t, FileTypeVideo, DetectFileTypeFromExt("clip.mp4"))
	assert.Equal(t, FileTypeDoc, DetectFileTypeFromExt("cv.pdf"))
	assert.Equal(t, FileTypeUnknown, DetectFileTypeFromExt("noext"))
	assert.Equal(t, FileTypeImage, DetectFileTypeFromExt("https://cdn.x/a.webp?w=200#top"))
}
