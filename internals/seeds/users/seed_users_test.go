package users

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadUserSeedsFromBundledFile(t *testing.T) {
	seeds, err := LoadUserSeeds("data_users.json")
	require.NoError(t, err)
	require.Len(t, seeds, 4)

	assert.Equal(t, "teacher", seeds[0].Role)
	require.NotNil(t, seeds[0].Teacher)
	assert.Equal(t, []string{"Mathematics", "Physics"}, []string(seeds[0].Teacher.Subjects))
	require.NotNil(t, seeds[2].School)
	assert.Equal(t, "Bandung", seeds[2].School.City)
	assert.Nil(t, seeds[3].Student)
}

func TestLoadUserSeedsRejectsUnknownRole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"email":"x@y.z","password":"p","role":"admin"}]`), 0o600))

	_, err := LoadUserSeeds(path)
	assert.Error(t, err)
}
