package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"three-spheres", "Three Spheres"},
		{"glass_pair", "Glass Pair"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, titleCase(tc.input))
		})
	}
}

func TestParseSceneMetadata(t *testing.T) {
	dir := t.TempDir()

	named := filepath.Join(dir, "named.yaml")
	require.NoError(t, os.WriteFile(named, []byte("name: Glass Row\ndescription: Five glass spheres\n"), 0644))
	unnamed := filepath.Join(dir, "mirror_hall.yml")
	require.NoError(t, os.WriteFile(unnamed, []byte("render: {width: 10}\n"), 0644))

	info, err := ParseSceneMetadata(named)
	require.NoError(t, err)
	assert.Equal(t, SceneInfo{
		ID:          named,
		DisplayName: "Glass Row",
		Description: "Five glass spheres",
		Type:        "file",
		FilePath:    named,
	}, info)

	info, err = ParseSceneMetadata(unnamed)
	require.NoError(t, err)
	assert.Equal(t, "Mirror Hall", info.DisplayName)

	scenes, err := ListSceneFiles(dir)
	require.NoError(t, err)
	require.Len(t, scenes, 2)
	assert.Equal(t, "Glass Row", scenes[0].DisplayName)
	assert.Equal(t, "Mirror Hall", scenes[1].DisplayName)
}

func TestListSceneFiles_MissingDirectory(t *testing.T) {
	scenes, err := ListSceneFiles(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, scenes)
}

func TestListBuiltinScenes(t *testing.T) {
	infos := ListBuiltinScenes()
	require.Len(t, infos, len(BuiltinNames()))
	for _, info := range infos {
		assert.Equal(t, "builtin", info.Type)
		assert.NotEmpty(t, info.Description)
	}
}
