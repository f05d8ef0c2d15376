package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownScene is returned when no built-in scene has the requested name
var ErrUnknownScene = errors.New("unknown scene")

// Builder creates a scene; seed drives any randomness in the layout and
// becomes the default render seed
type Builder func(seed uint64) *Scene

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string // Name used on the command line, or the file path
	DisplayName string // Human readable name
	Description string
	Type        string // "builtin" or "file"
	FilePath    string // Path to the YAML file (file type only)
}

type builtinScene struct {
	info  SceneInfo
	build Builder
}

var builtinScenes = []builtinScene{
	{
		info: SceneInfo{
			ID:          "random",
			DisplayName: "Random Spheres",
			Description: "Ground sphere, grid of random small spheres and three large ones",
			Type:        "builtin",
		},
		build: NewRandomScene,
	},
	{
		info: SceneInfo{
			ID:          "default",
			DisplayName: "Default Scene",
			Description: "Diffuse, hollow glass and metal spheres on a ground sphere",
			Type:        "builtin",
		},
		build: NewDefaultScene,
	},
	{
		info: SceneInfo{
			ID:          "black",
			DisplayName: "Black Enclosure",
			Description: "Camera inside a black diffuse sphere; renders pure black",
			Type:        "builtin",
		},
		build: NewBlackScene,
	},
}

// Build creates the built-in scene with the given name
func Build(name string, seed uint64) (*Scene, error) {
	for _, s := range builtinScenes {
		if s.info.ID == name {
			return s.build(seed), nil
		}
	}
	return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownScene, name, strings.Join(BuiltinNames(), ", "))
}

// BuiltinNames returns the names of all built-in scenes
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinScenes))
	for _, s := range builtinScenes {
		names = append(names, s.info.ID)
	}
	return names
}

// ListBuiltinScenes returns metadata for the built-in scenes
func ListBuiltinScenes() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtinScenes))
	for _, s := range builtinScenes {
		infos = append(infos, s.info)
	}
	return infos
}

// ListSceneFiles scans dir for YAML scene files. A missing directory yields
// an empty list.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		return []SceneInfo{}, nil
	}

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
		}
		files = append(files, matches...)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		info, err := ParseSceneMetadata(filePath)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, info)
	}

	// Sort scenes by display name
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseSceneMetadata reads the name and description of a scene file.
// The file name is used when the file does not name itself.
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	info := SceneInfo{
		ID:          filePath,
		DisplayName: titleCase(nameWithoutExt),
		Type:        "file",
		FilePath:    filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return info, fmt.Errorf("read scene metadata: %w", err)
	}

	var header struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
	}
	if err := yaml.Unmarshal(data, &header); err != nil {
		return info, fmt.Errorf("parse scene metadata %s: %w", filePath, err)
	}

	if header.Name != "" {
		info.DisplayName = header.Name
	}
	info.Description = header.Description
	return info, nil
}

// titleCase converts a filename-style string to title case
// e.g., "three-spheres" -> "Three Spheres"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
