package scene

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/geometry"
	"github.com/df07/go-weekend-pathtracer/pkg/integrator"
	"github.com/df07/go-weekend-pathtracer/pkg/material"
	"github.com/df07/go-weekend-pathtracer/pkg/renderer"
)

func TestBuiltinScenes_AreValid(t *testing.T) {
	for _, name := range BuiltinNames() {
		t.Run(name, func(t *testing.T) {
			s, err := Build(name, 42)
			require.NoError(t, err)
			assert.Equal(t, name, s.Name)
			assert.NoError(t, s.Validate())
			assert.Positive(t, s.World.Len())
			assert.Equal(t, uint64(42), s.SamplingConfig.Seed)
		})
	}
}

func TestBuild_UnknownScene(t *testing.T) {
	_, err := Build("cornell", 1)
	require.ErrorIs(t, err, ErrUnknownScene)
	assert.Contains(t, err.Error(), "random")
}

func TestNewRandomScene_Layout(t *testing.T) {
	s := NewRandomScene(42)

	// Ground + up to 22x22 small spheres + 3 large ones
	assert.Greater(t, s.World.Len(), 4)
	assert.LessOrEqual(t, s.World.Len(), 1+22*22+3)
	assert.Equal(t, 1200, s.SamplingConfig.Width)
	assert.Equal(t, 800, s.SamplingConfig.Height)
	assert.Equal(t, 0.1, s.CameraConfig.Aperture)

	clearing := core.NewVec3(4, 0.2, 0)
	for _, object := range s.World.Objects()[1 : s.World.Len()-3] {
		sphere := object.(*geometry.Sphere)
		assert.Equal(t, 0.2, sphere.Radius)
		assert.Greater(t, sphere.Center.Subtract(clearing).Length(), 0.9)

		if metal, ok := sphere.Material.(*material.Metal); ok {
			assert.LessOrEqual(t, metal.Fuzzness, 0.5)
		}
	}
}

func TestNewRandomScene_SeedDeterminesLayout(t *testing.T) {
	a := NewRandomScene(7).World.Objects()
	b := NewRandomScene(7).World.Objects()
	c := NewRandomScene(8).World.Objects()

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].(*geometry.Sphere).Center, b[i].(*geometry.Sphere).Center)
	}
	assert.NotEqual(t, a[1].(*geometry.Sphere).Center, c[1].(*geometry.Sphere).Center)
}

func TestNewDefaultScene_SharesGlass(t *testing.T) {
	objects := NewDefaultScene(1).World.Objects()
	outer := objects[2].(*geometry.Sphere)
	inner := objects[3].(*geometry.Sphere)

	assert.Same(t, outer.Material, inner.Material)
	assert.Negative(t, inner.Radius)
}

func TestBlackScene_RendersBlack(t *testing.T) {
	s := NewBlackScene(3)
	s.SamplingConfig.Width = 32
	s.SamplingConfig.Height = 18

	rt, err := renderer.NewRaytracer(s.World, s.Camera(), s.SamplingConfig, nil)
	require.NoError(t, err)
	frame, _, err := rt.Render(context.Background())
	require.NoError(t, err)

	for i, ps := range frame.Pixels {
		require.Equal(t, core.Vec3{}, ps.ColorAccum, "pixel %d", i)
	}
}

func TestOverrides_Apply(t *testing.T) {
	intPtr := func(v int) *int { return &v }
	floatPtr := func(v float64) *float64 { return &v }
	seed := uint64(99)

	tests := []struct {
		name           string
		overrides      Overrides
		width, height  int
		aspect         float64
		samples, depth int
	}{
		{"nothing", Overrides{}, 400, 225, 16.0 / 9.0, 100, 50},
		{"width keeps aspect", Overrides{Width: intPtr(800)}, 800, 450, 16.0 / 9.0, 100, 50},
		{"aspect recomputes height", Overrides{AspectRatio: floatPtr(2)}, 400, 200, 2, 100, 50},
		{"explicit height sets aspect", Overrides{Width: intPtr(300), Height: intPtr(100)}, 300, 100, 3, 100, 50},
		{"explicit height and aspect", Overrides{Height: intPtr(100), AspectRatio: floatPtr(1)}, 400, 100, 1, 100, 50},
		{"sampling", Overrides{SamplesPerPixel: intPtr(8), MaxDepth: intPtr(4), Seed: &seed}, 400, 225, 16.0 / 9.0, 8, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewDefaultScene(1)
			tt.overrides.Apply(s)

			assert.Equal(t, tt.width, s.SamplingConfig.Width)
			assert.Equal(t, tt.height, s.SamplingConfig.Height)
			assert.InDelta(t, tt.aspect, s.CameraConfig.AspectRatio, 1e-12)
			assert.Equal(t, tt.samples, s.SamplingConfig.SamplesPerPixel)
			assert.Equal(t, tt.depth, s.SamplingConfig.MaxDepth)
		})
	}
}

func TestOverrides_Workers(t *testing.T) {
	workers, tile := 3, 8
	s := NewBlackScene(1)
	Overrides{NumWorkers: &workers, TileSize: &tile}.Apply(s)
	assert.Equal(t, 3, s.SamplingConfig.NumWorkers)
	assert.Equal(t, 8, s.SamplingConfig.TileSize)
}

func TestLoad_SharedMaterials(t *testing.T) {
	input := `
name: pair
camera:
  lookFrom: [0, 1, 5]
  lookAt: [0, 0, 0]
  vfov: 30
  aperture: 0.2
  focusDistance: 4
render:
  width: 120
  aspect: 2
  samples: 9
  depth: 7
  seed: 5
materials:
  glass: {type: dielectric, ior: 1.5}
  steel: {type: metal, albedo: [0.7, 0.7, 0.7], fuzz: 2}
spheres:
  - {center: [0, 0, 0], radius: 1, material: glass}
  - {center: [0, 0, 0], radius: -0.9, material: glass}
  - {center: [2, 0, 0], radius: 1, material: steel}
`
	s, err := Load(strings.NewReader(input))
	require.NoError(t, err)
	require.NoError(t, s.Validate())

	assert.Equal(t, "pair", s.Name)
	assert.Equal(t, core.NewVec3(0, 1, 5), s.CameraConfig.LookFrom)
	assert.Equal(t, core.NewVec3(0, 1, 0), s.CameraConfig.Up, "up keeps its default")
	assert.Equal(t, 30.0, s.CameraConfig.VFov)
	assert.Equal(t, 2.0, s.CameraConfig.AspectRatio)
	assert.Equal(t, 4.0, s.CameraConfig.FocusDistance)
	assert.Equal(t, renderer.SamplingConfig{Width: 120, Height: 60, SamplesPerPixel: 9, MaxDepth: 7, Seed: 5}, s.SamplingConfig)

	objects := s.World.Objects()
	require.Len(t, objects, 3)
	assert.Same(t, objects[0].(*geometry.Sphere).Material, objects[1].(*geometry.Sphere).Material)

	steel := objects[2].(*geometry.Sphere).Material.(*material.Metal)
	assert.Equal(t, 1.0, steel.Fuzzness, "fuzz is clamped to 1")
}

func TestLoad_Defaults(t *testing.T) {
	s, err := Load(strings.NewReader(""))
	require.NoError(t, err)

	assert.Equal(t, renderer.DefaultCameraConfig(), s.CameraConfig)
	assert.Equal(t, 400, s.SamplingConfig.Width)
	assert.Equal(t, 225, s.SamplingConfig.Height)
	assert.Equal(t, 0, s.World.Len())
}

func TestLoad_Background(t *testing.T) {
	red := core.NewVec3(1, 0, 0)
	black := core.Vec3{}

	tests := []struct {
		name     string
		input    string
		expected *Background
	}{
		{"absent", "name: sky", nil},
		{"both ends", "background: {top: [1, 0, 0], bottom: [0, 0, 0]}", &Background{Top: red, Bottom: black}},
		{"top only", "background: {top: [1, 0, 0]}", &Background{Top: red, Bottom: integrator.DefaultBottomColor}},
		{"bottom only", "background: {bottom: [0, 0, 0]}", &Background{Top: integrator.DefaultTopColor, Bottom: black}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Load(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, s.Background)
		})
	}
}

func TestScene_IntegratorUsesBackground(t *testing.T) {
	s, err := Load(strings.NewReader(`
render: {width: 8, height: 4, samples: 1, depth: 3}
background: {top: [0, 1, 0], bottom: [0, 1, 0]}
`))
	require.NoError(t, err)

	rt, err := renderer.NewRaytracer(s.World, s.Camera(), s.SamplingConfig, nil)
	require.NoError(t, err)
	rt.SetIntegrator(s.Integrator())
	frame, _, err := rt.Render(context.Background())
	require.NoError(t, err)

	green := core.NewVec3(0, 1, 0)
	for i, ps := range frame.Pixels {
		require.True(t, ps.GetColor().ApproxEquals(green, 1e-12), "pixel %d: %v", i, ps.GetColor())
	}

	// Without a background block the default sky is used
	up := core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))
	assert.Equal(t, integrator.DefaultTopColor, NewBlackScene(1).Integrator().BackgroundGradient(up))
}

func TestLoad_HeightWithoutAspect(t *testing.T) {
	s, err := Load(strings.NewReader("render: {width: 300, height: 200}"))
	require.NoError(t, err)
	assert.Equal(t, 1.5, s.CameraConfig.AspectRatio)
	assert.Equal(t, 200, s.SamplingConfig.Height)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"unknown material", "spheres: [{center: [0,0,0], radius: 1, material: chrome}]", `unknown material "chrome"`},
		{"unknown type", "materials: {x: {type: plastic}}", `unknown type "plastic"`},
		{"bad ior", "materials: {x: {type: dielectric, ior: 0}}", "ior must be positive"},
		{"negative fuzz", "materials: {x: {type: metal, fuzz: -1}}", "fuzz must not be negative"},
		{"zero radius", "materials: {x: {type: lambertian}}\nspheres: [{center: [0,0,0], radius: 0, material: x}]", "radius must not be zero"},
		{"short vector", "camera: {lookFrom: [1, 2]}", "expected 3 components"},
		{"short background", "background: {top: [1, 0]}", "expected 3 components"},
		{"unknown field", "camera: {position: [1, 2, 3]}", "position"},
		{"not yaml", "spheres: [", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input))
			require.ErrorIs(t, err, ErrInvalidScene)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestLoad_ReportsAllProblems(t *testing.T) {
	input := `
materials:
  a: {type: wood}
  b: {type: dielectric, ior: -1}
spheres:
  - {center: [0,0,0], radius: 1, material: missing}
`
	_, err := Load(strings.NewReader(input))
	require.Error(t, err)
	for _, fragment := range []string{`"a"`, `"b"`, `"missing"`} {
		assert.Contains(t, err.Error(), fragment)
	}
}

func TestLoadFile_ShippedScenes(t *testing.T) {
	dir := filepath.Join("..", "..", "scenes")
	infos, err := ListSceneFiles(dir)
	require.NoError(t, err)
	require.NotEmpty(t, infos)

	for _, info := range infos {
		t.Run(info.DisplayName, func(t *testing.T) {
			s, err := LoadFile(info.FilePath)
			require.NoError(t, err)
			assert.NoError(t, s.Validate())
			assert.Positive(t, s.World.Len())
		})
	}
}

func TestLoadFile_NameFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny-scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte("render: {width: 10}\n"), 0644))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "tiny-scene", s.Name)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
