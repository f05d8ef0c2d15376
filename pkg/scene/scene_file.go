package scene

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/geometry"
	"github.com/df07/go-weekend-pathtracer/pkg/integrator"
	"github.com/df07/go-weekend-pathtracer/pkg/material"
	"github.com/df07/go-weekend-pathtracer/pkg/renderer"
)

// ErrInvalidScene is wrapped by every scene file error
var ErrInvalidScene = errors.New("invalid scene file")

// vec3 decodes a three element YAML sequence such as [0, 1, 0]
type vec3 core.Vec3

func (v *vec3) UnmarshalYAML(value *yaml.Node) error {
	var components []float64
	if err := value.Decode(&components); err != nil {
		return err
	}
	if len(components) != 3 {
		return fmt.Errorf("line %d: expected 3 components, got %d", value.Line, len(components))
	}
	*v = vec3{X: components[0], Y: components[1], Z: components[2]}
	return nil
}

type materialSpec struct {
	Type   string  `yaml:"type"`
	Albedo vec3    `yaml:"albedo"`
	Fuzz   float64 `yaml:"fuzz"`
	IOR    float64 `yaml:"ior"`
}

type sphereSpec struct {
	Center   vec3    `yaml:"center"`
	Radius   float64 `yaml:"radius"`
	Material string  `yaml:"material"`
}

type cameraSpec struct {
	LookFrom      vec3    `yaml:"lookFrom"`
	LookAt        vec3    `yaml:"lookAt"`
	Up            vec3    `yaml:"up"`
	VFov          float64 `yaml:"vfov"`
	Aperture      float64 `yaml:"aperture"`
	FocusDistance float64 `yaml:"focusDistance"`
}

type renderSpec struct {
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	Aspect  float64 `yaml:"aspect"`
	Samples int     `yaml:"samples"`
	Depth   int     `yaml:"depth"`
	Seed    uint64  `yaml:"seed"`
}

// Either end of the gradient may be left out and keeps its default
type backgroundSpec struct {
	Top    *vec3 `yaml:"top"`
	Bottom *vec3 `yaml:"bottom"`
}

type sceneFile struct {
	Name        string                  `yaml:"name"`
	Description string                  `yaml:"description"`
	Camera      cameraSpec              `yaml:"camera"`
	Render      renderSpec              `yaml:"render"`
	Background  *backgroundSpec         `yaml:"background"`
	Materials   map[string]materialSpec `yaml:"materials"`
	Spheres     []sphereSpec            `yaml:"spheres"`
}

// LoadFile reads a YAML scene file
func LoadFile(path string) (*Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene file: %w", err)
	}
	defer file.Close()

	s, err := Load(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Load decodes a YAML scene. Materials are declared once by name and shared
// by every sphere that references them. Settings missing from the file keep
// the renderer defaults.
func Load(r io.Reader) (*Scene, error) {
	defaultCamera := renderer.DefaultCameraConfig()
	defaultSampling := renderer.DefaultSamplingConfig()

	spec := sceneFile{
		Camera: cameraSpec{
			LookFrom: vec3(defaultCamera.LookFrom),
			LookAt:   vec3(defaultCamera.LookAt),
			Up:       vec3(defaultCamera.Up),
			VFov:     defaultCamera.VFov,
		},
		Render: renderSpec{
			Width:   defaultSampling.Width,
			Samples: defaultSampling.SamplesPerPixel,
			Depth:   defaultSampling.MaxDepth,
			Seed:    defaultSampling.Seed,
		},
	}

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}

	materials, err := buildMaterials(spec.Materials)

	world := geometry.NewHittableList()
	for i, sphere := range spec.Spheres {
		mat, ok := materials[sphere.Material]
		if !ok {
			err = multierr.Append(err, fmt.Errorf("sphere %d: unknown material %q", i, sphere.Material))
			continue
		}
		if sphere.Radius == 0 {
			err = multierr.Append(err, fmt.Errorf("sphere %d: radius must not be zero", i))
			continue
		}
		world.Add(geometry.NewSphere(core.Vec3(sphere.Center), sphere.Radius, mat))
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}

	aspect := spec.Render.Aspect
	height := spec.Render.Height
	switch {
	case aspect <= 0 && height > 0:
		aspect = float64(spec.Render.Width) / float64(height)
	case aspect <= 0:
		aspect = defaultCamera.AspectRatio
		fallthrough
	case height <= 0:
		height = renderer.HeightForAspect(spec.Render.Width, aspect)
	}

	return &Scene{
		Name:       spec.Name,
		World:      world,
		Background: spec.Background.build(),
		CameraConfig: renderer.CameraConfig{
			LookFrom:      core.Vec3(spec.Camera.LookFrom),
			LookAt:        core.Vec3(spec.Camera.LookAt),
			Up:            core.Vec3(spec.Camera.Up),
			VFov:          spec.Camera.VFov,
			AspectRatio:   aspect,
			Aperture:      spec.Camera.Aperture,
			FocusDistance: spec.Camera.FocusDistance,
		},
		SamplingConfig: renderer.SamplingConfig{
			Width:           spec.Render.Width,
			Height:          height,
			SamplesPerPixel: spec.Render.Samples,
			MaxDepth:        spec.Render.Depth,
			Seed:            spec.Render.Seed,
		},
	}, nil
}

func (b *backgroundSpec) build() *Background {
	if b == nil {
		return nil
	}
	background := &Background{Top: integrator.DefaultTopColor, Bottom: integrator.DefaultBottomColor}
	if b.Top != nil {
		background.Top = core.Vec3(*b.Top)
	}
	if b.Bottom != nil {
		background.Bottom = core.Vec3(*b.Bottom)
	}
	return background
}

// buildMaterials creates one material per named entry. Names are visited in
// sorted order so errors are reported deterministically.
func buildMaterials(specs map[string]materialSpec) (map[string]core.Material, error) {
	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Strings(names)

	materials := make(map[string]core.Material, len(specs))
	var err error
	for _, name := range names {
		spec := specs[name]
		switch spec.Type {
		case "lambertian":
			materials[name] = material.NewLambertian(core.Vec3(spec.Albedo))
		case "metal":
			if spec.Fuzz < 0 {
				err = multierr.Append(err, fmt.Errorf("material %q: fuzz must not be negative", name))
				continue
			}
			materials[name] = material.NewMetal(core.Vec3(spec.Albedo), spec.Fuzz)
		case "dielectric":
			if spec.IOR <= 0 {
				err = multierr.Append(err, fmt.Errorf("material %q: ior must be positive", name))
				continue
			}
			materials[name] = material.NewDielectric(spec.IOR)
		default:
			err = multierr.Append(err, fmt.Errorf("material %q: unknown type %q", name, spec.Type))
		}
	}
	return materials, err
}
