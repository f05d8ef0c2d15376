package scene

import (
	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/geometry"
	"github.com/df07/go-weekend-pathtracer/pkg/material"
	"github.com/df07/go-weekend-pathtracer/pkg/renderer"
)

// NewRandomScene creates the cover image: a large ground sphere, a 22x22 grid
// of small random spheres and three large feature spheres. The layout is
// drawn from its own stream seeded with seed.
func NewRandomScene(seed uint64) *Scene {
	sampler := core.NewSeededSampler(seed)
	world := geometry.NewHittableList()

	ground := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	world.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground))

	// Small glass spheres all share one material
	glass := material.NewDielectric(1.5)
	clearing := core.NewVec3(4, 0.2, 0)

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(
				float64(a)+0.9*sampler.Get1D(),
				0.2,
				float64(b)+0.9*sampler.Get1D(),
			)

			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			var sphereMaterial core.Material
			switch {
			case chooseMat < 0.8:
				// diffuse
				albedo := core.RandomVec3(sampler).MultiplyVec(core.RandomVec3(sampler))
				sphereMaterial = material.NewLambertian(albedo)
			case chooseMat < 0.95:
				// metal
				albedo := core.RandomVec3Range(sampler, 0.5, 1)
				fuzz := core.RandomRange(sampler, 0, 0.5)
				sphereMaterial = material.NewMetal(albedo, fuzz)
			default:
				sphereMaterial = glass
			}
			world.Add(geometry.NewSphere(center, 0.2, sphereMaterial))
		}
	}

	world.Add(geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, glass))
	world.Add(geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))))
	world.Add(geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)))

	cameraConfig := renderer.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20,
		AspectRatio:   3.0 / 2.0,
		Aperture:      0.1,
		FocusDistance: 10,
	}

	return &Scene{
		Name:         "random",
		World:        world,
		CameraConfig: cameraConfig,
		SamplingConfig: renderer.SamplingConfig{
			Width:           1200,
			Height:          renderer.HeightForAspect(1200, cameraConfig.AspectRatio),
			SamplesPerPixel: 500,
			MaxDepth:        50,
			Seed:            seed,
		},
	}
}

// NewDefaultScene creates a ground plane with diffuse, hollow glass and
// fuzzed metal spheres side by side
func NewDefaultScene(seed uint64) *Scene {
	ground := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	center := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	glass := material.NewDielectric(1.5)
	gold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.0)

	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, ground),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, center),
		// Hollow glass: the negative radius flips the inner surface normals
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, glass),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), -0.45, glass),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, gold),
	)

	cameraConfig := renderer.CameraConfig{
		LookFrom:    core.NewVec3(-2, 2, 1),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        20,
		AspectRatio: 16.0 / 9.0,
	}

	return &Scene{
		Name:         "default",
		World:        world,
		CameraConfig: cameraConfig,
		SamplingConfig: renderer.SamplingConfig{
			Width:           400,
			Height:          renderer.HeightForAspect(400, cameraConfig.AspectRatio),
			SamplesPerPixel: 100,
			MaxDepth:        50,
			Seed:            seed,
		},
	}
}

// NewBlackScene encloses the camera in one huge black diffuse sphere.
// Every pixel of the rendered image is exactly black.
func NewBlackScene(seed uint64) *Scene {
	black := material.NewLambertian(core.NewVec3(0, 0, 0))
	world := geometry.NewHittableList(geometry.NewSphere(core.NewVec3(0, 0, 0), 1000, black))

	cameraConfig := renderer.DefaultCameraConfig()

	return &Scene{
		Name:         "black",
		World:        world,
		CameraConfig: cameraConfig,
		SamplingConfig: renderer.SamplingConfig{
			Width:           160,
			Height:          renderer.HeightForAspect(160, cameraConfig.AspectRatio),
			SamplesPerPixel: 1,
			MaxDepth:        50,
			Seed:            seed,
		},
	}
}
