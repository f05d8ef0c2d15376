package integrator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/geometry"
	"github.com/df07/go-weekend-pathtracer/pkg/material"
)

// absorber is a material that never scatters
type absorber struct{}

func (absorber) Scatter(core.Ray, core.HitRecord, core.Sampler) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}

// createTestWorld creates a simple scene with a sphere for testing
func createTestWorld(mat core.Material) *geometry.HittableList {
	return geometry.NewHittableList(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, mat))
}

func TestPathTracingMissReturnsGradient(t *testing.T) {
	pt := NewPathTracingIntegrator(10)
	world := geometry.NewHittableList()
	sampler := core.NewSeededSampler(1)

	tests := []struct {
		name      string
		direction core.Vec3
	}{
		{"straight up", core.NewVec3(0, 1, 0)},
		{"straight down", core.NewVec3(0, -1, 0)},
		{"horizon", core.NewVec3(0, 0, -1)},
		{"unnormalized diagonal", core.NewVec3(3, 4, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(core.Vec3{}, tt.direction)
			got := pt.RayColor(ray, world, sampler)

			unitY := tt.direction.Normalize().Y
			a := 0.5 * (unitY + 1)
			expected := core.NewVec3(1, 1, 1).Multiply(1 - a).Add(core.NewVec3(0.5, 0.7, 1.0).Multiply(a))
			assert.Equal(t, expected, got)
		})
	}
}

func TestPathTracingStraightUpIsExactlySkyBlue(t *testing.T) {
	pt := NewPathTracingIntegrator(50)
	got := pt.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)), geometry.NewHittableList(), core.NewSeededSampler(1))
	assert.Equal(t, core.NewVec3(0.5, 0.7, 1.0), got)
}

func TestPathTracingDepthTermination(t *testing.T) {
	world := createTestWorld(material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3)))
	sampler := core.NewSeededSampler(42)

	// Ray pointing at the sphere and one missing it
	rays := []core.Ray{
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)),
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)),
	}

	pt := NewPathTracingIntegrator(0)
	for _, ray := range rays {
		if c := pt.RayColor(ray, world, sampler); c != (core.Vec3{}) {
			t.Errorf("Expected black color for depth 0, got %v", c)
		}
		if c := pt.RayColorDepth(ray, world, -3, sampler); c != (core.Vec3{}) {
			t.Errorf("Expected black color for negative depth, got %v", c)
		}
	}

	// One bounce of budget is spent on the hit, the scattered ray gets none
	pt = NewPathTracingIntegrator(1)
	if c := pt.RayColor(rays[0], world, sampler); c != (core.Vec3{}) {
		t.Errorf("Expected black color when the hit uses the last bounce, got %v", c)
	}
}

func TestPathTracingAbsorbedRayIsBlack(t *testing.T) {
	world := createTestWorld(absorber{})
	pt := NewPathTracingIntegrator(10)

	c := pt.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), world, core.NewSeededSampler(1))
	assert.Equal(t, core.Vec3{}, c)
}

func TestPathTracingMirrorAttenuatesBackground(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.6, 0.2)
	world := createTestWorld(material.NewMetal(albedo, 0))
	pt := NewPathTracingIntegrator(10)

	// Head-on hit reflects straight back toward +z, which then escapes
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))
	got := pt.RayColor(ray, world, core.NewSeededSampler(1))

	horizon := pt.BackgroundGradient(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)))
	assert.True(t, got.ApproxEquals(albedo.MultiplyVec(horizon), 1e-12), "got %v", got)
}

func TestPathTracingClosedMirrorRunsOutOfDepth(t *testing.T) {
	// Camera inside a perfect mirror sphere: the path never escapes
	world := geometry.NewHittableList(geometry.NewSphere(core.Vec3{}, 10, material.NewMetal(core.NewVec3(1, 1, 1), 0)))
	pt := NewPathTracingIntegrator(25)

	c := pt.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0.3, 0.2, -1)), world, core.NewSeededSampler(1))
	assert.Equal(t, core.Vec3{}, c)
}

func TestPathTracingBlackDiffuseIsBlack(t *testing.T) {
	world := createTestWorld(material.NewLambertian(core.Vec3{}))
	pt := NewPathTracingIntegrator(50)
	sampler := core.NewSeededSampler(9)

	for i := 0; i < 100; i++ {
		c := pt.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), world, sampler)
		require.Equal(t, core.Vec3{}, c)
	}
}

// recursiveRayColor is the textbook formulation the iterative loop must match
func recursiveRayColor(pt *PathTracingIntegrator, ray core.Ray, world core.Hittable, depth int, sampler core.Sampler) core.Vec3 {
	if depth <= 0 {
		return core.Vec3{}
	}
	hit, isHit := world.Hit(ray, ShadowAcneEpsilon, math.Inf(1))
	if !isHit {
		return pt.BackgroundGradient(ray)
	}
	scatter, ok := hit.Material.Scatter(ray, *hit, sampler)
	if !ok {
		return core.Vec3{}
	}
	return scatter.Attenuation.MultiplyVec(recursiveRayColor(pt, scatter.Scattered, world, depth-1, sampler))
}

func TestPathTracingMatchesRecursiveFormulation(t *testing.T) {
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), -0.45, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)),
	)
	pt := NewPathTracingIntegrator(20)

	for i := 0; i < 200; i++ {
		dir := core.NewVec3(float64(i%20)/10-1, float64(i/20)/10-0.5, -1)
		ray := core.NewRay(core.Vec3{}, dir)

		loop := pt.RayColor(ray, world, core.NewPixelSampler(5, i))
		rec := recursiveRayColor(pt, ray, world, 20, core.NewPixelSampler(5, i))
		require.True(t, loop.ApproxEquals(rec, 1e-12), "ray %d: loop %v, recursive %v", i, loop, rec)
	}
}

func TestPathTracingWithBackground(t *testing.T) {
	base := NewPathTracingIntegrator(5)
	red := core.NewVec3(1, 0, 0)
	green := core.NewVec3(0, 1, 0)
	custom := base.WithBackground(red, green)

	up := core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))
	down := core.NewRay(core.Vec3{}, core.NewVec3(0, -1, 0))
	assert.Equal(t, red, custom.BackgroundGradient(up))
	assert.Equal(t, green, custom.BackgroundGradient(down))
	assert.Equal(t, DefaultTopColor, base.BackgroundGradient(up), "receiver must be unchanged")
}
