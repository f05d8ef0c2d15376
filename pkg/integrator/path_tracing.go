package integrator

import (
	"math"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

// ShadowAcneEpsilon is the tMin used for every scene query. Scattered rays
// start on the surface, and rounding can otherwise make them hit it again.
const ShadowAcneEpsilon = 0.001

// Background colors used when a ray escapes the scene
var (
	DefaultTopColor    = core.NewVec3(0.5, 0.7, 1.0)
	DefaultBottomColor = core.NewVec3(1.0, 1.0, 1.0)
)

// PathTracingIntegrator implements unidirectional path tracing with a sky
// gradient as the only light source
type PathTracingIntegrator struct {
	maxDepth    int
	topColor    core.Vec3
	bottomColor core.Vec3
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		maxDepth:    maxDepth,
		topColor:    DefaultTopColor,
		bottomColor: DefaultBottomColor,
	}
}

// WithBackground returns a copy of the integrator using the given gradient
func (pt *PathTracingIntegrator) WithBackground(topColor, bottomColor core.Vec3) *PathTracingIntegrator {
	clone := *pt
	clone.topColor = topColor
	clone.bottomColor = bottomColor
	return &clone
}

// RayColor computes the color for a single ray using the configured depth
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world core.Hittable, sampler core.Sampler) core.Vec3 {
	return pt.RayColorDepth(ray, world, pt.maxDepth, sampler)
}

// RayColorDepth traces ray through world for at most depth bounces.
// The path is followed iteratively while the product of attenuations is
// carried along, which is equivalent to attenuation * RayColorDepth(scattered, depth-1).
func (pt *PathTracingIntegrator) RayColorDepth(ray core.Ray, world core.Hittable, depth int, sampler core.Sampler) core.Vec3 {
	throughput := core.NewVec3(1, 1, 1)

	for ; depth > 0; depth-- {
		hit, isHit := world.Hit(ray, ShadowAcneEpsilon, math.Inf(1))
		if !isHit {
			return throughput.MultiplyVec(pt.BackgroundGradient(ray))
		}

		if hit.Material == nil {
			return core.Vec3{}
		}

		scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
		if !didScatter {
			return core.Vec3{} // Material absorbed the ray
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	// Bounce budget exhausted, no more light is gathered
	return core.Vec3{}
}

// BackgroundGradient returns a gradient color based on ray direction
func (pt *PathTracingIntegrator) BackgroundGradient(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	t := 0.5 * (unitDirection.Y + 1.0)

	return pt.bottomColor.Lerp(pt.topColor, t)
}
