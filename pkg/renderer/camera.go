package renderer

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/multierr"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

// CameraConfig describes a thin-lens camera
type CameraConfig struct {
	LookFrom      core.Vec3 // Eye position
	LookAt        core.Vec3 // Point the camera aims at
	Up            core.Vec3 // World up direction
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Viewport width / height
	Aperture      float64   // Lens diameter; 0 gives a pinhole camera
	FocusDistance float64   // Distance to the plane in perfect focus; 0 uses |LookFrom - LookAt|
}

// DefaultCameraConfig returns a pinhole camera looking down -z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90,
		AspectRatio: 16.0 / 9.0,
	}
}

// Validate checks the camera parameters and reports every problem found
func (c CameraConfig) Validate() error {
	var err error
	if c.LookFrom.Subtract(c.LookAt).NearZero() {
		err = multierr.Append(err, errors.New("camera lookFrom and lookAt must differ"))
	} else if c.Up.Cross(c.LookFrom.Subtract(c.LookAt)).NearZero() {
		err = multierr.Append(err, errors.New("camera up vector must not be parallel to the view direction"))
	}
	if c.VFov <= 0 || c.VFov >= 180 {
		err = multierr.Append(err, fmt.Errorf("camera vertical fov must be in (0, 180) degrees, got %g", c.VFov))
	}
	if c.AspectRatio <= 0 {
		err = multierr.Append(err, fmt.Errorf("camera aspect ratio must be positive, got %g", c.AspectRatio))
	}
	if c.Aperture < 0 {
		err = multierr.Append(err, fmt.Errorf("camera aperture must not be negative, got %g", c.Aperture))
	}
	if c.FocusDistance < 0 {
		err = multierr.Append(err, fmt.Errorf("camera focus distance must not be negative, got %g", c.FocusDistance))
	}
	return err
}

// Camera generates rays for rendering
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
	lensRadius      float64
}

// NewCamera derives the viewport and lens from config. The config is
// expected to have passed Validate.
func NewCamera(config CameraConfig) *Camera {
	theta := core.DegreesToRadians(config.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2.0 * h
	viewportWidth := config.AspectRatio * viewportHeight

	focusDistance := config.FocusDistance
	if focusDistance == 0 {
		focusDistance = config.LookFrom.Subtract(config.LookAt).Length()
	}

	// Orthonormal camera basis
	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := config.LookFrom
	horizontal := u.Multiply(focusDistance * viewportWidth)
	vertical := v.Multiply(focusDistance * viewportHeight)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1,
// with (0, 0) at the lower left corner of the image. With a finite aperture
// the origin is jittered across the lens and the ray still passes through the
// same point on the focus plane.
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	offset := core.Vec3{}
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(sampler).Multiply(c.lensRadius)
		offset = c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))
	}

	origin := c.origin.Add(offset)
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRay(origin, direction)
}

// Forward returns the unit direction the camera is looking along
func (c *Camera) Forward() core.Vec3 {
	return c.w.Negate()
}

// LensRadius returns half the aperture
func (c *Camera) LensRadius() float64 {
	return c.lensRadius
}
