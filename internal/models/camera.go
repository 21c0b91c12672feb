package models

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera describes the field-of-view camera of the render server: where it
// sits, what it looks at, which way is up, and its depth-of-field settings.
type Camera struct {
	Origin      mgl64.Vec3 // camera position
	LookAt      mgl64.Vec3 // point the camera is aimed at
	Up          mgl64.Vec3 // world up vector
	Aperture    float64    // lens aperture, 0 disables depth of field
	FocalLength float64    // distance to the plane in focus
}

// FovCamera is the name the render server uses for its camera resource.
type FovCamera = Camera

// NewCamera returns a camera one unit behind the origin looking at it.
func NewCamera() *Camera {
	return &Camera{
		Origin: mgl64.Vec3{0, 0, -1},
		LookAt: mgl64.Vec3{0, 0, 0},
		Up:     mgl64.Vec3{0, 1, 0},
	}
}

// NewFovCamera builds a camera from all of its parameters at once.
func NewFovCamera(origin, lookAt, up mgl64.Vec3, aperture, focalLength float64) *Camera {
	return &Camera{
		Origin:      origin,
		LookAt:      lookAt,
		Up:          up,
		Aperture:    aperture,
		FocalLength: focalLength,
	}
}

func (c *Camera) SetOrigin(x, y, z float64) { c.Origin = mgl64.Vec3{x, y, z} }
func (c *Camera) SetLookAt(x, y, z float64) { c.LookAt = mgl64.Vec3{x, y, z} }
func (c *Camera) SetUp(x, y, z float64)     { c.Up = mgl64.Vec3{x, y, z} }

func (c *Camera) SetAperture(aperture float64)       { c.Aperture = aperture }
func (c *Camera) SetFocalLength(focalLength float64) { c.FocalLength = focalLength }

// Direction returns the normalized viewing direction, or the zero vector
// when origin and look-at coincide.
func (c *Camera) Direction() mgl64.Vec3 {
	d := c.LookAt.Sub(c.Origin)
	if d.Len() == 0 {
		return mgl64.Vec3{}
	}
	return d.Normalize()
}

type xyz struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func toXYZ(v mgl64.Vec3) xyz { return xyz{X: v[0], Y: v[1], Z: v[2]} }

type cameraDocument struct {
	Origin         xyz     `json:"origin"`
	LookAt         xyz     `json:"lookAt"`
	Up             xyz     `json:"up"`
	FovAperture    float64 `json:"fovAperture"`
	FovFocalLength float64 `json:"fovFocalLength"`
}

// Serialize encodes the camera as a fovcamera document.
func (c *Camera) Serialize() ([]byte, error) {
	return json.Marshal(cameraDocument{
		Origin:         toXYZ(c.Origin),
		LookAt:         toXYZ(c.LookAt),
		Up:             toXYZ(c.Up),
		FovAperture:    c.Aperture,
		FovFocalLength: c.FocalLength,
	})
}

// Deserialize replaces the camera's fields with those of a fovcamera
// document. Every key of the schema must be present; on error the camera is
// left untouched.
func (c *Camera) Deserialize(data []byte) error {
	doc, err := decodeDocument(data)
	if err != nil {
		return err
	}
	keys := [3]string{"x", "y", "z"}
	var out Camera
	if out.Origin, err = doc.triple("origin", keys); err != nil {
		return err
	}
	if out.LookAt, err = doc.triple("lookAt", keys); err != nil {
		return err
	}
	if out.Up, err = doc.triple("up", keys); err != nil {
		return err
	}
	if err := doc.field("fovAperture", &out.Aperture); err != nil {
		return err
	}
	if err := doc.field("fovFocalLength", &out.FocalLength); err != nil {
		return err
	}
	*c = out
	return nil
}

func (c Camera) MarshalJSON() ([]byte, error) { return c.Serialize() }
func (c *Camera) UnmarshalJSON(data []byte) error { return c.Deserialize(data) }

func (c *Camera) String() string {
	return fmt.Sprintf("Origin: %v, Target: %v, Up: %v, Aperture: %v, Focal length: %v",
		c.Origin, c.LookAt, c.Up, c.Aperture, c.FocalLength)
}
