// Package scenefile reads TOML scene scripts and plays them against a
// render server.
package scenefile

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pelletier/go-toml/v2"

	"github.com/Vasu1712/brayns-remote/internal/brayns"
	"github.com/Vasu1712/brayns-remote/internal/models"
)

//go:embed example.toml
var exampleScene []byte

// Scene is a scene script. Unset fields are left alone on the server.
type Scene struct {
	Renderer         *string                `toml:"renderer,omitempty"`
	Shader           *string                `toml:"shader,omitempty"`
	AmbientOcclusion *float64               `toml:"ambient-occlusion,omitempty"`
	Shadows          *bool                  `toml:"shadows,omitempty"`
	SoftShadows      *bool                  `toml:"soft-shadows,omitempty"`
	Background       []float64              `toml:"background,omitempty"`        // r g b
	WindowSize       []int                  `toml:"window-size,omitempty"`       // width height
	SamplesPerPixel  *int                   `toml:"samples-per-pixel,omitempty"`
	Epsilon          *float64               `toml:"epsilon,omitempty"`
	Timestamp        *float64               `toml:"timestamp,omitempty"`
	Camera           *Camera                `toml:"camera,omitempty"`
	Materials        []Material             `toml:"material,omitempty"`
	TransferFunction map[string][][]float64 `toml:"transfer-function,omitempty"` // attribute -> [[x, y], ...]
	Output           *Output                `toml:"output,omitempty"`
}

// Camera is the [camera] table.
type Camera struct {
	Origin      []float64 `toml:"origin,omitempty"`
	LookAt      []float64 `toml:"look-at,omitempty"`
	Up          []float64 `toml:"up,omitempty"`
	Aperture    float64   `toml:"aperture"`
	FocalLength float64   `toml:"focal-length"`
}

// Material is one [[material]] entry.
type Material struct {
	Index            int       `toml:"index"`
	Diffuse          []float64 `toml:"diffuse"`
	Specular         []float64 `toml:"specular"`
	SpecularExponent *float64  `toml:"specular-exponent,omitempty"`
	Opacity          *float64  `toml:"opacity,omitempty"`
	RefractionIndex  *float64  `toml:"refraction-index,omitempty"`
	ReflectionIndex  *float64  `toml:"reflection-index,omitempty"`
	LightEmission    *float64  `toml:"light-emission,omitempty"`
}

// Output names the files Capture writes, relative to its directory.
type Output struct {
	JPEG        string `toml:"jpeg,omitempty"`
	JPEGSize    []int  `toml:"jpeg-size,omitempty"`
	JPEGQuality *int   `toml:"jpeg-quality,omitempty"`
	Color       string `toml:"color,omitempty"`
	Depth       string `toml:"depth,omitempty"`
}

// Example returns the bundled demo scene.
func Example() *Scene {
	s, err := Parse(exampleScene)
	if err != nil {
		panic(fmt.Sprintf("bundled example scene: %v", err))
	}
	return s
}

// Load reads and validates the scene script at path.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a scene script. Unknown keys are errors.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Marshal encodes the scene back to TOML.
func (s *Scene) Marshal() ([]byte, error) { return toml.Marshal(s) }

var (
	shaders   = []brayns.Shader{brayns.ShaderDiffuse, brayns.ShaderElectron, brayns.ShaderNoShading}
	renderers = []brayns.Renderer{brayns.RendererDefault, brayns.RendererProximityDetection, brayns.RendererSimulation}
)

func checkLen[T any](name string, v []T, n int) error {
	if v != nil && len(v) != n {
		return fmt.Errorf("%s: want %d values, got %d", name, n, len(v))
	}
	return nil
}

// Validate checks value counts and names.
func (s *Scene) Validate() error {
	if s.Shader != nil && !contains(shaders, brayns.Shader(*s.Shader)) {
		return fmt.Errorf("unknown shader %q", *s.Shader)
	}
	if s.Renderer != nil && !contains(renderers, brayns.Renderer(*s.Renderer)) {
		return fmt.Errorf("unknown renderer %q", *s.Renderer)
	}
	if err := checkLen("background", s.Background, 3); err != nil {
		return err
	}
	if err := checkLen("window-size", s.WindowSize, 2); err != nil {
		return err
	}
	if c := s.Camera; c != nil {
		if err := checkLen("camera.origin", c.Origin, 3); err != nil {
			return err
		}
		if err := checkLen("camera.look-at", c.LookAt, 3); err != nil {
			return err
		}
		if err := checkLen("camera.up", c.Up, 3); err != nil {
			return err
		}
	}
	for i, m := range s.Materials {
		if len(m.Diffuse) != 3 || len(m.Specular) != 3 {
			return fmt.Errorf("material[%d]: diffuse and specular need 3 values", i)
		}
	}
	for attr, points := range s.TransferFunction {
		if !models.Attribute(attr).Valid() {
			return fmt.Errorf("transfer-function: %w: %q", models.ErrUnknownAttribute, attr)
		}
		for i, p := range points {
			if len(p) != 2 {
				return fmt.Errorf("transfer-function.%s[%d]: want [x, y]", attr, i)
			}
		}
	}
	if o := s.Output; o != nil {
		if err := checkLen("output.jpeg-size", o.JPEGSize, 2); err != nil {
			return err
		}
	}
	return nil
}

func contains[T comparable](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func vec3(v []float64) mgl64.Vec3 { return mgl64.Vec3{v[0], v[1], v[2]} }

// FovCamera builds the camera model from the [camera] table. Vectors the
// table leaves out keep the default camera's values.
func (c *Camera) FovCamera() *models.Camera {
	camera := models.NewCamera()
	if c.Origin != nil {
		camera.Origin = vec3(c.Origin)
	}
	if c.LookAt != nil {
		camera.LookAt = vec3(c.LookAt)
	}
	if c.Up != nil {
		camera.Up = vec3(c.Up)
	}
	camera.SetAperture(c.Aperture)
	camera.SetFocalLength(c.FocalLength)
	return camera
}

// CameraFromModel is the inverse of FovCamera.
func CameraFromModel(c *models.Camera) *Camera {
	return &Camera{
		Origin:      c.Origin[:],
		LookAt:      c.LookAt[:],
		Up:          c.Up[:],
		Aperture:    c.Aperture,
		FocalLength: c.FocalLength,
	}
}

// Model builds the material model from the entry.
func (m *Material) Model() models.Material {
	out := models.NewMaterial(m.Index,
		models.RGB(m.Diffuse[0], m.Diffuse[1], m.Diffuse[2]),
		models.RGB(m.Specular[0], m.Specular[1], m.Specular[2]))
	if m.SpecularExponent != nil {
		out = out.WithSpecularExponent(*m.SpecularExponent)
	}
	if m.Opacity != nil {
		out = out.WithOpacity(*m.Opacity)
	}
	if m.RefractionIndex != nil {
		out = out.WithRefractionIndex(*m.RefractionIndex)
	}
	if m.ReflectionIndex != nil {
		out = out.WithReflectionIndex(*m.ReflectionIndex)
	}
	if m.LightEmission != nil {
		out = out.WithLightEmission(*m.LightEmission)
	}
	return out
}

// TransferFunctionModel builds the transfer function, or nil when the scene
// has no [transfer-function] table.
func (s *Scene) TransferFunctionModel() (*models.TransferFunction, error) {
	if s.TransferFunction == nil {
		return nil, nil
	}
	tf := models.NewTransferFunction()
	for attr, points := range s.TransferFunction {
		cps := make([]models.ControlPoint, len(points))
		for i, p := range points {
			cps[i] = models.ControlPoint{X: p[0], Y: p[1]}
		}
		if err := tf.SetControlPoints(models.Attribute(attr), cps); err != nil {
			return nil, err
		}
	}
	return tf, nil
}
