package scenefile

import (
	"context"
	"image"
	"image/jpeg"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vasu1712/brayns-remote/internal/brayns"
	"github.com/Vasu1712/brayns-remote/internal/fakeserver"
	"github.com/Vasu1712/brayns-remote/internal/models"
)

func newServer(t *testing.T, opts ...brayns.Option) (*brayns.Client, *fakeserver.Server) {
	t.Helper()
	srv := fakeserver.New(fakeserver.Quiet())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return brayns.New(ts.URL, opts...), srv
}

func TestExampleScene(t *testing.T) {
	s := Example()
	require.NotNil(t, s.Camera)
	assert.Equal(t, mgl64.Vec3{0, 0, -3}, s.Camera.FovCamera().Origin)
	require.Len(t, s.Materials, 1)
	assert.Len(t, s.TransferFunction["red"], 5)

	tf, err := s.TransferFunctionModel()
	require.NoError(t, err)
	assert.Equal(t, []models.ControlPoint{{X: -92.0915, Y: 1}, {X: 49.5497, Y: 1}}, tf.ControlPoints(models.AttributeAlpha))
}

func TestApplySendsSettingsInOrder(t *testing.T) {
	c, srv := newServer(t)
	require.NoError(t, Example().Apply(context.Background(), c))

	var paths []string
	for _, r := range srv.Requests() {
		paths = append(paths, r.Path)
	}
	attr, cam, mat, tf := brayns.PathAttribute, brayns.PathFovCamera, brayns.PathMaterial, brayns.PathTransferFunction
	assert.Equal(t, []string{
		attr, attr, attr, attr, attr, // renderer, shader, ambient occlusion, shadows, soft shadows
		cam, mat,
		attr, attr, attr, // background, window size, spp
		tf,
		attr, attr, // jpeg size, jpeg quality
	}, paths)

	assert.Equal(t, *models.NewFovCamera(mgl64.Vec3{0, 0, -3}, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}, 0, 0), srv.Camera())
	v, ok := srv.Attribute("background-color")
	require.True(t, ok)
	assert.Equal(t, "0.1 0.1 0.1", v)
	m, ok := srv.Material(0)
	require.True(t, ok)
	exp, set := m.SpecularExponent()
	assert.True(t, set)
	assert.Equal(t, 100.0, exp)
}

func TestApplySkipsUnsupportedOnLegacy(t *testing.T) {
	c, srv := newServer(t, brayns.WithProfile(brayns.ProfileLegacy))
	require.NoError(t, Example().Apply(context.Background(), c))

	_, ok := srv.Attribute("renderer")
	assert.False(t, ok)
	for _, r := range srv.Requests() {
		assert.NotEqual(t, brayns.PathTransferFunction, r.Path)
	}
}

func TestCaptureWritesOutputs(t *testing.T) {
	c, _ := newServer(t)
	s := Example()
	require.NoError(t, s.Apply(context.Background(), c))

	dir := t.TempDir()
	files, err := s.Capture(context.Background(), c, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "example.jpg"),
		filepath.Join(dir, "fb_color.tif"),
		filepath.Join(dir, "fb_depth.tif"),
	}, files)

	f, err := os.Open(files[0])
	require.NoError(t, err)
	defer f.Close()
	img, err := jpeg.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 512, 512), img.Bounds())
}

func TestCaptureReencodesJPEG(t *testing.T) {
	c, _ := newServer(t)
	s := &Scene{Output: &Output{JPEG: "frame.png"}}
	files, err := s.Capture(context.Background(), c, t.TempDir())
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, ".png", filepath.Ext(files[0]))
}

func TestParseRejects(t *testing.T) {
	tests := map[string]string{
		"unknown key":       `colour = "red"`,
		"unknown shader":    `shader = "toon"`,
		"unknown renderer":  `renderer = "raytracer"`,
		"short background":  `background = [0.1, 0.1]`,
		"bad attribute":     "[transfer-function]\nhue = [[0.0, 1.0]]",
		"bad control point": "[transfer-function]\nred = [[0.0]]",
		"short camera":      "[camera]\norigin = [0.0]\nlook-at = [0.0, 0.0, 0.0]\nup = [0.0, 1.0, 0.0]",
		"material colors":   "[[material]]\nindex = 0\ndiffuse = [1.0]\nspecular = [1.0, 1.0, 1.0]",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestCameraTableDefaults(t *testing.T) {
	s, err := Parse([]byte("[camera]\norigin = [0.0, 0.0, -3.0]\nlook-at = [0.0, 0.0, 0.0]\n"))
	require.NoError(t, err)
	camera := s.Camera.FovCamera()
	assert.Equal(t, mgl64.Vec3{0, 0, -3}, camera.Origin)
	assert.Equal(t, models.NewCamera().Up, camera.Up)

	s, err = Parse([]byte("[camera]\naperture = 0.5\n"))
	require.NoError(t, err)
	camera = s.Camera.FovCamera()
	want := models.NewCamera()
	want.SetAperture(0.5)
	assert.Equal(t, *want, *camera)
}

func TestCameraTOMLRoundTrip(t *testing.T) {
	camera := models.NewFovCamera(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0}, 0.25, 4)
	data, err := (&Scene{Camera: CameraFromModel(camera)}).Marshal()
	require.NoError(t, err)

	var s Scene
	require.NoError(t, toml.Unmarshal(data, &s))
	require.NotNil(t, s.Camera)
	assert.Equal(t, *camera, *s.Camera.FovCamera())
	assert.Nil(t, s.Shader)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.toml")
	require.NoError(t, os.WriteFile(path, []byte("shader = \"electron\"\nsamples-per-pixel = 4\n"), 0o644))
	s, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, s.Shader)
	assert.Equal(t, "electron", *s.Shader)
	assert.Equal(t, 4, *s.SamplesPerPixel)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
