package brayns

import (
	"context"
	"log"
	"strconv"
	"strings"

	"github.com/Vasu1712/brayns-remote/internal/models"
)

// AttributeKey is one of the names the attribute endpoint understands.
type AttributeKey string

const (
	KeyAmbientOcclusion AttributeKey = "ambient-occlusion"
	KeyJPEGCompression  AttributeKey = "jpeg-compression"
	KeySamplesPerPixel  AttributeKey = "spp"
	KeyBackgroundColor  AttributeKey = "background-color"
	KeyWindowSize       AttributeKey = "window-size"
	KeyJPEGSize         AttributeKey = "jpeg-size"
	KeyShadows          AttributeKey = "shadows"
	KeySoftShadows      AttributeKey = "soft-shadows"
	KeyEpsilon          AttributeKey = "epsilon"
	KeyTimestamp        AttributeKey = "timestamp"
	KeyShader           AttributeKey = "material"
	KeyRenderer         AttributeKey = "renderer"
)

// Value is an attribute value. Only the types below implement it.
type Value interface {
	wire() interface{}
}

type (
	StringValue string
	IntValue    int
	FloatValue  float64
	// BoolValue travels as the integer 0 or 1.
	BoolValue bool
)

func (v StringValue) wire() interface{} { return string(v) }
func (v IntValue) wire() interface{}    { return int(v) }
func (v FloatValue) wire() interface{}  { return float64(v) }

func (v BoolValue) wire() interface{} {
	if v {
		return 1
	}
	return 0
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

// joinFloats renders values as a space separated list, e.g. "0.1 0.1 0.1".
func joinFloats(values ...float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatFloat(v)
	}
	return strings.Join(parts, " ")
}

func (c *Client) setAttribute(ctx context.Context, key AttributeKey, value Value) error {
	body, err := models.AttributeUpdate{Key: string(key), Value: value.wire()}.Serialize()
	if err != nil {
		return err
	}
	return c.put(ctx, c.urls.attribute, body)
}

// SetAmbientOcclusion sets the ambient occlusion strength.
func (c *Client) SetAmbientOcclusion(ctx context.Context, strength float64) error {
	return c.setAttribute(ctx, KeyAmbientOcclusion, FloatValue(strength))
}

// SetImageJPEGQuality sets the JPEG compression quality, 0 to 100.
func (c *Client) SetImageJPEGQuality(ctx context.Context, quality int) error {
	return c.setAttribute(ctx, KeyJPEGCompression, IntValue(quality))
}

func (c *Client) SetSamplesPerPixel(ctx context.Context, spp int) error {
	return c.setAttribute(ctx, KeySamplesPerPixel, IntValue(spp))
}

// SetBackgroundColor sends the color as the string "r g b".
func (c *Client) SetBackgroundColor(ctx context.Context, r, g, b float64) error {
	return c.setAttribute(ctx, KeyBackgroundColor, StringValue(joinFloats(r, g, b)))
}

// SetWindowSize sets the size of the frame the server renders, sent as "width height".
func (c *Client) SetWindowSize(ctx context.Context, width, height int) error {
	return c.setAttribute(ctx, KeyWindowSize, StringValue(strconv.Itoa(width)+" "+strconv.Itoa(height)))
}

// SetImageJPEGSize sets the size of the JPEG the server returns.
func (c *Client) SetImageJPEGSize(ctx context.Context, width, height int) error {
	return c.setAttribute(ctx, KeyJPEGSize, StringValue(strconv.Itoa(width)+" "+strconv.Itoa(height)))
}

func (c *Client) SetShadows(ctx context.Context, enabled bool) error {
	return c.setAttribute(ctx, KeyShadows, BoolValue(enabled))
}

func (c *Client) SetSoftShadows(ctx context.Context, enabled bool) error {
	return c.setAttribute(ctx, KeySoftShadows, BoolValue(enabled))
}

// SetEpsilon sets the ray epsilon; the server expects it as a string.
func (c *Client) SetEpsilon(ctx context.Context, epsilon float64) error {
	return c.setAttribute(ctx, KeyEpsilon, StringValue(formatFloat(epsilon)))
}

// SetTimestamp selects the simulation frame; the server expects it as a string.
func (c *Client) SetTimestamp(ctx context.Context, timestamp float64) error {
	return c.setAttribute(ctx, KeyTimestamp, StringValue(formatFloat(timestamp)))
}

// Shader is a shading mode name.
type Shader string

const (
	ShaderDiffuse   Shader = "diffuse"
	ShaderElectron  Shader = "electron"
	ShaderNoShading Shader = "noshading"
)

// Integer shader ids of the legacy API.
const (
	ShaderIDDiffuse   = 0
	ShaderIDElectron  = 1
	ShaderIDNoShading = 2
)

var shaderIDs = map[int]Shader{
	ShaderIDDiffuse:   ShaderDiffuse,
	ShaderIDElectron:  ShaderElectron,
	ShaderIDNoShading: ShaderNoShading,
}

// SetShader selects the shading mode by name.
func (c *Client) SetShader(ctx context.Context, shader Shader) error {
	return c.setAttribute(ctx, KeyShader, StringValue(shader))
}

// SetShaderID selects the shading mode by legacy integer id. An unknown id
// is logged and nothing is sent.
func (c *Client) SetShaderID(ctx context.Context, id int) error {
	shader, ok := shaderIDs[id]
	if !ok {
		c.logf("[Brayns] Unknown shader %d", id)
		return nil
	}
	return c.SetShader(ctx, shader)
}

// Renderer is a render server back end name.
type Renderer string

const (
	RendererDefault            Renderer = "exobj"
	RendererProximityDetection Renderer = "proximityrenderer"
	RendererSimulation         Renderer = "simulationrenderer"
)

// SetRenderer switches the server's renderer. Legacy servers have a single renderer.
func (c *Client) SetRenderer(ctx context.Context, renderer Renderer) error {
	if c.profile == ProfileLegacy {
		return ErrUnsupported
	}
	return c.setAttribute(ctx, KeyRenderer, StringValue(renderer))
}

// logf is used by code paths that report without failing.
func (c *Client) logf(format string, args ...interface{}) {
	if c.logger == nil {
		log.Printf(format, args...)
		return
	}
	c.logger.Printf(format, args...)
}
