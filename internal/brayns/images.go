package brayns

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"math"

	"github.com/Vasu1712/brayns-remote/internal/models"
)

// FrameBufferKind selects one plane of the framebuffers reply.
type FrameBufferKind int

const (
	FrameBufferColor FrameBufferKind = iota // RGBA, 8 bits per channel
	FrameBufferDepth                        // single channel, 16 bits
)

func (k FrameBufferKind) String() string {
	switch k {
	case FrameBufferColor:
		return "color"
	case FrameBufferDepth:
		return "depth"
	}
	return fmt.Sprintf("FrameBufferKind(%d)", int(k))
}

// ErrUnknownFrameBuffer is returned for a FrameBufferKind other than color or depth.
var ErrUnknownFrameBuffer = errors.New("unknown frame buffer kind")

// GetImageJPEGBytes returns the JPEG stream of the current frame, or nil if
// the server cannot be reached.
func (c *Client) GetImageJPEGBytes(ctx context.Context) ([]byte, error) {
	data, err := c.get(ctx, c.urls.imageJPEG)
	if err != nil || data == nil {
		return nil, err
	}
	doc, err := models.DecodeImageJPEG(data)
	if err != nil {
		return nil, fmt.Errorf("decode imagejpeg reply: %w", err)
	}
	return doc.Data, nil
}

// GetImageJPEG returns the current frame decoded, or nil if the server
// cannot be reached.
func (c *Client) GetImageJPEG(ctx context.Context) (image.Image, error) {
	data, err := c.GetImageJPEGBytes(ctx)
	if err != nil || data == nil {
		return nil, err
	}
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode jpeg: %w", err)
	}
	return img, nil
}

// GetFrameBuffers returns both raw planes, or nil if the server cannot be reached.
func (c *Client) GetFrameBuffers(ctx context.Context) (*models.FrameBuffers, error) {
	if c.profile == ProfileLegacy {
		return nil, ErrUnsupported
	}
	data, err := c.get(ctx, c.urls.frameBuffers)
	if err != nil || data == nil {
		return nil, err
	}
	fb, err := models.DecodeFrameBuffers(data)
	if err != nil {
		return nil, fmt.Errorf("decode framebuffers reply: %w", err)
	}
	return fb, nil
}

// GetFrameBuffer returns one plane of the current frame as an image:
// *image.NRGBA for color and *image.Gray16 for depth. It returns nil if the
// server cannot be reached.
func (c *Client) GetFrameBuffer(ctx context.Context, kind FrameBufferKind) (image.Image, error) {
	if kind != FrameBufferColor && kind != FrameBufferDepth {
		return nil, fmt.Errorf("%w: %v", ErrUnknownFrameBuffer, kind)
	}
	fb, err := c.GetFrameBuffers(ctx)
	if err != nil || fb == nil {
		return nil, err
	}
	return FrameBufferImage(fb, kind)
}

// FrameBufferImage rebuilds one plane of fb as an image. The plane must hold
// exactly width*height pixels.
func FrameBufferImage(fb *models.FrameBuffers, kind FrameBufferKind) (image.Image, error) {
	if fb.Width < 0 || fb.Height < 0 || (fb.Height > 0 && fb.Width > math.MaxInt32/4/fb.Height) {
		return nil, fmt.Errorf("invalid frame buffer size %dx%d", fb.Width, fb.Height)
	}
	rect := image.Rect(0, 0, fb.Width, fb.Height)
	pixels := fb.Width * fb.Height

	switch kind {
	case FrameBufferColor:
		if len(fb.Diffuse) != pixels*4 {
			return nil, fmt.Errorf("color plane holds %d bytes, want %d for %dx%d RGBA",
				len(fb.Diffuse), pixels*4, fb.Width, fb.Height)
		}
		img := image.NewNRGBA(rect)
		copy(img.Pix, fb.Diffuse)
		return img, nil

	case FrameBufferDepth:
		if len(fb.Depth) != pixels*2 {
			return nil, fmt.Errorf("depth plane holds %d bytes, want %d for %dx%d 16-bit",
				len(fb.Depth), pixels*2, fb.Width, fb.Height)
		}
		img := image.NewGray16(rect)
		// the wire is little-endian, image.Gray16 is big-endian
		for i := 0; i < pixels; i++ {
			img.Pix[2*i] = fb.Depth[2*i+1]
			img.Pix[2*i+1] = fb.Depth[2*i]
		}
		return img, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownFrameBuffer, kind)
}
