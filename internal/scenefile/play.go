package scenefile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/jpeg"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/Vasu1712/brayns-remote/internal/brayns"
	"github.com/Vasu1712/brayns-remote/internal/imageio"
)

type step struct {
	name string
	call func(ctx context.Context, c *brayns.Client) error
}

// steps lists the calls the scene makes, in the order they are sent.
func (s *Scene) steps() ([]step, error) {
	var steps []step
	add := func(name string, call func(ctx context.Context, c *brayns.Client) error) {
		steps = append(steps, step{name, call})
	}

	if v := s.Renderer; v != nil {
		add("renderer", func(ctx context.Context, c *brayns.Client) error { return c.SetRenderer(ctx, brayns.Renderer(*v)) })
	}
	if v := s.Shader; v != nil {
		add("shader", func(ctx context.Context, c *brayns.Client) error { return c.SetShader(ctx, brayns.Shader(*v)) })
	}
	if v := s.AmbientOcclusion; v != nil {
		add("ambient-occlusion", func(ctx context.Context, c *brayns.Client) error { return c.SetAmbientOcclusion(ctx, *v) })
	}
	if v := s.Shadows; v != nil {
		add("shadows", func(ctx context.Context, c *brayns.Client) error { return c.SetShadows(ctx, *v) })
	}
	if v := s.SoftShadows; v != nil {
		add("soft-shadows", func(ctx context.Context, c *brayns.Client) error { return c.SetSoftShadows(ctx, *v) })
	}
	if s.Camera != nil {
		camera := s.Camera.FovCamera()
		add("camera", func(ctx context.Context, c *brayns.Client) error { return c.SetFovCamera(ctx, camera) })
	}
	for i := range s.Materials {
		m := s.Materials[i].Model()
		add(fmt.Sprintf("material %d", m.Index()), func(ctx context.Context, c *brayns.Client) error { return c.SetMaterial(ctx, m) })
	}
	if v := s.Background; v != nil {
		add("background", func(ctx context.Context, c *brayns.Client) error { return c.SetBackgroundColor(ctx, v[0], v[1], v[2]) })
	}
	if v := s.WindowSize; v != nil {
		add("window-size", func(ctx context.Context, c *brayns.Client) error { return c.SetWindowSize(ctx, v[0], v[1]) })
	}
	if v := s.SamplesPerPixel; v != nil {
		add("samples-per-pixel", func(ctx context.Context, c *brayns.Client) error { return c.SetSamplesPerPixel(ctx, *v) })
	}
	if v := s.Epsilon; v != nil {
		add("epsilon", func(ctx context.Context, c *brayns.Client) error { return c.SetEpsilon(ctx, *v) })
	}
	if v := s.Timestamp; v != nil {
		add("timestamp", func(ctx context.Context, c *brayns.Client) error { return c.SetTimestamp(ctx, *v) })
	}
	tf, err := s.TransferFunctionModel()
	if err != nil {
		return nil, err
	}
	if tf != nil {
		add("transfer-function", func(ctx context.Context, c *brayns.Client) error { return c.SetTransferFunction(ctx, tf) })
	}
	if o := s.Output; o != nil {
		if v := o.JPEGSize; v != nil {
			add("jpeg-size", func(ctx context.Context, c *brayns.Client) error { return c.SetImageJPEGSize(ctx, v[0], v[1]) })
		}
		if v := o.JPEGQuality; v != nil {
			add("jpeg-quality", func(ctx context.Context, c *brayns.Client) error { return c.SetImageJPEGQuality(ctx, *v) })
		}
	}
	return steps, nil
}

// Apply sends the scene to the render server. Settings the server's
// profile does not support are logged and skipped.
func (s *Scene) Apply(ctx context.Context, c *brayns.Client) error {
	steps, err := s.steps()
	if err != nil {
		return err
	}
	for _, st := range steps {
		err := st.call(ctx, c)
		if errors.Is(err, brayns.ErrUnsupported) {
			log.Printf("[Scene] %s not supported by %s server, skipped", st.name, c.Profile())
			continue
		}
		if err != nil {
			return fmt.Errorf("set %s: %w", st.name, err)
		}
	}
	log.Printf("[Scene] Applied %d settings to %s", len(steps), c.URL())
	return nil
}

// Capture fetches the outputs the scene names and writes them under dir.
// It returns the files written; outputs the server cannot provide are
// skipped.
func (s *Scene) Capture(ctx context.Context, c *brayns.Client, dir string) ([]string, error) {
	if s.Output == nil {
		return nil, nil
	}
	var written []string

	if name := s.Output.JPEG; name != "" {
		path := filepath.Join(dir, name)
		ok, err := captureJPEG(ctx, c, path)
		if err != nil {
			return written, err
		}
		if ok {
			written = append(written, path)
		}
	}

	planes := []struct {
		name string
		kind brayns.FrameBufferKind
	}{
		{s.Output.Color, brayns.FrameBufferColor},
		{s.Output.Depth, brayns.FrameBufferDepth},
	}
	for _, p := range planes {
		if p.name == "" {
			continue
		}
		img, err := c.GetFrameBuffer(ctx, p.kind)
		if errors.Is(err, brayns.ErrUnsupported) {
			log.Printf("[Scene] %s framebuffer not supported by %s server, skipped", p.kind, c.Profile())
			continue
		}
		if err != nil {
			return written, fmt.Errorf("get %s framebuffer: %w", p.kind, err)
		}
		if img == nil {
			continue
		}
		path := filepath.Join(dir, p.name)
		if err := imageio.Save(img, path); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	for _, path := range written {
		log.Printf("[Scene] Wrote %s", path)
	}
	return written, nil
}

// captureJPEG keeps the server's JPEG stream untouched when path is a JPEG
// file and re-encodes it otherwise.
func captureJPEG(ctx context.Context, c *brayns.Client, path string) (bool, error) {
	data, err := c.GetImageJPEGBytes(ctx)
	if err != nil {
		return false, fmt.Errorf("get image: %w", err)
	}
	if data == nil {
		return false, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return false, err
		}
		return true, os.WriteFile(path, data, 0o644)
	}
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return false, fmt.Errorf("decode jpeg: %w", err)
	}
	return true, imageio.Save(img, path)
}
