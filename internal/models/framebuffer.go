package models

import (
	"encoding/base64"
	"fmt"
)

// AttributeUpdate is the body of a generic "set attribute" request.
type AttributeUpdate struct {
	Key   string      `json:"key"`   // attribute name, e.g. "spp"
	Value interface{} `json:"value"` // string, integer or float
}

// Serialize encodes the update as {"key", "value"}.
func (u AttributeUpdate) Serialize() ([]byte, error) {
	return json.Marshal(u)
}

// ImageJPEG is the reply of the imagejpeg endpoint.
type ImageJPEG struct {
	Data []byte // JPEG stream, base64 on the wire
}

// DecodeImageJPEG parses {"data": <base64>}.
func DecodeImageJPEG(data []byte) (*ImageJPEG, error) {
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}
	var encoded string
	if err := doc.field("data", &encoded); err != nil {
		return nil, err
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode \"data\": %w", err)
	}
	return &ImageJPEG{Data: raw}, nil
}

// Serialize encodes the image back into its wire form.
func (i *ImageJPEG) Serialize() ([]byte, error) {
	return json.Marshal(map[string]string{"data": base64.StdEncoding.EncodeToString(i.Data)})
}

// FrameBuffers is the reply of the framebuffers endpoint: the color plane as
// raw RGBA8 and the depth plane as raw little-endian 16-bit values.
type FrameBuffers struct {
	Width   int
	Height  int
	Diffuse []byte
	Depth   []byte
}

type frameBuffersDocument struct {
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Diffuse string `json:"diffuse"`
	Depth   string `json:"depth"`
}

// DecodeFrameBuffers parses {"width", "height", "diffuse", "depth"} and
// base64-decodes both planes.
func DecodeFrameBuffers(data []byte) (*FrameBuffers, error) {
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}
	var fb FrameBuffers
	if err := doc.field("width", &fb.Width); err != nil {
		return nil, err
	}
	if err := doc.field("height", &fb.Height); err != nil {
		return nil, err
	}
	planes := []struct {
		key string
		dst *[]byte
	}{
		{"diffuse", &fb.Diffuse},
		{"depth", &fb.Depth},
	}
	for _, p := range planes {
		var encoded string
		if err := doc.field(p.key, &encoded); err != nil {
			return nil, err
		}
		if *p.dst, err = base64.StdEncoding.DecodeString(encoded); err != nil {
			return nil, fmt.Errorf("decode %q: %w", p.key, err)
		}
	}
	return &fb, nil
}

// Serialize encodes the frame buffers into their wire form.
func (fb *FrameBuffers) Serialize() ([]byte, error) {
	return json.Marshal(frameBuffersDocument{
		Width:   fb.Width,
		Height:  fb.Height,
		Diffuse: base64.StdEncoding.EncodeToString(fb.Diffuse),
		Depth:   base64.StdEncoding.EncodeToString(fb.Depth),
	})
}
