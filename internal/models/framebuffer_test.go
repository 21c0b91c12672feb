package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeImageJPEG(t *testing.T) {
	img, err := DecodeImageJPEG([]byte(`{"data": "/9j/4A=="}`))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xd8, 0xff, 0xe0}, img.Data)

	_, err = DecodeImageJPEG([]byte(`{"image": ""}`))
	assert.ErrorIs(t, err, ErrMissingKey)

	_, err = DecodeImageJPEG([]byte(`{"data": "***"}`))
	assert.Error(t, err)
}

func TestFrameBuffersRoundTrip(t *testing.T) {
	want := &FrameBuffers{
		Width:   2,
		Height:  1,
		Diffuse: []byte{1, 2, 3, 4, 5, 6, 7, 8},
		Depth:   []byte{0x34, 0x12, 0xff, 0xff},
	}
	data, err := want.Serialize()
	require.NoError(t, err)

	got, err := DecodeFrameBuffers(data)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecodeFrameBuffersMissingPlane(t *testing.T) {
	_, err := DecodeFrameBuffers([]byte(`{"width": 1, "height": 1, "diffuse": "AAAAAA=="}`))
	assert.ErrorIs(t, err, ErrMissingKey)
	assert.Contains(t, err.Error(), "depth")
}

func TestAttributeUpdateSerialize(t *testing.T) {
	data, err := AttributeUpdate{Key: "background-color", Value: "0.1 0.1 0.1"}.Serialize()
	require.NoError(t, err)
	assert.JSONEq(t, `{"key": "background-color", "value": "0.1 0.1 0.1"}`, string(data))
}

func TestPresetValidate(t *testing.T) {
	cam, err := NewCamera().Serialize()
	require.NoError(t, err)

	p := &Preset{Name: "front", Kind: PresetCamera, Document: cam}
	assert.NoError(t, p.Validate())

	p.Kind = PresetMaterial
	assert.Error(t, p.Validate())

	p.Kind = "light"
	assert.Error(t, p.Validate())

	p = &Preset{Kind: PresetCamera, Document: cam}
	assert.Error(t, p.Validate())
}

func TestPresetMarshalKeepsDocument(t *testing.T) {
	p := &Preset{ID: "1", Name: "front", Kind: PresetCamera, Document: []byte(`{"a":1}`)}
	data, err := p.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"document":{"a":1}`)

	got, err := UnmarshalPreset(data)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(got.Document))
	assert.Equal(t, "front", got.Name)
}
