package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterialSerializeUnsetScalars(t *testing.T) {
	m := NewMaterial(0, RGB(1, 1, 1), RGB(1, 1, 1)).
		WithSpecularExponent(100).
		WithOpacity(1)

	data, err := m.Serialize()
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"index": 0,
		"diffuseColor": {"r": 1, "g": 1, "b": 1},
		"specularColor": {"r": 1, "g": 1, "b": 1},
		"specularExponent": 100,
		"opacity": 1,
		"refractionIndex": null,
		"reflectionIndex": null,
		"lightEmission": null
	}`, string(data))
}

func TestMaterialRoundTrip(t *testing.T) {
	cases := []Material{
		NewMaterial(3, RGB(0.1, 0.2, 0.3), RGB(0.9, 0.8, 0.7)).
			WithSpecularExponent(20).
			WithOpacity(0.5).
			WithRefractionIndex(1.33).
			WithReflectionIndex(0.25).
			WithLightEmission(2),
		NewMaterial(0, RGB(1, 0, 0), RGB(0, 0, 0)),
	}
	for _, want := range cases {
		data, err := want.Serialize()
		require.NoError(t, err)

		var got Material
		require.NoError(t, got.Deserialize(data))
		assert.Equal(t, want, got)
	}
}

func TestMaterialDeserializeNullScalars(t *testing.T) {
	want := NewMaterial(0, RGB(1, 1, 1), RGB(1, 1, 1)).
		WithSpecularExponent(100).
		WithOpacity(1)
	data, err := want.Serialize()
	require.NoError(t, err)

	var got Material
	require.NoError(t, got.Deserialize(data))
	assert.Equal(t, want, got)
	_, ok := got.RefractionIndex()
	assert.False(t, ok)

	bad := `{"index": 0, "diffuseColor": {"r": 1, "g": 1, "b": 1}, "specularColor": {"r": 1, "g": 1, "b": 1},
		"specularExponent": "high", "opacity": null, "refractionIndex": null, "reflectionIndex": null, "lightEmission": null}`
	assert.Error(t, got.Deserialize([]byte(bad)))

	missing := `{"index": 0, "diffuseColor": {"r": 1, "g": 1, "b": 1}, "specularColor": {"r": 1, "g": 1, "b": 1},
		"specularExponent": null, "opacity": null, "refractionIndex": null, "reflectionIndex": null}`
	err = got.Deserialize([]byte(missing))
	assert.ErrorIs(t, err, ErrMissingKey)
	assert.Contains(t, err.Error(), "lightEmission")
}

func TestMaterialAccessors(t *testing.T) {
	m := NewMaterial(7, RGB(1, 0, 0), RGB(0, 1, 0)).WithOpacity(0.25)
	assert.Equal(t, 7, m.Index())
	assert.Equal(t, RGB(1, 0, 0), m.DiffuseColor())
	assert.Equal(t, RGB(0, 1, 0), m.SpecularColor())

	v, ok := m.Opacity()
	assert.True(t, ok)
	assert.Equal(t, 0.25, v)

	_, ok = m.LightEmission()
	assert.False(t, ok)

	// builders return copies
	m2 := m.WithIndex(8)
	assert.Equal(t, 7, m.Index())
	assert.Equal(t, 8, m2.Index())
}

func TestMaterialDeserializeMissingKey(t *testing.T) {
	var m Material
	err := m.Deserialize([]byte(`{"index": 1, "diffuseColor": {"r": 1, "g": 1, "b": 1}}`))
	assert.ErrorIs(t, err, ErrMissingKey)
	assert.Contains(t, err.Error(), "specularColor")
}

func TestMaterialString(t *testing.T) {
	m := NewMaterial(0, RGB(1, 1, 1), RGB(1, 1, 1)).WithSpecularExponent(100)
	s := m.String()
	assert.Contains(t, s, "Specular exponent: 100")
	assert.Contains(t, s, "Opacity: unset")
}
