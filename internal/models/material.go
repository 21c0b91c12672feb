package models

import (
	"fmt"
	"strconv"
)

// Color is a linear RGB triple, each component nominally in [0,1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// RGB is shorthand for Color{r, g, b}.
func RGB(r, g, b float64) Color { return Color{R: r, G: g, B: b} }

// Material is a server-side material slot. Both colors are required when the
// material is built; the scalar properties stay unset (and are sent as null)
// until one of the With methods provides them.
type Material struct {
	index            int
	diffuseColor     Color
	specularColor    Color
	specularExponent *float64
	opacity          *float64
	refractionIndex  *float64
	reflectionIndex  *float64
	lightEmission    *float64
}

// NewMaterial returns the material for slot index with the given colors.
func NewMaterial(index int, diffuse, specular Color) Material {
	return Material{index: index, diffuseColor: diffuse, specularColor: specular}
}

func ptr(v float64) *float64 { return &v }

func (m Material) WithIndex(index int) Material { m.index = index; return m }

func (m Material) WithDiffuseColor(c Color) Material  { m.diffuseColor = c; return m }
func (m Material) WithSpecularColor(c Color) Material { m.specularColor = c; return m }

func (m Material) WithSpecularExponent(v float64) Material { m.specularExponent = ptr(v); return m }
func (m Material) WithOpacity(v float64) Material          { m.opacity = ptr(v); return m }
func (m Material) WithRefractionIndex(v float64) Material  { m.refractionIndex = ptr(v); return m }
func (m Material) WithReflectionIndex(v float64) Material  { m.reflectionIndex = ptr(v); return m }
func (m Material) WithLightEmission(v float64) Material    { m.lightEmission = ptr(v); return m }

func (m Material) Index() int           { return m.index }
func (m Material) DiffuseColor() Color  { return m.diffuseColor }
func (m Material) SpecularColor() Color { return m.specularColor }

func get(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

func (m Material) SpecularExponent() (float64, bool) { return get(m.specularExponent) }
func (m Material) Opacity() (float64, bool)          { return get(m.opacity) }
func (m Material) RefractionIndex() (float64, bool)  { return get(m.refractionIndex) }
func (m Material) ReflectionIndex() (float64, bool)  { return get(m.reflectionIndex) }
func (m Material) LightEmission() (float64, bool)    { return get(m.lightEmission) }

type materialDocument struct {
	Index            int      `json:"index"`
	DiffuseColor     Color    `json:"diffuseColor"`
	LightEmission    *float64 `json:"lightEmission"`
	Opacity          *float64 `json:"opacity"`
	ReflectionIndex  *float64 `json:"reflectionIndex"`
	RefractionIndex  *float64 `json:"refractionIndex"`
	SpecularColor    Color    `json:"specularColor"`
	SpecularExponent *float64 `json:"specularExponent"`
}

// Serialize encodes the material document for its own slot index.
func (m Material) Serialize() ([]byte, error) {
	return json.Marshal(materialDocument{
		Index:            m.index,
		DiffuseColor:     m.diffuseColor,
		LightEmission:    m.lightEmission,
		Opacity:          m.opacity,
		ReflectionIndex:  m.reflectionIndex,
		RefractionIndex:  m.refractionIndex,
		SpecularColor:    m.specularColor,
		SpecularExponent: m.specularExponent,
	})
}

// Deserialize replaces the material with the content of a material
// document. All keys must be present; scalar properties may be null.
func (m *Material) Deserialize(data []byte) error {
	doc, err := decodeDocument(data)
	if err != nil {
		return err
	}
	rgb := [3]string{"r", "g", "b"}
	var out Material
	if err := doc.field("index", &out.index); err != nil {
		return err
	}
	diffuse, err := doc.triple("diffuseColor", rgb)
	if err != nil {
		return err
	}
	specular, err := doc.triple("specularColor", rgb)
	if err != nil {
		return err
	}
	out.diffuseColor = RGB(diffuse[0], diffuse[1], diffuse[2])
	out.specularColor = RGB(specular[0], specular[1], specular[2])

	scalars := []struct {
		key string
		dst **float64
	}{
		{"specularExponent", &out.specularExponent},
		{"opacity", &out.opacity},
		{"refractionIndex", &out.refractionIndex},
		{"reflectionIndex", &out.reflectionIndex},
		{"lightEmission", &out.lightEmission},
	}
	for _, s := range scalars {
		v, err := doc.optionalFloat(s.key)
		if err != nil {
			return err
		}
		*s.dst = v
	}
	*m = out
	return nil
}

func (m Material) MarshalJSON() ([]byte, error)     { return m.Serialize() }
func (m *Material) UnmarshalJSON(data []byte) error { return m.Deserialize(data) }

func optional(p *float64) string {
	if p == nil {
		return "unset"
	}
	return strconv.FormatFloat(*p, 'g', -1, 64)
}

func (m Material) String() string {
	return fmt.Sprintf("Diffuse color: %v, Specular color: %v, Specular exponent: %s, Opacity: %s, "+
		"Refraction index: %s, Reflection index: %s, Light emission: %s",
		m.diffuseColor, m.specularColor, optional(m.specularExponent), optional(m.opacity),
		optional(m.refractionIndex), optional(m.reflectionIndex), optional(m.lightEmission))
}
