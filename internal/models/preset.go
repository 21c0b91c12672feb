package models

import (
	stdjson "encoding/json"
	"fmt"
	"time"
)

// PresetKind tells which render-server resource a preset document belongs to.
type PresetKind string

const (
	PresetCamera           PresetKind = "camera"
	PresetMaterial         PresetKind = "material"
	PresetTransferFunction PresetKind = "transfer-function"
)

// Valid reports whether k is a known preset kind.
func (k PresetKind) Valid() bool {
	switch k {
	case PresetCamera, PresetMaterial, PresetTransferFunction:
		return true
	}
	return false
}

// Preset is a named, serialized scene parameter object that can be applied
// to the render server again later.
type Preset struct {
	ID        string             `json:"id"`        // Unique identifier for the preset (UUID)
	Name      string             `json:"name"`      // User-facing name, unique per store
	Kind      PresetKind         `json:"kind"`      // Resource the document targets
	Document  stdjson.RawMessage `json:"document"`  // Serialized camera, material or transfer function
	CreatedAt time.Time          `json:"createdAt"` // When the preset was stored
}

// Validate checks that the document decodes as the object its kind names.
func (p *Preset) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("preset name cannot be empty")
	}
	var err error
	switch p.Kind {
	case PresetCamera:
		err = new(Camera).Deserialize(p.Document)
	case PresetMaterial:
		err = new(Material).Deserialize(p.Document)
	case PresetTransferFunction:
		err = new(TransferFunction).Deserialize(p.Document)
	default:
		return fmt.Errorf("unknown preset kind %q", p.Kind)
	}
	if err != nil {
		return fmt.Errorf("invalid %s document: %w", p.Kind, err)
	}
	return nil
}

// Marshal encodes the whole preset, document included.
func (p *Preset) Marshal() ([]byte, error) { return json.Marshal(p) }

// UnmarshalPreset decodes a preset produced by Marshal.
func UnmarshalPreset(data []byte) (*Preset, error) {
	var p Preset
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
