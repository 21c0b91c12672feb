// Package storage defines where named presets of scene parameters are kept.
package storage

import (
	"context"
	"errors"

	"github.com/Vasu1712/brayns-remote/internal/models"
)

// ErrPresetNotFound is returned when no preset has the requested name.
var ErrPresetNotFound = errors.New("preset not found")

// PresetStore keeps presets by name. Saving under an existing name replaces
// the document and kind but keeps the preset's ID.
type PresetStore interface {
	SavePreset(ctx context.Context, name string, kind models.PresetKind, document []byte) (*models.Preset, error)
	GetPreset(ctx context.Context, name string) (*models.Preset, error)
	ListPresets(ctx context.Context) ([]*models.Preset, error) // sorted by name
	DeletePreset(ctx context.Context, name string) error
	Close() error
}
