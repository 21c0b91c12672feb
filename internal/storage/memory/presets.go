package memory

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Vasu1712/brayns-remote/internal/models"
	"github.com/Vasu1712/brayns-remote/internal/storage"
)

// PresetStore keeps presets in memory; they are lost when the process exits.
type PresetStore struct {
	mu      sync.RWMutex              // guards presets
	presets map[string]*models.Preset // name -> preset
}

// NewPresetStore creates and returns an empty PresetStore.
func NewPresetStore() *PresetStore {
	return &PresetStore{presets: make(map[string]*models.Preset)}
}

func clonePreset(p *models.Preset) *models.Preset {
	c := *p
	c.Document = append([]byte(nil), p.Document...)
	return &c
}

// SavePreset stores document under name, replacing any preset of that name.
func (s *PresetStore) SavePreset(ctx context.Context, name string, kind models.PresetKind, document []byte) (*models.Preset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	if old, ok := s.presets[name]; ok {
		id = old.ID
	}
	p := &models.Preset{
		ID:        id,
		Name:      name,
		Kind:      kind,
		Document:  append([]byte(nil), document...),
		CreatedAt: time.Now().UTC(),
	}
	s.presets[name] = p

	log.Printf("[Preset] Saved preset: ID=%s, Name=%s, Kind=%s", p.ID, p.Name, p.Kind)
	return clonePreset(p), nil
}

// GetPreset retrieves a preset by name.
func (s *PresetStore) GetPreset(ctx context.Context, name string) (*models.Preset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.presets[name]
	if !ok {
		return nil, storage.ErrPresetNotFound
	}
	return clonePreset(p), nil
}

// ListPresets returns every preset sorted by name.
func (s *PresetStore) ListPresets(ctx context.Context) ([]*models.Preset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	presets := make([]*models.Preset, 0, len(s.presets))
	for _, p := range s.presets {
		presets = append(presets, clonePreset(p))
	}
	sort.Slice(presets, func(i, j int) bool { return presets[i].Name < presets[j].Name })
	return presets, nil
}

// DeletePreset removes a preset by name.
func (s *PresetStore) DeletePreset(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.presets[name]; !ok {
		return storage.ErrPresetNotFound
	}
	delete(s.presets, name)
	log.Printf("[Preset] Deleted preset: Name=%s", name)
	return nil
}

func (s *PresetStore) Close() error { return nil }
