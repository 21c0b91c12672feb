// Package valkey keeps presets in a Valkey (or Redis) server so that several
// control panels can share them.
package valkey

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"

	"github.com/Vasu1712/brayns-remote/internal/models"
	"github.com/Vasu1712/brayns-remote/internal/storage"
)

const (
	keyPrefix = "brayns:preset:"
	indexKey  = "brayns:presets" // set of preset names
)

// PresetStore implements storage.PresetStore on top of Valkey.
type PresetStore struct {
	client valkey.Client
}

// NewPresetStore connects to the Valkey server at addr, e.g. "127.0.0.1:6379".
func NewPresetStore(addr string) (*PresetStore, error) {
	client, err := valkey.NewClient(valkey.ClientOption{InitAddress: []string{addr}})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to valkey at %s: %w", addr, err)
	}
	log.Printf("Successfully connected to Valkey at %s for presets.", addr)
	return &PresetStore{client: client}, nil
}

func presetKey(name string) string { return keyPrefix + name }

// SavePreset stores document under name, keeping the ID of a preset it replaces.
func (s *PresetStore) SavePreset(ctx context.Context, name string, kind models.PresetKind, document []byte) (*models.Preset, error) {
	id := uuid.NewString()
	old, err := s.GetPreset(ctx, name)
	switch {
	case err == nil:
		id = old.ID
	case err != storage.ErrPresetNotFound:
		return nil, err
	}

	p := &models.Preset{
		ID:        id,
		Name:      name,
		Kind:      kind,
		Document:  append([]byte(nil), document...),
		CreatedAt: time.Now().UTC(),
	}
	data, err := p.Marshal()
	if err != nil {
		return nil, fmt.Errorf("encode preset %q: %w", name, err)
	}

	cmds := valkey.Commands{
		s.client.B().Set().Key(presetKey(name)).Value(string(data)).Build(),
		s.client.B().Sadd().Key(indexKey).Member(name).Build(),
	}
	for _, resp := range s.client.DoMulti(ctx, cmds...) {
		if err := resp.Error(); err != nil {
			return nil, fmt.Errorf("save preset %q: %w", name, err)
		}
	}
	log.Printf("[Preset] Saved preset in Valkey: ID=%s, Name=%s, Kind=%s", p.ID, p.Name, p.Kind)
	return p, nil
}

// GetPreset retrieves a preset by name.
func (s *PresetStore) GetPreset(ctx context.Context, name string) (*models.Preset, error) {
	data, err := s.client.Do(ctx, s.client.B().Get().Key(presetKey(name)).Build()).ToString()
	if valkey.IsValkeyNil(err) {
		return nil, storage.ErrPresetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get preset %q: %w", name, err)
	}
	p, err := models.UnmarshalPreset([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("decode preset %q: %w", name, err)
	}
	return p, nil
}

// ListPresets returns every preset sorted by name. Index entries whose
// preset has vanished are skipped.
func (s *PresetStore) ListPresets(ctx context.Context) ([]*models.Preset, error) {
	names, err := s.client.Do(ctx, s.client.B().Smembers().Key(indexKey).Build()).AsStrSlice()
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}
	sort.Strings(names)

	presets := make([]*models.Preset, 0, len(names))
	for _, name := range names {
		p, err := s.GetPreset(ctx, name)
		if err == storage.ErrPresetNotFound {
			log.Printf("[Preset] Index lists %q but no preset is stored", name)
			continue
		}
		if err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}
	return presets, nil
}

// DeletePreset removes a preset by name.
func (s *PresetStore) DeletePreset(ctx context.Context, name string) error {
	n, err := s.client.Do(ctx, s.client.B().Del().Key(presetKey(name)).Build()).AsInt64()
	if err != nil {
		return fmt.Errorf("delete preset %q: %w", name, err)
	}
	if err := s.client.Do(ctx, s.client.B().Srem().Key(indexKey).Member(name).Build()).Error(); err != nil {
		return fmt.Errorf("unindex preset %q: %w", name, err)
	}
	if n == 0 {
		return storage.ErrPresetNotFound
	}
	log.Printf("[Preset] Deleted preset from Valkey: Name=%s", name)
	return nil
}

func (s *PresetStore) Close() error {
	s.client.Close()
	return nil
}
