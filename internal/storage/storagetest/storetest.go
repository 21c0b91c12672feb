// Package storagetest holds the behaviour every storage.PresetStore must share.
package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vasu1712/brayns-remote/internal/models"
	"github.com/Vasu1712/brayns-remote/internal/storage"
)

// Run exercises store. The store must start without presets named
// "storetest-*".
func Run(t *testing.T, store storage.PresetStore) {
	ctx := context.Background()
	camera := []byte(`{"origin":{"x":1,"y":2,"z":3}}`)
	material := []byte(`{"index":0}`)

	t.Cleanup(func() {
		_ = store.DeletePreset(ctx, "storetest-b")
		_ = store.DeletePreset(ctx, "storetest-a")
	})

	_, err := store.GetPreset(ctx, "storetest-a")
	require.ErrorIs(t, err, storage.ErrPresetNotFound)

	b, err := store.SavePreset(ctx, "storetest-b", models.PresetCamera, camera)
	require.NoError(t, err)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "storetest-b", b.Name)
	assert.Equal(t, models.PresetCamera, b.Kind)

	_, err = store.SavePreset(ctx, "storetest-a", models.PresetMaterial, material)
	require.NoError(t, err)

	got, err := store.GetPreset(ctx, "storetest-b")
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
	assert.JSONEq(t, string(camera), string(got.Document))

	list, err := store.ListPresets(ctx)
	require.NoError(t, err)
	var names []string
	for _, p := range list {
		if p.Name == "storetest-a" || p.Name == "storetest-b" {
			names = append(names, p.Name)
		}
	}
	assert.Equal(t, []string{"storetest-a", "storetest-b"}, names)

	// replacing keeps the ID
	replaced, err := store.SavePreset(ctx, "storetest-b", models.PresetMaterial, material)
	require.NoError(t, err)
	assert.Equal(t, b.ID, replaced.ID)
	got, err = store.GetPreset(ctx, "storetest-b")
	require.NoError(t, err)
	assert.Equal(t, models.PresetMaterial, got.Kind)
	assert.JSONEq(t, string(material), string(got.Document))

	require.NoError(t, store.DeletePreset(ctx, "storetest-b"))
	_, err = store.GetPreset(ctx, "storetest-b")
	assert.ErrorIs(t, err, storage.ErrPresetNotFound)
	assert.ErrorIs(t, store.DeletePreset(ctx, "storetest-b"), storage.ErrPresetNotFound)
}
