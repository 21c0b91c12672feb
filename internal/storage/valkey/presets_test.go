package valkey

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Vasu1712/brayns-remote/internal/storage/storagetest"
)

func TestPresetStore(t *testing.T) {
	addr := os.Getenv("VALKEY_ADDR")
	if addr == "" {
		t.Skip("VALKEY_ADDR not set")
	}
	s, err := NewPresetStore(addr)
	require.NoError(t, err)
	defer s.Close()

	storagetest.Run(t, s)
}
