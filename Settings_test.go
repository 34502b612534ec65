package settings

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenReportsLayoutCapacityError(t *testing.T) {
	root := newCanonicalTree()
	rom := NewRomBuffer(4096)

	_, err := Open(root, rom, Config{RamPoolSize: 4})
	require.ErrorIs(t, err, ErrRamPoolTooSmall)
}

func TestOpenSizesMatchLayout(t *testing.T) {
	s, _, root := openCanonical(t)

	require.Equal(t, root.Header().RamSize, s.RamSize())
	require.Equal(t, root.Header().RomSize, s.RomSize())
}

func TestResetToDefaultsIgnoresPriorRomContents(t *testing.T) {
	s, rom, _ := openCanonical(t)

	require.False(t, s.WriteI32(pathB0, pathC0, 500).IsError())
	rom.Corrupt(0, 0xFF) // scramble ROM out from under the live tree

	r := s.ResetToDefaults()
	require.True(t, r.HasUpdatedRom())
	require.Equal(t, int32(12345), s.ReadI32(pathB0, pathC0))
	require.Equal(t, int32(5), s.ReadI32(pathB0, pathC1))
}

func TestFlushAllWritesEntireRamWindow(t *testing.T) {
	s, rom, _ := openCanonical(t)

	require.False(t, s.WriteI32(pathB0, pathC0, 77).IsError())
	require.NoError(t, s.FlushAll())
	require.Equal(t, s.ram, rom.Raw()[:len(s.ram)])

	out := make([]byte, s.RomSize())
	require.NoError(t, rom.ReadROM(0, out))

	ram := make([]byte, s.RomSize())
	require.NoError(t, s.FlushAll()) // idempotent: a second flush is a no-op on content
	require.NoError(t, rom.ReadROM(0, ram))
	require.Equal(t, out, ram)
}

func TestOpenOnFreshZeroedRomRepairsWithoutError(t *testing.T) {
	root := newCanonicalTree()
	cfg := canonicalConfig()
	rom := NewRomBuffer(cfg.RomPoolSize)

	s, err := Open(root, rom, cfg)
	require.NoError(t, err)
	require.Equal(t, int32(12345), s.ReadI32(pathB0, pathC0))
}
