package settings

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// E2E-1: fresh init with zeroed ROM and useDefaults=false repairs
// everything. Open does not return the Result of its validation pass, so
// its UpdatedRom flag is not observed here.
func TestE2E1FreshInitRepairsFromZeroedRom(t *testing.T) {
	s, _, root := openCanonical(t)

	require.Equal(t, int32(12345), s.ReadI32(pathB0, pathC0))
	require.Equal(t, int32(5), s.ReadI32(pathB0, pathC1))

	buf := make([]byte, 20)
	s.ReadBytes(pathB1, 10, buf)
	require.Equal(t, canonicalDefaultText(), buf)

	require.Equal(t, int32(16), s.ReadI32Path(pathB2))

	// A second validation pass against the now-consistent ROM should not
	// need to repair anything.
	r := s.Validate(root, false)
	require.False(t, r.HasUpdatedRom())
}

// E2E-2: after init, direct writes are observed on read, and the ROM CRCs
// have been refreshed; a NotRomStored leaf's write never touches ROM.
func TestE2E2WritesObservedAndCRCsRefreshed(t *testing.T) {
	s, rom, _ := openCanonical(t)

	require.False(t, s.WriteI32(pathB0, pathC0, 9000).IsError())
	require.False(t, s.WriteI32(pathB0, pathC1, 45).IsError())

	modified := make([]byte, 20)
	copy(modified, "Modified text")
	require.False(t, s.WriteBytes(pathB1, 10, modified).IsError())

	require.Equal(t, int32(9000), s.ReadI32(pathB0, pathC0))
	require.Equal(t, int32(45), s.ReadI32(pathB0, pathC1))

	buf := make([]byte, 20)
	s.ReadBytes(pathB1, 10, buf)
	require.Equal(t, modified, buf)

	romBefore := append([]byte(nil), rom.Raw()...)

	leafB2 := int32(99)
	require.False(t, s.WriteI32Path(leafB2, pathB2).IsError())
	require.Equal(t, romBefore, rom.Raw(), "leaf_B2 is NotRomStored; its write must never touch ROM")
}

// E2E-3: an out-of-range write is rejected and leaves RAM unchanged.
func TestE2E3OutOfRangeWriteRejected(t *testing.T) {
	s, _, _ := openCanonical(t)

	before := s.ReadI32(pathB0, pathC0)
	r := s.WriteI32(pathB0, pathC0, 100001)
	require.Equal(t, ResultValidateError, r)
	require.Equal(t, before, s.ReadI32(pathB0, pathC0))
}

// E2E-4: flipping one byte of ROM inside group_B0's C0 window and
// re-validating snaps both C0 and C1 back to defaults, without touching
// list_B1.
func TestE2E4RepairLocality(t *testing.T) {
	s, rom, root := openCanonical(t)

	require.False(t, s.WriteI32(pathB0, pathC0, 9000).IsError())
	require.False(t, s.WriteI32(pathB0, pathC1, 45).IsError())

	modified := make([]byte, 20)
	copy(modified, "Modified text")
	require.False(t, s.WriteBytes(pathB1, 10, modified).IsError())

	g := root.(*GroupNode)
	groupB0 := g.Children[pathB0].(*GroupNode)
	c0 := groupB0.Children[pathC0].(*LeafNode)

	rom.Corrupt(groupB0.RomOff+c0.RomOff, 0xFF)

	r := s.Validate(root, false)
	require.True(t, r.HasUpdatedRom())

	require.Equal(t, int32(12345), s.ReadI32(pathB0, pathC0))
	require.Equal(t, int32(5), s.ReadI32(pathB0, pathC1))

	buf := make([]byte, 20)
	s.ReadBytes(pathB1, 10, buf)
	require.Equal(t, modified, buf, "list_B1 must be untouched by a repair scoped to group_B0")
}

// E2E-5: reset_to_defaults followed by a simulated power cycle (re-init)
// comes up with declared defaults everywhere and all CRCs valid.
func TestE2E5ResetThenPowerCycle(t *testing.T) {
	s, rom, root := openCanonical(t)

	require.False(t, s.WriteI32(pathB0, pathC0, 9000).IsError())
	s.ResetToDefaults()
	require.NoError(t, s.FlushAll())

	require.Equal(t, int32(12345), s.ReadI32(pathB0, pathC0))

	root2 := newCanonicalTree()
	cfg := canonicalConfig()
	require.NoError(t, Layout(root2, cfg))
	_ = root

	s2, err := Open(root2, rom, cfg)
	require.NoError(t, err)

	r := s2.Validate(root2, false)
	require.False(t, r.HasUpdatedRom(), "a freshly reset+flushed image must validate clean")

	require.Equal(t, int32(12345), s2.ReadI32(pathB0, pathC0))
	require.Equal(t, int32(5), s2.ReadI32(pathB0, pathC1))
	require.Equal(t, int32(16), s2.ReadI32Path(pathB2))
}

// E2E-6: a tree deeper than MaxDepth fails at layout.
func TestE2E6DepthCheckAbortsAtLayout(t *testing.T) {
	var n Node = NewU8Leaf(0, 1, 0, RomStored, AccessPublic, nil)
	for i := 0; i < MaxDepth+3; i++ {
		n = NewGroup(n)
	}
	require.Error(t, Layout(n, Config{RamPoolSize: 1 << 20}))
}

// Property 8: running validation with useDefaults=true always leaves every
// RomStored leaf at its declared default and every CRC consistent.
func TestDefaultsOnlyPass(t *testing.T) {
	s, _, root := openCanonical(t)

	require.False(t, s.WriteI32(pathB0, pathC0, 1).IsError())

	r := s.Validate(root, true)
	require.True(t, r.HasUpdatedRom())

	require.Equal(t, int32(12345), s.ReadI32(pathB0, pathC0))
	require.Equal(t, int32(5), s.ReadI32(pathB0, pathC1))

	r2 := s.Validate(root, false)
	require.False(t, r2.HasUpdatedRom(), "a just-defaulted tree must validate clean")
}

func TestCRCRangeCoverage(t *testing.T) {
	s, rom, root := openCanonical(t)

	g := root.(*GroupNode)
	groupB0 := g.Children[pathB0].(*GroupNode)

	require.False(t, s.WriteI32(pathB0, pathC0, 77).IsError())

	stored := s.readStoredCRC(groupB0.RamOff, groupB0.RomOff)
	computed := s.computeGroupLeafCRC(groupB0, groupB0.RamOff)
	require.Equal(t, computed, stored)

	var fromRom [2]byte
	require.NoError(t, rom.ReadROM(groupB0.RomOff, fromRom[:]))
	require.Equal(t, computed, getUint16MSB(fromRom[:]))
}
