// Package demo builds the canonical settings tree used by the
// settingsctl CLI (spec.md section 8, "canonical tree"). The settings
// package's own tests do not import it; they build an identical tree in
// testtree_test.go.
package demo

import "github.com/avegawanderer/settings"

// Path indices into the canonical tree, named the way the spec refers to
// them (root -> {B0, B1, B2}).
const (
	PathB0 = 0 // group_B0
	PathB1 = 1 // list_B1
	PathB2 = 2 // leaf_B2

	PathC0 = 0 // group_B0.C0 (u32)
	PathC1 = 1 // group_B0.C1 (u8)
)

var defaultText = padded("Default text", 20)

func padded(s string, n int) []byte {
	b := make([]byte, n)
	copy(b, s)
	return b
}

// BuildTree constructs a fresh, unlaid-out copy of the canonical tree.
// Layout must be run (or Open called) before use.
func BuildTree() settings.Node {
	groupB0 := settings.NewGroup(
		settings.NewU32Leaf(0, 100000, 12345, settings.RomStored, settings.AccessPublic, nil),
		settings.NewU8Leaf(0, 144, 5, settings.RomStored, settings.AccessPublic, nil),
	)

	c2 := settings.NewByteArrayLeaf(20, defaultText, settings.RomStored, settings.AccessPublic, nil)
	listB1 := settings.NewList(c2, 35)

	leafB2 := settings.NewU16Leaf(1, 1024, 16, settings.NotRomStored, settings.AccessPublic, nil)

	return settings.NewGroup(groupB0, listB1, leafB2)
}

// DefaultConfig is the Config the demo tree and its tests run under.
func DefaultConfig() settings.Config {
	return settings.Config{
		RamPoolSize: 4096,
		RomPoolSize: 4096,
	}
}
