package settings

// The canonical tree from spec.md section 8: root Group with children
// [group_B0, list_B1, leaf_B2]; group_B0 has leaves C0 (u32, [0,100000],
// default 12345) and C1 (u8, [0,144], default 5); list_B1 has 35 slots of
// C2 (byte[20], default "Default text"); leaf_B2 is u16 [1,1024] default
// 16, NotRomStored.
//
// Every test that needs the tree builds a fresh copy -- Layout mutates
// node offsets in place, so sharing one instance across tests would leak
// state between them.

const (
	pathB0 = 0
	pathB1 = 1
	pathB2 = 2

	pathC0 = 0
	pathC1 = 1
)

func canonicalDefaultText() []byte {
	b := make([]byte, 20)
	copy(b, "Default text")
	return b
}

func newCanonicalTree() Node {
	groupB0 := NewGroup(
		NewU32Leaf(0, 100000, 12345, RomStored, AccessPublic, nil),
		NewU8Leaf(0, 144, 5, RomStored, AccessPublic, nil),
	)

	c2 := NewByteArrayLeaf(20, canonicalDefaultText(), RomStored, AccessPublic, nil)
	listB1 := NewList(c2, 35)

	leafB2 := NewU16Leaf(1, 1024, 16, NotRomStored, AccessPublic, nil)

	return NewGroup(groupB0, listB1, leafB2)
}

func canonicalConfig() Config {
	return Config{RamPoolSize: 4096, RomPoolSize: 4096}
}

// openCanonical lays out and opens a fresh tree over a fresh zeroed
// RomBuffer, returning both so tests can poke at ROM directly.
func openCanonical(t testingT) (*Settings, *RomBuffer, Node) {
	t.Helper()

	root := newCanonicalTree()
	cfg := canonicalConfig()
	rom := NewRomBuffer(cfg.RomPoolSize)

	s, err := Open(root, rom, cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s, rom, root
}

// testingT is the subset of *testing.T this helper needs; it keeps the
// helper's signature free of the concrete *testing.T type.
type testingT interface {
	Helper()
	Fatalf(format string, args ...interface{})
}
