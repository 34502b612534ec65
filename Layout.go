package settings

//============================================= Layout engine

// Layout runs the single recursive pass that assigns relative RAM/ROM
// offsets and reports each aggregate's total footprint bottom-up (spec
// section 4.E). It must run once, before any validation or dispatch.
//
// cfg.MaxDepth bounds recursion; exceeding it is a mis-declared tree, and
// per spec section 7.1 that is a programming error -- Layout returns
// ErrDepthExceeded to the caller (who is expected to treat tree
// construction failures as fatal at startup) rather than panicking
// directly, so unit tests can assert the failure without crashing the
// test binary. MustLayout below is the fatal-on-error convenience the
// embedded target actually calls.
func Layout(root Node, cfg Config) error {
	_, err := layoutNode(root, 0, cfg.maxDepth(), cfg.ErrorOnUninitializedNode)
	if err != nil {
		return err
	}

	h := root.Header()
	if cfg.RamPoolSize != 0 && h.RamSize > cfg.RamPoolSize {
		return ErrRamPoolTooSmall
	}
	return nil
}

// MustLayout calls Layout and panics on failure, matching the spec's
// framing of a bad declaration as an unrecoverable program error (section
// 7.1) rather than a runtime data condition.
func MustLayout(root Node, cfg Config) {
	if err := Layout(root, cfg); err != nil {
		panic("settings: " + err.Error())
	}
}

// layoutNode returns (ramSize, err); it also sets romSize on the node's
// own header as a side effect so callers that only need the RAM size don't
// have to re-derive the ROM side.
func layoutNode(n Node, depth, maxDepth int, errorOnNil bool) (uint32, error) {
	if depth > maxDepth {
		return 0, ErrDepthExceeded
	}

	switch t := n.(type) {
	case *LeafNode:
		t.RamSize = uint32(t.Size)
		if t.Storage == RomStored {
			t.RomSize = uint32(t.Size)
		} else {
			t.RomSize = 0
		}
		return t.RamSize, nil

	case *GroupNode:
		return layoutGroup(t, depth, maxDepth, errorOnNil)

	case *ListNode:
		return layoutList(t, depth, maxDepth, errorOnNil)

	default:
		return 0, ErrUnknownNodeKind
	}
}

func layoutGroup(g *GroupNode, depth, maxDepth int, errorOnNil bool) (uint32, error) {
	ramCursor := uint32(NodeCRCSize)
	romCursor := uint32(NodeCRCSize)

	// Pass 1: leaves, in declaration order, advancing RAM always and ROM
	// only for RomStored leaves (spec section 3.2: "leaves first, then
	// sub-aggregates", so this range can later be CRC'd as one span).
	for _, c := range g.Children {
		if c == nil {
			if errorOnNil {
				return 0, ErrNilChild
			}
			continue
		}
		leaf, ok := c.(*LeafNode)
		if !ok {
			continue
		}

		leaf.RamOff = ramCursor
		size, err := layoutNode(leaf, depth+1, maxDepth, errorOnNil)
		if err != nil {
			return 0, err
		}
		ramCursor += size

		if leaf.Storage == RomStored {
			leaf.RomOff = romCursor
			romCursor += leaf.RomSize
		} else {
			leaf.RomOff = 0
		}
	}

	// Pass 2: sub-aggregates, in declaration order, after all leaves.
	for _, c := range g.Children {
		if c == nil {
			continue
		}
		if _, ok := c.(*LeafNode); ok {
			continue
		}

		h := c.Header()
		h.RamOff = ramCursor
		h.RomOff = romCursor

		ramSize, err := layoutNode(c, depth+1, maxDepth, errorOnNil)
		if err != nil {
			return 0, err
		}
		ramCursor += ramSize
		romCursor += h.RomSize
	}

	g.RamSize = ramCursor
	g.RomSize = romCursor
	return g.RamSize, nil
}

func layoutList(l *ListNode, depth, maxDepth int, errorOnNil bool) (uint32, error) {
	assertTrue(l.Element != nil, "list element descriptor must not be nil")

	l.Element.Header().RamOff = NodeCRCSize
	l.Element.Header().RomOff = NodeCRCSize

	elemRamSize, err := layoutNode(l.Element, depth+1, maxDepth, errorOnNil)
	if err != nil {
		return 0, err
	}

	l.ElementRamSize = elemRamSize
	l.ElementRomSize = l.Element.Header().RomSize

	l.RamSize = uint32(NodeCRCSize) + l.ElementRamSize*uint32(l.Count)
	l.RomSize = uint32(NodeCRCSize) + l.ElementRomSize*uint32(l.Count)

	return l.RamSize, nil
}
