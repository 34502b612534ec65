package settings

//============================================= Validator / repair

// Validate walks root, loading each RomStored leaf's window and each
// aggregate's stored CRC from ROM into RAM as it goes, and repairs corrupt
// subtrees using declared defaults plus the per-aggregate CRC-16 (spec
// section 4.F). Repair is scoped to the smallest enclosing aggregate: if
// one leaf in a Group is corrupt, only that Group's leaf children are
// re-defaulted, never the whole tree.
func (s *Settings) Validate(root Node, useDefaults bool) Result {
	return s.validateNode(root, 0, 0, useDefaults)
}

func (s *Settings) validateNode(n Node, ramBase, romBase uint32, useDefaults bool) Result {
	switch t := n.(type) {
	case *LeafNode:
		op := OpRestoreValidate
		if useDefaults {
			op = OpRestoreDefault
		}
		return t.Handler.Handle(s, t, ramBase, romBase, &Request{Op: op})

	case *GroupNode:
		return s.validateGroup(t, ramBase, romBase, useDefaults)

	case *ListNode:
		return s.validateList(t, ramBase, romBase, useDefaults)

	default:
		assertTrue(false, "unknown node kind reached during validation")
		return ResultUnknownNodeType
	}
}

func (s *Settings) validateGroup(g *GroupNode, ramBase, romBase uint32, useDefaults bool) Result {
	if useDefaults {
		var aggr Result
		for _, c := range g.Children {
			if c == nil {
				continue
			}
			h := c.Header()
			aggr |= s.validateNode(c, ramBase+h.RamOff, romBase+h.RomOff, true)
		}
		s.writeGroupCRC(g, ramBase, romBase)
		return aggr | ResultUpdatedRom
	}

	var leafResult, aggrResult Result
	for _, c := range g.Children {
		if c == nil {
			continue
		}
		h := c.Header()
		r := s.validateNode(c, ramBase+h.RamOff, romBase+h.RomOff, false)
		if _, ok := c.(*LeafNode); ok {
			leafResult |= r
		} else {
			aggrResult |= r
		}
	}

	needsRepair := leafResult.IsError()
	if !needsRepair {
		stored := s.readStoredCRC(ramBase, romBase)
		computed := s.computeGroupLeafCRC(g, ramBase)
		needsRepair = stored != computed
	}

	if needsRepair {
		for _, c := range g.Children {
			leaf, ok := c.(*LeafNode)
			if !ok {
				continue
			}
			leaf.Handler.Handle(s, leaf, ramBase+leaf.RamOff, romBase+leaf.RomOff, &Request{Op: OpRestoreDefault})
		}
		s.writeGroupCRC(g, ramBase, romBase)
		return aggrResult | ResultUpdatedRom
	}

	return aggrResult
}

func (s *Settings) validateList(l *ListNode, ramBase, romBase uint32, useDefaults bool) Result {
	leaf, elementIsLeaf := l.Element.(*LeafNode)

	if !elementIsLeaf {
		// Open question resolved in SPEC_FULL.md section 5.4: an aggregate
		// element repairs each slot's CRC independently; the List's own
		// CRC has no direct leaf bytes to protect in this shape.
		var aggr Result
		for i := 0; i < l.Count; i++ {
			absRam := ramBase + NodeCRCSize + uint32(i)*l.ElementRamSize
			absRom := romBase + NodeCRCSize + uint32(i)*l.ElementRomSize
			aggr |= s.validateNode(l.Element, absRam, absRom, useDefaults)
		}
		if useDefaults {
			s.writeListCRC(l, ramBase, romBase)
			aggr |= ResultUpdatedRom
		}
		return aggr
	}

	if useDefaults {
		for i := 0; i < l.Count; i++ {
			absRam := ramBase + NodeCRCSize + uint32(i)*l.ElementRamSize
			absRom := romBase + NodeCRCSize + uint32(i)*l.ElementRomSize
			leaf.Handler.Handle(s, leaf, absRam, absRom, &Request{Op: OpRestoreDefault})
		}
		s.writeListCRC(l, ramBase, romBase)
		return ResultUpdatedRom
	}

	var leafResult Result
	for i := 0; i < l.Count; i++ {
		absRam := ramBase + NodeCRCSize + uint32(i)*l.ElementRamSize
		absRom := romBase + NodeCRCSize + uint32(i)*l.ElementRomSize
		leafResult |= leaf.Handler.Handle(s, leaf, absRam, absRom, &Request{Op: OpRestoreValidate})
	}

	needsRepair := leafResult.IsError()
	if !needsRepair {
		stored := s.readStoredCRC(ramBase, romBase)
		computed := s.computeListLeafCRC(l, ramBase)
		needsRepair = stored != computed
	}

	if needsRepair {
		for i := 0; i < l.Count; i++ {
			absRam := ramBase + NodeCRCSize + uint32(i)*l.ElementRamSize
			absRom := romBase + NodeCRCSize + uint32(i)*l.ElementRomSize
			leaf.Handler.Handle(s, leaf, absRam, absRom, &Request{Op: OpRestoreDefault})
		}
		s.writeListCRC(l, ramBase, romBase)
		return ResultUpdatedRom
	}

	return ResultOK
}

//============================================= CRC helpers shared by Validate and the dispatcher's post-write refresh

func (s *Settings) readStoredCRC(ramBase, romBase uint32) uint16 {
	buf := s.ram[ramBase : ramBase+NodeCRCSize]
	_ = s.rom.ReadROM(romBase, buf)
	return getUint16MSB(buf)
}

func (s *Settings) computeGroupLeafCRC(g *GroupNode, ramBase uint32) uint16 {
	crc := uint16(crc16Init)
	for _, c := range g.Children {
		leaf, ok := c.(*LeafNode)
		if !ok || leaf.Storage != RomStored {
			continue
		}
		window := s.ram[ramBase+leaf.RamOff : ramBase+leaf.RamOff+uint32(leaf.Size)]
		crc = crc16(window, crc)
	}
	return crc
}

func (s *Settings) computeListLeafCRC(l *ListNode, ramBase uint32) uint16 {
	leaf, ok := l.Element.(*LeafNode)
	if !ok || leaf.Storage != RomStored {
		return uint16(crc16Init)
	}
	span := s.ram[ramBase+NodeCRCSize : ramBase+NodeCRCSize+l.ElementRamSize*uint32(l.Count)]
	return crc16(span, uint16(crc16Init))
}

func (s *Settings) writeGroupCRC(g *GroupNode, ramBase, romBase uint32) {
	crc := s.computeGroupLeafCRC(g, ramBase)
	buf := make([]byte, NodeCRCSize)
	putUint16MSB(buf, crc)
	copy(s.ram[ramBase:ramBase+NodeCRCSize], buf)
	_ = s.rom.WriteROM(romBase, buf)
}

func (s *Settings) writeListCRC(l *ListNode, ramBase, romBase uint32) {
	crc := s.computeListLeafCRC(l, ramBase)
	buf := make([]byte, NodeCRCSize)
	putUint16MSB(buf, crc)
	copy(s.ram[ramBase:ramBase+NodeCRCSize], buf)
	_ = s.rom.WriteROM(romBase, buf)
}
