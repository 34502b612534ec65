package settings

//============================================= Request dispatcher

// Request carries the addressed op, the path, and either the native or raw
// form of the value being read or written (spec section 4.G). Result is
// populated by SettingsRequest as a convenience; the return value carries
// the same Result.
type Request struct {
	Op     Op
	Arg    [MaxDepth]int
	NArg   int
	Val    *int32
	Raw    []byte
	Result Result
}

// SettingsRequest resolves rq's path through the tree, invokes the
// addressed leaf's handler, and -- on a write that reports UpdatedRom --
// refreshes the host aggregate's CRC in RAM and ROM before returning (spec
// section 4.G).
func (s *Settings) SettingsRequest(rq *Request) Result {
	type hostAggregate struct {
		ramBase uint32
		romBase uint32
		group   *GroupNode
		list    *ListNode
	}

	host := hostAggregate{}
	switch t := s.root.(type) {
	case *GroupNode:
		host.group = t
	case *ListNode:
		host.list = t
	}

	cur := s.root
	ramBase, romBase := uint32(0), uint32(0)

	if rq.NArg > s.cfg.maxDepth()-1 {
		rq.Result = ResultDepthExceeded
		return rq.Result
	}

	for i := 0; i < rq.NArg; i++ {
		if _, isLeaf := cur.(*LeafNode); isLeaf {
			break
		}
		if i >= s.cfg.maxDepth()-1 {
			rq.Result = ResultDepthExceeded
			return rq.Result
		}

		a := rq.Arg[i]
		s.pushArgHistory(a)

		switch t := cur.(type) {
		case *GroupNode:
			assertTrue(a >= 0 && a < len(t.Children), "settings request: group index out of range")
			child := t.Children[a]
			assertTrue(child != nil, "settings request: nil child at addressed index")
			h := child.Header()
			ramBase += h.RamOff
			romBase += h.RomOff
			cur = child

			switch ct := child.(type) {
			case *GroupNode:
				host.group, host.list = ct, nil
				host.ramBase, host.romBase = ramBase, romBase
			case *ListNode:
				host.group, host.list = nil, ct
				host.ramBase, host.romBase = ramBase, romBase
			}

		case *ListNode:
			assertTrue(a >= 0 && a < t.Count, "settings request: list index out of range")
			ramBase += NodeCRCSize + uint32(a)*t.ElementRamSize
			romBase += NodeCRCSize + uint32(a)*t.ElementRomSize
			cur = t.Element

			switch ct := t.Element.(type) {
			case *GroupNode:
				host.group, host.list = ct, nil
				host.ramBase, host.romBase = ramBase, romBase
			case *ListNode:
				host.group, host.list = nil, ct
				host.ramBase, host.romBase = ramBase, romBase
			}

		default:
			assertTrue(false, "settings request: unknown node kind reached during dispatch")
		}
	}

	leaf, ok := cur.(*LeafNode)
	assertTrue(ok, "settings request: path does not terminate at a leaf")

	result := leaf.Handler.Handle(s, leaf, ramBase, romBase, rq)

	if result.HasUpdatedRom() {
		result &^= ResultUpdatedRom
		switch {
		case host.group != nil:
			s.writeGroupCRC(host.group, host.ramBase, host.romBase)
		case host.list != nil:
			s.writeListCRC(host.list, host.ramBase, host.romBase)
		}
	}

	rq.Result = result
	return result
}

func (s *Settings) pushArgHistory(a int) {
	for i := len(s.argHistory) - 1; i > 0; i-- {
		s.argHistory[i] = s.argHistory[i-1]
	}
	s.argHistory[0] = a
}

// GetRequestArg exposes the i'th most recently pushed path argument; 0 is
// the terminal index (spec section 4.G / glossary).
func (s *Settings) GetRequestArg(i int) int { return s.argHistory[i] }

// GetCallbackCache returns the single shared cache populated by the latest
// successful Apply.
func (s *Settings) GetCallbackCache() CallbackCache { return s.callbackCache }

//============================================= Convenience wrappers (spec section 6.4)

func pathRequest(op Op, args ...int) *Request {
	rq := &Request{Op: op, NArg: len(args)}
	copy(rq.Arg[:], args)
	return rq
}

// ReadI32 reads an integer leaf addressed by group then param.
func (s *Settings) ReadI32(group, param int) int32 {
	var v int32
	rq := pathRequest(OpRead, group, param)
	rq.Val = &v
	s.SettingsRequest(rq)
	return v
}

// ReadI32x4 reads an integer leaf addressed by a fixed 4-level path,
// mirroring spec section 6.4's read_i32_4.
func (s *Settings) ReadI32x4(p1, p2, p3, p4 int) int32 {
	return s.ReadI32Path(p1, p2, p3, p4)
}

// ReadI32Path reads an integer leaf at an arbitrary depth path.
func (s *Settings) ReadI32Path(path ...int) int32 {
	var v int32
	rq := pathRequest(OpRead, path...)
	rq.Val = &v
	s.SettingsRequest(rq)
	return v
}

// WriteI32Path validates, writes RAM, fires the change callback and writes
// ROM for an integer leaf at an arbitrary depth path.
func (s *Settings) WriteI32Path(value int32, path ...int) Result {
	rq := pathRequest(OpWrite, path...)
	rq.Val = &value
	return s.SettingsRequest(rq)
}

// WriteI32 validates, writes RAM, fires the change callback and writes ROM.
func (s *Settings) WriteI32(group, param int, value int32) Result {
	rq := pathRequest(OpWrite, group, param)
	rq.Val = &value
	return s.SettingsRequest(rq)
}

// WriteI32NoCb writes RAM+ROM but suppresses the change callback.
func (s *Settings) WriteI32NoCb(group, param int, value int32) Result {
	rq := pathRequest(OpWriteNoCb, group, param)
	rq.Val = &value
	return s.SettingsRequest(rq)
}

// ReadBytes copies a byte-array leaf's current value into out (len(out)
// must equal the leaf's declared size).
func (s *Settings) ReadBytes(group, param int, out []byte) Result {
	rq := pathRequest(OpRead, group, param)
	rq.Raw = out
	return s.SettingsRequest(rq)
}

// WriteBytes validates, writes RAM, fires the change callback and writes ROM.
func (s *Settings) WriteBytes(group, param int, in []byte) Result {
	rq := pathRequest(OpWrite, group, param)
	rq.Raw = in
	return s.SettingsRequest(rq)
}

// WriteBytesNoCb writes RAM+ROM but suppresses the change callback.
func (s *Settings) WriteBytesNoCb(group, param int, in []byte) Result {
	rq := pathRequest(OpWriteNoCb, group, param)
	rq.Raw = in
	return s.SettingsRequest(rq)
}
