package settings

//============================================= Node model

// Node is the common shape every one of the three variants satisfies. The
// header (kind, ram/rom offsets and sizes) is embedded on each concrete
// type rather than factored into a separate object, mirroring the
// teacher's MariINode/MariLNode pair sharing a Version/StartOffset/
// EndOffset prefix (Types.go in the teacher).
type Node interface {
	Header() *NodeHeader
}

// NodeHeader is the shared prefix: kind plus the offsets the layout engine
// assigns, relative to the enclosing parent's base (spec section 3.1/3.2).
type NodeHeader struct {
	Kind NodeKind

	// RamOff/RomOff are relative to the immediately enclosing aggregate's
	// own base, assigned once by Layout.
	RamOff uint32
	RomOff uint32

	// RamSize/RomSize are this node's total footprint, reported bottom-up
	// by Layout.
	RamSize uint32
	RomSize uint32
}

func (h *NodeHeader) Header() *NodeHeader { return h }

// IntPayload is the variant payload for an integer leaf (spec section 3.1).
type IntPayload struct {
	Default int32
	Min     int32
	Max     int32
}

// BytesPayload is the variant payload for a fixed-size byte/character
// array leaf. Default may be nil, in which case RestoreDefault/
// RestoreValidate zero-fill instead (spec section 4.C).
type BytesPayload struct {
	Default []byte
}

// LeafNode is an atomic parameter: fixed width in bytes, with a handler
// dispatch target and a variant payload selected by which of IntPayload/
// BytesPayload is non-nil.
type LeafNode struct {
	NodeHeader

	Size        uint8
	AccessLevel AccessLevel
	Storage     Storage
	OnChange    OnChangeFunc
	Handler     LeafHandler

	Int   *IntPayload
	Bytes *BytesPayload
}

// GroupNode is a fixed-size ordered list of heterogeneous child nodes,
// addressed by child index (spec section 3.1).
type GroupNode struct {
	NodeHeader
	Children []Node
}

// ListNode is a homogeneous list: a single child-descriptor plus a count;
// children are N copies of the element sharing its descriptor but
// occupying distinct RAM/ROM slots (spec section 3.1/3.2).
type ListNode struct {
	NodeHeader
	Element Node
	Count   int

	// ElementRamSize/ElementRomSize are computed once during layout and
	// cached here (spec section 3.2).
	ElementRamSize uint32
	ElementRomSize uint32
}

//============================================= Constructors

// NewU32Leaf/NewU16Leaf/NewU8Leaf declare a bounded integer leaf. min <= default
// <= max is a declaration-time invariant enforced with assertTrue -- a
// violation here is a mis-declared tree, not a data condition (spec
// section 4.D).
func NewU32Leaf(min, max, def int32, storage Storage, access AccessLevel, onChange OnChangeFunc) *LeafNode {
	return newIntLeaf(4, min, max, def, storage, access, onChange)
}

func NewU16Leaf(min, max, def int32, storage Storage, access AccessLevel, onChange OnChangeFunc) *LeafNode {
	return newIntLeaf(2, min, max, def, storage, access, onChange)
}

func NewU8Leaf(min, max, def int32, storage Storage, access AccessLevel, onChange OnChangeFunc) *LeafNode {
	return newIntLeaf(1, min, max, def, storage, access, onChange)
}

func newIntLeaf(size uint8, min, max, def int32, storage Storage, access AccessLevel, onChange OnChangeFunc) *LeafNode {
	assertTrue(min <= def && def <= max, "integer leaf default outside [min, max]")

	return &LeafNode{
		NodeHeader: NodeHeader{Kind: KindLeaf},
		Size:       size,
		AccessLevel: access,
		Storage:    storage,
		OnChange:   onChange,
		Handler:    IntegerHandler{},
		Int:        &IntPayload{Default: def, Min: min, Max: max},
	}
}

// NewByteArrayLeaf declares a fixed-size opaque byte/character array leaf.
// def may be nil (zero-fill default) or must be exactly size bytes long.
func NewByteArrayLeaf(size uint8, def []byte, storage Storage, access AccessLevel, onChange OnChangeFunc) *LeafNode {
	assertTrue(size > 0, "byte array leaf size must be > 0")
	if def != nil {
		assertTrue(len(def) == int(size), "byte array leaf default length must equal size")
	}

	return &LeafNode{
		NodeHeader:  NodeHeader{Kind: KindLeaf},
		Size:        size,
		AccessLevel: access,
		Storage:     storage,
		OnChange:    onChange,
		Handler:     ByteArrayHandler{},
		Bytes:       &BytesPayload{Default: def},
	}
}

// NewGroup declares a Group node owning children in the given order. A nil
// entry either makes Layout return ErrNilChild (if cfg says so) or is
// silently skipped during every later traversal -- that decision is
// deferred to Layout,
// since the Config governing it is supplied to Open/Layout, not to
// NewGroup.
func NewGroup(children ...Node) *GroupNode {
	return &GroupNode{
		NodeHeader: NodeHeader{Kind: KindGroup},
		Children:   children,
	}
}

// NewList declares a List node of count slots, all sharing the element
// descriptor.
func NewList(element Node, count int) *ListNode {
	assertTrue(count >= 1, "list count must be >= 1")
	return &ListNode{
		NodeHeader: NodeHeader{Kind: KindList},
		Element:    element,
		Count:      count,
	}
}
