package settings

// Core constants from the on-wire layout contract (spec section 3.2/6.3).
const (
	// NodeCRCSize is the number of bytes every Group/List reserves at the
	// front of its own RAM/ROM window for its aggregate CRC-16.
	NodeCRCSize = 2

	// MaxDepth bounds path length and argument history size.
	MaxDepth = 10
)

// NodeKind tags the three node variants sharing the common header.
type NodeKind uint8

const (
	KindLeaf NodeKind = iota
	KindGroup
	KindList
)

func (k NodeKind) String() string {
	switch k {
	case KindLeaf:
		return "Leaf"
	case KindGroup:
		return "Group"
	case KindList:
		return "List"
	default:
		return "Unknown"
	}
}

// Storage tags whether a leaf's RAM value also occupies ROM bytes.
type Storage uint8

const (
	RomStored Storage = iota
	NotRomStored
)

// AccessLevel is carried on a leaf purely as descriptive metadata; the core
// does not enforce it (no caller-identity model exists at this layer) but
// preserves it so a dispatcher embedder can layer access control on top.
type AccessLevel uint8

const (
	AccessPublic AccessLevel = iota
	AccessProtected
	AccessInternal
)

// Op is the request opcode. Apply and Store are bit-independent and may be
// OR-combined to build the compound write variants (spec section 4.C).
type Op uint16

const (
	OpRead            Op = 0x00
	OpApplyNoCb       Op = 0x01
	OpApply           Op = 0x03
	OpStore           Op = 0x04
	OpWriteNoCb       Op = 0x05
	OpWrite           Op = 0x07
	OpValidate        Op = 0x08
	OpGetMin          Op = 0x10
	OpGetMax          Op = 0x20
	OpGetSize         Op = 0x40
	OpRestoreValidate Op = 0xFE
	OpRestoreDefault  Op = 0xFF
)

const (
	opApplyMask Op = 0x01
	opStoreMask Op = 0x04
)

func (op Op) hasApply() bool { return op&opApplyMask != 0 }
func (op Op) hasStore() bool { return op&opStoreMask != 0 }

// Result is a small OR-combinable bitmask. The low bits are mutually
// exclusive-in-intent error codes (but are bits so validator accumulators
// can OR them across children per spec section 4.F); bit 7 is the
// UpdatedRom side-channel flag that the dispatcher consumes and clears
// before returning to the caller, and that the validator preserves.
type Result uint16

const (
	ResultOK               Result = 0
	ResultValidateError    Result = 1 << 0
	ResultUnknownNodeType  Result = 1 << 1
	ResultWrongNodeType    Result = 1 << 2
	ResultWrongRequestType Result = 1 << 3
	ResultDepthExceeded    Result = 1 << 4

	ResultUpdatedRom Result = 1 << 7
)

// resultErrorBits is every bit that signals "this was not a clean success",
// independent of whether UpdatedRom also happens to be set.
const resultErrorBits = ResultValidateError | ResultUnknownNodeType | ResultWrongNodeType | ResultWrongRequestType | ResultDepthExceeded

// IsError reports whether any non-UpdatedRom bit is set.
func (r Result) IsError() bool { return r&resultErrorBits != 0 }

// HasUpdatedRom reports the side-channel flag.
func (r Result) HasUpdatedRom() bool { return r&ResultUpdatedRom != 0 }

func (r Result) String() string {
	switch {
	case r&ResultUnknownNodeType != 0:
		return "UnknownNodeType"
	case r&ResultWrongNodeType != 0:
		return "WrongNodeType"
	case r&ResultWrongRequestType != 0:
		return "WrongRequestType"
	case r&ResultDepthExceeded != 0:
		return "DepthExceeded"
	case r&ResultValidateError != 0:
		return "ValidateError"
	default:
		return "OK"
	}
}

// Config tunes the engine's optional programming-error-detection behavior
// and pool sizing, mirroring the teacher's MariOpts passed to Open.
type Config struct {
	// RamPoolSize bounds the root's total RAM footprint (spec section 4.E).
	RamPoolSize uint32
	// RomPoolSize bounds the ROM device's addressable window (spec section 6.1).
	RomPoolSize uint32
	// MaxDepth overrides the default MaxDepth constant when non-zero.
	MaxDepth int
	// ErrorOnUninitializedNode makes a nil Group child a layout failure
	// (Layout returns ErrNilChild; MustLayout panics on it) instead of a
	// silently-skipped traversal entry (spec section 4.D). Layout itself
	// does not panic on it.
	ErrorOnUninitializedNode bool
	// AssertOnValidateFailure makes a failed range check in the integer
	// handler a fatal assertion instead of a ValidateError result (spec
	// section 4.C, the "error-on-validate" compile-time option).
	AssertOnValidateFailure bool
}

func (c Config) maxDepth() int {
	if c.MaxDepth == 0 {
		return MaxDepth
	}
	return c.MaxDepth
}

// CallbackCache is the single process-wide slot holding the last
// successfully applied value (spec section 4.C / glossary). Exactly one of
// the two fields is meaningful, selected by IsBytes.
type CallbackCache struct {
	I32     int32
	Bytes   []byte
	IsBytes bool
}

// OnChangeFunc is fired synchronously from inside the dispatcher after a
// successful Apply. It must not re-enter the dispatcher (spec section 5).
type OnChangeFunc func(op Op, lastArg int)
