package settings

import "errors"

// Sentinel errors for declaration-time and layout-time failures. These are
// ordinary Go errors returned to the caller building the tree, distinct
// from the in-band Result codes returned by a live request (see Types.go).
var (
	ErrDepthExceeded   = errors.New("settings: tree depth exceeds MaxDepth")
	ErrRamPoolTooSmall = errors.New("settings: root ram size exceeds RAM pool capacity")
	ErrNilChild        = errors.New("settings: group contains a nil child and ErrorOnUninitializedNode is set")
	ErrUnknownNodeKind = errors.New("settings: unknown node kind")
	ErrRomBounds       = errors.New("settings: rom access out of bounds")
)

// assertTrue halts the process when cond is false. The core treats this as
// an unrecoverable programming error (a mis-declared tree or a caller bug),
// never a data condition -- it is never used for values that can legitimately
// fail validation.
func assertTrue(cond bool, msg string) {
	if !cond {
		panic("settings: assertion failed: " + msg)
	}
}
