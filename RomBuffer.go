package settings

//============================================= ROM mirror: in-memory testbench

// RomBuffer is a synchronous RAM-backed RomDevice, the Go equivalent of
// the demonstration CLI's RAM-array EEPROM stand-in (out of scope per
// spec.md section 1, but needed for the engine to run end-to-end). Reads
// and writes are plain slice copies; there is no queueing, so the ordering
// guarantee spec section 4.H requires of asynchronous drivers is trivially
// satisfied.
type RomBuffer struct {
	data []byte
}

// NewRomBuffer allocates a zero-filled buffer of size bytes.
func NewRomBuffer(size uint32) *RomBuffer {
	return &RomBuffer{data: make([]byte, size)}
}

func (r *RomBuffer) Size() uint32 { return uint32(len(r.data)) }

func (r *RomBuffer) ReadROM(romOff uint32, out []byte) error {
	if uint64(romOff)+uint64(len(out)) > uint64(len(r.data)) {
		return ErrRomBounds
	}
	copy(out, r.data[romOff:romOff+uint32(len(out))])
	return nil
}

func (r *RomBuffer) WriteROM(romOff uint32, in []byte) error {
	if uint64(romOff)+uint64(len(in)) > uint64(len(r.data)) {
		return ErrRomBounds
	}
	copy(r.data[romOff:romOff+uint32(len(in))], in)
	return nil
}

// Corrupt flips a single byte, a test helper for the repair-locality
// scenarios (spec section 8, property 7 / E2E-4).
func (r *RomBuffer) Corrupt(romOff uint32, mask byte) {
	r.data[romOff] ^= mask
}

// Raw exposes the backing slice read-only for assertions in tests.
func (r *RomBuffer) Raw() []byte { return r.data }
