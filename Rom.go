package settings

//============================================= ROM mirror

// RomDevice is the external collaborator spec.md section 6.1 specifies:
// two synchronous entry points, read_rom and write_rom. The core never
// talks to a storage medium directly -- every Settings is opened against
// one of these, and the testbench may substitute a pure RAM buffer
// (RomBuffer) for the production mmap-backed store (MMapRom).
type RomDevice interface {
	// ReadROM copies count bytes starting at romOff into out (len(out) ==
	// count). Precondition: romOff+count <= pool size (spec section 6.1).
	ReadROM(romOff uint32, out []byte) error
	// WriteROM copies in into the device starting at romOff.
	WriteROM(romOff uint32, in []byte) error
	// Size reports the device's addressable window.
	Size() uint32
}
