package settings

import (
	"os"

	"golang.org/x/sys/unix"
)

//============================================= ROM mirror: durable mmap-backed store

// MMapRom is a production-style durable ROM: a fixed-size file mapped into
// the process with unix.Mmap, so writes are plain slice copies that
// survive process restarts once flushed with unix.Msync. This mirrors the
// teacher's own mmap-backed persistence (Mari.go/IOUtils.go map the whole
// settings store as one file and call Flush()/msync on the touched region
// after every node write); here the same technique backs just the ROM
// mirror, since the RAM pool itself is a plain process-memory buffer (spec
// section 3.4 -- "the tree owns one contiguous RAM buffer").
type MMapRom struct {
	file *os.File
	data []byte
}

// OpenMMapRom opens (creating if necessary) a file at path and maps size
// bytes of it. If the file is smaller than size it is extended and
// zero-filled.
func OpenMMapRom(path string, size uint32) (*MMapRom, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, err
	}

	if err := f.Truncate(int64(size)); err != nil {
		f.Close()
		return nil, err
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &MMapRom{file: f, data: data}, nil
}

func (m *MMapRom) Size() uint32 { return uint32(len(m.data)) }

func (m *MMapRom) ReadROM(romOff uint32, out []byte) error {
	if uint64(romOff)+uint64(len(out)) > uint64(len(m.data)) {
		return ErrRomBounds
	}
	copy(out, m.data[romOff:romOff+uint32(len(out))])
	return nil
}

func (m *MMapRom) WriteROM(romOff uint32, in []byte) error {
	if uint64(romOff)+uint64(len(in)) > uint64(len(m.data)) {
		return ErrRomBounds
	}
	copy(m.data[romOff:romOff+uint32(len(in))], in)
	return m.flushRegion(romOff, uint32(len(in)))
}

// flushRegion syncs the touched page range to disk, mirroring the
// teacher's flushRegionToDisk (IOUtils.go): the start offset is rounded
// down to the enclosing page boundary before calling Msync, since the OS
// only flushes whole pages.
func (m *MMapRom) flushRegion(romOff, length uint32) error {
	pageSize := uint32(os.Getpagesize())
	start := romOff &^ (pageSize - 1)
	end := romOff + length
	if end > uint32(len(m.data)) {
		end = uint32(len(m.data))
	}
	return unix.Msync(m.data[start:end], unix.MS_SYNC)
}

// Close unmaps and closes the backing file.
func (m *MMapRom) Close() error {
	if err := unix.Munmap(m.data); err != nil {
		return err
	}
	return m.file.Close()
}
