package settings

import "encoding/binary"

//============================================= Byte codec

// u32ToBytesMSB serializes the low count bytes of value into out, most
// significant active byte first. count is always 1, 2 or 4 for the integer
// leaf kinds; this makes a leaf of any of those widths serialize to its
// natural wire width (spec section 4.A).
func u32ToBytesMSB(value uint32, out []byte) {
	count := len(out)
	for i := 0; i < count; i++ {
		shift := uint(count-1-i) * 8
		out[i] = byte(value >> shift)
	}
}

// bytesToU32MSB is the inverse of u32ToBytesMSB; it zero-extends into a
// 32-bit register regardless of count.
func bytesToU32MSB(in []byte) uint32 {
	var value uint32
	for _, b := range in {
		value = value<<8 | uint32(b)
	}
	return value
}

// u32ToBytesLSB / bytesToU32LSB are the little-endian duals, provided for
// symmetry with the MSB pair; the core only uses the MSB pair on the wire
// (spec section 6.3: "Leaf values are stored MSB-first at their natural
// width"), but callers embedding this engine in a little-endian transport
// may want them.
func u32ToBytesLSB(value uint32, out []byte) {
	count := len(out)
	for i := 0; i < count; i++ {
		out[i] = byte(value >> (uint(i) * 8))
	}
}

func bytesToU32LSB(in []byte) uint32 {
	var value uint32
	for i := len(in) - 1; i >= 0; i-- {
		value = value<<8 | uint32(in[i])
	}
	return value
}

// putUint16MSB/getUint16MSB are thin wrappers over the stdlib big-endian
// codec for the fixed 2-byte CRC header every aggregate carries; kept
// separate from u32ToBytesMSB/bytesToU32MSB since the CRC is always exactly
// 2 bytes and never zero-extends through a 32-bit register.
func putUint16MSB(out []byte, v uint16) { binary.BigEndian.PutUint16(out, v) }
func getUint16MSB(in []byte) uint16     { return binary.BigEndian.Uint16(in) }
