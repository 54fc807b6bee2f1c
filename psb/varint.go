package psb

// Varint encoding, grounded in the byte-packing style of
// utils/cser/read_writer.go's writeUint64BitCompact/readUint64BitCompact
// (plain little-endian byte accumulation, smallest-width-first) but
// retargeted onto PSB's self-describing width selector: the low two bits
// of the first byte select the total encoded width (00=1, 01=2, 10=4,
// 11=8 bytes), the rest of the bits across all those bytes hold the
// value, also little-endian.

const maxVarint = (uint64(1) << 62) - 1

var varintWidth = [4]int{1, 2, 4, 8}

// selectorFor returns the width selector (0..3) for the smallest width
// that can hold v alongside its own 2 selector bits.
func selectorFor(v uint64) byte {
	switch {
	case v < 1<<6:
		return 0
	case v < 1<<14:
		return 1
	case v < 1<<30:
		return 2
	default:
		return 3
	}
}

// putVarint encodes v into buf (which must have capacity for at least 8
// bytes) and returns the slice actually used.
func putVarint(buf []byte, v uint64) []byte {
	if v > maxVarint {
		panic(ErrVarintSize)
	}
	sel := selectorFor(v)
	width := varintWidth[sel]
	encoded := (v << 2) | uint64(sel)
	for i := 0; i < width; i++ {
		buf[i] = byte(encoded >> (8 * i))
	}
	return buf[:width]
}

// getVarint decodes a varint starting at buf[0], returning the value and
// the number of bytes consumed. buf must contain at least 1 byte; the
// caller is responsible for ensuring at least `width` bytes are present
// once the selector is known (not_enough_bytes otherwise).
func getVarint(buf []byte) (v uint64, width int) {
	if len(buf) == 0 {
		panic(ErrNotEnoughBytes)
	}
	sel := buf[0] & 0x03
	width = varintWidth[sel]
	if len(buf) < width {
		panic(ErrNotEnoughBytes)
	}
	var encoded uint64
	for i := 0; i < width; i++ {
		encoded |= uint64(buf[i]) << (8 * i)
	}
	v = encoded >> 2
	return v, width
}

// sizeofVarint returns how many bytes putVarint would use for v.
func sizeofVarint(v uint64) int {
	return varintWidth[selectorFor(v)]
}
