package psb

import "encoding/binary"

const (
	magicA         uint32 = 0x01011101
	magicB         uint32 = 0x01020101
	formatVersion  byte   = 1
	headerFixedLen int    = 9 // magicA(4) + magicB(4) + version(1); varint count follows
)

// writeHeader emits the fixed 9-byte prefix (the two magics and the
// version byte). The caller writes the top-level field-count varint
// immediately afterward via writer.startObjectHeader.
func writeHeader(s *Stream) {
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[0:4], magicA)
	binary.LittleEndian.PutUint32(buf[4:8], magicB)
	s.Write(buf[:])
	s.WriteByte(formatVersion)
}

// readHeader validates and consumes the fixed 9-byte prefix.
func readHeader(s *Slice) {
	raw, ok := s.take(headerFixedLen)
	if !ok {
		panic(ErrNotEnoughBytes)
	}
	gotA := binary.LittleEndian.Uint32(raw[0:4])
	gotB := binary.LittleEndian.Uint32(raw[4:8])
	if gotA != magicA || gotB != magicB {
		panic(ErrBadSignature)
	}
	if raw[8] != formatVersion {
		panic(ErrBadVersion)
	}
}
