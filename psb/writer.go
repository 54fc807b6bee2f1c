package psb

import "math"

// Writer is a push sink that emits PSB bytes in the order schema
// traversal drives it. A field value write (anything following Key)
// first emits its own tag byte; an array header emits one tag+count
// pair for the whole array, and per-element writes that follow emit only
// payload bytes, symmetric with how Reader.StartArray consumes one
// tag+count and leaves lastTag set for untagged element reads.
type Writer struct {
	s          *Stream
	depth      int
	tagPending bool
	path       []string
}

// NewWriter returns a writer with the fixed signature/version prefix
// already emitted.
func NewWriter() *Writer {
	s := NewStream(make([]byte, 0, 256))
	writeHeader(s)
	return &Writer{s: s}
}

// Take returns the accumulated buffer. Call only after the top-level
// object has been closed with EndObject.
func (w *Writer) Take() []byte { return w.s.Bytes() }

func (w *Writer) enter() {
	w.depth++
	if w.depth > MaxDepth {
		panic(ErrMaxDepth)
	}
}

func (w *Writer) leave() { w.depth-- }

func (w *Writer) writeTagIfPending(t Tag) {
	if w.tagPending {
		w.s.WriteByte(byte(t))
		w.tagPending = false
	}
}

func (w *Writer) writeVarint(v uint64) {
	var buf [8]byte
	w.s.Write(putVarint(buf[:], v))
}

func (w *Writer) writeLE(v uint64, width int) {
	var buf [8]byte
	for i := 0; i < width; i++ {
		buf[i] = byte(v >> (8 * i))
	}
	w.s.Write(buf[:width])
}

// Key writes a field name and arms the writer so the next value push
// emits its own leading tag byte.
func (w *Writer) Key(name string) {
	if len(name) > 255 {
		panic(ErrKeySize)
	}
	w.s.WriteByte(byte(len(name)))
	w.s.Write([]byte(name))
	w.tagPending = true
}

func (w *Writer) Boolean(v bool) {
	w.writeTagIfPending(TypeBool)
	var b byte
	if v {
		b = 1
	}
	w.s.WriteByte(b)
}

func (w *Writer) Int8(v int8) {
	w.writeTagIfPending(TypeInt8)
	w.s.WriteByte(byte(v))
}

func (w *Writer) Int16(v int16) {
	w.writeTagIfPending(TypeInt16)
	w.writeLE(uint64(uint16(v)), 2)
}

func (w *Writer) Int32(v int32) {
	w.writeTagIfPending(TypeInt32)
	w.writeLE(uint64(uint32(v)), 4)
}

func (w *Writer) Int64(v int64) {
	w.writeTagIfPending(TypeInt64)
	w.writeLE(uint64(v), 8)
}

func (w *Writer) Uint8(v uint8) {
	w.writeTagIfPending(TypeUint8)
	w.s.WriteByte(v)
}

func (w *Writer) Uint16(v uint16) {
	w.writeTagIfPending(TypeUint16)
	w.writeLE(uint64(v), 2)
}

func (w *Writer) Uint32(v uint32) {
	w.writeTagIfPending(TypeUint32)
	w.writeLE(uint64(v), 4)
}

func (w *Writer) Uint64(v uint64) {
	w.writeTagIfPending(TypeUint64)
	w.writeLE(v, 8)
}

func (w *Writer) Real(v float64) {
	w.writeTagIfPending(TypeDouble)
	w.writeLE(math.Float64bits(v), 8)
}

// Bytes writes a string/binary value (varint length + payload).
func (w *Writer) Bytes(v []byte) {
	w.writeTagIfPending(TypeString)
	w.writeVarint(uint64(len(v)))
	w.s.Write(v)
}

// StartObject writes (if a tag is pending, i.e. this object is a field
// value) the object tag, then the field-count varint. An object that is
// an array element gets no tag of its own: StartArray already wrote it.
func (w *Writer) StartObject(fieldCount int) {
	w.writeTagIfPending(TypeObject)
	w.writeVarint(uint64(fieldCount))
	w.enter()
}

func (w *Writer) EndObject() { w.leave() }

// StartArray writes one tag+count header for the whole array: the tag is
// elemTag with the ARRAY flag set. Per-element writes that follow emit
// only payload bytes.
func (w *Writer) StartArray(count int, elemTag Tag) {
	w.writeTagIfPending(elemTag.WithArray())
	w.writeVarint(uint64(count))
	w.enter()
}

func (w *Writer) EndArray() { w.leave() }
