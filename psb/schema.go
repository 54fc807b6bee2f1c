package psb

// Field constructors for the wrapper kinds named in the wire spec:
// required, optional, defaulted(D), array(constraint), array_as_blob,
// and variant_option(U). Each returns a Field bound by pointer to a
// location in the caller's aggregate; ReadObject/WriteObject drive them
// uniformly via Field.Read/Field.Write.

// RequiredBool / RequiredUint8 / ... bind a scalar that must appear on
// the wire.

func RequiredBool(name string, dst *bool) Field {
	return Field{
		Name: name, Required: true,
		Read:  func(r *Reader) { *dst = r.Boolean() },
		Write: func(w *Writer) { w.Boolean(*dst) },
	}
}

func RequiredUint8(name string, dst *uint8) Field {
	return Field{
		Name: name, Required: true,
		Read:  func(r *Reader) { *dst = narrowUint8(r.UnsignedInteger()) },
		Write: func(w *Writer) { w.Uint8(*dst) },
	}
}

func RequiredUint16(name string, dst *uint16) Field {
	return Field{
		Name: name, Required: true,
		Read:  func(r *Reader) { *dst = narrowUint16(r.UnsignedInteger()) },
		Write: func(w *Writer) { w.Uint16(*dst) },
	}
}

func RequiredUint32(name string, dst *uint32) Field {
	return Field{
		Name: name, Required: true,
		Read:  func(r *Reader) { *dst = narrowUint32(r.UnsignedInteger()) },
		Write: func(w *Writer) { w.Uint32(*dst) },
	}
}

func RequiredUint64(name string, dst *uint64) Field {
	return Field{
		Name: name, Required: true,
		Read:  func(r *Reader) { *dst = r.UnsignedInteger() },
		Write: func(w *Writer) { w.Uint64(*dst) },
	}
}

func RequiredInt64(name string, dst *int64) Field {
	return Field{
		Name: name, Required: true,
		Read:  func(r *Reader) { *dst = r.Integer() },
		Write: func(w *Writer) { w.Int64(*dst) },
	}
}

// RequiredFixedBytes binds a fixed-length buffer (an address, a hash) to
// the wire's string/binary representation, asserting the decoded length
// equals len(dst) exactly rather than allocating a fresh slice.
func RequiredFixedBytes(name string, dst []byte) Field {
	return Field{
		Name: name, Required: true,
		Read:  func(r *Reader) { r.FixedBytes(dst) },
		Write: func(w *Writer) { w.Bytes(dst) },
	}
}

func RequiredBytes(name string, dst *[]byte) Field {
	return Field{
		Name: name, Required: true,
		Read:  func(r *Reader) { *dst = r.Bytes() },
		Write: func(w *Writer) { w.Bytes(*dst) },
	}
}

func RequiredString(name string, dst *string) Field {
	return Field{
		Name: name, Required: true,
		Read:  func(r *Reader) { *dst = string(r.Bytes()) },
		Write: func(w *Writer) { w.Bytes([]byte(*dst)) },
	}
}

// RequiredObject binds a nested aggregate; its own object map drives the
// recursive read/write.
func RequiredObject(name string, m ObjectMapper) Field {
	return Field{
		Name: name, Required: true,
		Read:  func(r *Reader) { ReadNestedObject(r, m) },
		Write: func(w *Writer) { WriteNestedObject(w, m) },
	}
}

// OptionalBytes / OptionalString / OptionalUint64 — absence resets the
// binding to its empty value.

func OptionalBytes(name string, dst *[]byte) Field {
	return Field{
		Name:    name,
		Present: func() bool { return len(*dst) > 0 },
		Reset:   func() { *dst = nil },
		Read:    func(r *Reader) { *dst = r.Bytes() },
		Write:   func(w *Writer) { w.Bytes(*dst) },
	}
}

func OptionalString(name string, dst *string) Field {
	return Field{
		Name:    name,
		Present: func() bool { return *dst != "" },
		Reset:   func() { *dst = "" },
		Read:    func(r *Reader) { *dst = string(r.Bytes()) },
		Write:   func(w *Writer) { w.Bytes([]byte(*dst)) },
	}
}

func OptionalUint64(name string, dst *uint64) Field {
	return Field{
		Name:    name,
		Present: func() bool { return *dst != 0 },
		Reset:   func() { *dst = 0 },
		Read:    func(r *Reader) { *dst = r.UnsignedInteger() },
		Write:   func(w *Writer) { w.Uint64(*dst) },
	}
}

// DefaultedUint32 / DefaultedUint64 / DefaultedBool: absence on read
// substitutes def; a value equal to def is omitted on write.

func DefaultedUint32(name string, dst *uint32, def uint32) Field {
	return Field{
		Name:    name,
		Present: func() bool { return *dst != def },
		Reset:   func() { *dst = def },
		Read:    func(r *Reader) { *dst = narrowUint32(r.UnsignedInteger()) },
		Write:   func(w *Writer) { w.Uint32(*dst) },
	}
}

func DefaultedUint64(name string, dst *uint64, def uint64) Field {
	return Field{
		Name:    name,
		Present: func() bool { return *dst != def },
		Reset:   func() { *dst = def },
		Read:    func(r *Reader) { *dst = r.UnsignedInteger() },
		Write:   func(w *Writer) { w.Uint64(*dst) },
	}
}

func DefaultedBool(name string, dst *bool, def bool) Field {
	return Field{
		Name:    name,
		Present: func() bool { return *dst != def },
		Reset:   func() { *dst = def },
		Read:    func(r *Reader) { *dst = r.Boolean() },
		Write:   func(w *Writer) { w.Boolean(*dst) },
	}
}

// ArrayUint16 / ArrayUint32 / ArrayUint64 bind a homogeneous slice,
// enforcing max_element_count (0 means unconstrained) on both decode and
// (defensively) encode. minElementSize raises the reader's per-element
// space assumption above the type's natural wire minimum (0 keeps the
// natural minimum) -- used when a field's real element encoding is known
// to always be larger, tightening the array-space guard against
// adversarial element counts.

func ArrayUint16(name string, dst *[]uint16, maxElementCount, minElementSize int) Field {
	return Field{
		Name: name, Required: true,
		Reset: func() { *dst = nil },
		Read: func(r *Reader) {
			count, elemTag := r.StartArray(minElementSize)
			if elemTag != TypeUint16 {
				panic(ErrSchemaArray)
			}
			if maxElementCount > 0 && count > maxElementCount {
				panic(ErrSchemaArray)
			}
			out := make([]uint16, count)
			for i := range out {
				out[i] = narrowUint16(r.UnsignedInteger())
			}
			r.EndArray()
			*dst = out
		},
		Write: func(w *Writer) {
			if maxElementCount > 0 && len(*dst) > maxElementCount {
				panic(ErrSchemaArray)
			}
			w.StartArray(len(*dst), TypeUint16)
			for _, v := range *dst {
				w.Uint16(v)
			}
			w.EndArray()
		},
	}
}

func ArrayUint32(name string, dst *[]uint32, maxElementCount, minElementSize int) Field {
	return Field{
		Name: name, Required: true,
		Reset: func() { *dst = nil },
		Read: func(r *Reader) {
			count, elemTag := r.StartArray(minElementSize)
			if elemTag != TypeUint32 {
				panic(ErrSchemaArray)
			}
			if maxElementCount > 0 && count > maxElementCount {
				panic(ErrSchemaArray)
			}
			out := make([]uint32, count)
			for i := range out {
				out[i] = narrowUint32(r.UnsignedInteger())
			}
			r.EndArray()
			*dst = out
		},
		Write: func(w *Writer) {
			if maxElementCount > 0 && len(*dst) > maxElementCount {
				panic(ErrSchemaArray)
			}
			w.StartArray(len(*dst), TypeUint32)
			for _, v := range *dst {
				w.Uint32(v)
			}
			w.EndArray()
		},
	}
}

func ArrayUint64(name string, dst *[]uint64, maxElementCount, minElementSize int) Field {
	return Field{
		Name: name, Required: true,
		Reset: func() { *dst = nil },
		Read: func(r *Reader) {
			count, elemTag := r.StartArray(minElementSize)
			if elemTag != TypeUint64 {
				panic(ErrSchemaArray)
			}
			if maxElementCount > 0 && count > maxElementCount {
				panic(ErrSchemaArray)
			}
			out := make([]uint64, count)
			for i := range out {
				out[i] = r.UnsignedInteger()
			}
			r.EndArray()
			*dst = out
		},
		Write: func(w *Writer) {
			if maxElementCount > 0 && len(*dst) > maxElementCount {
				panic(ErrSchemaArray)
			}
			w.StartArray(len(*dst), TypeUint64)
			for _, v := range *dst {
				w.Uint64(v)
			}
			w.EndArray()
		},
	}
}

// ArrayAsBlob32 binds a slice of fixed 32-byte elements (hashes) encoded
// as a single binary string on the wire, element count derived from
// length/32. elemSize is always 32 here; every element is a raw byte
// array with no internal multi-byte arithmetic, so elements are copied
// as-is with no byte-order conversion on any host.
func ArrayAsBlob32(name string, dst *[][32]byte) Field {
	const elemSize = 32
	return Field{
		Name: name, Required: true,
		Reset: func() { *dst = nil },
		Read: func(r *Reader) {
			raw := r.Bytes()
			if len(raw)%elemSize != 0 {
				panic(ErrSchemaArray)
			}
			n := len(raw) / elemSize
			out := make([][32]byte, n)
			for i := 0; i < n; i++ {
				copy(out[i][:], raw[i*elemSize:(i+1)*elemSize])
			}
			*dst = out
		},
		Write: func(w *Writer) {
			raw := make([]byte, len(*dst)*elemSize)
			for i, el := range *dst {
				copy(raw[i*elemSize:(i+1)*elemSize], el[:])
			}
			w.Bytes(raw)
		},
	}
}

// ArrayAsBlobUint32 binds a []uint32 encoded as a single binary string of
// little-endian 4-byte elements, byte-swapping element-wise when decoding
// or encoding on a big-endian host.
func ArrayAsBlobUint32(name string, dst *[]uint32) Field {
	const elemSize = 4
	return Field{
		Name: name, Required: true,
		Reset: func() { *dst = nil },
		Read: func(r *Reader) {
			raw := r.Bytes()
			if len(raw)%elemSize != 0 {
				panic(ErrSchemaArray)
			}
			n := len(raw) / elemSize
			out := make([]uint32, n)
			for i := 0; i < n; i++ {
				out[i] = uint32(leUint(raw[i*elemSize : (i+1)*elemSize]))
			}
			*dst = out
		},
		Write: func(w *Writer) {
			raw := make([]byte, len(*dst)*elemSize)
			for i, v := range *dst {
				raw[i*elemSize+0] = byte(v)
				raw[i*elemSize+1] = byte(v >> 8)
				raw[i*elemSize+2] = byte(v >> 16)
				raw[i*elemSize+3] = byte(v >> 24)
			}
			w.Bytes(raw)
		},
	}
}

// ArrayOfObjects binds a variable-length sequence of nested objects whose
// element shape is too irregular for the scalar/blob array wrappers
// (e.g. a list of {address, keys} tuples). count/grow manage the backing
// slice's length; element(i) returns the ObjectMapper view over element
// i, valid only after grow has sized the slice. minElementSize is the
// caller's min_element_size(K) floor, or 0 to use the object tag's
// natural minimum.
func ArrayOfObjects(name string, count func() int, grow func(n int), element func(i int) ObjectMapper, maxElementCount, minElementSize int) Field {
	return Field{
		Name: name, Required: true,
		Reset: func() { grow(0) },
		Read: func(r *Reader) {
			n, elemTag := r.StartArray(minElementSize)
			if elemTag != TypeObject {
				panic(ErrSchemaArray)
			}
			if maxElementCount > 0 && n > maxElementCount {
				panic(ErrSchemaArray)
			}
			grow(n)
			for i := 0; i < n; i++ {
				ReadNestedObject(r, element(i))
			}
			r.EndArray()
		},
		Write: func(w *Writer) {
			n := count()
			if maxElementCount > 0 && n > maxElementCount {
				panic(ErrSchemaArray)
			}
			w.StartArray(n, TypeObject)
			for i := 0; i < n; i++ {
				WriteNestedObject(w, element(i))
			}
			w.EndArray()
		},
	}
}

// VariantObject binds one struct-valued alternative of a sum type: active
// iff ptr.nonNil reports true. Exactly one alternative across a shared
// *VariantGroup may be active.
func VariantObject(name string, group *VariantGroup, nonNil func() bool, m ObjectMapper) Field {
	return Field{
		Name:    name,
		Variant: group,
		Present: nonNil,
		Read:    func(r *Reader) { ReadNestedObject(r, m) },
		Write:   func(w *Writer) { WriteNestedObject(w, m) },
	}
}

// VariantScalarUint8 binds one scalar-valued alternative of a sum type
// (e.g. a key scheme discriminant), active iff active() reports true.
func VariantScalarUint8(name string, group *VariantGroup, active func() bool, dst *uint8) Field {
	return Field{
		Name:    name,
		Variant: group,
		Present: active,
		Read:    func(r *Reader) { *dst = narrowUint8(r.UnsignedInteger()) },
		Write:   func(w *Writer) { w.Uint8(*dst) },
	}
}

func narrowUint8(v uint64) uint8 {
	if v > 0xff {
		panic(ErrIntegerOutOfRange)
	}
	return uint8(v)
}

func narrowUint16(v uint64) uint16 {
	if v > 0xffff {
		panic(ErrIntegerOutOfRange)
	}
	return uint16(v)
}

func narrowUint32(v uint64) uint32 {
	if v > 0xffffffff {
		panic(ErrIntegerOutOfRange)
	}
	return uint32(v)
}
