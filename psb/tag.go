package psb

// Tag is a single wire byte: the low 6 bits hold the type code, bit 7
// (ArrayFlag) marks "a length-prefixed sequence of this type follows
// instead of a single value".
type Tag byte

const (
	TypeInt64  Tag = 1
	TypeInt32  Tag = 2
	TypeInt16  Tag = 3
	TypeInt8   Tag = 4
	TypeUint64 Tag = 5
	TypeUint32 Tag = 6
	TypeUint16 Tag = 7
	TypeUint8  Tag = 8
	TypeDouble Tag = 9
	TypeString Tag = 10
	TypeBool   Tag = 11
	TypeObject Tag = 12
	TypeArray  Tag = 13

	typeMask  Tag = 0x3f
	ArrayFlag Tag = 0x80
)

// Base strips the ARRAY flag, returning the underlying type code.
func (t Tag) Base() Tag { return t & typeMask }

// IsArray reports whether the ARRAY flag is set.
func (t Tag) IsArray() bool { return t&ArrayFlag != 0 }

// WithArray ORs the ARRAY flag onto a base type code.
func (t Tag) WithArray() Tag { return t.Base() | ArrayFlag }

func (t Tag) valid() bool {
	code := t.Base()
	return code >= TypeInt64 && code <= TypeArray
}

// minWireSize is the minimum number of bytes a single value of this tag
// can occupy on the wire, used by the reader's array space guard. Variable
// length tags need at least a 1-byte varint header plus payload: 2 for
// string/object, 3 for array (header byte plus its own element-count varint).
func minWireSize(t Tag) int {
	switch t.Base() {
	case TypeInt64, TypeUint64, TypeDouble:
		return 8
	case TypeInt32, TypeUint32:
		return 4
	case TypeInt16, TypeUint16:
		return 2
	case TypeInt8, TypeUint8, TypeBool:
		return 1
	case TypeString, TypeObject:
		return 2
	case TypeArray:
		return 3
	default:
		return 1
	}
}

func (t Tag) String() string {
	names := map[Tag]string{
		TypeInt64: "int64", TypeInt32: "int32", TypeInt16: "int16", TypeInt8: "int8",
		TypeUint64: "uint64", TypeUint32: "uint32", TypeUint16: "uint16", TypeUint8: "uint8",
		TypeDouble: "double", TypeString: "string", TypeBool: "bool",
		TypeObject: "object", TypeArray: "array",
	}
	base := names[t.Base()]
	if t.IsArray() {
		return "array<" + base + ">"
	}
	return base
}
