package psb

// skip advances the reader past exactly one PSB value without
// interpreting it, driven by an explicit stack of pending array/object
// frames rather than recursion, so an adversarially deep unknown-field
// value costs heap, not call-stack frames -- bounded by the same
// MaxDepth every StartArray/StartObject call already enforces.

type skipFrameKind int

const (
	skipArrayFixed skipFrameKind = iota
	skipArrayComposite
	skipObject
)

type skipFrame struct {
	kind      skipFrameKind
	remaining int
	elemTag   Tag
}

func isFixedArithmetic(t Tag) bool {
	switch t.Base() {
	case TypeString, TypeObject, TypeArray:
		return false
	default:
		return true
	}
}

// skipValue skips the value whose tag is currently r.lastTag.
func (r *Reader) skipValue() {
	var stack []skipFrame
	r.skipScalarOrPush(&stack)

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		switch top.kind {
		case skipArrayFixed:
			n := r.s.RemovePrefixExact(minWireSize(top.elemTag) * top.remaining)
			if !n {
				panic(ErrNotEnoughBytes)
			}
			r.EndArray()
			stack = stack[:len(stack)-1]

		case skipArrayComposite:
			if top.remaining == 0 {
				r.EndArray()
				stack = stack[:len(stack)-1]
				continue
			}
			top.remaining--
			r.lastTag = top.elemTag
			r.skipScalarOrPush(&stack)

		case skipObject:
			if top.remaining == 0 {
				r.EndObject()
				stack = stack[:len(stack)-1]
				continue
			}
			top.remaining--
			_ = r.readName()
			r.lastTag = r.readTag()
			r.skipScalarOrPush(&stack)
		}
	}
}

// skipScalarOrPush consumes r.lastTag if it is a fixed/variable scalar,
// or pushes a new frame and advances into it (via StartArray/StartObject)
// if it is composite.
func (r *Reader) skipScalarOrPush(stack *[]skipFrame) {
	tag := r.lastTag
	if tag.IsArray() || tag.Base() == TypeArray {
		count, elemTag := r.StartArray(0)
		kind := skipArrayComposite
		if isFixedArithmetic(elemTag) {
			kind = skipArrayFixed
		}
		*stack = append(*stack, skipFrame{kind: kind, remaining: count, elemTag: elemTag})
		return
	}

	switch tag.Base() {
	case TypeBool, TypeInt8, TypeUint8:
		if !r.s.RemovePrefixExact(1) {
			panic(ErrNotEnoughBytes)
		}
	case TypeInt16, TypeUint16:
		if !r.s.RemovePrefixExact(2) {
			panic(ErrNotEnoughBytes)
		}
	case TypeInt32, TypeUint32:
		if !r.s.RemovePrefixExact(4) {
			panic(ErrNotEnoughBytes)
		}
	case TypeInt64, TypeUint64, TypeDouble:
		if !r.s.RemovePrefixExact(8) {
			panic(ErrNotEnoughBytes)
		}
	case TypeString:
		n := r.readVarint()
		if !r.s.RemovePrefixExact(int(n)) {
			panic(ErrNotEnoughBytes)
		}
	case TypeObject:
		count := r.StartObject()
		*stack = append(*stack, skipFrame{kind: skipObject, remaining: count})
	default:
		panic(ErrInvalidTag)
	}
}
