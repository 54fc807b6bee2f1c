package psb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// sumBox is a small two-alternative sum type used to exercise
// VariantGroup exclusivity: exactly one of hasA/hasB may be active.
type sumBox struct {
	group   VariantGroup
	hasA    bool
	aVal    uint32
	hasB    bool
	bVal    string
}

func (s *sumBox) ObjectMap() []Field {
	return []Field{
		{
			Name: "a", Variant: &s.group,
			Present: func() bool { return s.hasA },
			Reset:   func() { s.hasA = false },
			Read:    func(r *Reader) { s.aVal = narrowUint32(r.UnsignedInteger()); s.hasA = true },
			Write:   func(w *Writer) { w.Uint32(s.aVal) },
		},
		{
			Name: "b", Variant: &s.group,
			Present: func() bool { return s.hasB },
			Reset:   func() { s.hasB = false },
			Read:    func(r *Reader) { s.bVal = string(r.Bytes()); s.hasB = true },
			Write:   func(w *Writer) { w.Bytes([]byte(s.bVal)) },
		},
	}
}

func TestVariantGroupReadsSingleAlternative(t *testing.T) {
	in := &sumBox{hasA: true, aVal: 42}
	buf, err := ToBytes(in)
	require.NoError(t, err)

	var out sumBox
	require.NoError(t, FromBytes(&out, buf))
	require.True(t, out.hasA)
	require.False(t, out.hasB)
	require.Equal(t, uint32(42), out.aVal)
}

func TestVariantGroupRejectsTwoActiveAlternativesOnWrite(t *testing.T) {
	in := &sumBox{hasA: true, aVal: 1, hasB: true, bVal: "x"}
	_, err := ToBytes(in)
	require.Error(t, err)
}

func TestVariantGroupRejectsTwoAlternativesOnWire(t *testing.T) {
	w := NewWriter()
	w.StartObject(2)
	w.Key("a")
	w.Uint32(1)
	w.Key("b")
	w.Bytes([]byte("x"))
	w.EndObject()
	buf := w.Take()

	var out sumBox
	err := FromBytes(&out, buf)
	require.Error(t, err)
}

type outer struct {
	Inner inner
}

type inner struct {
	V uint64
}

func (i *inner) ObjectMap() []Field { return []Field{RequiredUint64("v", &i.V)} }
func (o *outer) ObjectMap() []Field { return []Field{RequiredObject("inner", &o.Inner)} }

func TestNestedObjectRoundTrip(t *testing.T) {
	in := &outer{Inner: inner{V: 99}}
	buf, err := ToBytes(in)
	require.NoError(t, err)

	var out outer
	require.NoError(t, FromBytes(&out, buf))
	require.Equal(t, uint64(99), out.Inner.V)
}
