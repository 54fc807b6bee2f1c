package psb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// minimal is a bare ObjectMapper with no fields, used to exercise the
// empty-object round trip.
type minimal struct{}

func (minimal) ObjectMap() []Field { return nil }

type heightOnly struct {
	Height uint64
}

func (h *heightOnly) ObjectMap() []Field {
	return []Field{RequiredUint64("height", &h.Height)}
}

type abOptional struct {
	A uint32
	B string
}

func (v *abOptional) ObjectMap() []Field {
	return []Field{
		RequiredUint32("a", &v.A),
		OptionalString("b", &v.B),
	}
}

type xsArray struct {
	Xs []uint16
}

func (v *xsArray) ObjectMap() []Field {
	return []Field{ArrayUint16("xs", &v.Xs, 0, 0)}
}

func TestEmptyObjectRoundTrip(t *testing.T) {
	buf, err := ToBytes(minimal{})
	require.NoError(t, err)

	var out minimal
	require.NoError(t, FromBytes(out, buf))
}

func TestSingleFieldRoundTrip(t *testing.T) {
	in := &heightOnly{Height: 0x1234}
	buf, err := ToBytes(in)
	require.NoError(t, err)

	var out heightOnly
	require.NoError(t, FromBytes(&out, buf))
	require.Equal(t, in.Height, out.Height)
}

func TestOptionalAbsentResetsToEmpty(t *testing.T) {
	in := &abOptional{A: 7}
	buf, err := ToBytes(in)
	require.NoError(t, err)

	var out abOptional
	out.B = "stale"
	require.NoError(t, FromBytes(&out, buf))
	require.Equal(t, uint32(7), out.A)
	require.Equal(t, "", out.B)
}

func TestRequiredFieldMissingFails(t *testing.T) {
	buf, err := ToBytes(&abOptional{A: 1, B: "x"})
	require.NoError(t, err)

	var out heightOnly // schema expects "height", never present on wire
	err = FromBytes(&out, buf)
	require.Error(t, err)
}

func TestArrayRoundTrip(t *testing.T) {
	in := &xsArray{Xs: []uint16{1, 2, 3}}
	buf, err := ToBytes(in)
	require.NoError(t, err)

	var out xsArray
	require.NoError(t, FromBytes(&out, buf))
	require.Equal(t, in.Xs, out.Xs)
}

func TestArrayMaxElementCountRejected(t *testing.T) {
	in := &xsArray{Xs: []uint16{1, 2, 3}}
	buf, err := ToBytes(in)
	require.NoError(t, err)

	var out struct{ Xs []uint16 }
	wrapped := &arrayCapped{&out.Xs}
	err = FromBytes(wrapped, buf)
	require.Error(t, err)
}

type arrayCapped struct {
	xs *[]uint16
}

func (a *arrayCapped) ObjectMap() []Field {
	return []Field{ArrayUint16("xs", a.xs, 2, 0)}
}

// arrayHeader builds a minimal Reader positioned right after an
// array-of-object tag, with a declared element count and n bytes of
// remaining input -- enough to exercise arrayBudget without a fully
// well-formed body.
func arrayHeader(t *testing.T, declaredCount, remainingBytes int) *Reader {
	t.Helper()
	head := putVarint(make([]byte, 8), uint64(declaredCount))
	buf := append(append([]byte{}, head...), make([]byte, remainingBytes)...)
	return &Reader{s: NewSlice(buf), arraySpace: len(buf), lastTag: TypeObject.WithArray()}
}

func TestArrayMinElementSizeAllowsNaturalMinimum(t *testing.T) {
	r := arrayHeader(t, 10, 20)
	count, elemTag := r.StartArray(0)
	require.Equal(t, 10, count)
	require.Equal(t, TypeObject, elemTag)
}

func TestArrayMinElementSizeRejectsAdversarialCount(t *testing.T) {
	r := arrayHeader(t, 10, 20)
	require.PanicsWithValue(t, ErrSchemaArray, func() { r.StartArray(24) })
}

func TestUnknownFieldIsSkipped(t *testing.T) {
	in := &abOptional{A: 7, B: "hi"}
	buf, err := ToBytes(in)
	require.NoError(t, err)

	var out heightOnlyAndA
	err = FromBytes(&out, buf)
	require.NoError(t, err)
	require.Equal(t, uint32(7), out.A)
}

type heightOnlyAndA struct {
	A uint32
}

func (v *heightOnlyAndA) ObjectMap() []Field {
	return []Field{RequiredUint32("a", &v.A)}
}

func TestDefaultedFieldOmittedWhenEqualToDefault(t *testing.T) {
	d := &defaulted{n: 5}
	buf, err := ToBytes(d)
	require.NoError(t, err)

	// Encoded object should have zero fields, since N == default.
	r := NewReader(buf)
	count := r.StartObject()
	require.Equal(t, 0, count)
}

type defaulted struct{ n uint32 }

func (d *defaulted) ObjectMap() []Field {
	return []Field{DefaultedUint32("n", &d.n, 5)}
}

func TestDuplicateFieldRejected(t *testing.T) {
	w := NewWriter()
	w.StartObject(2)
	w.Key("a")
	w.Uint32(1)
	w.Key("a")
	w.Uint32(2)
	w.EndObject()
	buf := w.Take()

	var out heightOnlyAndA
	err := FromBytes(&out, buf)
	require.Error(t, err)
}

func TestDepthLimitEnforced(t *testing.T) {
	r := &Reader{s: NewSlice(nil), lastTag: TypeObject}
	r.depth = MaxDepth
	require.Panics(t, func() { r.enter() })
}

func TestBadSignatureRejected(t *testing.T) {
	buf := []byte{0, 0, 0, 0, 0, 0, 0, 0, 1, 0}
	require.Panics(t, func() { NewReader(buf) })
}
