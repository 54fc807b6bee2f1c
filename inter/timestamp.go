package inter

import (
	"time"

	"github.com/rony4d/go-opera-psb/psb"
)

// Timestamp is a nanosecond-precision point in time, counted from the Unix
// epoch. Opera carries its own timestamp type rather than reusing Ethereum's
// second-granularity uint64 header field because consensus needs to compare
// and average event times at sub-second resolution.
type Timestamp uint64

// FromUnix converts a Unix timestamp in seconds to a Timestamp.
func FromUnix(sec int64) Timestamp {
	return Timestamp(sec) * Timestamp(time.Second)
}

// Time returns t as a standard library time.Time, in UTC.
func (t Timestamp) Time() time.Time {
	return time.Unix(0, int64(t)).UTC()
}

// Bytes returns the 8-byte big-endian encoding of t, the representation
// used wherever a Timestamp is embedded directly in a hash preimage rather
// than through the schema-driven codec.
func (t Timestamp) Bytes() []byte {
	b := make([]byte, 8)
	v := uint64(t)
	for i := 7; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
	return b
}

// timestampField binds a Timestamp to a PSB required uint64 field, the
// schema-level counterpart of RequiredUint64 for this package's domain type.
func timestampField(name string, dst *Timestamp) psb.Field {
	return psb.Field{
		Name: name, Required: true,
		Read:  func(r *psb.Reader) { *dst = Timestamp(r.UnsignedInteger()) },
		Write: func(w *psb.Writer) { w.Uint64(uint64(*dst)) },
	}
}
