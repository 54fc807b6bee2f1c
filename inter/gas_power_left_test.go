package inter

import (
	"testing"

	"github.com/rony4d/go-opera-psb/psb"
	"github.com/stretchr/testify/require"
)

func TestGasPowerLeftObjectMapRoundTrip(t *testing.T) {
	in := &GasPowerLeft{Gas: [GasPowerConfigs]uint64{100, 200}}
	buf, err := psb.ToBytes(in)
	require.NoError(t, err)

	var out GasPowerLeft
	require.NoError(t, psb.FromBytes(&out, buf))
	require.Equal(t, in.Gas, out.Gas)
}

func TestGasPowerLeftWrongElementCountRejected(t *testing.T) {
	w := psb.NewWriter()
	w.StartObject(1)
	w.Key("gas")
	w.StartArray(3, psb.TypeUint64)
	w.Uint64(1)
	w.Uint64(2)
	w.Uint64(3)
	w.EndArray()
	w.EndObject()
	buf := w.Take()

	var out GasPowerLeft
	err := psb.FromBytes(&out, buf)
	require.Error(t, err)
}
