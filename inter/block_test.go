package inter

import (
	"testing"

	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestBlockObjectMapRoundTrip(t *testing.T) {
	var atropos hash.Event
	copy(atropos[:], []byte("11111111111111111111111111111111"))
	var root hash.Hash
	copy(root[:], []byte("22222222222222222222222222222222"))

	var ev1, ev2 hash.Event
	copy(ev1[:], []byte("33333333333333333333333333333333"))
	copy(ev2[:], []byte("44444444444444444444444444444444"))

	in := &Block{
		Time:        FromUnix(1700000000),
		Atropos:     atropos,
		Events:      hash.Events{ev1, ev2},
		Txs:         []common.Hash{common.HexToHash("0x01"), common.HexToHash("0x02")},
		InternalTxs: nil,
		SkippedTxs:  []uint32{2, 5},
		GasUsed:     21000,
		Root:        root,
	}

	buf, err := EncodeBlock(in)
	require.NoError(t, err)

	out, err := DecodeBlock(buf)
	require.NoError(t, err)
	require.Equal(t, in.Time, out.Time)
	require.Equal(t, in.Atropos, out.Atropos)
	require.Equal(t, in.Events, out.Events)
	require.Equal(t, in.Txs, out.Txs)
	require.Equal(t, in.SkippedTxs, out.SkippedTxs)
	require.Equal(t, in.GasUsed, out.GasUsed)
	require.Equal(t, in.Root, out.Root)
}
