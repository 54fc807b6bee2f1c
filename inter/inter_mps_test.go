package inter

import (
	"math/big"
	"testing"

	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/stretchr/testify/require"
)

func sampleSignedEventLocator(seq uint64) SignedEventLocator {
	var loc EventLocator
	loc.Seq = idx.Event(seq)
	loc.Epoch = idx.Epoch(1)
	return SignedEventLocator{Locator: loc, Sig: []byte{1, 2, 3}}
}

func TestEventsDoublesignRoundTrip(t *testing.T) {
	in := &EventsDoublesign{Pair: [2]SignedEventLocator{
		sampleSignedEventLocator(10),
		sampleSignedEventLocator(10),
	}}

	proof := &MisbehaviourProof{EventsDoublesign: in}
	buf, err := EncodeMisbehaviourProof(proof)
	require.NoError(t, err)

	out, err := DecodeMisbehaviourProof(buf)
	require.NoError(t, err)
	require.NotNil(t, out.EventsDoublesign)
	require.Nil(t, out.BlockVoteDoublesign)
	require.Equal(t, uint64(10), uint64(out.EventsDoublesign.Pair[0].Locator.Seq))
}

func TestWrongBlockVoteRoundTrip(t *testing.T) {
	votes := LlrSignedBlockVotes{
		Signed: sampleSignedEventLocator(5),
		Val:    LlrBlockVotes{Start: 100, Epoch: 1, Votes: []hash.Hash{{}, {}}},
	}
	in := &WrongBlockVote{
		Block:      101,
		Pals:       [MinAccomplicesForProof]LlrSignedBlockVotes{votes, votes},
		WrongEpoch: true,
	}

	proof := &MisbehaviourProof{WrongBlockVote: in}
	buf, err := EncodeMisbehaviourProof(proof)
	require.NoError(t, err)

	out, err := DecodeMisbehaviourProof(buf)
	require.NoError(t, err)
	require.NotNil(t, out.WrongBlockVote)
	require.Equal(t, idx.Block(101), out.WrongBlockVote.Block)
	require.True(t, out.WrongBlockVote.WrongEpoch)
}

func TestDecodeMisbehaviourProofRejectsEmptyWire(t *testing.T) {
	proof := &MisbehaviourProof{}
	// No alternative set: ObjectMap's Present funcs are all false, so nothing
	// is written and the wire object has zero fields.
	buf, err := EncodeMisbehaviourProof(proof)
	require.NoError(t, err)

	_, err = DecodeMisbehaviourProof(buf)
	require.Error(t, err)
}

func TestZeroBigIntSignMatchesNewBigInt(t *testing.T) {
	// Sanity check that big.NewInt(0) and new(big.Int) -- the value the
	// bigIntField decoders produce for an empty blob -- report the same
	// zero sign.
	require.Equal(t, big.NewInt(0).Sign(), new(big.Int).Sign())
}
