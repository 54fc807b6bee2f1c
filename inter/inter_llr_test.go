package inter

import (
	"testing"

	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/rony4d/go-opera-psb/psb"
	"github.com/stretchr/testify/require"
)

func objectRoundTrip(t *testing.T, in, out psb.ObjectMapper) {
	t.Helper()
	buf, err := psb.ToBytes(in)
	require.NoError(t, err)
	require.NoError(t, psb.FromBytes(out, buf))
}

func TestLlrBlockVotesRoundTrip(t *testing.T) {
	var v1, v2 hash.Hash
	copy(v1[:], []byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"))
	copy(v2[:], []byte("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"))

	in := &LlrBlockVotes{Start: 100, Epoch: 3, Votes: []hash.Hash{v1, v2}}
	var out LlrBlockVotes
	objectRoundTrip(t, in, &out)

	require.Equal(t, in.Start, out.Start)
	require.Equal(t, in.Epoch, out.Epoch)
	require.Equal(t, in.Votes, out.Votes)
	require.Equal(t, idx.Block(101), out.LastBlock())
}

func TestLlrEpochVoteRoundTrip(t *testing.T) {
	var vote hash.Hash
	copy(vote[:], []byte("cccccccccccccccccccccccccccccccc"))

	in := &LlrEpochVote{Epoch: 7, Vote: vote}
	var out LlrEpochVote
	objectRoundTrip(t, in, &out)

	require.Equal(t, in.Epoch, out.Epoch)
	require.Equal(t, in.Vote, out.Vote)
}

func sampleEventLocator() EventLocator {
	var id hash.Event
	copy(id[:], []byte("dddddddddddddddddddddddddddddddd"))
	var base, payload hash.Hash
	copy(base[:], []byte("eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee"))
	copy(payload[:], []byte("ffffffffffffffffffffffffffffffff"))

	return EventLocator{
		ID:          id,
		BaseHash:    base,
		Epoch:       idx.Epoch(4),
		Seq:         idx.Event(9),
		Lamport:     idx.Lamport(2),
		Creator:     idx.ValidatorID(1),
		PayloadHash: payload,
	}
}

func TestEventLocatorRoundTrip(t *testing.T) {
	in := sampleEventLocator()
	var out EventLocator
	objectRoundTrip(t, &in, &out)
	require.Equal(t, in, out)
}

func TestSignedEventLocatorRoundTrip(t *testing.T) {
	in := &SignedEventLocator{Locator: sampleEventLocator(), Sig: []byte{9, 8, 7, 6}}
	var out SignedEventLocator
	objectRoundTrip(t, in, &out)

	require.Equal(t, in.Locator, out.Locator)
	require.Equal(t, in.Sig, out.Sig)
	require.Equal(t, in.Size(), out.Size())
}

func TestLlrSignedBlockVotesRoundTrip(t *testing.T) {
	var txsHash, epochHash, vote hash.Hash
	copy(txsHash[:], []byte("gggggggggggggggggggggggggggggggg"))
	copy(epochHash[:], []byte("hhhhhhhhhhhhhhhhhhhhhhhhhhhhhhhh"))
	copy(vote[:], []byte("iiiiiiiiiiiiiiiiiiiiiiiiiiiiiiii"))

	in := &LlrSignedBlockVotes{
		Signed:                       SignedEventLocator{Locator: sampleEventLocator(), Sig: []byte{1, 2}},
		TxsAndMisbehaviourProofsHash: txsHash,
		EpochVoteHash:                epochHash,
		Val:                          LlrBlockVotes{Start: 10, Epoch: 1, Votes: []hash.Hash{vote}},
	}
	var out LlrSignedBlockVotes
	objectRoundTrip(t, in, &out)

	require.Equal(t, in.Signed.Sig, out.Signed.Sig)
	require.Equal(t, in.TxsAndMisbehaviourProofsHash, out.TxsAndMisbehaviourProofsHash)
	require.Equal(t, in.EpochVoteHash, out.EpochVoteHash)
	require.Equal(t, in.Val, out.Val)
	require.Equal(t, in.CalcPayloadHash(), out.CalcPayloadHash())
}

func TestLlrSignedEpochVoteRoundTrip(t *testing.T) {
	var txsHash, blockVotesHash, vote hash.Hash
	copy(txsHash[:], []byte("jjjjjjjjjjjjjjjjjjjjjjjjjjjjjjjj"))
	copy(blockVotesHash[:], []byte("kkkkkkkkkkkkkkkkkkkkkkkkkkkkkkkk"))
	copy(vote[:], []byte("llllllllllllllllllllllllllllllll"))

	in := &LlrSignedEpochVote{
		Signed:                       SignedEventLocator{Locator: sampleEventLocator(), Sig: []byte{3, 4}},
		TxsAndMisbehaviourProofsHash: txsHash,
		BlockVotesHash:               blockVotesHash,
		Val:                          LlrEpochVote{Epoch: 2, Vote: vote},
	}
	var out LlrSignedEpochVote
	objectRoundTrip(t, in, &out)

	require.Equal(t, in.Signed.Sig, out.Signed.Sig)
	require.Equal(t, in.TxsAndMisbehaviourProofsHash, out.TxsAndMisbehaviourProofsHash)
	require.Equal(t, in.BlockVotesHash, out.BlockVotesHash)
	require.Equal(t, in.Val, out.Val)
	require.Equal(t, in.CalcPayloadHash(), out.CalcPayloadHash())
}
