package inter

import (
	"errors"

	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/rony4d/go-opera-psb/psb"
)

/*
	This file, inter_mps.go (likely short for Interface Misbehaviour Proofs), defines the data structures used to penalize bad actors in the network.
	1. The Philosophy of "Proofs"

	In this consensus engine, you cannot simply accuse someone of cheating; you must provide cryptographic proof.
	"Cryptographic proofs are mathematical algorithms and protocols that use advanced cryptography to validate a piece of information or a claim while maintaining privacy and security.
	Essentially, they allow one party (the Prover) to demonstrate the truth of a statement to another party (the Verifier) in a way that
	is computationally infeasible to fake or tamper with, often without revealing the underlying sensitive data."

	A proof in this context of Misbehaviour Proofs typically consists of Signed Messages that contradict each other or contradict the finalized chain.

	2. Types of Misbehaviour
	There are two main categories of misbehaviour handled here:

	A. Double Signing (Equivocation)
	This is when a validator says two different things at the same time. It is essentially "lying" or being "two-faced".
	EventsDoublesign: The validator released two DAG events with the same sequence number. This forks the DAG and attacks the ordering protocol.
	BlockVoteDoublesign: The validator voted "Hash A" for Block 10 and also voted "Hash B" for Block 10.
	EpochVoteDoublesign: The validator voted to seal Epoch 5 with "Hash X" and also with "Hash Y".

	B. Wrong Voting (Contradicting Consensus)
	This is when a validator votes for something that is objectively false according to the rest of the network (e.g., voting for a block that was never proposed or fails validation).
	WrongBlockVote: Voting for a bad block.
	WrongEpochVote: Voting for a bad epoch data.


	3. The "Accomplice" Rule (MinAccomplicesForProof)
	This is a unique feature of this protocol explained in the WrongBlockVote comments.
	Problem: If a validator's computer has a bit-flip in RAM, it might sign a random garbage hash. If we slash them immediately, we punish honest hardware failures.
	Solution: We only punish "Wrong Votes" if two or more validators sign the same wrong value. It is statistically impossible for two independent hardware failures to produce the exact same random garbage hash. Therefore, if two nodes sign the same wrong hash, they are running modified software (colluding).


	4. Struct Structure
	Pair [2]...: Used for double-signs. It always holds exactly two items: Evidence A and Evidence B.
	Pals [MinAccomplicesForProof]...: Used for wrong-votes. "Pals" implies the accomplices. It holds the array of signatures proving the collusion.

	5. Helper Functions (GetVote)
	The vote structures (likely LlrSignedBlockVotes) often contain a batch of votes (e.g., "I vote for blocks 100 to 110").
	The GetVote(i int) function is a utility to index into that batch and pull out the specific hash for the block being disputed (p.Block).
	Formula: index = target_block - start_block_of_batch

	6. The MisbehaviourProof Container
	This is a "Union" struct. In Go RLP (Recursive Length Prefix) serialization, pointers with the tag `` rlp:"nil" `` indicate optional fields.
	When this struct is sent over the network, only one of the 5 fields will be populated.
	When porting to a language with proper Enum/Union types (like Rust or TypeScript), you would likely represent this as an Enum with variants rather than a struct with optional pointers.
*/

// Constants related to proof validation.

// MinAccomplicesForProof defines the threshold for proving a "Wrong Vote".
// In distributed systems, a single validator might cast a wrong vote due to
// hardware failure, cosmic rays, or software bugs (non-malicious).
//
// To prevent slashing honest nodes for accidental faults, the protocol requires
// at least 2 validators (the culprit + 1 accomplice) to sign the same invalid
// vote to consider it a coordinated attack or significant protocol violation.
const (
	MinAccomplicesForProof = 2
)

// EventsDoublesign proves that a validator created two different events
// at the same logical height (Epoch + Lamport + Seq).
// This is a classic "equivocation" or "forking" attack in DAG-based consensus.
type EventsDoublesign struct {
	// Pair contains the headers (locators) and signatures of the two conflicting events.
	// Both events must be from the same Creator and have the same Seq/Epoch.
	Pair [2]SignedEventLocator
}

// ObjectMap binds EventsDoublesign to the wire as a two-element array of
// signed event locators.
func (p *EventsDoublesign) ObjectMap() []psb.Field {
	return []psb.Field{signedLocatorPairField("pair", &p.Pair)}
}

// signedLocatorPairField binds a [2]SignedEventLocator to a nested-object
// array, enforcing the fixed count of 2 a doublesign proof always carries.
func signedLocatorPairField(name string, dst *[2]SignedEventLocator) psb.Field {
	return psb.Field{
		Name: name, Required: true,
		Read: func(r *psb.Reader) {
			count, elemTag := r.StartArray(0)
			if elemTag != psb.TypeObject || count != 2 {
				panic(psb.ErrSchemaArray)
			}
			for i := 0; i < 2; i++ {
				psb.ReadNestedObject(r, &dst[i])
			}
			r.EndArray()
		},
		Write: func(w *psb.Writer) {
			w.StartArray(2, psb.TypeObject)
			for i := 0; i < 2; i++ {
				psb.WriteNestedObject(w, &dst[i])
			}
			w.EndArray()
		},
	}
}

// BlockVoteDoublesign proves that a validator cast two contradictory votes
// for the same block index.
// Example: Voting "Yes" for Block 100 and later voting "No" (or a different hash) for Block 100.
type BlockVoteDoublesign struct {
	// Block is the index of the block being voted on.
	Block idx.Block
	// Pair contains the two signed vote packages containing the conflicting votes.
	Pair [2]LlrSignedBlockVotes
}

// GetVote is a helper to extract the specific vote hash for the disputed block
// from the batch of votes in the proof.
func (p BlockVoteDoublesign) GetVote(i int) hash.Hash {
	// The vote package (LlrSignedBlockVotes) contains a range of votes.
	// We calculate the offset: (Target Block - Start Block of the batch).
	return p.Pair[i].Val.Votes[p.Block-p.Pair[i].Val.Start]
}

// ObjectMap binds BlockVoteDoublesign to the wire.
func (p *BlockVoteDoublesign) ObjectMap() []psb.Field {
	return []psb.Field{
		{
			Name: "block", Required: true,
			Read:  func(r *psb.Reader) { p.Block = idx.Block(r.UnsignedInteger()) },
			Write: func(w *psb.Writer) { w.Uint64(uint64(p.Block)) },
		},
		blockVotesPairField("pair", &p.Pair),
	}
}

// blockVotesPairField binds a [2]LlrSignedBlockVotes to a nested-object array.
func blockVotesPairField(name string, dst *[2]LlrSignedBlockVotes) psb.Field {
	return psb.Field{
		Name: name, Required: true,
		Read: func(r *psb.Reader) {
			count, elemTag := r.StartArray(0)
			if elemTag != psb.TypeObject || count != 2 {
				panic(psb.ErrSchemaArray)
			}
			for i := 0; i < 2; i++ {
				psb.ReadNestedObject(r, &dst[i])
			}
			r.EndArray()
		},
		Write: func(w *psb.Writer) {
			w.StartArray(2, psb.TypeObject)
			for i := 0; i < 2; i++ {
				psb.WriteNestedObject(w, &dst[i])
			}
			w.EndArray()
		},
	}
}

// WrongBlockVote proves that a validator voted for a block that contradicts
// the canonical chain (e.g., voting for a block hash that doesn't exist or
// conflicts with finality).
//
// Unlike doublesigning (which is self-contradiction), this is contradicting reality.
// It requires 'MinAccomplicesForProof' signatures to be valid (see constant doc).
type WrongBlockVote struct {
	// Block is the index of the invalid block vote.
	Block idx.Block
	// Pals (Accomplices) are the signed vote packages from the validators involved.
	// Pals[0] is usually the primary target, and Pals[1:] are the accomplices.
	Pals [MinAccomplicesForProof]LlrSignedBlockVotes
	// WrongEpoch indicates if the vote was for the wrong epoch context entirely.
	WrongEpoch bool
}

// GetVote extracts the specific invalid hash voted for by the i-th accomplice.
func (p WrongBlockVote) GetVote(i int) hash.Hash {
	// Calculate offset in the vote batch to find the specific vote hash.
	return p.Pals[i].Val.Votes[p.Block-p.Pals[i].Val.Start]
}

// ObjectMap binds WrongBlockVote to the wire.
func (p *WrongBlockVote) ObjectMap() []psb.Field {
	return []psb.Field{
		{
			Name: "block", Required: true,
			Read:  func(r *psb.Reader) { p.Block = idx.Block(r.UnsignedInteger()) },
			Write: func(w *psb.Writer) { w.Uint64(uint64(p.Block)) },
		},
		blockVotesPairField("pals", &p.Pals),
		psb.RequiredBool("wrong_epoch", &p.WrongEpoch),
	}
}

// EpochVoteDoublesign proves that a validator cast two contradictory votes
// regarding the sealing of an epoch.
// Similar to BlockVoteDoublesign but for the higher-level Epoch structure.
type EpochVoteDoublesign struct {
	// Pair contains the two conflicting signed epoch votes.
	Pair [2]LlrSignedEpochVote
}

// ObjectMap binds EpochVoteDoublesign to the wire.
func (p *EpochVoteDoublesign) ObjectMap() []psb.Field {
	return []psb.Field{epochVotePairField("pair", &p.Pair)}
}

// epochVotePairField binds a [2]LlrSignedEpochVote to a nested-object array.
func epochVotePairField(name string, dst *[2]LlrSignedEpochVote) psb.Field {
	return psb.Field{
		Name: name, Required: true,
		Read: func(r *psb.Reader) {
			count, elemTag := r.StartArray(0)
			if elemTag != psb.TypeObject || count != 2 {
				panic(psb.ErrSchemaArray)
			}
			for i := 0; i < 2; i++ {
				psb.ReadNestedObject(r, &dst[i])
			}
			r.EndArray()
		},
		Write: func(w *psb.Writer) {
			w.StartArray(2, psb.TypeObject)
			for i := 0; i < 2; i++ {
				psb.WriteNestedObject(w, &dst[i])
			}
			w.EndArray()
		},
	}
}

// WrongEpochVote proves that a validator voted for an epoch sealing that
// contradicts the canonical history (e.g., wrong root hash for the epoch).
// Like WrongBlockVote, this requires accomplices to prove it wasn't a glitch.
type WrongEpochVote struct {
	// Pals are the signed votes from the validators involved (culprit + accomplice).
	Pals [MinAccomplicesForProof]LlrSignedEpochVote
}

// ObjectMap binds WrongEpochVote to the wire.
func (p *WrongEpochVote) ObjectMap() []psb.Field {
	return []psb.Field{epochVotePairField("pals", &p.Pals)}
}

// MisbehaviourProof is a union container (sum type) that holds exactly one
// specific type of proof.
//
// When serializing/deserializing (RLP), pointers are used to make fields optional.
// Only one field should be non-nil.
type MisbehaviourProof struct {
	// 1. Event Equivocation (Forking the DAG)
	EventsDoublesign *EventsDoublesign `rlp:"nil"`

	// 2. Block Equivocation (Conflicting votes for a block)
	BlockVoteDoublesign *BlockVoteDoublesign `rlp:"nil"`

	// 3. Invalid Block Vote (Voting against consensus)
	WrongBlockVote *WrongBlockVote `rlp:"nil"`

	// 4. Epoch Equivocation (Conflicting votes for an epoch)
	EpochVoteDoublesign *EpochVoteDoublesign `rlp:"nil"`

	// 5. Invalid Epoch Vote (Voting against consensus epoch)
	WrongEpochVote *WrongEpochVote `rlp:"nil"`
}

// ErrUnknownMisbehaviourProof is returned when none of a MisbehaviourProof's
// five alternatives is populated.
var ErrUnknownMisbehaviourProof = errors.New("misbehaviour proof carries no evidence of any known kind")

// ObjectMap binds MisbehaviourProof's five pointer-valued alternatives to a
// single PSB variant_option group, the struct-valued counterpart to
// TransactionEnvelope's variant group: each alternative is a named nested
// object, and the engine enforces that at most one is present on the wire.
func (p *MisbehaviourProof) ObjectMap() []psb.Field {
	group := &psb.VariantGroup{}
	return []psb.Field{
		{
			Name: "events_doublesign", Variant: group,
			Present: func() bool { return p.EventsDoublesign != nil },
			Read: func(r *psb.Reader) {
				v := &EventsDoublesign{}
				psb.ReadNestedObject(r, v)
				p.EventsDoublesign = v
			},
			Write: func(w *psb.Writer) { psb.WriteNestedObject(w, p.EventsDoublesign) },
		},
		{
			Name: "block_vote_doublesign", Variant: group,
			Present: func() bool { return p.BlockVoteDoublesign != nil },
			Read: func(r *psb.Reader) {
				v := &BlockVoteDoublesign{}
				psb.ReadNestedObject(r, v)
				p.BlockVoteDoublesign = v
			},
			Write: func(w *psb.Writer) { psb.WriteNestedObject(w, p.BlockVoteDoublesign) },
		},
		{
			Name: "wrong_block_vote", Variant: group,
			Present: func() bool { return p.WrongBlockVote != nil },
			Read: func(r *psb.Reader) {
				v := &WrongBlockVote{}
				psb.ReadNestedObject(r, v)
				p.WrongBlockVote = v
			},
			Write: func(w *psb.Writer) { psb.WriteNestedObject(w, p.WrongBlockVote) },
		},
		{
			Name: "epoch_vote_doublesign", Variant: group,
			Present: func() bool { return p.EpochVoteDoublesign != nil },
			Read: func(r *psb.Reader) {
				v := &EpochVoteDoublesign{}
				psb.ReadNestedObject(r, v)
				p.EpochVoteDoublesign = v
			},
			Write: func(w *psb.Writer) { psb.WriteNestedObject(w, p.EpochVoteDoublesign) },
		},
		{
			Name: "wrong_epoch_vote", Variant: group,
			Present: func() bool { return p.WrongEpochVote != nil },
			Read: func(r *psb.Reader) {
				v := &WrongEpochVote{}
				psb.ReadNestedObject(r, v)
				p.WrongEpochVote = v
			},
			Write: func(w *psb.Writer) { psb.WriteNestedObject(w, p.WrongEpochVote) },
		},
	}
}

// EncodeMisbehaviourProof serializes a MisbehaviourProof to PSB bytes.
func EncodeMisbehaviourProof(p *MisbehaviourProof) ([]byte, error) {
	return psb.ToBytes(p)
}

// DecodeMisbehaviourProof decodes a PSB-encoded MisbehaviourProof.
func DecodeMisbehaviourProof(data []byte) (*MisbehaviourProof, error) {
	var p MisbehaviourProof
	if err := psb.FromBytes(&p, data); err != nil {
		return nil, err
	}
	if p.EventsDoublesign == nil && p.BlockVoteDoublesign == nil && p.WrongBlockVote == nil &&
		p.EpochVoteDoublesign == nil && p.WrongEpochVote == nil {
		return nil, ErrUnknownMisbehaviourProof
	}
	return &p, nil
}
