package drivertype

import (
	"math/big"
	"testing"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/rony4d/go-opera-psb/inter/validatorpk"
	"github.com/rony4d/go-opera-psb/psb"
	"github.com/stretchr/testify/require"
)

func TestValidatorObjectMapRoundTrip(t *testing.T) {
	in := &Validator{
		Weight: big.NewInt(9000),
		PubKey: validatorpk.PubKey{Type: validatorpk.Types.Secp256k1, Raw: []byte{1, 2, 3}},
	}
	buf, err := psb.ToBytes(in)
	require.NoError(t, err)

	var out Validator
	require.NoError(t, psb.FromBytes(&out, buf))
	require.Equal(t, in.Weight, out.Weight)
	require.Equal(t, in.PubKey, out.PubKey)
}

func TestValidatorAndIDObjectMapRoundTrip(t *testing.T) {
	in := &ValidatorAndID{
		ValidatorID: idx.ValidatorID(7),
		Validator: Validator{
			Weight: big.NewInt(42),
			PubKey: validatorpk.PubKey{Type: validatorpk.Types.Secp256k1, Raw: []byte{0xaa}},
		},
	}
	buf, err := psb.ToBytes(in)
	require.NoError(t, err)

	var out ValidatorAndID
	require.NoError(t, psb.FromBytes(&out, buf))
	require.Equal(t, in.ValidatorID, out.ValidatorID)
	require.Equal(t, in.Validator.Weight, out.Validator.Weight)
}
