package tx

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalDispatchesByType(t *testing.T) {
	addr := common.BytesToAddress([]byte{0x11})

	cases := []struct {
		typ GuildTxType
		tx  any
	}{
		{GuildTxTypeProposal, &SubmitProposalTx{Kind: 1, VotingPeriod: 10, Targets: []common.Address{addr}, Values: []uint64{0}, Payloads: [][]byte{nil}}},
		{GuildTxTypeVote, &VoteTx{Proposal: 3, Support: true}},
		{GuildTxTypeProcess, &ProcessTx{Proposal: 3}},
		{GuildTxTypeRagequit, &RagequitTx{Recipient: addr, Loot: 1, Shares: 2}},
		{GuildTxTypeTransfer, &TransferTx{To: addr, Loot: 1, Shares: 2}},
		{GuildTxTypeMemberAction, &MemberActionTx{Member: addr, LootDelta: -1, SharesDelta: 2}},
		{GuildTxTypeShamanGrant, &ShamanGrantTx{Shaman: addr}},
	}
	for _, c := range cases {
		raw, err := MarshalGuildTx(&GuildTx{Version: GuildTxVersion1, Type: c.typ, Nonce: 7, Tx: c.tx})
		require.NoError(t, err)
		btx, err := UnmarshalGuildTx(raw)
		require.NoError(t, err, "type %v", c.typ)
		assert.Equal(t, c.typ, btx.Type)
		assert.Equal(t, uint64(7), btx.Nonce)
		assert.Equal(t, c.tx, btx.Tx, "type %v", c.typ)
	}
}

func TestUnmarshalUnknownType(t *testing.T) {
	raw, err := MarshalGuildTx(&GuildTx{Version: GuildTxVersion1, Type: GuildTxType(99)})
	require.NoError(t, err)
	_, err = UnmarshalGuildTx(raw)
	assert.Equal(t, ErrUnsupportedTxType, err)

	_, err = UnmarshalGuildTx([]byte("{"))
	assert.Equal(t, ErrUnsupportedTxType, err)
}

func TestSigDataBindsChainId(t *testing.T) {
	btx := &GuildTx{
		Version: GuildTxVersion1,
		Type:    GuildTxTypeVote,
		Nonce:   1,
		Tx:      &VoteTx{Proposal: 1, Support: true},
	}
	a, err := btx.SigData([]byte("guild-a"))
	require.NoError(t, err)
	b, err := btx.SigData([]byte("guild-b"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	// the signature slot itself is excluded from the signed payload
	btx.Sig = []byte{1, 2, 3}
	c, err := btx.SigData([]byte("guild-a"))
	require.NoError(t, err)
	assert.Equal(t, a, c)
}

func TestSigDataRoundTripsThroughWire(t *testing.T) {
	btx := &GuildTx{
		Version: GuildTxVersion1,
		Type:    GuildTxTypeTransfer,
		Nonce:   4,
		Tx:      &TransferTx{To: common.BytesToAddress([]byte{0x22}), Loot: 9},
		Sig:     make([]byte, 65),
	}
	raw, err := MarshalGuildTx(btx)
	require.NoError(t, err)
	got, err := UnmarshalGuildTx(raw)
	require.NoError(t, err)

	want, err := btx.SigData([]byte("guild-a"))
	require.NoError(t, err)
	have, err := got.SigData([]byte("guild-a"))
	require.NoError(t, err)
	assert.Equal(t, want, have)
}
