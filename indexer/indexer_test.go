package indexer

import (
	"testing"

	cosmoslog "cosmossdk.io/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guilddao/guild-app/types"
)

func newTestIndexer(t *testing.T) *Indexer {
	idx, err := NewIndexer(cosmoslog.NewNopLogger(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })
	return idx
}

func TestIndexProposalLifecycle(t *testing.T) {
	idx := newTestIndexer(t)
	sponsor := common.BytesToAddress([]byte{0xa1})
	voter := common.BytesToAddress([]byte{0xb2})

	idx.handleEvent(types.Event{Type: types.EventProposalType, Unit: 200, Body: &types.EventProposal{
		Index:        1,
		Kind:         types.KindAction,
		Sponsor:      sponsor,
		VotingStarts: 200,
		VotingEnds:   210,
	}})
	idx.handleEvent(types.Event{Type: types.EventVoteType, Unit: 205, Body: &types.EventVote{
		Proposal: 1,
		Voter:    voter,
		Support:  true,
		Weight:   100,
	}})
	idx.handleEvent(types.Event{Type: types.EventProcessedType, Unit: 220, Body: &types.EventProcessed{
		Proposal:  1,
		Kind:      types.KindAction,
		Passed:    true,
		Status:    types.ProposalStatusAccepted,
		ActionLog: []string{"item 0: reverted"},
	}})

	p, err := idx.getProposalById(1)
	require.NoError(t, err)
	assert.Equal(t, sponsor.Hex(), p.Sponsor)
	assert.True(t, p.Processed)
	assert.True(t, p.Passed)
	assert.Equal(t, uint64(types.ProposalStatusAccepted), p.Status)
	assert.Equal(t, "item 0: reverted", p.ActionLog)

	votes, err := idx.getVotesByProposal(1, 0, 10)
	require.NoError(t, err)
	require.Len(t, votes, 1)
	assert.Equal(t, voter.Hex(), votes[0].Voter)
	assert.Equal(t, uint64(100), votes[0].Weight)

	proposals, total, err := idx.getProposalsBySponsor(sponsor.Hex(), 0, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	require.Len(t, proposals, 1)
}

func TestIndexMemberAndExits(t *testing.T) {
	idx := newTestIndexer(t)
	member := common.BytesToAddress([]byte{0xb2})
	recipient := common.BytesToAddress([]byte{0xc3})

	idx.handleEvent(types.Event{Type: types.EventBalanceType, Unit: 100, Body: &types.EventBalance{
		Member: member, Loot: 50, Shares: 50,
	}})
	idx.handleEvent(types.Event{Type: types.EventBalanceType, Unit: 150, Body: &types.EventBalance{
		Member: member, Loot: 0, Shares: 0,
	}})
	idx.handleEvent(types.Event{Type: types.EventRagequitType, Unit: 150, Body: &types.EventRagequit{
		Member: member, Recipient: recipient, LootBurnt: 50, SharesBurnt: 50,
	}})

	members, total, err := idx.getMembers(0, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	require.Len(t, members, 1)
	assert.Equal(t, uint64(0), members[0].Shares)
	assert.Equal(t, uint64(150), members[0].Unit)

	quits, total, err := idx.getRagequits(member.Hex(), 0, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	require.Len(t, quits, 1)
	assert.Equal(t, recipient.Hex(), quits[0].Recipient)
}

func TestSinkDropsWhenFull(t *testing.T) {
	idx := newTestIndexer(t)
	for i := 0; i < eventBufferSize+10; i++ {
		idx.Sink(types.Event{Type: types.EventTransferType})
	}
	assert.Len(t, idx.events, eventBufferSize)
}
