package types

import (
	"github.com/ethereum/go-ethereum/common"
)

const (
	EventProposalType  = "proposal"
	EventVoteType      = "vote"
	EventProcessedType = "processed"
	EventRagequitType  = "ragequit"
	EventBalanceType   = "balance"
	EventTransferType  = "transfer"
	EventShamanType    = "shaman"
)

// Event is the envelope the indexer consumes; Body is one of the
// Event* structs below, matched on Type.
type Event struct {
	Type string `json:"type"`
	Unit uint64 `json:"unit"`
	Body any    `json:"body"`
}

type EventProposal struct {
	Index        uint64         `json:"index"`
	Kind         ProposalKind   `json:"kind"`
	Sponsor      common.Address `json:"sponsor"`
	VotingStarts uint64         `json:"votingStarts"`
	VotingEnds   uint64         `json:"votingEnds"`
	DetailsHash  common.Hash    `json:"detailsHash"`
}

type EventVote struct {
	Proposal uint64         `json:"proposal"`
	Voter    common.Address `json:"voter"`
	Support  bool           `json:"support"`
	Weight   uint64         `json:"weight"`
}

type EventProcessed struct {
	Proposal  uint64         `json:"proposal"`
	Kind      ProposalKind   `json:"kind"`
	Passed    bool           `json:"passed"`
	Status    ProposalStatus `json:"status"`
	ActionLog []string       `json:"actionLog,omitempty"`
}

type EventRagequit struct {
	Member      common.Address `json:"member"`
	Recipient   common.Address `json:"recipient"`
	LootBurnt   uint64         `json:"lootBurnt"`
	SharesBurnt uint64         `json:"sharesBurnt"`
}

type EventBalance struct {
	Member common.Address `json:"member"`
	Loot   uint64         `json:"loot"`
	Shares uint64         `json:"shares"`
}

type EventTransfer struct {
	From   common.Address `json:"from"`
	To     common.Address `json:"to"`
	Loot   uint64         `json:"loot"`
	Shares uint64         `json:"shares"`
}

type EventShaman struct {
	Agent   common.Address `json:"agent"`
	Granted common.Address `json:"granted"`
}

const GuildModuleName = "guild"

const (
	FlagOverwrite = "overwrite"
	FlagChainID   = "chain-id"
	FlagHome      = "home"
)
