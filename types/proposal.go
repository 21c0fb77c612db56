package types

import (
	"github.com/ethereum/go-ethereum/common"
)

// ProposalKind selects which execution semantics the proposal's action
// arrays encode. Exactly one kind per proposal, validated at submission.
type ProposalKind uint8

const (
	KindUnknown    ProposalKind = 0
	KindAction     ProposalKind = 1
	KindMembership ProposalKind = 2
	KindPeriod     ProposalKind = 3
	KindAssetList  ProposalKind = 4
)

func (k ProposalKind) Valid() bool {
	return k >= KindAction && k <= KindAssetList
}

func (k ProposalKind) String() string {
	switch k {
	case KindAction:
		return "action"
	case KindMembership:
		return "membership"
	case KindPeriod:
		return "period"
	case KindAssetList:
		return "assetlist"
	default:
		return "unknown"
	}
}

type ProposalStatus uint64

const (
	ProposalStatusVoting   ProposalStatus = 1
	ProposalStatusAccepted ProposalStatus = 2
	ProposalStatusRejected ProposalStatus = 3
)

type Proposal struct {
	Index        uint64           `json:"index"`
	Kind         ProposalKind     `json:"kind"`
	Sponsor      common.Address   `json:"sponsor"`
	VotingStarts uint64           `json:"voting_starts"`
	VotingEnds   uint64           `json:"voting_ends"`
	Targets      []common.Address `json:"targets"`
	Values       []uint64         `json:"values"`
	Payloads     [][]byte         `json:"payloads"`
	YesVotes     uint64           `json:"yes_votes"`
	NoVotes      uint64           `json:"no_votes"`
	Processed    bool             `json:"processed"`
	Status       ProposalStatus   `json:"status"`
	DetailsHash  common.Hash      `json:"details_hash"`
	// ActionLog records per-item failures captured during processing;
	// failed items never abort retirement.
	ActionLog []string `json:"action_log,omitempty"`
}

// Passed reports the outcome after processing. Ties fail.
func (p *Proposal) Passed() bool {
	return p.YesVotes > p.NoVotes
}

// BalanceChange is the payload body of one membership-mutation item.
// Deltas are signed so the same proposal kind covers mint and burn.
type BalanceChange struct {
	Loot   int64 `json:"loot"`
	Shares int64 `json:"shares"`
}

type Checkpoint struct {
	Unit   uint64 `json:"unit"`
	Weight uint64 `json:"weight"`
}

type Vote struct {
	Voter    common.Address `json:"voter"`
	Proposal uint64         `json:"proposal"`
	Support  bool           `json:"support"`
	Weight   uint64         `json:"weight"`
	Unit     uint64         `json:"unit"`
}

// OrgConfig is the governance-mutable organization configuration.
// Period values are counted in clock units.
type OrgConfig struct {
	MinVotingPeriod uint64 `json:"min_voting_period"`
	MaxVotingPeriod uint64 `json:"max_voting_period"`
	GracePeriod     uint64 `json:"grace_period"`
	SharesPaused    bool   `json:"shares_paused"`
	LootPaused      bool   `json:"loot_paused"`
}
