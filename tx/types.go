package tx

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
)

type GuildTxType uint8

const (
	GuildTxTypeUnknown      GuildTxType = 0
	GuildTxTypeProposal     GuildTxType = 1
	GuildTxTypeVote         GuildTxType = 2
	GuildTxTypeProcess      GuildTxType = 3
	GuildTxTypeRagequit     GuildTxType = 4
	GuildTxTypeTransfer     GuildTxType = 5
	GuildTxTypeMemberAction GuildTxType = 6
	GuildTxTypeShamanGrant  GuildTxType = 7
)

const (
	GuildTxVersion0 uint8 = 0
	GuildTxVersion1 uint8 = 1
)

var (
	ErrInvalidTx         = errors.New("invalid tx")
	ErrUnsupportedTxType = errors.New("unsupported tx type")
	ErrUnmatchedTxType   = errors.New("unmatched tx type")

	ErrUnsupportedTxVersion = errors.New("unsupported tx version")
)

// SubmitProposalTx queues a proposal. Targets/Values/Payloads are the
// parallel action arrays; their interpretation depends on Kind.
type SubmitProposalTx struct {
	Kind         uint8            `json:"kind"`
	VotingPeriod uint64           `json:"votingPeriod"`
	Targets      []common.Address `json:"targets"`
	Values       []uint64         `json:"values"`
	Payloads     [][]byte         `json:"payloads"`
	Details      string           `json:"details"`
}

type VoteTx struct {
	Proposal uint64 `json:"proposal"`
	Support  bool   `json:"support"`
}

type ProcessTx struct {
	Proposal uint64 `json:"proposal"`
}

type RagequitTx struct {
	Recipient common.Address `json:"recipient"`
	Loot      uint64         `json:"loot"`
	Shares    uint64         `json:"shares"`
}

type TransferTx struct {
	To     common.Address `json:"to"`
	Loot   uint64         `json:"loot"`
	Shares uint64         `json:"shares"`
}

// MemberActionTx is the privileged-agent mint/burn path.
type MemberActionTx struct {
	Member      common.Address `json:"member"`
	LootDelta   int64          `json:"lootDelta"`
	SharesDelta int64          `json:"sharesDelta"`
}

type ShamanGrantTx struct {
	Shaman common.Address `json:"shaman"`
}
