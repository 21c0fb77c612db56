package state

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/guilddao/guild-app/tx"
	"github.com/guilddao/guild-app/types"
)

// Ragequit burns some or all of a member's claims for a proportional
// share of every custodied asset. A member whose highest yes vote
// points at an unprocessed proposal cannot exit: the assets backing
// that vote must stay until the proposal is retired.
func (s *State) Ragequit(rtx *tx.RagequitTx, member common.Address, now uint64, checkOnly bool) (event *types.EventRagequit, err error) {
	m, err := s.GetMember(member)
	if err == ErrNotFound {
		return nil, ErrMemberNoexists
	}
	if err != nil {
		return nil, err
	}
	if m.HighestYesVote > s.header.LastProcessed {
		return nil, ErrPendingYesVote
	}
	if rtx.Loot > m.Loot || rtx.Shares > m.Shares {
		return nil, ErrInsufficientBalance
	}
	// a zero burn claims nothing; rejecting it here keeps the payout
	// division below safe when the total supply has gone to zero
	if rtx.Loot == 0 && rtx.Shares == 0 {
		return nil, ErrInsufficientBalance
	}
	if checkOnly {
		return nil, nil
	}
	s.logger.Debug("apply ragequit", "member", member, "recipient", rtx.Recipient, "loot", rtx.Loot, "shares", rtx.Shares)

	// proportional claim measured against supply before the burn
	supply := new(big.Int).SetUint64(s.header.TotalLoot + s.header.TotalShares)
	burn := new(big.Int).SetUint64(rtx.Loot + rtx.Shares)
	for _, asset := range s.header.Assets {
		bal, err := s.vault.BalanceOf(asset)
		if err != nil {
			return nil, err
		}
		amount := new(big.Int).Mul(bal, burn)
		amount.Div(amount, supply)
		if amount.Sign() == 0 {
			continue
		}
		if err := s.vault.Transfer(asset, rtx.Recipient, amount); err != nil {
			return nil, err
		}
	}
	if err = s.adjustBalances(member, -int64(rtx.Loot), -int64(rtx.Shares), now); err != nil {
		return nil, err
	}
	event = &types.EventRagequit{
		Member:      member,
		Recipient:   rtx.Recipient,
		LootBurnt:   rtx.Loot,
		SharesBurnt: rtx.Shares,
	}
	s.emit(types.EventRagequitType, now, event)
	return
}
