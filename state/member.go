package state

import (
	"fmt"
	"math"

	"github.com/ethereum/go-ethereum/common"

	"github.com/guilddao/guild-app/types"
)

// Member is a participant's claim record. A member with zero shares
// and zero loot holds no rights; the record is kept only for its
// nonce and audit history.
type Member struct {
	Address        common.Address `json:"address"`
	Loot           uint64         `json:"loot"`
	Shares         uint64         `json:"shares"`
	HighestYesVote uint64         `json:"highest_yes_vote"`
	Nonce          uint64         `json:"nonce"`
}

func (m *Member) Clone() *Member {
	n := *m
	return &n
}

func (s *State) GetMember(addr common.Address) (m *Member, err error) {
	m = new(Member)
	err = s.getRecord(fmt.Sprintf(KeyMemberBody, addr), m)
	if err != nil {
		return nil, err
	}
	return
}

// getOrNewMember never fails on absence; balance grants create members.
func (s *State) getOrNewMember(addr common.Address) (*Member, error) {
	m, err := s.GetMember(addr)
	if err == ErrNotFound {
		return &Member{Address: addr}, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *State) setMember(m *Member) error {
	return s.setRecord(fmt.Sprintf(KeyMemberBody, m.Address), m)
}

// adjustBalances applies signed loot/shares deltas to a member,
// keeps the running totals in lockstep and, on any shares change,
// writes a new vote-weight checkpoint. Loot carries no vote weight.
func (s *State) adjustBalances(member common.Address, lootDelta int64, sharesDelta int64, now uint64) error {
	m, err := s.getOrNewMember(member)
	if err != nil {
		return err
	}
	if lootDelta < 0 && uint64(-lootDelta) > m.Loot {
		return ErrInsufficientBalance
	}
	if sharesDelta < 0 && uint64(-sharesDelta) > m.Shares {
		return ErrInsufficientBalance
	}
	// the running totals bound every member balance, so checking them
	// is enough to rule out wrap on a positive delta
	if lootDelta > 0 && uint64(lootDelta) > math.MaxUint64-s.header.TotalLoot {
		return ErrBalanceOverflow
	}
	if sharesDelta > 0 && uint64(sharesDelta) > math.MaxUint64-s.header.TotalShares {
		return ErrBalanceOverflow
	}
	m.Loot = applyDelta(m.Loot, lootDelta)
	m.Shares = applyDelta(m.Shares, sharesDelta)
	s.header.TotalLoot = applyDelta(s.header.TotalLoot, lootDelta)
	s.header.TotalShares = applyDelta(s.header.TotalShares, sharesDelta)
	if err := s.setMember(m); err != nil {
		return err
	}
	if sharesDelta != 0 {
		if err := s.writeCheckpoint(member, now, m.Shares); err != nil {
			return err
		}
	}
	s.emit(types.EventBalanceType, now, &types.EventBalance{
		Member: member,
		Loot:   m.Loot,
		Shares: m.Shares,
	})
	return nil
}

func applyDelta(v uint64, d int64) uint64 {
	if d < 0 {
		return v - uint64(-d)
	}
	return v + uint64(d)
}

// InitMember grants founding balances from the genesis document,
// before any privileged agent exists.
func (s *State) InitMember(addr common.Address, loot uint64, shares uint64, now uint64) error {
	if loot > math.MaxInt64 || shares > math.MaxInt64 {
		return ErrBalanceOverflow
	}
	return s.adjustBalances(addr, int64(loot), int64(shares), now)
}

// AdjustBalances is the privileged-agent mint/burn path, bypassing the
// proposal flow. Only authorized shamans may call it.
func (s *State) AdjustBalances(agent common.Address, member common.Address, lootDelta int64, sharesDelta int64, now uint64, checkOnly bool) error {
	if !s.header.IsShaman(agent) {
		return ErrUnauthorizedAgent
	}
	m, err := s.getOrNewMember(member)
	if err != nil {
		return err
	}
	if lootDelta < 0 && uint64(-lootDelta) > m.Loot {
		return ErrInsufficientBalance
	}
	if sharesDelta < 0 && uint64(-sharesDelta) > m.Shares {
		return ErrInsufficientBalance
	}
	if lootDelta > 0 && uint64(lootDelta) > math.MaxUint64-s.header.TotalLoot {
		return ErrBalanceOverflow
	}
	if sharesDelta > 0 && uint64(sharesDelta) > math.MaxUint64-s.header.TotalShares {
		return ErrBalanceOverflow
	}
	if checkOnly {
		return nil
	}
	s.logger.Debug("apply balance adjustment", "agent", agent, "member", member, "loot", lootDelta, "shares", sharesDelta)
	return s.adjustBalances(member, lootDelta, sharesDelta, now)
}

// GrantShaman lets an existing privileged agent authorize another.
func (s *State) GrantShaman(agent common.Address, granted common.Address, now uint64, checkOnly bool) error {
	if !s.header.IsShaman(agent) {
		return ErrUnauthorizedAgent
	}
	if checkOnly || s.header.IsShaman(granted) {
		return nil
	}
	s.header.Shamans = append(s.header.Shamans, granted)
	s.emit(types.EventShamanType, now, &types.EventShaman{Agent: agent, Granted: granted})
	return nil
}

// Transfer moves claims between members. Each claim type can be
// paused by configuration.
func (s *State) Transfer(from common.Address, to common.Address, loot uint64, shares uint64, now uint64, checkOnly bool) error {
	if loot > 0 && s.header.Config.LootPaused {
		return ErrLootPaused
	}
	if shares > 0 && s.header.Config.SharesPaused {
		return ErrSharesPaused
	}
	m, err := s.GetMember(from)
	if err == ErrNotFound {
		return ErrMemberNoexists
	}
	if err != nil {
		return err
	}
	if loot > m.Loot || shares > m.Shares {
		return ErrInsufficientBalance
	}
	if checkOnly {
		return nil
	}
	s.logger.Debug("apply transfer", "from", from, "to", to, "loot", loot, "shares", shares)
	if err := s.adjustBalances(from, -int64(loot), -int64(shares), now); err != nil {
		return err
	}
	if err := s.adjustBalances(to, int64(loot), int64(shares), now); err != nil {
		return err
	}
	s.emit(types.EventTransferType, now, &types.EventTransfer{
		From:   from,
		To:     to,
		Loot:   loot,
		Shares: shares,
	})
	return nil
}
