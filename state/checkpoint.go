package state

import (
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/common"

	"github.com/guilddao/guild-app/types"
)

// Checkpoint ledger: per-member, append-only, time-ordered vote-weight
// snapshots. Stored flat under one key per member and binary-searched
// by unit, so point-in-time reads stay cheap as history grows.

func (s *State) getCheckpoints(member common.Address) ([]types.Checkpoint, error) {
	var cps []types.Checkpoint
	err := s.getRecord(fmt.Sprintf(KeyCheckpoints, member), &cps)
	if err == ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return cps, nil
}

// writeCheckpoint records the member's vote weight for the current
// unit. At most one checkpoint exists per unit: writing again in the
// same unit overwrites that unit's entry.
func (s *State) writeCheckpoint(member common.Address, now uint64, weight uint64) error {
	cps, err := s.getCheckpoints(member)
	if err != nil {
		return err
	}
	n := len(cps)
	if n > 0 && cps[n-1].Unit == now {
		cps[n-1].Weight = weight
	} else {
		cps = append(cps, types.Checkpoint{Unit: now, Weight: weight})
	}
	return s.setRecord(fmt.Sprintf(KeyCheckpoints, member), cps)
}

// WeightAt returns the member's vote weight as of the latest
// checkpoint at or before unit, or 0 if none exists. The weight for
// the current unit is not yet finalized; reading it here fails with
// ErrUnitNotDetermined and must go through CurrentWeight instead.
func (s *State) WeightAt(member common.Address, unit uint64, now uint64) (uint64, error) {
	if unit >= now {
		return 0, ErrUnitNotDetermined
	}
	cps, err := s.getCheckpoints(member)
	if err != nil {
		return 0, err
	}
	// first checkpoint strictly after unit
	i := sort.Search(len(cps), func(i int) bool { return cps[i].Unit > unit })
	if i == 0 {
		return 0, nil
	}
	return cps[i-1].Weight, nil
}

// CurrentWeight returns the most recent checkpoint's weight with no
// unit bound.
func (s *State) CurrentWeight(member common.Address) (uint64, error) {
	cps, err := s.getCheckpoints(member)
	if err != nil {
		return 0, err
	}
	if len(cps) == 0 {
		return 0, nil
	}
	return cps[len(cps)-1].Weight, nil
}

func (s *State) NumCheckpoints(member common.Address) (uint64, error) {
	cps, err := s.getCheckpoints(member)
	if err != nil {
		return 0, err
	}
	return uint64(len(cps)), nil
}

func (s *State) CheckpointAt(member common.Address, idx uint64) (types.Checkpoint, error) {
	cps, err := s.getCheckpoints(member)
	if err != nil {
		return types.Checkpoint{}, err
	}
	if idx >= uint64(len(cps)) {
		return types.Checkpoint{}, ErrNotFound
	}
	return cps[idx], nil
}
