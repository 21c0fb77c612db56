package state

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustBalancesAgentGate(t *testing.T) {
	f := newFixture(t)

	// addrB holds claims but no agent role
	err := f.applyErr(func(st *State, now uint64) error {
		return st.AdjustBalances(addrB, addrC, 0, 10, now, false)
	})
	assert.Equal(t, ErrUnauthorizedAgent, err)

	f.apply(t, func(st *State, now uint64) error {
		return st.AdjustBalances(addrA, addrC, 0, 10, now, false)
	})
	m, _, err := f.db.GetMember(addrC)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), m.Shares)
}

func TestAdjustBalancesKeepsTotals(t *testing.T) {
	f := newFixture(t)

	f.apply(t, func(st *State, now uint64) error {
		return st.AdjustBalances(addrA, addrC, 7, 10, now, false)
	})
	h := f.db.Header()
	assert.Equal(t, uint64(160), h.TotalShares)
	assert.Equal(t, uint64(57), h.TotalLoot)

	f.apply(t, func(st *State, now uint64) error {
		return st.AdjustBalances(addrA, addrC, -7, -10, now, false)
	})
	h = f.db.Header()
	assert.Equal(t, uint64(150), h.TotalShares)
	assert.Equal(t, uint64(50), h.TotalLoot)
}

func TestAdjustBalancesOverBurn(t *testing.T) {
	f := newFixture(t)
	err := f.applyErr(func(st *State, now uint64) error {
		return st.AdjustBalances(addrA, addrB, -51, 0, now, false)
	})
	assert.Equal(t, ErrInsufficientBalance, err)
	err = f.applyErr(func(st *State, now uint64) error {
		return st.AdjustBalances(addrA, addrB, 0, -51, now, false)
	})
	assert.Equal(t, ErrInsufficientBalance, err)
}

func TestAdjustBalancesOverflow(t *testing.T) {
	f := newFixture(t)

	// a first maximal mint fits; a second would wrap the totals
	f.apply(t, func(st *State, now uint64) error {
		return st.AdjustBalances(addrA, addrC, 0, math.MaxInt64, now, false)
	})
	err := f.applyErr(func(st *State, now uint64) error {
		return st.AdjustBalances(addrA, addrC, 0, math.MaxInt64, now, false)
	})
	assert.Equal(t, ErrBalanceOverflow, err)

	f.apply(t, func(st *State, now uint64) error {
		return st.AdjustBalances(addrA, addrC, math.MaxInt64, 0, now, false)
	})
	err = f.applyErr(func(st *State, now uint64) error {
		return st.AdjustBalances(addrA, addrC, math.MaxInt64, 0, now, false)
	})
	assert.Equal(t, ErrBalanceOverflow, err)
}

func TestInitMemberRejectsHugeGenesisBalance(t *testing.T) {
	f := newFixture(t)

	err := f.applyErr(func(st *State, now uint64) error {
		return st.InitMember(addrC, math.MaxInt64+1, 0, now)
	})
	assert.Equal(t, ErrBalanceOverflow, err)
	err = f.applyErr(func(st *State, now uint64) error {
		return st.InitMember(addrC, 0, math.MaxInt64+1, now)
	})
	assert.Equal(t, ErrBalanceOverflow, err)
}

func TestAdjustBalancesCheckOnly(t *testing.T) {
	f := newFixture(t)
	f.apply(t, func(st *State, now uint64) error {
		return st.AdjustBalances(addrA, addrC, 0, 10, now, true)
	})
	_, _, err := f.db.GetMember(addrC)
	assert.Equal(t, ErrNotFound, err)
}

func TestTransferMovesClaims(t *testing.T) {
	f := newFixture(t)

	f.apply(t, func(st *State, now uint64) error {
		return st.Transfer(addrB, addrC, 20, 5, now, false)
	})

	from, _, err := f.db.GetMember(addrB)
	require.NoError(t, err)
	assert.Equal(t, uint64(30), from.Loot)
	assert.Equal(t, uint64(45), from.Shares)

	to, _, err := f.db.GetMember(addrC)
	require.NoError(t, err)
	assert.Equal(t, uint64(20), to.Loot)
	assert.Equal(t, uint64(5), to.Shares)

	// totals unchanged by an internal move
	h := f.db.Header()
	assert.Equal(t, uint64(150), h.TotalShares)
	assert.Equal(t, uint64(50), h.TotalLoot)
}

func TestTransferValidation(t *testing.T) {
	f := newFixture(t)

	err := f.applyErr(func(st *State, now uint64) error {
		return st.Transfer(addrC, addrA, 1, 0, now, false)
	})
	assert.Equal(t, ErrMemberNoexists, err)

	err = f.applyErr(func(st *State, now uint64) error {
		return st.Transfer(addrB, addrA, 51, 0, now, false)
	})
	assert.Equal(t, ErrInsufficientBalance, err)
}

func TestGrantShaman(t *testing.T) {
	f := newFixture(t)

	err := f.applyErr(func(st *State, now uint64) error {
		return st.GrantShaman(addrB, addrB, now, false)
	})
	assert.Equal(t, ErrUnauthorizedAgent, err)

	f.apply(t, func(st *State, now uint64) error {
		return st.GrantShaman(addrA, addrB, now, false)
	})
	assert.True(t, f.db.Header().IsShaman(addrB))

	// the new agent can mint
	f.apply(t, func(st *State, now uint64) error {
		return st.AdjustBalances(addrB, addrC, 0, 1, now, false)
	})

	// regrant is a no-op
	f.apply(t, func(st *State, now uint64) error {
		return st.GrantShaman(addrA, addrB, now, false)
	})
	n := 0
	for _, s := range f.db.Header().Shamans {
		if s == addrB {
			n++
		}
	}
	assert.Equal(t, 1, n)
}
