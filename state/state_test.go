package state

import (
	"errors"
	"fmt"
	"math/big"
	"testing"

	cosmoslog "cosmossdk.io/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guilddao/guild-app/types"
)

var (
	addrA = common.BytesToAddress([]byte{0xa1})
	addrB = common.BytesToAddress([]byte{0xb2})
	addrC = common.BytesToAddress([]byte{0xc3})

	assetX = common.BytesToAddress([]byte{0xee, 0x01})
)

type manualClock struct {
	now uint64
}

func (c *manualClock) Now() uint64 {
	return c.now
}

type payout struct {
	asset     common.Address
	recipient common.Address
	amount    *big.Int
}

type testVault struct {
	balances map[common.Address]*big.Int
	payouts  []payout
}

func newTestVault() *testVault {
	return &testVault{balances: make(map[common.Address]*big.Int)}
}

func (v *testVault) BalanceOf(asset common.Address) (*big.Int, error) {
	bal, ok := v.balances[asset]
	if !ok {
		return new(big.Int), nil
	}
	return new(big.Int).Set(bal), nil
}

func (v *testVault) Transfer(asset common.Address, recipient common.Address, amount *big.Int) error {
	bal, ok := v.balances[asset]
	if !ok || bal.Cmp(amount) < 0 {
		return errors.New("vault balance too low")
	}
	bal.Sub(bal, amount)
	v.payouts = append(v.payouts, payout{asset: asset, recipient: recipient, amount: new(big.Int).Set(amount)})
	return nil
}

type runCall struct {
	target  common.Address
	value   uint64
	payload []byte
}

type recordRunner struct {
	calls []runCall
	err   error
}

func (r *recordRunner) Run(target common.Address, value uint64, payload []byte) error {
	r.calls = append(r.calls, runCall{target: target, value: value, payload: payload})
	return r.err
}

type fixture struct {
	db     *StateDB
	clock  *manualClock
	vault  *testVault
	runner *recordRunner
}

// newFixture opens a fresh guild at unit 100 with two founding
// members: addrA holding 100 shares and addrB holding 50 shares plus
// 50 loot.
func newFixture(t *testing.T) *fixture {
	clock := &manualClock{now: 100}
	vault := newTestVault()
	runner := &recordRunner{}
	db, err := NewStateDB(t.TempDir(), vault, runner, clock, cosmoslog.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Apply(func(st *State, now uint64) error {
		st.SetChainId("guild-test")
		h := st.Header()
		h.Config = types.OrgConfig{
			MinVotingPeriod: 10,
			MaxVotingPeriod: 1000,
			GracePeriod:     10,
		}
		h.Shamans = []common.Address{addrA}
		h.Assets = []common.Address{assetX}
		if err := st.InitMember(addrA, 0, 100, now); err != nil {
			return err
		}
		return st.InitMember(addrB, 50, 50, now)
	})
	require.NoError(t, err)
	return &fixture{db: db, clock: clock, vault: vault, runner: runner}
}

func (f *fixture) apply(t *testing.T, fn func(st *State, now uint64) error) {
	t.Helper()
	_, err := f.db.Apply(fn)
	require.NoError(t, err)
}

func (f *fixture) applyErr(fn func(st *State, now uint64) error) error {
	_, err := f.db.Apply(fn)
	return err
}

func TestCommitAdvancesHeight(t *testing.T) {
	f := newFixture(t)
	h0 := f.db.Header()
	assert.Equal(t, uint64(1), h0.Height)
	assert.Equal(t, "guild-test", h0.ChainId)
	assert.Equal(t, uint64(150), h0.TotalShares)
	assert.Equal(t, uint64(50), h0.TotalLoot)

	f.apply(t, func(st *State, now uint64) error {
		return st.Transfer(addrB, addrA, 10, 0, now, false)
	})
	h1 := f.db.Header()
	assert.Equal(t, uint64(2), h1.Height)
	assert.NotEqual(t, h0.Hash, h1.Hash)
}

func TestApplyRollsBackOnError(t *testing.T) {
	f := newFixture(t)
	h0 := f.db.Header()

	boom := errors.New("boom")
	err := f.applyErr(func(st *State, now uint64) error {
		if err := st.Transfer(addrB, addrA, 10, 10, now, false); err != nil {
			return err
		}
		return boom
	})
	assert.Equal(t, boom, err)

	h1 := f.db.Header()
	assert.Equal(t, h0.Height, h1.Height)
	assert.Equal(t, h0.TotalShares, h1.TotalShares)
	m, _, err := f.db.GetMember(addrB)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), m.Loot)
	assert.Equal(t, uint64(50), m.Shares)
}

func TestCheckNeverPersists(t *testing.T) {
	f := newFixture(t)
	h0 := f.db.Header()

	err := f.db.Check(func(st *State, now uint64) error {
		return st.Transfer(addrB, addrA, 10, 10, now, false)
	})
	require.NoError(t, err)

	h1 := f.db.Header()
	assert.Equal(t, h0.Height, h1.Height)
	m, _, err := f.db.GetMember(addrB)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), m.Shares)
}

func TestReloadKeepsState(t *testing.T) {
	clock := &manualClock{now: 100}
	dir := t.TempDir()
	db, err := NewStateDB(dir, newTestVault(), &recordRunner{}, clock, cosmoslog.NewNopLogger())
	require.NoError(t, err)
	_, err = db.Apply(func(st *State, now uint64) error {
		st.SetChainId("guild-reload")
		return st.InitMember(addrA, 5, 10, now)
	})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = NewStateDB(dir, newTestVault(), &recordRunner{}, clock, cosmoslog.NewNopLogger())
	require.NoError(t, err)
	defer db.Close()

	h := db.Header()
	assert.Equal(t, "guild-reload", h.ChainId)
	assert.Equal(t, uint64(1), h.Height)
	m, _, err := db.GetMember(addrA)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), m.Shares)
	assert.Equal(t, uint64(5), m.Loot)
}

func TestGetProposalNoexists(t *testing.T) {
	f := newFixture(t)
	_, err := f.db.GetProposal(0)
	assert.Equal(t, ErrProposalNoexists, err)
	_, err = f.db.GetProposal(1)
	assert.Equal(t, ErrProposalNoexists, err)
}

func TestEventsReachSinkOnlyOnCommit(t *testing.T) {
	f := newFixture(t)
	var seen []string
	f.db.SetEventSink(func(ev types.Event) {
		seen = append(seen, ev.Type)
	})

	err := f.applyErr(func(st *State, now uint64) error {
		if err := st.Transfer(addrB, addrA, 1, 0, now, false); err != nil {
			return err
		}
		return fmt.Errorf("abort")
	})
	require.Error(t, err)
	assert.Empty(t, seen)

	f.apply(t, func(st *State, now uint64) error {
		return st.Transfer(addrB, addrA, 1, 0, now, false)
	})
	// two balance updates plus the transfer itself
	assert.Equal(t, []string{types.EventBalanceType, types.EventBalanceType, types.EventTransferType}, seen)
}
