package app

import (
	"errors"
	"math/big"
	"sync"

	cosmoslog "cosmossdk.io/log"
	"github.com/ethereum/go-ethereum/common"
)

var ErrVaultInsufficient = errors.New("vault balance insufficient")

// MemVault is an in-process asset custody ledger. Deposits are
// credited through Credit; the exit engine draws on it through the
// state.Vault interface.
type MemVault struct {
	mtx      sync.Mutex
	balances map[common.Address]map[common.Address]*big.Int
}

func NewMemVault() *MemVault {
	return &MemVault{
		balances: make(map[common.Address]map[common.Address]*big.Int),
	}
}

func (v *MemVault) Credit(asset common.Address, holder common.Address, amount *big.Int) {
	v.mtx.Lock()
	defer v.mtx.Unlock()
	v.credit(asset, holder, amount)
}

func (v *MemVault) credit(asset common.Address, holder common.Address, amount *big.Int) {
	m, ok := v.balances[asset]
	if !ok {
		m = make(map[common.Address]*big.Int)
		v.balances[asset] = m
	}
	bal, ok := m[holder]
	if !ok {
		bal = new(big.Int)
		m[holder] = bal
	}
	bal.Add(bal, amount)
}

// GuildHolder is the account the guild's custodied funds sit under.
var GuildHolder = common.Address{}

func (v *MemVault) BalanceOf(asset common.Address) (*big.Int, error) {
	v.mtx.Lock()
	defer v.mtx.Unlock()
	m, ok := v.balances[asset]
	if !ok {
		return new(big.Int), nil
	}
	bal, ok := m[GuildHolder]
	if !ok {
		return new(big.Int), nil
	}
	return new(big.Int).Set(bal), nil
}

func (v *MemVault) Transfer(asset common.Address, recipient common.Address, amount *big.Int) error {
	v.mtx.Lock()
	defer v.mtx.Unlock()
	m, ok := v.balances[asset]
	if !ok {
		return ErrVaultInsufficient
	}
	bal, ok := m[GuildHolder]
	if !ok || bal.Cmp(amount) < 0 {
		return ErrVaultInsufficient
	}
	bal.Sub(bal, amount)
	v.credit(asset, recipient, amount)
	return nil
}

func (v *MemVault) HolderBalance(asset common.Address, holder common.Address) *big.Int {
	v.mtx.Lock()
	defer v.mtx.Unlock()
	m, ok := v.balances[asset]
	if !ok {
		return new(big.Int)
	}
	bal, ok := m[holder]
	if !ok {
		return new(big.Int)
	}
	return new(big.Int).Set(bal)
}

// LogRunner is the default action collaborator for nodes with no
// external targets wired: it records the call and succeeds.
type LogRunner struct {
	logger cosmoslog.Logger
}

func NewLogRunner(logger cosmoslog.Logger) *LogRunner {
	return &LogRunner{logger: logger.With("module", "runner")}
}

func (r *LogRunner) Run(target common.Address, value uint64, payload []byte) error {
	r.logger.Info("action call", "target", target, "value", value, "payload", len(payload))
	return nil
}
