package state

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Vault is the asset-custody collaborator. The guild never holds
// asset balances itself; exits are paid out through this interface.
type Vault interface {
	BalanceOf(asset common.Address) (*big.Int, error)
	Transfer(asset common.Address, recipient common.Address, amount *big.Int) error
}

// ActionRunner invokes one external call of an action proposal.
// Errors are captured on the proposal record and never abort
// processing.
type ActionRunner interface {
	Run(target common.Address, value uint64, payload []byte) error
}

// Clock is the external monotonic source of truth for time units.
// Every operation samples it exactly once at entry; all window
// comparisons inside that operation use the sampled unit.
type Clock interface {
	Now() uint64
}
