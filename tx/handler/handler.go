package handler

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/guilddao/guild-app/state"
	"github.com/guilddao/guild-app/tx"
)

// TxHandler applies one transaction type against the state. Check
// must not mutate; Apply runs under the state lock with the sampled
// unit.
type TxHandler interface {
	Check(ctx context.Context, st *state.State, btx *tx.GuildTx, sender common.Address, now uint64) error
	Apply(ctx context.Context, st *state.State, btx *tx.GuildTx, sender common.Address, now uint64) error
}
