package handler

import (
	"context"

	cosmoslog "cosmossdk.io/log"
	"github.com/ethereum/go-ethereum/common"

	"github.com/guilddao/guild-app/state"
	"github.com/guilddao/guild-app/tx"
)

// ProcessTxHandler drives the proposal state machine. Anyone may
// submit a process transaction; ordering is enforced by the state.
type ProcessTxHandler struct {
	logger cosmoslog.Logger
}

func NewProcessTxHandler(logger cosmoslog.Logger) (h *ProcessTxHandler) {
	logger = logger.With("module", "processTx")
	h = &ProcessTxHandler{
		logger: logger,
	}
	return
}

func (h *ProcessTxHandler) Check(ctx context.Context, st *state.State, btx *tx.GuildTx, sender common.Address, now uint64) error {
	ptx := btx.Tx.(*tx.ProcessTx)
	_, err := st.ProcessProposal(ptx, now, true)
	if err != nil {
		h.logger.Info("check process tx fail", "err", err)
	}
	return err
}

func (h *ProcessTxHandler) Apply(ctx context.Context, st *state.State, btx *tx.GuildTx, sender common.Address, now uint64) error {
	ptx := btx.Tx.(*tx.ProcessTx)
	_, err := st.ProcessProposal(ptx, now, false)
	return err
}
