package handler

import (
	"context"

	cosmoslog "cosmossdk.io/log"
	"github.com/ethereum/go-ethereum/common"

	"github.com/guilddao/guild-app/state"
	"github.com/guilddao/guild-app/tx"
)

type TransferTxHandler struct {
	logger cosmoslog.Logger
}

func NewTransferTxHandler(logger cosmoslog.Logger) (h *TransferTxHandler) {
	logger = logger.With("module", "transferTx")
	h = &TransferTxHandler{
		logger: logger,
	}
	return
}

func (h *TransferTxHandler) Check(ctx context.Context, st *state.State, btx *tx.GuildTx, sender common.Address, now uint64) error {
	ttx := btx.Tx.(*tx.TransferTx)
	err := st.Transfer(sender, ttx.To, ttx.Loot, ttx.Shares, now, true)
	if err != nil {
		h.logger.Info("check transfer tx fail", "err", err)
	}
	return err
}

func (h *TransferTxHandler) Apply(ctx context.Context, st *state.State, btx *tx.GuildTx, sender common.Address, now uint64) error {
	ttx := btx.Tx.(*tx.TransferTx)
	return st.Transfer(sender, ttx.To, ttx.Loot, ttx.Shares, now, false)
}
