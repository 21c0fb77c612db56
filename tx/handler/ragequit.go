package handler

import (
	"context"

	cosmoslog "cosmossdk.io/log"
	"github.com/ethereum/go-ethereum/common"

	"github.com/guilddao/guild-app/state"
	"github.com/guilddao/guild-app/tx"
)

type RagequitTxHandler struct {
	logger cosmoslog.Logger
}

func NewRagequitTxHandler(logger cosmoslog.Logger) (h *RagequitTxHandler) {
	logger = logger.With("module", "ragequitTx")
	h = &RagequitTxHandler{
		logger: logger,
	}
	return
}

func (h *RagequitTxHandler) Check(ctx context.Context, st *state.State, btx *tx.GuildTx, sender common.Address, now uint64) error {
	rtx := btx.Tx.(*tx.RagequitTx)
	_, err := st.Ragequit(rtx, sender, now, true)
	if err != nil {
		h.logger.Info("check ragequit tx fail", "err", err)
	}
	return err
}

func (h *RagequitTxHandler) Apply(ctx context.Context, st *state.State, btx *tx.GuildTx, sender common.Address, now uint64) error {
	rtx := btx.Tx.(*tx.RagequitTx)
	_, err := st.Ragequit(rtx, sender, now, false)
	return err
}
