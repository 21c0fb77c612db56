package handler

import (
	"context"

	cosmoslog "cosmossdk.io/log"
	"github.com/ethereum/go-ethereum/common"

	"github.com/guilddao/guild-app/state"
	"github.com/guilddao/guild-app/tx"
)

type ProposalTxHandler struct {
	logger cosmoslog.Logger
}

func NewProposalTxHandler(logger cosmoslog.Logger) (h *ProposalTxHandler) {
	logger = logger.With("module", "proposalTx")
	h = &ProposalTxHandler{
		logger: logger,
	}
	return
}

func (h *ProposalTxHandler) Check(ctx context.Context, st *state.State, btx *tx.GuildTx, sender common.Address, now uint64) error {
	stx := btx.Tx.(*tx.SubmitProposalTx)
	_, err := st.SubmitProposal(stx, sender, now, true)
	if err != nil {
		h.logger.Info("check proposal tx fail", "err", err)
	}
	return err
}

func (h *ProposalTxHandler) Apply(ctx context.Context, st *state.State, btx *tx.GuildTx, sender common.Address, now uint64) error {
	stx := btx.Tx.(*tx.SubmitProposalTx)
	_, err := st.SubmitProposal(stx, sender, now, false)
	return err
}
