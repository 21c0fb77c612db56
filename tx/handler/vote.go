package handler

import (
	"context"

	cosmoslog "cosmossdk.io/log"
	"github.com/ethereum/go-ethereum/common"

	"github.com/guilddao/guild-app/state"
	"github.com/guilddao/guild-app/tx"
)

type VoteTxHandler struct {
	logger cosmoslog.Logger
}

func NewVoteTxHandler(logger cosmoslog.Logger) (h *VoteTxHandler) {
	logger = logger.With("module", "voteTx")
	h = &VoteTxHandler{
		logger: logger,
	}
	return
}

func (h *VoteTxHandler) Check(ctx context.Context, st *state.State, btx *tx.GuildTx, sender common.Address, now uint64) error {
	vtx := btx.Tx.(*tx.VoteTx)
	_, err := st.CastVote(vtx, sender, now, true)
	if err != nil {
		h.logger.Info("check vote tx fail", "err", err)
	}
	return err
}

func (h *VoteTxHandler) Apply(ctx context.Context, st *state.State, btx *tx.GuildTx, sender common.Address, now uint64) error {
	vtx := btx.Tx.(*tx.VoteTx)
	_, err := st.CastVote(vtx, sender, now, false)
	return err
}
