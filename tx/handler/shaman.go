package handler

import (
	"context"

	cosmoslog "cosmossdk.io/log"
	"github.com/ethereum/go-ethereum/common"

	"github.com/guilddao/guild-app/state"
	"github.com/guilddao/guild-app/tx"
)

// MemberActionTxHandler is the privileged-agent balance path: an
// authorized shaman mints or burns claims outside the proposal flow.
type MemberActionTxHandler struct {
	logger cosmoslog.Logger
}

func NewMemberActionTxHandler(logger cosmoslog.Logger) (h *MemberActionTxHandler) {
	logger = logger.With("module", "memberActionTx")
	h = &MemberActionTxHandler{
		logger: logger,
	}
	return
}

func (h *MemberActionTxHandler) Check(ctx context.Context, st *state.State, btx *tx.GuildTx, sender common.Address, now uint64) error {
	atx := btx.Tx.(*tx.MemberActionTx)
	err := st.AdjustBalances(sender, atx.Member, atx.LootDelta, atx.SharesDelta, now, true)
	if err != nil {
		h.logger.Info("check member action tx fail", "err", err)
	}
	return err
}

func (h *MemberActionTxHandler) Apply(ctx context.Context, st *state.State, btx *tx.GuildTx, sender common.Address, now uint64) error {
	atx := btx.Tx.(*tx.MemberActionTx)
	return st.AdjustBalances(sender, atx.Member, atx.LootDelta, atx.SharesDelta, now, false)
}

type ShamanGrantTxHandler struct {
	logger cosmoslog.Logger
}

func NewShamanGrantTxHandler(logger cosmoslog.Logger) (h *ShamanGrantTxHandler) {
	logger = logger.With("module", "shamanGrantTx")
	h = &ShamanGrantTxHandler{
		logger: logger,
	}
	return
}

func (h *ShamanGrantTxHandler) Check(ctx context.Context, st *state.State, btx *tx.GuildTx, sender common.Address, now uint64) error {
	gtx := btx.Tx.(*tx.ShamanGrantTx)
	err := st.GrantShaman(sender, gtx.Shaman, now, true)
	if err != nil {
		h.logger.Info("check shaman grant tx fail", "err", err)
	}
	return err
}

func (h *ShamanGrantTxHandler) Apply(ctx context.Context, st *state.State, btx *tx.GuildTx, sender common.Address, now uint64) error {
	gtx := btx.Tx.(*tx.ShamanGrantTx)
	return st.GrantShaman(sender, gtx.Shaman, now, false)
}
