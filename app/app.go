package app

import (
	"context"

	cosmoslog "cosmossdk.io/log"
	"github.com/ethereum/go-ethereum/common"

	"github.com/guilddao/guild-app/config"
	"github.com/guilddao/guild-app/state"
	"github.com/guilddao/guild-app/tx"
	"github.com/guilddao/guild-app/tx/handler"
	"github.com/guilddao/guild-app/types"
)

// GuildApp wires the state machine to its collaborators and owns
// transaction dispatch. Serialization of state transitions lives in
// the StateDB lock; the app never touches the tree outside it.
type GuildApp struct {
	cfg    *config.GuildAppConfig
	logger cosmoslog.Logger

	db       *state.StateDB
	txHdlrs  map[tx.GuildTxType]handler.TxHandler
	queriers map[string]Querier
}

func NewGuildApp(cfg *config.GuildAppConfig, vault state.Vault, runner state.ActionRunner, clock state.Clock, logger cosmoslog.Logger) (app *GuildApp, err error) {
	logger = logger.With("module", "app")

	dir := cfg.Home + "/data"
	db, err := state.NewStateDB(dir, vault, runner, clock, logger)
	if err != nil {
		return nil, err
	}

	app = &GuildApp{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		txHdlrs:  make(map[tx.GuildTxType]handler.TxHandler),
		queriers: make(map[string]Querier),
	}
	app.registerTxHandler()
	app.registerQuerier()
	return
}

func (app *GuildApp) Stop() {
	err := app.db.Close()
	if err != nil {
		app.logger.Error("close db fail", "err", err)
	}
	app.logger.Info("guild app stopped")
}

func (app *GuildApp) DB() *state.StateDB {
	return app.db
}

func (app *GuildApp) registerTxHandler() {
	app.txHdlrs = map[tx.GuildTxType]handler.TxHandler{
		tx.GuildTxTypeProposal:     handler.NewProposalTxHandler(app.logger),
		tx.GuildTxTypeVote:         handler.NewVoteTxHandler(app.logger),
		tx.GuildTxTypeProcess:      handler.NewProcessTxHandler(app.logger),
		tx.GuildTxTypeRagequit:     handler.NewRagequitTxHandler(app.logger),
		tx.GuildTxTypeTransfer:     handler.NewTransferTxHandler(app.logger),
		tx.GuildTxTypeMemberAction: handler.NewMemberActionTxHandler(app.logger),
		tx.GuildTxTypeShamanGrant:  handler.NewShamanGrantTxHandler(app.logger),
	}
}

// InitChain seeds an empty state from the genesis document: chain id,
// organization configuration, privileged agents, custodied assets and
// founding member balances.
func (app *GuildApp) InitChain(genDoc *types.GenesisDoc) (hash common.Hash, err error) {
	if err = genDoc.ValidateAndComplete(); err != nil {
		return
	}
	return app.db.Apply(func(st *state.State, now uint64) error {
		if st.Header().Height != 0 {
			return state.ErrAlreadyInitialized
		}
		st.SetChainId(genDoc.ChainID)
		h := st.Header()
		h.Config = genDoc.Config
		h.Shamans = append([]common.Address(nil), genDoc.Shamans...)
		h.Assets = append([]common.Address(nil), genDoc.Assets...)
		for _, m := range genDoc.Members {
			if err := st.InitMember(m.Address, m.Loot, m.Shares, now); err != nil {
				return err
			}
		}
		return nil
	})
}

// ExecTx verifies and applies one raw transaction: unmarshal, recover
// and nonce-check the sender, dispatch to the type handler, bump the
// nonce. Everything runs inside a single exclusive apply.
func (app *GuildApp) ExecTx(ctx context.Context, raw []byte) (hash common.Hash, err error) {
	btx, err := tx.UnmarshalGuildTx(raw)
	if err != nil {
		return
	}
	if btx.Version != tx.GuildTxVersion1 {
		return hash, tx.ErrUnsupportedTxVersion
	}
	h, ok := app.txHdlrs[btx.Type]
	if !ok {
		return hash, tx.ErrUnsupportedTxType
	}
	return app.db.Apply(func(st *state.State, now uint64) error {
		sender, err := app.verify(st, btx)
		if err != nil {
			return err
		}
		if err := h.Apply(ctx, st, btx, sender, now); err != nil {
			return err
		}
		return st.BumpNonce(sender)
	})
}

// CheckTx runs the handler's read-only validation, for callers that
// want a cheap pre-flight before submitting.
func (app *GuildApp) CheckTx(ctx context.Context, raw []byte) error {
	btx, err := tx.UnmarshalGuildTx(raw)
	if err != nil {
		return err
	}
	if btx.Version != tx.GuildTxVersion1 {
		return tx.ErrUnsupportedTxVersion
	}
	h, ok := app.txHdlrs[btx.Type]
	if !ok {
		return tx.ErrUnsupportedTxType
	}
	return app.db.Check(func(st *state.State, now uint64) error {
		sender, err := app.verify(st, btx)
		if err != nil {
			return err
		}
		return h.Check(ctx, st, btx, sender, now)
	})
}

func (app *GuildApp) verify(st *state.State, btx *tx.GuildTx) (sender common.Address, err error) {
	dat, err := btx.SigData([]byte(st.Header().ChainId))
	if err != nil {
		return
	}
	return st.Verify(dat, btx.Sig, btx.Nonce)
}
