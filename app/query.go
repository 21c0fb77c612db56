package app

import (
	"context"
	"encoding/json"

	cosmoslog "cosmossdk.io/log"
	"github.com/ethereum/go-ethereum/common"

	"github.com/guilddao/guild-app/state"
)

type QueryRequest struct {
	Path string `json:"path"`
	Data []byte `json:"data"`
}

type QueryResponse struct {
	Code   uint32 `json:"code"`
	Height uint64 `json:"height"`
	Value  []byte `json:"value"`
}

type Querier interface {
	Query(ctx context.Context, req *QueryRequest) (res *QueryResponse, err error)
}

func (app *GuildApp) registerQuerier() {
	app.queriers = map[string]Querier{
		"/members/":     NewMemberQuerier(app.db, app.logger),
		"/checkpoints/": NewCheckpointQuerier(app.db, app.logger),
		"/header/":      NewHeaderQuerier(app.db, app.logger),
	}
}

func (app *GuildApp) Query(ctx context.Context, req *QueryRequest) (res *QueryResponse, err error) {
	q, ok := app.queriers[req.Path]
	if !ok {
		return &QueryResponse{Code: 404}, nil
	}
	return q.Query(ctx, req)
}

type MemberQuerier struct {
	db     *state.StateDB
	logger cosmoslog.Logger
}

func NewMemberQuerier(db *state.StateDB, logger cosmoslog.Logger) (q *MemberQuerier) {
	q = &MemberQuerier{
		db:     db,
		logger: logger,
	}
	return
}

func (q *MemberQuerier) Query(ctx context.Context, req *QueryRequest) (res *QueryResponse, err error) {
	res = &QueryResponse{}
	if len(req.Data) != common.AddressLength {
		res.Code = 1
		return
	}
	m, height, err := q.db.GetMember(common.BytesToAddress(req.Data))
	if err != nil {
		res.Code = 1
		return res, nil
	}
	res.Height = height
	res.Value, _ = json.Marshal(m)
	return
}

type CheckpointQuerier struct {
	db     *state.StateDB
	logger cosmoslog.Logger
}

func NewCheckpointQuerier(db *state.StateDB, logger cosmoslog.Logger) (q *CheckpointQuerier) {
	q = &CheckpointQuerier{
		db:     db,
		logger: logger,
	}
	return
}

func (q *CheckpointQuerier) Query(ctx context.Context, req *QueryRequest) (res *QueryResponse, err error) {
	res = &QueryResponse{}
	if len(req.Data) != common.AddressLength {
		res.Code = 1
		return
	}
	cps, err := q.db.Checkpoints(common.BytesToAddress(req.Data))
	if err != nil {
		res.Code = 1
		return res, nil
	}
	res.Value, _ = json.Marshal(cps)
	return
}

// HeaderQuerier serves totals, configuration, the processing cursor
// and the agent/asset sets in one read.
type HeaderQuerier struct {
	db     *state.StateDB
	logger cosmoslog.Logger
}

func NewHeaderQuerier(db *state.StateDB, logger cosmoslog.Logger) (q *HeaderQuerier) {
	q = &HeaderQuerier{
		db:     db,
		logger: logger,
	}
	return
}

func (q *HeaderQuerier) Query(ctx context.Context, req *QueryRequest) (res *QueryResponse, err error) {
	res = &QueryResponse{}
	header := q.db.Header()
	res.Height = header.Height
	res.Value, _ = json.Marshal(header)
	return
}
