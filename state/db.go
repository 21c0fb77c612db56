package state

import (
	"sync"

	cosmoslog "cosmossdk.io/log"
	"github.com/cosmos/iavl"
	dbm "github.com/cosmos/iavl/db"
	"github.com/ethereum/go-ethereum/common"

	"github.com/guilddao/guild-app/types"
)

// StateDB serializes every state transition behind one exclusive
// lock. Each applied operation either commits a new tree version or
// rolls back entirely; reads and writes are never interleaved across
// operations.
type StateDB struct {
	mtx sync.Mutex

	dir    string
	logger cosmoslog.Logger
	db     *iavl.MutableTree

	state *State
	clock Clock
	sink  func(types.Event)
}

func NewStateDB(dir string, vault Vault, runner ActionRunner, clock Clock, logger cosmoslog.Logger) (db *StateDB, err error) {
	logger = logger.With("module", "guilddb")
	ldb, err := dbm.NewDB("guild", "goleveldb", dir)
	if err != nil {
		return nil, err
	}
	tdb := iavl.NewMutableTree(ldb, 128, true, logger)
	version, err := tdb.Load()
	if err != nil {
		return nil, err
	}
	logger.Info("load db success", "version", version)
	st := newState(tdb, vault, runner, logger)
	st.dbVer = version
	err = st.load()
	if err != nil {
		logger.Error("from guilddb load fail", "err", err)
		return nil, err
	}
	db = &StateDB{
		dir:    dir,
		logger: logger,
		db:     tdb,
		state:  st,
		clock:  clock,
	}
	return
}

func (db *StateDB) Close() (err error) {
	err = db.db.Close()
	return
}

// SetEventSink registers the consumer of committed events. The sink
// runs under the apply lock and must not block.
func (db *StateDB) SetEventSink(sink func(types.Event)) {
	db.mtx.Lock()
	defer db.mtx.Unlock()
	db.sink = sink
}

// Apply runs one whole operation against the state, sampling the
// clock exactly once. On any error the working tree and header are
// restored; on success a new version is persisted and events flow to
// the sink.
func (db *StateDB) Apply(fn func(st *State, now uint64) error) (hash common.Hash, err error) {
	db.mtx.Lock()
	defer db.mtx.Unlock()
	now := db.clock.Now()
	saved := db.state.header.Clone()
	if err = fn(db.state, now); err != nil {
		db.state.rollback()
		db.state.header = saved
		return
	}
	hash, err = db.state.commit()
	if err != nil {
		db.state.rollback()
		db.state.header = saved
		return
	}
	events := db.state.drainEvents()
	if db.sink != nil {
		for _, ev := range events {
			db.sink(ev)
		}
	}
	return
}

// Check runs a read-only validation pass of an operation without
// touching persisted state.
func (db *StateDB) Check(fn func(st *State, now uint64) error) error {
	db.mtx.Lock()
	defer db.mtx.Unlock()
	now := db.clock.Now()
	saved := db.state.header.Clone()
	err := fn(db.state, now)
	db.state.rollback()
	db.state.header = saved
	return err
}

func (db *StateDB) Header() (header *StateHeader) {
	db.mtx.Lock()
	defer db.mtx.Unlock()
	return db.state.header.Clone()
}

func (db *StateDB) GetMember(addr common.Address) (m *Member, height uint64, err error) {
	db.mtx.Lock()
	defer db.mtx.Unlock()
	m, err = db.state.GetMember(addr)
	if err != nil {
		return nil, 0, err
	}
	return m.Clone(), db.state.header.Height, nil
}

func (db *StateDB) GetProposal(idx uint64) (p *types.Proposal, err error) {
	db.mtx.Lock()
	defer db.mtx.Unlock()
	return db.state.GetProposal(idx)
}

func (db *StateDB) GetVote(idx uint64, voter common.Address) (v *types.Vote, err error) {
	db.mtx.Lock()
	defer db.mtx.Unlock()
	return db.state.GetVote(idx, voter)
}

func (db *StateDB) Checkpoints(member common.Address) ([]types.Checkpoint, error) {
	db.mtx.Lock()
	defer db.mtx.Unlock()
	return db.state.getCheckpoints(member)
}

// WeightAt answers the historical vote-weight query against the
// current clock sample.
func (db *StateDB) WeightAt(member common.Address, unit uint64) (uint64, error) {
	db.mtx.Lock()
	defer db.mtx.Unlock()
	return db.state.WeightAt(member, unit, db.clock.Now())
}

func (db *StateDB) CurrentWeight(member common.Address) (uint64, error) {
	db.mtx.Lock()
	defer db.mtx.Unlock()
	return db.state.CurrentWeight(member)
}
