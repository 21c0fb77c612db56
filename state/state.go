package state

import (
	"encoding/json"
	"errors"
	"fmt"

	cosmoslog "cosmossdk.io/log"
	"github.com/cosmos/iavl"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/guilddao/guild-app/types"
)

const (
	// MaxActionItems bounds the parallel action arrays of one proposal.
	MaxActionItems = 10
)

var (
	ErrNotFound = errors.New("not found")
)

var (
	KeyState       = "s"
	KeyMemberBody  = "m%x"
	KeyCheckpoints = "c%x"
	KeyProposal    = "p%v"
	KeyVote        = "v%v:%x"
)

var (
	ErrMemberNoexists         = errors.New("member noexists")
	ErrProposalNoexists       = errors.New("proposal noexists")
	ErrVotingPeriodOutOfRange = errors.New("voting period out of range")
	ErrArrayParity            = errors.New("action array parity")
	ErrTooManyActions         = errors.New("action array max")
	ErrInvalidProposalKind    = errors.New("invalid proposal kind")
	ErrVotingEnded            = errors.New("voting ended")
	ErrAlreadyVoted           = errors.New("already voted")
	ErrPrevUnprocessed        = errors.New("previous proposal unprocessed")
	ErrNotReadyForProcessing  = errors.New("grace period not elapsed")
	ErrAlreadyProcessed       = errors.New("already processed")
	ErrInsufficientBalance    = errors.New("insufficient balance")
	ErrBalanceOverflow        = errors.New("balance overflow")
	ErrPendingYesVote         = errors.New("yes vote pending processing")
	ErrUnitNotDetermined      = errors.New("unit not determined")
	ErrSharesPaused           = errors.New("shares paused")
	ErrLootPaused             = errors.New("loot paused")
	ErrUnauthorizedAgent      = errors.New("unauthorized agent")
	ErrTxNonceInvalid         = errors.New("nonce invalid")
	ErrTxSigInvalid           = errors.New("signature invalid")
	ErrAlreadyInitialized     = errors.New("state already initialized")
)

// StateHeader carries the aggregates and configuration that every
// operation reads: running totals, the proposal count, the strict
// processing cursor and the organization configuration.
type StateHeader struct {
	ChainId       string           `json:"chain_id"`
	Height        uint64           `json:"height"`
	Hash          []byte           `json:"hash"`
	RootHash      []byte           `json:"root_hash"`
	TotalShares   uint64           `json:"total_shares"`
	TotalLoot     uint64           `json:"total_loot"`
	ProposalCount uint64           `json:"proposal_count"`
	LastProcessed uint64           `json:"last_processed"`
	Config        types.OrgConfig  `json:"config"`
	Shamans       []common.Address `json:"shamans"`
	Assets        []common.Address `json:"assets"`
}

func (h *StateHeader) Clone() *StateHeader {
	n := *h
	n.Hash = append([]byte(nil), h.Hash...)
	n.RootHash = append([]byte(nil), h.RootHash...)
	n.Shamans = append([]common.Address(nil), h.Shamans...)
	n.Assets = append([]common.Address(nil), h.Assets...)
	return &n
}

func (h *StateHeader) IsShaman(addr common.Address) bool {
	for _, s := range h.Shamans {
		if s == addr {
			return true
		}
	}
	return false
}

func (h *StateHeader) IsAsset(addr common.Address) bool {
	for _, a := range h.Assets {
		if a == addr {
			return true
		}
	}
	return false
}

// State is the serialized governance state machine over an iavl
// working tree. Mutations accumulate in the working tree and the
// in-memory header until save; a failed operation rolls both back.
type State struct {
	logger cosmoslog.Logger
	db     *iavl.MutableTree
	dbVer  int64

	header *StateHeader

	vault  Vault
	runner ActionRunner

	events []types.Event
}

func newState(db *iavl.MutableTree, vault Vault, runner ActionRunner, logger cosmoslog.Logger) *State {
	return &State{
		logger: logger,
		db:     db,
		dbVer:  0,
		header: new(StateHeader),
		vault:  vault,
		runner: runner,
	}
}

func (s *State) load() (err error) {
	val, err := s.db.Get([]byte(KeyState))
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil
		}
		return err
	}
	if val != nil {
		err = json.Unmarshal(val, s.header)
		if err != nil {
			return
		}
		h := s.db.Hash()
		if h != nil {
			s.calcHash(h, true)
		}
	}
	return
}

func (s *State) calcHash(rootHash []byte, update bool) (h common.Hash) {
	h = crypto.Keccak256Hash(rootHash)
	if update {
		s.header.RootHash = append(s.header.RootHash[:0], rootHash...)
		s.header.Hash = append(s.header.Hash[:0], h[:]...)
	}
	return
}

// commit writes the header into the tree and persists a new version.
func (s *State) commit() (h common.Hash, err error) {
	s.header.Height += 1
	val, err := json.Marshal(s.header)
	if err != nil {
		return
	}
	_, err = s.db.Set([]byte(KeyState), val)
	if err != nil {
		return
	}
	hash, ver, err := s.db.SaveVersion()
	if err != nil {
		return h, err
	}
	s.dbVer = ver
	h = s.calcHash(hash, true)
	return
}

// rollback discards all working-tree writes since the last saved
// version. The caller is responsible for restoring the header copy.
func (s *State) rollback() {
	s.db.Rollback()
	s.events = nil
}

func (s *State) emit(typ string, unit uint64, body any) {
	s.events = append(s.events, types.Event{Type: typ, Unit: unit, Body: body})
}

func (s *State) drainEvents() []types.Event {
	ev := s.events
	s.events = nil
	return ev
}

func (s *State) Header() *StateHeader {
	return s.header
}

func (s *State) Hash() (h common.Hash) {
	if s.header.Hash != nil {
		copy(h[:], s.header.Hash)
	}
	return
}

func (s *State) SetChainId(chainId string) {
	s.header.ChainId = chainId
}

// getRecord unmarshals the JSON record at key into out; ErrNotFound if
// the key is absent.
func (s *State) getRecord(key string, out any) error {
	val, err := s.db.Get([]byte(key))
	if err != nil {
		if err == leveldb.ErrNotFound {
			return ErrNotFound
		}
		return err
	}
	if val == nil {
		return ErrNotFound
	}
	return json.Unmarshal(val, out)
}

func (s *State) setRecord(key string, rec any) error {
	val, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = s.db.Set([]byte(key), val)
	return err
}

func (s *State) GetProposal(idx uint64) (proposal *types.Proposal, err error) {
	if idx == 0 || idx > s.header.ProposalCount {
		return nil, ErrProposalNoexists
	}
	proposal = new(types.Proposal)
	err = s.getRecord(fmt.Sprintf(KeyProposal, idx), proposal)
	if err != nil {
		return nil, err
	}
	return
}

func (s *State) GetVote(idx uint64, voter common.Address) (vote *types.Vote, err error) {
	vote = new(types.Vote)
	err = s.getRecord(fmt.Sprintf(KeyVote, idx, voter), vote)
	if err != nil {
		return nil, err
	}
	return
}

// Verify checks a transaction's nonce and recovers its signer,
// returning the sender address. The signature is over the
// chain-id-salted canonical encoding.
func (s *State) Verify(dat []byte, sig []byte, nonce uint64) (sender common.Address, err error) {
	if len(sig) != crypto.SignatureLength {
		return sender, ErrTxSigInvalid
	}
	pub, err := crypto.SigToPub(crypto.Keccak256(dat), sig)
	if err != nil {
		return sender, ErrTxSigInvalid
	}
	sender = crypto.PubkeyToAddress(*pub)
	m, err := s.GetMember(sender)
	if err != nil && err != ErrNotFound {
		return sender, err
	}
	var have uint64
	if m != nil {
		have = m.Nonce
	}
	if have != nonce {
		return sender, ErrTxNonceInvalid
	}
	return sender, nil
}

// BumpNonce advances the sender's replay counter, creating an empty
// member record for first-time actors.
func (s *State) BumpNonce(sender common.Address) error {
	m, err := s.GetMember(sender)
	if err == ErrNotFound {
		m = &Member{Address: sender}
		err = nil
	}
	if err != nil {
		return err
	}
	m.Nonce += 1
	return s.setMember(m)
}
