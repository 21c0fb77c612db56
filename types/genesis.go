package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

type GenesisMember struct {
	Address common.Address `json:"address"`
	Loot    uint64         `json:"loot"`
	Shares  uint64         `json:"shares"`
	Name    string         `json:"name"`
}

// GenesisDoc defines the initial conditions of a guild: its
// configuration, founding members, privileged agents and custodied
// assets.
type GenesisDoc struct {
	GenesisTime time.Time        `json:"genesis_time"`
	ChainID     string           `json:"chain_id"`
	Config      OrgConfig        `json:"config"`
	Members     []GenesisMember  `json:"members"`
	Shamans     []common.Address `json:"shamans"`
	Assets      []common.Address `json:"assets"`
}

// SaveAs is a utility method for saving GenesisDoc as a JSON file.
func (genDoc *GenesisDoc) SaveAs(file string) error {
	genDocBytes, err := json.MarshalIndent(genDoc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(file, genDocBytes, 0o600)
}

func LoadGenesisDoc(file string) (*GenesisDoc, error) {
	dat, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	genDoc := new(GenesisDoc)
	if err := json.Unmarshal(dat, genDoc); err != nil {
		return nil, fmt.Errorf("invalid genesis file %s: %w", file, err)
	}
	return genDoc, nil
}

func (ag *GenesisDoc) ValidateAndComplete() error {
	if ag.ChainID == "" {
		return errors.New("genesis doc must include non-empty chain_id")
	}
	if ag.Config.MinVotingPeriod == 0 {
		return errors.New("min voting period cannot be 0")
	}
	if ag.Config.MaxVotingPeriod == 0 {
		return errors.New("max voting period cannot be 0")
	}
	if ag.Config.MinVotingPeriod > ag.Config.MaxVotingPeriod {
		return errors.New("min voting period exceeds max")
	}
	if len(ag.Members) == 0 {
		return errors.New("genesis doc must include at least one member")
	}
	var totalShares uint64
	for _, m := range ag.Members {
		if m.Address == (common.Address{}) {
			return errors.New("member address cannot be 0")
		}
		totalShares += m.Shares
	}
	if totalShares == 0 {
		return errors.New("genesis shares cannot be 0")
	}
	for _, s := range ag.Shamans {
		if s == (common.Address{}) {
			return errors.New("shaman cannot be 0")
		}
	}
	for _, a := range ag.Assets {
		if a == (common.Address{}) {
			return errors.New("asset cannot be 0")
		}
	}
	if ag.GenesisTime.IsZero() {
		ag.GenesisTime = time.Now().Round(0).UTC()
	}
	return nil
}

func ExportGenesisFile(genesis *GenesisDoc, genFile string) error {
	if err := genesis.ValidateAndComplete(); err != nil {
		return err
	}
	return genesis.SaveAs(genFile)
}
