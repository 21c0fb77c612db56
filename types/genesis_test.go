package types

import (
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validGenesis() *GenesisDoc {
	return &GenesisDoc{
		ChainID: "guild-test",
		Config: OrgConfig{
			MinVotingPeriod: 10,
			MaxVotingPeriod: 100,
			GracePeriod:     10,
		},
		Members: []GenesisMember{
			{Address: common.BytesToAddress([]byte{1}), Shares: 100},
		},
	}
}

func TestValidateAndComplete(t *testing.T) {
	g := validGenesis()
	require.NoError(t, g.ValidateAndComplete())
	assert.False(t, g.GenesisTime.IsZero())

	cases := []struct {
		name string
		mut  func(g *GenesisDoc)
	}{
		{"empty chain id", func(g *GenesisDoc) { g.ChainID = "" }},
		{"zero min period", func(g *GenesisDoc) { g.Config.MinVotingPeriod = 0 }},
		{"zero max period", func(g *GenesisDoc) { g.Config.MaxVotingPeriod = 0 }},
		{"min above max", func(g *GenesisDoc) { g.Config.MinVotingPeriod = 1000 }},
		{"no members", func(g *GenesisDoc) { g.Members = nil }},
		{"zero member address", func(g *GenesisDoc) { g.Members[0].Address = common.Address{} }},
		{"no shares", func(g *GenesisDoc) { g.Members[0].Shares = 0 }},
		{"zero shaman", func(g *GenesisDoc) { g.Shamans = []common.Address{{}} }},
		{"zero asset", func(g *GenesisDoc) { g.Assets = []common.Address{{}} }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := validGenesis()
			c.mut(g)
			assert.Error(t, g.ValidateAndComplete())
		})
	}
}

func TestGenesisRoundTrip(t *testing.T) {
	g := validGenesis()
	g.Shamans = []common.Address{common.BytesToAddress([]byte{2})}
	g.Assets = []common.Address{common.BytesToAddress([]byte{3})}

	file := filepath.Join(t.TempDir(), "genesis.json")
	require.NoError(t, ExportGenesisFile(g, file))

	got, err := LoadGenesisDoc(file)
	require.NoError(t, err)
	assert.Equal(t, g.ChainID, got.ChainID)
	assert.Equal(t, g.Config, got.Config)
	assert.Equal(t, g.Members, got.Members)
	assert.Equal(t, g.Shamans, got.Shamans)
	assert.Equal(t, g.Assets, got.Assets)
}

func TestLoadGenesisDocMissing(t *testing.T) {
	_, err := LoadGenesisDoc(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
