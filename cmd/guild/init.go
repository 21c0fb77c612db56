package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	app_config "github.com/guilddao/guild-app/config"
	"github.com/guilddao/guild-app/crypto"
	"github.com/guilddao/guild-app/types"
)

type printInfo struct {
	ChainID    string          `json:"chain_id" yaml:"chain_id"`
	Member     string          `json:"member" yaml:"member"`
	GenFile    string          `json:"gen_file" yaml:"gen_file"`
	AppMessage json.RawMessage `json:"app_message,omitempty" yaml:"app_message"`
}

func displayInfo(info printInfo) error {
	out, err := json.MarshalIndent(info, "", " ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(os.Stderr, "%s\n", out)

	return err
}

var initArgs struct {
	Shares uint64
	Loot   uint64
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize member key, genesis, and application configuration files",
	Long:  `Initialize the guild home directory: member key, genesis.json and config.toml.`,
	Args:  cobra.ExactArgs(0),
	RunE:  initRun,
}

func init() {
	initCmd.Flags().BoolP(types.FlagOverwrite, "o", false, "overwrite the genesis.json file")
	initCmd.Flags().String(types.FlagChainID, "", "genesis file chain-id, if left blank will be randomly created")
	initCmd.Flags().String(types.FlagHome, "", "home directory")
	initCmd.Flags().Uint64Var(&initArgs.Shares, "shares", 100, "founding member voting shares")
	initCmd.Flags().Uint64Var(&initArgs.Loot, "loot", 0, "founding member loot")
}

func initRun(cmd *cobra.Command, args []string) error {
	home, _ := cmd.Flags().GetString(types.FlagHome)
	chainID, _ := cmd.Flags().GetString(types.FlagChainID)
	overwrite, _ := cmd.Flags().GetBool(types.FlagOverwrite)

	if chainID == "" {
		chainID = fmt.Sprintf("guild-%v", rand.Uint64())
	}

	cfg := app_config.DefaultConfig(home)

	pv, err := crypto.GenerateToFile(cfg.KeyFile())
	if err != nil {
		return fmt.Errorf("generate member key: %w", err)
	}

	genFile := cfg.GenesisFile()
	if _, err := os.Stat(genFile); err == nil && !overwrite {
		return errors.New("genesis.json file already exists: " + genFile)
	}

	genDoc := &types.GenesisDoc{
		GenesisTime: time.Now(),
		ChainID:     chainID,
		Config: types.OrgConfig{
			MinVotingPeriod: 60,
			MaxVotingPeriod: 60 * 60 * 24 * 30,
			GracePeriod:     60,
		},
		Members: []types.GenesisMember{{
			Address: pv.Address(),
			Loot:    initArgs.Loot,
			Shares:  initArgs.Shares,
			Name:    "founder",
		}},
		Shamans: []common.Address{pv.Address()},
	}
	if err := genDoc.ValidateAndComplete(); err != nil {
		return err
	}
	if err := types.ExportGenesisFile(genDoc, genFile); err != nil {
		return fmt.Errorf("Failed to export genesis file %v", err)
	}
	if err := app_config.WriteConfigFile(cfg.ConfigFile(), cfg); err != nil {
		return err
	}
	return displayInfo(printInfo{ChainID: chainID, Member: pv.Address().Hex(), GenFile: genFile})
}
