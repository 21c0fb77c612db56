package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/guilddao/guild-app/tx"
)

type newProposalArguments struct {
	Url      string
	Kind     uint8
	Period   uint64
	Targets  []string
	Values   []int64
	Payloads []string
	Details  string
	Nonce    uint64
	Skey     string
	NoSend   bool
}

var newProposalArgs newProposalArguments

var newProposalCmd = &cobra.Command{
	Use:   "newproposal",
	Short: "queue a proposal for voting",
	Long: `Queue a proposal. Kind 1 runs external actions, kind 2 adjusts
member balances, kind 3 updates governance periods, kind 4 edits the
asset list. Targets, values and payloads are parallel arrays.`,
	Run: newProposalRun,
}

func init() {
	urlFlag(newProposalCmd, &newProposalArgs.Url)
	newProposalCmd.Flags().Uint8VarP(&newProposalArgs.Kind, "kind", "k", 1, "proposal kind")
	newProposalCmd.Flags().Uint64VarP(&newProposalArgs.Period, "period", "p", 60, "voting period in seconds")
	newProposalCmd.Flags().StringSliceVarP(&newProposalArgs.Targets, "target", "t", nil, "action target address, repeatable")
	newProposalCmd.Flags().Int64SliceVarP(&newProposalArgs.Values, "value", "v", nil, "action value, repeatable")
	newProposalCmd.Flags().StringSliceVarP(&newProposalArgs.Payloads, "payload", "l", nil, "hex action payload, repeatable")
	newProposalCmd.Flags().StringVarP(&newProposalArgs.Details, "details", "d", "", "proposal details")
	nonceFlag(newProposalCmd, &newProposalArgs.Nonce)
	keyFlag(newProposalCmd, &newProposalArgs.Skey)
	noSendFlag(newProposalCmd, &newProposalArgs.NoSend)
}

func newProposalRun(cmd *cobra.Command, args []string) {
	targets := make([]common.Address, 0, len(newProposalArgs.Targets))
	for _, t := range newProposalArgs.Targets {
		targets = append(targets, common.HexToAddress(t))
	}
	values := make([]uint64, 0, len(newProposalArgs.Values))
	for _, v := range newProposalArgs.Values {
		values = append(values, uint64(v))
	}
	payloads := make([][]byte, 0, len(newProposalArgs.Payloads))
	for _, p := range newProposalArgs.Payloads {
		raw, err := hex.DecodeString(strings.TrimPrefix(p, "0x"))
		if err != nil {
			fmt.Printf("decode payload err:%v\n", err)
			return
		}
		payloads = append(payloads, raw)
	}
	btx := &tx.GuildTx{
		Version: tx.GuildTxVersion1,
		Type:    tx.GuildTxTypeProposal,
		Tx: &tx.SubmitProposalTx{
			Kind:         newProposalArgs.Kind,
			VotingPeriod: newProposalArgs.Period,
			Targets:      targets,
			Values:       values,
			Payloads:     payloads,
			Details:      newProposalArgs.Details,
		},
	}
	signAndSend(newProposalArgs.Url, newProposalArgs.Skey, newProposalArgs.Nonce, btx, newProposalArgs.NoSend)
}
