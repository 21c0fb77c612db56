package main

import (
	"github.com/spf13/cobra"

	"github.com/guilddao/guild-app/tx"
)

type processArguments struct {
	Url      string
	Proposal uint64
	Nonce    uint64
	Skey     string
	NoSend   bool
}

var processArgs processArguments

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "retire the next proposal in the queue",
	Long:  ``,
	Run:   processRun,
}

func init() {
	urlFlag(processCmd, &processArgs.Url)
	processCmd.Flags().Uint64VarP(&processArgs.Proposal, "proposal", "p", 0, "proposal index")
	nonceFlag(processCmd, &processArgs.Nonce)
	keyFlag(processCmd, &processArgs.Skey)
	noSendFlag(processCmd, &processArgs.NoSend)
}

func processRun(cmd *cobra.Command, args []string) {
	btx := &tx.GuildTx{
		Version: tx.GuildTxVersion1,
		Type:    tx.GuildTxTypeProcess,
		Tx: &tx.ProcessTx{
			Proposal: processArgs.Proposal,
		},
	}
	signAndSend(processArgs.Url, processArgs.Skey, processArgs.Nonce, btx, processArgs.NoSend)
}
