package main

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/guilddao/guild-app/tx"
)

type transferArguments struct {
	Url    string
	To     string
	Loot   uint64
	Shares uint64
	Nonce  uint64
	Skey   string
	NoSend bool
}

var transferArgs transferArguments

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "move loot or shares to another member",
	Long:  ``,
	Run:   transferRun,
}

func init() {
	urlFlag(transferCmd, &transferArgs.Url)
	transferCmd.Flags().StringVarP(&transferArgs.To, "to", "t", "", "recipient member address")
	transferCmd.Flags().Uint64VarP(&transferArgs.Loot, "loot", "l", 0, "loot to move")
	transferCmd.Flags().Uint64VarP(&transferArgs.Shares, "shares", "m", 0, "shares to move")
	nonceFlag(transferCmd, &transferArgs.Nonce)
	keyFlag(transferCmd, &transferArgs.Skey)
	noSendFlag(transferCmd, &transferArgs.NoSend)
}

func transferRun(cmd *cobra.Command, args []string) {
	btx := &tx.GuildTx{
		Version: tx.GuildTxVersion1,
		Type:    tx.GuildTxTypeTransfer,
		Tx: &tx.TransferTx{
			To:     common.HexToAddress(transferArgs.To),
			Loot:   transferArgs.Loot,
			Shares: transferArgs.Shares,
		},
	}
	signAndSend(transferArgs.Url, transferArgs.Skey, transferArgs.Nonce, btx, transferArgs.NoSend)
}
