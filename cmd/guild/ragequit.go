package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/guilddao/guild-app/crypto"
	"github.com/guilddao/guild-app/tx"
)

type ragequitArguments struct {
	Url       string
	Recipient string
	Loot      uint64
	Shares    uint64
	Nonce     uint64
	Skey      string
	NoSend    bool
}

var ragequitArgs ragequitArguments

var ragequitCmd = &cobra.Command{
	Use:   "ragequit",
	Short: "burn shares and loot for a proportional share of guild assets",
	Long:  ``,
	Run:   ragequitRun,
}

func init() {
	urlFlag(ragequitCmd, &ragequitArgs.Url)
	ragequitCmd.Flags().StringVarP(&ragequitArgs.Recipient, "recipient", "r", "", "payout recipient, defaults to the sender")
	ragequitCmd.Flags().Uint64VarP(&ragequitArgs.Loot, "loot", "l", 0, "loot to burn")
	ragequitCmd.Flags().Uint64VarP(&ragequitArgs.Shares, "shares", "m", 0, "shares to burn")
	nonceFlag(ragequitCmd, &ragequitArgs.Nonce)
	keyFlag(ragequitCmd, &ragequitArgs.Skey)
	noSendFlag(ragequitCmd, &ragequitArgs.NoSend)
}

func ragequitRun(cmd *cobra.Command, args []string) {
	recipient := common.HexToAddress(ragequitArgs.Recipient)
	if ragequitArgs.Recipient == "" {
		pv, err := crypto.LoadFilePV(ragequitArgs.Skey)
		if err != nil {
			fmt.Printf("load key err:%v\n", err)
			return
		}
		recipient = pv.Address()
	}
	btx := &tx.GuildTx{
		Version: tx.GuildTxVersion1,
		Type:    tx.GuildTxTypeRagequit,
		Tx: &tx.RagequitTx{
			Recipient: recipient,
			Loot:      ragequitArgs.Loot,
			Shares:    ragequitArgs.Shares,
		},
	}
	signAndSend(ragequitArgs.Url, ragequitArgs.Skey, ragequitArgs.Nonce, btx, ragequitArgs.NoSend)
}
