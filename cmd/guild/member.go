package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guilddao/guild-app/crypto"
)

type memberArguments struct {
	Url     string
	Address string
	KeyPath string
}

var memberArgs memberArguments

var memberCmd = &cobra.Command{
	Use:   "member",
	Short: "query a member's balances, checkpoints and nonce",
	Long:  ``,
	Run:   memberRun,
}

func init() {
	urlFlag(memberCmd, &memberArgs.Url)
	memberCmd.Flags().StringVarP(&memberArgs.Address, "address", "a", "", "member address, defaults to the local key's")
	keyFlag(memberCmd, &memberArgs.KeyPath)
}

func memberRun(cmd *cobra.Command, args []string) {
	address := memberArgs.Address
	if address == "" {
		pv, err := crypto.LoadFilePV(memberArgs.KeyPath)
		if err != nil {
			fmt.Printf("load key err:%v\n", err)
			return
		}
		address = pv.Address().Hex()
	}
	m, err := queryMember(memberArgs.Url, address)
	if err != nil || m == nil {
		return
	}
	fmt.Printf("addr:%v shares:%v loot:%v nonce:%v highestYesVote:%v\n",
		m.Address.Hex(), m.Shares, m.Loot, m.Nonce, m.HighestYesVote)
}
