package main

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/guilddao/guild-app/tx"
)

type shamanArguments struct {
	Url    string
	Shaman string
	Nonce  uint64
	Skey   string
	NoSend bool
}

var shamanArgs shamanArguments

var shamanCmd = &cobra.Command{
	Use:   "grantshaman",
	Short: "grant another address the privileged balance-adjust role",
	Long:  ``,
	Run:   shamanRun,
}

func init() {
	urlFlag(shamanCmd, &shamanArgs.Url)
	shamanCmd.Flags().StringVarP(&shamanArgs.Shaman, "shaman", "a", "", "address to grant")
	nonceFlag(shamanCmd, &shamanArgs.Nonce)
	keyFlag(shamanCmd, &shamanArgs.Skey)
	noSendFlag(shamanCmd, &shamanArgs.NoSend)
}

func shamanRun(cmd *cobra.Command, args []string) {
	btx := &tx.GuildTx{
		Version: tx.GuildTxVersion1,
		Type:    tx.GuildTxTypeShamanGrant,
		Tx: &tx.ShamanGrantTx{
			Shaman: common.HexToAddress(shamanArgs.Shaman),
		},
	}
	signAndSend(shamanArgs.Url, shamanArgs.Skey, shamanArgs.Nonce, btx, shamanArgs.NoSend)
}

type memberActionArguments struct {
	Url         string
	Member      string
	LootDelta   int64
	SharesDelta int64
	Nonce       uint64
	Skey        string
	NoSend      bool
}

var memberActionArgs memberActionArguments

var memberActionCmd = &cobra.Command{
	Use:   "memberaction",
	Short: "mint or burn a member's balances, shaman only",
	Long:  ``,
	Run:   memberActionRun,
}

func init() {
	urlFlag(memberActionCmd, &memberActionArgs.Url)
	memberActionCmd.Flags().StringVarP(&memberActionArgs.Member, "member", "a", "", "member address")
	memberActionCmd.Flags().Int64VarP(&memberActionArgs.LootDelta, "loot", "l", 0, "signed loot delta")
	memberActionCmd.Flags().Int64VarP(&memberActionArgs.SharesDelta, "shares", "m", 0, "signed shares delta")
	nonceFlag(memberActionCmd, &memberActionArgs.Nonce)
	keyFlag(memberActionCmd, &memberActionArgs.Skey)
	noSendFlag(memberActionCmd, &memberActionArgs.NoSend)
}

func memberActionRun(cmd *cobra.Command, args []string) {
	btx := &tx.GuildTx{
		Version: tx.GuildTxVersion1,
		Type:    tx.GuildTxTypeMemberAction,
		Tx: &tx.MemberActionTx{
			Member:      common.HexToAddress(memberActionArgs.Member),
			LootDelta:   memberActionArgs.LootDelta,
			SharesDelta: memberActionArgs.SharesDelta,
		},
	}
	signAndSend(memberActionArgs.Url, memberActionArgs.Skey, memberActionArgs.Nonce, btx, memberActionArgs.NoSend)
}
