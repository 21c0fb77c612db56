package main

import (
	"github.com/spf13/cobra"

	"github.com/guilddao/guild-app/tx"
)

type voteArguments struct {
	Url      string
	Proposal uint64
	Against  bool
	Nonce    uint64
	Skey     string
	NoSend   bool
}

var voteArgs voteArguments

var voteCmd = &cobra.Command{
	Use:   "vote",
	Short: "cast a vote on a queued proposal",
	Long:  ``,
	Run:   voteRun,
}

func init() {
	urlFlag(voteCmd, &voteArgs.Url)
	voteCmd.Flags().Uint64VarP(&voteArgs.Proposal, "proposal", "p", 0, "proposal index")
	voteCmd.Flags().BoolVarP(&voteArgs.Against, "against", "a", false, "vote against rather than for")
	nonceFlag(voteCmd, &voteArgs.Nonce)
	keyFlag(voteCmd, &voteArgs.Skey)
	noSendFlag(voteCmd, &voteArgs.NoSend)
}

func voteRun(cmd *cobra.Command, args []string) {
	btx := &tx.GuildTx{
		Version: tx.GuildTxVersion1,
		Type:    tx.GuildTxTypeVote,
		Tx: &tx.VoteTx{
			Proposal: voteArgs.Proposal,
			Support:  !voteArgs.Against,
		},
	}
	signAndSend(voteArgs.Url, voteArgs.Skey, voteArgs.Nonce, btx, voteArgs.NoSend)
}
