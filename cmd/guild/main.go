package main

import (
	"fmt"
	"os"
)

func main() {
	guildCmd.AddCommand(initCmd)
	guildCmd.AddCommand(versionCmd)
	guildCmd.AddCommand(memberCmd)
	guildCmd.AddCommand(newProposalCmd)
	guildCmd.AddCommand(voteCmd)
	guildCmd.AddCommand(processCmd)
	guildCmd.AddCommand(ragequitCmd)
	guildCmd.AddCommand(transferCmd)
	guildCmd.AddCommand(shamanCmd)
	guildCmd.AddCommand(memberActionCmd)
	if err := guildCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
