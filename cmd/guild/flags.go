package main

import "github.com/spf13/cobra"

func urlFlag(cmd *cobra.Command, url *string) {
	cmd.Flags().StringVarP(url, "url", "u", "http://127.0.0.1:8547", "guild service url")
}

func keyFlag(cmd *cobra.Command, key *string) {
	cmd.Flags().StringVarP(key, "skeyPath", "s", "./config/member_key", "private key path")
}

func nonceFlag(cmd *cobra.Command, nonce *uint64) {
	cmd.Flags().Uint64VarP(nonce, "nonce", "n", 0, "sender nonce, 0 queries the service")
}

func noSendFlag(cmd *cobra.Command, noSend *bool) {
	cmd.Flags().BoolVarP(noSend, "nosend", "", false, "not send transaction but print signature")
}
