package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "hms-client",
		Short:         "Hospital management client",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(signupCmd())
	rootCmd.AddCommand(logoutCmd())
	rootCmd.AddCommand(chatsCmd())
	rootCmd.AddCommand(appointmentsCmd())
	rootCmd.AddCommand(bloodBankCmd())
	return rootCmd
}
