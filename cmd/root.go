package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "payment-gateway",
	Short: "Payment gateway adapter",
	Long:  "A thin HTTP adapter that creates Stripe payment intents and verifies Stripe webhook notifications.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
