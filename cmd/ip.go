package cmd

import (
	"fmt"
	"io"

	"github.com/paulohenriquejustino/payment-gateway/app/network"
	"github.com/paulohenriquejustino/payment-gateway/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var ipCmd = &cobra.Command{
	Use:   "ip",
	Short: "Print the LAN address the server would advertise",
	Long:  "Resolve the network address used in the startup banner and list every ranked candidate interface.",
	Run:   runIP,
}

func init() {
	rootCmd.AddCommand(ipCmd)
}

func runIP(cmd *cobra.Command, _ []string) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	resolver := newResolver(cfg, network.SystemInterfaces{})
	printResolution(cmd.OutOrStdout(), resolver)
}

func newResolver(cfg *config.Config, source network.InterfaceSource) *network.Resolver {
	return network.NewResolver(source, network.ResolverConfig{
		PrimarySubnet: cfg.Network.PrimarySubnet,
	})
}

func printResolution(w io.Writer, resolver *network.Resolver) {
	fmt.Fprintf(w, "Resolved address: %s\n", resolver.Resolve())

	candidates := resolver.Candidates()
	if len(candidates) == 0 {
		fmt.Fprintln(w, "No candidate interfaces; falling back to localhost")
		return
	}
	fmt.Fprintln(w, "Candidates:")
	for _, c := range candidates {
		fmt.Fprintf(w, "  %-20s %-16s priority=%d\n", c.Name, c.Address, c.Priority)
	}
}
