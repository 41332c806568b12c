package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	styleStatus = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Faint(true) // cyan
	styleError  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true) // red bold
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "netlog",
	Short: "netlog — network log troubleshooting reports",
	Long: `netlog ingests plain-text network logs (syslog, firewall, DHCP, DNS
resolver, or generic timestamped connection logs) and produces a sectioned
troubleshooting report: denied and allowed connections, DNS failures,
latency and packet-loss outliers, DHCP events, IP and port rankings, and an
hourly error timeline.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styleError.Render(err.Error()))
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

// initConfig binds NETLOG_* environment variables as flag defaults. There is
// no configuration file.
func initConfig() {
	viper.SetEnvPrefix("NETLOG")
	viper.AutomaticEnv()
}
