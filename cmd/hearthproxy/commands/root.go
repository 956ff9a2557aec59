// Package commands implements the hearthproxy CLI's subcommands.
package commands

import "github.com/spf13/cobra"

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "hearthproxy",
	Short: "An intercepting proxy for the Aurora in-game protocol",
	Long: `hearthproxy sits between a game client and its real server. It
splits the wire stream into protocol envelopes, decodes them against a
declarative message schema, and hands decoded packets to anything that
wants to observe, filter, or re-encode them before they reach the other
side.

Use "hearthproxy [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and runs it. Called
// once by main.main.
func Execute() error {
	return rootCmd.Execute()
}
