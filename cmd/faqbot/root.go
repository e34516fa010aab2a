package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// rootOptions are the persistent flags shared by every command
type rootOptions struct {
	configPath    string
	knowledgePath string
	logLevel      string
	verbose       bool
	noColor       bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "faqbot",
		Short: "Hotel FAQ bot - answers guest questions from a knowledge document",
		Long: `faqbot matches guest questions against a hotel knowledge document
(FAQ, policies, rooms, amenities and menus) and returns the best answer,
or a few suggested questions when nothing matches well.

It serves the engine over MCP stdio (serve), HTTP (http) or answers a
single question from the terminal (ask).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file path (YAML)")
	flags.StringVarP(&opts.knowledgePath, "knowledge", "k", "", "knowledge document path (JSON or YAML)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(
		newServeCmd(opts),
		newHTTPCmd(opts),
		newAskCmd(opts),
		newInspectCmd(opts),
		newVersionCmd(),
	)
	return cmd
}
