package main

import (
	"github.com/spf13/cobra"

	"keypoll/core"
)

var (
	configFile string

	rootCmd = &cobra.Command{
		Use:   "keypoll-host",
		Short: "Run the button-to-key translation pipeline on a host",
		Long: `keypoll-host runs the same debounce, key mapping and edge detection
used on the device against host inputs: GPIO on a Linux board, a Linux
input device, or a serial pad companion. Events go to a console
consumer or to a uinput virtual keyboard.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return readConfig(configFile)
		},
	}
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Config file (default keypoll.toml in . or ~/.config/keypoll)")
	flags.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	flags.Bool("debug-core", false, "Log pipeline diagnostics from the core")
	flags.Duration("period", core.PollPeriod, "Poll period")
	flags.Int("queue", 64, "Event queue capacity for the console consumer")
	flags.StringP("output", "o", "console", "Event consumer: console or vkbd")
	flags.Bool("trace", false, "Dump the recent-event trace on exit")

	v.BindPFlag("log.level", flags.Lookup("log-level"))
	v.BindPFlag("log.debug_core", flags.Lookup("debug-core"))
	v.BindPFlag("poll.period", flags.Lookup("period"))
	v.BindPFlag("queue.size", flags.Lookup("queue"))
	v.BindPFlag("output", flags.Lookup("output"))
	v.BindPFlag("trace", flags.Lookup("trace"))

	rootCmd.AddCommand(newButtonsCommand())
	rootCmd.AddCommand(newPadCommand())
}
