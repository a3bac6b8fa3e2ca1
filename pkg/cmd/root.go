package cmd

import "github.com/spf13/cobra"

func NewRootCommand() *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:   "simpleserve [command]",
		Short: "A tiny HTTP server that greets every path it's asked for",
		Example: "  simpleserve serve\n" +
			"  simpleserve serve --port 9090 -f server.yaml",
	}

	rootCmd.AddCommand(NewServeOptions().Command())
	rootCmd.AddCommand(NewVersionOptions().Command())

	return rootCmd
}
