// volumemcpserver exposes the OS master output volume as MCP tools.
package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/akansha-code/volumemcpserver/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "volumemcpserver",
		Short: "MCP server for system volume control",
		Long: `volumemcpserver exposes the OS master output volume as MCP tools
(get_volume, set_volume, mute, unmute, toggle_mute), served over stdio
or over streamable HTTP.`,
		Version:      version.String(),
		SilenceUsage: true,
		// MCP clients launch the bare binary, so the root command serves
		// stdio directly.
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, configPath, "")
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config YAML")

	root.AddCommand(serveCmd(&configPath))
	root.AddCommand(statusCmd(&configPath))
	root.AddCommand(keygenCmd())
	return root
}
