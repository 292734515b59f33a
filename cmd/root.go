package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the zoomfetch application
var rootCmd = &cobra.Command{
	Use:   "zoomfetch",
	Short: "List and download Zoom cloud recordings",
	Long: `zoomfetch authenticates against the Zoom API using OAuth 2.0 and lists
or downloads your cloud recordings.

Zoom only serves cloud recordings from roughly the last month; older
recordings are no longer retrievable from the provider.

Credentials come from ZOOM_CLIENT_ID, ZOOM_CLIENT_SECRET and either
ZOOM_REDIRECT_URI (authorization-code apps) or ZOOM_ACCOUNT_ID
(server-to-server apps), with a fallback to ~/keys/zoomfetch.credentials.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "zoomfetch version %s\n" .Version}}`)

	// If no subcommand is provided, run the list command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "list")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newDownloadCmd())
	rootCmd.AddCommand(newVersionCmd())
}
