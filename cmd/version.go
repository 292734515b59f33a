package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the zoomfetch version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("zoomfetch version %s\n", version)
		},
	}
}
