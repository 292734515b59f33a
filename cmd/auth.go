package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/teemow/zoomfetch/internal/zoom"
)

func newAuthCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "auth [code-or-redirect-url]",
		Short: "Authorize zoomfetch against your Zoom account",
		Long: `Authorize zoomfetch using the OAuth 2.0 authorization-code flow.

Without arguments, the authorization URL is printed; open it in a browser,
approve access, and paste either the code or the full URL you were
redirected to back into the prompt. The code can also be passed directly
as an argument.

Server-to-server apps (ZOOM_ACCOUNT_ID set) need no authorization step;
tokens are minted directly from the app credentials.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if len(args) == 1 {
				if err := zoom.SaveTokenForAccount(ctx, account, args[0]); err != nil {
					return fmt.Errorf("authorization failed: %w", err)
				}
				fmt.Printf("Token cached for account %s\n", account)
				return nil
			}

			authURL, err := zoom.GetAuthURLForAccount(account)
			if err != nil {
				return err
			}

			fmt.Printf("Open %v in your browser and approve access.\n", authURL)
			fmt.Printf("Authorizing for account: %s\n", account)
			io.WriteString(os.Stdout, "Enter code or redirect URL> ")

			bs := bufio.NewScanner(os.Stdin)
			if !bs.Scan() {
				return io.EOF
			}
			if err := zoom.SaveTokenForAccount(ctx, account, bs.Text()); err != nil {
				return fmt.Errorf("authorization failed: %w", err)
			}

			fmt.Printf("Token cached for account %s\n", account)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Zoom account name to use (default: 'default')")
	return cmd
}
