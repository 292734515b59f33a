package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/teemow/zoomfetch/internal/logging"
	"github.com/teemow/zoomfetch/internal/recordings"
)

func newDownloadCmd() *cobra.Command {
	var (
		account  string
		dir      string
		from, to string
		all      bool
	)

	cmd := &cobra.Command{
		Use:   "download [meeting-id-or-uuid]",
		Short: "Download the recording files of a meeting",
		Long: `Download all recording files of one meeting into a subdirectory of --dir
named after the meeting ID. With --all, every meeting in the date window
(default: the last 30 days) is downloaded instead.

Recordings older than roughly a month are no longer retrievable and
surface as not-found errors.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return fmt.Errorf("specify either a meeting ID or --all")
			}

			ctx := context.Background()
			client, err := recordings.NewClientForAccount(ctx, account)
			if err != nil {
				return fmt.Errorf("failed to create recordings client for account %s: %w", account, err)
			}

			logger := logging.WithAccount(slog.Default(), account)

			if !all {
				m, err := client.Get(ctx, args[0])
				if err != nil {
					if errors.Is(err, recordings.ErrNotFound) {
						return fmt.Errorf("meeting %s has no retrievable recording (recordings expire after roughly a month): %w", args[0], err)
					}
					return err
				}
				paths, err := client.DownloadMeeting(ctx, m, dir)
				if err != nil {
					return err
				}
				logger.Info("meeting downloaded", logging.Meeting(m.UUID), slog.Int("files", len(paths)))
				return nil
			}

			opts := &recordings.ListOptions{}
			opts.From, opts.To = recordings.DefaultRange()
			if opts.From, opts.To, err = overrideRange(opts.From, opts.To, from, to); err != nil {
				return err
			}

			meetings, err := client.ListAll(ctx, opts)
			if err != nil {
				return fmt.Errorf("error listing recordings: %w", err)
			}

			n := 0
			for i := range meetings {
				paths, err := client.DownloadMeeting(ctx, &meetings[i], dir)
				if err != nil {
					return fmt.Errorf("error downloading meeting %s: %w", meetings[i].UUID, err)
				}
				n += len(paths)
			}
			logger.Info("download complete", slog.Int("meetings", len(meetings)), slog.Int("files", n), logging.Status(logging.StatusSuccess))
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Zoom account name to use (default: 'default')")
	cmd.Flags().StringVar(&dir, "dir", ".", "directory to download into")
	cmd.Flags().StringVar(&from, "from", "", "start of the date window for --all (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "end of the date window for --all (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&all, "all", false, "download every meeting in the date window")
	return cmd
}
