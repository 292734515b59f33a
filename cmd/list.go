package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/zoomfetch/internal/recordings"
)

const dateLayout = "2006-01-02"

func newListCmd() *cobra.Command {
	var (
		account  string
		from, to string
		pageSize int
		all      bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cloud recordings from roughly the last month",
		Long: `List the cloud recordings of the authorized user. Without --from/--to the
window defaults to the last 30 days, which is all the provider serves
anyway. Dates use the YYYY-MM-DD format.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client, err := recordings.NewClientForAccount(ctx, account)
			if err != nil {
				return fmt.Errorf("failed to create recordings client for account %s: %w", account, err)
			}

			opts := &recordings.ListOptions{PageSize: pageSize}
			opts.From, opts.To = recordings.DefaultRange()
			if opts.From, opts.To, err = overrideRange(opts.From, opts.To, from, to); err != nil {
				return err
			}

			var meetings []recordings.Meeting
			if all {
				meetings, err = client.ListAll(ctx, opts)
				if err != nil {
					return fmt.Errorf("error listing recordings: %w", err)
				}
			} else {
				page, err := client.List(ctx, opts)
				if err != nil {
					return fmt.Errorf("error listing recordings: %w", err)
				}
				meetings = page.Meetings
				if page.NextPageToken != "" {
					defer fmt.Fprintf(os.Stderr, "More recordings available; rerun with --all to fetch every page\n")
				}
			}

			if len(meetings) == 0 {
				fmt.Println("No cloud recordings in the requested window")
				return nil
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "UUID\tSTART\tTOPIC\tFILES\tSIZE")
			for _, m := range meetings {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
					m.UUID,
					m.StartTime.Format(time.RFC3339),
					m.Topic,
					len(m.RecordingFiles),
					humanSize(m.TotalSize))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Zoom account name to use (default: 'default')")
	cmd.Flags().StringVar(&from, "from", "", "start of the date window (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "end of the date window (YYYY-MM-DD)")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "meetings per page (provider max 300)")
	cmd.Flags().BoolVar(&all, "all", false, "follow pagination and list every page")
	return cmd
}

// overrideRange replaces the default window bounds with any flags the user set
func overrideRange(defFrom, defTo time.Time, from, to string) (time.Time, time.Time, error) {
	if from != "" {
		t, err := time.Parse(dateLayout, from)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from date %q, expected YYYY-MM-DD", from)
		}
		defFrom = t
	}
	if to != "" {
		t, err := time.Parse(dateLayout, to)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --to date %q, expected YYYY-MM-DD", to)
		}
		defTo = t
	}
	return defFrom, defTo, nil
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
