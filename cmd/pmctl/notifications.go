package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"pmfin-backend/lib/dashclient"
)

func (a *app) notificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Notifications of the signed-in user",
	}
	var watch bool
	var interval time.Duration
	unread := &cobra.Command{
		Use:   "unread",
		Short: "Print the unread notification count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !watch {
				count, err := a.client.UnreadCount(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), count)
				return nil
			}
			poller := dashclient.NewUnreadPoller(a.client, interval)
			last := int64(-1)
			changes := make(chan int64, 1)
			poller.OnChange = func(count int64) {
				select {
				case changes <- count:
				default:
				}
			}
			go poller.Run(cmd.Context())
			for {
				select {
				case <-cmd.Context().Done():
					return nil
				case count := <-changes:
					if count != last {
						last = count
						fmt.Fprintf(cmd.OutOrStdout(), "%v unread: %v\n", time.Now().Format(time.TimeOnly), count)
					}
				}
			}
		},
	}
	unread.Flags().BoolVar(&watch, "watch", false, "keep polling until interrupted")
	unread.Flags().DurationVar(&interval, "interval", 30*time.Second, "poll interval")
	cmd.AddCommand(unread)
	return cmd
}
