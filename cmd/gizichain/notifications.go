package gizichain

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ibnfzy/gizichain/internal/api"
	"github.com/ibnfzy/gizichain/internal/notify"
	"github.com/ibnfzy/gizichain/internal/session"
)

var (
	notificationsJSON  bool
	watchIntervalFlag  time.Duration
	watchShowReminders bool
)

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Unread notifications",
}

var notificationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List unread notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(sqldb *sql.DB, sess *session.Session, client *api.Client) error {
			motherID, err := requireMotherID(sess)
			if err != nil {
				return err
			}
			list, err := client.UnreadNotifications(cmd.Context(), motherID)
			if err != nil {
				printAPIError(cmd, err)
				return fmt.Errorf("fetch notifications failed")
			}
			if notificationsJSON {
				b, err := json.MarshalIndent(list, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal notifications json: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No unread notifications")
				return nil
			}
			for _, n := range list {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t[%s]\t%s\n", n.ID, n.Type, n.Title)
			}
			return nil
		})
	},
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Mark one notification as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(sqldb *sql.DB, sess *session.Session, client *api.Client) error {
			if err := client.MarkNotificationRead(cmd.Context(), args[0]); err != nil {
				printAPIError(cmd, err)
				return fmt.Errorf("mark notification read failed")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %s as read\n", args[0])
			return nil
		})
	},
}

var notificationsWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll for unread notifications until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(sqldb *sql.DB, sess *session.Session, client *api.Client) error {
			motherID, err := requireMotherID(sess)
			if err != nil {
				return err
			}
			interval := resolvePollInterval(sqldb, watchIntervalFlag)
			sync := notify.NewSynchronizer(
				client.UnreadNotifications,
				client.MarkNotificationRead,
				notify.Options{
					PollInterval: interval,
					Logger:       log.New(cmd.ErrOrStderr(), "", log.LstdFlags),
				},
			)
			defer sync.Close()
			sync.SetMotherID(motherID)

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(stop)

			ticker := time.NewTicker(time.Second)
			defer ticker.Stop()

			lastLine := ""
			for {
				select {
				case <-stop:
					return nil
				case <-cmd.Context().Done():
					return nil
				case <-ticker.C:
					snap := sync.Snapshot()
					if snap.Loading {
						continue
					}
					if snap.Err != "" {
						fmt.Fprintln(cmd.ErrOrStderr(), snap.Err)
						continue
					}
					line := watchLine(sync, snap)
					if line != lastLine {
						fmt.Fprintln(cmd.OutOrStdout(), line)
						lastLine = line
					}
				}
			}
		})
	},
}

func watchLine(sync *notify.Synchronizer, snap notify.State) string {
	counts := sync.CountsByType()
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Strings(types)
	line := fmt.Sprintf("%d unread", len(snap.Notifications))
	for _, t := range types {
		line += fmt.Sprintf("  %s=%d", t, counts[t])
	}
	if watchShowReminders {
		for _, n := range sync.ScheduleReminders() {
			line += fmt.Sprintf("\n  reminder: %s", n.Title)
		}
	}
	return line
}

func init() {
	rootCmd.AddCommand(notificationsCmd)
	notificationsCmd.AddCommand(notificationsListCmd, notificationsReadCmd, notificationsWatchCmd)

	notificationsListCmd.Flags().BoolVar(&notificationsJSON, "json", false, "Print notifications as JSON")
	notificationsWatchCmd.Flags().DurationVar(&watchIntervalFlag, "interval", 0, "Poll interval (default 12s)")
	notificationsWatchCmd.Flags().BoolVar(&watchShowReminders, "reminders", false, "Also print schedule reminders")
}
