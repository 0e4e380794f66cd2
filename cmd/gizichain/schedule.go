package gizichain

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ibnfzy/gizichain/internal/api"
	"github.com/ibnfzy/gizichain/internal/model"
	"github.com/ibnfzy/gizichain/internal/session"
)

var (
	scheduleJSON   bool
	attendanceFlag string
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Posyandu visit schedules",
}

var scheduleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List upcoming schedules",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(sqldb *sql.DB, sess *session.Session, client *api.Client) error {
			motherID, err := requireMotherID(sess)
			if err != nil {
				return err
			}
			schedules, err := client.Schedules(cmd.Context(), motherID)
			if err != nil {
				printAPIError(cmd, err)
				return fmt.Errorf("fetch schedules failed")
			}
			if scheduleJSON {
				b, err := json.MarshalIndent(schedules, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal schedules json: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			if len(schedules) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No schedules")
				return nil
			}
			for _, s := range schedules {
				status := string(s.Attendance)
				if status == "" {
					status = "-"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", s.ID, s.ScheduledAt, s.Title, status)
			}
			return nil
		})
	},
}

var scheduleAttendCmd = &cobra.Command{
	Use:   "attend <id>",
	Short: "Confirm or decline a schedule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var status model.AttendanceStatus
		switch attendanceFlag {
		case string(model.AttendanceConfirmed):
			status = model.AttendanceConfirmed
		case string(model.AttendanceDeclined):
			status = model.AttendanceDeclined
		default:
			return fmt.Errorf("invalid --status %q (expected %s or %s)",
				attendanceFlag, model.AttendanceConfirmed, model.AttendanceDeclined)
		}
		return withSession(func(sqldb *sql.DB, sess *session.Session, client *api.Client) error {
			updated, err := client.SetAttendance(cmd.Context(), args[0], status)
			if err != nil {
				printAPIError(cmd, err)
				return fmt.Errorf("set attendance failed")
			}
			if updated != nil && updated.Attendance != "" {
				status = updated.Attendance
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Schedule %s marked %s\n", args[0], status)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
	scheduleCmd.AddCommand(scheduleListCmd, scheduleAttendCmd)

	scheduleListCmd.Flags().BoolVar(&scheduleJSON, "json", false, "Print schedules as JSON")
	scheduleAttendCmd.Flags().StringVar(&attendanceFlag, "status", "", "Attendance status: confirmed or declined")
	_ = scheduleAttendCmd.MarkFlagRequired("status")
}
