package gizichain

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ibnfzy/gizichain/internal/api"
	"github.com/ibnfzy/gizichain/internal/session"
)

var (
	consultStatus string
	consultID     string
	consultText   string
)

var consultCmd = &cobra.Command{
	Use:   "consult",
	Short: "Consultations with a pakar",
}

var consultListCmd = &cobra.Command{
	Use:   "list",
	Short: "List consultations for the active mother",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(sqldb *sql.DB, sess *session.Session, client *api.Client) error {
			motherID, err := requireMotherID(sess)
			if err != nil {
				return err
			}
			list, err := client.Consultations(cmd.Context(), api.ConsultationFilter{
				MotherID: motherID,
				Status:   strings.TrimSpace(consultStatus),
			})
			if err != nil {
				printAPIError(cmd, err)
				return fmt.Errorf("fetch consultations failed")
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No consultations")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tSTATUS\tPAKAR\tUPDATED")
			for _, c := range list {
				updated := c.UpdatedAt
				if updated == "" {
					updated = c.CreatedAt
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", c.ID, c.Status, c.PakarID, updated)
			}
			return nil
		})
	},
}

var consultMessagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "Show messages of a consultation (defaults to the most recent)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(sqldb *sql.DB, sess *session.Session, client *api.Client) error {
			id, err := resolveConsultationID(cmd, sess, client)
			if err != nil {
				return err
			}
			if id == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "No active consultation")
				return nil
			}
			messages, err := client.ConsultationMessages(cmd.Context(), id)
			if err != nil {
				printAPIError(cmd, err)
				return fmt.Errorf("fetch messages failed")
			}
			for _, m := range messages {
				ts := m.HumanizedTime
				if ts == "" {
					ts = m.CreatedAt
				}
				fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s: %s\n", ts, m.Sender, m.Text)
			}
			return nil
		})
	},
}

var consultSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a message to the pakar",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(consultText) == "" {
			return fmt.Errorf("--text is required")
		}
		return withSession(func(sqldb *sql.DB, sess *session.Session, client *api.Client) error {
			id, err := resolveConsultationID(cmd, sess, client)
			if err != nil {
				return err
			}
			if id == "" {
				return fmt.Errorf("no active consultation to send to")
			}
			msg, err := client.SendMessage(cmd.Context(), api.SendMessageInput{
				ConsultationID: id,
				Sender:         "mother",
				Text:           strings.TrimSpace(consultText),
			})
			if err != nil {
				printAPIError(cmd, err)
				return fmt.Errorf("send message failed")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sent message %s\n", msg.ID)
			return nil
		})
	},
}

func resolveConsultationID(cmd *cobra.Command, sess *session.Session, client *api.Client) (string, error) {
	if strings.TrimSpace(consultID) != "" {
		return strings.TrimSpace(consultID), nil
	}
	motherID, err := requireMotherID(sess)
	if err != nil {
		return "", err
	}
	active, err := client.ActiveConsultation(cmd.Context(), api.ConsultationFilter{MotherID: motherID})
	if err != nil {
		printAPIError(cmd, err)
		return "", fmt.Errorf("resolve active consultation failed")
	}
	if active == nil {
		return "", nil
	}
	return active.ID, nil
}

func init() {
	rootCmd.AddCommand(consultCmd)
	consultCmd.AddCommand(consultListCmd, consultMessagesCmd, consultSendCmd)

	consultListCmd.Flags().StringVar(&consultStatus, "status", "", "Filter by consultation status")
	consultMessagesCmd.Flags().StringVar(&consultID, "id", "", "Consultation id (defaults to the most recent)")
	consultSendCmd.Flags().StringVar(&consultID, "id", "", "Consultation id (defaults to the most recent)")
	consultSendCmd.Flags().StringVar(&consultText, "text", "", "Message text")
}
