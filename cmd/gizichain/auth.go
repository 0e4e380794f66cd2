package gizichain

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ibnfzy/gizichain/internal/api"
	"github.com/ibnfzy/gizichain/internal/session"
)

var (
	loginEmail    string
	loginPassword string

	registerName         string
	registerEmail        string
	registerPassword     string
	registerConfirmation string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and store the session locally",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			client, err := newClient(sqldb, "")
			if err != nil {
				return err
			}
			payload, err := client.Login(cmd.Context(), api.LoginInput{
				Email:    loginEmail,
				Password: loginPassword,
			})
			if err != nil {
				printAPIError(cmd, err)
				return fmt.Errorf("login failed")
			}
			sess := session.Session{Token: payload.Token, User: payload.User}
			if err := session.NewStore(sqldb).Save(sess); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", payload.User.Name)
			if sess.MotherID() == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Warning: no mother profile linked to this account")
			}
			return nil
		})
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account with a mother profile and log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			client, err := newClient(sqldb, "")
			if err != nil {
				return err
			}
			payload, err := client.Register(cmd.Context(), api.RegisterInput{
				Name:                 registerName,
				Email:                registerEmail,
				Password:             registerPassword,
				PasswordConfirmation: registerConfirmation,
			})
			if err != nil {
				printAPIError(cmd, err)
				return fmt.Errorf("registration failed")
			}
			if err := session.NewStore(sqldb).Save(session.Session{Token: payload.Token, User: payload.User}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered and logged in as %s\n", payload.User.Name)
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := session.NewStore(sqldb).Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the active session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(sqldb *sql.DB, sess *session.Session, _ *api.Client) error {
			fmt.Fprintf(cmd.OutOrStdout(), "User: %s <%s>\n", sess.User.Name, sess.User.Email)
			if id := sess.MotherID(); id != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Mother ID: %s\n", id)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)

	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	registerCmd.Flags().StringVar(&registerName, "name", "", "Full name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Account password")
	registerCmd.Flags().StringVar(&registerConfirmation, "password-confirmation", "", "Repeat the password")
	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")
	_ = registerCmd.MarkFlagRequired("password-confirmation")
}
