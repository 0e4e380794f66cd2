package gizichain

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/ibnfzy/gizichain/internal/config"
)

var (
	configBaseURL      string
	configPollInterval string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Local CLI configuration",
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store configuration values",
	RunE: func(cmd *cobra.Command, args []string) error {
		if configBaseURL == "" && configPollInterval == "" {
			return fmt.Errorf("nothing to set (use --base-url or --poll-interval)")
		}
		return withDB(func(sqldb *sql.DB) error {
			if configBaseURL != "" {
				if err := config.Set(sqldb, config.KeyBaseURL, configBaseURL); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", config.KeyBaseURL, configBaseURL)
			}
			if configPollInterval != "" {
				if _, err := time.ParseDuration(configPollInterval); err != nil {
					return fmt.Errorf("invalid --poll-interval %q (expected a duration like 12s)", configPollInterval)
				}
				if err := config.Set(sqldb, config.KeyPollInterval, configPollInterval); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", config.KeyPollInterval, configPollInterval)
			}
			return nil
		})
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show stored configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if len(args) == 1 {
				value, ok, err := config.Get(sqldb, args[0])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("config key %q is not set", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			}
			values, err := config.List(sqldb)
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(values))
			for key := range values {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, values[key])
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd, configGetCmd)

	configSetCmd.Flags().StringVar(&configBaseURL, "base-url", "", "API base URL")
	configSetCmd.Flags().StringVar(&configPollInterval, "poll-interval", "", "Notification poll interval (e.g. 12s)")
}
