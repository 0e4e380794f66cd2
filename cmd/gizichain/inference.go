package gizichain

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ibnfzy/gizichain/internal/api"
	"github.com/ibnfzy/gizichain/internal/session"
)

var inferenceJSON bool

var inferenceCmd = &cobra.Command{
	Use:   "inference",
	Short: "Nutrition inference results",
}

var inferenceShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the latest nutrition inference",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(sqldb *sql.DB, sess *session.Session, client *api.Client) error {
			motherID, err := requireMotherID(sess)
			if err != nil {
				return err
			}
			result, err := client.LatestInference(cmd.Context(), motherID)
			if err != nil {
				printAPIError(cmd, err)
				return fmt.Errorf("fetch latest inference failed")
			}
			if result == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No inference result yet")
				return nil
			}
			if inferenceJSON {
				b, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal inference json: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Status: %s\n", result.Status)
			if meta := result.StatusMeta; meta != nil && meta.Label != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Label: %s\n", meta.Label)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Energy: %.0f kcal\nProtein: %.0f g\nFluid: %.0f ml\n",
				result.Energy, result.Protein, result.Fluid)
			if result.Recommendation != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Recommendation: %s\n", result.Recommendation)
			}
			if result.UpdatedAt != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Updated: %s\n", result.UpdatedAt)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(inferenceCmd)
	inferenceCmd.AddCommand(inferenceShowCmd)
	inferenceShowCmd.Flags().BoolVar(&inferenceJSON, "json", false, "Print the raw result as JSON")
}
