package gizichain

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	dbPath      string
	baseURLFlag string
)

var rootCmd = &cobra.Command{
	Use:   "gizichain",
	Short: "gizichain is the terminal client for the GiziChain maternal-nutrition service",
	Long: "gizichain talks to the GiziChain backend from your terminal: nutrition inference\n" +
		"results, mother profile, consultations with a pakar, notifications, and schedules.",
}

func Execute() {
	// A local .env can hold GIZICHAIN_BASE_URL / GIZICHAIN_DB for development.
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the local SQLite database")
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "GiziChain backend base URL")
}
