package gizichain

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ibnfzy/gizichain/internal/api"
	"github.com/ibnfzy/gizichain/internal/coerce"
	"github.com/ibnfzy/gizichain/internal/session"
)

var (
	profileJSON bool

	profileBB         string
	profileTB         string
	profileUmur       string
	profileUsiaBayi   string
	profileLaktasi    string
	profileAktivitas  string
	profileAlergi     string
	profilePreferensi string
	profileRiwayat    string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Mother profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the mother profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(sqldb *sql.DB, sess *session.Session, client *api.Client) error {
			motherID, err := requireMotherID(sess)
			if err != nil {
				return err
			}
			profile, err := client.MotherProfile(cmd.Context(), motherID)
			if err != nil {
				printAPIError(cmd, err)
				return fmt.Errorf("fetch mother profile failed")
			}
			if profile == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No profile data")
				return nil
			}
			if profileJSON {
				b, err := json.MarshalIndent(profile, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal profile json: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name: %s\n", profile.Name)
			fmt.Fprintf(out, "BB: %.1f kg\tTB: %.1f cm\tUmur: %.0f th\n", profile.BB, profile.TB, profile.Umur)
			fmt.Fprintf(out, "Usia bayi: %.0f bulan\tLaktasi: %s\tAktivitas: %s\n",
				profile.UsiaBayiBulan, profile.LaktasiTipe, profile.Aktivitas)
			fmt.Fprintf(out, "Alergi: %s\n", strings.Join(profile.Alergi, ", "))
			fmt.Fprintf(out, "Preferensi: %s\n", strings.Join(profile.Preferensi, ", "))
			fmt.Fprintf(out, "Riwayat: %s\n", strings.Join(profile.Riwayat, ", "))
			return nil
		})
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the mother profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		bb, err := parseNumberFlag("bb", profileBB)
		if err != nil {
			return err
		}
		tb, err := parseNumberFlag("tb", profileTB)
		if err != nil {
			return err
		}
		umur, err := parseNumberFlag("umur", profileUmur)
		if err != nil {
			return err
		}
		usiaBayi, err := parseNumberFlag("usia-bayi", profileUsiaBayi)
		if err != nil {
			return err
		}
		if strings.TrimSpace(profileLaktasi) == "" {
			return fmt.Errorf("--laktasi is required")
		}
		update := api.MotherProfileUpdate{
			BB:              bb,
			TB:              tb,
			Umur:            umur,
			UsiaBayiBulan:   usiaBayi,
			LaktasiTipe:     strings.TrimSpace(profileLaktasi),
			Aktivitas:       strings.TrimSpace(profileAktivitas),
			Alergi:          coerce.StringList(profileAlergi),
			Preferensi:      coerce.StringList(profilePreferensi),
			Riwayat:         coerce.StringList(profileRiwayat),
			RiwayatPenyakit: coerce.StringList(profileRiwayat),
		}
		return withSession(func(sqldb *sql.DB, sess *session.Session, client *api.Client) error {
			motherID, err := requireMotherID(sess)
			if err != nil {
				return err
			}
			updated, err := client.UpdateMotherProfile(cmd.Context(), motherID, update)
			if err != nil {
				printAPIError(cmd, err)
				return fmt.Errorf("profile update failed")
			}
			if updated != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Profile updated (BB %.1f kg, TB %.1f cm)\n", updated.BB, updated.TB)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Profile updated")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd, profileUpdateCmd)

	profileShowCmd.Flags().BoolVar(&profileJSON, "json", false, "Print the profile as JSON")

	profileUpdateCmd.Flags().StringVar(&profileBB, "bb", "", "Berat badan in kg (comma decimals accepted)")
	profileUpdateCmd.Flags().StringVar(&profileTB, "tb", "", "Tinggi badan in cm")
	profileUpdateCmd.Flags().StringVar(&profileUmur, "umur", "", "Mother age in years")
	profileUpdateCmd.Flags().StringVar(&profileUsiaBayi, "usia-bayi", "", "Baby age in months")
	profileUpdateCmd.Flags().StringVar(&profileLaktasi, "laktasi", "", "Lactation type (eksklusif|parsial)")
	profileUpdateCmd.Flags().StringVar(&profileAktivitas, "aktivitas", "", "Activity level (ringan|sedang|berat)")
	profileUpdateCmd.Flags().StringVar(&profileAlergi, "alergi", "", "Comma-separated allergies")
	profileUpdateCmd.Flags().StringVar(&profilePreferensi, "preferensi", "", "Comma-separated food preferences")
	profileUpdateCmd.Flags().StringVar(&profileRiwayat, "riwayat", "", "Comma-separated medical history")
}
