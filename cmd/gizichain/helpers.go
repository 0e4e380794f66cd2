package gizichain

import (
	"database/sql"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ibnfzy/gizichain/internal/api"
	"github.com/ibnfzy/gizichain/internal/app"
	"github.com/ibnfzy/gizichain/internal/coerce"
	"github.com/ibnfzy/gizichain/internal/config"
	"github.com/ibnfzy/gizichain/internal/db"
	"github.com/ibnfzy/gizichain/internal/session"
)

func resolveDBPath() (string, error) {
	if strings.TrimSpace(dbPath) != "" {
		return strings.TrimSpace(dbPath), nil
	}
	if env := strings.TrimSpace(os.Getenv("GIZICHAIN_DB")); env != "" {
		return env, nil
	}
	return app.DefaultDBPath()
}

func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(sqldb)
}

// resolveBaseURL: flag > GIZICHAIN_BASE_URL > stored config > client default.
func resolveBaseURL(sqldb *sql.DB) (string, error) {
	if strings.TrimSpace(baseURLFlag) != "" {
		return strings.TrimSpace(baseURLFlag), nil
	}
	if env := strings.TrimSpace(os.Getenv("GIZICHAIN_BASE_URL")); env != "" {
		return env, nil
	}
	stored, _, err := config.Get(sqldb, config.KeyBaseURL)
	if err != nil {
		return "", err
	}
	return stored, nil
}

func newClient(sqldb *sql.DB, token string) (*api.Client, error) {
	base, err := resolveBaseURL(sqldb)
	if err != nil {
		return nil, err
	}
	return &api.Client{BaseURL: base, Token: token}, nil
}

// withSession loads the persisted session and hands an authenticated client
// to run.
func withSession(run func(*sql.DB, *session.Session, *api.Client) error) error {
	return withDB(func(sqldb *sql.DB) error {
		store := session.NewStore(sqldb)
		sess, err := store.Load()
		if err != nil {
			return err
		}
		if sess == nil {
			return fmt.Errorf("not logged in (run: gizichain login)")
		}
		client, err := newClient(sqldb, sess.Token)
		if err != nil {
			return err
		}
		return run(sqldb, sess, client)
	})
}

func requireMotherID(sess *session.Session) (string, error) {
	id := sess.MotherID()
	if id == "" {
		return "", fmt.Errorf("no mother profile linked to this account")
	}
	return id, nil
}

// printAPIError renders a classified failure, including per-field messages
// for form-style validation errors.
func printAPIError(cmd *cobra.Command, err error) {
	apiErr := api.Normalize(err)
	fmt.Fprintln(cmd.ErrOrStderr(), apiErr.Message)
	if len(apiErr.FieldErrors) == 0 {
		return
	}
	fields := make([]string, 0, len(apiErr.FieldErrors))
	for field := range apiErr.FieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", field, apiErr.FieldErrors[field])
	}
}

func resolvePollInterval(sqldb *sql.DB, flagValue time.Duration) time.Duration {
	if flagValue > 0 {
		return flagValue
	}
	if env := strings.TrimSpace(os.Getenv("GIZICHAIN_POLL_INTERVAL")); env != "" {
		if d, err := time.ParseDuration(env); err == nil && d > 0 {
			return d
		}
	}
	stored, ok, err := config.Get(sqldb, config.KeyPollInterval)
	if err == nil && ok {
		if d, parseErr := time.ParseDuration(stored); parseErr == nil && d > 0 {
			return d
		}
	}
	return 0
}

// parseNumberFlag accepts the comma decimal separator used throughout the
// app's forms ("65,5").
func parseNumberFlag(name, value string) (float64, error) {
	if strings.TrimSpace(value) == "" {
		return 0, fmt.Errorf("--%s is required", name)
	}
	if f, ok := coerce.Float(value); ok {
		return f, nil
	}
	return 0, fmt.Errorf("invalid --%s %q (expected a number)", name, value)
}
