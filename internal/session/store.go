// Package session persists the authenticated session (bearer token plus the
// serialized user) in the local database and owns mother-id resolution. There
// is no ambient global state: callers load a Session explicitly and hand its
// token to the API client.
package session

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ibnfzy/gizichain/internal/coerce"
	"github.com/ibnfzy/gizichain/internal/model"
)

// The two fixed storage keys, kept identical to the mobile app's secure-store
// keys so the contract stays recognizable.
const (
	tokenKey = "gizichain_token"
	userKey  = "gizichain_user"
)

type Session struct {
	Token string
	User  model.User
}

// MotherID resolves the mother id for API queries: the user payload's id
// first, then a mother_id claim inside the (unverified) bearer token, which
// is where older backend versions put it.
func (s Session) MotherID() string {
	if s.User.MotherID != "" {
		return s.User.MotherID
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, claims); err != nil {
		return ""
	}
	for _, key := range []string{"mother_id", "motherId"} {
		if v, ok := claims[key]; ok {
			if id := coerce.ID(v); id != "" {
				return id
			}
		}
	}
	return ""
}

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// storedUser is the serialized user shape; motherId is written in the
// current camelCase convention regardless of what the backend sent.
type storedUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	MotherID string `json:"motherId,omitempty"`
}

func (st *Store) Save(s Session) error {
	userJSON, err := json.Marshal(storedUser{
		ID:       s.User.ID,
		Name:     s.User.Name,
		Email:    s.User.Email,
		MotherID: s.User.MotherID,
	})
	if err != nil {
		return fmt.Errorf("marshal session user: %w", err)
	}
	if err := st.set(tokenKey, s.Token); err != nil {
		return err
	}
	return st.set(userKey, string(userJSON))
}

// Load returns the persisted session, or nil when none exists. A corrupt
// user payload clears both keys and reports no session rather than failing,
// matching the app's restore behavior.
func (st *Store) Load() (*Session, error) {
	token, ok, err := st.get(tokenKey)
	if err != nil {
		return nil, err
	}
	if !ok || token == "" {
		return nil, nil
	}
	userJSON, ok, err := st.get(userKey)
	if err != nil {
		return nil, err
	}
	s := Session{Token: token}
	if ok && userJSON != "" {
		var u storedUser
		if err := json.Unmarshal([]byte(userJSON), &u); err != nil {
			if clearErr := st.Clear(); clearErr != nil {
				return nil, clearErr
			}
			return nil, nil
		}
		s.User = model.User{ID: u.ID, Name: u.Name, Email: u.Email, MotherID: u.MotherID}
	}
	return &s, nil
}

func (st *Store) Clear() error {
	if _, err := st.db.Exec(`DELETE FROM session_store WHERE key IN (?, ?)`, tokenKey, userKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (st *Store) set(key, value string) error {
	_, err := st.db.Exec(`
INSERT INTO session_store(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, value)
	if err != nil {
		return fmt.Errorf("store session key %q: %w", key, err)
	}
	return nil
}

func (st *Store) get(key string) (string, bool, error) {
	var value string
	err := st.db.QueryRow(`SELECT value FROM session_store WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load session key %q: %w", key, err)
	}
	return value, true, nil
}
