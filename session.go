package tradehub

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrNotLoggedIn means no session file exists; the caller should login first.
var ErrNotLoggedIn = errors.New("not logged in: run 'login' first")

// Session is the currently logged-in user, shared by all commands through
// a small JSON file.
type Session struct {
	UserID    int       `json:"user_id"`
	Username  string    `json:"username"`
	LoginDate Timestamp `json:"login_date"`
}

// SessionStore persists the session file.
type SessionStore struct {
	path string
}

func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// Current returns the active session.
func (s *SessionStore) Current() (Session, error) {
	var sess Session
	if err := readJSON(s.path, &sess); err != nil {
		return Session{}, fmt.Errorf("reading session %q: %w", s.path, err)
	}
	if sess.UserID <= 0 || sess.Username == "" {
		return Session{}, ErrNotLoggedIn
	}
	return sess, nil
}

// Save replaces the session.
func (s *SessionStore) Save(sess Session) error {
	return writeJSONAtomic(s.path, sess)
}

// Clear removes the session file. Clearing an absent session is a no-op.
func (s *SessionStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
