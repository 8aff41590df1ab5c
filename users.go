package tradehub

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// User management errors.
var (
	ErrUsernameTaken  = errors.New("username is already taken")
	ErrUserNotFound   = errors.New("user not found")
	ErrBadCredentials = errors.New("invalid username or password")
	ErrWeakPassword   = errors.New("password must be at least 4 characters")
)

// User is one registered account. Identity fields are immutable once
// created; only the password hash may change, always with the same salt.
type User struct {
	UserID           int       `json:"user_id"`
	Username         string    `json:"username"`
	HashedPassword   string    `json:"hashed_password"`
	Salt             string    `json:"salt"`
	RegistrationDate Timestamp `json:"registration_date"`
}

// UserStore persists accounts in a single JSON file.
type UserStore struct {
	path string
}

// NewUserStore returns a store over the given users file.
func NewUserStore(path string) *UserStore {
	return &UserStore{path: path}
}

// Register creates a new account with the next free user id.
func (s *UserStore) Register(username, password string) (User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return User{}, fmt.Errorf("username is required")
	}
	if len(password) < 4 {
		return User{}, ErrWeakPassword
	}

	users, err := s.read()
	if err != nil {
		return User{}, err
	}
	maxID := 0
	for _, u := range users {
		if u.Username == username {
			return User{}, fmt.Errorf("%w: %q", ErrUsernameTaken, username)
		}
		if u.UserID > maxID {
			maxID = u.UserID
		}
	}

	salt, err := newSalt()
	if err != nil {
		return User{}, err
	}
	user := User{
		UserID:           maxID + 1,
		Username:         username,
		HashedPassword:   hashPassword(password, salt),
		Salt:             salt,
		RegistrationDate: Now(),
	}
	users = append(users, user)
	if err := writeJSONAtomic(s.path, users); err != nil {
		return User{}, fmt.Errorf("saving user %q: %w", username, err)
	}
	return user, nil
}

// Authenticate verifies a username/password pair.
func (s *UserStore) Authenticate(username, password string) (User, error) {
	user, err := s.Find(username)
	if err != nil {
		return User{}, err
	}
	if hashPassword(password, user.Salt) != user.HashedPassword {
		return User{}, ErrBadCredentials
	}
	return user, nil
}

// ChangePassword re-hashes with the user's existing salt after verifying
// the old password.
func (s *UserStore) ChangePassword(username, oldPassword, newPassword string) error {
	if len(newPassword) < 4 {
		return ErrWeakPassword
	}
	users, err := s.read()
	if err != nil {
		return err
	}
	for i, u := range users {
		if u.Username != username {
			continue
		}
		if hashPassword(oldPassword, u.Salt) != u.HashedPassword {
			return ErrBadCredentials
		}
		users[i].HashedPassword = hashPassword(newPassword, u.Salt)
		return writeJSONAtomic(s.path, users)
	}
	return fmt.Errorf("%w: %q", ErrUserNotFound, username)
}

// Find returns the account with the given username.
func (s *UserStore) Find(username string) (User, error) {
	users, err := s.read()
	if err != nil {
		return User{}, err
	}
	for _, u := range users {
		if u.Username == strings.TrimSpace(username) {
			return u, nil
		}
	}
	return User{}, fmt.Errorf("%w: %q", ErrUserNotFound, username)
}

func (s *UserStore) read() ([]User, error) {
	var users []User
	if err := readJSON(s.path, &users); err != nil {
		return nil, fmt.Errorf("reading users %q: %w", s.path, err)
	}
	return users, nil
}

// hashPassword derives a hex-encoded PBKDF2-SHA256 key from the password
// and the account's fixed salt.
func hashPassword(password, salt string) string {
	return hex.EncodeToString(pbkdf2.Key([]byte(password), []byte(salt), 4096, 32, sha256.New))
}

func newSalt() (string, error) {
	raw := make([]byte, 8)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	return hex.EncodeToString(raw), nil
}
