// Package accounts is the username/password store behind /login and /signup.
// It is a plain JSON file; it never touches match state.
package accounts

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidInput       = errors.New("invalid username or password")
)

// User is what callers see; the password never leaves the store.
type User struct {
	Username  string    `json:"username"`
	Points    int       `json:"points"`
	CreatedAt time.Time `json:"createdAt"`
	LastLogin time.Time `json:"lastLogin"`
}

type record struct {
	User
	Password string `json:"password"`
}

type database struct {
	Users []record `json:"users"`
}

// Store is a file-backed user table.
type Store struct {
	mu   sync.Mutex
	path string
	db   database
	now  func() time.Time
}

// Open loads the store at path, creating an empty one if it does not exist.
func Open(path string) (*Store, error) {
	s := &Store{path: path, now: time.Now}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create accounts directory: %w", err)
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, s.save()
	}
	if err != nil {
		return nil, fmt.Errorf("read accounts file: %w", err)
	}
	if err := json.Unmarshal(data, &s.db); err != nil {
		return nil, fmt.Errorf("parse accounts file: %w", err)
	}
	return s, nil
}

func (s *Store) CheckCredentials(username, password string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.db.Users {
		r := &s.db.Users[i]
		if r.Username != username {
			continue
		}
		if r.Password != password {
			return User{}, ErrInvalidCredentials
		}
		r.LastLogin = s.now()
		if err := s.save(); err != nil {
			return User{}, err
		}
		return r.User, nil
	}
	return User{}, ErrInvalidCredentials
}

// RegisterUser adds a user with zero points. Usernames are 3-20 characters,
// passwords at least 4.
func (s *Store) RegisterUser(username, password string) (User, error) {
	if len(username) < 3 || len(username) > 20 || len(password) < 4 {
		return User{}, ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.db.Users {
		if r.Username == username {
			return User{}, ErrUsernameTaken
		}
	}
	r := record{User: User{Username: username, CreatedAt: s.now()}, Password: password}
	s.db.Users = append(s.db.Users, r)
	if err := s.save(); err != nil {
		s.db.Users = s.db.Users[:len(s.db.Users)-1]
		return User{}, err
	}
	return r.User, nil
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.db, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal accounts: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write accounts file: %w", err)
	}
	return nil
}
