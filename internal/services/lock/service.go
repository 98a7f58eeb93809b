package lock

import (
	"errors"
	"sync"
)

// Errors
var (
	ErrWrongPassphrase    = errors.New("falsches Passwort")
	ErrPassphraseRequired = errors.New("passphrase required to unlock")
)

// State is the externally visible lock state
type State struct {
	Locked bool `json:"locked"`
}

// Service is the shared edit lock for the board. The board starts locked;
// anyone holding the shared passphrase can unlock it, and anyone can lock
// it again without the passphrase. There is no per-user ownership.
type Service struct {
	mu         sync.RWMutex
	locked     bool
	passphrase string
}

// Config holds configuration for the lock service
type Config struct {
	Passphrase string
}

// DefaultConfig returns default lock configuration
func DefaultConfig() Config {
	return Config{
		Passphrase: "mossiimc",
	}
}

// New creates a new lock service in the locked state
func New(cfg Config) *Service {
	if cfg.Passphrase == "" {
		cfg.Passphrase = DefaultConfig().Passphrase
	}
	return &Service{
		locked:     true,
		passphrase: cfg.Passphrase,
	}
}

// Locked reports whether the board is currently locked
func (s *Service) Locked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.locked
}

// State returns the current lock state
func (s *Service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{Locked: s.locked}
}

// Unlock opens the board for editing if the passphrase matches.
// Unlocking an already open board with the right passphrase is a no-op.
func (s *Service) Unlock(passphrase string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if passphrase != s.passphrase {
		return State{Locked: s.locked}, ErrWrongPassphrase
	}
	s.locked = false
	return State{Locked: false}, nil
}

// Lock closes the board for editing. No passphrase is needed.
func (s *Service) Lock() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locked = true
	return State{Locked: true}
}

// Toggle locks an open board immediately. A locked board cannot be
// toggled open; callers get ErrPassphraseRequired and must use Unlock.
func (s *Service) Toggle() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locked {
		return State{Locked: true}, ErrPassphraseRequired
	}
	s.locked = true
	return State{Locked: true}, nil
}
