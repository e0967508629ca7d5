package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/Thamizhjaisankar-git/amazon-clone/internal/domain"
	"github.com/Thamizhjaisankar-git/amazon-clone/internal/storage"
	apperrors "github.com/Thamizhjaisankar-git/amazon-clone/pkg/errors"
)

const sessionStore = "session"

// Session change kinds.
const (
	SessionLogin    = "login"
	SessionRegister = "register"
	SessionLogout   = "logout"
)

// SessionChange is delivered to session observers. Session is nil after a
// logout.
type SessionChange struct {
	Kind    string
	Session *domain.Session
}

// SessionStore holds the mock signed-in user. Credentials are never
// checked or stored.
type SessionStore struct {
	mu        sync.Mutex
	deps      Deps
	current   *domain.Session
	observers []Observer[SessionChange]
}

// NewSessionStore restores the session from deps.Storage.
func NewSessionStore(ctx context.Context, deps Deps) (*SessionStore, error) {
	sess, err := restore(ctx, deps, sessionStore, storage.SessionKey, func(s *domain.Session) bool {
		return s == nil || s.Valid()
	})
	if err != nil {
		return nil, err
	}
	return &SessionStore{deps: deps, current: sess}, nil
}

func (s *SessionStore) Subscribe(o Observer[SessionChange]) {
	if o == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Login signs in as email. The display name is the email's local part
// with its first letter upper-cased.
func (s *SessionStore) Login(ctx context.Context, email, password string) (domain.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.Session{}, apperrors.InvalidInput("email and password are required")
	}

	now := s.deps.now().UTC()
	sess := domain.Session{
		ID:        s.deps.newID(),
		Name:      domain.DisplayNameFromEmail(email),
		Email:     email,
		LoginTime: &now,
	}
	if err := s.replace(ctx, SessionLogin, &sess); err != nil {
		return domain.Session{}, err
	}
	return sess, nil
}

// Register signs in as a new user with the supplied name.
func (s *SessionStore) Register(ctx context.Context, name, email, password string) (domain.Session, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return domain.Session{}, apperrors.InvalidInput("name, email and password are required")
	}

	now := s.deps.now().UTC()
	sess := domain.Session{
		ID:               s.deps.newID(),
		Name:             name,
		Email:            email,
		RegistrationTime: &now,
	}
	if err := s.replace(ctx, SessionRegister, &sess); err != nil {
		return domain.Session{}, err
	}
	return sess, nil
}

// Logout clears the session and removes its storage key.
func (s *SessionStore) Logout(ctx context.Context) error {
	return s.replace(ctx, SessionLogout, nil)
}

func (s *SessionStore) replace(ctx context.Context, kind string, next *domain.Session) error {
	s.mu.Lock()
	wasAuthenticated := s.current != nil

	if next == nil {
		if err := s.deps.Storage.Remove(ctx, storage.SessionKey); err != nil {
			s.mu.Unlock()
			s.deps.Metrics.persistFailed(sessionStore)
			return fmt.Errorf("persist %s: %w", sessionStore, err)
		}
	} else if err := persist(ctx, s.deps, sessionStore, storage.SessionKey, next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.current = next
	observers := slices.Clone(s.observers)
	s.mu.Unlock()

	if next == nil && !wasAuthenticated {
		return nil
	}

	s.deps.Metrics.mutated(sessionStore, kind)
	s.deps.logger().InfoContext(ctx, "session changed", slog.String("kind", kind))

	change := SessionChange{Kind: kind}
	if next != nil {
		cp := *next
		change.Session = &cp
	}
	notify(ctx, observers, change)
	return nil
}

// CurrentUser returns the signed-in session, if any.
func (s *SessionStore) CurrentUser() (domain.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return domain.Session{}, false
	}
	return *s.current, true
}

func (s *SessionStore) IsAuthenticated() bool {
	_, ok := s.CurrentUser()
	return ok
}

// Greeting is "Hello, <name>" when signed in and "Sign In" otherwise.
func (s *SessionStore) Greeting() string {
	if sess, ok := s.CurrentUser(); ok {
		return domain.Greeting(&sess)
	}
	return domain.Greeting(nil)
}
