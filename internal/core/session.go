package core

import (
	"log/slog"
	"strings"

	"gwi.com/room-redesign/internal/store"
)

// mockPassword is the only password the mock login accepts.
const mockPassword = "1234"

// userScope is per-user state hydrated on session start and dropped on logout.
type userScope interface {
	load(userID string)
	reset()
}

// SessionManager owns the mock identity and the current-user marker.
type SessionManager struct {
	kv     store.KV
	user   *store.User
	scopes []userScope
}

func NewSessionManager(kv store.KV, scopes ...userScope) *SessionManager {
	return &SessionManager{kv: kv, scopes: scopes}
}

// Init restores the persisted session, if any.
func (s *SessionManager) Init() {
	var u store.User
	if !loadJSON(s.kv, store.CurrentUserKey, &u) || u.ID == "" {
		s.clear()
		return
	}
	s.start(u)
	slog.Info("Restored session", "user", u.ID)
}

func (s *SessionManager) Login(email, password string) (store.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password != mockPassword {
		return store.User{}, ErrInvalidCredentials
	}
	localPart, _, _ := strings.Cut(email, "@")
	u := store.User{ID: email, DisplayName: localPart, Email: email}
	s.establish(u)
	return u, nil
}

// Signup accepts any non-empty fields; repeated signups behave like login.
func (s *SessionManager) Signup(name, email, password string) (store.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return store.User{}, ErrMissingFields
	}
	u := store.User{ID: email, DisplayName: name, Email: email}
	s.establish(u)
	return u, nil
}

// Logout forgets the session. Per-user records stay for the next login.
func (s *SessionManager) Logout() {
	if err := s.kv.Delete(store.CurrentUserKey); err != nil {
		slog.Error("Failed to clear session marker", "error", err)
	}
	s.clear()
}

func (s *SessionManager) CurrentUser() (store.User, bool) {
	if s.user == nil {
		return store.User{}, false
	}
	return *s.user, true
}

func (s *SessionManager) establish(u store.User) {
	persistJSON(s.kv, store.CurrentUserKey, u)
	s.start(u)
	slog.Info("User signed in", "user", u.ID)
}

func (s *SessionManager) start(u store.User) {
	s.clear()
	s.user = &u
	for _, sc := range s.scopes {
		sc.load(u.ID)
	}
}

func (s *SessionManager) clear() {
	s.user = nil
	for _, sc := range s.scopes {
		sc.reset()
	}
}
