// Package session manages the authenticated identity of the running client.
// The identity is persisted in the state store so the user stays logged in
// across restarts, and is the single source the navigation shell consults for
// role-scoped behavior.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"optischolar/internal/api"
	"optischolar/internal/logging"
	"optischolar/internal/store"
)

// Roles the backend issues.
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// Session is the authenticated identity. Role-specific fields are populated
// only for the matching role.
type Session struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`

	Department string `json:"department,omitempty"`
	SchoolID   string `json:"school_id,omitempty"`

	// Student
	RegistrationNumber string `json:"registration_number,omitempty"`
	Program            string `json:"program,omitempty"`
	Semester           int    `json:"semester,omitempty"`

	// Teacher
	EmployeeID  string `json:"employee_id,omitempty"`
	Designation string `json:"designation,omitempty"`
}

// DisplayName returns the name to show in the top bar.
func (s *Session) DisplayName() string {
	if s.FullName != "" {
		return s.FullName
	}
	return s.Email
}

// RoleTitle returns the role formatted for display ("Admin", "Teacher", ...).
func (s *Session) RoleTitle() string {
	if s.Role == "" {
		return ""
	}
	return strings.ToUpper(s.Role[:1]) + s.Role[1:]
}

// AuthError reports a rejected login attempt. Message is the backend's own
// detail when one was provided.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// Store couples the API login endpoint with durable session persistence.
type Store struct {
	client *api.Client
	state  *store.StateStore
}

// NewStore creates a session store over the given client and state store.
func NewStore(client *api.Client, state *store.StateStore) *Store {
	return &Store{client: client, state: state}
}

// Restore loads the persisted session, if any. A missing or malformed session
// record yields (nil, nil): the caller shows the login form.
func (s *Store) Restore() (*Session, error) {
	var sess Session
	err := s.state.Get(store.KeySession, &sess)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}
	if sess.UserID == "" || sess.Role == "" {
		// A persisted record that lost its identity fields is useless.
		_ = s.state.Delete(store.KeySession)
		return nil, nil
	}
	logging.Session("restored session for %s (%s)", sess.Email, sess.Role)
	return &sess, nil
}

// Login authenticates against the backend and persists the resulting session.
// A rejected attempt returns *AuthError with the backend's message.
func (s *Store) Login(ctx context.Context, email, password string) (*Session, error) {
	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		var reqErr *api.RequestError
		if errors.As(err, &reqErr) {
			logging.SessionError("login rejected for %s: %s", email, reqErr.Message)
			return nil, &AuthError{Message: reqErr.Message}
		}
		return nil, err
	}
	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = "Login failed"
		}
		logging.SessionError("login rejected for %s: %s", email, msg)
		return nil, &AuthError{Message: msg}
	}

	sess := fromUser(resp.User)
	if err := s.state.Put(store.KeySession, sess); err != nil {
		logging.SessionError("failed to persist session: %v", err)
		// The login itself succeeded; persistence failure only costs the
		// user a re-login next start.
	}
	logging.Session("logged in as %s (%s)", sess.Email, sess.Role)
	return sess, nil
}

// Logout discards the persisted session.
func (s *Store) Logout() error {
	if err := s.state.Delete(store.KeySession); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	logging.Session("logged out")
	return nil
}

func fromUser(u api.User) *Session {
	return &Session{
		UserID:             u.ID,
		Email:              u.Email,
		FullName:           u.FullName,
		Role:               u.Role,
		Department:         u.Department,
		SchoolID:           u.SchoolID,
		RegistrationNumber: u.RegistrationNumber,
		Program:            u.Program,
		Semester:           u.Semester,
		EmployeeID:         u.EmployeeID,
		Designation:        u.Designation,
	}
}
