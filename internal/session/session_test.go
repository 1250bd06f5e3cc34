package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"optischolar/internal/api"
	"optischolar/internal/store"
)

func newTestStore(t *testing.T, handler http.HandlerFunc) (*Store, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	state, err := store.Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { state.Close() })

	return NewStore(api.NewClient(srv.URL), state), srv
}

func TestLoginPersistsSession(t *testing.T) {
	s, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/demo-login", r.URL.Path)
		w.Write([]byte(`{"success": true, "user": {"id": "u1", "email": "priya@uohyd.ac.in", "full_name": "Dr. Priya Sharma", "role": "teacher", "employee_id": "EMP001", "designation": "Professor"}}`))
	})

	sess, err := s.Login(context.Background(), "priya@uohyd.ac.in", "demo")
	require.NoError(t, err)
	assert.Equal(t, RoleTeacher, sess.Role)
	assert.Equal(t, "Dr. Priya Sharma", sess.DisplayName())
	assert.Equal(t, "Teacher", sess.RoleTitle())

	restored, err := s.Restore()
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, "u1", restored.UserID)
	assert.Equal(t, "EMP001", restored.EmployeeID)
}

func TestLoginRejectionIsAuthError(t *testing.T) {
	s, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"Invalid password"}`))
	})

	_, err := s.Login(context.Background(), "x@uohyd.ac.in", "nope")
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Invalid password", authErr.Message)

	restored, err := s.Restore()
	require.NoError(t, err)
	assert.Nil(t, restored)
}

func TestLoginUnsuccessfulEnvelope(t *testing.T) {
	s, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false}`))
	})

	_, err := s.Login(context.Background(), "x@uohyd.ac.in", "nope")
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Login failed", authErr.Message)
}

func TestLoginNetworkFailureIsNotAuthError(t *testing.T) {
	s, srv := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := s.Login(context.Background(), "x@uohyd.ac.in", "demo")
	require.Error(t, err)
	var authErr *AuthError
	assert.False(t, errors.As(err, &authErr))
	var netErr *api.NetworkError
	assert.True(t, errors.As(err, &netErr))
}

func TestRestoreWithNoSession(t *testing.T) {
	s, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {})

	sess, err := s.Restore()
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestLogoutClearsSession(t *testing.T) {
	s, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "user": {"id": "u2", "email": "a@uohyd.ac.in", "role": "admin"}}`))
	})

	_, err := s.Login(context.Background(), "a@uohyd.ac.in", "demo")
	require.NoError(t, err)

	require.NoError(t, s.Logout())

	restored, err := s.Restore()
	require.NoError(t, err)
	assert.Nil(t, restored)
}
