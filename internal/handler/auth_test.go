package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/ewhitfield/hearthside/internal/middleware"
)

func (f *fixture) authHandler() *AuthHandler {
	return NewAuthHandler(f.users, f.sessions, f.logger)
}

func TestRegisterSetsSessionCookie(t *testing.T) {
	f := setup(t)
	h := f.authHandler()

	w := httptest.NewRecorder()
	h.Register(w, asUser("POST", "/auth/register",
		map[string]any{"email": "esme@example.com", "name": "Esme", "password": "hunter2hunter2"}, 0, nil))

	if w.Code != 201 {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}

	var found bool
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookieName && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("expected session cookie on register")
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	f := setup(t)
	h := f.authHandler()

	body := map[string]any{"email": "esme@example.com", "name": "Esme", "password": "hunter2hunter2"}
	w := httptest.NewRecorder()
	h.Register(w, asUser("POST", "/auth/register", body, 0, nil))
	if w.Code != 201 {
		t.Fatalf("first register = %d, want 201", w.Code)
	}

	w = httptest.NewRecorder()
	h.Register(w, asUser("POST", "/auth/register", body, 0, nil))
	if w.Code != 409 {
		t.Fatalf("second register = %d, want 409", w.Code)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	f := setup(t)
	h := f.authHandler()

	w := httptest.NewRecorder()
	h.Register(w, asUser("POST", "/auth/register",
		map[string]any{"email": "esme@example.com", "name": "Esme", "password": "short"}, 0, nil))

	if w.Code != 400 {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestLoginWrongPasswordUnauthorized(t *testing.T) {
	f := setup(t)
	h := f.authHandler()

	w := httptest.NewRecorder()
	h.Register(w, asUser("POST", "/auth/register",
		map[string]any{"email": "esme@example.com", "name": "Esme", "password": "hunter2hunter2"}, 0, nil))
	if w.Code != 201 {
		t.Fatalf("register = %d, want 201", w.Code)
	}

	w = httptest.NewRecorder()
	h.Login(w, asUser("POST", "/auth/login",
		map[string]any{"email": "esme@example.com", "password": "wrong-password"}, 0, nil))
	if w.Code != 401 {
		t.Fatalf("status = %d, want 401", w.Code)
	}

	// Unknown email gets the same answer.
	w = httptest.NewRecorder()
	h.Login(w, asUser("POST", "/auth/login",
		map[string]any{"email": "nobody@example.com", "password": "whatever"}, 0, nil))
	if w.Code != 401 {
		t.Fatalf("status = %d, want 401 for unknown email", w.Code)
	}
}

func TestLoginSucceeds(t *testing.T) {
	f := setup(t)
	h := f.authHandler()

	w := httptest.NewRecorder()
	h.Register(w, asUser("POST", "/auth/register",
		map[string]any{"email": "esme@example.com", "name": "Esme", "password": "hunter2hunter2"}, 0, nil))
	if w.Code != 201 {
		t.Fatalf("register = %d, want 201", w.Code)
	}

	w = httptest.NewRecorder()
	h.Login(w, asUser("POST", "/auth/login",
		map[string]any{"email": "esme@example.com", "password": "hunter2hunter2"}, 0, nil))
	if w.Code != 200 {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var user map[string]any
	if err := jsonDecode(w, &user); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Error("password hash must never appear in responses")
	}
}
