// Copyright (c) 2026 Inkwell Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/inkwell/inkwell-go/internal/service"
	"github.com/inkwell/inkwell-go/internal/session"
	"github.com/inkwell/inkwell-go/internal/store"
	"github.com/inkwell/inkwell-go/internal/testutil"
)

func TestGetUser(t *testing.T) {
	t.Run("no user in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		user := GetUser(req)
		if user != nil {
			t.Errorf("GetUser() = %v, want nil", user)
		}
	})

	t.Run("user in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		testUser := store.User{
			ID:    123,
			Email: "test@example.com",
			Name:  "Test User",
		}
		ctx := context.WithValue(req.Context(), ContextKeyUser, testUser)
		req = req.WithContext(ctx)

		user := GetUser(req)
		if user == nil {
			t.Fatal("GetUser() = nil, want user")
		}
		if user.ID != 123 {
			t.Errorf("GetUser().ID = %d, want 123", user.ID)
		}
		if user.Email != "test@example.com" {
			t.Errorf("GetUser().Email = %q, want %q", user.Email, "test@example.com")
		}
	})
}

func TestGetUserID(t *testing.T) {
	t.Run("no user in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		id := GetUserID(req)
		if id != 0 {
			t.Errorf("GetUserID() = %d, want 0", id)
		}
	})

	t.Run("user in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		testUser := store.User{ID: 456}
		ctx := context.WithValue(req.Context(), ContextKeyUser, testUser)
		req = req.WithContext(ctx)

		id := GetUserID(req)
		if id != 456 {
			t.Errorf("GetUserID() = %d, want 456", id)
		}
	})
}

func TestGetUserIDPtr(t *testing.T) {
	t.Run("no user in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		idPtr := GetUserIDPtr(req)
		if idPtr != nil {
			t.Errorf("GetUserIDPtr() = %v, want nil", idPtr)
		}
	})

	t.Run("user in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		testUser := store.User{ID: 789}
		ctx := context.WithValue(req.Context(), ContextKeyUser, testUser)
		req = req.WithContext(ctx)

		idPtr := GetUserIDPtr(req)
		if idPtr == nil {
			t.Fatal("GetUserIDPtr() = nil, want pointer")
		}
		if *idPtr != 789 {
			t.Errorf("*GetUserIDPtr() = %d, want 789", *idPtr)
		}
	})
}

// createAccount inserts a user row directly for session tests.
func createAccount(t *testing.T, db *sql.DB, name, email string) store.User {
	t.Helper()

	now := time.Now()
	user, err := store.New(db).CreateUser(context.Background(), store.CreateUserParams{
		Email:        email,
		PasswordHash: "not-a-real-hash",
		Name:         name,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user
}

// sessionCookieFor establishes a session holding the given user id and
// returns its cookie for replay in later requests.
func sessionCookieFor(t *testing.T, sm *scs.SessionManager, userID int64) *http.Cookie {
	t.Helper()

	h := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sm.Put(r.Context(), SessionKeyUserID, userID)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	for _, c := range rec.Result().Cookies() {
		if c.Name == sm.Cookie.Name {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestOptionalLoadUser_StaleSession(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	sm := session.New(db, true)
	user := createAccount(t, db, "ghost", "ghost@example.com")
	cookie := sessionCookieFor(t, sm, user.ID)

	var called bool
	var seen *store.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		seen = GetUser(r)
	})
	handler := sm.LoadAndSave(OptionalLoadUser(sm, db)(next))

	// With the account present the user lands in context.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called {
		t.Fatal("next handler not called for live account")
	}
	if seen == nil || seen.ID != user.ID {
		t.Fatalf("GetUser() = %v, want user %d", seen, user.ID)
	}

	// Delete the account out from under the session: the request must
	// proceed anonymously rather than error or redirect.
	if _, err := db.Exec("DELETE FROM users WHERE id = ?", user.ID); err != nil {
		t.Fatalf("deleting user: %v", err)
	}

	called = false
	seen = &store.User{}
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !called {
		t.Fatal("next handler not called for stale session")
	}
	if seen != nil {
		t.Errorf("GetUser() = %v, want nil for stale session", seen)
	}
}

func TestLoadUser_StaleSession(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	sm := session.New(db, true)
	user := createAccount(t, db, "ghost", "ghost@example.com")
	cookie := sessionCookieFor(t, sm, user.ID)

	if _, err := db.Exec("DELETE FROM users WHERE id = ?", user.ID); err != nil {
		t.Fatalf("deleting user: %v", err)
	}

	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	handler := sm.LoadAndSave(LoadUser(sm, db)(next))

	req := httptest.NewRequest(http.MethodGet, "/admin/posts", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if called {
		t.Error("next handler called for stale session")
	}
	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}

	// The session was destroyed, so replaying the cookie yields no user id.
	var storedID int64
	replay := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		storedID = sm.GetInt64(r.Context(), SessionKeyUserID)
	}))
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	replay.ServeHTTP(httptest.NewRecorder(), req)

	if storedID != 0 {
		t.Errorf("session user id after destroy = %d, want 0", storedID)
	}
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireAdmin()(next)

	t.Run("anonymous redirects to login", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin/posts/new", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusSeeOther)
		}
		if loc := rec.Header().Get("Location"); loc != "/login" {
			t.Errorf("Location = %q, want /login", loc)
		}
	})

	t.Run("non-admin gets 403", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin/posts/new", nil)
		ctx := context.WithValue(req.Context(), ContextKeyUser, store.User{ID: 2})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req.WithContext(ctx))

		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
		}
	})

	t.Run("admin passes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin/posts/new", nil)
		ctx := context.WithValue(req.Context(), ContextKeyUser, store.User{ID: service.AdminUserID})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req.WithContext(ctx))

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})
}

func TestRequestPath(t *testing.T) {
	var captured string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetRequestPath(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/post/7", nil)
	rec := httptest.NewRecorder()
	RequestPath(next).ServeHTTP(rec, req)

	if captured != "/post/7" {
		t.Errorf("request path = %q, want /post/7", captured)
	}
}
