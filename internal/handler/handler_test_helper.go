package handler

import (
	"context"
	"database/sql"
	"io"
	"io/fs"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell/inkwell-go/internal/mailer"
	"github.com/inkwell/inkwell-go/internal/middleware"
	"github.com/inkwell/inkwell-go/internal/render"
	"github.com/inkwell/inkwell-go/internal/service"
	"github.com/inkwell/inkwell-go/internal/session"
	"github.com/inkwell/inkwell-go/internal/testutil"
	"github.com/inkwell/inkwell-go/web"
)

// fakeSender records sent mail instead of using SMTP.
type fakeSender struct {
	mu   sync.Mutex
	sent []mailer.Message
	fail error
}

func (f *fakeSender) Send(_ context.Context, msg mailer.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeSender) messages() []mailer.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]mailer.Message(nil), f.sent...)
}

// testServer is a fully wired application instance backed by a temp
// database, serving the real templates over httptest.
type testServer struct {
	*httptest.Server
	db     *sql.DB
	sender *fakeSender
}

// newTestServer builds the router the same way main does, minus CSRF
// and rate limiting, which have their own middleware tests.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	sessionManager := session.New(db, true)

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		t.Fatalf("templates fs: %v", err)
	}

	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		SiteName:       "Test Blog",
		IsDev:          true,
	})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	sender := &fakeSender{}
	contactService := service.NewContactService(db, sender, "owner@example.com")

	authHandler := NewAuthHandler(db, renderer, sessionManager, nil)
	blogHandler := NewBlogHandler(db, renderer)
	postAdminHandler := NewPostAdminHandler(db, renderer)
	contactHandler := NewContactHandler(contactService, renderer)
	healthHandler := NewHealthHandler(db)

	r := chi.NewRouter()
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.OptionalLoadUser(sessionManager, db))

	r.Get(RouteHealth, healthHandler.Health)
	r.Get(RouteRoot, blogHandler.Home)
	r.Get(RouteAbout, blogHandler.About)
	r.Get(RoutePost, blogHandler.ShowPost)
	r.Post(RoutePostComments, blogHandler.AddComment)

	r.Get(RouteLogin, authHandler.LoginForm)
	r.Post(RouteLogin, authHandler.Login)
	r.Get(RouteLogout, authHandler.Logout)
	r.Post(RouteLogout, authHandler.Logout)
	r.Get(RouteRegister, authHandler.RegisterForm)
	r.Post(RouteRegister, authHandler.Register)

	r.Get(RouteContact, contactHandler.ContactForm)
	r.Post(RouteContact, contactHandler.SubmitContact)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(sessionManager))
		r.Use(middleware.RequireAdmin())
		r.Get(RouteAdminPostsNew, postAdminHandler.NewPostForm)
		r.Post(RouteAdminPostsNew, postAdminHandler.CreatePost)
		r.Get(RouteAdminPostsEdit, postAdminHandler.EditPostForm)
		r.Post(RouteAdminPostsEdit, postAdminHandler.UpdatePost)
		r.Post(RouteAdminPostsDelete, postAdminHandler.DeletePost)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testServer{Server: srv, db: db, sender: sender}
}

// newClient returns an HTTP client with its own cookie jar, i.e. its
// own login session.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	return &http.Client{Jar: jar}
}

// get performs a GET and returns the final response body as a string.
func get(t *testing.T, c *http.Client, url string) (int, string) {
	t.Helper()
	resp, err := c.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return resp.StatusCode, string(body)
}

// postForm performs a form POST and returns the final response body,
// following redirects.
func postForm(t *testing.T, c *http.Client, url string, form url.Values) (int, string) {
	t.Helper()
	resp, err := c.PostForm(url, form)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return resp.StatusCode, string(body)
}

// registerUser signs up a new account through the registration form.
// The first registered account becomes the administrator.
func registerUser(t *testing.T, c *http.Client, baseURL, name, email, password string) {
	t.Helper()
	status, body := postForm(t, c, baseURL+RouteRegister, url.Values{
		"name":     {name},
		"email":    {email},
		"password": {password},
	})
	if status != http.StatusOK {
		t.Fatalf("register %s: status %d", email, status)
	}
	if !strings.Contains(body, "Welcome, "+name) {
		t.Fatalf("register %s: welcome flash not shown", email)
	}
}

// loginUser logs an existing account in through the login form.
func loginUser(t *testing.T, c *http.Client, baseURL, email, password string) {
	t.Helper()
	status, _ := postForm(t, c, baseURL+RouteLogin, url.Values{
		"email":    {email},
		"password": {password},
	})
	if status != http.StatusOK {
		t.Fatalf("login %s: status %d", email, status)
	}
}

// createPost submits the admin post creation form and returns nothing;
// the caller asserts on the rendered pages.
func createPost(t *testing.T, c *http.Client, baseURL, title, subtitle, body string) {
	t.Helper()
	status, _ := postForm(t, c, baseURL+RouteAdminPostsNew, url.Values{
		"title":    {title},
		"subtitle": {subtitle},
		"body":     {body},
	})
	if status != http.StatusOK {
		t.Fatalf("create post %q: status %d", title, status)
	}
}

