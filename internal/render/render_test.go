package render

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/inkwell/inkwell-go/internal/service"
	"github.com/inkwell/inkwell-go/internal/store"
)

func testTemplatesFS() fstest.MapFS {
	return fstest.MapFS{
		"layouts/base.html": &fstest.MapFile{
			Data: []byte(`{{define "base"}}<html><body>{{template "content" .}}</body></html>{{end}}`),
		},
		"pages/home.html": &fstest.MapFile{
			Data: []byte(`{{define "content"}}<h1>{{.Title}}</h1>{{if .IsAdmin}}<span>admin</span>{{end}}{{end}}`),
		},
	}
}

func TestNew_ParsesPages(t *testing.T) {
	r, err := New(Config{TemplatesFS: testTemplatesFS(), SiteName: "Inkwell"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := r.templates["home"]; !ok {
		t.Error("home template not parsed")
	}
}

func TestRender(t *testing.T) {
	r, err := New(Config{TemplatesFS: testTemplatesFS(), SiteName: "Inkwell"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	err = r.Render(rec, req, "home", TemplateData{Title: "Welcome"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "<h1>Welcome</h1>") {
		t.Errorf("body = %q, want title rendered", body)
	}
	if strings.Contains(body, "admin") {
		t.Error("anonymous render should not mark admin")
	}
}

func TestRender_AdminFlag(t *testing.T) {
	r, err := New(Config{TemplatesFS: testTemplatesFS(), SiteName: "Inkwell"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	admin := &store.User{ID: service.AdminUserID}
	if err := r.Render(rec, req, "home", TemplateData{CurrentUser: admin}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "admin") {
		t.Error("administrator render should set IsAdmin")
	}
}

func TestRender_UnknownTemplate(t *testing.T) {
	r, err := New(Config{TemplatesFS: testTemplatesFS()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	if err := r.Render(rec, req, "missing", TemplateData{}); err == nil {
		t.Error("expected error for unknown template")
	}
}

func TestGravatarURL(t *testing.T) {
	got := GravatarURL(" Alice@Example.COM ")

	// md5("alice@example.com")
	want := "https://www.gravatar.com/avatar/c160f8cc69a4f0bf2b0362752353d060?d=retro&s=100"
	if got != want {
		t.Errorf("GravatarURL = %q, want %q", got, want)
	}
}
