package handler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHome_Empty(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t)

	status, body := get(t, c, ts.URL+RouteRoot)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "No posts yet.")
}

func TestHome_ListsPosts(t *testing.T) {
	ts := newTestServer(t)
	admin := newClient(t)
	registerUser(t, admin, ts.URL, "admin", "admin@example.com", "admin password")
	createPost(t, admin, ts.URL, "First Post", "A beginning", "<p>Hello.</p>")
	createPost(t, admin, ts.URL, "Second Post", "", "<p>More.</p>")

	c := newClient(t)
	_, body := get(t, c, ts.URL+RouteRoot)
	assert.Contains(t, body, "First Post")
	assert.Contains(t, body, "Second Post")
	assert.Contains(t, body, "Posted by admin")
	// Anonymous visitors never see the admin controls.
	assert.NotContains(t, body, "/admin/posts/1/edit")
}

func TestShowPost(t *testing.T) {
	ts := newTestServer(t)
	admin := newClient(t)
	registerUser(t, admin, ts.URL, "admin", "admin@example.com", "admin password")
	createPost(t, admin, ts.URL, "First Post", "A beginning", "<p>Hello there.</p>")

	c := newClient(t)
	status, body := get(t, c, ts.URL+"/post/1")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "First Post")
	assert.Contains(t, body, "Hello there.")
	assert.Contains(t, body, "No comments yet.")
}

func TestShowPost_NotFound(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t)

	status, _ := get(t, c, ts.URL+"/post/999")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = get(t, c, ts.URL+"/post/abc")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAddComment(t *testing.T) {
	ts := newTestServer(t)
	admin := newClient(t)
	registerUser(t, admin, ts.URL, "admin", "admin@example.com", "admin password")
	createPost(t, admin, ts.URL, "First Post", "", "<p>Hello.</p>")

	reader := newClient(t)
	registerUser(t, reader, ts.URL, "bob", "bob@example.com", "reader password")

	status, body := postForm(t, reader, ts.URL+"/post/1/comments", url.Values{
		"text": {"Great read, thanks!"},
	})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Comment posted")
	assert.Contains(t, body, "Great read, thanks!")
	assert.Contains(t, body, "bob")
	// Commenter avatars come from Gravatar.
	assert.Contains(t, body, "gravatar.com/avatar/")
}

func TestAddComment_RequiresLogin(t *testing.T) {
	ts := newTestServer(t)
	admin := newClient(t)
	registerUser(t, admin, ts.URL, "admin", "admin@example.com", "admin password")
	createPost(t, admin, ts.URL, "First Post", "", "<p>Hello.</p>")

	anon := newClient(t)
	status, body := postForm(t, anon, ts.URL+"/post/1/comments", url.Values{
		"text": {"drive-by comment"},
	})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "You need to log in to comment")

	// The comment was not stored.
	_, body = get(t, anon, ts.URL+"/post/1")
	assert.NotContains(t, body, "drive-by comment")
}

func TestAddComment_MissingPost(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t)
	registerUser(t, c, ts.URL, "admin", "admin@example.com", "admin password")

	status, _ := postForm(t, c, ts.URL+"/post/999/comments", url.Values{
		"text": {"hello?"},
	})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAddComment_SanitizesHTML(t *testing.T) {
	ts := newTestServer(t)
	admin := newClient(t)
	registerUser(t, admin, ts.URL, "admin", "admin@example.com", "admin password")
	createPost(t, admin, ts.URL, "First Post", "", "<p>Hello.</p>")

	_, body := postForm(t, admin, ts.URL+"/post/1/comments", url.Values{
		"text": {`<script>alert(1)</script>nice post`},
	})
	assert.Contains(t, body, "nice post")
	assert.NotContains(t, body, "<script>")
}

func TestAbout(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t)

	status, body := get(t, c, ts.URL+RouteAbout)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "About")
}
