package handler

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactForm_PrefilledForUser(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t)
	registerUser(t, c, ts.URL, "alice", "alice@example.com", "correct horse")

	_, body := get(t, c, ts.URL+RouteContact)
	assert.Contains(t, body, `value="alice"`)
	assert.Contains(t, body, `value="alice@example.com"`)
}

func TestSubmitContact(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t)
	registerUser(t, c, ts.URL, "alice", "alice@example.com", "correct horse")

	status, body := postForm(t, c, ts.URL+RouteContact, url.Values{
		"name":    {"alice"},
		"email":   {"alice@example.com"},
		"phone":   {"555-0100"},
		"message": {"I would like to write a guest post."},
	})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Message sent. Reference:")

	msgs := ts.sender.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "owner@example.com", msgs[0].To)
	assert.Contains(t, msgs[0].Body, "I would like to write a guest post.")
}

func TestSubmitContact_RequiresLogin(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t)

	status, body := postForm(t, c, ts.URL+RouteContact, url.Values{
		"name":    {"stranger"},
		"email":   {"stranger@example.com"},
		"message": {"hello"},
	})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "You need to log in to send a message")
	assert.Empty(t, ts.sender.messages())
}

func TestSubmitContact_ValidationError(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t)
	registerUser(t, c, ts.URL, "alice", "alice@example.com", "correct horse")

	_, body := postForm(t, c, ts.URL+RouteContact, url.Values{
		"name":    {"alice"},
		"email":   {"alice@example.com"},
		"message": {""},
	})
	assert.Contains(t, body, "message")
	assert.Empty(t, ts.sender.messages())
}

func TestSubmitContact_DeliveryFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.sender.fail = errors.New("smtp connection refused")

	c := newClient(t)
	registerUser(t, c, ts.URL, "alice", "alice@example.com", "correct horse")

	status, body := postForm(t, c, ts.URL+RouteContact, url.Values{
		"name":    {"alice"},
		"email":   {"alice@example.com"},
		"message": {"is anyone there?"},
	})
	require.Equal(t, http.StatusOK, status)
	// The message is stored even though the mail could not go out.
	assert.Contains(t, body, "delivery is delayed")
	assert.Contains(t, body, "Reference:")
}
