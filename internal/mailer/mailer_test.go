package mailer

import (
	"strings"
	"testing"
)

func TestFormatMessage(t *testing.T) {
	got := formatMessage("site@example.com", Message{
		To:      "owner@example.com",
		Subject: "New contact message",
		Body:    "Hello there",
	})

	if !strings.Contains(got, "From: site@example.com\r\n") {
		t.Errorf("missing From header: %q", got)
	}
	if !strings.Contains(got, "To: owner@example.com\r\n") {
		t.Errorf("missing To header: %q", got)
	}
	if !strings.Contains(got, "Subject: New contact message\r\n") {
		t.Errorf("missing Subject header: %q", got)
	}
	if !strings.HasSuffix(got, "\r\n\r\nHello there\r\n") {
		t.Errorf("body not separated from headers: %q", got)
	}
}

func TestSanitizeHeader(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"plain subject", "plain subject"},
		{"injected\r\nBcc: evil@example.com", "injectedBcc: evil@example.com"},
		{"line\nbreak", "linebreak"},
	}

	for _, tc := range testCases {
		if got := sanitizeHeader(tc.input); got != tc.expected {
			t.Errorf("sanitizeHeader(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}
