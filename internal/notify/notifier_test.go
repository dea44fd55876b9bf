package notify

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestChangeBody(t *testing.T) {
	body := ChangeBody([]string{"2026-01-02|07:00|1", "2026-01-02|08:00|2"})
	want := "2026-01-02|07:00|1\n2026-01-02|08:00|2"
	if body != want {
		t.Fatalf("ChangeBody = %q, want %q", body, want)
	}
	if ChangeBody(nil) != "" {
		t.Fatalf("ChangeBody(nil) = %q, want empty", ChangeBody(nil))
	}
}

func TestConsole_NotifyLogsThroughSlog(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	c := NewConsole()
	if err := c.Notify(context.Background(), "Tennis availability changes", "line1\nline2"); err != nil {
		t.Fatalf("Notify returned error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Tennis availability changes") {
		t.Fatalf("log output = %q, want subject present", out)
	}
	if !strings.Contains(out, "line1; line2") {
		t.Fatalf("log output = %q, want body on one line", out)
	}
}

func TestNewGmail_RequiresAddressing(t *testing.T) {
	_, err := NewGmail(GmailConfig{From: "", To: "a@example.com", RefreshToken: "tok"})
	if err == nil || !strings.Contains(err.Error(), "from/to") {
		t.Fatalf("NewGmail error = %v, want from/to error", err)
	}
	_, err = NewGmail(GmailConfig{From: "a@example.com", To: " ", RefreshToken: "tok"})
	if err == nil {
		t.Fatalf("NewGmail accepted blank To, want error")
	}
}

func TestNewGmail_RequiresCredentials(t *testing.T) {
	_, err := NewGmail(GmailConfig{From: "a@example.com", To: "b@example.com"})
	if err == nil || !strings.Contains(err.Error(), "credentials") {
		t.Fatalf("NewGmail error = %v, want credentials error", err)
	}

	if _, err := NewGmail(GmailConfig{From: "a@example.com", To: "b@example.com", AccessToken: "tok"}); err != nil {
		t.Fatalf("NewGmail with access token returned error: %v", err)
	}
}

func TestBuildMessage(t *testing.T) {
	msg := buildMessage("a@example.com", "b@example.com", "Tennis availability changes", "2026-01-02|07:00|1")

	headerBody := strings.SplitN(msg, "\r\n\r\n", 2)
	if len(headerBody) != 2 {
		t.Fatalf("message has no blank line between headers and body: %q", msg)
	}
	headers := headerBody[0]
	for _, want := range []string{
		"From: a@example.com",
		"To: b@example.com",
		"Subject: Tennis availability changes",
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="utf-8"`,
	} {
		if !strings.Contains(headers, want) {
			t.Fatalf("headers = %q, want %q present", headers, want)
		}
	}
	if headerBody[1] != "2026-01-02|07:00|1" {
		t.Fatalf("body = %q, want the change key", headerBody[1])
	}
}
