// Package notify delivers availability-change notifications.
package notify

import (
	"context"
	"log/slog"
	"strings"
)

// Notifier is the delivery mechanism for a notification. Implementations
// exist for Gmail and for plain console output (dry runs).
type Notifier interface {
	Notify(ctx context.Context, subject, body string) error
}

// Console logs notifications instead of sending them.
type Console struct{}

// NewConsole returns a console-only notifier.
func NewConsole() *Console {
	return &Console{}
}

// Notify implements Notifier.
func (c *Console) Notify(_ context.Context, subject, body string) error {
	slog.Info("notification", "subject", subject, "body", strings.ReplaceAll(body, "\n", "; "))
	return nil
}

// ChangeSubject is the subject line used for availability-change emails.
const ChangeSubject = "Tennis availability changes"

// ChangeBody renders the changed slot keys as an email body, one per line.
func ChangeBody(changedKeys []string) string {
	return strings.Join(changedKeys, "\n")
}
