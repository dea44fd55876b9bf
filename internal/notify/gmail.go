package notify

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

const googleTokenURL = "https://oauth2.googleapis.com/token"

// GmailConfig carries the OAuth2 credentials and addressing for Gmail
// delivery. From must be the authorized account.
type GmailConfig struct {
	From         string
	To           string
	AccessToken  string
	RefreshToken string
	ClientID     string
	ClientSecret string
}

// Gmail sends notifications through the Gmail API as the authorized user.
type Gmail struct {
	cfg GmailConfig
}

// Ensure Gmail implements Notifier at compile time.
var _ Notifier = (*Gmail)(nil)

// NewGmail validates the addressing and returns a Gmail notifier. Token
// refresh happens lazily on send, so an expired access token is fine as long
// as a refresh token is configured.
func NewGmail(cfg GmailConfig) (*Gmail, error) {
	if strings.TrimSpace(cfg.From) == "" || strings.TrimSpace(cfg.To) == "" {
		return nil, fmt.Errorf("email from/to not configured")
	}
	if cfg.AccessToken == "" && cfg.RefreshToken == "" {
		return nil, fmt.Errorf("no gmail credentials configured")
	}
	return &Gmail{cfg: cfg}, nil
}

// Notify implements Notifier by sending a plain-text email.
func (g *Gmail) Notify(ctx context.Context, subject, body string) error {
	_, err := g.Send(ctx, subject, body)
	return err
}

// Send delivers the message and returns the Gmail message id.
func (g *Gmail) Send(ctx context.Context, subject, body string) (string, error) {
	svc, err := gmail.NewService(ctx, option.WithTokenSource(g.tokenSource(ctx)))
	if err != nil {
		return "", fmt.Errorf("init gmail service: %w", err)
	}

	raw := base64.URLEncoding.EncodeToString([]byte(buildMessage(g.cfg.From, g.cfg.To, subject, body)))
	sent, err := svc.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("send message: %w", err)
	}
	return sent.Id, nil
}

func (g *Gmail) tokenSource(ctx context.Context) oauth2.TokenSource {
	conf := &oauth2.Config{
		ClientID:     g.cfg.ClientID,
		ClientSecret: g.cfg.ClientSecret,
		Endpoint:     oauth2.Endpoint{TokenURL: googleTokenURL},
		Scopes:       []string{gmail.GmailSendScope},
	}
	token := &oauth2.Token{
		AccessToken:  g.cfg.AccessToken,
		RefreshToken: g.cfg.RefreshToken,
	}
	return conf.TokenSource(ctx, token)
}

// buildMessage assembles an RFC 2822 plain-text message.
func buildMessage(from, to, subject, body string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return b.String()
}
