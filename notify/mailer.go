// Package notify sends the site's outbound mail and SMS. Every send made
// from a request happens inside a background task; callers never see
// transport failures.
package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jrsteele09/diplomats-site/internal/config"
	"github.com/jrsteele09/diplomats-site/internal/errors"
	"github.com/rs/zerolog/log"
	"github.com/wneessen/go-mail"
)

// Message is a single HTML email.
type Message struct {
	From    string
	To      []string
	Bcc     []string
	Subject string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer delivers over implicit TLS with PLAIN auth.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	timeout  time.Duration
}

var _ Mailer = (*SMTPMailer)(nil)

func NewSMTPMailer(cfg config.MailConfig, timeout time.Duration) (*SMTPMailer, error) {
	if cfg.GetSmtpHost() == "" {
		return nil, errors.Wrapf(errors.ErrNotConfigured, "smtp host")
	}
	return &SMTPMailer{
		host:     cfg.GetSmtpHost(),
		port:     cfg.GetSmtpPort(),
		username: cfg.GetSmtpAccount(),
		password: cfg.GetSmtpPassword(),
		timeout:  timeout,
	}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	email, err := buildMsg(msg)
	if err != nil {
		return err
	}

	opts := []mail.Option{
		mail.WithPort(m.port),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.username),
		mail.WithPassword(m.password),
	}
	if m.timeout > 0 {
		opts = append(opts, mail.WithTimeout(m.timeout))
	}
	client, err := mail.NewClient(m.host, opts...)
	if err != nil {
		return errors.Mark(fmt.Errorf("smtp client: %w", err), errors.ErrDispatch)
	}
	if err := client.DialAndSendWithContext(ctx, email); err != nil {
		return errors.Mark(fmt.Errorf("sending %q: %w", msg.Subject, err), errors.ErrDispatch)
	}
	return nil
}

func buildMsg(msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return nil, errors.Mark(fmt.Errorf("from %q: %w", msg.From, err), errors.ErrDispatch)
	}
	if err := m.To(msg.To...); err != nil {
		return nil, errors.Mark(fmt.Errorf("to %v: %w", msg.To, err), errors.ErrDispatch)
	}
	if len(msg.Bcc) > 0 {
		if err := m.Bcc(msg.Bcc...); err != nil {
			return nil, errors.Mark(fmt.Errorf("bcc %v: %w", msg.Bcc, err), errors.ErrDispatch)
		}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)
	return m, nil
}

// LogMailer writes messages to the log instead of sending them. It is used
// in mock mode and whenever no SMTP server is configured.
type LogMailer struct{}

var _ Mailer = LogMailer{}

func (LogMailer) Send(_ context.Context, msg Message) error {
	if _, err := buildMsg(msg); err != nil {
		return err
	}
	log.Info().
		Str("from", msg.From).
		Strs("to", msg.To).
		Strs("bcc", msg.Bcc).
		Str("subject", msg.Subject).
		Int("body_bytes", len(msg.HTML)).
		Msg("email (not sent)")
	return nil
}

// RecordingMailer keeps every message in memory. FailFor makes sends to a
// matching recipient fail.
type RecordingMailer struct {
	mu      sync.Mutex
	sent    []Message
	FailFor map[string]error
}

var _ Mailer = (*RecordingMailer)(nil)

func (r *RecordingMailer) Send(_ context.Context, msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, to := range msg.To {
		if err, ok := r.FailFor[strings.ToLower(to)]; ok {
			return errors.Mark(err, errors.ErrDispatch)
		}
	}
	r.sent = append(r.sent, msg)
	return nil
}

func (r *RecordingMailer) Sent() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.sent...)
}
