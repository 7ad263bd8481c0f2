package notify

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/jrsteele09/diplomats-site/internal/errors"
	"github.com/jrsteele09/diplomats-site/questions"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	confirmationTemplate = "confirmation.html"
	notificationTemplate = "notification.html"
	answerTemplate       = "answer.html"
)

// Dispatcher renders and sends the question workflow emails.
type Dispatcher struct {
	mailer     Mailer
	from       string
	maintainer string
	siteName   string
	siteURL    string
	templates  *template.Template
}

func NewDispatcher(mailer Mailer, from, maintainer, siteName, siteURL string) (*Dispatcher, error) {
	if mailer == nil {
		return nil, errors.Wrapf(errors.ErrNotConfigured, "[NewDispatcher] mailer is required")
	}
	tmpl, err := template.New("emails").Funcs(template.FuncMap{
		"date": func(t time.Time) string { return t.Format("Monday, January 2, 2006 at 3:04 PM MST") },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing email templates: %w", err)
	}
	return &Dispatcher{
		mailer:     mailer,
		from:       from,
		maintainer: maintainer,
		siteName:   siteName,
		siteURL:    siteURL,
		templates:  tmpl,
	}, nil
}

type emailData struct {
	SiteName   string
	SiteURL    string
	Question   questions.Question
	Answer     string
	AnsweredBy string
}

// SendConfirmation tells the asker their question arrived.
func (d *Dispatcher) SendConfirmation(ctx context.Context, q questions.Question) error {
	body, err := d.render(confirmationTemplate, emailData{Question: q})
	if err != nil {
		return err
	}
	return d.mailer.Send(ctx, Message{
		From:    d.from,
		To:      []string{q.AskerEmail},
		Bcc:     d.bcc(),
		Subject: fmt.Sprintf("Question Received - %s", d.siteName),
		HTML:    body,
	})
}

// SendNotification tells the maintainer a new question is waiting.
func (d *Dispatcher) SendNotification(ctx context.Context, q questions.Question) error {
	if d.maintainer == "" {
		return errors.Wrapf(errors.ErrNotConfigured, "no maintainer address for question %s", q.ID)
	}
	body, err := d.render(notificationTemplate, emailData{Question: q})
	if err != nil {
		return err
	}
	return d.mailer.Send(ctx, Message{
		From:    d.from,
		To:      []string{d.maintainer},
		Subject: fmt.Sprintf("New Question Submitted - %s", d.siteName),
		HTML:    body,
	})
}

func (d *Dispatcher) SendAnswer(ctx context.Context, q questions.Question, answer, answeredBy string) error {
	body, err := d.render(answerTemplate, emailData{Question: q, Answer: answer, AnsweredBy: answeredBy})
	if err != nil {
		return err
	}
	return d.mailer.Send(ctx, Message{
		From:    d.from,
		To:      []string{q.AskerEmail},
		Bcc:     d.bcc(),
		Subject: fmt.Sprintf("Your question has been answered - %s", d.siteName),
		HTML:    body,
	})
}

// QuestionReceived sends the confirmation and the maintainer notification.
// The two sends are independent: a failed confirmation does not stop the
// notification. Failures are joined.
func (d *Dispatcher) QuestionReceived(ctx context.Context, q questions.Question) error {
	var errs []error
	if err := d.SendConfirmation(ctx, q); err != nil {
		errs = append(errs, fmt.Errorf("confirmation: %w", err))
	}
	if err := d.SendNotification(ctx, q); err != nil {
		errs = append(errs, fmt.Errorf("notification: %w", err))
	}
	return errors.Join(errs...)
}

// AnswerQuestion finds the answered question in the task's list and mails
// the answer to the asker.
func (d *Dispatcher) AnswerQuestion(ctx context.Context, task questions.AnswerTask) error {
	q, err := task.Question()
	if err != nil {
		return err
	}
	return d.SendAnswer(ctx, q, task.AnswerText, task.AnsweredBy)
}

func (d *Dispatcher) bcc() []string {
	if d.maintainer == "" {
		return nil
	}
	return []string{d.maintainer}
}

func (d *Dispatcher) render(name string, data emailData) (string, error) {
	data.SiteName = d.siteName
	data.SiteURL = d.siteURL
	var buf bytes.Buffer
	if err := d.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", errors.Mark(fmt.Errorf("rendering %s: %w", name, err), errors.ErrDispatch)
	}
	return buf.String(), nil
}
