package server

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jrsteele09/diplomats-site/internal/errors"
)

// AskForm is the public question form.
type AskForm struct {
	Name     string `validate:"required,max=100"`
	Email    string `validate:"required,email,max=254"`
	Question string `validate:"required,max=5000"`
}

// AnswerForm is a member's reply to a queued question.
type AnswerForm struct {
	QuestionID string `validate:"required,len=32,hexadecimal"`
	Answer     string `validate:"required,max=10000"`
}

// RSVPForm changes attendance on one calendar event.
type RSVPForm struct {
	EventID   string `validate:"required,max=1024"`
	Email     string `validate:"omitempty,email,max=254"`
	Attending bool
}

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func parseAskForm(r *http.Request) AskForm {
	return AskForm{
		Name:     strings.TrimSpace(r.PostFormValue("name")),
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Question: strings.TrimSpace(r.PostFormValue("question")),
	}
}

func parseAnswerForm(r *http.Request) AnswerForm {
	return AnswerForm{
		QuestionID: strings.TrimSpace(r.PostFormValue("question_id")),
		Answer:     strings.TrimSpace(r.PostFormValue("answer")),
	}
}

func parseRSVPForm(r *http.Request) RSVPForm {
	attending := r.PostFormValue("attending")
	return RSVPForm{
		EventID:   strings.TrimSpace(r.PostFormValue("event_id")),
		Email:     strings.TrimSpace(r.PostFormValue("email")),
		Attending: attending == "" || attending == "yes" || attending == "true",
	}
}

// validateForm checks form against its struct tags. Failures are marked
// ErrValidation with the validator's field errors kept in the chain.
func (s *Server) validateForm(form any) error {
	if err := s.validate.Struct(form); err != nil {
		return errors.Mark(err, errors.ErrValidation)
	}
	return nil
}

// fieldErrors turns validator errors into messages keyed by field name.
func fieldErrors(err error) map[string]string {
	out := map[string]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["_"] = "The form could not be read."
		return out
	}
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out[field] = "This field is required."
		case "email":
			out[field] = "Enter a valid email address."
		case "max":
			out[field] = "This is too long."
		default:
			out[field] = "This value is not valid."
		}
	}
	return out
}
