package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jrsteele09/diplomats-site/internal/errors"
	"github.com/jrsteele09/diplomats-site/questions"
	"github.com/jrsteele09/diplomats-site/sessions"
	"github.com/rs/zerolog/log"
)

const (
	msgQuestionThanks   = "Thanks for your question! You will receive an email response soon!"
	msgCompleteCaptcha  = "Please complete the reCAPTCHA."
	msgAnswerIncomplete = "Please choose a question and write an answer."
	msgAlreadyAnswered  = "That question has already been answered."
)

// AskPageData backs ask.html.
type AskPageData struct {
	Form   AskForm
	Errors map[string]string
}

func (s *Server) AskPageHandler() PageHandler {
	return func(_ *http.Request, sess *sessions.Session) (Result, error) {
		form := AskForm{Name: sess.Principal.DisplayName, Email: sess.Principal.Email}
		return Render{Template: "ask.html", Data: AskPageData{Form: form}}, nil
	}
}

// AskSubmissionHandler stores the question, then hands the confirmation and
// maintainer emails to the background runner.
func (s *Server) AskSubmissionHandler() PageHandler {
	return func(r *http.Request, sess *sessions.Session) (Result, error) {
		if err := r.ParseForm(); err != nil {
			return ClientError{Code: http.StatusBadRequest}, nil
		}
		form := parseAskForm(r)

		if s.captcha != nil {
			ok, err := s.captcha.Verify(r.Context(), r.PostFormValue("g-recaptcha-response"), remoteIP(r))
			if err != nil {
				log.Err(err).Msg("recaptcha verification failed")
			}
			if !ok {
				log.Info().Msg("rejected question with failed recaptcha")
				sess.Flash(msgCompleteCaptcha)
				return Redirect{Location: RouteAsk}, nil
			}
		}

		if err := s.validateForm(form); err != nil {
			return Render{Template: "ask.html", Data: AskPageData{Form: form, Errors: fieldErrors(err)}}, nil
		}

		q := questions.New(form.Name, form.Email, form.Question)
		if err := s.repos.Questions.Insert(r.Context(), q); err != nil {
			return nil, errors.Mark(err, errors.ErrStoreUnavailable)
		}

		s.tasks.Submit("question_received", func(ctx context.Context) error {
			return s.dispatcher.QuestionReceived(ctx, q)
		})

		log.Info().Str("question_id", q.ID).Msg("Successfully submitted question")
		sess.Flash(msgQuestionThanks)
		return Redirect{Location: RouteAsk}, nil
	}
}

func (s *Server) QuestionsPageHandler() PageHandler {
	return func(r *http.Request, _ *sessions.Session) (Result, error) {
		list, err := s.repos.Questions.List(r.Context())
		if err != nil {
			return nil, errors.Mark(err, errors.ErrStoreUnavailable)
		}
		return Render{Template: "questions.html", Data: list}, nil
	}
}

// AnswerSubmissionHandler deletes the answered question and queues the
// answer email. The delete does not wait on delivery.
func (s *Server) AnswerSubmissionHandler() PageHandler {
	return func(r *http.Request, sess *sessions.Session) (Result, error) {
		if err := r.ParseForm(); err != nil {
			return ClientError{Code: http.StatusBadRequest}, nil
		}
		form := parseAnswerForm(r)
		if err := s.validateForm(form); err != nil {
			sess.Flash(msgAnswerIncomplete)
			return Redirect{Location: RouteQuestions}, nil
		}

		list, err := s.repos.Questions.List(r.Context())
		if err != nil {
			return nil, errors.Mark(err, errors.ErrStoreUnavailable)
		}
		q, err := questions.Find(list, form.QuestionID)
		if err != nil {
			sess.Flash(msgAlreadyAnswered)
			return Redirect{Location: RouteQuestions}, nil
		}

		if err := s.repos.Questions.Delete(r.Context(), q.ID); err != nil {
			if errors.Is(err, errors.ErrNotFound) {
				sess.Flash(msgAlreadyAnswered)
				return Redirect{Location: RouteQuestions}, nil
			}
			return nil, errors.Mark(err, errors.ErrStoreUnavailable)
		}

		task := questions.AnswerTask{
			QuestionID: q.ID,
			Questions:  list,
			AnswerText: form.Answer,
			AnsweredBy: sess.Principal.Email,
		}
		s.tasks.Submit("answer_question", func(ctx context.Context) error {
			return s.dispatcher.AnswerQuestion(ctx, task)
		})

		log.Info().Str("question_id", q.ID).Str("answered_by", task.AnsweredBy).Msg("question answered")
		sess.Flash(fmt.Sprintf("Your answer to %s is on its way.", q.AskerName))
		return Redirect{Location: RouteQuestions}, nil
	}
}
