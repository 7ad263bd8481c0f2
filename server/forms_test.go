package server

import (
	"testing"

	"github.com/jrsteele09/diplomats-site/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFormMarksValidation(t *testing.T) {
	s := &Server{validate: newValidator()}

	err := s.validateForm(AskForm{Name: "Pat", Email: "not-an-email"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))

	msgs := fieldErrors(err)
	assert.Equal(t, "Enter a valid email address.", msgs["email"])
	assert.Equal(t, "This field is required.", msgs["question"])
	assert.NotContains(t, msgs, "name")

	require.NoError(t, s.validateForm(AskForm{Name: "Pat", Email: "pat@example.com", Question: "Hi?"}))
}

func TestValidateAnswerFormID(t *testing.T) {
	s := &Server{validate: newValidator()}

	err := s.validateForm(AnswerForm{QuestionID: "../../etc", Answer: "hi"})
	assert.True(t, errors.Is(err, errors.ErrValidation))
	assert.Equal(t, "This value is not valid.", fieldErrors(err)["questionid"])

	require.NoError(t, s.validateForm(AnswerForm{QuestionID: "0123456789abcdef0123456789abcdef", Answer: "hi"}))
}

func TestFieldErrorsWithoutValidatorDetail(t *testing.T) {
	msgs := fieldErrors(errors.ErrValidation)
	assert.Equal(t, map[string]string{"_": "The form could not be read."}, msgs)
}
