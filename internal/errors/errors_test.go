package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/jrsteele09/diplomats-site/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestWrapf(t *testing.T) {
	require.Nil(t, errors.Wrapf(nil, "context"))

	err := errors.Wrapf(errors.ErrNotFound, "question %s", "abc")
	require.EqualError(t, err, "question abc: not found")
	require.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestMark(t *testing.T) {
	require.Nil(t, errors.Mark(nil, errors.ErrStoreUnavailable))

	cause := stderrors.New("connection refused")
	err := errors.Mark(cause, errors.ErrStoreUnavailable)
	require.True(t, errors.Is(err, errors.ErrStoreUnavailable))
	require.True(t, errors.Is(err, cause))
	require.EqualError(t, err, "store unavailable: connection refused")
}
