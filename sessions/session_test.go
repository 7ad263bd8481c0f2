package sessions_test

import (
	"testing"

	"github.com/jrsteele09/diplomats-site/internal/errors"
	"github.com/jrsteele09/diplomats-site/sessions"
	"github.com/stretchr/testify/require"
)

var testPrincipal = sessions.Principal{
	DisplayName: "Woldemichael, Simon",
	Email:       "simon.woldemichael@ttu.edu",
	IsMember:    true,
}

func TestNewSessionIsAnonymous(t *testing.T) {
	s := sessions.New()
	require.Equal(t, sessions.Anonymous, s.State())
	require.False(t, s.IsAuthorized())
	require.False(t, s.IsMember())

	var nilSession *sessions.Session
	require.False(t, nilSession.IsAuthorized())
	require.Equal(t, sessions.Anonymous, nilSession.State())
}

func TestLoginLifecycle(t *testing.T) {
	s := sessions.New()

	require.NoError(t, s.BeginLogin("state-1"))
	require.Equal(t, sessions.LoginPending, s.State())

	require.NoError(t, s.ConsumeState("state-1"))
	require.Empty(t, s.OAuthState, "state is single use")

	require.NoError(t, s.Authorize("token", testPrincipal))
	require.Equal(t, sessions.Authorized, s.State())
	require.True(t, s.IsAuthorized())
	require.True(t, s.IsMember())

	s.Clear()
	require.Equal(t, sessions.Anonymous, s.State())
	require.Nil(t, s.Principal)
	require.Empty(t, s.TokenDigest)
}

func TestConsumeStateRejects(t *testing.T) {
	tests := []struct {
		name     string
		stored   string
		returned string
	}{
		{name: "mismatch", stored: "state-1", returned: "state-2"},
		{name: "empty returned", stored: "state-1", returned: ""},
		{name: "nothing stored", stored: "", returned: "state-1"},
		{name: "both empty", stored: "", returned: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &sessions.Session{OAuthState: tt.stored}
			err := s.ConsumeState(tt.returned)
			require.True(t, errors.Is(err, errors.ErrInvalidState))
			require.Empty(t, s.OAuthState)
			require.False(t, s.IsAuthorized())
		})
	}
}

func TestConsumeStateLeavesAuthorizationUntouched(t *testing.T) {
	s := sessions.New()
	require.NoError(t, s.Authorize("token", testPrincipal))

	require.Error(t, s.ConsumeState("replayed"))
	require.True(t, s.IsAuthorized())
}

func TestBeginLoginReplacesPendingState(t *testing.T) {
	s := sessions.New()
	require.NoError(t, s.BeginLogin("first"))
	require.NoError(t, s.BeginLogin("second"))

	require.Error(t, (&sessions.Session{OAuthState: "second"}).ConsumeState("first"))
	require.NoError(t, s.ConsumeState("second"))

	require.Error(t, sessions.New().BeginLogin(""))
}

func TestAuthorizeRequiresTokenAndEmail(t *testing.T) {
	s := sessions.New()
	require.Error(t, s.Authorize("", testPrincipal))
	require.False(t, s.IsAuthorized())

	require.Error(t, s.Authorize("token", sessions.Principal{DisplayName: "No Email"}))
	require.False(t, s.IsAuthorized())
	require.Nil(t, s.Principal)
}

func TestNonMemberPrincipal(t *testing.T) {
	s := sessions.New()
	p := testPrincipal
	p.IsMember = false
	require.NoError(t, s.Authorize("token", p))
	require.True(t, s.IsAuthorized())
	require.False(t, s.IsMember())
}

func TestFlashes(t *testing.T) {
	s := sessions.New()
	s.Flash("one")
	s.Flash("two")

	require.Equal(t, []string{"one", "two"}, s.TakeFlashes())
	require.Empty(t, s.TakeFlashes())
}

func TestStateString(t *testing.T) {
	require.Equal(t, "anonymous", sessions.Anonymous.String())
	require.Equal(t, "login_pending", sessions.LoginPending.String())
	require.Equal(t, "authorized", sessions.Authorized.String())
}

func TestAuthorizeKeepsDigestNotToken(t *testing.T) {
	s := sessions.New()
	require.NoError(t, s.Authorize("raw-provider-token", testPrincipal))

	require.Equal(t, sessions.DigestToken("raw-provider-token"), s.TokenDigest)
	require.Len(t, s.TokenDigest, 64)
	require.NotContains(t, s.TokenDigest, "raw-provider-token")
}
