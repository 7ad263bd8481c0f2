package auth_test

import (
	"context"
	"fmt"
	"net/url"
	"testing"

	"github.com/jrsteele09/diplomats-site/auth"
	"github.com/jrsteele09/diplomats-site/identity"
	"github.com/jrsteele09/diplomats-site/internal/errors"
	"github.com/jrsteele09/diplomats-site/members/repofake"
	"github.com/jrsteele09/diplomats-site/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testMemberEmail = "member@example.edu"
	testCallback    = "http://localhost:8080/authorize"
)

type fakeProvider struct {
	profile identity.Profile
	err     error
	calls   int
}

func (p *fakeProvider) AuthCodeURL(state string) string {
	return "https://idp.example/authorize?state=" + url.QueryEscape(state)
}

func (p *fakeProvider) Authenticate(context.Context, url.Values) (identity.Token, identity.Profile, error) {
	p.calls++
	if p.err != nil {
		return identity.Token{}, identity.Profile{}, p.err
	}
	return identity.Token{AccessToken: "tok"}, p.profile, nil
}

type countingRecorder map[string]int

func (c countingRecorder) IncLogin(outcome string) { c[outcome]++ }

// testFixture holds all test dependencies
type testFixture struct {
	provider *fakeProvider
	members  *repofake.FakeMemberRepo
	recorder countingRecorder
	service  *auth.AuthorizationService
}

func newFixture(t *testing.T) *testFixture {
	t.Helper()
	n := 0
	f := &testFixture{
		provider: &fakeProvider{profile: identity.Profile{DisplayName: "Doe, Jane", Email: "Member@Example.EDU"}},
		members:  repofake.NewFakeMemberRepo(testMemberEmail),
		recorder: countingRecorder{},
	}
	svc, err := auth.NewAuthorizationService(f.provider, auth.Repos{Members: f.members},
		auth.WithLoginRecorder(f.recorder),
		auth.WithStateGenerator(func() string {
			n++
			return fmt.Sprintf("state-%d", n)
		}),
	)
	require.NoError(t, err)
	f.service = svc
	return f
}

func (f *testFixture) login(t *testing.T, sess *sessions.Session) auth.CompleteResult {
	t.Helper()
	begin, err := f.service.BeginLogin(sess)
	require.NoError(t, err)
	u, err := url.Parse(begin.RedirectURL)
	require.NoError(t, err)

	res, err := f.service.CompleteLogin(context.Background(), sess, url.Values{"state": {u.Query().Get("state")}, "code": {"c"}})
	require.NoError(t, err)
	return res
}

func TestNewAuthorizationServiceRequiresDependencies(t *testing.T) {
	_, err := auth.NewAuthorizationService(nil, auth.Repos{Members: repofake.NewFakeMemberRepo()})
	require.ErrorIs(t, err, errors.ErrNotConfigured)

	_, err = auth.NewAuthorizationService(&fakeProvider{}, auth.Repos{})
	require.ErrorIs(t, err, errors.ErrNotConfigured)
}

func TestBeginLoginIssuesFreshState(t *testing.T) {
	f := newFixture(t)
	sess := sessions.New()

	first, err := f.service.BeginLogin(sess)
	require.NoError(t, err)
	assert.False(t, first.AlreadyLoggedIn)
	assert.Contains(t, first.RedirectURL, "state=state-1")
	assert.Equal(t, sessions.LoginPending, sess.State())

	second, err := f.service.BeginLogin(sess)
	require.NoError(t, err)
	assert.Contains(t, second.RedirectURL, "state=state-2")
	assert.Equal(t, "state-2", sess.OAuthState)
}

func TestBeginLoginWhenAuthorized(t *testing.T) {
	f := newFixture(t)
	sess := sessions.New()
	f.login(t, sess)

	res, err := f.service.BeginLogin(sess)
	require.NoError(t, err)
	assert.True(t, res.AlreadyLoggedIn)
	assert.Empty(t, res.RedirectURL)
	assert.Equal(t, sessions.Authorized, sess.State())
	assert.Equal(t, 1, f.recorder[auth.OutcomeAlreadyLoggedIn])
}

func TestCompleteLoginMember(t *testing.T) {
	f := newFixture(t)
	sess := sessions.New()

	res := f.login(t, sess)

	require.True(t, sess.IsAuthorized())
	assert.True(t, res.Principal.IsMember)
	assert.Equal(t, testMemberEmail, sess.Principal.Email)
	assert.Equal(t, sessions.DigestToken("tok"), sess.TokenDigest)
	assert.Empty(t, sess.OAuthState)
	assert.Equal(t, 1, f.recorder[auth.OutcomeSuccess])
}

func TestCompleteLoginNonMember(t *testing.T) {
	tests := []struct {
		name  string
		email string
	}{
		{name: "unknown address", email: "student@example.edu"},
		{name: "no partial match", email: "member@example.ed"},
		{name: "no domain match", email: "other@example.edu"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.provider.profile.Email = tc.email
			sess := sessions.New()

			res := f.login(t, sess)
			assert.True(t, sess.IsAuthorized())
			assert.False(t, res.Principal.IsMember)
			assert.False(t, sess.IsMember())
		})
	}
}

func TestCompleteLoginRejectsBadState(t *testing.T) {
	tests := []struct {
		name     string
		returned url.Values
	}{
		{name: "mismatch", returned: url.Values{"state": {"forged"}}},
		{name: "empty", returned: url.Values{"state": {""}}},
		{name: "missing", returned: url.Values{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			sess := sessions.New()
			_, err := f.service.BeginLogin(sess)
			require.NoError(t, err)

			_, err = f.service.CompleteLogin(context.Background(), sess, tc.returned)
			require.ErrorIs(t, err, errors.ErrInvalidState)
			assert.False(t, sess.IsAuthorized())
			assert.Nil(t, sess.Principal)
			assert.Empty(t, sess.TokenDigest)
			assert.Equal(t, sessions.Anonymous, sess.State())
			assert.Zero(t, f.provider.calls)
		})
	}
}

func TestCompleteLoginStateIsSingleUse(t *testing.T) {
	f := newFixture(t)
	sess := sessions.New()
	f.login(t, sess)

	// A replayed callback carries the old state, which was consumed.
	_, err := f.service.CompleteLogin(context.Background(), sess, url.Values{"state": {"state-1"}})
	require.ErrorIs(t, err, errors.ErrInvalidState)
	assert.True(t, sess.IsAuthorized(), "a rejected replay does not sign the visitor out")
}

func TestCompleteLoginAlreadyAuthorizedWithValidState(t *testing.T) {
	f := newFixture(t)
	sess := sessions.New()
	f.login(t, sess)

	sess.OAuthState = "state-x"
	res, err := f.service.CompleteLogin(context.Background(), sess, url.Values{"state": {"state-x"}})
	require.NoError(t, err)
	assert.True(t, res.AlreadyLoggedIn)
	assert.Equal(t, 1, f.provider.calls)
}

func TestCompleteLoginProviderFailure(t *testing.T) {
	f := newFixture(t)
	f.provider.err = errors.Wrapf(errors.ErrIdentity, "boom")
	sess := sessions.New()
	begin, err := f.service.BeginLogin(sess)
	require.NoError(t, err)
	u, _ := url.Parse(begin.RedirectURL)

	_, err = f.service.CompleteLogin(context.Background(), sess, url.Values{"state": {u.Query().Get("state")}})
	require.ErrorIs(t, err, errors.ErrIdentity)
	assert.Equal(t, sessions.Anonymous, sess.State())
	assert.Equal(t, 1, f.recorder[auth.OutcomeIdentityError])
}

func TestCompleteLoginStoreFailure(t *testing.T) {
	f := newFixture(t)
	f.members.Err = fmt.Errorf("connection refused")
	sess := sessions.New()
	begin, err := f.service.BeginLogin(sess)
	require.NoError(t, err)
	u, _ := url.Parse(begin.RedirectURL)

	_, err = f.service.CompleteLogin(context.Background(), sess, url.Values{"state": {u.Query().Get("state")}})
	require.ErrorIs(t, err, errors.ErrStoreUnavailable)
	assert.False(t, sess.IsAuthorized())
}

func TestLogoutIsIdempotent(t *testing.T) {
	f := newFixture(t)
	sess := sessions.New()
	f.login(t, sess)

	assert.True(t, f.service.Logout(sess))
	assert.Equal(t, sessions.Anonymous, sess.State())
	assert.False(t, f.service.Logout(sess))
	assert.Equal(t, sessions.Anonymous, sess.State())
}

func TestGreeting(t *testing.T) {
	assert.Equal(t, "Jane", auth.Greeting("Doe, Jane"))
	assert.Equal(t, "B", auth.Greeting("A,B"))
	assert.Equal(t, "Prince", auth.Greeting("Prince"))
	assert.Equal(t, "Doe,", auth.Greeting("Doe,"))
}
