package identity

import (
	"context"
	"net/url"

	"github.com/jrsteele09/diplomats-site/internal/errors"
)

const (
	MockAccessToken = "mock-access-token"
	mockName        = "Doe, Jane"
	mockEmail       = "jane.doe@example.org"
)

// Mock skips the external provider. The consent URL points straight back
// at the callback, and the profile is read from the callback's name and
// email parameters so tests and local runs can choose who signs in.
type Mock struct {
	callback string
}

var _ Provider = (*Mock)(nil)

func NewMock(callbackURL string) *Mock {
	return &Mock{callback: callbackURL}
}

func (m *Mock) AuthCodeURL(state string) string {
	u, err := url.Parse(m.callback)
	if err != nil {
		u = &url.URL{Path: "/authorize"}
	}
	q := u.Query()
	q.Set("state", state)
	u.RawQuery = q.Encode()
	return u.String()
}

func (m *Mock) Authenticate(_ context.Context, callback url.Values) (Token, Profile, error) {
	if e := callback.Get("error"); e != "" {
		return Token{}, Profile{}, errors.Wrapf(errors.ErrIdentity, "mock provider returned %s", e)
	}
	p := Profile{
		DisplayName: callback.Get("name"),
		Email:       callback.Get("email"),
	}
	if p.DisplayName == "" {
		p.DisplayName = mockName
	}
	if p.Email == "" {
		p.Email = mockEmail
	}
	return Token{AccessToken: MockAccessToken}, p, nil
}
