package notify

import (
	"context"
	"fmt"

	"github.com/jrsteele09/diplomats-site/internal/config"
	"github.com/jrsteele09/diplomats-site/internal/errors"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Texter sends a short SMS to the maintainer.
type Texter interface {
	Text(ctx context.Context, body string) error
}

type TwilioTexter struct {
	client *twilio.RestClient
	from   string
	to     string
}

var _ Texter = (*TwilioTexter)(nil)

// NewTwilioTexter returns ErrNotConfigured unless the account, token and
// both numbers are set.
func NewTwilioTexter(cfg config.MailConfig) (*TwilioTexter, error) {
	if cfg.GetTwilioAccountSID() == "" || cfg.GetTwilioAuthToken() == "" ||
		cfg.GetTwilioNumber() == "" || cfg.GetTwilioTarget() == "" {
		return nil, errors.Wrapf(errors.ErrNotConfigured, "twilio")
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.GetTwilioAccountSID(),
		Password: cfg.GetTwilioAuthToken(),
	})
	return &TwilioTexter{client: client, from: cfg.GetTwilioNumber(), to: cfg.GetTwilioTarget()}, nil
}

func (t *TwilioTexter) Text(ctx context.Context, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(t.to)
	params.SetFrom(t.from)
	params.SetBody(body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return errors.Mark(fmt.Errorf("twilio create message: %w", err), errors.ErrDispatch)
	}
	if resp.ErrorMessage != nil {
		return errors.Wrapf(errors.ErrDispatch, "twilio: %s", *resp.ErrorMessage)
	}
	return nil
}
