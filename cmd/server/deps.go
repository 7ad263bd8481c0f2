package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/jrsteele09/diplomats-site/calendar"
	"github.com/jrsteele09/diplomats-site/calendar/calendarfake"
	"github.com/jrsteele09/diplomats-site/fundraisers"
	fundraiserfake "github.com/jrsteele09/diplomats-site/fundraisers/repofake"
	"github.com/jrsteele09/diplomats-site/identity"
	"github.com/jrsteele09/diplomats-site/internal/config"
	"github.com/jrsteele09/diplomats-site/internal/errors"
	"github.com/jrsteele09/diplomats-site/internal/metrics"
	memberfake "github.com/jrsteele09/diplomats-site/members/repofake"
	"github.com/jrsteele09/diplomats-site/mongorepo"
	"github.com/jrsteele09/diplomats-site/notify"
	questionfake "github.com/jrsteele09/diplomats-site/questions/repofake"
	"github.com/jrsteele09/diplomats-site/server"
	"github.com/jrsteele09/diplomats-site/sessions"
	"github.com/jrsteele09/diplomats-site/tasks"
	"github.com/rs/zerolog/log"
)

const mockMemberEmail = "jane.doe@example.org"

// app owns the collaborators that outlive a single request.
type app struct {
	deps   server.Deps
	tasks  *tasks.Async
	texter notify.Texter
	// closeStore releases the database connection; nil in mock mode.
	closeStore func(context.Context) error
}

// openStore connects the MongoDB repositories. It can be overridden in tests.
var openStore = func(ctx context.Context, cfg config.Config) (server.Repos, func(context.Context) error, error) {
	store, err := mongorepo.Connect(ctx, cfg.GetMongoURI(), cfg.GetMongoDatabase(), cfg.GetExternalTimeout())
	if err != nil {
		return server.Repos{}, nil, err
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		_ = store.Close(ctx)
		return server.Repos{}, nil, err
	}
	log.Info().Str("database", cfg.GetMongoDatabase()).Msg("Connected to MongoDB")
	return server.Repos{
		Members:     store.Members(),
		Questions:   store.Questions(),
		Fundraisers: store.Fundraisers(),
	}, store.Close, nil
}

// buildApp wires every collaborator. On error anything already opened is closed.
func buildApp(ctx context.Context, cfg config.Config) (_ *app, err error) {
	m := metrics.New()
	a := &app{
		tasks: tasks.NewAsync(cfg.GetTaskTimeout(), cfg.GetTaskMaxConcurrent(), m),
	}
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	repos, err := a.buildRepos(ctx, cfg)
	if err != nil {
		return nil, err
	}

	provider, err := buildProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}

	codec, err := buildCodec(cfg)
	if err != nil {
		return nil, err
	}

	dispatcher, err := buildDispatcher(cfg)
	if err != nil {
		return nil, err
	}

	cal, err := buildCalendar(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if texter, err := notify.NewTwilioTexter(cfg); err == nil {
		a.texter = texter
	} else {
		log.Debug().Err(err).Msg("SMS alerts disabled")
	}

	a.deps = server.Deps{
		Repos:      repos,
		Provider:   provider,
		Sessions:   codec,
		Tasks:      a.tasks,
		Dispatcher: dispatcher,
		Calendar:   cal,
		Metrics:    m,
	}
	if secret := cfg.GetReCaptchaSecret(); secret != "" {
		a.deps.Captcha = server.NewReCaptcha(secret, cfg.GetExternalTimeout())
	}
	return a, nil
}

// buildRepos connects to MongoDB, or seeds in-memory repos in mock mode.
func (a *app) buildRepos(ctx context.Context, cfg config.Config) (server.Repos, error) {
	if cfg.GetMock() {
		log.Warn().Str("member", mockMemberEmail).Msg("Mock mode: using in-memory repositories")
		return server.Repos{
			Members:   memberfake.NewFakeMemberRepo(mockMemberEmail),
			Questions: questionfake.NewFakeQuestionRepo(),
			Fundraisers: fundraiserfake.NewFakeFundraiserRepo(fundraisers.Fundraiser{
				Name:     "Bake Sale",
				Date:     time.Now().AddDate(0, 0, 14).Truncate(24 * time.Hour),
				Location: "Engineering Hall Lobby",
			}),
		}, nil
	}

	repos, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return server.Repos{}, err
	}
	a.closeStore = closeStore
	return repos, nil
}

func buildProvider(ctx context.Context, cfg config.Config) (identity.Provider, error) {
	switch {
	case cfg.GetMock():
		return identity.NewMock(cfg.GetRedirectURL()), nil
	case cfg.GetIssuer() != "":
		return identity.NewOIDC(ctx, cfg)
	case cfg.GetClientID() == "" || cfg.GetClientSecret() == "":
		return nil, errors.Wrapf(errors.ErrNotConfigured, "AZURE_ID and AZURE_KEY are required")
	default:
		return identity.NewMicrosoft(cfg), nil
	}
}

// buildCodec derives the session key. Mock mode without SECRET_KEY gets a
// random key, so sessions do not survive a restart.
func buildCodec(cfg config.Config) (*sessions.Codec, error) {
	secret := cfg.GetSecretKey()
	if secret == "" && cfg.GetMock() {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("generating session secret: %w", err)
		}
		secret = hex.EncodeToString(buf)
	}
	key, err := sessions.DeriveKey(secret)
	if err != nil {
		return nil, err
	}
	return sessions.NewCodec(key, cfg.GetAppName(), cfg.GetMaxSessionAge())
}

func buildDispatcher(cfg config.Config) (*notify.Dispatcher, error) {
	from := cfg.GetSmtpAccount()
	if from == "" {
		from = "noreply@localhost.localdomain"
	}

	var mailer notify.Mailer = notify.LogMailer{}
	if !cfg.GetMock() && cfg.GetSmtpHost() != "" {
		smtp, err := notify.NewSMTPMailer(cfg, cfg.GetExternalTimeout())
		if err != nil {
			return nil, err
		}
		mailer = smtp
	} else {
		log.Warn().Msg("No SMTP server configured: emails will be logged, not sent")
	}
	return notify.NewDispatcher(mailer, from, cfg.GetMaintainer(), cfg.GetAppName(), cfg.GetBaseURL())
}

func buildCalendar(ctx context.Context, cfg config.Config) (calendar.Client, error) {
	if cfg.GetMock() {
		return calendarfake.Demo(time.Now()), nil
	}
	return calendar.NewGoogle(ctx, cfg)
}

// alertMaintainer texts the maintainer in the background when SMS is configured.
func (a *app) alertMaintainer(body string) {
	if a.texter == nil {
		return
	}
	a.tasks.Submit("maintainer_sms", func(ctx context.Context) error {
		return a.texter.Text(ctx, body)
	})
}

func (a *app) close() {
	if a.closeStore == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.closeStore(ctx); err != nil {
		log.Err(err).Msg("Failed to close MongoDB connection")
	}
	a.closeStore = nil
}
