// Package mongorepo implements the member, question and fundraiser
// repositories on MongoDB, using the collection layout of the existing
// "diplomats" database.
package mongorepo

import (
	"context"
	"fmt"
	"time"

	"github.com/jrsteele09/diplomats-site/internal/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	membersCollection     = "registered_diplomats"
	questionsCollection   = "questions"
	fundraisersCollection = "fundraisers"
	pointsCollection      = "points"
)

// Store owns the client connection. The driver pools connections and is
// safe for concurrent use by all requests and background tasks.
type Store struct {
	client  *mongo.Client
	db      *mongo.Database
	timeout time.Duration
}

// Connect dials MongoDB and verifies the primary is reachable.
func Connect(ctx context.Context, uri, database string, timeout time.Duration) (*Store, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(timeout).
		SetTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.Mark(fmt.Errorf("mongo connect: %w", err), errors.ErrStoreUnavailable)
	}

	s := New(client, database, timeout)
	if err := s.Ping(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

// New wraps an already connected client.
func New(client *mongo.Client, database string, timeout time.Duration) *Store {
	return &Store{
		client:  client,
		db:      client.Database(database),
		timeout: timeout,
	}
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

// EnsureIndexes creates the unique question id index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	_, err := s.db.Collection(questionsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    map[string]int{"question_id": 1},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return unavailable("create question index", err)
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) Members() *MemberRepo {
	return &MemberRepo{store: s}
}

func (s *Store) Questions() *QuestionRepo {
	return &QuestionRepo{store: s}
}

func (s *Store) Fundraisers() *FundraiserRepo {
	return &FundraiserRepo{store: s}
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func unavailable(op string, err error) error {
	return errors.Mark(fmt.Errorf("mongo %s: %w", op, err), errors.ErrStoreUnavailable)
}
