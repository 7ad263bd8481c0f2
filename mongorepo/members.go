package mongorepo

import (
	"context"

	"github.com/jrsteele09/diplomats-site/internal/errors"
	"github.com/jrsteele09/diplomats-site/members"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var _ members.Repo = (*MemberRepo)(nil)

// rosterDocument is the single document holding every member email.
type rosterDocument struct {
	Emails []string `bson:"diplomat_emails"`
}

type MemberRepo struct {
	store *Store
}

func (r *MemberRepo) ListEmails(ctx context.Context) ([]string, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	var doc rosterDocument
	err := r.store.db.Collection(membersCollection).FindOne(ctx, bson.D{}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, unavailable("list members", err)
	}
	return doc.Emails, nil
}

func (r *MemberRepo) Points(ctx context.Context, email string) (members.Points, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	var p members.Points
	err := r.store.db.Collection(pointsCollection).
		FindOne(ctx, bson.M{"email": members.NormalizeEmail(email)}).
		Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return members.Points{}, errors.Wrapf(errors.ErrNotFound, "points for %s", email)
	}
	if err != nil {
		return members.Points{}, unavailable("get points", err)
	}
	return p, nil
}
