package mongorepo

import (
	"context"

	"github.com/jrsteele09/diplomats-site/internal/errors"
	"github.com/jrsteele09/diplomats-site/questions"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ questions.Repo = (*QuestionRepo)(nil)

type QuestionRepo struct {
	store *Store
}

func (r *QuestionRepo) Insert(ctx context.Context, q questions.Question) error {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	res, err := r.store.db.Collection(questionsCollection).InsertOne(ctx, q)
	if err != nil {
		return unavailable("insert question", err)
	}
	if res.InsertedID == nil {
		return errors.Mark(errors.Wrapf(errors.ErrInternal, "insert question %s: no id returned", q.ID), errors.ErrStoreUnavailable)
	}
	return nil
}

func (r *QuestionRepo) List(ctx context.Context) ([]questions.Question, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "submission_date", Value: 1}})
	cur, err := r.store.db.Collection(questionsCollection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, unavailable("list questions", err)
	}
	list := make([]questions.Question, 0)
	if err := cur.All(ctx, &list); err != nil {
		return nil, unavailable("decode questions", err)
	}
	return list, nil
}

func (r *QuestionRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	res, err := r.store.db.Collection(questionsCollection).DeleteOne(ctx, bson.M{"question_id": id})
	if err != nil {
		return unavailable("delete question", err)
	}
	if res.DeletedCount == 0 {
		return errors.Wrapf(errors.ErrNotFound, "question %s", id)
	}
	return nil
}
