package mongorepo

import (
	"context"

	"github.com/jrsteele09/diplomats-site/fundraisers"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ fundraisers.Repo = (*FundraiserRepo)(nil)

type FundraiserRepo struct {
	store *Store
}

func (r *FundraiserRepo) List(ctx context.Context) ([]fundraisers.Fundraiser, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cur, err := r.store.db.Collection(fundraisersCollection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, unavailable("list fundraisers", err)
	}
	list := make([]fundraisers.Fundraiser, 0)
	if err := cur.All(ctx, &list); err != nil {
		return nil, unavailable("decode fundraisers", err)
	}
	return list, nil
}
