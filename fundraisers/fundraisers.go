package fundraisers

import (
	"context"
	"time"
)

type Fundraiser struct {
	Name        string    `json:"name" bson:"name"`
	Date        time.Time `json:"date" bson:"date"`
	Location    string    `json:"location" bson:"location"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	URL         string    `json:"url,omitempty" bson:"url,omitempty"`
}

type Repo interface {
	List(ctx context.Context) ([]Fundraiser, error)
}
