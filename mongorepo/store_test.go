package mongorepo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jrsteele09/diplomats-site/fundraisers"
	"github.com/jrsteele09/diplomats-site/internal/errors"
	"github.com/jrsteele09/diplomats-site/members"
	"github.com/jrsteele09/diplomats-site/questions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"
)

// setupMongo starts a throwaway MongoDB container and connects a Store to a
// fresh database in it. The container is removed when the test completes.
func setupMongo(t *testing.T) *Store {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping container-based test in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("Docker not available: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate mongo container: %v", err)
		}
	})

	endpoint, err := container.PortEndpoint(ctx, "27017/tcp", "mongodb")
	require.NoError(t, err)

	store, err := Connect(ctx, endpoint+"/", fmt.Sprintf("diplomats_test_%d", time.Now().UnixNano()), 10*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	require.NoError(t, store.EnsureIndexes(ctx))
	return store
}

func TestMemberRepo(t *testing.T) {
	store := setupMongo(t)
	ctx := context.Background()
	repo := store.Members()

	emails, err := repo.ListEmails(ctx)
	require.NoError(t, err)
	assert.Empty(t, emails, "no roster document yet")

	_, err = store.db.Collection(membersCollection).InsertOne(ctx, bson.M{
		"diplomat_emails": []string{"a@example.edu", "b@example.edu"},
	})
	require.NoError(t, err)

	emails, err = repo.ListEmails(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a@example.edu", "b@example.edu"}, emails)

	_, err = store.db.Collection(pointsCollection).InsertOne(ctx, members.Points{Email: "a@example.edu", Total: 12, Events: []string{"Open House"}})
	require.NoError(t, err)

	p, err := repo.Points(ctx, "A@Example.edu")
	require.NoError(t, err)
	assert.Equal(t, 12, p.Total)

	_, err = repo.Points(ctx, "b@example.edu")
	require.ErrorIs(t, err, errors.ErrNotFound)
}

func TestQuestionRepo(t *testing.T) {
	store := setupMongo(t)
	ctx := context.Background()
	repo := store.Questions()

	base := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)
	newer := questions.Question{ID: questions.NewID(), AskerName: "B", AskerEmail: "b@x.com", SubmittedAt: base.Add(time.Hour), Body: "second"}
	older := questions.Question{ID: questions.NewID(), AskerName: "A", AskerEmail: "a@x.com", SubmittedAt: base, Body: "first"}
	require.NoError(t, repo.Insert(ctx, newer))
	require.NoError(t, repo.Insert(ctx, older))

	err := repo.Insert(ctx, older)
	require.ErrorIs(t, err, errors.ErrStoreUnavailable, "question ids are unique")

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, older.ID, list[0].ID)
	assert.Equal(t, older.AskerEmail, list[0].AskerEmail)
	assert.True(t, older.SubmittedAt.Equal(list[0].SubmittedAt))
	assert.Equal(t, "second", list[1].Body)

	require.NoError(t, repo.Delete(ctx, older.ID))
	require.ErrorIs(t, repo.Delete(ctx, older.ID), errors.ErrNotFound)

	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, newer.ID, list[0].ID)
}

func TestFundraiserRepo(t *testing.T) {
	store := setupMongo(t)
	ctx := context.Background()

	list, err := store.Fundraisers().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = store.db.Collection(fundraisersCollection).InsertMany(ctx, []any{
		fundraisers.Fundraiser{Name: "Bake Sale", Date: time.Date(2024, 10, 2, 0, 0, 0, 0, time.UTC)},
		fundraisers.Fundraiser{Name: "Car Wash", Date: time.Date(2024, 9, 14, 0, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, err)

	list, err = store.Fundraisers().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Car Wash", list[0].Name)
}

func TestConnectUnreachable(t *testing.T) {
	_, err := Connect(context.Background(), "mongodb://127.0.0.1:1/", "x", 200*time.Millisecond)
	require.ErrorIs(t, err, errors.ErrStoreUnavailable)
}
