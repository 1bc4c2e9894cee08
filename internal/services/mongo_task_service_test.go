package services

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// setupMongoService connects to TEST_MONGO_URI and empties a test
// collection. The test is skipped when no server is configured.
func setupMongoService(t *testing.T) TaskService {
	t.Helper()

	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("Skipping test: TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Skipf("Skipping test: mongo not available: %v", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	if err := client.Ping(ctx, nil); err != nil {
		t.Skipf("Skipping test: mongo ping failed: %v", err)
	}

	const database, collection = "taskboard_test", "tasks"
	_, err = client.Database(database).Collection(collection).DeleteMany(ctx, bson.D{})
	require.NoError(t, err)

	return NewMongoTaskService(zerolog.Nop(), client, database, collection)
}

func TestMongoTaskService(t *testing.T) {
	testTaskService(t, setupMongoService(t))
}

func TestMongoTaskServiceMalformedID(t *testing.T) {
	svc := setupMongoService(t)

	_, err := svc.GetByID(context.Background(), "not-an-object-id")
	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), "not-an-object-id"), ErrTaskNotFound)
}
