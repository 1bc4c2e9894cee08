package app

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/adanyl0v/taskboard/internal/config"
	"github.com/adanyl0v/taskboard/internal/services"
)

var globalMongoClient *mongo.Client

func mustConnectMongo() services.TaskService {
	cfg := config.Global().Mongo

	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout)

	var err error
	globalMongoClient, err = mongo.Connect(context.Background(), clientOpts)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to connect to mongo")
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	err = globalMongoClient.Ping(ctx, readpref.Primary())
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to ping mongo")
		panic(err)
	}
	globalLogger.Info().
		Str("database", cfg.Database).
		Str("collection", cfg.Collection).
		Msg("connected to mongo")

	return services.NewMongoTaskService(
		globalLogger,
		globalMongoClient,
		cfg.Database,
		cfg.Collection,
	)
}

func disconnectMongo() {
	ctx, cancel := context.WithTimeout(context.Background(), config.Global().Mongo.ConnectTimeout)
	defer cancel()

	err := globalMongoClient.Disconnect(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to disconnect from mongo")
		return
	}
	globalLogger.Info().Msg("disconnected from mongo")
}
