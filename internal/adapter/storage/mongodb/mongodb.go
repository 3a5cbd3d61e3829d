package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	UserCollection    = "users"
	ExpenseCollection = "expenses"

	documentValidationFailure = 121
)

// Connect opens a client for uri and pings the primary.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("error connecting to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("error pinging MongoDB: %w", err)
	}
	return client, nil
}

// EnsureSchema creates the collections with their validators and indexes.
// Existing collections are left as they are.
func EnsureSchema(ctx context.Context, db *mongo.Database, logger *slog.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	validators := map[string]bson.M{
		UserCollection:    userValidator(),
		ExpenseCollection: expenseValidator(),
	}
	for name, validator := range validators {
		if slices.Contains(existing, name) {
			continue
		}
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed to create collection %s: %w", name, err)
		}
		logger.Info("created collection", "name", name)
	}

	_, err = db.Collection(UserCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users index: %w", err)
	}

	_, err = db.Collection(ExpenseCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}, {Key: "seq", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create expenses index: %w", err)
	}

	return nil
}

func userValidator() bson.M {
	return bson.M{"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": bson.A{"userId", "password"},
		"properties": bson.M{
			"userId":   bson.M{"bsonType": "string", "minLength": 1},
			"password": bson.M{"bsonType": "string", "minLength": 1},
		},
	}}
}

func expenseValidator() bson.M {
	return bson.M{"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": bson.A{"userId", "amount", "description", "category", "date"},
		"properties": bson.M{
			"userId":      bson.M{"bsonType": "string", "minLength": 1},
			"amount":      bson.M{"bsonType": bson.A{"double", "int", "long", "decimal"}, "minimum": 0},
			"description": bson.M{"bsonType": "string", "minLength": 1},
			"category":    bson.M{"bsonType": "string", "minLength": 1},
			"date":        bson.M{"bsonType": "date"},
		},
	}}
}

func isValidationFailure(err error) bool {
	var se mongo.ServerError
	return errors.As(err, &se) && se.HasErrorCode(documentValidationFailure)
}
