package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"go-expense-tracker/internal/core/domain"
	"go-expense-tracker/internal/core/domain/auth"
	"go-expense-tracker/internal/core/ports"
)

type userDocument struct {
	ID       string `bson:"_id"`
	UserID   string `bson:"userId"`
	Password string `bson:"password"`
}

type UserRepository struct {
	collection *mongo.Collection
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{collection: db.Collection(UserCollection)}
}

func (r *UserRepository) Create(ctx context.Context, user auth.User) error {
	doc := userDocument{ID: user.ID, UserID: user.UserID, Password: user.PasswordHash}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateUser
		}
		if isValidationFailure(err) {
			return fmt.Errorf("%w: user document rejected", domain.ErrValidation)
		}
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByUserID(ctx context.Context, userID string) (auth.User, error) {
	var doc userDocument
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return auth.User{}, domain.ErrUserNotFound
		}
		return auth.User{}, fmt.Errorf("error fetching user: %w", err)
	}
	return auth.User{ID: doc.ID, UserID: doc.UserID, PasswordHash: doc.Password}, nil
}
