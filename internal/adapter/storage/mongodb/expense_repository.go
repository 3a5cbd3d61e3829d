package mongodb

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"go-expense-tracker/internal/core/domain"
	"go-expense-tracker/internal/core/domain/expense"
	"go-expense-tracker/internal/core/ports"
)

type expenseDocument struct {
	ID          string    `bson:"_id"`
	UserID      string    `bson:"userId"`
	Amount      float64   `bson:"amount"`
	Description string    `bson:"description"`
	Category    string    `bson:"category"`
	Date        time.Time `bson:"date"`

	// Seq breaks ties between equal dates, newest insert first. ObjectIDs
	// increase monotonically within a process.
	Seq bson.ObjectID `bson:"seq"`
}

func (d expenseDocument) toDomain() expense.Expense {
	return expense.Expense{
		ID:          d.ID,
		UserID:      d.UserID,
		Amount:      d.Amount,
		Description: d.Description,
		Category:    d.Category,
		Date:        d.Date.UTC(),
	}
}

type ExpenseRepository struct {
	collection *mongo.Collection
}

var _ ports.ExpenseRepository = (*ExpenseRepository)(nil)

func NewExpenseRepository(db *mongo.Database) *ExpenseRepository {
	return &ExpenseRepository{collection: db.Collection(ExpenseCollection)}
}

func (r *ExpenseRepository) Create(ctx context.Context, e expense.Expense) error {
	doc := expenseDocument{
		ID:          e.ID,
		UserID:      e.UserID,
		Amount:      e.Amount,
		Description: e.Description,
		Category:    e.Category,
		Date:        e.Date,
		Seq:         bson.NewObjectID(),
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if isValidationFailure(err) {
			return fmt.Errorf("%w: expense document rejected", domain.ErrValidation)
		}
		return fmt.Errorf("error creating expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) ListByOwner(ctx context.Context, owner string) (iter.Seq2[expense.Expense, error], error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "seq", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": owner}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching expenses: %w", err)
	}

	return func(yield func(expense.Expense, error) bool) {
		defer cursor.Close(ctx)
		for cursor.Next(ctx) {
			var doc expenseDocument
			if err := cursor.Decode(&doc); err != nil {
				yield(expense.Expense{}, fmt.Errorf("error decoding expense: %w", err))
				return
			}
			if !yield(doc.toDomain(), nil) {
				return
			}
		}
		if err := cursor.Err(); err != nil {
			yield(expense.Expense{}, fmt.Errorf("cursor error: %w", err))
		}
	}, nil
}

func (r *ExpenseRepository) Update(ctx context.Context, id, owner string, patch expense.Patch) (expense.Expense, error) {
	set := bson.M{}
	if patch.Amount != nil {
		set["amount"] = *patch.Amount
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Date != nil {
		set["date"] = *patch.Date
	}

	filter := bson.M{"_id": id, "userId": owner}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc expenseDocument
	err := r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return expense.Expense{}, domain.ErrExpenseNotFound
		}
		if isValidationFailure(err) {
			return expense.Expense{}, fmt.Errorf("%w: expense document rejected", domain.ErrValidation)
		}
		return expense.Expense{}, fmt.Errorf("error updating expense: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id, owner string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": owner})
	if err != nil {
		return fmt.Errorf("error deleting expense: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}
