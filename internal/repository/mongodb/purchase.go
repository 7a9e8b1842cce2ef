package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gaysay/backoffice/internal/apperrors"
	"github.com/gaysay/backoffice/internal/domain/models"
)

// ListOpenPurchases returns purchases still being edited.
func (r *Repository) ListOpenPurchases(ctx context.Context) ([]models.Purchase, error) {
	return r.findPurchases(ctx, bson.D{{Key: "isClosed", Value: false}})
}

// FindClosedPurchasesBetween returns finalized purchases created inside
// [start, end]. Only these count toward expense reports.
func (r *Repository) FindClosedPurchasesBetween(ctx context.Context, start, end time.Time) ([]models.Purchase, error) {
	filter := bson.D{
		{Key: "isClosed", Value: true},
		{Key: "createdAt", Value: bson.D{
			{Key: "$gte", Value: start},
			{Key: "$lte", Value: end},
		}},
	}
	return r.findPurchases(ctx, filter)
}

func (r *Repository) findPurchases(ctx context.Context, filter bson.D) ([]models.Purchase, error) {
	cursor, err := r.collection(purchasesCollection).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	defer cursor.Close(ctx)

	purchases := make([]models.Purchase, 0)
	if err := cursor.All(ctx, &purchases); err != nil {
		return nil, fmt.Errorf("failed to decode purchases: %w", err)
	}
	return purchases, nil
}

// FindPurchaseByID returns one purchase in either state.
func (r *Repository) FindPurchaseByID(ctx context.Context, id primitive.ObjectID) (*models.Purchase, error) {
	var purchase models.Purchase
	err := r.collection(purchasesCollection).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&purchase)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Not found")
		}
		return nil, fmt.Errorf("failed to find purchase: %w", err)
	}
	return &purchase, nil
}

// InsertPurchase stores a new expense record.
func (r *Repository) InsertPurchase(ctx context.Context, purchase *models.Purchase) error {
	now := time.Now()
	purchase.CreatedAt = now
	purchase.UpdatedAt = now

	result, err := r.collection(purchasesCollection).InsertOne(ctx, purchase)
	if err != nil {
		return fmt.Errorf("failed to insert purchase: %w", err)
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		purchase.ID = id
	}
	return nil
}

// UpdatePurchase applies a partial update and returns the updated record.
func (r *Repository) UpdatePurchase(ctx context.Context, id primitive.ObjectID, update models.PurchaseUpdate) (*models.Purchase, error) {
	set := bson.D{{Key: "updatedAt", Value: time.Now()}}
	if update.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *update.Name})
	}
	if update.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *update.Description})
	}
	if update.UnitPrice != nil {
		set = append(set, bson.E{Key: "unitPrice", Value: *update.UnitPrice})
	}
	if update.Quantity != nil {
		set = append(set, bson.E{Key: "quantity", Value: *update.Quantity})
	}

	return r.findPurchaseAndUpdate(ctx, id, bson.D{{Key: "$set", Value: set}})
}

// ClosePurchase finalizes a purchase. Unlike sells, re-closing an already
// closed purchase is a no-op rather than an error.
func (r *Repository) ClosePurchase(ctx context.Context, id primitive.ObjectID) (*models.Purchase, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "isClosed", Value: true},
		{Key: "updatedAt", Value: time.Now()},
	}}}
	return r.findPurchaseAndUpdate(ctx, id, update)
}

func (r *Repository) findPurchaseAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.D) (*models.Purchase, error) {
	var purchase models.Purchase
	err := r.collection(purchasesCollection).
		FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, findAfter()).
		Decode(&purchase)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Not found")
		}
		return nil, fmt.Errorf("failed to update purchase: %w", err)
	}
	return &purchase, nil
}

// DeletePurchase removes the record in either state.
func (r *Repository) DeletePurchase(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection(purchasesCollection).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("failed to delete purchase: %w", err)
	}
	if result.DeletedCount == 0 {
		return apperrors.NotFound("Not found")
	}
	return nil
}
