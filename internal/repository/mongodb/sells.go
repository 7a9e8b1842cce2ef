package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gaysay/backoffice/internal/apperrors"
	"github.com/gaysay/backoffice/internal/domain/models"
)

// menuLookupStages joins the referenced menu item into an "item" field.
// The join is read-time only; nothing is stored back.
func menuLookupStages() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: menuCollection},
			{Key: "localField", Value: "itemId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "item"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$item"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}

// InsertSells stores a new sells record. The partial unique index on open
// records turns a concurrent duplicate open into a rejected write, which is
// surfaced as a conflict.
func (r *Repository) InsertSells(ctx context.Context, record *models.SellsRecord) error {
	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now

	result, err := r.collection(sellsCollection).InsertOne(ctx, record)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.Conflict("There is already an open sells on this item. Please close it first.")
		}
		return fmt.Errorf("failed to insert sells record: %w", err)
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		record.ID = id
	}
	return nil
}

// FindOpenSells returns every open record with its menu item resolved.
func (r *Repository) FindOpenSells(ctx context.Context) ([]models.OpenSellsView, error) {
	pipeline := []bson.D{
		{{Key: "$match", Value: bson.D{{Key: "isClosed", Value: false}}}},
	}
	pipeline = append(pipeline, menuLookupStages()...)
	return r.aggregateSells(ctx, pipeline)
}

// FindClosedSellsBetween returns closed records created inside [start, end],
// with menu items resolved for pricing.
func (r *Repository) FindClosedSellsBetween(ctx context.Context, start, end time.Time) ([]models.OpenSellsView, error) {
	pipeline := []bson.D{
		{{Key: "$match", Value: bson.D{
			{Key: "isClosed", Value: true},
			{Key: "createdAt", Value: bson.D{
				{Key: "$gte", Value: start},
				{Key: "$lte", Value: end},
			}},
		}}},
	}
	pipeline = append(pipeline, menuLookupStages()...)
	return r.aggregateSells(ctx, pipeline)
}

func (r *Repository) aggregateSells(ctx context.Context, pipeline []bson.D) ([]models.OpenSellsView, error) {
	cursor, err := r.collection(sellsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sells: %w", err)
	}
	defer cursor.Close(ctx)

	views := make([]models.OpenSellsView, 0)
	if err := cursor.All(ctx, &views); err != nil {
		return nil, fmt.Errorf("failed to decode sells: %w", err)
	}
	return views, nil
}

// FindSellsByID returns the record regardless of its open/closed state.
func (r *Repository) FindSellsByID(ctx context.Context, id primitive.ObjectID) (*models.SellsRecord, error) {
	var record models.SellsRecord
	err := r.collection(sellsCollection).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Not found")
		}
		return nil, fmt.Errorf("failed to find sells record: %w", err)
	}
	return &record, nil
}

// FindOpenSellsByID returns the record only if it is still open.
func (r *Repository) FindOpenSellsByID(ctx context.Context, id primitive.ObjectID) (*models.SellsRecord, error) {
	filter := bson.D{{Key: "_id", Value: id}, {Key: "isClosed", Value: false}}
	var record models.SellsRecord
	err := r.collection(sellsCollection).FindOne(ctx, filter).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Open sells not found")
		}
		return nil, fmt.Errorf("failed to find open sells record: %w", err)
	}
	return &record, nil
}

// UpdateSellsUnits replaces the units log and cached total of a record that
// is still open. Matching on isClosed prevents racing a concurrent close.
func (r *Repository) UpdateSellsUnits(ctx context.Context, record *models.SellsRecord) error {
	filter := bson.D{{Key: "_id", Value: record.ID}, {Key: "isClosed", Value: false}}
	record.UpdatedAt = time.Now()
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "unitsSold", Value: record.UnitsSold},
		{Key: "totalFreq", Value: record.TotalFreq},
		{Key: "updatedAt", Value: record.UpdatedAt},
	}}}

	result, err := r.collection(sellsCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update sells record: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("Open sells not found")
	}
	return nil
}

// CloseSells flips an open record to closed and returns the updated record.
// Closing an already-closed or missing record reports not found.
func (r *Repository) CloseSells(ctx context.Context, id primitive.ObjectID) (*models.SellsRecord, error) {
	filter := bson.D{{Key: "_id", Value: id}, {Key: "isClosed", Value: false}}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "isClosed", Value: true},
		{Key: "updatedAt", Value: time.Now()},
	}}}
	var record models.SellsRecord
	err := r.collection(sellsCollection).FindOneAndUpdate(ctx, filter, update, findAfter()).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Open sells not found")
		}
		return nil, fmt.Errorf("failed to close sells record: %w", err)
	}
	return &record, nil
}

// DeleteSells removes the record in either state.
func (r *Repository) DeleteSells(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection(sellsCollection).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("failed to delete sells record: %w", err)
	}
	if result.DeletedCount == 0 {
		return apperrors.NotFound("Not found")
	}
	return nil
}

// HasOpenSellsForItem reports whether an open record already exists for the
// menu item. Used for the friendly conflict message before insert; the
// unique index remains the authoritative guard.
func (r *Repository) HasOpenSellsForItem(ctx context.Context, itemID primitive.ObjectID) (bool, error) {
	filter := bson.D{{Key: "itemId", Value: itemID}, {Key: "isClosed", Value: false}}
	count, err := r.collection(sellsCollection).CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to count open sells: %w", err)
	}
	return count > 0, nil
}
