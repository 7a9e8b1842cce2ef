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

// ListMenu returns the whole catalog.
func (r *Repository) ListMenu(ctx context.Context) ([]models.MenuItem, error) {
	cursor, err := r.collection(menuCollection).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list menu: %w", err)
	}
	defer cursor.Close(ctx)

	items := make([]models.MenuItem, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode menu items: %w", err)
	}
	return items, nil
}

// FindMenuItemByID returns a single catalog entry.
func (r *Repository) FindMenuItemByID(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.collection(menuCollection).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Not found")
		}
		return nil, fmt.Errorf("failed to find menu item: %w", err)
	}
	return &item, nil
}

// InsertMenuItem stores a new catalog entry.
func (r *Repository) InsertMenuItem(ctx context.Context, item *models.MenuItem) error {
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	result, err := r.collection(menuCollection).InsertOne(ctx, item)
	if err != nil {
		return fmt.Errorf("failed to insert menu item: %w", err)
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		item.ID = id
	}
	return nil
}

// UpdateMenuItem applies a partial update and returns the updated entry.
func (r *Repository) UpdateMenuItem(ctx context.Context, id primitive.ObjectID, update models.MenuItemUpdate) (*models.MenuItem, error) {
	set := bson.D{{Key: "updatedAt", Value: time.Now()}}
	if update.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *update.Name})
	}
	if update.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *update.Description})
	}
	if update.Category != nil {
		set = append(set, bson.E{Key: "category", Value: *update.Category})
	}
	if update.Price != nil {
		set = append(set, bson.E{Key: "price", Value: *update.Price})
	}
	if update.ImageURL != nil {
		set = append(set, bson.E{Key: "imageUrl", Value: *update.ImageURL})
	}

	return r.findMenuAndUpdate(ctx, id, bson.D{{Key: "$set", Value: set}})
}

func (r *Repository) findMenuAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.D) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.collection(menuCollection).
		FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, findAfter()).
		Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Not found")
		}
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}
	return &item, nil
}

// DeleteMenuItem removes a catalog entry.
func (r *Repository) DeleteMenuItem(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection(menuCollection).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	if result.DeletedCount == 0 {
		return apperrors.NotFound("Not found")
	}
	return nil
}
