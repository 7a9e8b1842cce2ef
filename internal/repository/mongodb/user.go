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

// ListUsers returns every account.
func (r *Repository) ListUsers(ctx context.Context) ([]models.User, error) {
	cursor, err := r.collection(usersCollection).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	users := make([]models.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// FindUserByID returns one account.
func (r *Repository) FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection(usersCollection).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// InsertUser stores a new account. A duplicate username is rejected by the
// unique index and surfaced as a conflict.
func (r *Repository) InsertUser(ctx context.Context, user *models.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := r.collection(usersCollection).InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.Conflict("Username already exists.")
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

// UpdateUser applies a partial update and returns the updated account.
func (r *Repository) UpdateUser(ctx context.Context, id primitive.ObjectID, update models.UserUpdate) (*models.User, error) {
	set := bson.D{{Key: "updatedAt", Value: time.Now()}}
	if update.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *update.Name})
	}
	if update.Username != nil {
		set = append(set, bson.E{Key: "username", Value: *update.Username})
	}
	if update.Role != nil {
		set = append(set, bson.E{Key: "role", Value: *update.Role})
	}
	if update.AvatarURL != nil {
		set = append(set, bson.E{Key: "avatarUrl", Value: *update.AvatarURL})
	}

	var user models.User
	err := r.collection(usersCollection).
		FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: set}}, findAfter()).
		Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("User not found")
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.Conflict("Username already exists.")
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &user, nil
}

// UpdateUserPassword replaces the stored password hash.
func (r *Repository) UpdateUserPassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "password", Value: passwordHash},
		{Key: "updatedAt", Value: time.Now()},
	}}}

	result, err := r.collection(usersCollection).UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("failed to update user password: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("User not found")
	}
	return nil
}

// DeleteUser removes the account.
func (r *Repository) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection(usersCollection).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.DeletedCount == 0 {
		return apperrors.NotFound("User not found")
	}
	return nil
}
