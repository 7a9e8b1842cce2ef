package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gaysay/backoffice/internal/domain/models"
)

const (
	sellsCollection     = "sells"
	menuCollection      = "menu"
	purchasesCollection = "purchases"
	usersCollection     = "users"
	snapshotsCollection = "report_snapshots"
)

// Repository is the MongoDB adapter shared by every back-office collection.
type Repository struct {
	client *mongo.Client
	dbName string
}

// New connects to MongoDB, verifies the connection and ensures the indexes
// the application relies on.
func New(ctx context.Context, uri string, dbName string) (*Repository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	repo := &Repository{client: client, dbName: dbName}
	if err := repo.ensureIndexes(ctx); err != nil {
		return nil, err
	}

	return repo, nil
}

// ensureIndexes creates the indexes that back application invariants:
// at most one open sells record per menu item, and unique usernames.
// The sells index is partial so closed records never collide.
func (r *Repository) ensureIndexes(ctx context.Context) error {
	sellsIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "itemId", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.D{{Key: "isClosed", Value: false}}),
	}
	if _, err := r.collection(sellsCollection).Indexes().CreateOne(ctx, sellsIndex); err != nil {
		return fmt.Errorf("failed to create open sells index: %w", err)
	}

	userIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.collection(usersCollection).Indexes().CreateOne(ctx, userIndex); err != nil {
		return fmt.Errorf("failed to create username index: %w", err)
	}

	return nil
}

func (r *Repository) collection(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}

// findAfter makes FindOneAndUpdate return the post-update document.
func findAfter() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

// SaveReportSnapshot persists a scheduler-built report snapshot.
func (r *Repository) SaveReportSnapshot(ctx context.Context, snapshot models.ReportSnapshot) error {
	snapshot.CreatedAt = time.Now()
	if _, err := r.collection(snapshotsCollection).InsertOne(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to insert report snapshot: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
