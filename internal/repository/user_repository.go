package repository

import (
	"context"
	"fmt"
	"time"

	"quiz-pulse/internal/domain"
	"quiz-pulse/internal/repository/models"
	"quiz-pulse/internal/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const usersCollection = "users"

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// UpsertUser returns the user for the given normalized email, creating
	// it on first submission. Submitting the same email twice is a no-op.
	UpsertUser(ctx context.Context, email string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// mongoUserRepository implements UserRepository on a Mongo collection.
type mongoUserRepository struct {
	coll *mongo.Collection
}

// NewMongoUserRepository creates a new instance of mongoUserRepository.
func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{coll: db.Collection(usersCollection)}
}

// UpsertUser inserts the user on first sight of the email and returns the
// stored record either way. A single FindOneAndUpdate with $setOnInsert keeps
// the operation idempotent without a read-then-write race.
func (r *mongoUserRepository) UpsertUser(ctx context.Context, email string) (*domain.User, error) {
	now := time.Now().UTC()
	filter := bson.M{"email": email}
	update := bson.M{
		"$setOnInsert": bson.M{
			"_id":        util.NewULID(),
			"email":      email,
			"created_at": now,
			"updated_at": now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var user models.User
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return user.ToDomain(), nil
}

// GetUserByEmail retrieves a user by normalized email. Returns (nil, nil)
// when no user exists; services decide whether that is an error.
func (r *mongoUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user.ToDomain(), nil
}
