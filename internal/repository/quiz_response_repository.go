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

const quizResponsesCollection = "quiz_responses"

// QuizResponseRepository defines the interface for quiz response storage.
// Responses are insert-only; there is no update or delete.
type QuizResponseRepository interface {
	// InsertQuizResponse stores a new attempt and returns its id.
	InsertQuizResponse(ctx context.Context, response *domain.QuizResponse) (string, error)
	// GetResponsesByEmail returns all attempts for an email, newest first.
	// An empty slice means no attempts exist.
	GetResponsesByEmail(ctx context.Context, email string) ([]*domain.QuizResponse, error)
	// GetLatestResponseByEmail returns the most recent attempt, or
	// (nil, nil) when none exists.
	GetLatestResponseByEmail(ctx context.Context, email string) (*domain.QuizResponse, error)
}

// mongoQuizResponseRepository implements QuizResponseRepository on Mongo.
type mongoQuizResponseRepository struct {
	coll *mongo.Collection
}

// NewMongoQuizResponseRepository creates a new instance of mongoQuizResponseRepository.
func NewMongoQuizResponseRepository(db *mongo.Database) QuizResponseRepository {
	return &mongoQuizResponseRepository{coll: db.Collection(quizResponsesCollection)}
}

func (r *mongoQuizResponseRepository) InsertQuizResponse(ctx context.Context, response *domain.QuizResponse) (string, error) {
	now := time.Now().UTC()
	response.ID = util.NewULID()
	response.CreatedAt = now
	response.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, models.FromDomainQuizResponse(response)); err != nil {
		return "", fmt.Errorf("failed to insert quiz response: %w", err)
	}
	return response.ID, nil
}

func (r *mongoQuizResponseRepository) GetResponsesByEmail(ctx context.Context, email string) ([]*domain.QuizResponse, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query quiz responses: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.QuizResponse
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode quiz responses: %w", err)
	}

	responses := make([]*domain.QuizResponse, 0, len(records))
	for i := range records {
		responses = append(responses, records[i].ToDomain())
	}
	return responses, nil
}

func (r *mongoQuizResponseRepository) GetLatestResponseByEmail(ctx context.Context, email string) (*domain.QuizResponse, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var record models.QuizResponse
	err := r.coll.FindOne(ctx, bson.M{"email": email}, opts).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest quiz response: %w", err)
	}
	return record.ToDomain(), nil
}
