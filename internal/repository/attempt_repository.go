package repository

import (
	"context"

	"github.com/rajuljha/ByteClub-AMUHACKS4.0/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type AttemptRepository struct {
	Col *mongo.Collection
}

func NewAttemptRepository(db *mongo.Database) *AttemptRepository {
	return &AttemptRepository{Col: db.Collection("attempts")}
}

func (r *AttemptRepository) FindByQuizAndName(ctx context.Context, quizID, name string) (*models.Attempt, error) {
	var attempt models.Attempt
	err := r.Col.FindOne(ctx, bson.M{"quiz_id": quizID, "name": name}).Decode(&attempt)
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *AttemptRepository) FindSubmittedByQuiz(ctx context.Context, quizID string) ([]models.Attempt, error) {
	cur, err := r.Col.Find(ctx, bson.M{"quiz_id": quizID, "status": models.AttemptSubmitted})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var attempts []models.Attempt
	for cur.Next(ctx) {
		var a models.Attempt
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, nil
}

func (r *AttemptRepository) Create(ctx context.Context, attempt *models.Attempt) error {
	_, err := r.Col.InsertOne(ctx, attempt)
	return err
}

// MarkSubmitted flips a started attempt to submitted in one conditional
// update so two racing submissions cannot both score.
func (r *AttemptRepository) MarkSubmitted(ctx context.Context, id string, update bson.M) (bool, error) {
	update["status"] = models.AttemptSubmitted
	res, err := r.Col.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.AttemptStarted},
		bson.M{"$set": update},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}
