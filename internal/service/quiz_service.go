package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rajuljha/ByteClub-AMUHACKS4.0/internal/models"
	"github.com/rajuljha/ByteClub-AMUHACKS4.0/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type QuizService struct {
	Repo        *repository.QuizRepository
	AI          *AIService
	FrontendURL string
}

func NewQuizService(repo *repository.QuizRepository, ai *AIService, frontendURL string) *QuizService {
	return &QuizService{Repo: repo, AI: ai, FrontendURL: frontendURL}
}

func (s *QuizService) ListQuizzesForOwner(ctx context.Context, ownerID string) ([]models.Quiz, error) {
	quizzes, err := s.Repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if quizzes == nil {
		quizzes = []models.Quiz{}
	}
	return quizzes, nil
}

func (s *QuizService) GetQuiz(ctx context.Context, id string) (*models.Quiz, error) {
	quiz, err := s.Repo.FindByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return quiz, err
}

// CreateQuiz validates the authoring fields, assigns the generated id,
// password and share link, fills in questions through the LLM when the
// author supplied none, and persists the result.
func (s *QuizService) CreateQuiz(ctx context.Context, quiz *models.Quiz) error {
	quiz.ID = primitive.NewObjectID().Hex()
	quiz.Password = generatePassword()
	quiz.ShareLink = fmt.Sprintf("%s/take-quiz/%s", s.FrontendURL, quiz.ID)
	quiz.CreatedAt = time.Now()

	if err := quiz.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if len(quiz.Questions) == 0 {
		questions, err := s.AI.GenerateQuestions(ctx, quiz.Topic, quiz.Grade, quiz.NumberOfQuestions)
		if err != nil {
			return err
		}
		quiz.Questions = questions
	}
	for i := range quiz.Questions {
		if quiz.Questions[i].ID == "" {
			quiz.Questions[i].ID = fmt.Sprintf("%s-q%d", quiz.ID, i+1)
		}
	}
	if len(quiz.Questions) != quiz.NumberOfQuestions {
		return fmt.Errorf("%w: expected %d questions, got %d",
			ErrGeneration, quiz.NumberOfQuestions, len(quiz.Questions))
	}
	if err := quiz.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	return s.Repo.Create(ctx, quiz)
}

func (s *QuizService) UpdateQuiz(ctx context.Context, id string, update map[string]interface{}) error {
	// Fields the server owns are never client-writable.
	delete(update, "_id")
	delete(update, "id")
	delete(update, "owner_id")
	delete(update, "share_link")
	delete(update, "created_at")
	return s.Repo.Update(ctx, id, update)
}

func (s *QuizService) DeleteQuiz(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

// UpdateQuestion replaces one question of a quiz in place.
func (s *QuizService) UpdateQuestion(ctx context.Context, quizID string, index int, question models.Question) error {
	quiz, err := s.GetQuiz(ctx, quizID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(quiz.Questions) {
		return fmt.Errorf("%w: question index %d out of range", ErrValidation, index)
	}
	if question.ID == "" {
		question.ID = quiz.Questions[index].ID
	}
	if err := question.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	quiz.Questions[index] = question
	return s.Repo.Update(ctx, quizID, bson.M{"questions": quiz.Questions})
}

// 4-digit join code, 1000-9999.
func generatePassword() string {
	return fmt.Sprintf("%d", 1000+rand.Intn(9000))
}
