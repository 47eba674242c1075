package service

import (
	"context"
	"sort"
	"time"

	"github.com/rajuljha/ByteClub-AMUHACKS4.0/internal/models"
	"github.com/rajuljha/ByteClub-AMUHACKS4.0/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type ScoringService struct {
	Quizzes  *repository.QuizRepository
	Attempts *repository.AttemptRepository
}

func NewScoringService(quizzes *repository.QuizRepository, attempts *repository.AttemptRepository) *ScoringService {
	return &ScoringService{Quizzes: quizzes, Attempts: attempts}
}

// StartAttempt is the server side of the password gate. On a correct
// password it records a started attempt for the respondent; entering the
// gate again before submitting is allowed and reuses the attempt.
func (s *ScoringService) StartAttempt(ctx context.Context, quizID, name, password string) (*models.Quiz, error) {
	quiz, err := s.Quizzes.FindByID(ctx, quizID)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if quiz.Password != password {
		return nil, ErrWrongPassword
	}

	existing, err := s.Attempts.FindByQuizAndName(ctx, quizID, name)
	if err != nil && err != mongo.ErrNoDocuments {
		return nil, err
	}
	if existing != nil {
		if existing.Status == models.AttemptSubmitted {
			return nil, ErrAlreadySubmitted
		}
		return quiz, nil
	}

	attempt := &models.Attempt{
		ID:        uuid.NewString(),
		QuizID:    quizID,
		Name:      name,
		Status:    models.AttemptStarted,
		StartedAt: time.Now(),
		Total:     len(quiz.Questions),
	}
	if err := s.Attempts.Create(ctx, attempt); err != nil {
		return nil, err
	}
	return quiz, nil
}

// ScoreSubmission is the server-side scoring authority: an answer counts
// only when its label equals the question's correct label. Missing or
// empty labels score as incorrect. Deterministic for a given input.
func ScoreSubmission(quiz *models.Quiz, answers []string) (int, []models.AnswerRecord) {
	records := make([]models.AnswerRecord, len(quiz.Questions))
	score := 0
	for i, q := range quiz.Questions {
		answer := ""
		if i < len(answers) {
			answer = answers[i]
		}
		correct := answer != "" && answer == q.Answer
		if correct {
			score++
		}
		records[i] = models.AnswerRecord{
			QuestionIndex: i,
			Answer:        answer,
			IsCorrect:     correct,
		}
	}
	return score, records
}

// SubmitAnswers scores an ordered answer sequence against the quiz and
// finalizes the respondent's attempt. The conditional started→submitted
// update guarantees at most one scored attempt per (quiz, respondent).
func (s *ScoringService) SubmitAnswers(ctx context.Context, quizID, name string, answers []string) (*models.ScoreResult, error) {
	quiz, err := s.Quizzes.FindByID(ctx, quizID)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(answers) > len(quiz.Questions) {
		return nil, ErrValidation
	}

	attempt, err := s.Attempts.FindByQuizAndName(ctx, quizID, name)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotStarted
	}
	if err != nil {
		return nil, err
	}
	if attempt.Status == models.AttemptSubmitted {
		return nil, ErrAlreadySubmitted
	}

	score, records := ScoreSubmission(quiz, answers)
	submittedAt := time.Now()
	timeTaken := int(submittedAt.Sub(attempt.StartedAt).Seconds())

	ok, err := s.Attempts.MarkSubmitted(ctx, attempt.ID, bson.M{
		"answers":            records,
		"score":              score,
		"total":              len(quiz.Questions),
		"submitted_at":       submittedAt,
		"time_taken_seconds": timeTaken,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost the race against another submission for the same attempt.
		return nil, ErrAlreadySubmitted
	}

	return &models.ScoreResult{Score: score, Total: len(quiz.Questions)}, nil
}

// Leaderboard lists all submitted attempts for a quiz, best score first,
// fastest first among equal scores.
func (s *ScoringService) Leaderboard(ctx context.Context, quizID string) ([]models.LeaderboardEntry, error) {
	quiz, err := s.Quizzes.FindByID(ctx, quizID)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	attempts, err := s.Attempts.FindSubmittedByQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	return BuildLeaderboard(len(quiz.Questions), attempts), nil
}

// BuildLeaderboard orders attempts by score descending, then time taken
// ascending, and renders them as leaderboard entries.
func BuildLeaderboard(total int, attempts []models.Attempt) []models.LeaderboardEntry {
	sort.SliceStable(attempts, func(i, j int) bool {
		if attempts[i].Score != attempts[j].Score {
			return attempts[i].Score > attempts[j].Score
		}
		return attempts[i].TimeTakenSeconds < attempts[j].TimeTakenSeconds
	})

	entries := make([]models.LeaderboardEntry, 0, len(attempts))
	for _, a := range attempts {
		entries = append(entries, models.LeaderboardEntry{
			ID:               a.ID,
			Name:             a.Name,
			Score:            a.Score,
			Percentage:       models.Percentage(a.Score, total),
			CorrectAnswers:   a.Score,
			IncorrectAnswers: total - a.Score,
			TimeTaken:        models.FormatTimeTaken(a.TimeTakenSeconds),
			AttemptedAt:      a.SubmittedAt.Format(time.RFC3339),
		})
	}
	return entries
}
