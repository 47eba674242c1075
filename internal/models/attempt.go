package models

import (
	"fmt"
	"math"
	"time"
)

const (
	AttemptStarted   = "started"
	AttemptSubmitted = "submitted"
)

type AnswerRecord struct {
	QuestionIndex int    `bson:"question_index" json:"question_index"`
	Answer        string `bson:"answer" json:"answer"`
	IsCorrect     bool   `bson:"is_correct" json:"is_correct"`
}

// Attempt is one respondent's pass over a quiz. It is created in the
// started state by the password gate and becomes submitted exactly once.
type Attempt struct {
	ID               string         `bson:"_id,omitempty" json:"id"`
	QuizID           string         `bson:"quiz_id" json:"quiz_id"`
	Name             string         `bson:"name" json:"name"`
	Status           string         `bson:"status" json:"status"`
	StartedAt        time.Time      `bson:"started_at" json:"started_at"`
	SubmittedAt      time.Time      `bson:"submitted_at,omitempty" json:"submitted_at,omitempty"`
	Answers          []AnswerRecord `bson:"answers" json:"answers"`
	Score            int            `bson:"score" json:"score"`
	Total            int            `bson:"total" json:"total"`
	TimeTakenSeconds int            `bson:"time_taken_seconds" json:"time_taken_seconds"`
}

type ScoreResult struct {
	Score int `json:"score"`
	Total int `json:"total"`
}

type ResultSummary struct {
	Score            int       `json:"score"`
	Total            int       `json:"total"`
	Percentage       int       `json:"percentage"`
	IncorrectAnswers int       `json:"incorrect_answers"`
	TimeTaken        string    `json:"time_taken"`
	SubmittedAt      time.Time `json:"submitted_at"`
}

type LeaderboardEntry struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Score            int    `json:"score"`
	Percentage       int    `json:"percentage"`
	CorrectAnswers   int    `json:"correctAnswers"`
	IncorrectAnswers int    `json:"incorrectAnswers"`
	TimeTaken        string `json:"timeTaken"`
	AttemptedAt      string `json:"attemptedAt"`
}

// Percentage derives the rounded score percentage; 0 for an empty quiz.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(score) / float64(total)))
}

// FormatTimeTaken renders elapsed seconds as "XmYs".
func FormatTimeTaken(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
}

// BuildResultSummary is a pure derivation over a scored submission.
func BuildResultSummary(score, total, timeTakenSeconds int, submittedAt time.Time) ResultSummary {
	return ResultSummary{
		Score:            score,
		Total:            total,
		Percentage:       Percentage(score, total),
		IncorrectAnswers: total - score,
		TimeTaken:        FormatTimeTaken(timeTakenSeconds),
		SubmittedAt:      submittedAt,
	}
}
