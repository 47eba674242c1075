package models

import (
	"fmt"
	"time"
)

// ChoiceLabels are the only valid answer labels for a question.
var ChoiceLabels = []string{"A", "B", "C", "D"}

type Question struct {
	ID      string `bson:"id" json:"id"`
	Text    string `bson:"text" json:"text"`
	ChoiceA string `bson:"choice_a" json:"choice_a"`
	ChoiceB string `bson:"choice_b" json:"choice_b"`
	ChoiceC string `bson:"choice_c" json:"choice_c"`
	ChoiceD string `bson:"choice_d" json:"choice_d"`
	// Answer holds the correct choice label (A-D). Redacted in player views.
	Answer string `bson:"answer" json:"answer,omitempty"`
}

type Quiz struct {
	ID                string     `bson:"_id,omitempty" json:"id"`
	Name              string     `bson:"name" json:"name"`
	Topic             string     `bson:"topic" json:"topic"`
	Grade             string     `bson:"grade" json:"grade"`
	SchoolBoard       string     `bson:"school_board" json:"school_board"`
	NumberOfQuestions int        `bson:"number_of_questions" json:"number_of_questions"`
	TimeLimitMinutes  int        `bson:"time_limit_minutes" json:"time_limit_minutes"`
	Password          string     `bson:"password" json:"password,omitempty"`
	ShareLink         string     `bson:"share_link" json:"share_link"`
	Questions         []Question `bson:"questions" json:"questions"`
	OwnerID           string     `bson:"owner_id" json:"owner_id"`
	CreatedAt         time.Time  `bson:"created_at" json:"created_at"`
}

// Choice returns the choice text for a label, or "" for an unknown label.
func (q *Question) Choice(label string) string {
	switch label {
	case "A":
		return q.ChoiceA
	case "B":
		return q.ChoiceB
	case "C":
		return q.ChoiceC
	case "D":
		return q.ChoiceD
	}
	return ""
}

// Validate checks that a question has text, four populated choices and a
// correct label that matches one of them.
func (q *Question) Validate() error {
	if q.Text == "" {
		return fmt.Errorf("missing question text")
	}
	for _, label := range ChoiceLabels {
		if q.Choice(label) == "" {
			return fmt.Errorf("missing choice %s", label)
		}
	}
	if q.Choice(q.Answer) == "" {
		return fmt.Errorf("answer must be one of A, B, C, D, got %q", q.Answer)
	}
	return nil
}

// Validate checks the required authoring fields and, once questions are
// attached, that their count matches number_of_questions.
func (quiz *Quiz) Validate() error {
	if quiz.Name == "" {
		return fmt.Errorf("missing field name")
	}
	if quiz.Topic == "" {
		return fmt.Errorf("missing field topic")
	}
	if quiz.NumberOfQuestions <= 0 {
		return fmt.Errorf("number_of_questions must be positive")
	}
	if quiz.TimeLimitMinutes <= 0 {
		return fmt.Errorf("time_limit_minutes must be positive")
	}
	if len(quiz.Questions) > 0 && len(quiz.Questions) != quiz.NumberOfQuestions {
		return fmt.Errorf("expected %d questions, got %d", quiz.NumberOfQuestions, len(quiz.Questions))
	}
	for i := range quiz.Questions {
		if err := quiz.Questions[i].Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
	}
	return nil
}

// PlayerView returns a copy safe to hand to an untrusted respondent:
// the password and per-question correct labels are stripped.
func (quiz Quiz) PlayerView() Quiz {
	quiz.Password = ""
	questions := make([]Question, len(quiz.Questions))
	for i, q := range quiz.Questions {
		q.Answer = ""
		questions[i] = q
	}
	quiz.Questions = questions
	return quiz
}
