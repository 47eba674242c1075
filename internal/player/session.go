package player

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rajuljha/ByteClub-AMUHACKS4.0/internal/models"
)

// Phase is where a quiz-taking session currently stands. Transitions only
// move forward; Completed is terminal.
type Phase int

const (
	PhasePasswordGate Phase = iota
	PhaseInstructions
	PhaseInProgress
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhasePasswordGate:
		return "password_gate"
	case PhaseInstructions:
		return "instructions"
	case PhaseInProgress:
		return "in_progress"
	case PhaseCompleted:
		return "completed"
	}
	return "unknown"
}

var (
	ErrWrongPhase     = errors.New("operation not valid in current phase")
	ErrSubmitInFlight = errors.New("submission already in flight")
	ErrInvalidChoice  = errors.New("choice label must be one of A, B, C, D")
)

// API is the server surface a session needs. *client.HTTPClient
// implements it.
type API interface {
	GetQuiz(ctx context.Context, quizID string) (*models.Quiz, error)
	StartQuiz(ctx context.Context, quizID, name, password string) error
	SubmitAnswers(ctx context.Context, quizID, name string, answers []string) (*models.ScoreResult, error)
}

// Session drives one respondent through a quiz:
// password gate -> instructions -> timed questions -> completed.
// It lives in memory for the duration of the run and is never persisted.
type Session struct {
	mu sync.Mutex

	api  API
	quiz *models.Quiz

	phase     Phase
	name      string
	index     int
	answers   map[int]string
	remaining int
	startedAt time.Time

	submitting bool
	expired    bool
	result     *models.ScoreResult
}

// NewSession loads the player view of the quiz and parks the session at
// the password gate.
func NewSession(ctx context.Context, a API, quizID string) (*Session, error) {
	quiz, err := a.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	return &Session{
		api:     a,
		quiz:    quiz,
		phase:   PhasePasswordGate,
		answers: make(map[int]string),
	}, nil
}

func (s *Session) Quiz() *models.Quiz {
	return s.quiz
}

func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// VerifyPassword asks the server to check the quiz password. On success
// the session carries the respondent name forward to the instructions
// screen; on failure it stays at the gate and the error is retryable.
func (s *Session) VerifyPassword(ctx context.Context, name, password string) error {
	s.mu.Lock()
	if s.phase != PhasePasswordGate {
		s.mu.Unlock()
		return ErrWrongPhase
	}
	s.mu.Unlock()

	if err := s.api.StartQuiz(ctx, s.quiz.ID, name, password); err != nil {
		return err
	}

	s.mu.Lock()
	s.name = name
	s.phase = PhaseInstructions
	s.mu.Unlock()
	return nil
}

// Begin starts the timed question flow and arms the countdown.
func (s *Session) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseInstructions {
		return ErrWrongPhase
	}
	s.phase = PhaseInProgress
	s.startedAt = time.Now()
	s.remaining = s.quiz.TimeLimitMinutes * 60
	return nil
}

func (s *Session) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

func (s *Session) CurrentQuestion() models.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quiz.Questions[s.index]
}

// SelectAnswer records the choice for the current question. Answers can
// be changed until submission.
func (s *Session) SelectAnswer(label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseInProgress {
		return ErrWrongPhase
	}
	valid := false
	for _, l := range models.ChoiceLabels {
		if l == label {
			valid = true
			break
		}
	}
	if !valid {
		return ErrInvalidChoice
	}
	s.answers[s.index] = label
	return nil
}

// Next moves to the following question; a no-op on the last one.
// Answering is never required to advance.
func (s *Session) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseInProgress && s.index < len(s.quiz.Questions)-1 {
		s.index++
	}
}

// Previous moves back one question; a no-op on the first one.
func (s *Session) Previous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseInProgress && s.index > 0 {
		s.index--
	}
}

// OnLastQuestion reports whether manual submission is available.
func (s *Session) OnLastQuestion() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase == PhaseInProgress && s.index == len(s.quiz.Questions)-1
}

func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

// Answer returns the recorded label for a question index, "" if none.
func (s *Session) Answer(index int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers[index]
}

// Tick advances the countdown by one second. Reaching zero forces the
// same submission as a manual submit, exactly once; a failed forced
// submission leaves the session in progress so it can be retried without
// losing the collected answers.
func (s *Session) Tick(ctx context.Context) int {
	s.mu.Lock()
	if s.phase != PhaseInProgress || s.remaining == 0 {
		remaining := s.remaining
		s.mu.Unlock()
		return remaining
	}
	s.remaining--
	expired := s.remaining == 0 && !s.expired
	if expired {
		s.expired = true
	}
	s.mu.Unlock()

	if expired {
		_, _ = s.Submit(ctx)
	}
	return s.Remaining()
}

// RunCountdown ticks once per second until the time runs out, the session
// completes, or ctx is cancelled. Cancel ctx when leaving the question
// view so no dangling tick can fire a duplicate submission.
func (s *Session) RunCountdown(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.Tick(ctx) == 0 || s.Phase() == PhaseCompleted {
				return
			}
		}
	}
}

// Submit packages the index-aligned answer labels and sends them for
// scoring. At most one submission is in flight at a time; a transport
// failure re-enables submission with the answers intact rather than
// fabricating a result.
func (s *Session) Submit(ctx context.Context) (*models.ScoreResult, error) {
	s.mu.Lock()
	if s.phase == PhaseCompleted {
		result := s.result
		s.mu.Unlock()
		return result, nil
	}
	if s.phase != PhaseInProgress {
		s.mu.Unlock()
		return nil, ErrWrongPhase
	}
	if s.submitting {
		s.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	s.submitting = true

	answers := make([]string, len(s.quiz.Questions))
	for i := range answers {
		answers[i] = s.answers[i]
	}
	name := s.name
	s.mu.Unlock()

	result, err := s.api.SubmitAnswers(ctx, s.quiz.ID, name, answers)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.submitting = false
		return nil, err
	}
	s.result = result
	s.phase = PhaseCompleted
	return result, nil
}

// Result returns the server-reported score once the session completed.
func (s *Session) Result() *models.ScoreResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// TimeTaken reports the elapsed time since Begin.
func (s *Session) TimeTaken() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.startedAt.IsZero() {
		return 0
	}
	return time.Since(s.startedAt)
}
