package player

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rajuljha/ByteClub-AMUHACKS4.0/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI stands in for the quiz server. It scores submissions the same
// way the server does and counts how many reached it.
type fakeAPI struct {
	mu sync.Mutex

	quiz     *models.Quiz
	password string

	submitErr    error
	submitGate   chan struct{} // when set, SubmitAnswers blocks until closed
	submitInGate chan struct{} // when set, closed once SubmitAnswers reaches the gate
	submissions int
	lastAnswers []string
}

func (f *fakeAPI) GetQuiz(ctx context.Context, quizID string) (*models.Quiz, error) {
	view := f.quiz.PlayerView()
	return &view, nil
}

func (f *fakeAPI) StartQuiz(ctx context.Context, quizID, name, password string) error {
	if password != f.password {
		return errors.New("invalid password (status 401)")
	}
	return nil
}

func (f *fakeAPI) SubmitAnswers(ctx context.Context, quizID, name string, answers []string) (*models.ScoreResult, error) {
	if f.submitGate != nil {
		if f.submitInGate != nil {
			close(f.submitInGate)
		}
		<-f.submitGate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	f.submissions++
	f.lastAnswers = answers

	score := 0
	for i, q := range f.quiz.Questions {
		if i < len(answers) && answers[i] == q.Answer {
			score++
		}
	}
	return &models.ScoreResult{Score: score, Total: len(f.quiz.Questions)}, nil
}

func (f *fakeAPI) submissionCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submissions
}

func newFakeAPI(numQuestions int) *fakeAPI {
	labels := []string{"A", "B", "C", "D"}
	questions := make([]models.Question, numQuestions)
	for i := range questions {
		questions[i] = models.Question{
			ID:      fmt.Sprintf("q%d", i+1),
			Text:    fmt.Sprintf("Question %d", i+1),
			ChoiceA: "1",
			ChoiceB: "2",
			ChoiceC: "3",
			ChoiceD: "4",
			Answer:  labels[i%len(labels)],
		}
	}
	return &fakeAPI{
		quiz: &models.Quiz{
			ID:                "quiz-1",
			Name:              "Flow Quiz",
			Topic:             "Math",
			NumberOfQuestions: numQuestions,
			TimeLimitMinutes:  1,
			Password:          "4321",
			Questions:         questions,
		},
		password: "4321",
	}
}

func startedSession(t *testing.T, api *fakeAPI) *Session {
	t.Helper()
	ctx := context.Background()

	session, err := NewSession(ctx, api, api.quiz.ID)
	require.NoError(t, err)
	require.Equal(t, PhasePasswordGate, session.Phase())

	require.NoError(t, session.VerifyPassword(ctx, "Asha", "4321"))
	require.Equal(t, PhaseInstructions, session.Phase())

	require.NoError(t, session.Begin())
	require.Equal(t, PhaseInProgress, session.Phase())
	return session
}

func TestSessionFlow_AllCorrect(t *testing.T) {
	api := newFakeAPI(5)
	session := startedSession(t, api)
	ctx := context.Background()

	assert.Equal(t, 60, session.Remaining())

	answers := []string{"A", "B", "C", "D", "A"}
	for i, label := range answers {
		require.NoError(t, session.SelectAnswer(label))
		if i < len(answers)-1 {
			session.Next()
		}
	}
	require.True(t, session.OnLastQuestion())

	result, err := session.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, result.Score)
	assert.Equal(t, 5, result.Total)
	assert.Equal(t, 100, models.Percentage(result.Score, result.Total))
	assert.Equal(t, PhaseCompleted, session.Phase())

	// Completed is terminal.
	assert.ErrorIs(t, session.SelectAnswer("A"), ErrWrongPhase)
	assert.ErrorIs(t, session.Begin(), ErrWrongPhase)
	assert.Equal(t, 1, api.submissionCount())
}

func TestVerifyPassword_WrongPasswordStaysAtGate(t *testing.T) {
	api := newFakeAPI(3)
	ctx := context.Background()

	session, err := NewSession(ctx, api, api.quiz.ID)
	require.NoError(t, err)

	err = session.VerifyPassword(ctx, "Asha", "0000")
	require.Error(t, err)
	assert.Equal(t, PhasePasswordGate, session.Phase())

	// The gate stays retryable.
	require.NoError(t, session.VerifyPassword(ctx, "Asha", "4321"))
	assert.Equal(t, PhaseInstructions, session.Phase())
}

func TestNavigation_IndexStaysInBounds(t *testing.T) {
	api := newFakeAPI(3)
	session := startedSession(t, api)

	moves := []func(){session.Next, session.Previous}
	sequence := []int{0, 0, 1, 0, 0, 1, 1, 1, 1, 0, 1, 1, 0, 0, 0, 0, 1}
	for _, m := range sequence {
		moves[m]()
		idx := session.CurrentIndex()
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, 3)
	}

	// Hammer both ends.
	for i := 0; i < 10; i++ {
		session.Previous()
	}
	assert.Equal(t, 0, session.CurrentIndex())
	for i := 0; i < 10; i++ {
		session.Next()
	}
	assert.Equal(t, 2, session.CurrentIndex())
}

func TestNavigation_AdvancingWithoutAnswering(t *testing.T) {
	api := newFakeAPI(3)
	session := startedSession(t, api)

	session.Next()
	session.Next()
	assert.Equal(t, 2, session.CurrentIndex())
	assert.Empty(t, session.Answer(0))
	assert.Empty(t, session.Answer(1))
}

func TestCountdown_TimeoutForcesSingleSubmission(t *testing.T) {
	api := newFakeAPI(5)
	session := startedSession(t, api)
	ctx := context.Background()

	// Answer 2 of 5, then let the timer expire.
	require.NoError(t, session.SelectAnswer("A"))
	session.Next()
	require.NoError(t, session.SelectAnswer("B"))

	prev := session.Remaining()
	for i := 0; i < 60; i++ {
		remaining := session.Tick(ctx)
		assert.Equal(t, prev-1, remaining, "remaining must decrease by exactly 1 per tick")
		prev = remaining
	}

	assert.Equal(t, 0, session.Remaining())
	assert.Equal(t, PhaseCompleted, session.Phase())
	assert.Equal(t, 1, api.submissionCount())

	// Extra ticks after expiry: no double submission, no negative time.
	for i := 0; i < 5; i++ {
		assert.Equal(t, 0, session.Tick(ctx))
	}
	assert.Equal(t, 1, api.submissionCount())

	// Unanswered questions were sent as empty labels, total stays 5.
	require.Len(t, api.lastAnswers, 5)
	assert.Equal(t, []string{"A", "B", "", "", ""}, api.lastAnswers)
	assert.Equal(t, 2, session.Result().Score)
	assert.Equal(t, 5, session.Result().Total)
}

func TestSubmit_AtMostOnceInFlight(t *testing.T) {
	api := newFakeAPI(2)
	api.submitGate = make(chan struct{})
	api.submitInGate = make(chan struct{})
	session := startedSession(t, api)
	ctx := context.Background()

	firstDone := make(chan error, 1)
	go func() {
		_, err := session.Submit(ctx)
		firstDone <- err
	}()

	// Wait for the first submission to be in flight, then try again.
	<-api.submitInGate
	require.Eventually(t, func() bool {
		_, err := session.Submit(ctx)
		return errors.Is(err, ErrSubmitInFlight)
	}, time.Second, 5*time.Millisecond)

	close(api.submitGate)
	require.NoError(t, <-firstDone)
	assert.Equal(t, 1, api.submissionCount())
	assert.Equal(t, PhaseCompleted, session.Phase())
}

func TestSubmit_FailureKeepsAnswersAndAllowsRetry(t *testing.T) {
	api := newFakeAPI(2)
	session := startedSession(t, api)
	ctx := context.Background()

	require.NoError(t, session.SelectAnswer("A"))
	session.Next()
	require.NoError(t, session.SelectAnswer("B"))

	api.submitErr = errors.New("connection refused")
	_, err := session.Submit(ctx)
	require.Error(t, err)

	// No fabricated result, answers intact, retry possible.
	assert.Equal(t, PhaseInProgress, session.Phase())
	assert.Nil(t, session.Result())
	assert.Equal(t, "A", session.Answer(0))
	assert.Equal(t, "B", session.Answer(1))

	api.submitErr = nil
	result, err := session.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Score)
	assert.Equal(t, 1, api.submissionCount())
}

func TestSubmit_WrongPhase(t *testing.T) {
	api := newFakeAPI(2)
	ctx := context.Background()

	session, err := NewSession(ctx, api, api.quiz.ID)
	require.NoError(t, err)

	_, err = session.Submit(ctx)
	assert.ErrorIs(t, err, ErrWrongPhase)

	require.NoError(t, session.VerifyPassword(ctx, "Asha", "4321"))
	_, err = session.Submit(ctx)
	assert.ErrorIs(t, err, ErrWrongPhase)
}

func TestSelectAnswer_InvalidLabel(t *testing.T) {
	api := newFakeAPI(2)
	session := startedSession(t, api)

	assert.ErrorIs(t, session.SelectAnswer("E"), ErrInvalidChoice)
	assert.ErrorIs(t, session.SelectAnswer("a"), ErrInvalidChoice)
	assert.ErrorIs(t, session.SelectAnswer(""), ErrInvalidChoice)
}

func TestRunCountdown_CancelStopsTicks(t *testing.T) {
	api := newFakeAPI(2)
	session := startedSession(t, api)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		session.RunCountdown(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("countdown did not stop after cancellation")
	}
	assert.Equal(t, 0, api.submissionCount())
}
