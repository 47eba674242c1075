package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/rajuljha/ByteClub-AMUHACKS4.0/internal/client"
	"github.com/rajuljha/ByteClub-AMUHACKS4.0/internal/lib/slogcustom"
	"github.com/rajuljha/ByteClub-AMUHACKS4.0/internal/models"
	"github.com/rajuljha/ByteClub-AMUHACKS4.0/internal/player"

	"github.com/fatih/color"
	"github.com/spf13/pflag"
)

func main() {
	log := slog.New(slogcustom.NewCustomHandler(os.Stderr, slog.LevelInfo))
	slog.SetDefault(log)

	flagServer := pflag.String("server", "http://localhost:8080", "base URL of the quiz server")
	flagQuizID := pflag.String("quiz", "", "id of the quiz to take")
	pflag.Parse()

	if *flagQuizID == "" {
		slog.Error("missing --quiz flag")
		os.Exit(1)
	}

	ctx := context.Background()
	api := client.NewHTTPClient(*flagServer)

	session, err := player.NewSession(ctx, api, *flagQuizID)
	if err != nil {
		slog.Error("could not load quiz", "err", err)
		os.Exit(1)
	}

	stdin := bufio.NewReader(os.Stdin)
	quiz := session.Quiz()

	// Password gate: retryable until the server accepts.
	color.Cyan("== %s ==", quiz.Name)
	for session.Phase() == player.PhasePasswordGate {
		name := promptLine(stdin, "Your name: ")
		password := promptLine(stdin, "Quiz password: ")
		if err := session.VerifyPassword(ctx, name, password); err != nil {
			color.Red("Could not start: %v", err)
			continue
		}
	}

	printInstructions(quiz)
	promptLine(stdin, "Press Enter to start...")

	if err := session.Begin(); err != nil {
		slog.Error("could not begin quiz", "err", err)
		os.Exit(1)
	}

	countdownCtx, cancelCountdown := context.WithCancel(ctx)
	defer cancelCountdown()
	go session.RunCountdown(countdownCtx)

	runQuestionLoop(ctx, session, stdin)
	cancelCountdown()

	result := session.Result()
	if result == nil {
		slog.Error("quiz ended without a result")
		os.Exit(1)
	}
	printResult(session, result)

	if entries, err := api.GetLeaderboard(ctx, *flagQuizID); err == nil {
		printLeaderboard(entries)
	}

	content, err := api.FetchContent(ctx, quiz.Topic, 5)
	if err == nil {
		printContent(quiz.Topic, content)
	}
}

func runQuestionLoop(ctx context.Context, session *player.Session, stdin *bufio.Reader) {
	for session.Phase() == player.PhaseInProgress {
		printQuestion(session)

		input := strings.ToUpper(promptLine(stdin, "> "))
		if session.Phase() != player.PhaseInProgress {
			// Countdown expired while waiting for input.
			return
		}

		switch input {
		case "A", "B", "C", "D":
			if err := session.SelectAnswer(input); err != nil {
				color.Red("%v", err)
			}
		case "N", "NEXT":
			session.Next()
		case "P", "PREV", "PREVIOUS":
			session.Previous()
		case "S", "SUBMIT":
			if !session.OnLastQuestion() {
				color.Yellow("Submit is only available on the last question.")
				continue
			}
			if _, err := session.Submit(ctx); err != nil {
				color.Red("Submission failed, your answers are kept: %v", err)
			}
		case "Q", "QUIT":
			return
		default:
			color.Yellow("Commands: A-D answer, n(ext), p(rev), s(ubmit), q(uit)")
		}
	}
}

func promptLine(stdin *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	line, err := stdin.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

func printInstructions(quiz *models.Quiz) {
	color.Cyan("\nTopic: %s | Grade: %s | Board: %s", quiz.Topic, quiz.Grade, quiz.SchoolBoard)
	fmt.Printf("%d questions, %d minutes. The quiz submits itself when the timer runs out.\n",
		quiz.NumberOfQuestions, quiz.TimeLimitMinutes)
	fmt.Println("Navigate freely between questions; answers can be changed until you submit.")
}

func printQuestion(session *player.Session) {
	quiz := session.Quiz()
	idx := session.CurrentIndex()
	q := session.CurrentQuestion()
	remaining := session.Remaining()

	fmt.Println()
	color.Cyan("Question %d/%d  [%s left]", idx+1, len(quiz.Questions), models.FormatTimeTaken(remaining))
	fmt.Println(q.Text)
	for _, label := range models.ChoiceLabels {
		marker := " "
		if session.Answer(idx) == label {
			marker = color.GreenString("*")
		}
		fmt.Printf(" %s %s) %s\n", marker, label, q.Choice(label))
	}
}

func printResult(session *player.Session, result *models.ScoreResult) {
	summary := models.BuildResultSummary(result.Score, result.Total,
		int(session.TimeTaken().Seconds()), time.Now())

	fmt.Println()
	color.Cyan("== Results ==")
	fmt.Printf("Score: %d/%d (%d%%)\n", summary.Score, summary.Total, summary.Percentage)
	fmt.Printf("Incorrect: %d | Time taken: %s\n", summary.IncorrectAnswers, summary.TimeTaken)
}

func printLeaderboard(entries []models.LeaderboardEntry) {
	if len(entries) == 0 {
		return
	}
	color.Cyan("\n== Leaderboard ==")
	for i, e := range entries {
		fmt.Printf("%2d. %-20s %d pts (%d%%) in %s\n",
			i+1, e.Name, e.Score, e.Percentage, e.TimeTaken)
	}
}

func printContent(topic string, content *models.SupplementaryContent) {
	if len(content.Videos) > 0 {
		color.Cyan("\nVideos on %s:", topic)
		for _, v := range content.Videos {
			fmt.Printf("  %s\n    %s\n", v.Title, v.URL)
		}
	}
	if len(content.Articles) > 0 {
		color.Cyan("\nArticles on %s:", topic)
		for _, a := range content.Articles {
			fmt.Printf("  %s\n    %s\n", a.Title, a.URL)
		}
	}
}
