package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"quiz-pulse/internal/client"
	"quiz-pulse/internal/domain"
	"quiz-pulse/internal/session"

	"github.com/spf13/cobra"
)

func newPlayCmd() *cobra.Command {
	var amount int
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Take the trivia quiz",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), amount)
		},
	}
	cmd.Flags().IntVar(&amount, "questions", 15, "number of questions")
	return cmd
}

func runPlay(ctx context.Context, amount int) error {
	api := client.New(apiBaseURL)
	store := &wizardStore{}
	reader := bufio.NewReader(os.Stdin)

	// Screen 1: email capture.
	email, err := promptEmail(reader)
	if err != nil {
		return err
	}
	resp, err := api.SubmitEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to submit email: %w", err)
	}
	store.SetEmail(resp.Email)
	store.Clear() // a new attempt invalidates any previous report hand-off

	// Screen 2: the quiz.
	sess := session.New(store.Email(), session.QuizDuration)

	payloads, err := api.FetchQuestions(ctx, amount)
	if err != nil {
		sess.FailLoad()
		fmt.Println("Failed to load quiz questions. Please try again.")
		return err
	}
	questions := make([]domain.Question, 0, len(payloads))
	for _, p := range payloads {
		q := p.ToDomainQuestion()
		// Re-shuffle per attempt; the server may serve a cached page.
		rand.Shuffle(len(q.Choices), func(i, j int) {
			q.Choices[i], q.Choices[j] = q.Choices[j], q.Choices[i]
		})
		questions = append(questions, q)
	}
	if err := sess.Begin(questions, time.Now()); err != nil {
		return err
	}

	if err := runQuizLoop(ctx, api, sess, store, reader); err != nil {
		return err
	}

	// Screen 3: the report.
	if result := store.ConsumeLastResult(); result != nil {
		printReport(result)
	}
	return nil
}

func promptEmail(reader *bufio.Reader) (string, error) {
	for {
		fmt.Print("Enter your email to start the quiz: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", err
		}
		email := strings.TrimSpace(line)
		if email != "" {
			return email, nil
		}
		fmt.Println("Email is required.")
	}
}

// quizLoop owns the active session and multiplexes user input with timer
// expiry. Expiry submits whatever answers are recorded, without confirmation.
type quizLoop struct {
	api       *client.Client
	sess      *session.Session
	store     *wizardStore
	countdown *session.Countdown
	lines     chan string
	readErrs  chan error
	done      chan struct{}
}

func runQuizLoop(ctx context.Context, api *client.Client, sess *session.Session, store *wizardStore, reader *bufio.Reader) error {
	loop := &quizLoop{
		api:       api,
		sess:      sess,
		store:     store,
		countdown: session.StartCountdown(sess.Remaining(time.Now())),
		lines:     make(chan string),
		readErrs:  make(chan error, 1),
		done:      make(chan struct{}),
	}
	defer loop.countdown.Stop()
	defer close(loop.done)

	// A single goroutine owns stdin for the whole loop; every prompt reads
	// through the lines channel so input and expiry can be multiplexed. The
	// done channel releases it once the loop returns.
	go func() {
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				select {
				case loop.readErrs <- err:
				case <-loop.done:
				}
				return
			}
			select {
			case loop.lines <- strings.TrimSpace(line):
			case <-loop.done:
				return
			}
		}
	}()

	return loop.run(ctx)
}

// run drives the active session until it is submitted, abandoned, or fails.
func (l *quizLoop) run(ctx context.Context) error {
	for l.sess.Phase() == session.PhaseActive {
		l.printQuestion()
		fmt.Printf("[%s left] answer 1-%d, (n)ext, (p)rev, g <num>, (s)ubmit, (q)uit: ",
			formatDuration(l.sess.Remaining(time.Now())), len(l.sess.CurrentQuestion().Choices))

		line, expired, err := l.readLine(ctx)
		if err != nil {
			return err
		}
		if expired {
			fmt.Println("\nTime is up! Submitting your answers...")
			if err := l.submitOnExpiry(ctx); err != nil {
				return err
			}
			continue
		}

		done, err := l.handleCommand(ctx, line)
		if done || err != nil {
			return err
		}
	}
	return nil
}

// readLine waits for the next input line, timer expiry, or a read error.
// io.EOF is surfaced as an error so callers can stop cleanly.
func (l *quizLoop) readLine(ctx context.Context) (line string, expired bool, err error) {
	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	case <-l.countdown.Expired:
		return "", true, nil
	case err := <-l.readErrs:
		if err == io.EOF {
			return "", false, fmt.Errorf("input closed before the quiz was submitted")
		}
		return "", false, err
	case line := <-l.lines:
		return line, false, nil
	}
}

func (l *quizLoop) handleCommand(ctx context.Context, line string) (bool, error) {
	switch {
	case line == "q":
		fmt.Println("Quiz abandoned; nothing was submitted.")
		return true, nil
	case line == "n":
		return false, l.sess.Next()
	case line == "p":
		return false, l.sess.Previous()
	case strings.HasPrefix(line, "g "):
		num, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "g ")))
		if err != nil {
			fmt.Println("Usage: g <question number>")
			return false, nil
		}
		if err := l.sess.Navigate(num - 1); err != nil {
			fmt.Println(err)
		}
		return false, nil
	case line == "s":
		return l.confirmAndSubmit(ctx)
	default:
		choiceNum, err := strconv.Atoi(line)
		choices := l.sess.CurrentQuestion().Choices
		if err != nil || choiceNum < 1 || choiceNum > len(choices) {
			fmt.Println("Unrecognized input.")
			return false, nil
		}
		if err := l.sess.SelectAnswer(choices[choiceNum-1]); err != nil {
			return false, err
		}
		return false, l.sess.Next()
	}
}

// confirmAndSubmit asks for confirmation before submitting. If the timer
// expires while waiting, the attempt is submitted regardless.
func (l *quizLoop) confirmAndSubmit(ctx context.Context) (bool, error) {
	fmt.Printf("You have answered %d out of %d questions.\nAre you sure you want to submit? (y/n): ",
		l.sess.AnsweredCount(), l.sess.TotalQuestions())

	line, expired, err := l.readLine(ctx)
	if err != nil {
		return false, err
	}
	if expired {
		fmt.Println("\nTime is up! Submitting your answers...")
		return false, l.submitOnExpiry(ctx)
	}

	answer := strings.ToLower(line)
	if answer != "y" && answer != "yes" {
		return false, nil
	}
	return false, l.submit(ctx)
}

// submitOnExpiry submits without confirmation after the timer runs out.
// There is no loop to retry from once time is up, so a failed post ends the
// attempt with an error instead of returning to active.
func (l *quizLoop) submitOnExpiry(ctx context.Context) error {
	if err := l.submit(ctx); err != nil {
		return err
	}
	if l.sess.Phase() != session.PhaseSubmitted {
		return fmt.Errorf("failed to submit quiz after time expired")
	}
	return nil
}

// submit grades the attempt and posts it. A failed post returns the session
// to active so the user can retry.
func (l *quizLoop) submit(ctx context.Context) error {
	payload, err := l.sess.BuildSubmission(time.Now())
	if err != nil {
		return err
	}

	resp, err := l.api.SubmitQuiz(ctx, payload)
	if err != nil {
		l.sess.FailSubmit()
		fmt.Println("Failed to submit quiz. Please try again.")
		return nil
	}

	l.sess.CompleteSubmit()
	l.store.SetLastResult(payload)
	fmt.Printf("\n%s (quiz id %s)\n", resp.Message, resp.QuizID)
	return nil
}

func (l *quizLoop) printQuestion() {
	q := l.sess.CurrentQuestion()
	fmt.Printf("\nQuestion %d of %d  [%s | %s]\n", l.sess.Current()+1, l.sess.TotalQuestions(), q.Category, q.Difficulty)
	fmt.Printf("%s\n\n", q.Question)
	selected, _ := l.sess.Answer(l.sess.Current())
	for i, choice := range q.Choices {
		marker := " "
		if choice == selected {
			marker = "*"
		}
		fmt.Printf(" %s %d. %s\n", marker, i+1, choice)
	}
	fmt.Printf("\nAnswered %d/%d\n", l.sess.AnsweredCount(), l.sess.TotalQuestions())
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
