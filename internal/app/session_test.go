package app_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/SantiagoCMS/Jogo-do-Milhao/internal/app"
	"github.com/SantiagoCMS/Jogo-do-Milhao/internal/domain"
	"github.com/SantiagoCMS/Jogo-do-Milhao/internal/infra/memory"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

func TestCorrectAnswerOnSingleQuestionWins(t *testing.T) {
	ctx := context.Background()
	ledger := memory.NewLedger()
	session := newTestSession(makeQuestions(1), ledger)

	snap, err := session.SubmitAnswer(ctx, domain.LabelB)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if snap.Phase != domain.PhaseFeedbackShown || !snap.Won {
		t.Fatalf("expected won feedback, got phase %s won %v", snap.Phase, snap.Won)
	}
	if !strings.Contains(snap.FeedbackMessage, "won") {
		t.Fatalf("expected victory message, got %q", snap.FeedbackMessage)
	}

	snap, err = session.Acknowledge(ctx)
	if err != nil {
		t.Fatalf("acknowledge failed: %v", err)
	}
	if snap.Phase != domain.PhaseWon || !snap.Won {
		t.Fatalf("expected won phase, got %s", snap.Phase)
	}
	if snap.Index+1 != snap.Total {
		t.Fatalf("won with index %d of %d", snap.Index, snap.Total)
	}
	if _, err := session.Acknowledge(ctx); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected no transition out of won, got %v", err)
	}

	scores, _ := ledger.Scores(ctx)
	if scores["tester"] != 1000 {
		t.Fatalf("expected 1000 points, got %d", scores["tester"])
	}
}

func TestEliminateKeepsCorrectAndSpendsLifeOnAdvance(t *testing.T) {
	ctx := context.Background()
	session := newTestSession(makeQuestions(12), memory.NewLedger())

	snap, err := session.UseHelp(ctx, domain.HelpEliminate)
	if err != nil {
		t.Fatalf("eliminate failed: %v", err)
	}
	if len(snap.Eliminated) != 2 {
		t.Fatalf("expected 2 eliminated labels, got %v", snap.Eliminated)
	}
	for _, l := range snap.Eliminated {
		if l == domain.LabelB {
			t.Fatalf("correct label eliminated: %v", snap.Eliminated)
		}
	}
	if snap.HelpLives != 3 || !snap.HelpUsed || snap.HelpAvailable {
		t.Fatalf("unexpected help state lives=%d used=%v available=%v", snap.HelpLives, snap.HelpUsed, snap.HelpAvailable)
	}
	if snap.Phase != domain.PhaseAwaitingAnswer {
		t.Fatalf("eliminate must not change phase, got %s", snap.Phase)
	}

	if _, err := session.SubmitAnswer(ctx, snap.Eliminated[0]); !errors.Is(err, domain.ErrLabelEliminated) {
		t.Fatalf("expected eliminated label rejection, got %v", err)
	}

	snap, err = session.SubmitAnswer(ctx, domain.LabelB)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if snap.HelpLives != 3 {
		t.Fatalf("lives must not drop before advance, got %d", snap.HelpLives)
	}

	snap, err = session.Acknowledge(ctx)
	if err != nil {
		t.Fatalf("acknowledge failed: %v", err)
	}
	if snap.HelpLives != 2 {
		t.Fatalf("expected 2 lives after advance, got %d", snap.HelpLives)
	}
	if snap.Index != 1 || len(snap.Eliminated) != 0 || snap.HelpUsed || !snap.HelpAvailable {
		t.Fatalf("per-question state not reset: %+v", snap)
	}
}

func TestIncorrectAnswerExits(t *testing.T) {
	ctx := context.Background()
	ledger := memory.NewLedger()
	session := newTestSession(makeQuestions(12), ledger)

	snap, err := session.SubmitAnswer(ctx, domain.LabelD)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if snap.LastOutcome != domain.OutcomeIncorrect {
		t.Fatalf("expected incorrect outcome, got %s", snap.LastOutcome)
	}
	if !strings.Contains(snap.FeedbackMessage, "B") {
		t.Fatalf("feedback should name the correct label, got %q", snap.FeedbackMessage)
	}

	snap, err = session.Acknowledge(ctx)
	if err != nil {
		t.Fatalf("acknowledge failed: %v", err)
	}
	if snap.Phase != domain.PhaseExited {
		t.Fatalf("expected exited, got %s", snap.Phase)
	}
	scores, _ := ledger.Scores(ctx)
	if len(scores) != 0 {
		t.Fatalf("ledger changed on incorrect answer: %+v", scores)
	}
}

func TestSkipCountsAsCorrectWithNeutralMessage(t *testing.T) {
	ctx := context.Background()
	ledger := memory.NewLedger()
	session := newTestSession(makeQuestions(12), ledger)
	advance(t, session, 5)

	before, _ := ledger.Scores(ctx)
	snap, err := session.UseHelp(ctx, domain.HelpSkip)
	if err != nil {
		t.Fatalf("skip failed: %v", err)
	}
	if snap.LastOutcome != domain.OutcomeCorrect || snap.Won {
		t.Fatalf("skip should be a non-winning correct answer: %+v", snap)
	}
	if snap.FeedbackMessage != "You skipped the question." {
		t.Fatalf("expected neutral skip message, got %q", snap.FeedbackMessage)
	}
	if snap.Earned != 50000 {
		t.Fatalf("expected 50000 earned, got %d", snap.Earned)
	}
	after, _ := ledger.Scores(ctx)
	if after["tester"]-before["tester"] != 50000 {
		t.Fatalf("expected ledger +50000, got %d", after["tester"]-before["tester"])
	}

	snap, err = session.Acknowledge(ctx)
	if err != nil {
		t.Fatalf("acknowledge failed: %v", err)
	}
	if snap.Index != 6 || snap.Phase != domain.PhaseAwaitingAnswer {
		t.Fatalf("expected index 6 awaiting answer, got %d %s", snap.Index, snap.Phase)
	}
	if snap.HelpLives != 2 {
		t.Fatalf("skip counts as help on a correct question, lives %d", snap.HelpLives)
	}
}

func TestSkipWithoutScore(t *testing.T) {
	ctx := context.Background()
	ledger := memory.NewLedger()
	session := newTestSession(makeQuestions(3), ledger, app.WithSkipScore(false))

	snap, err := session.UseHelp(ctx, domain.HelpSkip)
	if err != nil {
		t.Fatalf("skip failed: %v", err)
	}
	if snap.Earned != 0 {
		t.Fatalf("expected no score, got %d", snap.Earned)
	}
	scores, _ := ledger.Scores(ctx)
	if len(scores) != 0 {
		t.Fatalf("ledger changed: %+v", scores)
	}
}

func TestSkipOnLastQuestionWins(t *testing.T) {
	ctx := context.Background()
	session := newTestSession(makeQuestions(2), memory.NewLedger())
	advance(t, session, 1)

	snap, err := session.UseHelp(ctx, domain.HelpSkip)
	if err != nil {
		t.Fatalf("skip failed: %v", err)
	}
	if !snap.Won {
		t.Fatalf("skip on the final question should win")
	}
	snap, _ = session.Acknowledge(ctx)
	if snap.Phase != domain.PhaseWon {
		t.Fatalf("expected won, got %s", snap.Phase)
	}
}

func TestHelpAtMostOncePerQuestion(t *testing.T) {
	ctx := context.Background()
	session := newTestSession(makeQuestions(3), memory.NewLedger())

	snap, err := session.UseHelp(ctx, domain.HelpHint)
	if err != nil {
		t.Fatalf("hint failed: %v", err)
	}
	if !snap.HintVisible || snap.Hint != "hint 1" {
		t.Fatalf("expected visible hint, got %+v", snap)
	}
	if _, err := session.UseHelp(ctx, domain.HelpEliminate); !errors.Is(err, domain.ErrHelpUnavailable) {
		t.Fatalf("expected help unavailable, got %v", err)
	}
	if _, err := session.UseHelp(ctx, domain.HelpKind("phone")); !errors.Is(err, domain.ErrUnknownHelp) {
		t.Fatalf("expected unknown help, got %v", err)
	}
}

func TestLivesUnchangedByIncorrectAnswer(t *testing.T) {
	ctx := context.Background()
	session := newTestSession(makeQuestions(3), memory.NewLedger())

	if _, err := session.UseHelp(ctx, domain.HelpHint); err != nil {
		t.Fatalf("hint failed: %v", err)
	}
	if _, err := session.SubmitAnswer(ctx, domain.LabelA); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	snap, _ := session.Acknowledge(ctx)
	if snap.HelpLives != 3 {
		t.Fatalf("expected 3 lives after incorrect outcome, got %d", snap.HelpLives)
	}
}

func TestHelpDisabledAtZeroLives(t *testing.T) {
	ctx := context.Background()
	session := newTestSession(makeQuestions(5), memory.NewLedger())

	for i := 0; i < 3; i++ {
		if _, err := session.UseHelp(ctx, domain.HelpHint); err != nil {
			t.Fatalf("hint %d failed: %v", i, err)
		}
		if _, err := session.SubmitAnswer(ctx, domain.LabelB); err != nil {
			t.Fatalf("submit %d failed: %v", i, err)
		}
		if _, err := session.Acknowledge(ctx); err != nil {
			t.Fatalf("acknowledge %d failed: %v", i, err)
		}
	}

	snap := session.Snapshot()
	if snap.HelpLives != 0 || snap.HelpAvailable {
		t.Fatalf("expected no help left, got lives=%d available=%v", snap.HelpLives, snap.HelpAvailable)
	}
	for _, kind := range domain.HelpKinds {
		if _, err := session.UseHelp(ctx, kind); !errors.Is(err, domain.ErrHelpUnavailable) {
			t.Fatalf("%s: expected help unavailable, got %v", kind, err)
		}
	}
}

func TestInvalidTransitionsDoNotMutate(t *testing.T) {
	ctx := context.Background()
	session := newTestSession(makeQuestions(3), memory.NewLedger())

	if _, err := session.Acknowledge(ctx); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
	if _, err := session.SubmitAnswer(ctx, domain.Label("E")); !errors.Is(err, domain.ErrUnknownLabel) {
		t.Fatalf("expected unknown label, got %v", err)
	}

	before, _ := session.SubmitAnswer(ctx, domain.LabelB)
	after, err := session.SubmitAnswer(ctx, domain.LabelA)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
	if after.LastOutcome != before.LastOutcome || after.FeedbackMessage != before.FeedbackMessage {
		t.Fatalf("rejected submit mutated state")
	}
	if _, err := session.UseHelp(ctx, domain.HelpHint); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition for help during feedback, got %v", err)
	}
}

func TestQuitFromAnyPhase(t *testing.T) {
	ctx := context.Background()
	session := newTestSession(makeQuestions(3), memory.NewLedger())
	if _, err := session.SubmitAnswer(ctx, domain.LabelB); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if snap := session.Quit(); snap.Phase != domain.PhaseExited {
		t.Fatalf("expected exited, got %s", snap.Phase)
	}
	if _, err := session.Acknowledge(ctx); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected no transition after quit, got %v", err)
	}

	won := newTestSession(makeQuestions(1), memory.NewLedger())
	won.SubmitAnswer(ctx, domain.LabelB)
	won.Acknowledge(ctx)
	if snap := won.Quit(); snap.Phase != domain.PhaseWon {
		t.Fatalf("quit must keep the won phase, got %s", snap.Phase)
	}
}

func TestEmptySequenceUsesPlaceholder(t *testing.T) {
	session := newTestSession(nil, memory.NewLedger())
	snap := session.Snapshot()
	if snap.Total != 1 || !strings.Contains(snap.Question.Text, "Error") {
		t.Fatalf("expected placeholder question, got %+v", snap.Question)
	}
	if snap.Phase != domain.PhaseAwaitingAnswer {
		t.Fatalf("expected awaiting answer, got %s", snap.Phase)
	}
}

func TestScoreFollowsTable(t *testing.T) {
	ctx := context.Background()
	ledger := memory.NewLedger()
	session := newTestSession(makeQuestions(12), ledger)

	total := 0
	for i := 0; i < 12; i++ {
		snap, err := session.SubmitAnswer(ctx, domain.LabelB)
		if err != nil {
			t.Fatalf("submit %d failed: %v", i, err)
		}
		if snap.Earned != app.ScoreFor(i) {
			t.Fatalf("question %d earned %d, want %d", i, snap.Earned, app.ScoreFor(i))
		}
		total += snap.Earned
		if snap.Index < 0 || snap.Index >= snap.Total {
			t.Fatalf("index %d out of range", snap.Index)
		}
		if snap.Won && snap.Index+1 != snap.Total {
			t.Fatalf("won at index %d of %d", snap.Index, snap.Total)
		}
		if _, err := session.Acknowledge(ctx); err != nil {
			t.Fatalf("acknowledge %d failed: %v", i, err)
		}
	}
	if session.Snapshot().Phase != domain.PhaseWon {
		t.Fatalf("expected won after 12 correct answers")
	}
	scores, _ := ledger.Scores(ctx)
	if scores["tester"] != total || total != 2588000 {
		t.Fatalf("ledger %d, summed %d", scores["tester"], total)
	}
}

func TestLedgerFailureRetriesOnceThenWarns(t *testing.T) {
	ctx := context.Background()

	flaky := &flakyLedger{failures: 1, Ledger: memory.NewLedger()}
	snap, err := newTestSession(makeQuestions(3), flaky).SubmitAnswer(ctx, domain.LabelB)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if snap.Warning != "" || flaky.calls != 2 {
		t.Fatalf("expected silent retry, warning=%q calls=%d", snap.Warning, flaky.calls)
	}

	broken := &flakyLedger{failures: 5, Ledger: memory.NewLedger()}
	session := newTestSession(makeQuestions(3), broken)
	snap, err = session.SubmitAnswer(ctx, domain.LabelB)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if snap.Warning == "" || broken.calls != 2 {
		t.Fatalf("expected warning after two attempts, warning=%q calls=%d", snap.Warning, broken.calls)
	}
	if snap.Phase != domain.PhaseFeedbackShown {
		t.Fatalf("session must continue after ledger failure, got %s", snap.Phase)
	}
	snap, _ = session.Acknowledge(ctx)
	if snap.Warning != "" {
		t.Fatalf("warning should clear on the next question")
	}
}

func TestSessionsHaveDistinctIDs(t *testing.T) {
	a := app.NewSession(makeQuestions(1), nil)
	b := app.NewSession(makeQuestions(1), nil)
	if a.ID() == "" || a.ID() == b.ID() {
		t.Fatalf("expected distinct ids, got %q and %q", a.ID(), b.ID())
	}
}

type flakyLedger struct {
	app.Ledger
	failures int
	calls    int
}

func (l *flakyLedger) Add(ctx context.Context, playerID string, delta int) error {
	l.calls++
	if l.failures > 0 {
		l.failures--
		return errors.New("disk full")
	}
	return l.Ledger.Add(ctx, playerID, delta)
}

func newTestSession(questions []domain.Question, ledger app.Ledger, opts ...app.SessionOption) *app.Session {
	logger, _ := logtest.NewNullLogger()
	base := []app.SessionOption{
		app.WithPlayerID("tester"),
		app.WithLogger(logger),
		app.WithSessionRand(rand.New(rand.NewSource(7))),
	}
	return app.NewSession(questions, ledger, append(base, opts...)...)
}

// advance answers n questions correctly.
func advance(t *testing.T, session *app.Session, n int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		if _, err := session.SubmitAnswer(ctx, domain.LabelB); err != nil {
			t.Fatalf("advance submit %d: %v", i, err)
		}
		if _, err := session.Acknowledge(ctx); err != nil {
			t.Fatalf("advance acknowledge %d: %v", i, err)
		}
	}
}

// makeQuestions builds n questions whose correct label is always B.
func makeQuestions(n int) []domain.Question {
	questions := make([]domain.Question, 0, n)
	for i := 1; i <= n; i++ {
		questions = append(questions, domain.Question{
			ID:   int64(i),
			Text: fmt.Sprintf("question %d", i),
			Alternatives: map[domain.Label]string{
				domain.LabelA: "a", domain.LabelB: "b", domain.LabelC: "c", domain.LabelD: "d",
			},
			Correct: domain.LabelB,
			Hint:    fmt.Sprintf("hint %d", i),
			Subject: "matematica",
			Level:   "fundamental",
		})
	}
	return questions
}
