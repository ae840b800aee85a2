package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/SantiagoCMS/Jogo-do-Milhao/internal/domain"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultPlayerID is credited when no player identity is configured.
const DefaultPlayerID = "guest"

const (
	msgCorrect = "Congratulations! Correct answer!"
	msgVictory = "CONGRATULATIONS! You won the challenge!"
	msgSkipped = "You skipped the question."
	msgWrong   = "Oops! The answer was %s."
)

// Ledger persists cumulative scores per player. Implementations read the whole
// mapping, modify it and write it back; concurrent writers are last-writer-wins.
type Ledger interface {
	Add(ctx context.Context, playerID string, delta int) error
	Scores(ctx context.Context) (map[string]int, error)
}

// SessionOption customises a Session.
type SessionOption func(*Session)

// WithPlayerID sets the identity credited in the ledger.
func WithPlayerID(id string) SessionOption {
	return func(s *Session) {
		if id != "" {
			s.playerID = id
		}
	}
}

// WithSkipScore controls whether the skip help awards the question's score.
func WithSkipScore(award bool) SessionOption {
	return func(s *Session) { s.skipWithoutScore = !award }
}

// WithSessionRand sets the random source used by the eliminate help.
func WithSessionRand(rnd *rand.Rand) SessionOption {
	return func(s *Session) {
		if rnd != nil {
			s.rnd = rnd
		}
	}
}

// WithLogger attaches a logger; the session adds its own ID field.
func WithLogger(log logrus.FieldLogger) SessionOption {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

// WithSessionID overrides the generated session ID.
func WithSessionID(id string) SessionOption {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// Session is one play-through of a question sequence. It is driven by a single
// caller at a time; the mutex only protects concurrent Snapshot reads.
type Session struct {
	mu sync.Mutex

	id               string
	questions        []domain.Question
	ledger           Ledger
	log              logrus.FieldLogger
	rnd              *rand.Rand
	playerID         string
	skipWithoutScore bool

	phase       domain.Phase
	index       int
	help        *HelpBudget
	hintVisible bool
	outcome     domain.Outcome
	feedback    string
	won         bool
	earned      int
	warning     string
}

// NewSession starts a session in the awaiting-answer phase on the first
// question. An empty sequence is replaced by a single placeholder question.
func NewSession(questions []domain.Question, ledger Ledger, opts ...SessionOption) *Session {
	if len(questions) == 0 {
		questions = []domain.Question{placeholderQuestion()}
	}
	s := &Session{
		id:        uuid.NewString(),
		questions: append([]domain.Question(nil), questions...),
		ledger:    ledger,
		log:       logrus.StandardLogger(),
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
		playerID:  DefaultPlayerID,
		phase:     domain.PhaseAwaitingAnswer,
		help:      NewHelpBudget(InitialHelpLives),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithField("session", s.id)
	s.log.WithFields(logrus.Fields{"questions": len(s.questions), "player": s.playerID}).Info("session started")
	return s
}

// ID returns the session identifier used in logs.
func (s *Session) ID() string { return s.id }

// SubmitAnswer evaluates label against the current question.
func (s *Session) SubmitAnswer(ctx context.Context, label domain.Label) (domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requirePhaseLocked(domain.PhaseAwaitingAnswer, "submit_answer"); err != nil {
		return s.snapshotLocked(), err
	}
	l, ok := domain.ParseLabel(string(label))
	if !ok {
		return s.snapshotLocked(), domain.ErrUnknownLabel
	}
	if s.help.IsEliminated(l) {
		return s.snapshotLocked(), domain.ErrLabelEliminated
	}

	q := s.current()
	if l == q.Correct {
		s.answerCorrectLocked(ctx, msgCorrect, true)
	} else {
		s.outcome = domain.OutcomeIncorrect
		s.earned = 0
		s.feedback = fmt.Sprintf(msgWrong, q.Correct)
		s.phase = domain.PhaseFeedbackShown
		s.log.WithFields(logrus.Fields{"index": s.index, "label": l}).Info("incorrect answer")
	}
	return s.snapshotLocked(), nil
}

// UseHelp applies one help kind to the current question.
func (s *Session) UseHelp(ctx context.Context, kind domain.HelpKind) (domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requirePhaseLocked(domain.PhaseAwaitingAnswer, "use_help"); err != nil {
		return s.snapshotLocked(), err
	}
	switch kind {
	case domain.HelpHint, domain.HelpEliminate, domain.HelpSkip:
	default:
		return s.snapshotLocked(), domain.ErrUnknownHelp
	}
	if err := s.help.Use(); err != nil {
		s.log.WithField("help", kind).Debug("help rejected")
		return s.snapshotLocked(), err
	}

	log := s.log.WithFields(logrus.Fields{"index": s.index, "help": kind, "lives": s.help.Lives()})
	switch kind {
	case domain.HelpHint:
		s.hintVisible = true
		log.Info("hint revealed")
	case domain.HelpEliminate:
		removed := s.help.Eliminate(s.current(), s.rnd)
		log.WithField("removed", removed).Info("alternatives eliminated")
	case domain.HelpSkip:
		log.Info("question skipped")
		s.answerCorrectLocked(ctx, msgSkipped, !s.skipWithoutScore)
	}
	return s.snapshotLocked(), nil
}

// Acknowledge dismisses the feedback and moves to the next question, to the
// won phase or out of the session.
func (s *Session) Acknowledge(_ context.Context) (domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requirePhaseLocked(domain.PhaseFeedbackShown, "acknowledge"); err != nil {
		return s.snapshotLocked(), err
	}

	switch {
	case s.outcome == domain.OutcomeCorrect && s.won:
		s.phase = domain.PhaseWon
		s.log.Info("session won")
	case s.outcome == domain.OutcomeCorrect:
		s.help.Settle(s.outcome)
		s.index++
		s.hintVisible = false
		s.feedback = ""
		s.warning = ""
		s.earned = 0
		s.outcome = domain.OutcomeUnknown
		s.phase = domain.PhaseAwaitingAnswer
		s.log.WithFields(logrus.Fields{"index": s.index, "lives": s.help.Lives()}).Debug("next question")
	default:
		s.phase = domain.PhaseExited
		s.log.WithField("index", s.index).Info("session lost")
	}
	return s.snapshotLocked(), nil
}

// Quit leaves the session from any phase. Terminal phases are kept.
func (s *Session) Quit() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.phase.Terminal() {
		s.phase = domain.PhaseExited
		s.log.WithField("index", s.index).Info("session quit")
	}
	return s.snapshotLocked()
}

// Snapshot returns a copy of the current state for rendering.
func (s *Session) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) current() domain.Question {
	return s.questions[s.index]
}

func (s *Session) requirePhaseLocked(want domain.Phase, action string) error {
	if s.phase == want {
		return nil
	}
	s.log.WithFields(logrus.Fields{"action": action, "phase": s.phase}).Debug("transition rejected")
	return domain.ErrInvalidTransition
}

// answerCorrectLocked is shared by correct answers and the skip help.
func (s *Session) answerCorrectLocked(ctx context.Context, message string, award bool) {
	s.outcome = domain.OutcomeCorrect
	s.phase = domain.PhaseFeedbackShown
	s.feedback = message
	if s.index+1 == len(s.questions) {
		s.won = true
		s.feedback = msgVictory
	}

	s.earned = 0
	if award {
		s.earned = ScoreFor(s.index)
		s.recordLocked(ctx, s.earned)
	}
	s.log.WithFields(logrus.Fields{"index": s.index, "earned": s.earned, "won": s.won}).Info("correct answer")
}

// recordLocked appends to the ledger, retrying once before surfacing a warning.
func (s *Session) recordLocked(ctx context.Context, delta int) {
	if s.ledger == nil || delta == 0 {
		return
	}
	err := s.ledger.Add(ctx, s.playerID, delta)
	if err != nil && !errors.Is(err, context.Canceled) {
		s.log.WithError(err).Debug("ledger write failed, retrying")
		err = s.ledger.Add(ctx, s.playerID, delta)
	}
	if err != nil {
		s.warning = fmt.Sprintf("score not saved: %v", err)
		s.log.WithError(fmt.Errorf("%w: %v", domain.ErrLedgerWrite, err)).
			WithFields(logrus.Fields{"player": s.playerID, "delta": delta}).
			Warn("score not saved")
	}
}

func (s *Session) snapshotLocked() domain.Snapshot {
	q := s.current()
	alternatives := make(map[domain.Label]string, len(q.Alternatives))
	for l, text := range q.Alternatives {
		alternatives[l] = text
	}
	snap := domain.Snapshot{
		SessionID: s.id,
		Phase:     s.phase,
		Question: domain.QuestionView{
			Text:         q.Text,
			Alternatives: alternatives,
			Subject:      q.Subject,
			Level:        q.Level,
		},
		Index:           s.index,
		Total:           len(s.questions),
		HelpLives:       s.help.Lives(),
		HelpUsed:        s.help.Used(),
		HelpAvailable:   s.phase == domain.PhaseAwaitingAnswer && s.help.Available(),
		Eliminated:      s.help.Eliminated(),
		HintVisible:     s.hintVisible,
		FeedbackVisible: s.phase == domain.PhaseFeedbackShown,
		FeedbackMessage: s.feedback,
		LastOutcome:     s.outcome,
		Won:             s.won,
		Earned:          s.earned,
		Warning:         s.warning,
	}
	if s.hintVisible {
		snap.Hint = q.Hint
	}
	return snap
}
