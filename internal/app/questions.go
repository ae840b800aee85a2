package app

import (
	"context"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SantiagoCMS/Jogo-do-Milhao/internal/domain"
	"github.com/sirupsen/logrus"
)

// MaxQuestions caps the length of a session.
const MaxQuestions = 12

// QuestionSource queries a backing store (SQLite, Postgres, cache) for all
// questions of a level whose subject is in subjects. Order is not guaranteed.
type QuestionSource interface {
	LoadQuestions(ctx context.Context, level string, subjects []string) ([]domain.Question, error)
}

// QuestionRepository turns source rows into a playable, shuffled sequence and
// degrades to the built-in questions instead of failing.
type QuestionRepository struct {
	source QuestionSource
	log    logrus.FieldLogger

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewQuestionRepository(source QuestionSource, log logrus.FieldLogger) *QuestionRepository {
	return &QuestionRepository{
		source: source,
		log:    log,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithRand replaces the shuffle source; used for deterministic tests.
func (r *QuestionRepository) WithRand(rnd *rand.Rand) *QuestionRepository {
	r.rnd = rnd
	return r
}

// Load returns at most MaxQuestions questions for level and subjects. It never
// returns an empty sequence: missing input, store errors and empty results all
// fall back to FallbackQuestions.
func (r *QuestionRepository) Load(ctx context.Context, level string, subjects []string) []domain.Question {
	level = strings.TrimSpace(level)
	subjects = NormalizeSubjects(subjects)
	log := r.log.WithFields(logrus.Fields{"level": level, "subjects": subjects})

	if level == "" || len(subjects) == 0 {
		log.Info("no level or subjects selected, using built-in questions")
		return FallbackQuestions()
	}
	if r.source == nil {
		log.Info("no question store configured, using built-in questions")
		return FallbackQuestions()
	}

	rows, err := r.source.LoadQuestions(ctx, level, subjects)
	if err != nil {
		log.WithError(err).Warn("question store unavailable, using built-in questions")
		return FallbackQuestions()
	}

	questions := make([]domain.Question, 0, len(rows))
	for _, q := range rows {
		if q.Valid() {
			questions = append(questions, q)
		}
	}
	if dropped := len(rows) - len(questions); dropped > 0 {
		log.WithField("dropped", dropped).Warn("skipped malformed questions")
	}
	if len(questions) == 0 {
		log.Info("no questions matched, using built-in questions")
		return FallbackQuestions()
	}

	r.mu.Lock()
	r.rnd.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
	r.mu.Unlock()

	if len(questions) > MaxQuestions {
		questions = questions[:MaxQuestions]
	}
	log.WithField("count", len(questions)).Debug("questions loaded")
	return questions
}

// NormalizeSubjects trims, lowercases, de-duplicates and sorts subject tags.
func NormalizeSubjects(subjects []string) []string {
	seen := make(map[string]struct{}, len(subjects))
	out := make([]string, 0, len(subjects))
	for _, s := range subjects {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// QueryKey identifies a (level, subjects) query for caches.
func QueryKey(level string, subjects []string) string {
	return strings.TrimSpace(level) + ":" + strings.Join(NormalizeSubjects(subjects), ",")
}

// FallbackQuestions is the built-in set used for demos and offline play.
func FallbackQuestions() []domain.Question {
	return []domain.Question{
		{
			ID:   -1,
			Text: "Which language does Pygame use?",
			Alternatives: map[domain.Label]string{
				domain.LabelA: "Python", domain.LabelB: "Java", domain.LabelC: "C#", domain.LabelD: "Lua",
			},
			Correct: domain.LabelA,
			Hint:    "It is a very popular scripting language.",
		},
		{
			ID:   -2,
			Text: "What is 2 to the power of 3?",
			Alternatives: map[domain.Label]string{
				domain.LabelA: "5", domain.LabelB: "6", domain.LabelC: "8", domain.LabelD: "9",
			},
			Correct: domain.LabelC,
			Hint:    "Multiply 2 by itself, 3 times.",
		},
		{
			ID:   -3,
			Text: "What color was Napoleon's white horse?",
			Alternatives: map[domain.Label]string{
				domain.LabelA: "Black", domain.LabelB: "Brown", domain.LabelC: "White", domain.LabelD: "Dappled",
			},
			Correct: domain.LabelC,
			Hint:    "The question already contains the answer!",
		},
	}
}

// placeholderQuestion keeps the session's current item defined when a
// sequence is unexpectedly empty.
func placeholderQuestion() domain.Question {
	return domain.Question{
		ID:   0,
		Text: "Error: questions could not be loaded!",
		Alternatives: map[domain.Label]string{
			domain.LabelA: "-", domain.LabelB: "-", domain.LabelC: "-", domain.LabelD: "-",
		},
		Correct: domain.LabelA,
		Hint:    "Check the question store configuration.",
	}
}
