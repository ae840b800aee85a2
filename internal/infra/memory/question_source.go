package memory

import (
	"context"
	"strings"

	"github.com/SantiagoCMS/Jogo-do-Milhao/internal/domain"
)

// StaticQuestionSource is a simple source backed by a slice (useful for tests/demos).
type StaticQuestionSource struct {
	questions []domain.Question
}

func NewStaticQuestionSource(questions ...domain.Question) *StaticQuestionSource {
	return &StaticQuestionSource{questions: questions}
}

// LoadQuestions matches the level exactly and the subject case-insensitively.
func (s *StaticQuestionSource) LoadQuestions(_ context.Context, level string, subjects []string) ([]domain.Question, error) {
	wanted := make(map[string]struct{}, len(subjects))
	for _, subject := range subjects {
		wanted[strings.ToLower(subject)] = struct{}{}
	}

	var out []domain.Question
	for _, q := range s.questions {
		if q.Level != level {
			continue
		}
		if _, ok := wanted[strings.ToLower(q.Subject)]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}
