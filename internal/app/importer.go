package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/SantiagoCMS/Jogo-do-Milhao/internal/domain"
)

// QuestionWriter replaces the full question set of a store.
type QuestionWriter interface {
	ReplaceQuestions(ctx context.Context, questions []domain.Question) (int, error)
}

// ImportIssue describes a question file entry that was skipped.
type ImportIssue struct {
	Position int // 1-based position in the file
	Text     string
	Reason   string
}

func (i ImportIssue) String() string {
	text := i.Text
	if len(text) > 50 {
		text = text[:50] + "..."
	}
	return fmt.Sprintf("question %d (%q): %s", i.Position, text, i.Reason)
}

type rawQuestion struct {
	Text          *string           `json:"text"`
	Answers       map[string]string `json:"answers"`
	CorrectAnswer *string           `json:"correct_answer"`
	Tip           *string           `json:"tip"`
	Subject       *string           `json:"subject"`
	Level         *string           `json:"level"`
}

// ParseQuestionFile reads a JSON array of questions in the seed file format:
//
//	[{"text": "...", "answers": {"A": "...", "B": "...", "C": "...", "D": "..."},
//	  "correct_answer": "A", "tip": "...", "subject": "matematica", "level": "fundamental"}]
//
// Entries missing a field or with an unusable correct answer are skipped and
// reported. Subjects are stored lowercase to match query normalisation.
func ParseQuestionFile(r io.Reader) ([]domain.Question, []ImportIssue, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, nil, fmt.Errorf("decode question file: %w", err)
	}

	questions := make([]domain.Question, 0, len(raw))
	var issues []ImportIssue
	for i, msg := range raw {
		q, reason := parseRawQuestion(msg)
		if reason != "" {
			issues = append(issues, ImportIssue{Position: i + 1, Text: q.Text, Reason: reason})
			continue
		}
		questions = append(questions, q)
	}
	return questions, issues, nil
}

func parseRawQuestion(msg json.RawMessage) (domain.Question, string) {
	var rq rawQuestion
	if err := json.Unmarshal(msg, &rq); err != nil {
		return domain.Question{}, "not an object"
	}
	var q domain.Question
	if rq.Text != nil {
		q.Text = *rq.Text
	}
	if rq.Text == nil || rq.Answers == nil || rq.CorrectAnswer == nil ||
		rq.Tip == nil || rq.Subject == nil || rq.Level == nil {
		return q, "missing fields"
	}

	q.Alternatives = make(map[domain.Label]string, len(domain.Labels))
	for _, l := range domain.Labels {
		text, ok := rq.Answers[string(l)]
		if !ok {
			return q, fmt.Sprintf("missing answer %s", l)
		}
		q.Alternatives[l] = text
	}

	correct, ok := domain.ParseLabel(*rq.CorrectAnswer)
	if !ok {
		return q, fmt.Sprintf("invalid correct answer %q", *rq.CorrectAnswer)
	}
	q.Correct = correct
	q.Hint = *rq.Tip
	q.Subject = strings.ToLower(strings.TrimSpace(*rq.Subject))
	q.Level = strings.TrimSpace(*rq.Level)
	if !q.Valid() {
		return q, "empty text"
	}
	return q, ""
}
