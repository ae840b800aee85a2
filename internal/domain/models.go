package domain

import "strings"

// Label identifies one of the four alternatives of a question.
type Label string

const (
	LabelA Label = "A"
	LabelB Label = "B"
	LabelC Label = "C"
	LabelD Label = "D"
)

// Labels is the presentation order of alternatives.
var Labels = []Label{LabelA, LabelB, LabelC, LabelD}

// ParseLabel normalizes user or stored input ("b", " C ") into a Label.
func ParseLabel(raw string) (Label, bool) {
	l := Label(strings.ToUpper(strings.TrimSpace(raw)))
	for _, known := range Labels {
		if l == known {
			return l, true
		}
	}
	return "", false
}

// Question is a multiple choice item with exactly one correct alternative.
type Question struct {
	ID           int64            `json:"id"`
	Text         string           `json:"text"`
	Alternatives map[Label]string `json:"answers"`
	Correct      Label            `json:"correct_answer"`
	Hint         string           `json:"tip"`
	Subject      string           `json:"subject"`
	Level        string           `json:"level"`
}

// Valid reports whether the question can be played: it needs a prompt and a
// correct label in canonical form.
func (q Question) Valid() bool {
	if strings.TrimSpace(q.Text) == "" {
		return false
	}
	for _, l := range Labels {
		if q.Correct == l {
			return true
		}
	}
	return false
}

// Alternative returns the text for a label, empty when absent.
func (q Question) Alternative(l Label) string {
	return q.Alternatives[l]
}

// HelpKind is one of the limited-use player assists.
type HelpKind string

const (
	HelpHint      HelpKind = "hint"
	HelpEliminate HelpKind = "eliminate"
	HelpSkip      HelpKind = "skip"
)

// HelpKinds lists every assist in display order.
var HelpKinds = []HelpKind{HelpSkip, HelpHint, HelpEliminate}

// Phase is the state of a quiz session.
type Phase string

const (
	PhaseAwaitingAnswer Phase = "awaiting_answer"
	PhaseFeedbackShown  Phase = "feedback_shown"
	PhaseWon            Phase = "won"
	PhaseExited         Phase = "exited"
)

// Terminal reports whether no further transition is possible.
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseExited
}

// Outcome is the tri-state result of the last answer.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeCorrect
	OutcomeIncorrect
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "correct"
	case OutcomeIncorrect:
		return "incorrect"
	default:
		return "unknown"
	}
}

// QuestionView is the part of a question safe to render while awaiting an answer.
type QuestionView struct {
	Text         string           `json:"text"`
	Alternatives map[Label]string `json:"answers"`
	Subject      string           `json:"subject"`
	Level        string           `json:"level"`
}

// Snapshot is a read-only copy of session state used for rendering.
type Snapshot struct {
	SessionID       string       `json:"sessionId"`
	Phase           Phase        `json:"phase"`
	Question        QuestionView `json:"question"`
	Index           int          `json:"index"`
	Total           int          `json:"total"`
	HelpLives       int          `json:"helpLives"`
	HelpUsed        bool         `json:"helpUsed"`
	HelpAvailable   bool         `json:"helpAvailable"`
	Eliminated      []Label      `json:"eliminated"`
	HintVisible     bool         `json:"hintVisible"`
	Hint            string       `json:"hint,omitempty"`
	FeedbackVisible bool         `json:"feedbackVisible"`
	FeedbackMessage string       `json:"feedbackMessage,omitempty"`
	LastOutcome     Outcome      `json:"lastOutcome"`
	Won             bool         `json:"won"`
	Earned          int          `json:"earned"`
	Warning         string       `json:"warning,omitempty"`
}

// LedgerEntry is one player's cumulative score.
type LedgerEntry struct {
	PlayerID string `json:"playerId"`
	Score    int    `json:"score"`
}

// Ranking is a list of ledger entries ordered by score, highest first.
type Ranking []LedgerEntry
