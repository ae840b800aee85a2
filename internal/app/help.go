package app

import (
	"math/rand"

	"github.com/SantiagoCMS/Jogo-do-Milhao/internal/domain"
)

const (
	// InitialHelpLives is the shared help pool at the start of a session.
	InitialHelpLives = 3
	// maxEliminated is how many wrong alternatives one eliminate removes.
	maxEliminated = 2
)

// HelpBudget tracks the shared help pool and the per-question help state.
type HelpBudget struct {
	lives      int
	used       bool
	eliminated map[domain.Label]struct{}
}

func NewHelpBudget(lives int) *HelpBudget {
	if lives < 0 {
		lives = 0
	}
	if lives > InitialHelpLives {
		lives = InitialHelpLives
	}
	return &HelpBudget{
		lives:      lives,
		eliminated: make(map[domain.Label]struct{}),
	}
}

// Lives returns the remaining help uses.
func (b *HelpBudget) Lives() int { return b.lives }

// Used reports whether a help was taken on the current question.
func (b *HelpBudget) Used() bool { return b.used }

// Available reports whether any help can be taken on the current question.
func (b *HelpBudget) Available() bool {
	return b.lives > 0 && !b.used
}

// Use marks the current question as helped. Lives are not spent here; see Settle.
func (b *HelpBudget) Use() error {
	if !b.Available() {
		return domain.ErrHelpUnavailable
	}
	b.used = true
	return nil
}

// Eliminate removes up to two incorrect, not yet eliminated alternatives of q,
// chosen uniformly at random. The correct label is never a candidate.
func (b *HelpBudget) Eliminate(q domain.Question, rnd *rand.Rand) []domain.Label {
	candidates := make([]domain.Label, 0, len(domain.Labels))
	for _, l := range domain.Labels {
		if l == q.Correct || b.IsEliminated(l) {
			continue
		}
		candidates = append(candidates, l)
	}
	rnd.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	n := maxEliminated
	if len(candidates) < n {
		n = len(candidates)
	}
	removed := candidates[:n]
	for _, l := range removed {
		b.eliminated[l] = struct{}{}
	}
	return removed
}

// IsEliminated reports whether l was removed on the current question.
func (b *HelpBudget) IsEliminated(l domain.Label) bool {
	_, ok := b.eliminated[l]
	return ok
}

// Eliminated returns the removed labels in presentation order.
func (b *HelpBudget) Eliminated() []domain.Label {
	out := make([]domain.Label, 0, len(b.eliminated))
	for _, l := range domain.Labels {
		if b.IsEliminated(l) {
			out = append(out, l)
		}
	}
	return out
}

// Settle is applied when the next question is set up. A life is spent only
// when help was used and the finished question was answered correctly
// (a skip counts as correct). Per-question state is reset afterwards.
func (b *HelpBudget) Settle(last domain.Outcome) {
	if b.used && last == domain.OutcomeCorrect && b.lives > 0 {
		b.lives--
	}
	b.used = false
	b.eliminated = make(map[domain.Label]struct{})
}
