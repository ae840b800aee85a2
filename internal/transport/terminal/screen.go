package terminal

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/SantiagoCMS/Jogo-do-Milhao/internal/app"
	"github.com/SantiagoCMS/Jogo-do-Milhao/internal/domain"
)

const defaultWidth = 72

// Screen is the shared display context. Renderers receive it by reference so
// a width or badge change applies to every mode.
type Screen struct {
	Out    io.Writer
	Width  int
	Badges *BadgeTable
}

func NewScreen(out io.Writer) *Screen {
	return &Screen{Out: out, Width: defaultWidth, Badges: DefaultBadges()}
}

func (s *Screen) width() int {
	if s.Width < 20 {
		return defaultWidth
	}
	return s.Width
}

func (s *Screen) rule() {
	fmt.Fprintln(s.Out, strings.Repeat("─", s.width()))
}

func (s *Screen) wrap(prefix, text string) {
	limit := s.width() - utf8.RuneCountInString(prefix)
	line := prefix
	n := 0
	for _, word := range strings.Fields(text) {
		size := utf8.RuneCountInString(word)
		if n > 0 && n+1+size > limit {
			fmt.Fprintln(s.Out, line)
			line = strings.Repeat(" ", utf8.RuneCountInString(prefix))
			n = 0
		}
		if n > 0 {
			line += " "
			n++
		}
		line += word
		n += size
	}
	fmt.Fprintln(s.Out, line)
}

func renderSession(s *Screen, snap domain.Snapshot) {
	s.rule()
	header := fmt.Sprintf("Question %d/%d", snap.Index+1, snap.Total)
	if snap.Question.Subject != "" {
		header += fmt.Sprintf("  [%s · %s]", snap.Question.Subject, snap.Question.Level)
	}
	fmt.Fprintf(s.Out, "%s   worth %s\n", header, points(app.ScoreFor(snap.Index)))
	s.wrap("", snap.Question.Text)
	fmt.Fprintln(s.Out)

	eliminated := make(map[domain.Label]bool, len(snap.Eliminated))
	for _, l := range snap.Eliminated {
		eliminated[l] = true
	}
	for _, l := range domain.Labels {
		if eliminated[l] {
			fmt.Fprintf(s.Out, "  %s) ----\n", l)
			continue
		}
		s.wrap(fmt.Sprintf("  %s) ", l), snap.Question.Alternatives[l])
	}
	fmt.Fprintln(s.Out)

	if snap.HintVisible {
		s.wrap("Hint: ", snap.Hint)
	}

	switch {
	case snap.FeedbackVisible:
		fmt.Fprintf(s.Out, ">> %s\n", snap.FeedbackMessage)
		if snap.Earned > 0 {
			fmt.Fprintf(s.Out, "   +%s\n", points(snap.Earned))
		}
		fmt.Fprintln(s.Out, "Press Enter to continue.")
	default:
		badges := make([]string, 0, len(domain.HelpKinds))
		for _, kind := range domain.HelpKinds {
			badges = append(badges, s.Badges.Badge(kind, snap.HelpLives))
		}
		status := "available"
		if !snap.HelpAvailable {
			status = "unavailable"
		}
		fmt.Fprintf(s.Out, "Help (%s): %s\n", status, strings.Join(badges, "  "))
		fmt.Fprintln(s.Out, "Answer with a-d, or q to quit.")
	}
	if snap.Warning != "" {
		fmt.Fprintf(s.Out, "! %s\n", snap.Warning)
	}
}

func renderVictory(s *Screen, snap domain.Snapshot) {
	s.rule()
	fmt.Fprintln(s.Out, "*** VICTORY ***")
	fmt.Fprintf(s.Out, "You answered all %d questions.\n", snap.Total)
	fmt.Fprintln(s.Out, "Press Enter to return.")
}

func renderExit(s *Screen, snap domain.Snapshot) {
	s.rule()
	if snap.LastOutcome == domain.OutcomeIncorrect {
		fmt.Fprintf(s.Out, "Game over on question %d.\n", snap.Index+1)
		return
	}
	fmt.Fprintln(s.Out, "Bye!")
}

func renderNotice(s *Screen, text string) {
	fmt.Fprintf(s.Out, "! %s\n", text)
}

// points formats a score with thousands separators, e.g. 1.000.000 points.
func points(n int) string {
	digits := fmt.Sprintf("%d", n)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return b.String() + " points"
}
