package terminal

import (
	"bufio"
	"context"
	"errors"
	"io"
	"time"

	"github.com/SantiagoCMS/Jogo-do-Milhao/internal/domain"
	"github.com/sirupsen/logrus"
)

// DefaultTickInterval paces the loop at 30 ticks per second.
const DefaultTickInterval = time.Second / 30

// Session is the subset of app.Session the driver feeds.
type Session interface {
	SubmitAnswer(ctx context.Context, label domain.Label) (domain.Snapshot, error)
	UseHelp(ctx context.Context, kind domain.HelpKind) (domain.Snapshot, error)
	Acknowledge(ctx context.Context) (domain.Snapshot, error)
	Quit() domain.Snapshot
	Snapshot() domain.Snapshot
}

type mode int

const (
	modeSession mode = iota
	modeVictory
	modeDone
)

// Driver turns input lines into session actions, one per tick, and renders
// the result. The victory screen is a mode of the same loop.
type Driver struct {
	session Session
	screen  *Screen
	log     logrus.FieldLogger
	mode    mode
	dirty   bool
}

func NewDriver(session Session, screen *Screen, log logrus.FieldLogger) *Driver {
	return &Driver{session: session, screen: screen, log: log, mode: modeSession, dirty: true}
}

// Tick applies the first line that parses to an action and ignores the rest,
// then renders if anything changed. It reports whether the loop continues.
func (d *Driver) Tick(ctx context.Context, lines []string) bool {
	for _, line := range lines {
		if d.mode == modeVictory {
			// any input leaves the victory screen
			d.mode = modeDone
			return false
		}
		action, ok := ParseAction(line)
		if !ok {
			continue
		}
		d.apply(ctx, action)
		break
	}
	d.render()
	return d.mode != modeDone
}

func (d *Driver) apply(ctx context.Context, action Action) {
	var (
		snap domain.Snapshot
		err  error
	)
	switch action.Kind {
	case ActionAnswer:
		snap, err = d.session.SubmitAnswer(ctx, action.Label)
	case ActionHelp:
		snap, err = d.session.UseHelp(ctx, action.Help)
	case ActionAcknowledge:
		snap, err = d.session.Acknowledge(ctx)
	case ActionQuit:
		snap = d.session.Quit()
	}
	d.dirty = true

	if err != nil {
		d.log.WithError(err).WithField("action", action.Kind).Debug("action rejected")
		switch {
		case errors.Is(err, domain.ErrLabelEliminated):
			renderNotice(d.screen, "That alternative was eliminated.")
		case errors.Is(err, domain.ErrHelpUnavailable):
			renderNotice(d.screen, "No help available for this question.")
		case errors.Is(err, domain.ErrInvalidTransition):
			d.dirty = false
		}
		return
	}

	switch snap.Phase {
	case domain.PhaseWon:
		d.mode = modeVictory
	case domain.PhaseExited:
		renderExit(d.screen, snap)
		d.mode = modeDone
		d.dirty = false
	}
}

func (d *Driver) render() {
	if !d.dirty || d.mode == modeDone {
		return
	}
	d.dirty = false
	snap := d.session.Snapshot()
	switch d.mode {
	case modeVictory:
		renderVictory(d.screen, snap)
	default:
		renderSession(d.screen, snap)
	}
}

// Run reads lines from in on a separate goroutine and ticks at interval until
// the session ends, ctx is cancelled or in is exhausted.
func (d *Driver) Run(ctx context.Context, in io.Reader, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string, 16)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if !d.Tick(ctx, nil) {
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			d.session.Quit()
			return ctx.Err()
		case <-ticker.C:
		}

		pending, open := drain(lines)
		if !d.Tick(ctx, pending) {
			return nil
		}
		if !open {
			// input closed: leave like an explicit quit
			d.session.Quit()
			select {
			case err := <-readErr:
				return err
			default:
				return nil
			}
		}
	}
}

// drain collects every line already queued without blocking.
func drain(lines <-chan string) ([]string, bool) {
	var pending []string
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return pending, false
			}
			pending = append(pending, line)
		default:
			return pending, true
		}
	}
}
