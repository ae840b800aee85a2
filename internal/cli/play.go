package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/SantiagoCMS/Jogo-do-Milhao/internal/app"
	"github.com/SantiagoCMS/Jogo-do-Milhao/internal/config"
	"github.com/SantiagoCMS/Jogo-do-Milhao/internal/transport/terminal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type playOptions struct {
	level    string
	subjects []string
	player   string
	width    int
}

// NewPlayCmd starts an interactive session in the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	var opts playOptions
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a quiz session in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return runPlay(cmd, cfg, opts)
		},
	}
	cmd.Flags().StringVar(&opts.level, "level", "", "question level, e.g. fundamental or medio")
	cmd.Flags().StringSliceVar(&opts.subjects, "subjects", nil, "comma separated subjects, e.g. matematica,historia")
	cmd.Flags().StringVar(&opts.player, "player", "", "player credited in the ranking")
	cmd.Flags().IntVar(&opts.width, "width", 0, "screen width in columns")
	return cmd
}

func runPlay(cmd *cobra.Command, cfg config.Config, opts playOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := newDeps(cfg)
	defer d.close()

	ledger, err := d.ledger(cfg)
	if err != nil {
		return err
	}

	level := firstNonEmpty(opts.level, cfg.Quiz.Level)
	subjects := opts.subjects
	if len(subjects) == 0 {
		subjects = cfg.Quiz.Subjects
	}
	player := firstNonEmpty(opts.player, cfg.Player.ID)

	repo := app.NewQuestionRepository(d.questionSource(ctx, cfg), d.log)
	game := app.NewGame(repo, ledger, d.log, player, app.WithSkipScore(cfg.SkipAwardsScore()))
	session := game.Start(ctx, level, subjects)

	screen := terminal.NewScreen(cmd.OutOrStdout())
	if opts.width > 0 {
		screen.Width = opts.width
	}
	driver := terminal.NewDriver(session, screen, d.log)
	err = driver.Run(ctx, cmd.InOrStdin(), cfg.TickInterval())
	if err != nil && ctx.Err() != nil {
		// interrupted by a signal
		err = nil
	}

	snap := session.Snapshot()
	d.log.WithFields(logrus.Fields{
		"session": snap.SessionID,
		"phase":   snap.Phase,
		"index":   snap.Index,
		"player":  game.PlayerID(),
	}).Info("session finished")
	return err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
