package cli

import (
	"fmt"
	"io"

	"github.com/SantiagoCMS/Jogo-do-Milhao/internal/app"
	"github.com/SantiagoCMS/Jogo-do-Milhao/internal/config"
	"github.com/SantiagoCMS/Jogo-do-Milhao/internal/domain"
	"github.com/spf13/cobra"
)

// NewRankingCmd prints the score ledger.
func NewRankingCmd(configPath *string) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "ranking",
		Short: "Show the player ranking",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			d := newDeps(cfg)
			defer d.close()

			ledger, err := d.ledger(cfg)
			if err != nil {
				return err
			}
			game := app.NewGame(app.NewQuestionRepository(nil, d.log), ledger, d.log, cfg.Player.ID)
			ranking, err := game.Ranking(cmd.Context(), limit)
			if err != nil {
				return err
			}
			printRanking(cmd.OutOrStdout(), ranking)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "number of entries to show (0 for all)")
	return cmd
}

func printRanking(w io.Writer, ranking domain.Ranking) {
	fmt.Fprintln(w, "RANKING")
	for i, entry := range ranking {
		fmt.Fprintf(w, "%2d. %-20s %12d\n", i+1, entry.PlayerID, entry.Score)
	}
}
