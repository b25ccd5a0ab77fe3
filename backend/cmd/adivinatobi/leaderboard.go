package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/adivinatobi/adivinatobi/backend/internal/service"
	"github.com/adivinatobi/adivinatobi/backend/internal/setup"
	"github.com/adivinatobi/adivinatobi/shared/scoring"
	"github.com/spf13/cobra"
)

func newLeaderboardCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the current ranking and exit",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd.Flags())
			if err != nil {
				return err
			}
			store, closeStore, err := setup.OpenStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			standings, err := service.NewLeaderboard(store).Get(cmd.Context())
			if err != nil {
				return err
			}
			return printStandings(cmd.OutOrStdout(), standings)
		},
	}
}

func printStandings(w io.Writer, standings []scoring.Standing) error {
	if len(standings) == 0 {
		_, err := fmt.Fprintln(w, "no points yet")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tPOINTS")
	for _, s := range standings {
		fmt.Fprintf(tw, "%d\t%s\t%d\n", s.Position, s.Name, s.Points)
	}
	return tw.Flush()
}
