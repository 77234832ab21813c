package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"

	"esports-tracker/feature/esports"
	"esports-tracker/feature/esports/engine"
	"esports-tracker/feature/esports/stats"

	"github.com/spf13/cobra"
)

// loadEngine runs a single blocking reload so one-shot commands answer from fresh data.
func loadEngine(cmd *cobra.Command) (*engine.Engine, error) {
	cfg, logg, err := bootstrap()
	if err != nil {
		return nil, err
	}
	defer logg.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	f, err := newFetcher(ctx, cfg, logg)
	if err != nil {
		return nil, err
	}
	eng, err := esports.NewEngine(cfg.Esports, f, logg)
	if err != nil {
		return nil, err
	}
	if err := eng.Reload(ctx); err != nil {
		return nil, fmt.Errorf("failed to load esports data: %w", err)
	}
	return eng, nil
}

func printLines(w io.Writer, header string, lines []string) {
	if header != "" {
		fmt.Fprintln(w, header)
	}
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}

var (
	scheduleFlags struct {
		playoffs bool
		limit    int
	}
	resultsLimit int
	topFlags     struct {
		sort string
		asc  bool
	}
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule [qualifier]",
	Short: "Print upcoming matches of a team or league",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		lines, q := eng.GetSchedule(strings.Join(args, " "), scheduleFlags.playoffs, scheduleFlags.limit)
		printLines(cmd.OutOrStdout(), fmt.Sprintf("%s Upcoming Matches", q), lines)
		return nil
	},
}

var resultsCmd = &cobra.Command{
	Use:   "results [qualifier]",
	Short: "Print decided matches of a team or league",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		lines, q := eng.GetResults(strings.Join(args, " "), resultsLimit)
		printLines(cmd.OutOrStdout(), fmt.Sprintf("%s Results", q), lines)
		return nil
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings <league> [bracket]",
	Short: "Print the standings of a league",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		var bracket string
		if len(args) == 2 {
			bracket = args[1]
		}
		lines, err := eng.GetStandings(args[0], bracket)
		if err != nil {
			return err
		}
		printLines(cmd.OutOrStdout(), "", lines)
		return nil
	},
}

var champsCmd = &cobra.Command{
	Use:   "champs",
	Short: "Champion pick/ban statistics",
}

var champsTopCmd = &cobra.Command{
	Use:   "top <region>",
	Short: "Print the top champions of a region",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := stats.ParseSortKey(topFlags.sort)
		if err != nil {
			return err
		}
		eng, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		games, champs := eng.GetTopPickBanChamps(args[0], key, !topFlags.asc)
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s top champions by %s (%d games)\n", args[0], key, games)
		for i, c := range champs {
			fmt.Fprintf(w, "%d. %s: %d picks, %d bans, %d wins\n", i+1, c.Name, c.Picks, c.Bans, c.Wins)
		}
		return nil
	},
}

var champsRateCmd = &cobra.Command{
	Use:   "rate <region> <champ>",
	Short: "Print the pick/ban rate of a champion",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		name, rate, err := eng.GetChampPickBanRate(args[0], strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s in %s: %d picks, %d bans, %d wins over %d games\n",
			name, args[0], rate.Picks, rate.Bans, rate.Wins, rate.NumGames)
		return nil
	},
}

var champsUniqueCmd = &cobra.Command{
	Use:   "unique <region>",
	Short: "Print how many distinct champions a region picked or banned",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		unique, games := eng.GetUniqueChampCount(args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "%d unique champions in %s (%d games)\n", unique, args[0], games)
		return nil
	},
}

var playerCmd = &cobra.Command{
	Use:   "player <name>",
	Short: "Print the champions a player has played",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		name, player, err := eng.GetPlayerChampStats(strings.Join(args, " "))
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s: %d games, %d wins\n", name, player.NumGames.Picks, player.NumGames.Wins)
		for _, c := range sortedChamps(player.Champs) {
			fmt.Fprintf(w, "  %s: %d-%d\n", c.Name, c.Wins, c.Picks-c.Wins)
		}
		return nil
	},
}

// sortedChamps orders a player's champions by games played, then name.
func sortedChamps(champs map[string]stats.Counters) []engine.ChampCount {
	out := make([]engine.ChampCount, 0, len(champs))
	for name, c := range champs {
		out = append(out, engine.ChampCount{Name: name, Counters: c})
	}
	slices.SortFunc(out, func(a, b engine.ChampCount) int {
		if a.Picks != b.Picks {
			return b.Picks - a.Picks
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

func init() {
	scheduleCmd.Flags().BoolVar(&scheduleFlags.playoffs, "playoffs", false, "include playoff matches")
	scheduleCmd.Flags().IntVar(&scheduleFlags.limit, "limit", engine.DefaultLimit, "maximum number of matches")
	resultsCmd.Flags().IntVar(&resultsLimit, "limit", engine.DefaultLimit, "maximum number of matches")
	champsTopCmd.Flags().StringVar(&topFlags.sort, "sort", string(stats.SortPicks), "picks, bans, presence, wins or winrate")
	champsTopCmd.Flags().BoolVar(&topFlags.asc, "asc", false, "sort ascending")

	champsCmd.AddCommand(champsTopCmd, champsRateCmd, champsUniqueCmd)
	RootCmd.AddCommand(scheduleCmd, resultsCmd, standingsCmd, champsCmd, playerCmd)
}
