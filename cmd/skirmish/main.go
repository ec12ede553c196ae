package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"skirmish/battlelog"
	"skirmish/config"
	"skirmish/engine"
	"skirmish/experiments"
	"skirmish/experiments/metrics"
)

var (
	configDir string
	logLevel  string
	seed      uint64
	turns     int
	games     int
	recent    int
	search    []string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "skirmish",
		Short: "Turn-based combat skirmish simulator",
		Long: `Plays seeded skirmishes between two civilizations and reports every
battle: strengths, damage, captures and the final standings.`,
		PersistentPreRunE: setup,
		SilenceUsage:      true,
	}
	rootCmd.PersistentFlags().StringVarP(&configDir, "config", "c", ".", "Directory holding "+config.FileName)
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "", "Log level, overrides the config file")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Play one skirmish and print its battle report",
		RunE:  runSkirmish,
	}
	runCmd.Flags().Uint64VarP(&seed, "seed", "s", 0, "Seed for the map and combat; 0 uses the config or the clock")
	runCmd.Flags().IntVarP(&turns, "turns", "t", 0, "Turn limit; 0 uses the config")
	runCmd.Flags().IntVarP(&recent, "recent", "r", 15, "Number of battles to list")
	runCmd.Flags().StringSliceVar(&search, "search", nil, "Civilizations played by the search agent")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "Play many skirmishes from consecutive seeds and write CSV records",
		RunE:  runSweep,
	}
	sweepCmd.Flags().Uint64VarP(&seed, "seed", "s", 0, "Seed of the first game; 0 uses the config or the clock")
	sweepCmd.Flags().IntVarP(&games, "games", "g", 0, "Number of games; 0 uses the config")
	sweepCmd.Flags().StringSliceVar(&search, "search", nil, "Civilizations played by the search agent")

	rootCmd.AddCommand(runCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	if err := config.Load(configDir); err != nil {
		return err
	}
	if logLevel != "" {
		viper.Set("logLevel", logLevel)
	}

	zerolog.SetGlobalLevel(config.LogLevel())
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()
	return nil
}

// skirmishSettings applies command line overrides to the configured game.
func skirmishSettings() (config.Skirmish, error) {
	s, err := config.Game()
	if err != nil {
		return config.Skirmish{}, err
	}
	if seed != 0 {
		s.Seed = seed
	}
	if s.Seed == 0 {
		s.Seed = uint64(time.Now().UnixNano())
	}
	if turns > 0 {
		s.MaxTurns = turns
	}
	if len(search) > 0 {
		s.Search.Civs = search
	}
	return s, nil
}

func runSkirmish(cmd *cobra.Command, args []string) error {
	titleColor := color.New(color.FgCyan, color.Bold)
	successColor := color.New(color.FgGreen, color.Bold)
	drawColor := color.New(color.FgYellow, color.Bold)

	s, err := skirmishSettings()
	if err != nil {
		return err
	}
	rules := config.Rules()

	titleColor.Println("\n╭──────────────────────╮")
	titleColor.Println("│  Skirmish            │")
	titleColor.Println("╰──────────────────────╯")
	fmt.Printf("   Seed: %d, map %dx%d, up to %d turns\n\n", s.Seed, s.Width, s.Height, s.MaxTurns)

	path, enabled := config.BattleLogPath()
	var opts []engine.Option
	var store *battlelog.Store
	if enabled {
		store, err = battlelog.Open(path, log.Logger)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, engine.WithNotifier(store))
	}

	var gameID uint
	if store != nil {
		if gameID, err = store.StartGame(s.Seed); err != nil {
			return err
		}
	}

	winner, gameMetric, battles, err := experiments.RunGame(s, rules, opts...)
	if err != nil {
		return err
	}
	if store != nil {
		if err := store.FinishGame(winner, gameMetric.Turns); err != nil {
			return err
		}
	}

	printBattles(battles, recent)

	if store != nil {
		summary, err := store.Summary(gameID)
		if err != nil {
			return err
		}
		printSummary(summary)
	}

	fmt.Printf("\n📊 %d battles over %d turns: %d units destroyed, %d captured, %d cities taken\n",
		gameMetric.Battles, gameMetric.Turns, gameMetric.UnitsDestroyed, gameMetric.UnitsCaptured, gameMetric.CitiesCaptured)
	if winner == "" {
		drawColor.Println("\n⚖ No winner before the turn limit")
	} else {
		successColor.Printf("\n✓ %s wins!\n", winner)
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	s, err := skirmishSettings()
	if err != nil {
		return err
	}
	n := config.SweepGames()
	if games > 0 {
		n = games
	}

	res, err := experiments.RunSweep(experiments.Sweep{
		Name:     "sweep",
		Games:    n,
		Skirmish: s,
		Rules:    config.Rules(),
		Root:     config.MetricsDir(),
	})
	if err != nil {
		return err
	}

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Result", "Games", "Share"}),
	)
	rows := [][]string{}
	for _, civ := range []string{"Rome", "Carthage"} {
		rows = append(rows, []string{civ, fmt.Sprintf("%d", res.Wins[civ]), share(res.Wins[civ], n)})
	}
	rows = append(rows, []string{"Draw", fmt.Sprintf("%d", res.Draws), share(res.Draws, n)})
	for _, row := range rows {
		table.Append(row)
	}
	table.Render()

	color.Green("\n✓ Records written to %s", res.Dir)
	return nil
}

func printBattles(battles []metrics.BattleMetric, limit int) {
	if len(battles) > limit {
		fmt.Printf("📋 Last %d of %d battles:\n", limit, len(battles))
		battles = battles[len(battles)-limit:]
	} else {
		fmt.Printf("📋 %d battles:\n", len(battles))
	}

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Turn", "Attacker", "Defender", "Kind", "Strength", "Damage", "Outcome"}),
	)
	for _, b := range battles {
		kind := "melee"
		if b.Ranged {
			kind = "ranged"
		}
		outcome := b.DefenderOutcome
		if b.AttackerOutcome != "Survived" {
			outcome = "Attacker " + b.AttackerOutcome
		}
		table.Append([]string{
			fmt.Sprintf("%d", b.Turn),
			fmt.Sprintf("%s (civ %d)", b.Attacker, b.AttackerCiv),
			fmt.Sprintf("%s (civ %d)", b.Defender, b.DefenderCiv),
			kind,
			fmt.Sprintf("%d vs %d", b.AttackerStrength, b.DefenderStrength),
			fmt.Sprintf("%d / %d", b.DamageToDefender, b.DamageToAttacker),
			outcome,
		})
	}
	table.Render()
}

func printSummary(summary []battlelog.CivSummary) {
	fmt.Println("\n⚔ Attacks by civilization:")
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Civ", "Attacks", "Damage dealt", "Damage taken", "Victories"}),
	)
	for _, s := range summary {
		table.Append([]string{
			fmt.Sprintf("%d", s.Civ),
			fmt.Sprintf("%d", s.Attacks),
			fmt.Sprintf("%d", s.DamageDealt),
			fmt.Sprintf("%d", s.DamageTaken),
			fmt.Sprintf("%d", s.Victories),
		})
	}
	table.Render()
}

func share(n, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", 100*float64(n)/float64(total))
}
